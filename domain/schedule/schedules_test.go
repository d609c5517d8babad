package schedule_test

import (
	"assignman/bizerror"
	"assignman/domain"
	"assignman/domain/schedule"
	"assignman/persistence"
	"assignman/testinfra"
	"testing"
	"time"

	"github.com/fundwit/go-commons/types"
	. "github.com/onsi/gomega"
)

func setup(t *testing.T, testDatabase **testinfra.TestDatabase) {
	db := testinfra.StartMysqlTestDatabase("assignman")
	*testDatabase = db
	Expect(db.DS.GormDB().AutoMigrate(&domain.Organization{}, &domain.Administrator{}, &domain.Member{},
		&domain.StandardProject{}, &domain.OngoingProject{}, &domain.ProjectPlan{},
		&domain.DetailedProjectAssignment{}, &domain.OngoingAssignment{}).Error).To(BeNil())
	persistence.ActiveDataSourceManager = db.DS

	gormDB := db.DS.GormDB()
	testinfra.BuildOrganization(gormDB, 1, "org one")
	testinfra.BuildOrganization(gormDB, 2, "org two")
	testinfra.BuildAdministrator(gormDB, 10, 1, "admin one")
	testinfra.BuildAdministrator(gormDB, 20, 2, "admin two")
	testinfra.BuildMember(gormDB, 100, 1, "ann", 40)
	testinfra.BuildMember(gormDB, 101, 1, "bob", 40)
	testinfra.BuildStandardProject(gormDB, 1000, 1, "project alpha",
		domain.NewDate(2025, time.January, 1), domain.NewDate(2025, time.December, 31))
	testinfra.BuildOngoingProject(gormDB, 2000, 1, "support desk")
}

func teardown(t *testing.T, testDatabase *testinfra.TestDatabase) {
	if testDatabase != nil {
		testinfra.StopMysqlTestDatabase(testDatabase)
	}
}

func TestBuildMemberSchedule(t *testing.T) {
	RegisterTestingT(t)
	var testDatabase *testinfra.TestDatabase
	defer teardown(t, testDatabase)
	setup(t, &testDatabase)

	adminViewer := schedule.ScheduleViewer{AdministratorID: 10}

	t.Run("should validate the query", func(t *testing.T) {
		_, err := schedule.BuildMemberSchedule(schedule.ScheduleQuery{})
		Expect(err).To(Equal(bizerror.ErrInvalidArguments))

		_, err = schedule.BuildMemberSchedule(schedule.ScheduleQuery{MemberID: 100,
			StartDate: domain.NewDate(2025, time.January, 15), EndDate: domain.NewDate(2025, time.January, 8),
			Viewer: adminViewer})
		Expect(err).To(Equal(bizerror.ErrInvalidDateRange))
	})

	t.Run("should build empty buckets for an unassigned range", func(t *testing.T) {
		view, err := schedule.BuildMemberSchedule(schedule.ScheduleQuery{MemberID: 100,
			StartDate: domain.NewDate(2025, time.January, 8), EndDate: domain.NewDate(2025, time.January, 15),
			Viewer: adminViewer})
		Expect(err).To(BeNil())
		Expect(view.MemberName).To(Equal("ann"))
		Expect(view.Days).To(HaveLen(8))
		for _, day := range view.Days {
			Expect(day.TotalHours).To(BeZero())
			Expect(day.Assignments).To(BeEmpty())
		}
		Expect(view.Summary.TotalAssignments).To(BeZero())
		Expect(view.Summary.AverageDailyHours).To(BeZero())
		Expect(view.Summary.MaxDailyHours).To(BeZero())
		Expect(view.Summary.TotalHours).To(BeZero())
	})

	db := persistence.ActiveDataSourceManager.GormDB()
	// detailed 6.0 over Mon Jan 6 .. Wed Jan 8, 2.0/day
	Expect(db.Create(&domain.DetailedProjectAssignment{ID: 700, StandardProjectID: 1000, MemberID: 100,
		StartDate: domain.NewDate(2025, time.January, 6), EndDate: domain.NewDate(2025, time.January, 8),
		ScheduledHours: 6, CreateTime: types.CurrentTimestamp()}).Error).To(BeNil())
	// indefinite ongoing 10.0 weekly from Wed Jan 8, 2.0/weekday
	Expect(db.Create(&domain.OngoingAssignment{ID: 701, OngoingProjectID: 2000, MemberID: 100,
		StartDate: domain.NewDate(2025, time.January, 8), WeeklyScheduledHours: 10,
		CreateTime: types.CurrentTimestamp()}).Error).To(BeNil())

	t.Run("should clip spans and stack daily loads", func(t *testing.T) {
		view, err := schedule.BuildMemberSchedule(schedule.ScheduleQuery{MemberID: 100,
			StartDate: domain.NewDate(2025, time.January, 7), EndDate: domain.NewDate(2025, time.January, 13),
			Viewer: adminViewer})
		Expect(err).To(BeNil())
		Expect(view.Days).To(HaveLen(7))
		Expect(view.Summary.TotalAssignments).To(Equal(2))

		// Tue Jan 7: detailed only
		Expect(view.Days[0].TotalHours).To(Equal(2.0))
		Expect(view.Days[0].Assignments).To(HaveLen(1))
		Expect(view.Days[0].Assignments[0].Kind).To(Equal(schedule.KindDetailed))
		Expect(view.Days[0].Assignments[0].ProjectName).To(Equal("project alpha"))

		// Wed Jan 8: detailed ends, ongoing starts
		Expect(view.Days[1].TotalHours).To(Equal(4.0))
		Expect(view.Days[1].Assignments).To(HaveLen(2))

		// Thu Jan 9, Fri Jan 10: ongoing only
		Expect(view.Days[2].TotalHours).To(Equal(2.0))
		Expect(view.Days[3].TotalHours).To(Equal(2.0))

		// Sat Jan 11, Sun Jan 12: weekend buckets list the ongoing span with zero hours
		Expect(view.Days[4].Weekend).To(BeTrue())
		Expect(view.Days[4].TotalHours).To(BeZero())
		Expect(view.Days[4].Assignments).To(HaveLen(1))
		Expect(view.Days[4].Assignments[0].DailyHours).To(BeZero())
		Expect(view.Days[5].Weekend).To(BeTrue())
		Expect(view.Days[5].TotalHours).To(BeZero())

		// Mon Jan 13: ongoing only
		Expect(view.Days[6].TotalHours).To(Equal(2.0))

		// five weekdays: 2.0 + 4.0 + 2.0 + 2.0 + 2.0
		Expect(view.Summary.TotalHours).To(Equal(12.0))
		Expect(view.Summary.AverageDailyHours).To(Equal(2.4))
		Expect(view.Summary.MaxDailyHours).To(Equal(4.0))
	})

	t.Run("should let a member view only their own schedule", func(t *testing.T) {
		view, err := schedule.BuildMemberSchedule(schedule.ScheduleQuery{MemberID: 100,
			StartDate: domain.NewDate(2025, time.January, 6), EndDate: domain.NewDate(2025, time.January, 10),
			Viewer: schedule.ScheduleViewer{MemberID: 100}})
		Expect(err).To(BeNil())
		Expect(view.MemberID).To(Equal(types.ID(100)))

		_, err = schedule.BuildMemberSchedule(schedule.ScheduleQuery{MemberID: 100,
			StartDate: domain.NewDate(2025, time.January, 6), EndDate: domain.NewDate(2025, time.January, 10),
			Viewer: schedule.ScheduleViewer{MemberID: 101}})
		Expect(err).To(Equal(bizerror.ErrForbidden))
	})

	t.Run("should forbid administrators of other organizations and anonymous viewers", func(t *testing.T) {
		_, err := schedule.BuildMemberSchedule(schedule.ScheduleQuery{MemberID: 100,
			StartDate: domain.NewDate(2025, time.January, 6), EndDate: domain.NewDate(2025, time.January, 10),
			Viewer: schedule.ScheduleViewer{AdministratorID: 20}})
		Expect(err).To(Equal(bizerror.ErrForbidden))

		_, err = schedule.BuildMemberSchedule(schedule.ScheduleQuery{MemberID: 100,
			StartDate: domain.NewDate(2025, time.January, 6), EndDate: domain.NewDate(2025, time.January, 10)})
		Expect(err).To(Equal(bizerror.ErrForbidden))
	})

	t.Run("should not change any stored record", func(t *testing.T) {
		query := schedule.ScheduleQuery{MemberID: 100,
			StartDate: domain.NewDate(2025, time.January, 6), EndDate: domain.NewDate(2025, time.January, 10),
			Viewer: adminViewer}
		first, err := schedule.BuildMemberSchedule(query)
		Expect(err).To(BeNil())
		second, err := schedule.BuildMemberSchedule(query)
		Expect(err).To(BeNil())
		Expect(second).To(Equal(first))
	})
}
