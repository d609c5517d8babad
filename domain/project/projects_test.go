package project_test

import (
	"assignman/bizerror"
	"assignman/domain"
	"assignman/domain/project"
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
		&domain.RoughProjectAssignment{}, &domain.DetailedProjectAssignment{}).Error).To(BeNil())
	persistence.ActiveDataSourceManager = db.DS

	gormDB := db.DS.GormDB()
	testinfra.BuildOrganization(gormDB, 1, "org one")
	testinfra.BuildOrganization(gormDB, 2, "org two")
	testinfra.BuildAdministrator(gormDB, 10, 1, "admin one")
	testinfra.BuildAdministrator(gormDB, 20, 2, "admin two")
}

func teardown(t *testing.T, testDatabase *testinfra.TestDatabase) {
	if testDatabase != nil {
		testinfra.StopMysqlTestDatabase(testDatabase)
	}
}

func TestCreateStandardProject(t *testing.T) {
	RegisterTestingT(t)
	var testDatabase *testinfra.TestDatabase
	defer teardown(t, testDatabase)
	setup(t, &testDatabase)

	secCtx := testinfra.BuildSecCtx(1, 10)

	t.Run("should reject a reversed date range", func(t *testing.T) {
		_, err := project.CreateStandardProject(&domain.StandardProjectCreation{
			OrganizationID: 1, Name: "backwards",
			StartDate: domain.NewDate(2025, time.June, 30), EndDate: domain.NewDate(2025, time.June, 1)}, secCtx)
		Expect(err).To(Equal(bizerror.ErrInvalidDateRange))
	})

	t.Run("should create the project with its plan as a pair", func(t *testing.T) {
		budget := 500.0
		record, err := project.CreateStandardProject(&domain.StandardProjectCreation{
			OrganizationID: 1, Name: "project alpha", BudgetHours: &budget, ClientName: "acme",
			StartDate: domain.NewDate(2025, time.June, 1), EndDate: domain.NewDate(2025, time.June, 30)}, secCtx)
		Expect(err).To(BeNil())
		Expect(record.Status).To(Equal(domain.ProjectStatusTentative))
		Expect(*record.BudgetHours).To(Equal(500.0))

		plan := domain.ProjectPlan{}
		Expect(persistence.ActiveDataSourceManager.GormDB().
			Where("standard_project_id = ?", record.ID).First(&plan).Error).To(BeNil())
	})

	t.Run("should forbid creation in a foreign organization", func(t *testing.T) {
		_, err := project.CreateStandardProject(&domain.StandardProjectCreation{
			OrganizationID: 2, Name: "foreign",
			StartDate: domain.NewDate(2025, time.June, 1), EndDate: domain.NewDate(2025, time.June, 30)}, secCtx)
		Expect(err).To(Equal(bizerror.ErrForbidden))
	})
}

func TestUpdateProjectStatus(t *testing.T) {
	RegisterTestingT(t)
	var testDatabase *testinfra.TestDatabase
	defer teardown(t, testDatabase)
	setup(t, &testDatabase)

	secCtx := testinfra.BuildSecCtx(1, 10)
	record, err := project.CreateStandardProject(&domain.StandardProjectCreation{
		OrganizationID: 1, Name: "project alpha",
		StartDate: domain.NewDate(2025, time.June, 1), EndDate: domain.NewDate(2025, time.June, 30)}, secCtx)
	Expect(err).To(BeNil())

	t.Run("should reject unknown status values", func(t *testing.T) {
		err := project.UpdateStandardProjectStatus(record.ID,
			&project.StandardProjectStatusUpdating{Status: "SOMETHING"}, secCtx)
		Expect(err).To(Equal(bizerror.ErrInvalidArguments))
	})

	t.Run("should forbid administrators of other organizations", func(t *testing.T) {
		err := project.UpdateStandardProjectStatus(record.ID,
			&project.StandardProjectStatusUpdating{Status: domain.ProjectStatusConfirmed},
			testinfra.BuildSecCtx(2, 20))
		Expect(err).To(Equal(bizerror.ErrForbidden))
	})

	t.Run("should update the status", func(t *testing.T) {
		Expect(project.UpdateStandardProjectStatus(record.ID,
			&project.StandardProjectStatusUpdating{Status: domain.ProjectStatusConfirmed}, secCtx)).To(BeNil())

		updated := domain.StandardProject{}
		Expect(persistence.ActiveDataSourceManager.GormDB().
			Where("id = ?", record.ID).First(&updated).Error).To(BeNil())
		Expect(updated.Status).To(Equal(domain.ProjectStatusConfirmed))
	})
}

func TestCreateOngoingProject(t *testing.T) {
	RegisterTestingT(t)
	var testDatabase *testinfra.TestDatabase
	defer teardown(t, testDatabase)
	setup(t, &testDatabase)

	secCtx := testinfra.BuildSecCtx(1, 10)

	t.Run("should reject a non positive budget", func(t *testing.T) {
		budget := -10.0
		_, err := project.CreateOngoingProject(&domain.OngoingProjectCreation{
			OrganizationID: 1, Name: "support desk", Budget: &budget}, secCtx)
		Expect(err).To(Equal(bizerror.ErrInvalidArguments))
	})

	t.Run("should create an active ongoing project", func(t *testing.T) {
		record, err := project.CreateOngoingProject(&domain.OngoingProjectCreation{
			OrganizationID: 1, Name: "support desk"}, secCtx)
		Expect(err).To(BeNil())
		Expect(record.Status).To(Equal(domain.OngoingProjectStatusActive))
	})
}

func TestDetailProjectPlan(t *testing.T) {
	RegisterTestingT(t)
	var testDatabase *testinfra.TestDatabase
	defer teardown(t, testDatabase)
	setup(t, &testDatabase)

	secCtx := testinfra.BuildSecCtx(1, 10)
	budget := 100.0
	record, err := project.CreateStandardProject(&domain.StandardProjectCreation{
		OrganizationID: 1, Name: "project alpha", BudgetHours: &budget,
		StartDate: domain.NewDate(2025, time.January, 1), EndDate: domain.NewDate(2025, time.December, 31)}, secCtx)
	Expect(err).To(BeNil())

	db := persistence.ActiveDataSourceManager.GormDB()
	testinfra.BuildMember(db, 100, 1, "ann", 40)
	testinfra.BuildMember(db, 101, 1, "bob", 40)
	Expect(db.Create(&domain.RoughProjectAssignment{ID: 600, StandardProjectID: record.ID, MemberID: 100,
		StartDate: domain.NewDate(2025, time.February, 3), EndDate: domain.NewDate(2025, time.February, 7),
		ScheduledHours: 24, CreateTime: types.CurrentTimestamp()}).Error).To(BeNil())
	Expect(db.Create(&domain.DetailedProjectAssignment{ID: 601, StandardProjectID: record.ID, MemberID: 100,
		StartDate: domain.NewDate(2025, time.January, 6), EndDate: domain.NewDate(2025, time.January, 8),
		ScheduledHours: 6, CreateTime: types.CurrentTimestamp()}).Error).To(BeNil())
	Expect(db.Create(&domain.DetailedProjectAssignment{ID: 602, StandardProjectID: record.ID, MemberID: 101,
		StartDate: domain.NewDate(2025, time.January, 6), EndDate: domain.NewDate(2025, time.January, 10),
		ScheduledHours: 20, CreateTime: types.CurrentTimestamp()}).Error).To(BeNil())

	t.Run("should account scheduled hours against the budget", func(t *testing.T) {
		detail, err := project.DetailProjectPlan(record.ID, secCtx)
		Expect(err).To(BeNil())
		Expect(detail.TotalRoughHours).To(Equal(24.0))
		Expect(detail.TotalDetailedHours).To(Equal(26.0))
		Expect(detail.TotalScheduledHours).To(Equal(50.0))
		Expect(*detail.RemainingBudgetHours).To(Equal(50.0))

		Expect(detail.Members).To(HaveLen(2))
		Expect(detail.Members[0].MemberName).To(Equal("ann"))
		Expect(detail.Members[0].RoughAssignments).To(HaveLen(1))
		Expect(detail.Members[0].DetailedAssignments).To(HaveLen(1))
		Expect(detail.Members[1].MemberName).To(Equal("bob"))
		Expect(detail.Members[1].RoughAssignments).To(BeEmpty())
		Expect(detail.Members[1].DetailedAssignments).To(HaveLen(1))
	})

	t.Run("should forbid administrators of other organizations", func(t *testing.T) {
		_, err := project.DetailProjectPlan(record.ID, testinfra.BuildSecCtx(2, 20))
		Expect(err).To(Equal(bizerror.ErrForbidden))
	})
}

func TestQueryProjects(t *testing.T) {
	RegisterTestingT(t)
	var testDatabase *testinfra.TestDatabase
	defer teardown(t, testDatabase)
	setup(t, &testDatabase)

	secCtx := testinfra.BuildSecCtx(1, 10)
	_, err := project.CreateStandardProject(&domain.StandardProjectCreation{
		OrganizationID: 1, Name: "project alpha",
		StartDate: domain.NewDate(2025, time.June, 1), EndDate: domain.NewDate(2025, time.June, 30)}, secCtx)
	Expect(err).To(BeNil())
	_, err = project.CreateOngoingProject(&domain.OngoingProjectCreation{
		OrganizationID: 1, Name: "support desk"}, secCtx)
	Expect(err).To(BeNil())

	t.Run("should scope queries to the administrator's organization", func(t *testing.T) {
		records, err := project.QueryStandardProjects(secCtx)
		Expect(err).To(BeNil())
		Expect(*records).To(HaveLen(1))
		Expect((*records)[0].Name).To(Equal("project alpha"))

		foreign, err := project.QueryStandardProjects(testinfra.BuildSecCtx(2, 20))
		Expect(err).To(BeNil())
		Expect(*foreign).To(BeEmpty())

		ongoing, err := project.QueryOngoingProjects(secCtx)
		Expect(err).To(BeNil())
		Expect(*ongoing).To(HaveLen(1))
	})
}
