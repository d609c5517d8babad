package schedule

import (
	"assignman/bizerror"
	"assignman/common"
	"assignman/domain"
	"assignman/domain/auth"
	"assignman/persistence"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
)

var (
	BuildMemberScheduleFunc = BuildMemberSchedule
)

type AssignmentKind string

const (
	KindDetailed = AssignmentKind("DETAILED")
	KindOngoing  = AssignmentKind("ONGOING")
)

// ScheduleViewer identifies who is asking: exactly one of the ids is set.
// Members may only view their own schedule; administrators may view any
// schedule inside their organization.
type ScheduleViewer struct {
	MemberID        types.ID `json:"memberId"`
	AdministratorID types.ID `json:"administratorId"`
}

type ScheduleQuery struct {
	MemberID  types.ID    `json:"memberId"`
	StartDate domain.Date `json:"startDate"`
	EndDate   domain.Date `json:"endDate"`

	Viewer ScheduleViewer `json:"viewer"`
}

// ScheduleEntry is one assignment's contribution on one date.
type ScheduleEntry struct {
	AssignmentID types.ID       `json:"assignmentId"`
	Kind         AssignmentKind `json:"kind"`
	ProjectID    types.ID       `json:"projectId"`
	ProjectName  string         `json:"projectName"`

	DailyHours float64      `json:"dailyHours"`
	StartDate  domain.Date  `json:"startDate"`
	EndDate    *domain.Date `json:"endDate"`
}

type ScheduleDay struct {
	Date    domain.Date `json:"date"`
	Weekend bool        `json:"weekend"`

	TotalHours  float64         `json:"totalHours"`
	Assignments []ScheduleEntry `json:"assignments"`
}

type ScheduleSummary struct {
	TotalAssignments int `json:"totalAssignments"`

	// averages and maxima are taken over weekdays only
	AverageDailyHours float64 `json:"averageDailyHours"`
	MaxDailyHours     float64 `json:"maxDailyHours"`
	TotalHours        float64 `json:"totalHours"`
}

type ScheduleView struct {
	MemberID   types.ID    `json:"memberId"`
	MemberName string      `json:"memberName"`
	StartDate  domain.Date `json:"startDate"`
	EndDate    domain.Date `json:"endDate"`

	Days    []ScheduleDay   `json:"days"`
	Summary ScheduleSummary `json:"summary"`
}

// BuildMemberSchedule produces the day-by-day calendar of a member's
// confirmed and ongoing assignments over an inclusive date range. Weekend
// buckets list covering assignments for visibility but never contribute
// hours.
func BuildMemberSchedule(q ScheduleQuery) (*ScheduleView, error) {
	if q.MemberID == 0 || q.StartDate.IsZero() || q.EndDate.IsZero() {
		return nil, bizerror.ErrInvalidArguments
	}
	if q.EndDate.Before(q.StartDate) {
		return nil, bizerror.ErrInvalidDateRange
	}

	db := persistence.ActiveDataSourceManager.GormDB()
	member := domain.Member{}
	if err := db.Where("id = ?", q.MemberID).First(&member).Error; err != nil {
		return nil, err
	}
	if err := authorizeViewer(db, &member, q.Viewer); err != nil {
		return nil, err
	}

	var detailed []domain.DetailedProjectAssignment
	if err := db.Where("member_id = ? AND start_date <= ? AND end_date >= ?",
		member.ID, q.EndDate.Time(), q.StartDate.Time()).
		Order("start_date ASC").Find(&detailed).Error; err != nil {
		return nil, err
	}
	var ongoing []domain.OngoingAssignment
	if err := db.Where("member_id = ? AND start_date <= ? AND (end_date IS NULL OR end_date >= ?)",
		member.ID, q.EndDate.Time(), q.StartDate.Time()).
		Order("start_date ASC").Find(&ongoing).Error; err != nil {
		return nil, err
	}

	standardNames, err := projectNames(db, &domain.StandardProject{}, standardProjectIds(detailed))
	if err != nil {
		return nil, err
	}
	ongoingNames, err := projectNames(db, &domain.OngoingProject{}, ongoingProjectIds(ongoing))
	if err != nil {
		return nil, err
	}

	view := ScheduleView{MemberID: member.ID, MemberName: member.Name, StartDate: q.StartDate, EndDate: q.EndDate}
	dayIndex := map[string]int{}
	for d := q.StartDate; !d.After(q.EndDate); d = d.AddDays(1) {
		dayIndex[d.String()] = len(view.Days)
		view.Days = append(view.Days, ScheduleDay{Date: d, Weekend: d.IsWeekend(), Assignments: []ScheduleEntry{}})
	}

	totals := make([]float64, len(view.Days))
	for i := range detailed {
		a := &detailed[i]
		entry := ScheduleEntry{AssignmentID: a.ID, Kind: KindDetailed, ProjectID: a.StandardProjectID,
			ProjectName: standardNames[a.StandardProjectID], StartDate: a.StartDate, EndDate: &detailed[i].EndDate}
		addSpan(view.Days, totals, dayIndex, a, entry, q.StartDate, q.EndDate)
	}
	for i := range ongoing {
		a := &ongoing[i]
		entry := ScheduleEntry{AssignmentID: a.ID, Kind: KindOngoing, ProjectID: a.OngoingProjectID,
			ProjectName: ongoingNames[a.OngoingProjectID], StartDate: a.StartDate, EndDate: a.EndDate}
		addSpan(view.Days, totals, dayIndex, a, entry, q.StartDate, q.EndDate)
	}

	weekdays := 0
	sum := 0.0
	max := 0.0
	for i := range view.Days {
		view.Days[i].TotalHours = common.Round1(totals[i])
		if view.Days[i].Weekend {
			continue
		}
		weekdays++
		sum += totals[i]
		if totals[i] > max {
			max = totals[i]
		}
	}
	view.Summary.TotalAssignments = len(detailed) + len(ongoing)
	if weekdays > 0 {
		view.Summary.AverageDailyHours = common.Round1(sum / float64(weekdays))
	}
	view.Summary.MaxDailyHours = common.Round1(max)
	view.Summary.TotalHours = common.Round1(sum)
	return &view, nil
}

func authorizeViewer(db *gorm.DB, member *domain.Member, viewer ScheduleViewer) error {
	if viewer.MemberID != 0 {
		viewingMember := domain.Member{}
		if err := db.Where("id = ?", viewer.MemberID).First(&viewingMember).Error; err != nil {
			return err
		}
		if !auth.MemberCanViewSchedule(&viewingMember, member) {
			return bizerror.ErrForbidden
		}
		return nil
	}
	if viewer.AdministratorID != 0 {
		admin, err := auth.ActingAdministrator(db, viewer.AdministratorID)
		if err != nil {
			return err
		}
		if !auth.AdministratorCanViewSchedule(admin, member) {
			return bizerror.ErrForbidden
		}
		return nil
	}
	return bizerror.ErrForbidden
}

// addSpan clips the assignment span to the requested range and appends one
// entry per covered date. Hours land in the day total through the weekday-only
// DailyHours contract.
func addSpan(days []ScheduleDay, totals []float64, dayIndex map[string]int,
	span domain.SchedulableSpan, entry ScheduleEntry, rangeStart, rangeEnd domain.Date) {

	from := domain.MaxDate(span.SpanStart(), rangeStart)
	to := rangeEnd
	if end, bounded := span.SpanEnd(); bounded {
		to = domain.MinDate(end, rangeEnd)
	}

	for d := from; !d.After(to); d = d.AddDays(1) {
		idx, found := dayIndex[d.String()]
		if !found {
			continue
		}
		e := entry
		e.DailyHours = common.Round1(span.DailyHours(d))
		days[idx].Assignments = append(days[idx].Assignments, e)
		totals[idx] += span.DailyHours(d)
	}
}

func standardProjectIds(assignments []domain.DetailedProjectAssignment) []types.ID {
	ids := []types.ID{}
	for i := range assignments {
		ids = append(ids, assignments[i].StandardProjectID)
	}
	return ids
}

func ongoingProjectIds(assignments []domain.OngoingAssignment) []types.ID {
	ids := []types.ID{}
	for i := range assignments {
		ids = append(ids, assignments[i].OngoingProjectID)
	}
	return ids
}

func projectNames(db *gorm.DB, model interface{}, ids []types.ID) (map[types.ID]string, error) {
	result := map[types.ID]string{}
	if len(ids) == 0 {
		return result, nil
	}
	rows := []struct {
		ID   types.ID
		Name string
	}{}
	if err := db.Model(model).Where("id IN (?)", ids).Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		result[r.ID] = r.Name
	}
	return result, nil
}
