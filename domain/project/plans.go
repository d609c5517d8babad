package project

import (
	"assignman/bizerror"
	"assignman/common"
	"assignman/domain"
	"assignman/domain/auth"
	"assignman/domain/member"
	"assignman/persistence"
	"assignman/session"

	"github.com/fundwit/go-commons/types"
)

var (
	DetailProjectPlanFunc = DetailProjectPlan
)

// ProjectPlanDetail is the hour-budget ledger of a standard project: the
// rough and detailed totals and what remains of the budget, when one is set.
type ProjectPlanDetail struct {
	domain.ProjectPlan

	TotalRoughHours      float64  `json:"totalRoughHours"`
	TotalDetailedHours   float64  `json:"totalDetailedHours"`
	TotalScheduledHours  float64  `json:"totalScheduledHours"`
	RemainingBudgetHours *float64 `json:"remainingBudgetHours"`

	Members []PlanMemberAssignments `json:"members"`
}

// PlanMemberAssignments groups a member's rough and detailed assignments on
// the plan's project.
type PlanMemberAssignments struct {
	MemberID   types.ID `json:"memberId"`
	MemberName string   `json:"memberName"`

	RoughAssignments    []domain.RoughProjectAssignment    `json:"roughAssignments"`
	DetailedAssignments []domain.DetailedProjectAssignment `json:"detailedAssignments"`
}

func DetailProjectPlan(standardProjectID types.ID, sec *session.Context) (*ProjectPlanDetail, error) {
	db := persistence.ActiveDataSourceManager.GormDB()

	p := domain.StandardProject{}
	if err := db.Where("id = ?", standardProjectID).First(&p).Error; err != nil {
		return nil, err
	}
	admin, err := auth.ActingAdministrator(db, sec.AdministratorID)
	if err != nil {
		return nil, err
	}
	if !auth.CanManageStandardProject(admin, &p) {
		return nil, bizerror.ErrForbidden
	}

	plan := domain.ProjectPlan{}
	if err := db.Where("standard_project_id = ?", p.ID).First(&plan).Error; err != nil {
		return nil, err
	}

	var rough []domain.RoughProjectAssignment
	if err := db.Where("standard_project_id = ?", p.ID).Order("start_date ASC").Find(&rough).Error; err != nil {
		return nil, err
	}
	var detailed []domain.DetailedProjectAssignment
	if err := db.Where("standard_project_id = ?", p.ID).Order("start_date ASC").Find(&detailed).Error; err != nil {
		return nil, err
	}

	detail := ProjectPlanDetail{ProjectPlan: plan}
	for i := range rough {
		detail.TotalRoughHours += rough[i].ScheduledHours
	}
	for i := range detailed {
		detail.TotalDetailedHours += detailed[i].ScheduledHours
	}
	detail.TotalRoughHours = common.Round1(detail.TotalRoughHours)
	detail.TotalDetailedHours = common.Round1(detail.TotalDetailedHours)
	detail.TotalScheduledHours = common.Round1(detail.TotalRoughHours + detail.TotalDetailedHours)
	if p.BudgetHours != nil {
		remaining := common.Round1(*p.BudgetHours - detail.TotalScheduledHours)
		detail.RemainingBudgetHours = &remaining
	}

	detail.Members, err = groupPlanMembers(rough, detailed)
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

func groupPlanMembers(rough []domain.RoughProjectAssignment,
	detailed []domain.DetailedProjectAssignment) ([]PlanMemberAssignments, error) {

	byMember := map[types.ID]*PlanMemberAssignments{}
	order := []types.ID{}
	ensure := func(memberID types.ID) *PlanMemberAssignments {
		if g, found := byMember[memberID]; found {
			return g
		}
		g := &PlanMemberAssignments{MemberID: memberID,
			RoughAssignments:    []domain.RoughProjectAssignment{},
			DetailedAssignments: []domain.DetailedProjectAssignment{}}
		byMember[memberID] = g
		order = append(order, memberID)
		return g
	}

	for i := range rough {
		g := ensure(rough[i].MemberID)
		g.RoughAssignments = append(g.RoughAssignments, rough[i])
	}
	for i := range detailed {
		g := ensure(detailed[i].MemberID)
		g.DetailedAssignments = append(g.DetailedAssignments, detailed[i])
	}

	nameOf, err := member.QueryMemberNames(order)
	if err != nil {
		return nil, err
	}

	result := []PlanMemberAssignments{}
	for _, id := range order {
		g := byMember[id]
		g.MemberName = nameOf[id]
		result = append(result, *g)
	}
	return result, nil
}
