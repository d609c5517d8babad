package assignment

import (
	"assignman/bizerror"
	"assignman/domain"
	"assignman/domain/auth"
	"assignman/idgen"
	"assignman/persistence"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	"github.com/sony/sonyflake"
)

var (
	assignmentIdWorker = sonyflake.NewSonyflake(sonyflake.Settings{})

	CreateRoughAssignmentFunc         = CreateRoughAssignment
	DeleteRoughAssignmentFunc         = DeleteRoughAssignment
	ConfirmRoughAssignmentFunc        = ConfirmRoughAssignment
	CreateOngoingAssignmentFunc       = CreateOngoingAssignment
	AcknowledgeDetailedAssignmentFunc = AcknowledgeDetailedAssignment
)

type RoughAssignmentCreation struct {
	StandardProjectID types.ID    `json:"standardProjectId" binding:"required"`
	MemberID          types.ID    `json:"memberId" binding:"required"`
	StartDate         domain.Date `json:"startDate" binding:"required"`
	EndDate           domain.Date `json:"endDate" binding:"required"`
	ScheduledHours    float64     `json:"scheduledHours" binding:"required,gt=0,lte=999"`

	// filled from the session when absent in the request body
	AdministratorID types.ID `json:"administratorId"`
}

type OngoingAssignmentCreation struct {
	OngoingProjectID     types.ID     `json:"ongoingProjectId" binding:"required"`
	MemberID             types.ID     `json:"memberId" binding:"required"`
	StartDate            domain.Date  `json:"startDate" binding:"required"`
	EndDate              *domain.Date `json:"endDate"`
	WeeklyScheduledHours float64      `json:"weeklyScheduledHours" binding:"required,gt=0,lte=80"`

	// filled from the session when absent in the request body
	AdministratorID types.ID `json:"administratorId"`
}

// CreateRoughAssignment creates a draft allocation. Drafts form a single
// planning lane per member: a date range overlapping any other rough
// assignment of the member is rejected, regardless of project. Drafts are
// invisible to capacity accounting.
func CreateRoughAssignment(c RoughAssignmentCreation) (*domain.RoughProjectAssignment, error) {
	if c.StandardProjectID == 0 || c.MemberID == 0 || c.AdministratorID == 0 ||
		c.StartDate.IsZero() || c.EndDate.IsZero() {
		return nil, bizerror.ErrInvalidArguments
	}
	if c.ScheduledHours <= 0 || c.ScheduledHours > 999 {
		return nil, bizerror.ErrInvalidArguments
	}
	if c.EndDate.Before(c.StartDate) {
		return nil, bizerror.ErrInvalidDateRange
	}

	var record *domain.RoughProjectAssignment
	txErr := persistence.ActiveDataSourceManager.GormDB().Transaction(func(tx *gorm.DB) error {
		project := domain.StandardProject{}
		if err := tx.Where("id = ?", c.StandardProjectID).First(&project).Error; err != nil {
			return err
		}
		member := domain.Member{}
		if err := tx.Where("id = ?", c.MemberID).First(&member).Error; err != nil {
			return err
		}
		admin := domain.Administrator{}
		if err := tx.Where("id = ?", c.AdministratorID).First(&admin).Error; err != nil {
			return err
		}

		if !auth.SameOrganization(project.OrganizationID, member.OrganizationID, admin.OrganizationID) {
			return bizerror.ErrOrganizationMismatch
		}
		if !auth.CanManageStandardProject(&admin, &project) {
			return bizerror.ErrForbidden
		}

		overlapping := 0
		if err := tx.Model(&domain.RoughProjectAssignment{}).
			Where("member_id = ? AND start_date <= ? AND end_date >= ?",
				member.ID, c.EndDate.Time(), c.StartDate.Time()).
			Count(&overlapping).Error; err != nil {
			return err
		}
		if overlapping > 0 {
			return bizerror.ErrRoughAssignmentOverlap
		}

		a := domain.RoughProjectAssignment{
			ID:                idgen.NextID(assignmentIdWorker),
			StandardProjectID: project.ID,
			MemberID:          member.ID,
			StartDate:         c.StartDate,
			EndDate:           c.EndDate,
			ScheduledHours:    c.ScheduledHours,
			CreateTime:        types.CurrentTimestamp(),
		}
		if err := tx.Create(&a).Error; err != nil {
			return err
		}
		record = &a
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return record, nil
}

// DeleteRoughAssignment removes a draft outright.
func DeleteRoughAssignment(id types.ID, administratorID types.ID) error {
	return persistence.ActiveDataSourceManager.GormDB().Transaction(func(tx *gorm.DB) error {
		rough := domain.RoughProjectAssignment{}
		if err := tx.Where("id = ?", id).First(&rough).Error; err != nil {
			return err
		}
		project := domain.StandardProject{}
		if err := tx.Where("id = ?", rough.StandardProjectID).First(&project).Error; err != nil {
			return err
		}
		admin := domain.Administrator{}
		if err := tx.Where("id = ?", administratorID).First(&admin).Error; err != nil {
			return err
		}
		if !auth.CanManageStandardProject(&admin, &project) {
			return bizerror.ErrForbidden
		}
		return tx.Where("id = ?", rough.ID).Delete(&domain.RoughProjectAssignment{}).Error
	})
}

// ConfirmRoughAssignment converts a draft into a confirmed detailed
// assignment with identical member, project, dates and hours. The conversion
// is all-or-nothing: on any failure the draft stays untouched and no detailed
// assignment is persisted.
func ConfirmRoughAssignment(roughAssignmentID, administratorID types.ID) (*domain.DetailedProjectAssignment, error) {
	db := persistence.ActiveDataSourceManager.GormDB()
	peek := domain.RoughProjectAssignment{}
	if err := db.Where("id = ?", roughAssignmentID).First(&peek).Error; err != nil {
		return nil, err
	}

	unlock := lockMember(peek.MemberID)
	defer unlock()

	var record *domain.DetailedProjectAssignment
	txErr := db.Transaction(func(tx *gorm.DB) error {
		// re-fetch under the member lock: the draft may have been confirmed
		// or deleted by a competing request
		rough := domain.RoughProjectAssignment{}
		if err := tx.Where("id = ?", roughAssignmentID).First(&rough).Error; err != nil {
			return err
		}
		project := domain.StandardProject{}
		if err := tx.Where("id = ?", rough.StandardProjectID).First(&project).Error; err != nil {
			return err
		}
		member := domain.Member{}
		if err := tx.Where("id = ?", rough.MemberID).First(&member).Error; err != nil {
			return err
		}
		admin := domain.Administrator{}
		if err := tx.Where("id = ?", administratorID).First(&admin).Error; err != nil {
			return err
		}

		if !auth.SameOrganization(project.OrganizationID, member.OrganizationID, admin.OrganizationID) {
			return bizerror.ErrOrganizationMismatch
		}
		if !auth.CanManageStandardProject(&admin, &project) {
			return bizerror.ErrForbidden
		}
		if rough.StartDate.Before(project.StartDate) || rough.EndDate.After(project.EndDate) {
			return bizerror.ErrDatesOutsideProject
		}

		candidateDaily := 0.0
		if workingDays := rough.WorkingDaysCount(); workingDays > 0 {
			candidateDaily = rough.ScheduledHours / float64(workingDays)
		}
		endDate := rough.EndDate
		if err := checkMemberCapacity(tx, &member, rough.StartDate, &endDate, candidateDaily, 0, 0); err != nil {
			return err
		}

		detailed := domain.DetailedProjectAssignment{
			ID:                idgen.NextID(assignmentIdWorker),
			StandardProjectID: rough.StandardProjectID,
			MemberID:          rough.MemberID,
			StartDate:         rough.StartDate,
			EndDate:           rough.EndDate,
			ScheduledHours:    rough.ScheduledHours,
			CreateTime:        types.CurrentTimestamp(),
		}
		if err := tx.Create(&detailed).Error; err != nil {
			return err
		}
		if err := tx.Where("id = ?", rough.ID).Delete(&domain.RoughProjectAssignment{}).Error; err != nil {
			return err
		}
		record = &detailed
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return record, nil
}

// CreateOngoingAssignment creates an open-ended allocation. Ongoing
// commitments are immediately binding, so the capacity check runs on creation.
func CreateOngoingAssignment(c OngoingAssignmentCreation) (*domain.OngoingAssignment, error) {
	if c.OngoingProjectID == 0 || c.MemberID == 0 || c.AdministratorID == 0 || c.StartDate.IsZero() {
		return nil, bizerror.ErrInvalidArguments
	}
	if c.WeeklyScheduledHours <= 0 || c.WeeklyScheduledHours > 80 {
		return nil, bizerror.ErrInvalidArguments
	}
	if c.EndDate != nil && c.EndDate.Before(c.StartDate) {
		return nil, bizerror.ErrInvalidDateRange
	}

	unlock := lockMember(c.MemberID)
	defer unlock()

	var record *domain.OngoingAssignment
	txErr := persistence.ActiveDataSourceManager.GormDB().Transaction(func(tx *gorm.DB) error {
		project := domain.OngoingProject{}
		if err := tx.Where("id = ?", c.OngoingProjectID).First(&project).Error; err != nil {
			return err
		}
		member := domain.Member{}
		if err := tx.Where("id = ?", c.MemberID).First(&member).Error; err != nil {
			return err
		}
		admin := domain.Administrator{}
		if err := tx.Where("id = ?", c.AdministratorID).First(&admin).Error; err != nil {
			return err
		}

		if !auth.SameOrganization(project.OrganizationID, member.OrganizationID, admin.OrganizationID) {
			return bizerror.ErrOrganizationMismatch
		}
		if !auth.CanManageOngoingProject(&admin, &project) {
			return bizerror.ErrForbidden
		}

		candidateDaily := c.WeeklyScheduledHours / 5
		if err := checkMemberCapacity(tx, &member, c.StartDate, c.EndDate, candidateDaily, 0, 0); err != nil {
			return err
		}

		a := domain.OngoingAssignment{
			ID:                   idgen.NextID(assignmentIdWorker),
			OngoingProjectID:     project.ID,
			MemberID:             member.ID,
			StartDate:            c.StartDate,
			EndDate:              c.EndDate,
			WeeklyScheduledHours: c.WeeklyScheduledHours,
			CreateTime:           types.CurrentTimestamp(),
		}
		if err := tx.Create(&a).Error; err != nil {
			return err
		}
		record = &a
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return record, nil
}

// AcknowledgeDetailedAssignment confirms a member has seen their own
// confirmed assignment. No state is persisted yet; the operation is the
// authorization check and an echo of the assignment.
func AcknowledgeDetailedAssignment(detailedAssignmentID, memberID types.ID) (*domain.DetailedProjectAssignment, error) {
	if detailedAssignmentID == 0 || memberID == 0 {
		return nil, bizerror.ErrInvalidArguments
	}

	db := persistence.ActiveDataSourceManager.GormDB()
	detailed := domain.DetailedProjectAssignment{}
	if err := db.Where("id = ?", detailedAssignmentID).First(&detailed).Error; err != nil {
		return nil, err
	}
	member := domain.Member{}
	if err := db.Where("id = ?", memberID).First(&member).Error; err != nil {
		return nil, err
	}
	project := domain.StandardProject{}
	if err := db.Where("id = ?", detailed.StandardProjectID).First(&project).Error; err != nil {
		return nil, err
	}

	if !auth.SameOrganization(member.OrganizationID, project.OrganizationID) {
		return nil, bizerror.ErrOrganizationMismatch
	}
	if !auth.CanAcknowledgeAssignment(&member, &detailed) {
		return nil, bizerror.ErrForbidden
	}
	return &detailed, nil
}
