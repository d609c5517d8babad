package project

import (
	"assignman/bizerror"
	"assignman/domain"
	"assignman/domain/auth"
	"assignman/idgen"
	"assignman/persistence"
	"assignman/session"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	"github.com/sony/sonyflake"
)

var (
	projectIdWorker = sonyflake.NewSonyflake(sonyflake.Settings{})

	CreateStandardProjectFunc       = CreateStandardProject
	CreateOngoingProjectFunc        = CreateOngoingProject
	UpdateStandardProjectStatusFunc = UpdateStandardProjectStatus
	UpdateOngoingProjectStatusFunc  = UpdateOngoingProjectStatus
	QueryStandardProjectsFunc       = QueryStandardProjects
	QueryOngoingProjectsFunc        = QueryOngoingProjects
)

type StandardProjectStatusUpdating struct {
	Status domain.StandardProjectStatus `json:"status" binding:"required"`
}

type OngoingProjectStatusUpdating struct {
	Status domain.OngoingProjectStatus `json:"status" binding:"required"`
}

// CreateStandardProject creates a bounded project together with its project
// plan; the two records always exist as a pair.
func CreateStandardProject(c *domain.StandardProjectCreation, sec *session.Context) (*domain.StandardProject, error) {
	if c.EndDate.Before(c.StartDate) {
		return nil, bizerror.ErrInvalidDateRange
	}

	var record *domain.StandardProject
	txErr := persistence.ActiveDataSourceManager.GormDB().Transaction(func(tx *gorm.DB) error {
		admin, err := auth.ActingAdministrator(tx, sec.AdministratorID)
		if err != nil {
			return err
		}
		if admin.OrganizationID != c.OrganizationID {
			return bizerror.ErrForbidden
		}

		now := types.CurrentTimestamp()
		p := domain.StandardProject{
			ID:             idgen.NextID(projectIdWorker),
			OrganizationID: c.OrganizationID,
			Name:           c.Name,
			StartDate:      c.StartDate,
			EndDate:        c.EndDate,
			Status:         domain.ProjectStatusTentative,
			BudgetHours:    c.BudgetHours,
			ClientName:     c.ClientName,
			Notes:          c.Notes,
			CreateTime:     now,
		}
		if err := tx.Create(&p).Error; err != nil {
			return err
		}
		plan := domain.ProjectPlan{ID: idgen.NextID(projectIdWorker), StandardProjectID: p.ID, CreateTime: now}
		if err := tx.Create(&plan).Error; err != nil {
			return err
		}
		record = &p
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return record, nil
}

func CreateOngoingProject(c *domain.OngoingProjectCreation, sec *session.Context) (*domain.OngoingProject, error) {
	if c.Budget != nil && *c.Budget <= 0 {
		return nil, bizerror.ErrInvalidArguments
	}

	db := persistence.ActiveDataSourceManager.GormDB()
	admin, err := auth.ActingAdministrator(db, sec.AdministratorID)
	if err != nil {
		return nil, err
	}
	if admin.OrganizationID != c.OrganizationID {
		return nil, bizerror.ErrForbidden
	}

	p := domain.OngoingProject{
		ID:             idgen.NextID(projectIdWorker),
		OrganizationID: c.OrganizationID,
		Name:           c.Name,
		Status:         domain.OngoingProjectStatusActive,
		Budget:         c.Budget,
		ClientName:     c.ClientName,
		Notes:          c.Notes,
		CreateTime:     types.CurrentTimestamp(),
	}
	if err := db.Create(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func UpdateStandardProjectStatus(id types.ID, u *StandardProjectStatusUpdating, sec *session.Context) error {
	if u.Status != domain.ProjectStatusTentative && u.Status != domain.ProjectStatusConfirmed &&
		u.Status != domain.ProjectStatusArchived {
		return bizerror.ErrInvalidArguments
	}

	return persistence.ActiveDataSourceManager.GormDB().Transaction(func(tx *gorm.DB) error {
		p := domain.StandardProject{}
		if err := tx.Where("id = ?", id).First(&p).Error; err != nil {
			return err
		}
		admin, err := auth.ActingAdministrator(tx, sec.AdministratorID)
		if err != nil {
			return err
		}
		if !auth.CanManageStandardProject(admin, &p) {
			return bizerror.ErrForbidden
		}
		return tx.Model(&p).Update("status", u.Status).Error
	})
}

func UpdateOngoingProjectStatus(id types.ID, u *OngoingProjectStatusUpdating, sec *session.Context) error {
	if u.Status != domain.OngoingProjectStatusActive && u.Status != domain.OngoingProjectStatusInactive {
		return bizerror.ErrInvalidArguments
	}

	return persistence.ActiveDataSourceManager.GormDB().Transaction(func(tx *gorm.DB) error {
		p := domain.OngoingProject{}
		if err := tx.Where("id = ?", id).First(&p).Error; err != nil {
			return err
		}
		admin, err := auth.ActingAdministrator(tx, sec.AdministratorID)
		if err != nil {
			return err
		}
		if !auth.CanManageOngoingProject(admin, &p) {
			return bizerror.ErrForbidden
		}
		return tx.Model(&p).Update("status", u.Status).Error
	})
}

func QueryStandardProjects(sec *session.Context) (*[]domain.StandardProject, error) {
	db := persistence.ActiveDataSourceManager.GormDB()
	admin, err := auth.ActingAdministrator(db, sec.AdministratorID)
	if err != nil {
		return nil, err
	}
	var projects []domain.StandardProject
	if err := db.Where("organization_id = ?", admin.OrganizationID).
		Order("start_date ASC").Find(&projects).Error; err != nil {
		return nil, err
	}
	return &projects, nil
}

func QueryOngoingProjects(sec *session.Context) (*[]domain.OngoingProject, error) {
	db := persistence.ActiveDataSourceManager.GormDB()
	admin, err := auth.ActingAdministrator(db, sec.AdministratorID)
	if err != nil {
		return nil, err
	}
	var projects []domain.OngoingProject
	if err := db.Where("organization_id = ?", admin.OrganizationID).
		Order("name ASC").Find(&projects).Error; err != nil {
		return nil, err
	}
	return &projects, nil
}
