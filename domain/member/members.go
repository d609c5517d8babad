package member

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
	memberIdWorker = sonyflake.NewSonyflake(sonyflake.Settings{})

	CreateMemberFunc = CreateMember
	UpdateMemberFunc = UpdateMember
	DeleteMemberFunc = DeleteMember
	QueryMembersFunc = QueryMembers
)

func CreateMember(c *domain.MemberCreation, sec *session.Context) (*domain.Member, error) {
	db := persistence.ActiveDataSourceManager.GormDB()
	admin, err := auth.ActingAdministrator(db, sec.AdministratorID)
	if err != nil {
		return nil, err
	}
	if admin.OrganizationID != c.OrganizationID {
		return nil, bizerror.ErrForbidden
	}

	m := domain.Member{
		ID:                   idgen.NextID(memberIdWorker),
		OrganizationID:       c.OrganizationID,
		Name:                 c.Name,
		StandardWorkingHours: c.StandardWorkingHours,
		CreateTime:           types.CurrentTimestamp(),
	}
	if err := db.Create(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func UpdateMember(id types.ID, u *domain.MemberUpdating, sec *session.Context) (*domain.Member, error) {
	var record *domain.Member
	txErr := persistence.ActiveDataSourceManager.GormDB().Transaction(func(tx *gorm.DB) error {
		m := domain.Member{}
		if err := tx.Where("id = ?", id).First(&m).Error; err != nil {
			return err
		}
		admin, err := auth.ActingAdministrator(tx, sec.AdministratorID)
		if err != nil {
			return err
		}
		if !auth.CanActOnMember(admin, &m) {
			return bizerror.ErrForbidden
		}

		if err := tx.Model(&m).
			Updates(map[string]interface{}{"name": u.Name, "standard_working_hours": u.StandardWorkingHours}).
			Error; err != nil {
			return err
		}
		m.Name = u.Name
		m.StandardWorkingHours = u.StandardWorkingHours
		record = &m
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return record, nil
}

// DeleteMember removes the member together with every assignment and skill
// link the member owns.
func DeleteMember(id types.ID, sec *session.Context) error {
	return persistence.ActiveDataSourceManager.GormDB().Transaction(func(tx *gorm.DB) error {
		m := domain.Member{}
		if err := tx.Where("id = ?", id).First(&m).Error; err != nil {
			return err
		}
		admin, err := auth.ActingAdministrator(tx, sec.AdministratorID)
		if err != nil {
			return err
		}
		if !auth.CanActOnMember(admin, &m) {
			return bizerror.ErrForbidden
		}

		if err := tx.Where("member_id = ?", m.ID).Delete(&domain.RoughProjectAssignment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("member_id = ?", m.ID).Delete(&domain.DetailedProjectAssignment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("member_id = ?", m.ID).Delete(&domain.OngoingAssignment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("member_id = ?", m.ID).Delete(&domain.MemberSkill{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", m.ID).Delete(&domain.Member{}).Error
	})
}

func QueryMembers(sec *session.Context) (*[]domain.Member, error) {
	db := persistence.ActiveDataSourceManager.GormDB()
	admin, err := auth.ActingAdministrator(db, sec.AdministratorID)
	if err != nil {
		return nil, err
	}

	var members []domain.Member
	if err := db.Where("organization_id = ?", admin.OrganizationID).
		Order("name ASC").Find(&members).Error; err != nil {
		return nil, err
	}
	return &members, nil
}

func QueryMemberNames(ids []types.ID) (map[types.ID]string, error) {
	if len(ids) == 0 {
		return map[types.ID]string{}, nil
	}
	var records []domain.Member
	if err := persistence.ActiveDataSourceManager.GormDB().
		Where("id IN (?)", ids).Find(&records).Error; err != nil {
		return nil, err
	}
	result := map[types.ID]string{}
	for _, r := range records {
		result[r.ID] = r.Name
	}
	return result, nil
}
