package skill

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
	skillIdWorker = sonyflake.NewSonyflake(sonyflake.Settings{})

	CreateSkillFunc         = CreateSkill
	AssignSkillToMemberFunc = AssignSkillToMember
	QuerySkillsFunc         = QuerySkills
	QueryMemberSkillsFunc   = QueryMemberSkills
)

func CreateSkill(c *domain.SkillCreation, sec *session.Context) (*domain.Skill, error) {
	var record *domain.Skill
	txErr := persistence.ActiveDataSourceManager.GormDB().Transaction(func(tx *gorm.DB) error {
		admin, err := auth.ActingAdministrator(tx, sec.AdministratorID)
		if err != nil {
			return err
		}
		if admin.OrganizationID != c.OrganizationID {
			return bizerror.ErrForbidden
		}

		count := 0
		if err := tx.Model(&domain.Skill{}).
			Where("organization_id = ? AND name = ?", c.OrganizationID, c.Name).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return bizerror.ErrDuplicatedRecord
		}

		s := domain.Skill{
			ID:             idgen.NextID(skillIdWorker),
			OrganizationID: c.OrganizationID,
			Name:           c.Name,
			CreateTime:     types.CurrentTimestamp(),
		}
		if err := tx.Create(&s).Error; err != nil {
			return err
		}
		record = &s
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return record, nil
}

// AssignSkillToMember links a member to a skill. The member and the skill
// must belong to the same organization as the acting administrator.
func AssignSkillToMember(a *domain.MemberSkillAssigning, sec *session.Context) (*domain.MemberSkill, error) {
	var record *domain.MemberSkill
	txErr := persistence.ActiveDataSourceManager.GormDB().Transaction(func(tx *gorm.DB) error {
		admin, err := auth.ActingAdministrator(tx, sec.AdministratorID)
		if err != nil {
			return err
		}
		member := domain.Member{}
		if err := tx.Where("id = ?", a.MemberID).First(&member).Error; err != nil {
			return err
		}
		s := domain.Skill{}
		if err := tx.Where("id = ?", a.SkillID).First(&s).Error; err != nil {
			return err
		}
		if !auth.SameOrganization(member.OrganizationID, s.OrganizationID) {
			return bizerror.ErrOrganizationMismatch
		}
		if !auth.CanActOnMember(admin, &member) {
			return bizerror.ErrForbidden
		}

		count := 0
		if err := tx.Model(&domain.MemberSkill{}).
			Where("member_id = ? AND skill_id = ?", a.MemberID, a.SkillID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return bizerror.ErrDuplicatedRecord
		}

		ms := domain.MemberSkill{
			ID:         idgen.NextID(skillIdWorker),
			MemberID:   a.MemberID,
			SkillID:    a.SkillID,
			CreateTime: types.CurrentTimestamp(),
		}
		if err := tx.Create(&ms).Error; err != nil {
			return err
		}
		record = &ms
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return record, nil
}

func QuerySkills(sec *session.Context) (*[]domain.Skill, error) {
	db := persistence.ActiveDataSourceManager.GormDB()
	admin, err := auth.ActingAdministrator(db, sec.AdministratorID)
	if err != nil {
		return nil, err
	}
	var skills []domain.Skill
	if err := db.Where("organization_id = ?", admin.OrganizationID).
		Order("name ASC").Find(&skills).Error; err != nil {
		return nil, err
	}
	return &skills, nil
}

// MemberSkillDetail carries the skill name along with the link record.
type MemberSkillDetail struct {
	domain.MemberSkill
	SkillName string `json:"skillName"`
}

func QueryMemberSkills(memberID types.ID, sec *session.Context) (*[]MemberSkillDetail, error) {
	db := persistence.ActiveDataSourceManager.GormDB()
	admin, err := auth.ActingAdministrator(db, sec.AdministratorID)
	if err != nil {
		return nil, err
	}
	member := domain.Member{}
	if err := db.Where("id = ?", memberID).First(&member).Error; err != nil {
		return nil, err
	}
	if !auth.CanActOnMember(admin, &member) {
		return nil, bizerror.ErrForbidden
	}

	var links []domain.MemberSkill
	if err := db.Where("member_id = ?", memberID).Order("create_time ASC").Find(&links).Error; err != nil {
		return nil, err
	}
	skillIds := []types.ID{}
	for i := range links {
		skillIds = append(skillIds, links[i].SkillID)
	}
	nameOf := map[types.ID]string{}
	if len(skillIds) > 0 {
		var skills []domain.Skill
		if err := db.Where("id IN (?)", skillIds).Find(&skills).Error; err != nil {
			return nil, err
		}
		for _, s := range skills {
			nameOf[s.ID] = s.Name
		}
	}

	details := []MemberSkillDetail{}
	for i := range links {
		details = append(details, MemberSkillDetail{MemberSkill: links[i], SkillName: nameOf[links[i].SkillID]})
	}
	return &details, nil
}
