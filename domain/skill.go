package domain

import (
	"github.com/fundwit/go-commons/types"
)

// Skill is an organization-scoped capability tag, unique by name within the
// organization.
type Skill struct {
	ID             types.ID `json:"id" gorm:"primary_key"`
	OrganizationID types.ID `json:"organizationId" gorm:"unique_index:skill_org_name_unique"`
	Name           string   `json:"name" gorm:"unique_index:skill_org_name_unique"`

	CreateTime types.Timestamp `json:"createTime" sql:"type:DATETIME(6) NOT NULL"`
}

// MemberSkill links a member to a skill of the same organization, at most once.
type MemberSkill struct {
	ID       types.ID `json:"id" gorm:"primary_key"`
	MemberID types.ID `json:"memberId" gorm:"unique_index:member_skill_unique"`
	SkillID  types.ID `json:"skillId" gorm:"unique_index:member_skill_unique"`

	CreateTime types.Timestamp `json:"createTime" sql:"type:DATETIME(6) NOT NULL"`
}

type SkillCreation struct {
	OrganizationID types.ID `json:"organizationId" binding:"required"`
	Name           string   `json:"name" binding:"required,lte=60"`
}

type MemberSkillAssigning struct {
	MemberID types.ID `json:"memberId" binding:"required"`
	SkillID  types.ID `json:"skillId" binding:"required"`
}
