package domain

import (
	"github.com/fundwit/go-commons/types"
)

// Member is a staff member who can be assigned to projects.
// StandardWorkingHours is a weekly quantity; the derived daily capacity is
// StandardWorkingHours/5 on weekdays, zero on weekends.
type Member struct {
	ID             types.ID `json:"id" gorm:"primary_key"`
	OrganizationID types.ID `json:"organizationId"`
	Name           string   `json:"name"`

	StandardWorkingHours float64 `json:"standardWorkingHours" sql:"type:DECIMAL(5,1) NOT NULL"`

	CreateTime types.Timestamp `json:"createTime" sql:"type:DATETIME(6) NOT NULL"`
}

func (m *Member) DailyCapacity() float64 {
	return m.StandardWorkingHours / 5
}

type MemberCreation struct {
	OrganizationID       types.ID `json:"organizationId" binding:"required"`
	Name                 string   `json:"name" binding:"required,lte=60"`
	StandardWorkingHours float64  `json:"standardWorkingHours" binding:"required,gt=0,lte=80"`
}

type MemberUpdating struct {
	Name                 string  `json:"name" binding:"required,lte=60"`
	StandardWorkingHours float64 `json:"standardWorkingHours" binding:"required,gt=0,lte=80"`
}
