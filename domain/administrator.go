package domain

import (
	"github.com/fundwit/go-commons/types"
)

// Administrator holds organization-scoped management rights.
// UserID optionally links the administrator to a login account.
type Administrator struct {
	ID             types.ID `json:"id" gorm:"primary_key"`
	OrganizationID types.ID `json:"organizationId"`
	Name           string   `json:"name"`

	UserID types.ID `json:"userId"`

	CreateTime types.Timestamp `json:"createTime" sql:"type:DATETIME(6) NOT NULL"`
}

type AdministratorCreation struct {
	OrganizationID types.ID `json:"organizationId" binding:"required"`
	Name           string   `json:"name" binding:"required,lte=60"`
	UserID         types.ID `json:"userId"`
}
