package domain

import (
	"github.com/fundwit/go-commons/types"
)

// Organization is the tenant boundary. Members, projects and administrators
// always belong to exactly one organization; cross-organization references
// are rejected everywhere.
type Organization struct {
	ID   types.ID `json:"id" gorm:"primary_key"`
	Name string   `json:"name" gorm:"unique_index:org_name_unique"`

	CreateTime types.Timestamp `json:"createTime" sql:"type:DATETIME(6) NOT NULL"`
}

type OrganizationCreation struct {
	Name string `json:"name" binding:"required,lte=60"`
}
