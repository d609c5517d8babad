package domain

import (
	"github.com/fundwit/go-commons/types"
)

type StandardProjectStatus string

const (
	ProjectStatusTentative = StandardProjectStatus("TENTATIVE")
	ProjectStatusConfirmed = StandardProjectStatus("CONFIRMED")
	ProjectStatusArchived  = StandardProjectStatus("ARCHIVED")
)

type OngoingProjectStatus string

const (
	OngoingProjectStatusActive   = OngoingProjectStatus("ACTIVE")
	OngoingProjectStatusInactive = OngoingProjectStatus("INACTIVE")
)

// StandardProject is a bounded-duration project. Detailed assignments must
// fall inside its [StartDate, EndDate] range.
type StandardProject struct {
	ID             types.ID `json:"id" gorm:"primary_key"`
	OrganizationID types.ID `json:"organizationId"`
	Name           string   `json:"name"`

	StartDate Date                  `json:"startDate" sql:"type:DATE NOT NULL"`
	EndDate   Date                  `json:"endDate" sql:"type:DATE NOT NULL"`
	Status    StandardProjectStatus `json:"status"`

	BudgetHours *float64 `json:"budgetHours" sql:"type:DECIMAL(7,1)"`
	ClientName  string   `json:"clientName"`
	Notes       string   `json:"notes" sql:"type:TEXT"`

	CreateTime types.Timestamp `json:"createTime" sql:"type:DATETIME(6) NOT NULL"`
}

// OngoingProject is an unbounded project without a date range.
// Budget is a monetary amount, positive when present.
type OngoingProject struct {
	ID             types.ID `json:"id" gorm:"primary_key"`
	OrganizationID types.ID `json:"organizationId"`
	Name           string   `json:"name"`

	Status OngoingProjectStatus `json:"status"`
	Budget *float64             `json:"budget" sql:"type:DECIMAL(15,2)"`

	ClientName string `json:"clientName"`
	Notes      string `json:"notes" sql:"type:TEXT"`

	CreateTime types.Timestamp `json:"createTime" sql:"type:DATETIME(6) NOT NULL"`
}

// ProjectPlan is the 1:1 hour-budget ledger of a StandardProject,
// created together with the project.
type ProjectPlan struct {
	ID                types.ID `json:"id" gorm:"primary_key"`
	StandardProjectID types.ID `json:"standardProjectId" gorm:"unique_index:plan_project_unique"`

	CreateTime types.Timestamp `json:"createTime" sql:"type:DATETIME(6) NOT NULL"`
}

type StandardProjectCreation struct {
	OrganizationID types.ID `json:"organizationId" binding:"required"`
	Name           string   `json:"name" binding:"required,lte=60"`
	StartDate      Date     `json:"startDate" binding:"required"`
	EndDate        Date     `json:"endDate" binding:"required"`
	BudgetHours    *float64 `json:"budgetHours" binding:"omitempty,gt=0"`
	ClientName     string   `json:"clientName" binding:"lte=60"`
	Notes          string   `json:"notes"`
}

type OngoingProjectCreation struct {
	OrganizationID types.ID `json:"organizationId" binding:"required"`
	Name           string   `json:"name" binding:"required,lte=60"`
	Budget         *float64 `json:"budget" binding:"omitempty,gt=0"`
	ClientName     string   `json:"clientName" binding:"lte=60"`
	Notes          string   `json:"notes"`
}
