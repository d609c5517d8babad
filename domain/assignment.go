package domain

import (
	"github.com/fundwit/go-commons/types"
)

// SchedulableSpan is the read-only capability shared by the assignment kinds
// that contribute to real scheduling. DailyHours returns the prorated load on
// a date, zero on weekends and outside the span.
type SchedulableSpan interface {
	SpanStart() Date
	// SpanEnd returns ok=false for an indefinite span.
	SpanEnd() (Date, bool)
	DailyHours(date Date) float64
}

// RoughProjectAssignment is a draft allocation. A member holds at most one
// rough assignment per date range across all projects; drafts never count
// against real scheduling capacity.
type RoughProjectAssignment struct {
	ID                types.ID `json:"id" gorm:"primary_key"`
	StandardProjectID types.ID `json:"standardProjectId"`
	MemberID          types.ID `json:"memberId"`

	StartDate      Date    `json:"startDate" sql:"type:DATE NOT NULL"`
	EndDate        Date    `json:"endDate" sql:"type:DATE NOT NULL"`
	ScheduledHours float64 `json:"scheduledHours" sql:"type:DECIMAL(5,1) NOT NULL"`

	CreateTime types.Timestamp `json:"createTime" sql:"type:DATETIME(6) NOT NULL"`
}

func (a *RoughProjectAssignment) WorkingDaysCount() int {
	return WorkingDaysBetween(a.StartDate, a.EndDate)
}

// DetailedProjectAssignment is a confirmed allocation. ScheduledHours is
// prorated over the weekdays of its range.
type DetailedProjectAssignment struct {
	ID                types.ID `json:"id" gorm:"primary_key"`
	StandardProjectID types.ID `json:"standardProjectId"`
	MemberID          types.ID `json:"memberId"`

	StartDate      Date    `json:"startDate" sql:"type:DATE NOT NULL"`
	EndDate        Date    `json:"endDate" sql:"type:DATE NOT NULL"`
	ScheduledHours float64 `json:"scheduledHours" sql:"type:DECIMAL(5,1) NOT NULL"`

	CreateTime types.Timestamp `json:"createTime" sql:"type:DATETIME(6) NOT NULL"`
}

func (a *DetailedProjectAssignment) WorkingDaysCount() int {
	return WorkingDaysBetween(a.StartDate, a.EndDate)
}

func (a *DetailedProjectAssignment) SpanStart() Date {
	return a.StartDate
}

func (a *DetailedProjectAssignment) SpanEnd() (Date, bool) {
	return a.EndDate, true
}

func (a *DetailedProjectAssignment) DailyHours(date Date) float64 {
	if date.IsWeekend() || date.Before(a.StartDate) || date.After(a.EndDate) {
		return 0
	}
	workingDays := a.WorkingDaysCount()
	if workingDays == 0 {
		return 0
	}
	return a.ScheduledHours / float64(workingDays)
}

// OngoingAssignment is an open-ended allocation against an ongoing project.
// A nil EndDate means indefinite. It contributes WeeklyScheduledHours/5 on
// every weekday it covers.
type OngoingAssignment struct {
	ID               types.ID `json:"id" gorm:"primary_key"`
	OngoingProjectID types.ID `json:"ongoingProjectId"`
	MemberID         types.ID `json:"memberId"`

	StartDate            Date    `json:"startDate" sql:"type:DATE NOT NULL"`
	EndDate              *Date   `json:"endDate" sql:"type:DATE"`
	WeeklyScheduledHours float64 `json:"weeklyScheduledHours" sql:"type:DECIMAL(5,1) NOT NULL"`

	CreateTime types.Timestamp `json:"createTime" sql:"type:DATETIME(6) NOT NULL"`
}

func (a *OngoingAssignment) SpanStart() Date {
	return a.StartDate
}

func (a *OngoingAssignment) SpanEnd() (Date, bool) {
	if a.EndDate == nil {
		return Date{}, false
	}
	return *a.EndDate, true
}

func (a *OngoingAssignment) DailyHours(date Date) float64 {
	if date.IsWeekend() || date.Before(a.StartDate) {
		return 0
	}
	if a.EndDate != nil && date.After(*a.EndDate) {
		return 0
	}
	return a.WeeklyScheduledHours / 5
}
