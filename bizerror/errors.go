package bizerror

import (
	"assignman/domain"
	"errors"
	"fmt"
	"net/http"

	"github.com/fundwit/go-commons/types"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")

	ErrInvalidArguments       = errors.New("invalid arguments")
	ErrInvalidDateRange       = errors.New("end date must not precede start date")
	ErrOrganizationMismatch   = errors.New("entities must belong to the same organization")
	ErrRoughAssignmentOverlap = errors.New("member already has overlapping rough assignment")
	ErrDatesOutsideProject    = errors.New("assignment dates must be within the project period")
	ErrDuplicatedRecord       = errors.New("record already exists")
)

// CapacityExceededError reports the first date on which admitting a candidate
// load would push a member over the daily capacity.
type CapacityExceededError struct {
	MemberID types.ID
	Date     domain.Date
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("would exceed member capacity on %s", e.Date.String())
}

func (e *CapacityExceededError) Respond() *BizErrorDetail {
	return &BizErrorDetail{Status: http.StatusBadRequest, Code: "assignment.capacity_exceeded",
		Message: e.Error(), Data: map[string]interface{}{"memberId": e.MemberID, "date": e.Date}}
}

type BizError interface {
	Respond() *BizErrorDetail
}

type BizErrorDetail struct {
	Status  int
	Code    string
	Message string

	Data  interface{}
	Cause error
}

type ErrBadParam struct {
	Cause error
}

func (e *ErrBadParam) Unwrap() error {
	return e.Cause
}

func (e *ErrBadParam) Error() string {
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return "common.bad_param"
}

func (e *ErrBadParam) Respond() *BizErrorDetail {
	message := "common.bad_param"
	if e.Cause != nil {
		message = e.Cause.Error()
	}
	return &BizErrorDetail{Status: http.StatusBadRequest, Code: "common.bad_param", Message: message, Data: nil}
}
