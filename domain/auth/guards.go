// Package auth centralizes the organization-equality capability checks
// shared by every use case, so tenant isolation cannot drift between them.
package auth

import (
	"assignman/bizerror"
	"assignman/domain"
	"errors"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
)

// ActingAdministrator resolves the administrator an operation acts as.
// A missing or unresolvable administrator is an authorization failure.
func ActingAdministrator(db *gorm.DB, administratorID types.ID) (*domain.Administrator, error) {
	if administratorID == 0 {
		return nil, bizerror.ErrForbidden
	}
	admin := domain.Administrator{}
	if err := db.Where("id = ?", administratorID).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, bizerror.ErrForbidden
		}
		return nil, err
	}
	return &admin, nil
}

// CanManageStandardProject reports whether the administrator manages the project.
func CanManageStandardProject(admin *domain.Administrator, project *domain.StandardProject) bool {
	return admin != nil && project != nil && admin.OrganizationID == project.OrganizationID
}

// CanManageOngoingProject reports whether the administrator manages the project.
func CanManageOngoingProject(admin *domain.Administrator, project *domain.OngoingProject) bool {
	return admin != nil && project != nil && admin.OrganizationID == project.OrganizationID
}

// CanActOnMember reports whether the administrator may act on the member's records.
func CanActOnMember(admin *domain.Administrator, member *domain.Member) bool {
	return admin != nil && member != nil && admin.OrganizationID == member.OrganizationID
}

// CanAcknowledgeAssignment reports whether the member may acknowledge the
// assignment: only the assignment's own member may.
func CanAcknowledgeAssignment(member *domain.Member, assignment *domain.DetailedProjectAssignment) bool {
	return member != nil && assignment != nil && member.ID == assignment.MemberID
}

// MemberCanViewSchedule reports whether a member viewer may see the target
// member's schedule: self-service only.
func MemberCanViewSchedule(viewer *domain.Member, member *domain.Member) bool {
	return viewer != nil && member != nil && viewer.ID == member.ID
}

// AdministratorCanViewSchedule reports whether an administrator viewer may see
// the member's schedule.
func AdministratorCanViewSchedule(viewer *domain.Administrator, member *domain.Member) bool {
	return viewer != nil && member != nil && viewer.OrganizationID == member.OrganizationID
}

// SameOrganization reports whether all given organization ids match. A
// mismatch between cross-referenced entities signals malformed input, so
// callers treat it as a validation failure rather than an authorization one.
func SameOrganization(ids ...types.ID) bool {
	for i := 1; i < len(ids); i++ {
		if ids[i] != ids[0] {
			return false
		}
	}
	return true
}
