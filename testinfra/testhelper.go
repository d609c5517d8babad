package testinfra

import (
	"assignman/domain"
	"assignman/session"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	. "github.com/onsi/gomega"
)

// BuildSecCtx build security context
func BuildSecCtx(uid types.ID, administratorID types.ID, perms ...string) *session.Context {
	return &session.Context{Identity: session.Identity{ID: uid}, Perms: perms, AdministratorID: administratorID}
}

// BuildOrganization insert an organization fixture
func BuildOrganization(db *gorm.DB, id types.ID, name string) *domain.Organization {
	org := domain.Organization{ID: id, Name: name, CreateTime: types.CurrentTimestamp()}
	Expect(db.Create(&org).Error).To(BeNil())
	return &org
}

// BuildAdministrator insert an administrator fixture
func BuildAdministrator(db *gorm.DB, id, orgId types.ID, name string) *domain.Administrator {
	admin := domain.Administrator{ID: id, OrganizationID: orgId, Name: name, CreateTime: types.CurrentTimestamp()}
	Expect(db.Create(&admin).Error).To(BeNil())
	return &admin
}

// BuildMember insert a member fixture
func BuildMember(db *gorm.DB, id, orgId types.ID, name string, standardWorkingHours float64) *domain.Member {
	member := domain.Member{ID: id, OrganizationID: orgId, Name: name,
		StandardWorkingHours: standardWorkingHours, CreateTime: types.CurrentTimestamp()}
	Expect(db.Create(&member).Error).To(BeNil())
	return &member
}

// BuildStandardProject insert a standard project fixture with its plan
func BuildStandardProject(db *gorm.DB, id, orgId types.ID, name string, start, end domain.Date) *domain.StandardProject {
	project := domain.StandardProject{ID: id, OrganizationID: orgId, Name: name,
		StartDate: start, EndDate: end, Status: domain.ProjectStatusTentative, CreateTime: types.CurrentTimestamp()}
	Expect(db.Create(&project).Error).To(BeNil())
	plan := domain.ProjectPlan{ID: id + 10000, StandardProjectID: id, CreateTime: types.CurrentTimestamp()}
	Expect(db.Create(&plan).Error).To(BeNil())
	return &project
}

// BuildOngoingProject insert an ongoing project fixture
func BuildOngoingProject(db *gorm.DB, id, orgId types.ID, name string) *domain.OngoingProject {
	project := domain.OngoingProject{ID: id, OrganizationID: orgId, Name: name,
		Status: domain.OngoingProjectStatusActive, CreateTime: types.CurrentTimestamp()}
	Expect(db.Create(&project).Error).To(BeNil())
	return &project
}
