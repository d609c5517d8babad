package orgs

import (
	"assignman/account"
	"assignman/bizerror"
	"assignman/domain"
	"assignman/idgen"
	"assignman/persistence"
	"assignman/session"

	"github.com/fundwit/go-commons/types"
	"github.com/sony/sonyflake"
)

var (
	orgIdWorker = sonyflake.NewSonyflake(sonyflake.Settings{})

	CreateOrganizationFunc = CreateOrganization
	QueryOrganizationsFunc = QueryOrganizations
)

func CreateOrganization(c *domain.OrganizationCreation, sec *session.Context) (*domain.Organization, error) {
	if !sec.HasRole(account.SystemAdminPermission) {
		return nil, bizerror.ErrForbidden
	}

	org := domain.Organization{ID: idgen.NextID(orgIdWorker), Name: c.Name, CreateTime: types.CurrentTimestamp()}
	if err := persistence.ActiveDataSourceManager.GormDB().Create(&org).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

func QueryOrganizations(sec *session.Context) (*[]domain.Organization, error) {
	if !sec.HasRole(account.SystemAdminPermission) {
		return nil, bizerror.ErrForbidden
	}

	var organizations []domain.Organization
	if err := persistence.ActiveDataSourceManager.GormDB().Find(&organizations).Error; err != nil {
		return nil, err
	}
	return &organizations, nil
}

func QueryOrganizationNames(ids []types.ID) (map[types.ID]string, error) {
	if len(ids) == 0 {
		return map[types.ID]string{}, nil
	}
	var records []domain.Organization
	if err := persistence.ActiveDataSourceManager.GormDB().
		Where("id IN (?)", ids).Find(&records).Error; err != nil {
		return nil, err
	}
	result := map[types.ID]string{}
	for _, r := range records {
		result[r.ID] = r.Name
	}
	return result, nil
}
