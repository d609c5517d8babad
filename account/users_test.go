package account_test

import (
	"assignman/account"
	"assignman/bizerror"
	"assignman/domain"
	"assignman/persistence"
	"assignman/testinfra"
	"testing"

	"github.com/fundwit/go-commons/types"
	. "github.com/onsi/gomega"
)

func setup(t *testing.T, testDatabase **testinfra.TestDatabase) {
	db := testinfra.StartMysqlTestDatabase("assignman")
	*testDatabase = db
	Expect(db.DS.GormDB().AutoMigrate(&account.User{}, &account.UserPermissionBinding{},
		&domain.Organization{}, &domain.Administrator{}).Error).To(BeNil())
	persistence.ActiveDataSourceManager = db.DS
}

func teardown(t *testing.T, testDatabase *testinfra.TestDatabase) {
	if testDatabase != nil {
		testinfra.StopMysqlTestDatabase(testDatabase)
	}
}

func TestDefaultSecurityConfiguration(t *testing.T) {
	RegisterTestingT(t)
	var testDatabase *testinfra.TestDatabase
	defer teardown(t, testDatabase)
	setup(t, &testDatabase)

	t.Run("should seed the bootstrap admin account", func(t *testing.T) {
		Expect(account.DefaultSecurityConfiguration()).To(BeNil())

		admin := account.User{}
		db := persistence.ActiveDataSourceManager.GormDB()
		Expect(db.Where("id = ?", 1).First(&admin).Error).To(BeNil())
		Expect(admin.Name).To(Equal("admin"))
		Expect(admin.Secret).To(Equal(account.HashSha256("admin123")))

		binding := account.UserPermissionBinding{}
		Expect(db.Where("user_id = ?", 1).First(&binding).Error).To(BeNil())
		Expect(binding.Permission).To(Equal(account.SystemAdminPermission))

		// seeding again keeps the existing secret
		Expect(db.Model(&account.User{}).Where("id = ?", 1).
			Update("secret", account.HashSha256("changed")).Error).To(BeNil())
		Expect(account.DefaultSecurityConfiguration()).To(BeNil())
		Expect(db.Where("id = ?", 1).First(&admin).Error).To(BeNil())
		Expect(admin.Secret).To(Equal(account.HashSha256("changed")))
	})
}

func TestCreateUser(t *testing.T) {
	RegisterTestingT(t)
	var testDatabase *testinfra.TestDatabase
	defer teardown(t, testDatabase)
	setup(t, &testDatabase)

	t.Run("should require the system admin permission", func(t *testing.T) {
		_, err := account.CreateUser(&account.UserCreation{Name: "ann", Secret: "secret1"},
			testinfra.BuildSecCtx(1, 0))
		Expect(err).To(Equal(bizerror.ErrForbidden))
	})

	t.Run("should create a user with a hashed secret", func(t *testing.T) {
		info, err := account.CreateUser(&account.UserCreation{Name: "ann", Secret: "secret1", Nickname: "Ann"},
			testinfra.BuildSecCtx(1, 0, account.SystemAdminPermission))
		Expect(err).To(BeNil())
		Expect(info.Name).To(Equal("ann"))

		stored := account.User{}
		Expect(persistence.ActiveDataSourceManager.GormDB().
			Where("id = ?", info.ID).First(&stored).Error).To(BeNil())
		Expect(stored.Secret).To(Equal(account.HashSha256("secret1")))
		Expect(stored.DisplayName()).To(Equal("Ann"))
	})
}

func TestUpdateBasicAuthSecret(t *testing.T) {
	RegisterTestingT(t)
	var testDatabase *testinfra.TestDatabase
	defer teardown(t, testDatabase)
	setup(t, &testDatabase)

	info, err := account.CreateUser(&account.UserCreation{Name: "ann", Secret: "secret1"},
		testinfra.BuildSecCtx(1, 0, account.SystemAdminPermission))
	Expect(err).To(BeNil())
	secCtx := testinfra.BuildSecCtx(info.ID, 0)

	t.Run("should reject a wrong original secret", func(t *testing.T) {
		err := account.UpdateBasicAuthSecret(&account.BasicAuthUpdating{
			OriginalSecret: "wrong", NewSecret: "secret2"}, secCtx)
		Expect(err).To(Equal(bizerror.ErrUnauthenticated))
	})

	t.Run("should rotate the secret", func(t *testing.T) {
		Expect(account.UpdateBasicAuthSecret(&account.BasicAuthUpdating{
			OriginalSecret: "secret1", NewSecret: "secret2"}, secCtx)).To(BeNil())

		stored := account.User{}
		Expect(persistence.ActiveDataSourceManager.GormDB().
			Where("id = ?", info.ID).First(&stored).Error).To(BeNil())
		Expect(stored.Secret).To(Equal(account.HashSha256("secret2")))
	})
}

func TestLoadPerms(t *testing.T) {
	RegisterTestingT(t)
	var testDatabase *testinfra.TestDatabase
	defer teardown(t, testDatabase)
	setup(t, &testDatabase)

	db := persistence.ActiveDataSourceManager.GormDB()
	testinfra.BuildOrganization(db, 1, "org one")
	admin := domain.Administrator{ID: 10, OrganizationID: 1, Name: "admin one", UserID: 77,
		CreateTime: types.CurrentTimestamp()}
	Expect(db.Create(&admin).Error).To(BeNil())
	Expect(db.Create(&account.UserPermissionBinding{ID: 2, UserID: 77, Permission: "some:perm"}).Error).To(BeNil())

	t.Run("should resolve permissions and the linked administrator", func(t *testing.T) {
		perms, administratorID, err := account.LoadPermsFunc(77)
		Expect(err).To(BeNil())
		Expect(perms).To(Equal([]string{"some:perm"}))
		Expect(administratorID).To(Equal(types.ID(10)))
	})

	t.Run("should return a zero administrator for unlinked users", func(t *testing.T) {
		perms, administratorID, err := account.LoadPermsFunc(88)
		Expect(err).To(BeNil())
		Expect(perms).To(BeEmpty())
		Expect(administratorID).To(BeZero())
	})
}
