package account

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"

	"assignman/bizerror"
	"assignman/domain"
	"assignman/idgen"
	"assignman/persistence"
	"assignman/session"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	"github.com/sony/sonyflake"
)

var SystemAdminPermission = "system:admin"

var (
	userIdWorker = sonyflake.NewSonyflake(sonyflake.Settings{})

	LoadPermsFunc = loadPerms
)

func HashSha256(raw string) string {
	h := sha256.New()
	h.Write([]byte(raw))
	return hex.EncodeToString(h.Sum(nil))
}

// DefaultSecurityConfiguration seeds the bootstrap admin account when the
// user table is still empty.
func DefaultSecurityConfiguration() error {
	return persistence.ActiveDataSourceManager.GormDB().Transaction(func(tx *gorm.DB) error {
		admin := User{}
		err := tx.Model(&User{}).Where(&User{ID: 1}).First(&admin).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			initialAdminPassword := os.Getenv("INITIAL_ADMIN_PASSWORD")
			if initialAdminPassword == "" {
				initialAdminPassword = "admin123"
			}
			if err := tx.Save(&User{ID: 1, Name: "admin", Secret: HashSha256(initialAdminPassword)}).Error; err != nil {
				return err
			}
		}
		return tx.Save(&UserPermissionBinding{ID: 1, UserID: 1, Permission: SystemAdminPermission}).Error
	})
}

func CreateUser(c *UserCreation, sec *session.Context) (*UserInfo, error) {
	if !sec.HasRole(SystemAdminPermission) {
		return nil, bizerror.ErrForbidden
	}

	user := User{ID: idgen.NextID(userIdWorker), Name: c.Name, Nickname: c.Nickname, Secret: HashSha256(c.Secret)}
	if err := persistence.ActiveDataSourceManager.GormDB().Save(&user).Error; err != nil {
		return nil, err
	}
	return &UserInfo{ID: user.ID, Name: user.Name, Nickname: user.Nickname}, nil
}

func QueryUsers(sec *session.Context) (*[]UserInfo, error) {
	if !sec.HasRole(SystemAdminPermission) {
		return nil, bizerror.ErrForbidden
	}
	var users []UserInfo
	if err := persistence.ActiveDataSourceManager.GormDB().Model(&User{}).Scan(&users).Error; err != nil {
		return nil, err
	}
	return &users, nil
}

func UpdateBasicAuthSecret(u *BasicAuthUpdating, sec *session.Context) error {
	db := persistence.ActiveDataSourceManager.GormDB()
	user := User{}
	if err := db.Model(&User{}).Where(&User{ID: sec.Identity.ID, Secret: HashSha256(u.OriginalSecret)}).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return bizerror.ErrUnauthenticated
		}
		return err
	}
	return db.Model(&User{}).Where(&User{ID: user.ID}).
		Update(&User{Secret: HashSha256(u.NewSecret)}).Error
}

// loadPerms collects the user's permission bindings and the administrator
// record linked to the user, if any.
func loadPerms(userID types.ID) ([]string, types.ID, error) {
	db := persistence.ActiveDataSourceManager.GormDB()

	var bindings []UserPermissionBinding
	if err := db.Where("user_id = ?", userID).Find(&bindings).Error; err != nil {
		return nil, 0, err
	}
	perms := []string{}
	for _, b := range bindings {
		perms = append(perms, b.Permission)
	}

	admin := domain.Administrator{}
	err := db.Where("user_id = ?", userID).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return perms, 0, nil
	}
	if err != nil {
		return nil, 0, err
	}
	return perms, admin.ID, nil
}
