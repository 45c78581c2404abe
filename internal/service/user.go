package service

import (
	"ModelHub/internal/repo"
	"ModelHub/model"
	"context"
	"strings"

	"gorm.io/gorm/clause"
)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateUser inserts a new user. A duplicate email surfaces as the store's error.
func CreateUser(ctx context.Context, user *model.User) error {
	user.Name = strings.TrimSpace(user.Name)
	user.Email = normalizeEmail(user.Email)
	if user.Name == "" {
		return invalid("nombre requerido")
	}
	if user.Email == "" {
		return invalid("correo requerido")
	}
	user.ID = 0
	return repo.Db.WithContext(ctx).Create(user).Error
}

// ListUsers returns every user ordered by id.
func ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := repo.Db.WithContext(ctx).Order("id ASC").Find(&users).Error
	return users, err
}

// GetUser loads a user by id.
func GetUser(ctx context.Context, userID uint64) (*model.User, error) {
	var user model.User
	if err := repo.Db.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, translate(err, "usuario")
	}
	return &user, nil
}

// FindUserByEmail loads a user by email.
func FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := repo.Db.WithContext(ctx).Where("correo = ?", normalizeEmail(email)).First(&user).Error; err != nil {
		return nil, translate(err, "usuario")
	}
	return &user, nil
}

// Login returns the user owning email, creating it with name when the email is
// new. An existing user is returned unchanged. created reports whether this
// call inserted the row.
func Login(ctx context.Context, name, email string) (user *model.User, created bool, err error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if email == "" {
		return nil, false, invalid("correo requerido")
	}
	if name == "" {
		return nil, false, invalid("nombre requerido")
	}

	// 并发登录同一个新邮箱时依赖 correo 的唯一索引 只会有一条插入成功
	candidate := model.User{Name: name, Email: email}
	res := repo.Db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "correo"}},
			DoNothing: true,
		}).
		Create(&candidate)
	if res.Error != nil {
		return nil, false, res.Error
	}

	found, err := FindUserByEmail(ctx, email)
	if err != nil {
		return nil, false, err
	}
	return found, res.RowsAffected == 1, nil
}
