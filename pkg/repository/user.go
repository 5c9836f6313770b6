package repository

import (
	"context"

	"github.com/example/freshmart/pkg/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts u. An email already in use yields ErrDuplicate and no row.
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", u.Email).Count(&count).Error; err != nil {
		return translate(err, "user")
	}
	if count > 0 {
		return translate(gorm.ErrDuplicatedKey, "email "+u.Email)
	}
	return translate(r.db.WithContext(ctx).Create(u).Error, "create user")
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err, "user")
	}
	return &user, nil
}

func (r *UserRepository) Get(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err, "user")
	}
	return &user, nil
}
