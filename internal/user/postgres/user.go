package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/lawateaditya/Stock-Management/internal"
	userDatamodel "github.com/lawateaditya/Stock-Management/internal/core/datamodel/user"
	"github.com/lawateaditya/Stock-Management/internal/user"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.RepositoryAPI {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetAll() ([]*userDatamodel.User, error) {
	var users []*userDatamodel.User
	err := r.db.Order("created_at ASC").Find(&users).Error
	return users, err
}

func (r *UserRepository) GetByID(userID string) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.Where("user_id = ?", userID).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Create(u *userDatamodel.User) error {
	err := r.db.Create(u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return internal.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *UserRepository) Update(u *userDatamodel.User) error {
	return r.db.Save(u).Error
}

// Delete removes the user together with their sessions so a deleted
// account cannot keep an authenticated cookie alive.
func (r *UserRepository) Delete(userID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&userDatamodel.Session{}).Error; err != nil {
			return err
		}
		res := tx.Where("user_id = ?", userID).Delete(&userDatamodel.User{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return internal.ErrUserNotFound
		}
		return nil
	})
}
