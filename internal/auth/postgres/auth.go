package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lawateaditya/Stock-Management/internal"
	"github.com/lawateaditya/Stock-Management/internal/auth"
	userDatamodel "github.com/lawateaditya/Stock-Management/internal/core/datamodel/user"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetUserByEmail(email string) (*userDatamodel.User, error) {
	var user userDatamodel.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *Repository) GetUserByID(userID string) (*userDatamodel.User, error) {
	var user userDatamodel.User
	err := r.db.Where("user_id = ?", userID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *Repository) CreateUser(user *userDatamodel.User) error {
	err := r.db.Create(user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return internal.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *Repository) UpdateUser(user *userDatamodel.User) error {
	return r.db.Save(user).Error
}

// EnsureUser inserts the user unless the email is already taken. The
// conflict target is the unique email index, which makes concurrent
// seeding from multiple instances safe without a prior read.
func (r *Repository) EnsureUser(user *userDatamodel.User) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}).Create(user).Error
}

func (r *Repository) CreateSession(session *userDatamodel.Session) error {
	return r.db.Create(session).Error
}

func (r *Repository) GetSessionByToken(token string) (*userDatamodel.Session, error) {
	var session userDatamodel.Session
	err := r.db.Where("session_token = ?", token).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auth.ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (r *Repository) DeleteSessionByToken(token string) error {
	return r.db.Where("session_token = ?", token).Delete(&userDatamodel.Session{}).Error
}

// DeleteExpiredSessions prunes session rows whose expiry is in the past.
// Run from the sessions maintenance command.
func (r *Repository) DeleteExpiredSessions(before time.Time) (int64, error) {
	res := r.db.Where("expires_at < ?", before).Delete(&userDatamodel.Session{})
	return res.RowsAffected, res.Error
}
