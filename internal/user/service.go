package user

import (
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/lawateaditya/Stock-Management/internal"
	"github.com/lawateaditya/Stock-Management/internal/auth"
	userDatamodel "github.com/lawateaditya/Stock-Management/internal/core/datamodel/user"
)

type RepositoryAPI interface {
	GetAll() ([]*userDatamodel.User, error)
	GetByID(userID string) (*userDatamodel.User, error)
	Create(user *userDatamodel.User) error
	Update(user *userDatamodel.User) error
	// Delete removes the user and their sessions in one transaction.
	Delete(userID string) error
}

type Service struct {
	repo       RepositoryAPI
	policy     auth.Policy
	logger     *slog.Logger
	bcryptCost int
}

func NewService(repo RepositoryAPI, logger *slog.Logger, bcryptCost int) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:       repo,
		policy:     auth.NewPolicy(),
		logger:     logger,
		bcryptCost: bcryptCost,
	}
}

func (s *Service) ListUsers(actor *auth.User) ([]*auth.User, error) {
	if !s.policy.CanManageUsers(actor.Role) {
		return nil, internal.ErrRoleDenied
	}

	rows, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, err
	}

	users := make([]*auth.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, auth.FromDataModel(row))
	}
	return users, nil
}

// CreateUser provisions an account. Only the super admin may hand out
// administrative roles.
func (s *Service) CreateUser(actor *auth.User, dto CreateUserDTO) (*auth.User, error) {
	if !s.policy.CanManageUsers(actor.Role) {
		return nil, internal.ErrRoleDenied
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	role := auth.RoleInwardUser
	if dto.Role != "" {
		parsed, err := auth.ParseRole(dto.Role)
		if err != nil {
			return nil, err
		}
		role = parsed
	}
	if role.Administrative() && actor.Role != auth.RoleSuperAdmin {
		return nil, internal.NewForbiddenError("Only super admin can manage admin users", internal.ErrCodeAdminRoleRestricted)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	isActive := true
	if dto.IsActive != nil {
		isActive = *dto.IsActive
	}

	dm := &userDatamodel.User{
		UserID:       internal.NewID("user"),
		Email:        dto.Email,
		Name:         dto.Name,
		PasswordHash: string(hash),
		Role:         role.String(),
		IsActive:     isActive,
	}
	if err := s.repo.Create(dm); err != nil {
		return nil, err
	}

	s.logger.Info("user created", "user_id", dm.UserID, "role", dm.Role, "created_by", actor.UserID)
	return auth.FromDataModel(dm), nil
}

// UpdateUser applies a partial update. Touching an account whose current
// or target role is administrative requires the super admin.
func (s *Service) UpdateUser(actor *auth.User, userID string, dto UpdateUserDTO) (*auth.User, error) {
	if !s.policy.CanManageUsers(actor.Role) {
		return nil, internal.ErrRoleDenied
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	dm, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	currentRole := auth.Role(dm.Role)
	restricted := currentRole.Administrative()
	if dto.Role != nil {
		targetRole, err := auth.ParseRole(*dto.Role)
		if err != nil {
			return nil, err
		}
		restricted = restricted || targetRole.Administrative()
	}
	if restricted && actor.Role != auth.RoleSuperAdmin {
		return nil, internal.NewForbiddenError("Only super admin can manage admin users", internal.ErrCodeAdminRoleRestricted)
	}

	if dto.Name != nil {
		dm.Name = *dto.Name
	}
	if dto.Role != nil {
		dm.Role = *dto.Role
	}
	if dto.IsActive != nil {
		dm.IsActive = *dto.IsActive
	}
	if dto.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*dto.Password), s.bcryptCost)
		if err != nil {
			return nil, internal.NewInternalError("failed to hash password", err)
		}
		dm.PasswordHash = string(hash)
	}
	dm.UpdatedAt = time.Now()

	if err := s.repo.Update(dm); err != nil {
		return nil, err
	}

	s.logger.Info("user updated", "user_id", dm.UserID, "updated_by", actor.UserID)
	return auth.FromDataModel(dm), nil
}

// DeleteUser removes an account and its sessions. Super admin only; the
// account may not delete itself.
func (s *Service) DeleteUser(actor *auth.User, userID string) error {
	if !s.policy.CanDeleteUsers(actor.Role) {
		return internal.ErrRoleDenied
	}
	if actor.UserID == userID {
		return internal.NewValidationError("Cannot delete your own account", internal.ErrCodeSelfDelete)
	}

	if _, err := s.repo.GetByID(userID); err != nil {
		return err
	}
	if err := s.repo.Delete(userID); err != nil {
		s.logger.Error("failed to delete user", "user_id", userID, "error", err)
		return err
	}

	s.logger.Info("user deleted", "user_id", userID, "deleted_by", actor.UserID)
	return nil
}
