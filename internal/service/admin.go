package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"stallhub/internal/auth"
	"stallhub/internal/logging"
	"stallhub/internal/model"
	"stallhub/internal/monitor"
	"stallhub/internal/repository"
)

// UserQuery filters the user directory.
type UserQuery struct {
	Search string
	Role   model.RoleName
	Active *bool
	Limit  int
	Offset int
}

// SystemMonitor reports the health of the running process.
type SystemMonitor interface {
	Snapshot(ctx context.Context) monitor.Snapshot
}

// AdminService is the super-admin console. Every call requires the super_admin role.
type AdminService interface {
	ListUsers(ctx context.Context, p model.Principal, q UserQuery) (*Page[model.User], error)
	SetActive(ctx context.Context, p model.Principal, userID string, active bool) (*model.User, error)
	// SetRoles replaces the role list of a user.
	SetRoles(ctx context.Context, p model.Principal, userID string, roles []model.RoleAssignment) (*model.User, error)
	DeleteUser(ctx context.Context, p model.Principal, userID string) error
	ListBusinesses(ctx context.Context, p model.Principal, q BusinessQuery) (*Page[model.Business], error)
	System(ctx context.Context, p model.Principal) (*monitor.Snapshot, error)
	// EnsureSuperAdmin makes sure the bootstrap account exists and holds super_admin.
	EnsureSuperAdmin(ctx context.Context, email, password string) error
}

type adminService struct {
	users      repository.UserRepository
	businesses repository.BusinessRepository
	monitor    SystemMonitor
	logger     *logging.Logger
}

func NewAdminService(
	users repository.UserRepository,
	businesses repository.BusinessRepository,
	mon SystemMonitor,
	logger *logging.Logger,
) AdminService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &adminService{users: users, businesses: businesses, monitor: mon, logger: logger}
}

func requireSuperAdmin(p model.Principal) error {
	if err := requireUser(p); err != nil {
		return err
	}
	if !p.IsSuperAdmin() {
		return ErrForbidden
	}
	return nil
}

func (s *adminService) ListUsers(ctx context.Context, p model.Principal, q UserQuery) (*Page[model.User], error) {
	if err := requireSuperAdmin(p); err != nil {
		return nil, err
	}
	if q.Role != "" && !q.Role.Valid() {
		return nil, invalid("unknown role %q", q.Role)
	}
	pq := pageQuery(q.Limit, q.Offset)
	res, err := s.users.List(ctx, repository.UserFilter{
		Search: strings.TrimSpace(q.Search),
		Role:   q.Role,
		Active: q.Active,
		Page:   pq,
	})
	if err != nil {
		return nil, err
	}
	return newPage(res, pq), nil
}

func (s *adminService) SetActive(ctx context.Context, p model.Principal, userID string, active bool) (*model.User, error) {
	u, err := s.target(ctx, p, userID)
	if err != nil {
		return nil, err
	}
	if u.ID == p.UserID && !active {
		return nil, invalid("you cannot deactivate your own account")
	}
	u.Active = active
	u.UpdatedAt = utcNow()
	if err := s.users.Update(ctx, u); err != nil {
		return nil, notFound(err)
	}
	s.logger.Info("user_active_changed", map[string]any{"user_id": u.ID, "active": active, "actor_id": p.UserID})
	return u, nil
}

func (s *adminService) SetRoles(ctx context.Context, p model.Principal, userID string, roles []model.RoleAssignment) (*model.User, error) {
	u, err := s.target(ctx, p, userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[model.RoleAssignment]bool, len(roles))
	clean := make([]model.RoleAssignment, 0, len(roles))
	checked := map[string]bool{}
	superAdmin := false
	for _, r := range roles {
		if !r.Validate() {
			return nil, invalid("role %q has an invalid scope", r.Role)
		}
		if seen[r] {
			continue
		}
		seen[r] = true
		if r.Role == model.RoleSuperAdmin {
			superAdmin = true
		}
		if r.BusinessID != "" && !checked[r.BusinessID] {
			if _, err := s.businesses.FindByID(ctx, r.BusinessID); err != nil {
				if errors.Is(notFound(err), ErrNotFound) {
					return nil, invalid("business %s does not exist", r.BusinessID)
				}
				return nil, err
			}
			checked[r.BusinessID] = true
		}
		clean = append(clean, r)
	}
	if u.ID == p.UserID && !superAdmin {
		return nil, invalid("you cannot remove your own super_admin role")
	}

	u.Roles = clean
	u.UpdatedAt = utcNow()
	if err := s.users.Update(ctx, u); err != nil {
		return nil, notFound(err)
	}
	s.logger.Info("user_roles_changed", map[string]any{"user_id": u.ID, "roles": len(clean), "actor_id": p.UserID})
	return u, nil
}

func (s *adminService) DeleteUser(ctx context.Context, p model.Principal, userID string) error {
	u, err := s.target(ctx, p, userID)
	if err != nil {
		return err
	}
	if u.ID == p.UserID {
		return invalid("you cannot delete your own account")
	}
	if err := s.users.Delete(ctx, u.ID); err != nil {
		return err
	}
	s.logger.Info("user_deleted", map[string]any{"user_id": u.ID, "actor_id": p.UserID})
	return nil
}

func (s *adminService) ListBusinesses(ctx context.Context, p model.Principal, q BusinessQuery) (*Page[model.Business], error) {
	if err := requireSuperAdmin(p); err != nil {
		return nil, err
	}
	pq := pageQuery(q.Limit, q.Offset)
	res, err := s.businesses.List(ctx, repository.BusinessFilter{
		Search:     strings.TrimSpace(q.Search),
		ActiveOnly: !q.IncludeInactive,
		Page:       pq,
	})
	if err != nil {
		return nil, err
	}
	return newPage(res, pq), nil
}

func (s *adminService) System(ctx context.Context, p model.Principal) (*monitor.Snapshot, error) {
	if err := requireSuperAdmin(p); err != nil {
		return nil, err
	}
	snap := s.monitor.Snapshot(ctx)
	return &snap, nil
}

func (s *adminService) EnsureSuperAdmin(ctx context.Context, email, password string) error {
	if strings.TrimSpace(email) == "" {
		return nil
	}
	email, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	role := model.RoleAssignment{Role: model.RoleSuperAdmin}

	u, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		if !u.GrantRole(role) && u.Active {
			return nil
		}
		u.Active = true
		u.UpdatedAt = utcNow()
		if err := s.users.Update(ctx, u); err != nil {
			return err
		}
		s.logger.Info("super_admin_promoted", map[string]any{"user_id": u.ID})
		return nil
	}
	if !errors.Is(notFound(err), ErrNotFound) {
		return err
	}

	var hash string
	if password != "" {
		if hash, err = auth.HashPassword(password); err != nil {
			return err
		}
	}
	now := utcNow()
	u = &model.User{
		ID:            uuid.NewString(),
		Email:         email,
		Name:          "Administrator",
		PasswordHash:  hash,
		Roles:         []model.RoleAssignment{role},
		Active:        true,
		EmailVerified: true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.users.Create(ctx, u); err != nil && !errors.Is(err, repository.ErrDuplicate) {
		return err
	}
	s.logger.Info("super_admin_created", map[string]any{"user_id": u.ID})
	return nil
}

// target loads the user a super admin acts on.
func (s *adminService) target(ctx context.Context, p model.Principal, userID string) (*model.User, error) {
	if err := requireSuperAdmin(p); err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, ErrIDRequired
	}
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}
