package service

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"familytree-api/internal/domain"
	"familytree-api/internal/repo"
)

// UserResponse 管理端投影：只暴露角色名，不带完整 Role 对象
type UserResponse struct {
	ID       uint     `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Active   bool     `json:"active"`
	Roles    []string `json:"roles"`
}

type AdminService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewAdminService(db *gorm.DB, log *zap.Logger) *AdminService {
	return &AdminService{db: db, log: log}
}

func (s *AdminService) ListUsers(ctx context.Context) ([]UserResponse, error) {
	users, err := repo.NewUserRepo(s.db).List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, UserResponse{
			ID:       u.ID,
			Username: u.Username,
			Email:    u.Email,
			Active:   u.Active,
			Roles:    u.RoleNames(),
		})
	}
	return out, nil
}

func (s *AdminService) ActivateUser(ctx context.Context, userID, actorID uint) (*domain.User, error) {
	return s.setActive(ctx, userID, actorID, true)
}

func (s *AdminService) DeactivateUser(ctx context.Context, userID, actorID uint) (*domain.User, error) {
	return s.setActive(ctx, userID, actorID, false)
}

func (s *AdminService) setActive(ctx context.Context, userID, actorID uint, active bool) (*domain.User, error) {
	var out *domain.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := repo.NewUserRepo(tx)

		u, err := users.FindByID(ctx, userID)
		if err != nil {
			return err
		}
		if u == nil {
			return domain.NotFoundf("user %d not found", userID)
		}
		if err := CanMutateUser(actorID, u); err != nil {
			return err
		}
		u.Active = active
		if err := users.Save(ctx, u); err != nil {
			return err
		}
		verb := "Deactivated"
		if active {
			verb = "Activated"
		}
		if err := writeAudit(ctx, tx, domain.EntityUser, u.ID, domain.ActionUpdate, actorID,
			verb+" user: "+u.Username); err != nil {
			return err
		}
		out = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("user active flag changed",
		zap.Uint("id", out.ID), zap.Bool("active", out.Active), zap.Uint("actor", actorID))
	return out, nil
}

// ChangeRole 全量覆盖角色：清空后只留指定角色。
// 这里的角色名必须已存在（与注册时的懒建不同，未知名是硬 NotFound）。
func (s *AdminService) ChangeRole(ctx context.Context, userID uint, roleName string, actorID uint) (*domain.User, error) {
	name := strings.Trim(strings.TrimSpace(roleName), `"`)
	var out *domain.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := repo.NewUserRepo(tx)
		roles := repo.NewRoleRepo(tx)

		u, err := users.FindByID(ctx, userID)
		if err != nil {
			return err
		}
		if u == nil {
			return domain.NotFoundf("user %d not found", userID)
		}
		if err := CanMutateUser(actorID, u); err != nil {
			return err
		}
		role, err := roles.FindByName(ctx, name)
		if err != nil {
			return err
		}
		if role == nil {
			return domain.NotFoundf("role %s not found", name)
		}
		if err := users.ReplaceRoles(ctx, u, *role); err != nil {
			return err
		}
		u.Roles = []domain.Role{*role}
		if err := writeAudit(ctx, tx, domain.EntityUser, u.ID, domain.ActionUpdate, actorID,
			"Changed role of user "+u.Username+" to "+role.Name); err != nil {
			return err
		}
		out = u
		return nil
	})
	return out, err
}

// CreateRole 重名即 Conflict
func (s *AdminService) CreateRole(ctx context.Context, name string) (*domain.Role, error) {
	var out *domain.Role
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		roles := repo.NewRoleRepo(tx)
		if existing, err := roles.FindByName(ctx, name); err != nil {
			return err
		} else if existing != nil {
			return domain.Conflictf("role already exists")
		}
		role := &domain.Role{Name: name}
		if err := roles.Create(ctx, role); err != nil {
			return err
		}
		out = role
		return nil
	})
	return out, err
}

// AssignRole 追加角色（不清空已有）；守卫同样适用
func (s *AdminService) AssignRole(ctx context.Context, roleID, userID, actorID uint) (*domain.User, error) {
	var out *domain.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := repo.NewUserRepo(tx)
		roles := repo.NewRoleRepo(tx)

		role, err := roles.FindByID(ctx, roleID)
		if err != nil {
			return err
		}
		if role == nil {
			return domain.NotFoundf("role %d not found", roleID)
		}
		u, err := users.FindByID(ctx, userID)
		if err != nil {
			return err
		}
		if u == nil {
			return domain.NotFoundf("user %d not found", userID)
		}
		if err := CanMutateUser(actorID, u); err != nil {
			return err
		}
		if err := users.AddRole(ctx, u, *role); err != nil {
			return err
		}
		if err := writeAudit(ctx, tx, domain.EntityUser, u.ID, domain.ActionUpdate, actorID,
			"Assigned role "+role.Name+" to user "+u.Username); err != nil {
			return err
		}
		loaded, err := users.FindByID(ctx, u.ID)
		if err != nil {
			return err
		}
		out = loaded
		return nil
	})
	return out, err
}

// ListAudit 审计流水分页读取（日志本身仍只追加）
func (s *AdminService) ListAudit(ctx context.Context, offset, limit int) ([]domain.AuditLog, int64, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return repo.NewAuditRepo(s.db).List(ctx, offset, limit)
}
