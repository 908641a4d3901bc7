package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"familytree-api/internal/core/auth"
	"familytree-api/internal/domain"
	"familytree-api/internal/repo"
	"familytree-api/pkg/utils"
)

type RegisterInput struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	Role     string `json:"role" binding:"omitempty,max=32"` // 可选，缺省 USER
}

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type JwtResponse struct {
	Token    string   `json:"token"`
	ID       uint     `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}

type AuthService struct {
	db  *gorm.DB
	jwt *auth.JWTer
	log *zap.Logger
}

func NewAuthService(db *gorm.DB, jwter *auth.JWTer, log *zap.Logger) *AuthService {
	return &AuthService{db: db, jwt: jwter, log: log}
}

// Register 注册。全库第一个用户自动激活并授予 ADMIN（bootstrap 不变量）；
// 之后的用户一律未激活，角色取请求值或 USER。
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	var out *domain.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := repo.NewUserRepo(tx)
		roles := repo.NewRoleRepo(tx)

		if taken, err := users.ExistsByUsername(ctx, in.Username); err != nil {
			return err
		} else if taken {
			return domain.Conflictf("username is already taken")
		}
		if taken, err := users.ExistsByEmail(ctx, in.Email); err != nil {
			return err
		} else if taken {
			return domain.Conflictf("email is already in use")
		}

		total, err := users.Count(ctx)
		if err != nil {
			return err
		}

		u := &domain.User{
			Username:     in.Username,
			Email:        in.Email,
			PasswordHash: utils.HashPassword(in.Password),
		}

		var roleName string
		if total == 0 {
			u.Active = true
			roleName = domain.RoleAdmin
		} else {
			u.Active = false
			roleName = strings.TrimSpace(in.Role)
			if roleName == "" {
				roleName = domain.RoleUser
			}
		}
		role, err := roles.Ensure(ctx, roleName)
		if err != nil {
			return err
		}
		u.Roles = []domain.Role{*role}

		if err := users.Create(ctx, u); err != nil {
			return err
		}
		if err := writeAudit(ctx, tx, domain.EntityUser, u.ID, domain.ActionCreate, u.ID,
			"Registered user: "+u.Username); err != nil {
			return err
		}
		out = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("user registered",
		zap.Uint("id", out.ID),
		zap.String("username", out.Username),
		zap.Bool("active", out.Active),
	)
	return out, nil
}

// Login 校验口令并签发 JWT；未激活账号不放行
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*JwtResponse, error) {
	u, err := repo.NewUserRepo(s.db).FindByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if u == nil || !utils.CheckPassword(in.Password, u.PasswordHash) {
		return nil, domain.Unauthorizedf("invalid username or password")
	}
	if !u.Active {
		return nil, domain.Unauthorizedf("account is not active")
	}
	token, err := s.jwt.Issue(u.ID, u.Username, u.RoleNames())
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &JwtResponse{
		Token:    token,
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Roles:    u.RoleNames(),
	}, nil
}

func (s *AuthService) Me(ctx context.Context, userID uint) (*domain.User, error) {
	u, err := repo.NewUserRepo(s.db).FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.NotFoundf("user %d not found", userID)
	}
	return u, nil
}

// SeedRoles 启动时预置内置角色，避免懒创建在并发下重复
func SeedRoles(ctx context.Context, db *gorm.DB) error {
	roles := repo.NewRoleRepo(db)
	for _, name := range []string{domain.RoleUser, domain.RoleAdmin, domain.RoleSuperAdmin} {
		if _, err := roles.Ensure(ctx, name); err != nil {
			return err
		}
	}
	return nil
}
