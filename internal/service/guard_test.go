package service

import (
	"errors"
	"testing"

	"familytree-api/internal/domain"
)

func TestCanMutateUser(t *testing.T) {
	plain := &domain.User{ID: 2, Roles: []domain.Role{{Name: domain.RoleUser}}}
	if err := CanMutateUser(1, plain); err != nil {
		t.Fatalf("plain user should be mutable: %v", err)
	}

	admin := &domain.User{ID: 3, Roles: []domain.Role{{Name: domain.RoleAdmin}}}
	if err := CanMutateUser(1, admin); err != nil {
		t.Fatalf("admin target should be mutable: %v", err)
	}

	boss := &domain.User{ID: 4, Roles: []domain.Role{
		{Name: domain.RoleUser}, {Name: domain.RoleSuperAdmin},
	}}
	if err := CanMutateUser(1, boss); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("superadmin target: want ErrForbidden, got %v", err)
	}
	// 超管对超管同样不放行
	if err := CanMutateUser(boss.ID, boss); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("self mutation of superadmin: want ErrForbidden, got %v", err)
	}
}
