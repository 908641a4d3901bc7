package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"familytree-api/internal/core/auth"
	"familytree-api/internal/domain"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "familytree_test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&domain.Role{}, &domain.User{},
		&domain.Person{}, &domain.Relationship{},
		&domain.AuditLog{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	if err := SeedRoles(context.Background(), db); err != nil {
		t.Fatalf("seed roles: %v", err)
	}
	return db
}

func testJWTer() *auth.JWTer {
	return &auth.JWTer{Secret: []byte("test-secret"), Issuer: "test", TTL: time.Hour}
}

func newAuth(t *testing.T, db *gorm.DB) *AuthService {
	t.Helper()
	return NewAuthService(db, testJWTer(), zap.NewNop())
}

func register(t *testing.T, svc *AuthService, username, email, role string) *domain.User {
	t.Helper()
	u, err := svc.Register(context.Background(), RegisterInput{
		Username: username,
		Email:    email,
		Password: "secret123",
		Role:     role,
	})
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return u
}

func countAudit(t *testing.T, db *gorm.DB, entityName, action string) int64 {
	t.Helper()
	var n int64
	q := db.Model(&domain.AuditLog{})
	if entityName != "" {
		q = q.Where("entity_name = ?", entityName)
	}
	if action != "" {
		q = q.Where("action = ?", action)
	}
	if err := q.Count(&n).Error; err != nil {
		t.Fatalf("count audit: %v", err)
	}
	return n
}

func mustDate(t *testing.T, s string) *domain.Date {
	t.Helper()
	d, err := domain.ParseDate(s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return &d
}
