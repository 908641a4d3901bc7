package repo

import (
	"context"

	"gorm.io/gorm"

	"familytree-api/internal/domain"
)

type AuditRepo struct{ db *gorm.DB }

func NewAuditRepo(db *gorm.DB) *AuditRepo { return &AuditRepo{db: db} }

// Append 只追加；记录一旦写入不再改动
func (r *AuditRepo) Append(ctx context.Context, entry *domain.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *AuditRepo) List(ctx context.Context, offset, limit int) ([]domain.AuditLog, int64, error) {
	var total int64
	q := r.db.WithContext(ctx).Model(&domain.AuditLog{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var entries []domain.AuditLog
	err := q.Order("id DESC").Offset(offset).Limit(limit).Find(&entries).Error
	return entries, total, err
}
