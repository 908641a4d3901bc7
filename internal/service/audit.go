package service

import (
	"context"

	"gorm.io/gorm"

	"familytree-api/internal/domain"
	"familytree-api/internal/repo"
)

// writeAudit 在调用方事务内追加一条审计记录；
// 追加失败会使整个变更事务一起回滚（同一原子单元）。
func writeAudit(ctx context.Context, tx *gorm.DB, entityName string, entityID uint, action string, actorID uint, details string) error {
	entry := &domain.AuditLog{
		EntityName: entityName,
		EntityID:   entityID,
		Action:     action,
		Details:    details,
	}
	if actorID != 0 {
		entry.ChangedBy = &actorID
	}
	return repo.NewAuditRepo(tx).Append(ctx, entry)
}
