package domain

import "time"

// 审计实体名
const (
	EntityPerson       = "PERSON"
	EntityRelationship = "RELATIONSHIP"
	EntityUser         = "USER"
)

// 审计动作
const (
	ActionCreate = "CREATE"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
)

// AuditLog 只追加的变更记录；core 不更新也不删除
type AuditLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	EntityName string    `gorm:"size:32;not null;index" json:"entityName"`
	EntityID   uint      `gorm:"not null;index" json:"entityId"`
	Action     string    `gorm:"size:16;not null" json:"action"`
	ChangedBy  *uint     `gorm:"index" json:"changedBy,omitempty"`
	Details    string    `gorm:"size:1024" json:"details"`
	CreatedAt  time.Time `json:"timestamp"`
}

func (AuditLog) TableName() string { return "audit_log" }
