package domain

import "time"

type RelationshipType string

const (
	RelMarried  RelationshipType = "MARRIED"
	RelDivorced RelationshipType = "DIVORCED"
	RelPartner  RelationshipType = "PARTNER"
)

// Relationship 两个 Person 之间的有类型边；person1/person2 必须存在。
// 同一对人允许重复建边（无唯一约束）。
type Relationship struct {
	ID               uint             `gorm:"primaryKey" json:"id"`
	Person1ID        uint             `gorm:"not null;index" json:"person1Id"`
	Person1          Person           `gorm:"foreignKey:Person1ID" json:"person1"`
	Person2ID        uint             `gorm:"not null;index" json:"person2Id"`
	Person2          Person           `gorm:"foreignKey:Person2ID" json:"person2"`
	RelationshipType RelationshipType `gorm:"size:32;not null" json:"relationshipType"`
	StartDate        *Date            `json:"startDate,omitempty"`
	EndDate          *Date            `json:"endDate,omitempty"`

	CreatedBy uint      `gorm:"index" json:"createdBy"`
	UpdatedBy uint      `json:"updatedBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Relationship) TableName() string { return "relationships" }
