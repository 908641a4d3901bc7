package domain

import "time"

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

// Person 家谱图中的节点；father/mother 为自引用，允许为空。
// isAlive 独立维护，不由 dateOfDeath 推导。
type Person struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	FullName      string  `gorm:"size:191;not null" json:"fullName"`
	Gender        Gender  `gorm:"size:16;not null" json:"gender"`
	DateOfBirth   *Date   `json:"dateOfBirth,omitempty"`
	DateOfDeath   *Date   `json:"dateOfDeath,omitempty"`
	IsAlive       bool    `gorm:"not null;default:true" json:"isAlive"`
	ImageURL      string  `gorm:"size:255" json:"imageUrl,omitempty"`
	ContactNumber string  `gorm:"size:64" json:"contactNumber,omitempty"`
	Email         string  `gorm:"size:191" json:"email,omitempty"`
	FatherID      *uint   `json:"fatherId,omitempty"`
	Father        *Person `gorm:"foreignKey:FatherID" json:"father,omitempty"`
	MotherID      *uint   `json:"motherId,omitempty"`
	Mother        *Person `gorm:"foreignKey:MotherID" json:"mother,omitempty"`

	CreatedBy uint      `gorm:"index" json:"createdBy"`
	UpdatedBy uint      `json:"updatedBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Person) TableName() string { return "person" }
