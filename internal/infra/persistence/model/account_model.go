package model

import (
	"time"

	"github.com/google/uuid"
)

// AccountModel mirrors the 'accounts' table. PostgreSQL generates UUIDs via
// uuid_generate_v7(). Attributes live in fixed columns rather than a JSON
// blob so the conditional progression update stays a plain column write.
type AccountModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Email        string    `gorm:"type:varchar(255);unique;not null"`
	Username     string    `gorm:"type:varchar(100);unique;not null"`
	FullName     string    `gorm:"type:varchar(100)"`
	Class        string    `gorm:"type:varchar(20);not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Level        int       `gorm:"not null;default:1"`
	Experience   int       `gorm:"not null;default:0"`
	Strength     int       `gorm:"not null;default:1"`
	Agility      int       `gorm:"not null;default:1"`
	Vitality     int       `gorm:"not null;default:1"`
	Intelligence int       `gorm:"not null;default:1"`
	Energy       int       `gorm:"not null"`
	MaxEnergy    int       `gorm:"not null"`
	Version      int64     `gorm:"not null;default:0"`
	CreatedAt    time.Time
	LastLogin    time.Time
	LastActivity time.Time
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "accounts"
}
