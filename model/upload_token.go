package model

import (
	"time"

	"gorm.io/gorm"
)

// BatchLabel marks a token not bound to a single requirement label; it
// accepts any number of files and the operator resolves labels later.
const BatchLabel = "Batch Upload"

const (
	TokenStatusActive    = 0
	TokenStatusExpired   = 1
	TokenStatusRevoked   = 2
	TokenStatusFulfilled = 3
)

type UploadToken struct {
	ID uint64 `gorm:"primaryKey" json:"id"`

	Token string `gorm:"column:token;size:64;uniqueIndex;not null" json:"token"`

	ClaimID uint64 `gorm:"column:claim_id;not null;index" json:"claim_id"`
	Claim   Claim  `gorm:"foreignKey:ClaimID;references:ID;constraint:OnDelete:CASCADE" json:"-"`

	Label string `gorm:"column:label;size:120;not null" json:"label"`

	ExpiresAt time.Time `gorm:"column:expires_at;not null" json:"expires_at"`

	CreatedBy uint64 `gorm:"column:created_by;not null;index" json:"created_by"`
	Creator   User   `gorm:"foreignKey:CreatedBy;references:ID" json:"-"`

	Status int `gorm:"column:status;not null;default:0" json:"status"`

	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName returns the database table name.
func (UploadToken) TableName() string {
	return "upload_token"
}

// IsBatch reports whether the token accepts files for any label.
func (t *UploadToken) IsBatch() bool {
	return t.Label == BatchLabel
}

// UsableAt reports whether the token can authorize an upload at the given
// instant: it must be active and strictly before its expiry.
func (t *UploadToken) UsableAt(now time.Time) bool {
	return t.Status == TokenStatusActive && now.Before(t.ExpiresAt)
}
