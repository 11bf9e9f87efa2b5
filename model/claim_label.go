package model

import "time"

type ClaimLabel struct {
	ID uint64 `gorm:"primaryKey" json:"id"`

	ClaimID uint64 `gorm:"column:claim_id;not null;uniqueIndex:uk_claim_label,priority:1" json:"claim_id"`
	Claim   Claim  `gorm:"foreignKey:ClaimID;references:ID;constraint:OnDelete:CASCADE" json:"-"`

	Label string `gorm:"column:label;size:120;not null;uniqueIndex:uk_claim_label,priority:2" json:"label"`

	SortOrder int `gorm:"column:sort_order;not null;default:0" json:"sort_order"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name.
func (ClaimLabel) TableName() string {
	return "claim_label"
}
