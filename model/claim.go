package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	ClaimStatusOpen     = "open"
	ClaimStatusInReview = "in_review"
	ClaimStatusApproved = "approved"
	ClaimStatusDenied   = "denied"
	ClaimStatusClosed   = "closed"
)

type Claim struct {
	ID uint64 `gorm:"primaryKey" json:"id"`

	ClaimNumber string `gorm:"column:claim_number;size:20;uniqueIndex;not null" json:"claim_number"`

	PolicyTypeID uint64     `gorm:"column:policy_type_id;not null;index" json:"policy_type_id"`
	PolicyType   PolicyType `gorm:"foreignKey:PolicyTypeID;references:ID" json:"policy_type,omitempty"`

	ClaimantName  string     `gorm:"column:claimant_name;size:120;not null" json:"claimant_name"`
	ClaimantEmail string     `gorm:"column:claimant_email;size:255;not null;default:''" json:"claimant_email"`
	IncidentDate  *time.Time `gorm:"column:incident_date" json:"incident_date,omitempty"`

	Status string `gorm:"column:status;type:varchar(32);index;not null;default:'open'" json:"status"`

	CreatedBy uint64 `gorm:"column:created_by;not null;index" json:"created_by"`
	Creator   User   `gorm:"foreignKey:CreatedBy;references:ID" json:"-"`

	Documents []Document `gorm:"foreignKey:ClaimID" json:"documents,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName returns the database table name.
func (Claim) TableName() string {
	return "claim"
}

// ValidClaimStatus reports whether s is a known claim status.
func ValidClaimStatus(s string) bool {
	switch s {
	case ClaimStatusOpen, ClaimStatusInReview, ClaimStatusApproved, ClaimStatusDenied, ClaimStatusClosed:
		return true
	}
	return false
}
