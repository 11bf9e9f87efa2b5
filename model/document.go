package model

import (
	"time"

	"gorm.io/gorm"
)

type Document struct {
	ID uint64 `gorm:"primaryKey" json:"id"`

	ClaimID uint64 `gorm:"column:claim_id;not null;index;uniqueIndex:uk_claim_selected_label,priority:1" json:"claim_id"`
	Claim   Claim  `gorm:"foreignKey:ClaimID;references:ID;constraint:OnDelete:CASCADE" json:"-"`

	FileName   string `gorm:"column:file_name;size:255;not null" json:"file_name"`
	ObjectName string `gorm:"column:object_name;size:512;not null" json:"-"`

	Size        int64  `gorm:"column:size;not null" json:"size"`
	ContentType string `gorm:"column:content_type;size:100;not null;default:''" json:"content_type"`

	// UploadedBy is nil for anonymous link uploads.
	UploadedBy   *uint64 `gorm:"column:uploaded_by;index" json:"uploaded_by,omitempty"`
	UploaderName string  `gorm:"column:uploader_name;size:120;not null;default:''" json:"uploader_name"`
	ViaLink      bool    `gorm:"column:via_link;not null;default:false" json:"via_link"`

	// AssignedLabel is the requirement label this document is attached to,
	// empty when unassigned. SelectedLabel mirrors AssignedLabel only while
	// the document is the chosen one for that label; the composite unique
	// index on (claim_id, selected_label) guarantees at most one selected
	// document per label (NULLs never collide).
	AssignedLabel string  `gorm:"column:assigned_label;size:120;not null;default:''" json:"assigned_label"`
	SelectedLabel *string `gorm:"column:selected_label;size:120;uniqueIndex:uk_claim_selected_label,priority:2" json:"-"`
	IsSelected    bool    `gorm:"column:is_selected;not null;default:false" json:"is_selected"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName returns the database table name.
func (Document) TableName() string {
	return "document"
}
