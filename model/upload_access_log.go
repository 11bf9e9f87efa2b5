package model

import "time"

const (
	UploadResultAccepted     = "accepted"
	UploadResultBadRequest   = "bad_request"
	UploadResultOversized    = "oversized"
	UploadResultUnauthorized = "unauthorized"
	UploadResultStorageFault = "storage_fault"
	UploadResultDBFault      = "db_fault"
)

// UploadAccessLog records every upload attempt made against a share token.
type UploadAccessLog struct {
	ID uint64 `gorm:"primaryKey" json:"id"`

	Token   string `gorm:"column:token;size:64;index;not null" json:"token"`
	ClaimID uint64 `gorm:"column:claim_id;index;not null" json:"claim_id"`

	DocumentID *uint64 `gorm:"column:document_id" json:"document_id,omitempty"`

	FileName string `gorm:"column:file_name;size:255;not null;default:''" json:"file_name"`
	Size     int64  `gorm:"column:size;not null;default:0" json:"size"`

	Result string `gorm:"column:result;type:varchar(32);not null" json:"result"`

	RemoteAddr string `gorm:"column:remote_addr;size:64;not null;default:''" json:"remote_addr"`
	UserAgent  string `gorm:"column:user_agent;size:255;not null;default:''" json:"user_agent"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name.
func (UploadAccessLog) TableName() string {
	return "upload_access_log"
}
