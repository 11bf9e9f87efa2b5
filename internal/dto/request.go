package dto

import "time"

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Username      string `json:"username" binding:"required"`
	FirstPassword string `json:"first-password" binding:"required"`
	LastPassword  string `json:"second-password" binding:"required"`
	Email         string `json:"email" binding:"required"`
}

type PolicyTypeCreateRequest struct {
	Name              string   `json:"name" binding:"required"`
	Description       string   `json:"description"`
	RequiredDocuments []string `json:"required_documents"`
}

type PolicyTypeUpdateRequest struct {
	PolicyTypeID      uint64   `json:"policy_type_id" binding:"required"`
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	RequiredDocuments []string `json:"required_documents"`
}

type PolicyTypeDeleteRequest struct {
	PolicyTypeID uint64 `json:"policy_type_id" binding:"required"`
}

type ClaimCreateRequest struct {
	PolicyTypeID  uint64     `json:"policy_type_id" binding:"required"`
	ClaimantName  string     `json:"claimant_name" binding:"required"`
	ClaimantEmail string     `json:"claimant_email"`
	IncidentDate  *time.Time `json:"incident_date"`
}

type ClaimListRequest struct {
	Status    string `json:"status"`
	Page      int    `json:"page"`
	PageSize  int    `json:"page_size"`
	OrderBy   string `json:"order_by"`
	OrderDesc bool   `json:"order_desc"`
}

type ClaimUpdateRequest struct {
	ClaimID       uint64     `json:"claim_id" binding:"required"`
	Status        string     `json:"status"`
	ClaimantName  string     `json:"claimant_name"`
	ClaimantEmail string     `json:"claimant_email"`
	IncidentDate  *time.Time `json:"incident_date"`
}

type ClaimDeleteRequest struct {
	ClaimID uint64 `json:"claim_id" binding:"required"`
}

type IssueTokenRequest struct {
	ClaimID     uint64 `json:"claim_id" binding:"required"`
	ExpireHours int    `json:"expire_hours"`
	Label       string `json:"label"`
	Email       string `json:"email"`
}

type RevokeTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

type AssignRequest struct {
	ClaimID    uint64 `json:"claim_id" binding:"required"`
	Label      string `json:"label" binding:"required"`
	DocumentID uint64 `json:"document_id" binding:"required"`
}

type UnassignRequest struct {
	ClaimID uint64 `json:"claim_id" binding:"required"`
	Label   string `json:"label" binding:"required"`
}

type LabelAddRequest struct {
	ClaimID uint64 `json:"claim_id" binding:"required"`
	Label   string `json:"label" binding:"required"`
}

type LabelRemoveRequest struct {
	ClaimID uint64 `json:"claim_id" binding:"required"`
	Label   string `json:"label" binding:"required"`
}

type DocumentSearchRequest struct {
	ClaimID   uint64 `json:"claim_id" binding:"required"`
	Query     string `json:"query" binding:"required"`
	Page      int    `json:"page"`
	PageSize  int    `json:"page_size"`
	OrderBy   string `json:"order_by"`
	OrderDesc bool   `json:"order_desc"`
}

type DocumentDeleteRequest struct {
	DocumentID uint64 `json:"document_id" binding:"required"`
}

type DocumentRestoreRequest struct {
	DocumentID uint64 `json:"document_id" binding:"required"`
}

type DocumentPurgeRequest struct {
	DocumentID uint64 `json:"document_id" binding:"required"`
}

type ArchiveDownloadRequest struct {
	ClaimID     uint64   `json:"claim_id" binding:"required"`
	DocumentIDs []uint64 `json:"document_ids"`
	Name        string   `json:"name"`
}
