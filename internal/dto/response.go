package dto

import (
	"ClaimVault/model"
	"time"
)

// IssueTokenResponse is returned when a shareable upload link is minted.
type IssueTokenResponse struct {
	Token     string    `json:"token"`
	UploadURL string    `json:"upload_url"`
	ExpiresAt time.Time `json:"expires_at"`
	Label     string    `json:"label"`
}

// TokenMetaResponse is the public probe result for an upload link.
type TokenMetaResponse struct {
	ClaimNumber string    `json:"claim_number"`
	Label       string    `json:"label"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// LedgerEntry is one requirement label of a claim's assignment ledger.
type LedgerEntry struct {
	Label      string              `json:"label"`
	Custom     bool                `json:"custom"`
	Selected   *model.Document     `json:"selected,omitempty"`
	Candidates []model.Document    `json:"candidates,omitempty"`
	Pending    []model.UploadToken `json:"pending_tokens,omitempty"`
}

// LedgerResponse is the full assignment ledger for one claim.
type LedgerResponse struct {
	ClaimID     uint64           `json:"claim_id"`
	ClaimNumber string           `json:"claim_number"`
	Entries     []LedgerEntry    `json:"entries"`
	Unassigned  []model.Document `json:"unassigned,omitempty"`
}
