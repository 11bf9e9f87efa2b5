package service

import (
	"ClaimVault/internal/repo"
	"ClaimVault/model"
	"log"
)

// RecordUploadAttempt logs one upload attempt against a share token. Audit
// writes never fail the upload itself.
func RecordUploadAttempt(entry *model.UploadAccessLog) {
	if err := repo.Db.Create(entry).Error; err != nil {
		log.Println("record upload attempt failed:", err)
	}
}

// ListUploadAccessLogs returns recent upload attempts, optionally filtered
// by claim or token.
func ListUploadAccessLogs(claimID uint64, token string, limit int) ([]model.UploadAccessLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	query := repo.Db.Model(&model.UploadAccessLog{})
	if claimID != 0 {
		query = query.Where("claim_id = ?", claimID)
	}
	if token != "" {
		query = query.Where("token = ?", token)
	}
	var items []model.UploadAccessLog
	if err := query.Order("created_at DESC").Limit(limit).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
