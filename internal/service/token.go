package service

import (
	"ClaimVault/config"
	"ClaimVault/internal/repo"
	"ClaimVault/model"
	"ClaimVault/utils"
	"log"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/context"
	"gorm.io/gorm"
)

// IssueUploadToken mints a shareable upload token for a claim. The label
// defaults to the batch marker, meaning files are accepted for any label
// and reconciled by the operator later.
func IssueUploadToken(operatorID, claimID uint64, expireHours int, label string) (*model.UploadToken, error) {
	if _, err := GetClaimById(claimID); err != nil {
		return nil, err
	}

	label = strings.TrimSpace(label)
	if label == "" {
		label = model.BatchLabel
	}

	ttl := config.AppConfig.TokenDefaultTTL
	if expireHours > 0 {
		ttl = time.Duration(expireHours) * time.Hour
	}

	token := &model.UploadToken{
		Token:     utils.GetToken(),
		ClaimID:   claimID,
		Label:     label,
		ExpiresAt: time.Now().Add(ttl),
		CreatedBy: operatorID,
		Status:    model.TokenStatusActive,
	}
	if err := repo.Db.Create(token).Error; err != nil {
		return nil, err
	}

	// Cache TTL matches the token lifetime; its expiry event is what flips
	// the row to expired without polling.
	if err := utils.SetUploadTokenToCache(context.Background(), token, ttl); err != nil {
		log.Println("cache upload token failed:", err)
	}
	return token, nil
}

// BuildUploadURL returns the shareable link embedding the token.
func BuildUploadURL(token string) string {
	base := strings.TrimRight(config.AppConfig.PublicBaseURL, "/")
	return base + "/public-upload?token=" + url.QueryEscape(token)
}

// ValidateUploadToken resolves a bearer token to its claim and label.
// It returns ErrTokenInvalid when the token is unknown, revoked, fulfilled
// or at/past its expiry instant. Validation never consumes the token;
// links stay usable for repeated uploads until expiry.
func ValidateUploadToken(ctx context.Context, token string) (*model.UploadToken, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrTokenInvalid
	}

	if cached, ok := utils.GetUploadTokenFromCache(ctx, token); ok {
		if !cached.UsableAt(time.Now()) {
			return nil, ErrTokenInvalid
		}
		return cached, nil
	}

	var record model.UploadToken
	if err := repo.Db.Where("token = ?", token).First(&record).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrTokenInvalid
		}
		return nil, err
	}

	now := time.Now()
	if record.Status == model.TokenStatusActive && !now.Before(record.ExpiresAt) {
		// The Redis expired-event listener usually does this; catch up here
		// when the cache entry was lost before firing.
		repo.Db.Model(&record).Update("status", model.TokenStatusExpired)
		return nil, ErrTokenInvalid
	}
	if !record.UsableAt(now) {
		return nil, ErrTokenInvalid
	}
	return &record, nil
}

// RevokeUploadToken invalidates a token before its expiry.
func RevokeUploadToken(ctx context.Context, token string) error {
	var record model.UploadToken
	if err := repo.Db.Where("token = ?", token).First(&record).Error; err != nil {
		return err
	}
	if err := repo.Db.Model(&record).Update("status", model.TokenStatusRevoked).Error; err != nil {
		return err
	}
	return utils.InvalidateUploadTokenCache(ctx, token)
}

// ListUploadTokens returns all tokens issued for a claim, newest first.
func ListUploadTokens(claimID uint64) ([]model.UploadToken, error) {
	var tokens []model.UploadToken
	if err := repo.Db.
		Where("claim_id = ?", claimID).
		Order("created_at DESC").
		Find(&tokens).Error; err != nil {
		return nil, err
	}
	return tokens, nil
}

// PendingTokensForLabel returns unexpired label-bound tokens awaiting an
// upload for the given label.
func PendingTokensForLabel(claimID uint64, label string) ([]model.UploadToken, error) {
	var tokens []model.UploadToken
	if err := repo.Db.
		Where("claim_id = ? AND label = ? AND status = ? AND expires_at > ?",
			claimID, label, model.TokenStatusActive, time.Now()).
		Find(&tokens).Error; err != nil {
		return nil, err
	}
	return tokens, nil
}
