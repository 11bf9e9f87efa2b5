package service

import (
	"ClaimVault/internal/dto"
	"ClaimVault/internal/repo"
	"ClaimVault/model"
	"ClaimVault/utils"
	"context"
	"errors"
	"strings"
)

// CreateClaim creates a claim for an existing policy type.
func CreateClaim(operatorID uint64, req *dto.ClaimCreateRequest) (*model.Claim, error) {
	if _, err := GetPolicyTypeById(req.PolicyTypeID); err != nil {
		return nil, err
	}

	claim := &model.Claim{
		PolicyTypeID:  req.PolicyTypeID,
		ClaimantName:  strings.TrimSpace(req.ClaimantName),
		ClaimantEmail: strings.TrimSpace(req.ClaimantEmail),
		IncidentDate:  req.IncidentDate,
		Status:        model.ClaimStatusOpen,
		CreatedBy:     operatorID,
	}

	// Claim numbers are random; retry a couple of times on the rare collision.
	var err error
	for attempt := 0; attempt < 3; attempt++ {
		claim.ClaimNumber = utils.GenClaimNumber()
		err = repo.Db.Create(claim).Error
		if err == nil {
			return claim, nil
		}
		if !repo.IsDuplicateKeyError(err) {
			return nil, err
		}
	}
	return nil, err
}

// GetClaimById returns a claim with its policy type.
func GetClaimById(claimID uint64) (*model.Claim, error) {
	var claim model.Claim
	if err := repo.Db.Preload("PolicyType").First(&claim, claimID).Error; err != nil {
		return nil, err
	}
	return &claim, nil
}

// GetClaimWithDocuments returns a claim with its policy type and documents.
func GetClaimWithDocuments(claimID uint64) (*model.Claim, error) {
	var claim model.Claim
	if err := repo.Db.
		Preload("PolicyType").
		Preload("Documents").
		First(&claim, claimID).Error; err != nil {
		return nil, err
	}
	return &claim, nil
}

// ListClaims lists claims with optional status filter and pagination.
func ListClaims(req *dto.ClaimListRequest) ([]model.Claim, int64, error) {
	var claims []model.Claim
	var total int64

	query := repo.Db.Model(&model.Claim{})
	if req.Status != "" {
		if !model.ValidClaimStatus(req.Status) {
			return nil, 0, errors.New("unknown claim status")
		}
		query = query.Where("status = ?", req.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at DESC"
	if orderBy := sanitizeOrderBy(req.OrderBy); orderBy != "" {
		if req.OrderDesc {
			order = orderBy + " DESC"
		} else {
			order = orderBy + " ASC"
		}
	}

	page := req.Page
	if page <= 0 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize <= 0 || pageSize > 200 {
		pageSize = 20
	}

	if err := query.
		Preload("PolicyType").
		Order(order).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&claims).Error; err != nil {
		return nil, 0, err
	}
	return claims, total, nil
}

// UpdateClaim updates claim status and claimant fields.
func UpdateClaim(req *dto.ClaimUpdateRequest) (*model.Claim, error) {
	claim, err := GetClaimById(req.ClaimID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Status != "" {
		if !model.ValidClaimStatus(req.Status) {
			return nil, errors.New("unknown claim status")
		}
		updates["status"] = req.Status
	}
	if name := strings.TrimSpace(req.ClaimantName); name != "" {
		updates["claimant_name"] = name
	}
	if mail := strings.TrimSpace(req.ClaimantEmail); mail != "" {
		updates["claimant_email"] = mail
	}
	if req.IncidentDate != nil {
		updates["incident_date"] = req.IncidentDate
	}
	if len(updates) == 0 {
		return claim, nil
	}
	if err := repo.Db.Model(claim).Updates(updates).Error; err != nil {
		return nil, err
	}
	return claim, nil
}

// DeleteClaim soft-deletes a claim and revokes its outstanding tokens so
// shared links stop working immediately.
func DeleteClaim(ctx context.Context, claimID uint64) error {
	claim, err := GetClaimById(claimID)
	if err != nil {
		return err
	}

	var tokens []model.UploadToken
	if err := repo.Db.
		Where("claim_id = ? AND status = ?", claimID, model.TokenStatusActive).
		Find(&tokens).Error; err != nil {
		return err
	}
	if err := repo.Db.Model(&model.UploadToken{}).
		Where("claim_id = ? AND status = ?", claimID, model.TokenStatusActive).
		Update("status", model.TokenStatusRevoked).Error; err != nil {
		return err
	}
	for _, tok := range tokens {
		_ = utils.InvalidateUploadTokenCache(ctx, tok.Token)
	}

	if err := repo.Db.Delete(claim).Error; err != nil {
		return err
	}
	_ = utils.InvalidateClaimDocumentsCache(ctx, claimID)
	return nil
}
