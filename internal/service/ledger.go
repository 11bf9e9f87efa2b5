package service

import (
	"ClaimVault/internal/dto"
	"ClaimVault/internal/repo"
	"ClaimVault/model"
	"ClaimVault/utils"
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// BuildLedger assembles the assignment ledger for one claim: every label
// from the policy type plus the claim's custom labels, each with its
// selected document, candidate documents and pending upload links.
// Reading the ledger never mutates state.
func BuildLedger(claimID uint64) (*dto.LedgerResponse, error) {
	claim, err := GetClaimById(claimID)
	if err != nil {
		return nil, err
	}

	var customLabels []model.ClaimLabel
	if err := repo.Db.
		Where("claim_id = ?", claimID).
		Order("sort_order ASC, id ASC").
		Find(&customLabels).Error; err != nil {
		return nil, err
	}

	var docs []model.Document
	if err := repo.Db.
		Where("claim_id = ?", claimID).
		Order("created_at ASC").
		Find(&docs).Error; err != nil {
		return nil, err
	}

	labels := LedgerLabels(claim.PolicyType.RequiredDocuments, customLabels)
	customSet := make(map[string]struct{}, len(customLabels))
	for _, cl := range customLabels {
		customSet[cl.Label] = struct{}{}
	}

	resp := &dto.LedgerResponse{
		ClaimID:     claim.ID,
		ClaimNumber: claim.ClaimNumber,
		Entries:     make([]dto.LedgerEntry, 0, len(labels)),
	}
	for _, label := range labels {
		_, custom := customSet[label]
		entry := dto.LedgerEntry{Label: label, Custom: custom}
		for i := range docs {
			if docs[i].AssignedLabel != label {
				continue
			}
			if docs[i].IsSelected {
				selected := docs[i]
				entry.Selected = &selected
			}
			entry.Candidates = append(entry.Candidates, docs[i])
		}
		pending, err := PendingTokensForLabel(claimID, label)
		if err != nil {
			return nil, err
		}
		entry.Pending = pending
		resp.Entries = append(resp.Entries, entry)
	}

	known := make(map[string]struct{}, len(labels))
	for _, label := range labels {
		known[label] = struct{}{}
	}
	for i := range docs {
		if docs[i].AssignedLabel == "" {
			resp.Unassigned = append(resp.Unassigned, docs[i])
			continue
		}
		if _, ok := known[docs[i].AssignedLabel]; !ok {
			resp.Unassigned = append(resp.Unassigned, docs[i])
		}
	}
	return resp, nil
}

// LedgerLabels merges required-document labels with custom claim labels,
// preserving order and dropping exact duplicates (case-sensitive).
func LedgerLabels(required []string, custom []model.ClaimLabel) []string {
	out := make([]string, 0, len(required)+len(custom))
	seen := make(map[string]struct{}, len(required)+len(custom))
	for _, label := range required {
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		out = append(out, label)
	}
	for _, cl := range custom {
		if _, ok := seen[cl.Label]; ok {
			continue
		}
		seen[cl.Label] = struct{}{}
		out = append(out, cl.Label)
	}
	return out
}

// AssignDocument makes the document the selected one for a label. The whole
// transition runs in one transaction; the unique index on
// (claim_id, selected_label) decides concurrent races, so at most one
// document per label ever carries the selection.
func AssignDocument(ctx context.Context, claimID uint64, label string, documentID uint64) error {
	label = strings.TrimSpace(label)
	if label == "" {
		return errors.New("label required")
	}

	txErr := repo.Db.Transaction(func(tx *gorm.DB) error {
		var doc model.Document
		if err := tx.Where("id = ? AND claim_id = ?", documentID, claimID).First(&doc).Error; err != nil {
			return err
		}

		// Detach the previously selected document for this label, if any.
		var prev model.Document
		err := tx.Where("claim_id = ? AND selected_label = ? AND id <> ?", claimID, label, documentID).
			First(&prev).Error
		if err == nil {
			if err := tx.Model(&prev).Updates(map[string]interface{}{
				"assigned_label": "",
				"selected_label": nil,
				"is_selected":    false,
			}).Error; err != nil {
				return err
			}
		} else if err != gorm.ErrRecordNotFound {
			return err
		}

		if err := tx.Model(&doc).Updates(map[string]interface{}{
			"assigned_label": label,
			"selected_label": label,
			"is_selected":    true,
		}).Error; err != nil {
			return err
		}

		// A fulfilled label no longer waits on its shared links.
		if err := tx.Model(&model.UploadToken{}).
			Where("claim_id = ? AND label = ? AND status = ?", claimID, label, model.TokenStatusActive).
			Update("status", model.TokenStatusFulfilled).Error; err != nil {
			return err
		}
		return nil
	})
	if txErr != nil {
		if repo.IsDuplicateKeyError(txErr) {
			return ErrAssignConflict
		}
		return txErr
	}

	// Fulfilled tokens must stop validating immediately, not at cache expiry.
	fulfilled, err := fulfilledTokens(claimID, label)
	if err == nil {
		for _, tok := range fulfilled {
			_ = utils.InvalidateUploadTokenCache(ctx, tok)
		}
	}
	return utils.InvalidateClaimDocumentsCache(ctx, claimID)
}

func fulfilledTokens(claimID uint64, label string) ([]string, error) {
	var tokens []model.UploadToken
	if err := repo.Db.
		Where("claim_id = ? AND label = ? AND status = ?", claimID, label, model.TokenStatusFulfilled).
		Find(&tokens).Error; err != nil {
		return nil, err
	}
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tok.Token)
	}
	return out, nil
}

// UnassignLabel detaches the selected document from a label without
// deleting the document.
func UnassignLabel(ctx context.Context, claimID uint64, label string) error {
	var doc model.Document
	if err := repo.Db.Where("claim_id = ? AND selected_label = ?", claimID, label).First(&doc).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return err
	}
	if err := repo.Db.Model(&doc).Updates(map[string]interface{}{
		"assigned_label": "",
		"selected_label": nil,
		"is_selected":    false,
	}).Error; err != nil {
		return err
	}
	return utils.InvalidateClaimDocumentsCache(ctx, claimID)
}

// AddCustomLabel appends a new requirement label to a claim. Matching is a
// case-sensitive exact match against required and custom labels alike.
func AddCustomLabel(claimID uint64, label string) (*model.ClaimLabel, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, errors.New("label required")
	}
	claim, err := GetClaimById(claimID)
	if err != nil {
		return nil, err
	}
	for _, required := range claim.PolicyType.RequiredDocuments {
		if required == label {
			return nil, ErrLabelExists
		}
	}

	var maxOrder int
	if err := repo.Db.Model(&model.ClaimLabel{}).
		Where("claim_id = ?", claimID).
		Select("COALESCE(MAX(sort_order), 0)").
		Scan(&maxOrder).Error; err != nil {
		return nil, err
	}

	cl := &model.ClaimLabel{
		ClaimID:   claimID,
		Label:     label,
		SortOrder: maxOrder + 1,
	}
	if err := repo.Db.Create(cl).Error; err != nil {
		if repo.IsDuplicateKeyError(err) {
			return nil, ErrLabelExists
		}
		return nil, err
	}
	return cl, nil
}

// RemoveCustomLabel deletes a custom label and unassigns any document
// attached to it. Removal is set subtraction: the label is gone afterwards.
func RemoveCustomLabel(ctx context.Context, claimID uint64, label string) error {
	result := repo.Db.Where("claim_id = ? AND label = ?", claimID, label).Delete(&model.ClaimLabel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return UnassignLabel(ctx, claimID, label)
}
