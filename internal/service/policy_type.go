package service

import (
	"ClaimVault/internal/dto"
	"ClaimVault/internal/repo"
	"ClaimVault/model"
	"strings"
)

// CreatePolicyType creates a policy type with its required-document labels.
func CreatePolicyType(req *dto.PolicyTypeCreateRequest) (*model.PolicyType, error) {
	pt := &model.PolicyType{
		Name:              strings.TrimSpace(req.Name),
		Description:       req.Description,
		RequiredDocuments: normalizeLabels(req.RequiredDocuments),
	}
	if err := repo.Db.Create(pt).Error; err != nil {
		return nil, err
	}
	return pt, nil
}

// GetPolicyTypeById returns one policy type.
func GetPolicyTypeById(id uint64) (*model.PolicyType, error) {
	var pt model.PolicyType
	if err := repo.Db.First(&pt, id).Error; err != nil {
		return nil, err
	}
	return &pt, nil
}

// ListPolicyTypes returns all policy types.
func ListPolicyTypes() ([]model.PolicyType, error) {
	var items []model.PolicyType
	if err := repo.Db.Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// UpdatePolicyType updates name, description and required documents.
func UpdatePolicyType(req *dto.PolicyTypeUpdateRequest) (*model.PolicyType, error) {
	pt, err := GetPolicyTypeById(req.PolicyTypeID)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if name := strings.TrimSpace(req.Name); name != "" {
		updates["name"] = name
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.RequiredDocuments != nil {
		updates["required_documents"] = normalizeLabels(req.RequiredDocuments)
	}
	if len(updates) == 0 {
		return pt, nil
	}
	if err := repo.Db.Model(pt).Updates(updates).Error; err != nil {
		return nil, err
	}
	return pt, nil
}

// DeletePolicyType soft-deletes a policy type if no claim references it.
func DeletePolicyType(id uint64) error {
	var count int64
	if err := repo.Db.Model(&model.Claim{}).Where("policy_type_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrPolicyTypeInUse
	}
	return repo.Db.Delete(&model.PolicyType{}, id).Error
}

// normalizeLabels trims entries and drops blanks and duplicates while
// preserving order. Matching stays case-sensitive.
func normalizeLabels(labels []string) model.StringList {
	out := make(model.StringList, 0, len(labels))
	seen := make(map[string]struct{}, len(labels))
	for _, label := range labels {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		out = append(out, label)
	}
	return out
}
