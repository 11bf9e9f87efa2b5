package service

import (
	"ClaimVault/config"
	"ClaimVault/internal/dto"
	"ClaimVault/internal/repo"
	"ClaimVault/internal/storage"
	"ClaimVault/internal/task"
	"ClaimVault/model"
	"ClaimVault/utils"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"
)

// GetDocumentById returns one document.
func GetDocumentById(documentID uint64) (*model.Document, error) {
	var doc model.Document
	if err := repo.Db.First(&doc, documentID).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

// GetClaimDocuments lists a claim's documents with pagination and cache.
func GetClaimDocuments(ctx context.Context, claimID uint64, page, pageSize int, orderBy string, orderDesc bool) ([]model.Document, int64, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 200 {
		pageSize = 50
	}

	if cached, ok := utils.GetClaimDocumentsFromCache(ctx, claimID, page, pageSize, orderBy, orderDesc); ok {
		return cached.Documents, cached.Total, nil
	}

	var docs []model.Document
	var total int64
	query := repo.Db.Model(&model.Document{}).Where("claim_id = ?", claimID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at DESC"
	if sanitized := sanitizeOrderBy(orderBy); sanitized != "" {
		if orderDesc {
			order = sanitized + " DESC"
		} else {
			order = sanitized + " ASC"
		}
	}
	if err := query.
		Order(order).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&docs).Error; err != nil {
		return nil, 0, err
	}

	cacheErr := utils.SetClaimDocumentsToCache(ctx, claimID, page, pageSize, orderBy, orderDesc,
		&utils.DocumentListCache{Documents: docs, Total: total}, 5*time.Minute)
	if cacheErr != nil {
		log.Println("cache claim documents failed:", cacheErr)
	}
	return docs, total, nil
}

// SearchDocuments searches a claim's documents by file name.
func SearchDocuments(req *dto.DocumentSearchRequest) ([]model.Document, int64, error) {
	var docs []model.Document
	var total int64

	query := repo.Db.Model(&model.Document{}).
		Where("claim_id = ?", req.ClaimID).
		Where("file_name LIKE ?", fmt.Sprintf("%%%s%%", req.Query))

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
		pageSize = 50
	}
	if err := query.Order(order).Offset((page - 1) * pageSize).Limit(pageSize).Find(&docs).Error; err != nil {
		return nil, 0, err
	}
	return docs, total, nil
}

// GetDownloadURL returns a presigned attachment URL for a document.
func GetDownloadURL(ctx context.Context, doc *model.Document, expiry time.Duration) (string, error) {
	return presignDocument(ctx, doc, expiry, "attachment")
}

// GetPreviewURL returns a presigned inline URL for a document.
func GetPreviewURL(ctx context.Context, doc *model.Document, expiry time.Duration) (string, error) {
	return presignDocument(ctx, doc, expiry, "inline")
}

func presignDocument(ctx context.Context, doc *model.Document, expiry time.Duration, disposition string) (string, error) {
	if doc.ObjectName == "" {
		return "", errors.New("object name missing")
	}
	if storage.Default == nil {
		return "", errors.New("storage not initialized")
	}
	if expiry <= 0 {
		expiry = config.AppConfig.PresignExpiry
	}
	contentType := doc.ContentType
	if contentType == "" {
		contentType = GetContentBook(doc.FileName)
	}
	safeName := utils.SanitizeHeaderFilename(doc.FileName)
	url, err := storage.Default.PresignedGetObjectWithResponse(
		ctx,
		config.AppConfig.BucketName,
		doc.ObjectName,
		expiry,
		map[string]string{
			"response-content-type":        contentType,
			"response-content-disposition": fmt.Sprintf("%s; filename=\"%s\"", disposition, safeName),
		},
	)
	if err == nil {
		return url, nil
	}
	return storage.Default.PresignedGetObject(ctx, config.AppConfig.BucketName, doc.ObjectName, expiry)
}

// OpenDocument streams a document's bytes from object storage.
func OpenDocument(ctx context.Context, doc *model.Document) (io.ReadCloser, *storage.ObjectInfo, error) {
	if storage.Default == nil {
		return nil, nil, errors.New("storage not initialized")
	}
	object, info, err := storage.Default.GetObject(ctx, config.AppConfig.BucketName, doc.ObjectName)
	if err != nil {
		return nil, nil, err
	}
	return object, &info, nil
}

// DeleteDocument moves a document to the recycle bin. Selection is cleared
// first so the soft-deleted row cannot keep holding the label's unique slot.
func DeleteDocument(ctx context.Context, documentID uint64) error {
	doc, err := GetDocumentById(documentID)
	if err != nil {
		return err
	}
	if doc.SelectedLabel != nil {
		if err := repo.Db.Model(doc).Updates(map[string]interface{}{
			"selected_label": nil,
			"is_selected":    false,
		}).Error; err != nil {
			return err
		}
	}
	if err := repo.Db.Delete(doc).Error; err != nil {
		return err
	}
	return utils.InvalidateClaimDocumentsCache(ctx, doc.ClaimID)
}

// ListRecycleDocuments lists a claim's soft-deleted documents.
func ListRecycleDocuments(claimID uint64) ([]model.Document, error) {
	var docs []model.Document
	if err := repo.Db.Unscoped().
		Where("claim_id = ? AND deleted_at IS NOT NULL", claimID).
		Order("deleted_at DESC").
		Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

// RestoreDocument brings a soft-deleted document back, unassigned.
func RestoreDocument(ctx context.Context, documentID uint64) error {
	var doc model.Document
	if err := repo.Db.Unscoped().First(&doc, documentID).Error; err != nil {
		return err
	}
	if err := repo.Db.Unscoped().Model(&doc).Updates(map[string]interface{}{
		"deleted_at":     nil,
		"assigned_label": "",
		"selected_label": nil,
		"is_selected":    false,
	}).Error; err != nil {
		return err
	}
	return utils.InvalidateClaimDocumentsCache(ctx, doc.ClaimID)
}

// PurgeDocument removes a recycled document and its blob for good. A failed
// blob removal becomes a cleanup task instead of blocking the purge.
func PurgeDocument(ctx context.Context, documentID uint64) error {
	var doc model.Document
	if err := repo.Db.Unscoped().First(&doc, documentID).Error; err != nil {
		return err
	}
	if storage.Default != nil && doc.ObjectName != "" {
		if err := storage.Default.RemoveObject(ctx, config.AppConfig.BucketName, doc.ObjectName); err != nil {
			if _, taskErr := task.CreateCleanupTask(config.AppConfig.BucketName, doc.ObjectName, "purge remove failed: "+err.Error()); taskErr != nil {
				log.Printf("orphaned object %s: remove failed (%v), cleanup task failed (%v)", doc.ObjectName, err, taskErr)
			}
		}
	}
	if err := repo.Db.Unscoped().Delete(&doc).Error; err != nil {
		return err
	}
	return utils.InvalidateClaimDocumentsCache(ctx, doc.ClaimID)
}
