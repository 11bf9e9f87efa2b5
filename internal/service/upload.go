package service

import (
	"ClaimVault/config"
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
	"path"
	"strings"
	"time"
)

// DefaultUploadMaxBytes is the relay size ceiling when none is configured.
const DefaultUploadMaxBytes = 10 * 1024 * 1024

// UploadMaxBytes returns the active upload size ceiling.
func UploadMaxBytes() int64 {
	if config.AppConfig.UploadMaxBytes > 0 {
		return config.AppConfig.UploadMaxBytes
	}
	return DefaultUploadMaxBytes
}

// CheckUploadSize rejects oversized uploads. It runs before any storage
// call so a too-large file never reaches the object store.
func CheckUploadSize(size int64) error {
	if size > UploadMaxBytes() {
		return ErrFileTooLarge
	}
	return nil
}

// objectSafeName strips path separators so uploaded names cannot escape
// their storage prefix.
func objectSafeName(name string) string {
	clean := strings.TrimSpace(path.Base(strings.ReplaceAll(name, "\\", "/")))
	if clean == "" || clean == "." || clean == ".." {
		return "upload"
	}
	return clean
}

// BuildPublicObjectName namespaces a link upload by claim and token, with a
// timestamp prefix to avoid collisions across repeated uploads.
func BuildPublicObjectName(claimID uint64, token, fileName string) string {
	return fmt.Sprintf("public-uploads/%d/%s/%d-%s", claimID, token, time.Now().Unix(), objectSafeName(fileName))
}

// BuildClaimObjectName namespaces a direct operator upload by claim.
func BuildClaimObjectName(claimID uint64, fileName string) string {
	return fmt.Sprintf("claims/%d/%d-%s", claimID, time.Now().Unix(), objectSafeName(fileName))
}

// storeDocument writes the blob and then the metadata row. On a failed
// insert it removes the just-written blob; when even the removal fails the
// orphan is recorded as a cleanup task so it is retried, not lost.
func storeDocument(ctx context.Context, objectName string, reader io.Reader, size int64, doc *model.Document) (*model.Document, error) {
	if storage.Default == nil {
		return nil, &StorageError{Err: errors.New("storage not initialized")}
	}
	bucket := config.AppConfig.BucketName

	contentType := GetContentBook(doc.FileName)
	if err := storage.Default.PutObject(ctx, bucket, objectName, reader, size, storage.PutOptions{
		ContentType: contentType,
	}); err != nil {
		return nil, &StorageError{Err: err}
	}

	doc.ObjectName = objectName
	doc.ContentType = contentType
	if err := repo.Db.Create(doc).Error; err != nil {
		if removeErr := storage.Default.RemoveObject(ctx, bucket, objectName); removeErr != nil {
			if _, taskErr := task.CreateCleanupTask(bucket, objectName, "document insert failed: "+err.Error()); taskErr != nil {
				log.Printf("orphaned object %s: remove failed (%v), cleanup task failed (%v)", objectName, removeErr, taskErr)
			}
		}
		return nil, &PersistError{Err: err}
	}

	_ = utils.InvalidateClaimDocumentsCache(ctx, doc.ClaimID)
	return doc, nil
}

// SaveLinkUpload stores one file posted against an upload token. The
// document arrives carrying the token's label but stays unselected until
// an operator confirms it in the ledger.
func SaveLinkUpload(ctx context.Context, token *model.UploadToken, fileName string, size int64, reader io.Reader) (*model.Document, error) {
	if err := CheckUploadSize(size); err != nil {
		return nil, err
	}
	fileName = objectSafeName(fileName)
	doc := &model.Document{
		ClaimID:       token.ClaimID,
		FileName:      fileName,
		Size:          size,
		UploadedBy:    nil,
		ViaLink:       true,
		AssignedLabel: token.Label,
	}
	return storeDocument(ctx, BuildPublicObjectName(token.ClaimID, token.Token, fileName), reader, size, doc)
}

// SaveDirectUpload stores one file uploaded by an authenticated operator.
func SaveDirectUpload(ctx context.Context, operatorID, claimID uint64, uploaderName, fileName string, size int64, reader io.Reader) (*model.Document, error) {
	if err := CheckUploadSize(size); err != nil {
		return nil, err
	}
	if _, err := GetClaimById(claimID); err != nil {
		return nil, err
	}
	fileName = objectSafeName(fileName)
	doc := &model.Document{
		ClaimID:      claimID,
		FileName:     fileName,
		Size:         size,
		UploadedBy:   &operatorID,
		UploaderName: strings.TrimSpace(uploaderName),
		ViaLink:      false,
	}
	return storeDocument(ctx, BuildClaimObjectName(claimID, fileName), reader, size, doc)
}

// GetContentBook returns content type by file extension.
func GetContentBook(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".txt":
		return "text/plain; charset=utf-8"
	case ".pdf":
		return "application/pdf"
	case ".doc":
		return "application/msword"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".xls":
		return "application/vnd.ms-excel"
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ".zip":
		return "application/zip"
	case ".heic":
		return "image/heic"
	default:
		return "application/octet-stream"
	}
}
