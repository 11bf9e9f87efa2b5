package handler

import (
	"ClaimVault/internal/dto"
	"ClaimVault/internal/service"
	"ClaimVault/model"
	"ClaimVault/utils"
	"archive/zip"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// DownloadDocument returns a presigned attachment URL for one document.
func DownloadDocument(c *gin.Context) {
	doc, ok := documentFromParam(c)
	if !ok {
		return
	}
	url, err := service.GetDownloadURL(c.Request.Context(), doc, 0)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, gin.H{"url": url, "file_name": doc.FileName})
}

// PreviewDocument returns a presigned inline URL for one document.
func PreviewDocument(c *gin.Context) {
	doc, ok := documentFromParam(c)
	if !ok {
		return
	}
	url, err := service.GetPreviewURL(c.Request.Context(), doc, 0)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, gin.H{"url": url, "file_name": doc.FileName, "content_type": doc.ContentType})
}

func documentFromParam(c *gin.Context) (*model.Document, bool) {
	documentID, err := strconv.ParseUint(c.Param("documentID"), 10, 64)
	if err != nil {
		utils.Fail(c, err)
		return nil, false
	}
	doc, err := service.GetDocumentById(documentID)
	if err != nil {
		utils.Fail(c, err)
		return nil, false
	}
	return doc, true
}

// DeleteDocument moves a document into the recycle bin.
func DeleteDocument(c *gin.Context) {
	var req dto.DocumentDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, err)
		return
	}
	if err := service.DeleteDocument(c.Request.Context(), req.DocumentID); err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, nil)
}

// ListRecycle lists a claim's recycled documents.
func ListRecycle(c *gin.Context) {
	claimID, err := strconv.ParseUint(c.Query("claim_id"), 10, 64)
	if err != nil || claimID == 0 {
		utils.Fail(c, err)
		return
	}
	docs, err := service.ListRecycleDocuments(claimID)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, docs)
}

// RestoreDocument brings a recycled document back, unassigned.
func RestoreDocument(c *gin.Context) {
	var req dto.DocumentRestoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, err)
		return
	}
	if err := service.RestoreDocument(c.Request.Context(), req.DocumentID); err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, nil)
}

// PurgeDocument deletes a recycled document and its blob permanently.
func PurgeDocument(c *gin.Context) {
	var req dto.DocumentPurgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, err)
		return
	}
	if err := service.PurgeDocument(c.Request.Context(), req.DocumentID); err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, nil)
}

// SearchDocuments searches a claim's documents by file name.
func SearchDocuments(c *gin.Context) {
	var req dto.DocumentSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, err)
		return
	}
	docs, total, err := service.SearchDocuments(&req)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, gin.H{"documents": docs, "total": total})
}

// DownloadArchive streams a claim's documents as one zip, grouped by label.
func DownloadArchive(c *gin.Context) {
	var req dto.ArchiveDownloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, err)
		return
	}
	entries, err := service.BuildArchiveEntries(req.ClaimID, req.DocumentIDs)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	if len(entries) == 0 {
		utils.Fail(c, fmt.Errorf("no documents to archive"))
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = fmt.Sprintf("claim-%d", req.ClaimID)
	}
	if !strings.HasSuffix(name, ".zip") {
		name += ".zip"
	}
	c.Header("Content-Type", "application/zip")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", utils.SanitizeHeaderFilename(name)))

	zw := zip.NewWriter(c.Writer)
	defer zw.Close()

	for _, entry := range entries {
		object, _, err := service.OpenDocument(c.Request.Context(), entry.Doc)
		if err != nil {
			log.Printf("archive: open %s failed: %v", entry.Doc.ObjectName, err)
			continue
		}
		w, err := zw.Create(entry.ZipPath)
		if err != nil {
			object.Close()
			log.Printf("archive: create entry %s failed: %v", entry.ZipPath, err)
			return
		}
		if _, err := io.Copy(w, object); err != nil {
			object.Close()
			log.Printf("archive: copy %s failed: %v", entry.ZipPath, err)
			return
		}
		object.Close()
	}
}
