package handler

import (
	"ClaimVault/internal/dto"
	"ClaimVault/internal/service"
	"ClaimVault/model"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

func uploadToken(c *gin.Context) string {
	if token := c.Query("token"); token != "" {
		return token
	}
	return c.PostForm("token")
}

func recordAttempt(c *gin.Context, token string, tok *model.UploadToken, doc *model.Document, fileName string, size int64, result string) {
	entry := &model.UploadAccessLog{
		Token:      token,
		FileName:   fileName,
		Size:       size,
		Result:     result,
		RemoteAddr: c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	}
	if tok != nil {
		entry.ClaimID = tok.ClaimID
	}
	if doc != nil {
		entry.DocumentID = &doc.ID
	}
	service.RecordUploadAttempt(entry)
}

// PublicUpload accepts one file posted against a share token. No login is
// required; the token alone authorizes the upload. Backend failure details
// never reach the anonymous caller.
func PublicUpload(c *gin.Context) {
	token := uploadToken(c)
	if token == "" {
		recordAttempt(c, "", nil, nil, "", 0, model.UploadResultBadRequest)
		c.JSON(http.StatusBadRequest, gin.H{"error": "upload token required"})
		return
	}

	tok, err := service.ValidateUploadToken(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, service.ErrTokenInvalid) {
			recordAttempt(c, token, nil, nil, "", 0, model.UploadResultUnauthorized)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "upload link invalid or expired"})
			return
		}
		recordAttempt(c, token, nil, nil, "", 0, model.UploadResultDBFault)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed, please retry later"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		recordAttempt(c, token, tok, nil, "", 0, model.UploadResultBadRequest)
		c.JSON(http.StatusBadRequest, gin.H{"error": "file required"})
		return
	}

	// Size is checked before the blob goes anywhere near storage.
	if err := service.CheckUploadSize(fileHeader.Size); err != nil {
		recordAttempt(c, token, tok, nil, fileHeader.Filename, fileHeader.Size, model.UploadResultOversized)
		c.JSON(http.StatusBadRequest, gin.H{"error": "file exceeds the 10 MiB upload limit"})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		recordAttempt(c, token, tok, nil, fileHeader.Filename, fileHeader.Size, model.UploadResultBadRequest)
		c.JSON(http.StatusBadRequest, gin.H{"error": "file unreadable"})
		return
	}
	defer src.Close()

	doc, err := service.SaveLinkUpload(c.Request.Context(), tok, fileHeader.Filename, fileHeader.Size, src)
	if err != nil {
		var storageErr *service.StorageError
		var persistErr *service.PersistError
		switch {
		case errors.Is(err, service.ErrFileTooLarge):
			recordAttempt(c, token, tok, nil, fileHeader.Filename, fileHeader.Size, model.UploadResultOversized)
			c.JSON(http.StatusBadRequest, gin.H{"error": "file exceeds the 10 MiB upload limit"})
		case errors.As(err, &storageErr):
			recordAttempt(c, token, tok, nil, fileHeader.Filename, fileHeader.Size, model.UploadResultStorageFault)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed, please retry later"})
		case errors.As(err, &persistErr):
			recordAttempt(c, token, tok, nil, fileHeader.Filename, fileHeader.Size, model.UploadResultDBFault)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed, please retry later"})
		default:
			recordAttempt(c, token, tok, nil, fileHeader.Filename, fileHeader.Size, model.UploadResultDBFault)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed, please retry later"})
		}
		return
	}

	recordAttempt(c, token, tok, doc, doc.FileName, doc.Size, model.UploadResultAccepted)
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "file received",
		"document": doc,
	})
}

// PublicUploadMeta lets the upload page probe a token before showing the
// form. It returns the claim number, the label and the expiry.
func PublicUploadMeta(c *gin.Context) {
	token := uploadToken(c)
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "upload token required"})
		return
	}
	tok, err := service.ValidateUploadToken(c.Request.Context(), token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "upload link invalid or expired"})
		return
	}
	claim, err := service.GetClaimById(tok.ClaimID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed, please retry later"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"meta": dto.TokenMetaResponse{
			ClaimNumber: claim.ClaimNumber,
			Label:       tok.Label,
			ExpiresAt:   tok.ExpiresAt,
		},
	})
}
