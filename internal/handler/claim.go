package handler

import (
	"ClaimVault/internal/dto"
	"ClaimVault/internal/service"
	"ClaimVault/utils"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// CreateClaim opens a new claim under a policy type.
func CreateClaim(c *gin.Context) {
	var req dto.ClaimCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, err)
		return
	}
	claim, err := service.CreateClaim(currentUserID(c), &req)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, claim)
}

// GetClaim returns one claim with its documents.
func GetClaim(c *gin.Context) {
	claimID, err := strconv.ParseUint(c.Param("claimID"), 10, 64)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	claim, err := service.GetClaimWithDocuments(claimID)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, claim)
}

// ListClaims pages through claims with an optional status filter.
func ListClaims(c *gin.Context) {
	var req dto.ClaimListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, err)
		return
	}
	claims, total, err := service.ListClaims(&req)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, gin.H{"claims": claims, "total": total})
}

// UpdateClaim updates claim status and claimant details.
func UpdateClaim(c *gin.Context) {
	var req dto.ClaimUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, err)
		return
	}
	claim, err := service.UpdateClaim(&req)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, claim)
}

// DeleteClaim removes a claim and revokes its outstanding upload links.
func DeleteClaim(c *gin.Context) {
	var req dto.ClaimDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, err)
		return
	}
	if err := service.DeleteClaim(c.Request.Context(), req.ClaimID); err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, nil)
}

// ClaimUpload stores a file uploaded by a logged-in operator and returns a
// presigned URL for immediate viewing.
func ClaimUpload(c *gin.Context) {
	claimID, err := strconv.ParseUint(c.PostForm("claim_id"), 10, 64)
	if err != nil || claimID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "claim_id required"})
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file required"})
		return
	}
	if err := service.CheckUploadSize(fileHeader.Size); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file exceeds the 10 MiB upload limit"})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file unreadable"})
		return
	}
	defer src.Close()

	uploaderName := c.PostForm("uploader_name")
	if uploaderName == "" {
		uploaderName = c.GetString("username")
	}
	doc, err := service.SaveDirectUpload(c.Request.Context(), currentUserID(c), claimID,
		uploaderName, fileHeader.Filename, fileHeader.Size, src)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
		return
	}

	url, err := service.GetPreviewURL(c.Request.Context(), doc, 0)
	if err != nil {
		url = ""
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"url":       url,
		"file_name": doc.FileName,
		"document":  doc,
	})
}
