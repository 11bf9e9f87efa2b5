package handler

import (
	"ClaimVault/internal/dto"
	"ClaimVault/internal/service"
	"ClaimVault/utils"
	"log"
	"strconv"

	"github.com/gin-gonic/gin"
)

func currentUserID(c *gin.Context) uint64 {
	if v, ok := c.Get("user_id"); ok {
		if id, ok := v.(uint64); ok {
			return id
		}
	}
	return 0
}

// IssueToken mints a shareable upload link for a claim. When an email is
// given the link is mailed to the claimant as well.
func IssueToken(c *gin.Context) {
	var req dto.IssueTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, err)
		return
	}

	token, err := service.IssueUploadToken(currentUserID(c), req.ClaimID, req.ExpireHours, req.Label)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	link := service.BuildUploadURL(token.Token)
	if req.Email != "" {
		claim, claimErr := service.GetClaimById(token.ClaimID)
		if claimErr == nil {
			if mailErr := utils.SendUploadLinkMail(req.Email, claim.ClaimNumber, token.Label, link, token.ExpiresAt.Format("2006-01-02 15:04 MST")); mailErr != nil {
				log.Println("send upload link mail failed:", mailErr)
			}
		}
	}

	utils.Success(c, dto.IssueTokenResponse{
		Token:     token.Token,
		UploadURL: link,
		ExpiresAt: token.ExpiresAt,
		Label:     token.Label,
	})
}

// RevokeToken invalidates an upload link before its expiry.
func RevokeToken(c *gin.Context) {
	var req dto.RevokeTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, err)
		return
	}
	if err := service.RevokeUploadToken(c.Request.Context(), req.Token); err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, nil)
}

// ListTokens returns all upload links issued for a claim.
func ListTokens(c *gin.Context) {
	claimID, err := strconv.ParseUint(c.Query("claim_id"), 10, 64)
	if err != nil || claimID == 0 {
		utils.Fail(c, err)
		return
	}
	tokens, err := service.ListUploadTokens(claimID)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, tokens)
}

// TokenActivity returns recent upload attempts, filterable by claim or token.
func TokenActivity(c *gin.Context) {
	claimID, _ := strconv.ParseUint(c.Query("claim_id"), 10, 64)
	limit, _ := strconv.Atoi(c.Query("limit"))
	logs, err := service.ListUploadAccessLogs(claimID, c.Query("token"), limit)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, logs)
}
