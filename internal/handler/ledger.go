package handler

import (
	"ClaimVault/internal/dto"
	"ClaimVault/internal/service"
	"ClaimVault/utils"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetLedger returns the assignment ledger for one claim.
func GetLedger(c *gin.Context) {
	claimID, err := strconv.ParseUint(c.Param("claimID"), 10, 64)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	ledger, err := service.BuildLedger(claimID)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, ledger)
}

// AssignDocument selects a document for a requirement label. A concurrent
// assignment for the same label loses with 409.
func AssignDocument(c *gin.Context) {
	var req dto.AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, err)
		return
	}
	err := service.AssignDocument(c.Request.Context(), req.ClaimID, req.Label, req.DocumentID)
	if err != nil {
		if errors.Is(err, service.ErrAssignConflict) {
			c.JSON(http.StatusConflict, gin.H{"code": -1, "msg": err.Error()})
			return
		}
		utils.Fail(c, err)
		return
	}
	utils.Success(c, nil)
}

// UnassignLabel detaches the selected document from a label.
func UnassignLabel(c *gin.Context) {
	var req dto.UnassignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, err)
		return
	}
	if err := service.UnassignLabel(c.Request.Context(), req.ClaimID, req.Label); err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, nil)
}

// AddLabel appends a custom requirement label to a claim.
func AddLabel(c *gin.Context) {
	var req dto.LabelAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, err)
		return
	}
	label, err := service.AddCustomLabel(req.ClaimID, req.Label)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, label)
}

// RemoveLabel removes a custom label and frees any document attached to it.
func RemoveLabel(c *gin.Context) {
	var req dto.LabelRemoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, err)
		return
	}
	if err := service.RemoveCustomLabel(c.Request.Context(), req.ClaimID, req.Label); err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, nil)
}
