package handler

import (
	"ClaimVault/internal/dto"
	"ClaimVault/internal/service"
	"ClaimVault/utils"

	"github.com/gin-gonic/gin"
)

// CreatePolicyType registers a policy type with its required documents.
func CreatePolicyType(c *gin.Context) {
	var req dto.PolicyTypeCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, err)
		return
	}
	pt, err := service.CreatePolicyType(&req)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, pt)
}

// ListPolicyTypes returns all policy types.
func ListPolicyTypes(c *gin.Context) {
	items, err := service.ListPolicyTypes()
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, items)
}

// UpdatePolicyType updates a policy type.
func UpdatePolicyType(c *gin.Context) {
	var req dto.PolicyTypeUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, err)
		return
	}
	pt, err := service.UpdatePolicyType(&req)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, pt)
}

// DeletePolicyType removes a policy type when no claim references it.
func DeletePolicyType(c *gin.Context) {
	var req dto.PolicyTypeDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, err)
		return
	}
	if err := service.DeletePolicyType(req.PolicyTypeID); err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Success(c, nil)
}
