package service

import (
	"ClaimVault/internal/dto"
	"ClaimVault/internal/repo"
	"ClaimVault/model"
	"ClaimVault/utils"
	"bytes"
	"context"
	"strings"
	"testing"
)

// TestDeleteRestoreDocument moves a document through the recycle bin.
func TestDeleteRestoreDocument(t *testing.T) {
	cleanTables(t)
	operator := createTestOperator(t, "doc_recycle")
	pt := createTestPolicyType(t, "Auto-DocRecycle", "Photos")
	claim := createTestClaim(t, operator.ID, pt.ID)
	doc := createTestDocument(t, claim.ID, "pic.jpg")

	if err := AssignDocument(context.Background(), claim.ID, "Photos", doc.ID); err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	if err := DeleteDocument(context.Background(), doc.ID); err != nil {
		t.Fatalf("DeleteDocument failed: %v", err)
	}

	// Gone from the live listing, present in the recycle bin.
	var liveCount int64
	repo.Db.Model(&model.Document{}).Where("claim_id = ?", claim.ID).Count(&liveCount)
	if liveCount != 0 {
		t.Errorf("live count = %d, want 0", liveCount)
	}
	recycled, err := ListRecycleDocuments(claim.ID)
	if err != nil {
		t.Fatalf("ListRecycleDocuments failed: %v", err)
	}
	if len(recycled) != 1 || recycled[0].ID != doc.ID {
		t.Fatalf("recycle bin = %v", recycled)
	}

	// The freed label slot can be taken by another document.
	replacement := createTestDocument(t, claim.ID, "pic2.jpg")
	if err := AssignDocument(context.Background(), claim.ID, "Photos", replacement.ID); err != nil {
		t.Fatalf("assign after delete failed: %v", err)
	}

	if err := RestoreDocument(context.Background(), doc.ID); err != nil {
		t.Fatalf("RestoreDocument failed: %v", err)
	}
	var restored model.Document
	if err := repo.Db.First(&restored, doc.ID).Error; err != nil {
		t.Fatalf("restored document lookup failed: %v", err)
	}
	if restored.AssignedLabel != "" || restored.IsSelected || restored.SelectedLabel != nil {
		t.Error("restored document should come back unassigned")
	}
}

// TestPurgeDocument removes a recycled document and its blob for good.
func TestPurgeDocument(t *testing.T) {
	cleanTables(t)
	operator := createTestOperator(t, "doc_purge")
	pt := createTestPolicyType(t, "Auto-DocPurge")
	claim := createTestClaim(t, operator.ID, pt.ID)

	token, err := IssueUploadToken(operator.ID, claim.ID, 1, "")
	if err != nil {
		t.Fatalf("IssueUploadToken failed: %v", err)
	}
	content := []byte("purge me")
	doc, err := SaveLinkUpload(context.Background(), token, "purge.txt", int64(len(content)), bytes.NewReader(content))
	if err != nil {
		t.Fatalf("SaveLinkUpload failed: %v", err)
	}

	if err := DeleteDocument(context.Background(), doc.ID); err != nil {
		t.Fatalf("DeleteDocument failed: %v", err)
	}
	if err := PurgeDocument(context.Background(), doc.ID); err != nil {
		t.Fatalf("PurgeDocument failed: %v", err)
	}

	var count int64
	repo.Db.Unscoped().Model(&model.Document{}).Where("id = ?", doc.ID).Count(&count)
	if count != 0 {
		t.Errorf("purged document row should be gone, found %d", count)
	}

	if _, _, err := OpenDocument(context.Background(), doc); err == nil {
		t.Error("purged blob should not be readable")
	}
}

// TestSearchDocuments matches by file name substring.
func TestSearchDocuments(t *testing.T) {
	cleanTables(t)
	operator := createTestOperator(t, "doc_search")
	pt := createTestPolicyType(t, "Auto-DocSearch")
	claim := createTestClaim(t, operator.ID, pt.ID)

	createTestDocument(t, claim.ID, "police-report.pdf")
	createTestDocument(t, claim.ID, "repair-estimate.pdf")
	createTestDocument(t, claim.ID, "photo.jpg")

	docs, total, err := SearchDocuments(&dto.DocumentSearchRequest{
		ClaimID: claim.ID,
		Query:   "report",
	})
	if err != nil {
		t.Fatalf("SearchDocuments failed: %v", err)
	}
	if total != 1 || len(docs) != 1 {
		t.Fatalf("total = %d, len = %d, want 1/1", total, len(docs))
	}
	if !strings.Contains(docs[0].FileName, "report") {
		t.Errorf("match = %q", docs[0].FileName)
	}
}

// TestGetClaimDocumentsCached serves the second read from cache.
func TestGetClaimDocumentsCached(t *testing.T) {
	cleanTables(t)
	operator := createTestOperator(t, "doc_cache")
	pt := createTestPolicyType(t, "Auto-DocCache")
	claim := createTestClaim(t, operator.ID, pt.ID)
	createTestDocument(t, claim.ID, "cached.pdf")

	ctx := context.Background()
	first, total, err := GetClaimDocuments(ctx, claim.ID, 1, 50, "", false)
	if err != nil {
		t.Fatalf("first read failed: %v", err)
	}
	if total != 1 || len(first) != 1 {
		t.Fatalf("first read = %d/%d", len(first), total)
	}

	// A row inserted behind the cache stays invisible until invalidation.
	createTestDocument(t, claim.ID, "behind-cache.pdf")
	second, total, err := GetClaimDocuments(ctx, claim.ID, 1, 50, "", false)
	if err != nil {
		t.Fatalf("second read failed: %v", err)
	}
	if total != 1 || len(second) != 1 {
		t.Fatalf("cached read = %d/%d, want 1/1", len(second), total)
	}

	if err := utils.InvalidateClaimDocumentsCache(ctx, claim.ID); err != nil {
		t.Fatalf("invalidate failed: %v", err)
	}
	third, total, err := GetClaimDocuments(ctx, claim.ID, 1, 50, "", false)
	if err != nil {
		t.Fatalf("third read failed: %v", err)
	}
	if total != 2 || len(third) != 2 {
		t.Fatalf("refreshed read = %d/%d, want 2/2", len(third), total)
	}
}
