package service

import (
	"ClaimVault/internal/repo"
	"ClaimVault/model"
	"context"
	"errors"
	"sync"
	"testing"

	"gorm.io/gorm"
)

// TestAssignDocument selects a document for a label and fulfills its tokens.
func TestAssignDocument(t *testing.T) {
	cleanTables(t)
	operator := createTestOperator(t, "led_assign")
	pt := createTestPolicyType(t, "Auto-LedAssign", "Police Report")
	claim := createTestClaim(t, operator.ID, pt.ID)
	doc := createTestDocument(t, claim.ID, "report.pdf")

	token, err := IssueUploadToken(operator.ID, claim.ID, 1, "Police Report")
	if err != nil {
		t.Fatalf("IssueUploadToken failed: %v", err)
	}

	if err := AssignDocument(context.Background(), claim.ID, "Police Report", doc.ID); err != nil {
		t.Fatalf("AssignDocument failed: %v", err)
	}

	var reloaded model.Document
	if err := repo.Db.First(&reloaded, doc.ID).Error; err != nil {
		t.Fatalf("reload document failed: %v", err)
	}
	if !reloaded.IsSelected || reloaded.SelectedLabel == nil || *reloaded.SelectedLabel != "Police Report" {
		t.Error("document should be selected for the label")
	}
	if reloaded.AssignedLabel != "Police Report" {
		t.Errorf("assigned label = %q", reloaded.AssignedLabel)
	}

	// The label's pending tokens are fulfilled by the assignment.
	var tok model.UploadToken
	if err := repo.Db.Where("token = ?", token.Token).First(&tok).Error; err != nil {
		t.Fatalf("reload token failed: %v", err)
	}
	if tok.Status != model.TokenStatusFulfilled {
		t.Errorf("token status = %d, want fulfilled", tok.Status)
	}
	if _, err := ValidateUploadToken(context.Background(), token.Token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("fulfilled token should stop validating, got %v", err)
	}
}

// TestReassignDetachesPrevious replaces the selected document for a label.
func TestReassignDetachesPrevious(t *testing.T) {
	cleanTables(t)
	operator := createTestOperator(t, "led_reassign")
	pt := createTestPolicyType(t, "Auto-LedReassign", "Photos")
	claim := createTestClaim(t, operator.ID, pt.ID)
	first := createTestDocument(t, claim.ID, "old.jpg")
	second := createTestDocument(t, claim.ID, "new.jpg")

	if err := AssignDocument(context.Background(), claim.ID, "Photos", first.ID); err != nil {
		t.Fatalf("first assign failed: %v", err)
	}
	if err := AssignDocument(context.Background(), claim.ID, "Photos", second.ID); err != nil {
		t.Fatalf("second assign failed: %v", err)
	}

	var selectedCount int64
	repo.Db.Model(&model.Document{}).
		Where("claim_id = ? AND selected_label = ?", claim.ID, "Photos").
		Count(&selectedCount)
	if selectedCount != 1 {
		t.Fatalf("selected count = %d, want 1", selectedCount)
	}

	var prev model.Document
	if err := repo.Db.First(&prev, first.ID).Error; err != nil {
		t.Fatalf("reload previous failed: %v", err)
	}
	if prev.IsSelected || prev.SelectedLabel != nil {
		t.Error("previous document should be deselected")
	}
}

// TestConcurrentAssignKeepsOneSelected races two assignments for one label.
func TestConcurrentAssignKeepsOneSelected(t *testing.T) {
	cleanTables(t)
	operator := createTestOperator(t, "led_race")
	pt := createTestPolicyType(t, "Auto-LedRace", "Invoice")
	claim := createTestClaim(t, operator.ID, pt.ID)
	docA := createTestDocument(t, claim.ID, "a.pdf")
	docB := createTestDocument(t, claim.ID, "b.pdf")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, id := range []uint64{docA.ID, docB.ID} {
		wg.Add(1)
		go func(slot int, documentID uint64) {
			defer wg.Done()
			errs[slot] = AssignDocument(context.Background(), claim.ID, "Invoice", documentID)
		}(i, id)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil && !errors.Is(err, ErrAssignConflict) {
			t.Fatalf("unexpected assign error: %v", err)
		}
	}

	var selectedCount int64
	repo.Db.Model(&model.Document{}).
		Where("claim_id = ? AND selected_label = ?", claim.ID, "Invoice").
		Count(&selectedCount)
	if selectedCount != 1 {
		t.Fatalf("selected count = %d, want exactly 1", selectedCount)
	}
}

// TestUnassignLabel detaches without deleting.
func TestUnassignLabel(t *testing.T) {
	cleanTables(t)
	operator := createTestOperator(t, "led_unassign")
	pt := createTestPolicyType(t, "Auto-LedUnassign", "Photos")
	claim := createTestClaim(t, operator.ID, pt.ID)
	doc := createTestDocument(t, claim.ID, "pic.jpg")

	if err := AssignDocument(context.Background(), claim.ID, "Photos", doc.ID); err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	if err := UnassignLabel(context.Background(), claim.ID, "Photos"); err != nil {
		t.Fatalf("unassign failed: %v", err)
	}

	var reloaded model.Document
	if err := repo.Db.First(&reloaded, doc.ID).Error; err != nil {
		t.Fatalf("document should survive unassign: %v", err)
	}
	if reloaded.IsSelected || reloaded.SelectedLabel != nil || reloaded.AssignedLabel != "" {
		t.Error("document should be fully detached")
	}

	// Unassigning an empty label is a no-op, not an error.
	if err := UnassignLabel(context.Background(), claim.ID, "Photos"); err != nil {
		t.Errorf("repeat unassign failed: %v", err)
	}
}

// TestCustomLabels adds and removes claim-specific labels.
func TestCustomLabels(t *testing.T) {
	cleanTables(t)
	operator := createTestOperator(t, "led_labels")
	pt := createTestPolicyType(t, "Auto-LedLabels", "Police Report")
	claim := createTestClaim(t, operator.ID, pt.ID)

	label, err := AddCustomLabel(claim.ID, "Witness Statement")
	if err != nil {
		t.Fatalf("AddCustomLabel failed: %v", err)
	}
	if label.SortOrder != 1 {
		t.Errorf("sort order = %d, want 1", label.SortOrder)
	}

	if _, err := AddCustomLabel(claim.ID, "Witness Statement"); !errors.Is(err, ErrLabelExists) {
		t.Errorf("duplicate custom label err = %v, want ErrLabelExists", err)
	}
	if _, err := AddCustomLabel(claim.ID, "Police Report"); !errors.Is(err, ErrLabelExists) {
		t.Errorf("required label clash err = %v, want ErrLabelExists", err)
	}

	doc := createTestDocument(t, claim.ID, "statement.pdf")
	if err := AssignDocument(context.Background(), claim.ID, "Witness Statement", doc.ID); err != nil {
		t.Fatalf("assign to custom label failed: %v", err)
	}

	if err := RemoveCustomLabel(context.Background(), claim.ID, "Witness Statement"); err != nil {
		t.Fatalf("RemoveCustomLabel failed: %v", err)
	}

	// The attached document is detached, not deleted.
	var reloaded model.Document
	if err := repo.Db.First(&reloaded, doc.ID).Error; err != nil {
		t.Fatalf("document should survive label removal: %v", err)
	}
	if reloaded.AssignedLabel != "" || reloaded.IsSelected {
		t.Error("document should be detached after label removal")
	}

	if err := RemoveCustomLabel(context.Background(), claim.ID, "Witness Statement"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("removing a missing label err = %v, want record not found", err)
	}
}

// TestLedgerLabels merges required and custom labels in order.
func TestLedgerLabels(t *testing.T) {
	custom := []model.ClaimLabel{
		{Label: "Witness Statement"},
		{Label: "Photos"},
	}
	labels := LedgerLabels([]string{"Police Report", "Photos"}, custom)
	want := []string{"Police Report", "Photos", "Witness Statement"}
	if len(labels) != len(want) {
		t.Fatalf("labels = %v, want %v", labels, want)
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("labels[%d] = %q, want %q", i, labels[i], want[i])
		}
	}
}

// TestBuildLedger assembles the full picture for a claim.
func TestBuildLedger(t *testing.T) {
	cleanTables(t)
	operator := createTestOperator(t, "led_build")
	pt := createTestPolicyType(t, "Auto-LedBuild", "Police Report", "Photos")
	claim := createTestClaim(t, operator.ID, pt.ID)

	report := createTestDocument(t, claim.ID, "report.pdf")
	if err := AssignDocument(context.Background(), claim.ID, "Police Report", report.ID); err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	// Batch uploads stay unassigned until reconciled.
	stray := createTestDocument(t, claim.ID, "stray.jpg")
	repo.Db.Model(stray).Update("assigned_label", model.BatchLabel)

	if _, err := IssueUploadToken(operator.ID, claim.ID, 1, "Photos"); err != nil {
		t.Fatalf("issue pending token failed: %v", err)
	}

	ledger, err := BuildLedger(claim.ID)
	if err != nil {
		t.Fatalf("BuildLedger failed: %v", err)
	}
	if ledger.ClaimNumber != claim.ClaimNumber {
		t.Errorf("claim number = %q", ledger.ClaimNumber)
	}
	if len(ledger.Entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(ledger.Entries))
	}

	byLabel := map[string]int{}
	for i, entry := range ledger.Entries {
		byLabel[entry.Label] = i
	}
	reportEntry := ledger.Entries[byLabel["Police Report"]]
	if reportEntry.Selected == nil || reportEntry.Selected.ID != report.ID {
		t.Error("Police Report entry should carry the selected document")
	}
	photosEntry := ledger.Entries[byLabel["Photos"]]
	if photosEntry.Selected != nil {
		t.Error("Photos entry should have no selection")
	}
	if len(photosEntry.Pending) != 1 {
		t.Errorf("Photos pending tokens = %d, want 1", len(photosEntry.Pending))
	}

	if len(ledger.Unassigned) != 1 || ledger.Unassigned[0].ID != stray.ID {
		t.Error("batch upload should appear under unassigned")
	}
}
