package service

import (
	"ClaimVault/model"
	"context"
	"testing"
)

// TestBuildArchiveEntries groups documents under their labels with unique
// zip paths.
func TestBuildArchiveEntries(t *testing.T) {
	cleanTables(t)
	operator := createTestOperator(t, "arch_build")
	pt := createTestPolicyType(t, "Auto-ArchBuild", "Photos")
	claim := createTestClaim(t, operator.ID, pt.ID)

	assigned := createTestDocument(t, claim.ID, "front.jpg")
	if err := AssignDocument(context.Background(), claim.ID, "Photos", assigned.ID); err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	createTestDocument(t, claim.ID, "scan.pdf")
	createTestDocument(t, claim.ID, "scan.pdf")

	entries, err := BuildArchiveEntries(claim.ID, nil)
	if err != nil {
		t.Fatalf("BuildArchiveEntries failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}

	paths := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		if _, dup := paths[entry.ZipPath]; dup {
			t.Fatalf("duplicate zip path %q", entry.ZipPath)
		}
		paths[entry.ZipPath] = struct{}{}
	}
	if _, ok := paths["Photos/front.jpg"]; !ok {
		t.Errorf("assigned document should sit under its label: %v", paths)
	}
}

// TestBuildArchiveEntriesSubset rejects document ids outside the claim.
func TestBuildArchiveEntriesSubset(t *testing.T) {
	cleanTables(t)
	operator := createTestOperator(t, "arch_subset")
	pt := createTestPolicyType(t, "Auto-ArchSubset")
	claim := createTestClaim(t, operator.ID, pt.ID)
	other := createTestClaim(t, operator.ID, pt.ID)

	mine := createTestDocument(t, claim.ID, "mine.pdf")
	foreign := createTestDocument(t, other.ID, "foreign.pdf")

	entries, err := BuildArchiveEntries(claim.ID, []uint64{mine.ID})
	if err != nil {
		t.Fatalf("subset failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}

	if _, err := BuildArchiveEntries(claim.ID, []uint64{mine.ID, foreign.ID}); err == nil {
		t.Error("foreign document id should fail the archive build")
	}
}

// TestRecordUploadAttempt writes audit rows and filters by token.
func TestRecordUploadAttempt(t *testing.T) {
	cleanTables(t)
	operator := createTestOperator(t, "audit_rec")
	pt := createTestPolicyType(t, "Auto-AuditRec")
	claim := createTestClaim(t, operator.ID, pt.ID)

	token, err := IssueUploadToken(operator.ID, claim.ID, 1, "")
	if err != nil {
		t.Fatalf("IssueUploadToken failed: %v", err)
	}

	RecordUploadAttempt(uploadLogEntry(token.Token, claim.ID, "ok.pdf", model.UploadResultAccepted))
	RecordUploadAttempt(uploadLogEntry(token.Token, claim.ID, "big.pdf", model.UploadResultOversized))
	RecordUploadAttempt(uploadLogEntry("other-token", claim.ID, "x.pdf", model.UploadResultUnauthorized))

	logs, err := ListUploadAccessLogs(0, token.Token, 10)
	if err != nil {
		t.Fatalf("ListUploadAccessLogs failed: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("token-filtered logs = %d, want 2", len(logs))
	}

	logs, err = ListUploadAccessLogs(claim.ID, "", 10)
	if err != nil {
		t.Fatalf("claim filter failed: %v", err)
	}
	if len(logs) != 3 {
		t.Fatalf("claim-filtered logs = %d, want 3", len(logs))
	}
}

func uploadLogEntry(token string, claimID uint64, fileName, result string) *model.UploadAccessLog {
	return &model.UploadAccessLog{
		Token:      token,
		ClaimID:    claimID,
		FileName:   fileName,
		Result:     result,
		RemoteAddr: "127.0.0.1",
	}
}
