package service

import (
	"ClaimVault/internal/repo"
	"ClaimVault/model"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

// TestCheckUploadSize checks the ceiling boundary.
func TestCheckUploadSize(t *testing.T) {
	if err := CheckUploadSize(UploadMaxBytes()); err != nil {
		t.Errorf("exactly the limit should pass: %v", err)
	}
	if err := CheckUploadSize(UploadMaxBytes() + 1); !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("one byte over should fail with ErrFileTooLarge, got %v", err)
	}
	if err := CheckUploadSize(0); err != nil {
		t.Errorf("empty file should pass the size check: %v", err)
	}
}

// TestObjectSafeName checks path traversal is neutralized.
func TestObjectSafeName(t *testing.T) {
	cases := map[string]string{
		"report.pdf":            "report.pdf",
		"../../etc/passwd":      "passwd",
		"..\\..\\win\\path.txt": "path.txt",
		"dir/sub/file.png":      "file.png",
		"":                      "upload",
		".":                     "upload",
		"..":                    "upload",
	}
	for input, want := range cases {
		if got := objectSafeName(input); got != want {
			t.Errorf("objectSafeName(%q) = %q, want %q", input, got, want)
		}
	}
}

// TestBuildObjectNames checks storage prefixes.
func TestBuildObjectNames(t *testing.T) {
	public := BuildPublicObjectName(7, "tok-1", "report.pdf")
	if !strings.HasPrefix(public, "public-uploads/7/tok-1/") {
		t.Errorf("public object name = %q", public)
	}
	if !strings.HasSuffix(public, "-report.pdf") {
		t.Errorf("public object name should keep the file name: %q", public)
	}

	direct := BuildClaimObjectName(7, "../evil.pdf")
	if !strings.HasPrefix(direct, "claims/7/") {
		t.Errorf("direct object name = %q", direct)
	}
	if strings.Contains(direct, "..") {
		t.Errorf("direct object name must not traverse: %q", direct)
	}
}

// TestGetContentBook checks extension mapping.
func TestGetContentBook(t *testing.T) {
	if got := GetContentBook("scan.PDF"); got != "application/pdf" {
		t.Errorf("pdf content type = %q", got)
	}
	if got := GetContentBook("photo.jpeg"); got != "image/jpeg" {
		t.Errorf("jpeg content type = %q", got)
	}
	if got := GetContentBook("mystery.bin"); got != "application/octet-stream" {
		t.Errorf("unknown content type = %q", got)
	}
}

// TestSaveLinkUpload stores a file against a token end to end.
func TestSaveLinkUpload(t *testing.T) {
	cleanTables(t)
	operator := createTestOperator(t, "up_link")
	pt := createTestPolicyType(t, "Auto-UpLink", "Photos")
	claim := createTestClaim(t, operator.ID, pt.ID)

	token, err := IssueUploadToken(operator.ID, claim.ID, 1, "Photos")
	if err != nil {
		t.Fatalf("IssueUploadToken failed: %v", err)
	}

	content := []byte("link upload payload")
	doc, err := SaveLinkUpload(context.Background(), token, "photo.jpg", int64(len(content)), bytes.NewReader(content))
	if err != nil {
		t.Fatalf("SaveLinkUpload failed: %v", err)
	}
	if doc.ID == 0 {
		t.Fatal("document ID should be set")
	}
	if !doc.ViaLink {
		t.Error("link upload should be marked via_link")
	}
	if doc.UploadedBy != nil {
		t.Error("link upload should be anonymous")
	}
	if doc.AssignedLabel != "Photos" {
		t.Errorf("assigned label = %q, want Photos", doc.AssignedLabel)
	}
	if doc.IsSelected || doc.SelectedLabel != nil {
		t.Error("link upload must arrive unselected")
	}

	// The blob must be readable back from storage.
	object, info, err := OpenDocument(context.Background(), doc)
	if err != nil {
		t.Fatalf("OpenDocument failed: %v", err)
	}
	defer object.Close()
	if info.Size != int64(len(content)) {
		t.Errorf("stored size = %d, want %d", info.Size, len(content))
	}
}

// TestSaveLinkUploadOversized checks the ceiling is enforced before storage.
func TestSaveLinkUploadOversized(t *testing.T) {
	cleanTables(t)
	operator := createTestOperator(t, "up_big")
	pt := createTestPolicyType(t, "Auto-UpBig")
	claim := createTestClaim(t, operator.ID, pt.ID)

	token, err := IssueUploadToken(operator.ID, claim.ID, 1, "")
	if err != nil {
		t.Fatalf("IssueUploadToken failed: %v", err)
	}

	_, err = SaveLinkUpload(context.Background(), token, "huge.bin", UploadMaxBytes()+1, bytes.NewReader(nil))
	if !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("err = %v, want ErrFileTooLarge", err)
	}

	var count int64
	repo.Db.Model(&model.Document{}).Where("claim_id = ?", claim.ID).Count(&count)
	if count != 0 {
		t.Errorf("oversized upload must not create a document row, found %d", count)
	}
}

// TestSaveDirectUpload stores an operator upload.
func TestSaveDirectUpload(t *testing.T) {
	cleanTables(t)
	operator := createTestOperator(t, "up_direct")
	pt := createTestPolicyType(t, "Auto-UpDirect")
	claim := createTestClaim(t, operator.ID, pt.ID)

	content := []byte("direct upload payload")
	doc, err := SaveDirectUpload(context.Background(), operator.ID, claim.ID, operator.UserName,
		"estimate.pdf", int64(len(content)), bytes.NewReader(content))
	if err != nil {
		t.Fatalf("SaveDirectUpload failed: %v", err)
	}
	if doc.ViaLink {
		t.Error("direct upload should not be via_link")
	}
	if doc.UploadedBy == nil || *doc.UploadedBy != operator.ID {
		t.Error("direct upload should carry the operator id")
	}
	if doc.AssignedLabel != "" {
		t.Errorf("direct upload should arrive unassigned, got %q", doc.AssignedLabel)
	}
	if !strings.HasPrefix(doc.ObjectName, "claims/") {
		t.Errorf("object name = %q", doc.ObjectName)
	}
}
