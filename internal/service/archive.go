package service

import (
	"ClaimVault/internal/repo"
	"ClaimVault/model"
	"fmt"
	"strings"
)

type ArchiveEntry struct {
	ZipPath string
	Doc     *model.Document
}

func sanitizeArchiveName(name string) string {
	clean := strings.TrimSpace(name)
	clean = strings.ReplaceAll(clean, "\\", "/")
	clean = strings.ReplaceAll(clean, "/", "_")
	clean = strings.ReplaceAll(clean, "..", "_")
	if clean == "" || clean == "." {
		return "unnamed"
	}
	return clean
}

// BuildArchiveEntries collects a claim's documents for a zip download.
// Assigned documents are grouped under their label; duplicate zip paths get
// a numeric suffix so entries never overwrite each other.
func BuildArchiveEntries(claimID uint64, documentIDs []uint64) ([]ArchiveEntry, error) {
	var docs []model.Document
	query := repo.Db.Where("claim_id = ?", claimID)
	if len(documentIDs) > 0 {
		query = query.Where("id IN ?", documentIDs)
	}
	if err := query.Order("created_at ASC").Find(&docs).Error; err != nil {
		return nil, err
	}
	if len(documentIDs) > 0 && len(docs) != len(documentIDs) {
		return nil, fmt.Errorf("some documents not found for claim %d", claimID)
	}

	entries := make([]ArchiveEntry, 0, len(docs))
	used := make(map[string]int, len(docs))
	for i := range docs {
		zipPath := sanitizeArchiveName(docs[i].FileName)
		if docs[i].AssignedLabel != "" {
			zipPath = sanitizeArchiveName(docs[i].AssignedLabel) + "/" + zipPath
		}
		if n := used[zipPath]; n > 0 {
			used[zipPath] = n + 1
			zipPath = fmt.Sprintf("%s.%d", zipPath, n)
		} else {
			used[zipPath] = 1
		}
		entries = append(entries, ArchiveEntry{
			ZipPath: zipPath,
			Doc:     &docs[i],
		})
	}
	return entries, nil
}
