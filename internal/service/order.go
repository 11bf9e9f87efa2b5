package service

import "strings"

var allowedOrderBy = map[string]string{
	"created_at":   "created_at",
	"updated_at":   "updated_at",
	"file_name":    "file_name",
	"claim_number": "claim_number",
	"status":       "status",
	"size":         "size",
	"id":           "id",
}

func sanitizeOrderBy(orderBy string) string {
	key := strings.ToLower(strings.TrimSpace(orderBy))
	return allowedOrderBy[key]
}
