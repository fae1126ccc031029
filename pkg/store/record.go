package store

import (
	"fmt"

	"github.com/vit0-9/link_redirector/models"
)

// Column names differ between deployments; the first non-empty value wins.
var (
	slugColumns   = []string{"slug", "short"}
	targetColumns = []string{"target_url", "original_link", "original_url"}
)

// recordFromRow normalizes one store row into a RedirectRecord.
func recordFromRow(row map[string]interface{}) *models.RedirectRecord {
	return &models.RedirectRecord{
		Slug:      firstString(row, slugColumns),
		TargetURL: firstString(row, targetColumns),
	}
}

func firstString(row map[string]interface{}, columns []string) string {
	for _, column := range columns {
		value, ok := row[column]
		if !ok || value == nil {
			continue
		}
		var s string
		switch v := value.(type) {
		case string:
			s = v
		case []byte:
			s = string(v)
		default:
			s = fmt.Sprint(v)
		}
		if s != "" {
			return s
		}
	}
	return ""
}
