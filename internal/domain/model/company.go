//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import "strings"

// UnknownCompanyName is the placeholder substituted when a posting arrives
// without an employer name. The upstream dataset uses free-text company
// names and occasionally omits them entirely.
const UnknownCompanyName = "미상"

// Company is a deduplicated employer. Exactly one row exists per distinct
// normalized name; companies are never deleted by the ingestion pipeline.
type Company struct {
	ID   int64  `json:"id"   db:"id"`
	Name string `json:"name" db:"name"`
}

// NormalizeCompanyName trims the raw employer name and substitutes the
// unknown placeholder when nothing remains. All lookups and inserts go
// through this so the UNIQUE constraint on name sees one canonical form.
func NormalizeCompanyName(raw string) string {
	name := strings.TrimSpace(raw)
	if name == "" {
		return UnknownCompanyName
	}
	return name
}
