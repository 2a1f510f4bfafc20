// Package ingest drives the job-posting ingestion pipeline: record
// mapping, pagination orchestration, and run summaries.
package ingest

import (
	"strconv"
	"strings"
	"time"

	"github.com/the11job/jobs-ingest/internal/domain/model"
	"github.com/the11job/jobs-ingest/internal/seouljob"
)

// dateLayout is the single date format the upstream dataset uses.
const dateLayout = "2006-01-02"

// Mapper converts raw API rows into normalized job drafts. It is pure:
// no I/O, and a malformed field value degrades to an absent value instead
// of failing the record or the page.
type Mapper struct {
	// DetailURLPrefix is prepended to the external id to derive the
	// posting's public detail page URL.
	DetailURLPrefix string
}

// ToDraft maps one raw row to a draft. Every output field defaults
// independently; it never fails.
func (m Mapper) ToDraft(row seouljob.Row) model.JobDraft {
	externalID := strings.TrimSpace(row.RequestNo)

	return model.JobDraft{
		ExternalID:           externalID,
		CompanyName:          row.CompanyName,
		Title:                row.Subject,
		WorkAddress:          row.WorkAddress,
		JobCategoryName:      row.JobCodeName,
		EducationRequirement: row.AcademicName,
		CareerRequirement:    row.CareerConditionName,
		RegistrationDate:     parseDate(row.RegistrationDate),
		ExpirationDate:       extractClosingDate(row.ReceiptClosingName),
		DetailURL:            m.detailURL(externalID),
		WeeklyWorkHours:      parseIntField(row.WeeklyWorkHours),
	}
}

// parseDate parses a yyyy-mm-dd value, returning nil on blank or
// malformed input.
func parseDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil
	}
	return &t
}

// extractClosingDate pulls a date out of the receipt-closing field, which
// sometimes embeds one in parentheses, e.g. "마감일 (2025-12-10)". Rolling
// recruitment entries like "상시모집" carry no date and map to nil.
func extractClosingDate(closingName string) *time.Time {
	open := strings.IndexByte(closingName, '(')
	if open < 0 {
		return nil
	}
	close := strings.IndexByte(closingName[open+1:], ')')
	if close < 0 {
		return nil
	}
	return parseDate(closingName[open+1 : open+1+close])
}

// parseIntField parses a numeric free-text field, returning nil on blank
// or non-numeric input.
func parseIntField(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}

// detailURL derives the posting's detail page URL. Absent when the
// external id is blank: a URL without the posting key is useless.
func (m Mapper) detailURL(externalID string) string {
	if externalID == "" {
		return ""
	}
	return m.DetailURLPrefix + externalID
}
