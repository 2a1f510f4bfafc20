//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import "time"

// JobPosting is a persisted job posting. ExternalID is the upstream
// system's posting identifier and is immutable after creation; every other
// mutable field is overwritten wholesale on update.
type JobPosting struct {
	ID                   int64      `json:"id"                    db:"id"`
	ExternalID           string     `json:"external_id"           db:"external_id"`
	CompanyID            int64      `json:"company_id"            db:"company_id"`
	Title                string     `json:"title"                 db:"title"`
	WorkAddress          string     `json:"work_address"          db:"work_address"`
	JobCategoryName      string     `json:"job_category_name"     db:"job_category_name"`
	EducationRequirement string     `json:"education_requirement" db:"education_requirement"`
	CareerRequirement    string     `json:"career_requirement"    db:"career_requirement"`
	RegistrationDate     *time.Time `json:"registration_date"     db:"registration_date"`
	ExpirationDate       *time.Time `json:"expiration_date"       db:"expiration_date"`
	DetailURL            string     `json:"detail_url"            db:"detail_url"`
}

// JobDraft is the transient, in-memory form of a posting produced by the
// record mapper. It carries everything a JobPosting needs except the
// resolved company id; the upsert engine consumes and discards it.
//
// Date fields are nil when the source text was absent or unparsable —
// a single bad field never discards the record.
type JobDraft struct {
	ExternalID           string
	CompanyName          string
	Title                string
	WorkAddress          string
	JobCategoryName      string
	EducationRequirement string
	CareerRequirement    string
	RegistrationDate     *time.Time
	ExpirationDate       *time.Time
	DetailURL            string

	// WeeklyWorkHours is parsed defensively from free text and kept for
	// diagnostics; it is not persisted.
	WeeklyWorkHours *int
}

// UpsertSummary reports the outcome of applying one batch of drafts.
type UpsertSummary struct {
	Inserted int
	Updated  int
	// Skipped counts drafts dropped for having a blank external id; the
	// store cannot key them and the rest of the batch proceeds.
	Skipped int
}
