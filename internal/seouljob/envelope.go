// Package seouljob talks to the Seoul open-API job dataset: one HTTP GET
// per index window and XML envelope decoding into a normalized page.
package seouljob

import (
	"encoding/xml"
	"strconv"
	"strings"

	apperrors "github.com/the11job/jobs-ingest/internal/errors"
)

// Envelope mirrors the upstream XML response document. Every field is
// optional text; structural well-formedness is the only thing enforced at
// this layer. The root element name varies with the configured endpoint,
// so no XMLName is pinned.
type Envelope struct {
	ListTotalCount string `xml:"list_total_count"`
	Result         Result `xml:"RESULT"`
	Rows           []Row  `xml:"row"`
}

// Result is the upstream outcome code. The original backend reads it but
// never branches on it; it is surfaced for logging only.
type Result struct {
	Code    string `xml:"CODE"`
	Message string `xml:"MESSAGE"`
}

// Row is one raw posting record. Field names follow the upstream dataset
// columns; all values are optional free text.
type Row struct {
	RequestNo            string `xml:"JO_REQST_NO"`
	RegisterNo           string `xml:"JO_REGIST_NO"`
	CompanyName          string `xml:"CMPNY_NM"`
	BusinessSummary      string `xml:"BSNS_SUMRY_CN"`
	RecruitCode          string `xml:"RCRIT_JSSFC_CMMN_CODE_SE"`
	JobCodeName          string `xml:"JOBCODE_NM"`
	RecruitCount         string `xml:"RCRIT_NMPR_CO"`
	AcademicCode         string `xml:"ACDMCR_CMMN_CODE_SE"`
	AcademicName         string `xml:"ACDMCR_NM"`
	EmploymentTypeCode   string `xml:"EMPLYM_STLE_CMMN_CODE_SE"`
	EmploymentTypeName   string `xml:"EMPLYM_STLE_CMMN_MM"`
	WorkAddress          string `xml:"WORK_PARAR_BASS_ADRES_CN"`
	SubwayName           string `xml:"SUBWAY_NM"`
	DutyContent          string `xml:"DTY_CN"`
	CareerConditionCode  string `xml:"CAREER_CND_CMMN_CODE_SE"`
	CareerConditionName  string `xml:"CAREER_CND_NM"`
	HopeWage             string `xml:"HOPE_WAGE"`
	RetirementGrantsName string `xml:"RET_GRANTS_NM"`
	WorkTimeName         string `xml:"WORK_TIME_NM"`
	WorkTime             string `xml:"WORK_TM_NM"`
	HolidayName          string `xml:"HOLIDAY_NM"`
	WeeklyWorkHours      string `xml:"WEEK_WORK_HR"`
	InsuranceName        string `xml:"JO_FEINSR_SBSCRB_NM"`
	ReceiptClosingName   string `xml:"RCEPT_CLOS_NM"`
	ModelMethodName      string `xml:"MODEL_MTH_NM"`
	ReceiptMethodName    string `xml:"RCEPT_MTH_NM"`
	PresentPapersName    string `xml:"PRESENTN_PAPERS_NM"`
	ManagerName          string `xml:"MNGR_NM"`
	ManagerPhone         string `xml:"MNGR_PHON_NO"`
	ManagerInstitute     string `xml:"MNGR_INSTT_NM"`
	BaseAddress          string `xml:"BASS_ADRES_CN"`
	Subject              string `xml:"JO_SJ"`
	RegistrationDate     string `xml:"JO_REG_DT"`
	GuideLine            string `xml:"GUI_LN"`
}

// Page is the normalized view of one fetched window.
type Page struct {
	TotalCount int
	Records    []Row
}

// Parse decodes a raw XML body into an Envelope. A decode failure is a
// parsing error, which is never retried and is fatal to the run.
func Parse(raw []byte) (*Envelope, error) {
	var env Envelope
	if err := xml.Unmarshal(raw, &env); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeParsing, "decode job info envelope")
	}
	return &env, nil
}

// Page flattens the envelope into the orchestrator's view. Nil and empty
// record lists are both "no records this page".
func (e *Envelope) Page() Page {
	total, _ := e.TotalCount()
	return Page{TotalCount: total, Records: e.Rows}
}

// TotalCount parses list_total_count. A blank or non-numeric value reports
// ok=false and a zero total; the caller logs it, it is not fatal.
func (e *Envelope) TotalCount() (int, bool) {
	raw := strings.TrimSpace(e.ListTotalCount)
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
