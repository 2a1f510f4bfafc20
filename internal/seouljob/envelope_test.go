package seouljob

import (
	"testing"

	apperrors "github.com/the11job/jobs-ingest/internal/errors"
)

const sampleEnvelope = `<?xml version="1.0" encoding="UTF-8"?>
<GetJobInfo>
  <list_total_count>1500</list_total_count>
  <RESULT>
    <CODE>INFO-000</CODE>
    <MESSAGE>정상 처리되었습니다</MESSAGE>
  </RESULT>
  <row>
    <JO_REQST_NO>R2025-0001</JO_REQST_NO>
    <CMPNY_NM>테스트기업</CMPNY_NM>
    <JO_SJ>백엔드 개발자 모집</JO_SJ>
    <WORK_PARAR_BASS_ADRES_CN>서울특별시 중구</WORK_PARAR_BASS_ADRES_CN>
    <JOBCODE_NM>정보통신</JOBCODE_NM>
    <ACDMCR_NM>학력무관</ACDMCR_NM>
    <CAREER_CND_NM>경력무관</CAREER_CND_NM>
    <JO_REG_DT>2025-08-01</JO_REG_DT>
    <RCEPT_CLOS_NM>마감일 (2025-12-10)</RCEPT_CLOS_NM>
    <WEEK_WORK_HR>40</WEEK_WORK_HR>
  </row>
  <row>
    <JO_REQST_NO>R2025-0002</JO_REQST_NO>
  </row>
</GetJobInfo>`

func TestParseEnvelope(t *testing.T) {
	env, err := Parse([]byte(sampleEnvelope))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if env.Result.Code != "INFO-000" {
		t.Errorf("result code: got %q", env.Result.Code)
	}
	if len(env.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(env.Rows))
	}

	first := env.Rows[0]
	if first.RequestNo != "R2025-0001" {
		t.Errorf("request no: got %q", first.RequestNo)
	}
	if first.CompanyName != "테스트기업" {
		t.Errorf("company name: got %q", first.CompanyName)
	}
	if first.ReceiptClosingName != "마감일 (2025-12-10)" {
		t.Errorf("receipt closing: got %q", first.ReceiptClosingName)
	}

	// A sparse row decodes with every missing field left blank.
	second := env.Rows[1]
	if second.RequestNo != "R2025-0002" || second.CompanyName != "" {
		t.Errorf("sparse row decoded unexpectedly: %+v", second)
	}
}

func TestParseMalformedEnvelope(t *testing.T) {
	_, err := Parse([]byte(`<GetJobInfo><row></GetJobInfo>`))
	if err == nil {
		t.Fatal("expected error for malformed XML")
	}
	if !apperrors.IsParsing(err) {
		t.Errorf("expected parsing error, got %v", err)
	}
}

func TestPageNormalization(t *testing.T) {
	env, err := Parse([]byte(sampleEnvelope))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	page := env.Page()
	if page.TotalCount != 1500 {
		t.Errorf("total count: got %d, want 1500", page.TotalCount)
	}
	if len(page.Records) != 2 {
		t.Errorf("records: got %d, want 2", len(page.Records))
	}
}

func TestTotalCount(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		total int
		ok    bool
	}{
		{"numeric", "1500", 1500, true},
		{"numeric with whitespace", "  42 ", 42, true},
		{"blank", "", 0, false},
		{"non-numeric", "abc", 0, false},
		{"negative", "-1", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := Envelope{ListTotalCount: tt.raw}
			total, ok := env.TotalCount()
			if total != tt.total || ok != tt.ok {
				t.Errorf("TotalCount(%q) = (%d, %v), want (%d, %v)", tt.raw, total, ok, tt.total, tt.ok)
			}
		})
	}
}

func TestPageWithNoRows(t *testing.T) {
	env, err := Parse([]byte(`<GetJobInfo><list_total_count>0</list_total_count></GetJobInfo>`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	page := env.Page()
	if page.TotalCount != 0 {
		t.Errorf("total count: got %d, want 0", page.TotalCount)
	}
	if len(page.Records) != 0 {
		t.Errorf("expected no records, got %d", len(page.Records))
	}
}
