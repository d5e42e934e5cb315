package domain

import (
	"strings"
	"time"
)

type ReportType string

const (
	ReportTypeSpam          ReportType = "spam"
	ReportTypeScam          ReportType = "scam"
	ReportTypeTelemarketing ReportType = "telemarketing"
	ReportTypeRobocall      ReportType = "robocall"
	ReportTypeOther         ReportType = "other"
)

// ParseReportType accepts any casing ("SPAM", "Spam") and returns the
// canonical lower-case enum value.
func ParseReportType(s string) (ReportType, bool) {
	switch t := ReportType(strings.ToLower(strings.TrimSpace(s))); t {
	case ReportTypeSpam, ReportTypeScam, ReportTypeTelemarketing, ReportTypeRobocall, ReportTypeOther:
		return t, true
	}
	return "", false
}

// SpamReport is immutable once created. Reports are never deleted when the
// reporter is removed so score history stays intact.
type SpamReport struct {
	ID             string     `json:"id" gorm:"primaryKey"`
	ReporterID     string     `json:"reporter" gorm:"index"`
	ReportedNumber string     `json:"reported_number" gorm:"index;size:17"`
	ReportType     ReportType `json:"report_type"`
	Details        string     `json:"details,omitempty"`
	Severity       int        `json:"severity"` // 1..10
	Evidence       string     `json:"evidence,omitempty"`
	Verified       bool       `json:"verified" gorm:"default:false"`
	Timestamp      time.Time  `json:"timestamp"`
}

// ReportSummary is the reporter-facing view attached to a spam check.
type ReportSummary struct {
	ReporterName string     `json:"reporter_name"`
	ReportType   ReportType `json:"report_type"`
	Severity     int        `json:"severity"`
	Timestamp    time.Time  `json:"timestamp"`
}

// ReportAggregate is one ledger row as consumed by the score engine.
type ReportAggregate struct {
	Severity  int
	Timestamp time.Time
}
