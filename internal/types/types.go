package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// ScanStatus is the lifecycle state of a scan as reported by the service
type ScanStatus string

const (
	// ScanStatusPending means the scan was accepted but has not started yet
	ScanStatusPending ScanStatus = "pending"
	// ScanStatusRunning means the scan is in progress
	ScanStatusRunning ScanStatus = "running"
	// ScanStatusFinished means the scan completed and its result is final
	ScanStatusFinished ScanStatus = "finished"
)

// RiskLevel summarizes the worst finding of a scan or the severity of a single vulnerability
type RiskLevel string

const (
	// RiskLevelNone means nothing of concern was found
	RiskLevelNone RiskLevel = "none"
	// RiskLevelLow is the lowest non-empty severity
	RiskLevelLow RiskLevel = "low"
	// RiskLevelMedium is a moderate severity
	RiskLevelMedium RiskLevel = "medium"
	// RiskLevelHigh is a serious severity
	RiskLevelHigh RiskLevel = "high"
	// RiskLevelCritical is the highest severity
	RiskLevelCritical RiskLevel = "critical"
)

// ScanType is the kind of scan the service performed
type ScanType string

const (
	// ScanTypePassive only observes the target without sending attack payloads
	ScanTypePassive ScanType = "passive"
	// ScanTypeActive actively probes the target
	ScanTypeActive ScanType = "active"
)

// ScanResult is one snapshot of a scan fetched from the service
type ScanResult struct {
	// ID uniquely identifies the scan
	ID uuid.UUID `json:"id"`
	// ScanInfo holds the scan metadata
	ScanInfo ScanInfo `json:"scan_info"`
	// Recon holds the reconnaissance data gathered about the target
	Recon Recon `json:"recon"`
	// Vulnerabilities lists the findings in the order reported by the service
	Vulnerabilities []Vulnerability `json:"vulnerabilities"`
}

// ScanInfo contains the metadata of a scan
type ScanInfo struct {
	// Target is the URI or host the scan was requested for
	Target string `json:"target"`
	// RedirectTarget is set once the service followed an HTTP redirect away from Target,
	// it is written as null until then
	RedirectTarget *string `json:"redirect_target"`
	// CreatedAt is when the scan was created, in UTC
	CreatedAt time.Time `json:"created_at"`
	// Status is the lifecycle state of the scan
	Status ScanStatus `json:"status"`
	// Progress is the completion percentage from 0 to 100
	Progress int `json:"progress"`
	// RiskLevel is the overall risk of the scanned target
	RiskLevel RiskLevel `json:"risk_level"`
	// Type is the kind of scan performed
	Type ScanType `json:"type"`
	// IsPrivate hides the scan from the public scan listing
	IsPrivate bool `json:"is_private"`
}

// Recon contains the reconnaissance data gathered about the target
type Recon struct {
	// IPInfo lists the addresses the target resolved to
	IPInfo []IPInfo `json:"ip_info"`
	// OpenPorts lists the ports found open on the target
	OpenPorts []OpenPort `json:"open_ports"`
	// WebTechnologies lists the technologies detected on the target website
	WebTechnologies []WebTechnology `json:"web_technologies"`
}

// IPInfo describes one address of the target
type IPInfo struct {
	IP          string `json:"ip"`
	CountryCode string `json:"country_code"`
	NetworkName string `json:"network_name"`
	ASN         string `json:"asn"`
}

// OpenPort describes one open port and the service listening on it
type OpenPort struct {
	Port     int     `json:"port"`
	Protocol string  `json:"protocol"`
	Service  string  `json:"service"`
	Product  string  `json:"product"`
	Version  *string `json:"version"`
}

// WebTechnology describes one technology detected on the target website
type WebTechnology struct {
	Name     string  `json:"name"`
	Version  *string `json:"version"`
	Category string  `json:"category"`
}

// Vulnerability is a single finding reported by the service
type Vulnerability struct {
	Title          string    `json:"title"`
	RiskLevel      RiskLevel `json:"risk_level"`
	Description    string    `json:"description,omitempty"`
	Recommendation string    `json:"recommendation,omitempty"`
	References     []string  `json:"references,omitempty"`
}

// ScanCreated is returned by the service when a scan is started
type ScanCreated struct {
	// ID identifies the new scan
	ID uuid.UUID `json:"id"`
	// HTMLResult is the URL where the scan can be followed live
	HTMLResult string `json:"html_result"`
}

// Redirect returns the redirect target, or an empty string when there is none
func (i ScanInfo) Redirect() string {
	return lo.FromPtr(i.RedirectTarget)
}

// EffectiveTarget returns the redirect target when one was discovered, otherwise the requested target
func (i ScanInfo) EffectiveTarget() string {
	if i.HasRedirect() {
		return i.Redirect()
	}

	return i.Target
}

// HasRedirect reports whether the service followed a redirect away from the requested target
func (i ScanInfo) HasRedirect() bool {
	return i.Redirect() != ""
}

// IsRunning reports whether the scan is still in progress
func (r *ScanResult) IsRunning() bool {
	return r.ScanInfo.Status == ScanStatusRunning
}

// IsFinished reports whether the scan reached its terminal state
func (r *ScanResult) IsFinished() bool {
	return r.ScanInfo.Status == ScanStatusFinished
}
