// Package testutil provides shared fixtures and test doubles for package tests.
package testutil

import (
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/vulnissimo/vulnissimo/internal/types"
)

// SampleScanID is the identifier used by SampleScanResult
var SampleScanID = uuid.MustParse("3f1c2a7e-5b8d-4c6f-9a0e-1d2b3c4d5e6f")

// SampleScanResult returns a finished scan result with every field populated
func SampleScanResult() *types.ScanResult {
	return &types.ScanResult{
		ID: SampleScanID,
		ScanInfo: types.ScanInfo{
			Target:         "http://example.com",
			RedirectTarget: lo.ToPtr("https://www.example.com"),
			CreatedAt:      time.Date(2025, time.March, 14, 9, 26, 53, 0, time.UTC),
			Status:         types.ScanStatusFinished,
			Progress:       100,
			RiskLevel:      types.RiskLevelHigh,
			Type:           types.ScanTypePassive,
			IsPrivate:      true,
		},
		Recon: types.Recon{
			IPInfo: []types.IPInfo{
				{IP: "93.184.216.34", CountryCode: "us", NetworkName: "EDGECAST-NETBLK-03", ASN: "AS15133"},
				{IP: "2606:2800:220:1:248:1893:25c8:1946", CountryCode: "nl", NetworkName: "EDGECAST-V6", ASN: "AS15134"},
			},
			OpenPorts: []types.OpenPort{
				{Port: 80, Protocol: "tcp", Service: "http", Product: "nginx", Version: lo.ToPtr("1.25.3")},
				{Port: 443, Protocol: "tcp", Service: "https", Product: "ECAcc"},
			},
			WebTechnologies: []types.WebTechnology{
				{Name: "Nginx", Version: lo.ToPtr("1.25.3"), Category: "Web servers"},
				{Name: "jQuery", Category: "JavaScript libraries"},
			},
		},
		Vulnerabilities: []types.Vulnerability{
			{
				Title:          "Outdated JavaScript library",
				RiskLevel:      types.RiskLevelHigh,
				Description:    "jQuery 1.8.1 has known cross-site scripting issues.",
				Recommendation: "Upgrade jQuery to 3.5.0 or later.",
				References:     []string{"https://nvd.nist.gov/vuln/detail/CVE-2020-11022"},
			},
			{
				Title:     "Missing security header: Content-Security-Policy",
				RiskLevel: types.RiskLevelLow,
			},
		},
	}
}

// RunningScanResult returns SampleScanResult in the running state at the given progress
func RunningScanResult(progress int) *types.ScanResult {
	result := SampleScanResult()
	result.ScanInfo.Status = types.ScanStatusRunning
	result.ScanInfo.Progress = progress

	return result
}
