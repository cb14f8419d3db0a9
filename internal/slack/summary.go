package slack

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/vulnissimo/vulnissimo/internal/risk"
	"github.com/vulnissimo/vulnissimo/internal/types"
)

// maxListedVulnerabilities caps the findings listed in a summary
const maxListedVulnerabilities = 5

const (
	blockHeader  = "header"
	blockSection = "section"
	blockContext = "context"
	blockDivider = "divider"

	textPlain    = "plain_text"
	textMarkdown = "mrkdwn"
)

// Message is a Slack webhook payload
type Message struct {
	// Text is the notification fallback shown by clients that cannot render blocks
	Text string `json:"text"`
	// Blocks is the Block Kit layout of the message
	Blocks []Block `json:"blocks,omitempty"`
}

// Block is a Block Kit layout block
type Block struct {
	Type     string `json:"type"`
	Text     *Text  `json:"text,omitempty"`
	Fields   []Text `json:"fields,omitempty"`
	Elements []Text `json:"elements,omitempty"`
}

// Text is a Block Kit text object
type Text struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

var riskEmoji = map[types.RiskLevel]string{
	types.RiskLevelCritical: ":rotating_light:",
	types.RiskLevelHigh:     ":red_circle:",
	types.RiskLevelMedium:   ":large_orange_circle:",
	types.RiskLevelLow:      ":large_blue_circle:",
}

// ScanSummary builds the completion notification for a scan result.
// liveURL links to the web view of the scan and may be empty.
func ScanSummary(result *types.ScanResult, liveURL string) (Message, error) {
	if result == nil {
		return Message{}, ErrNilResult
	}

	info := result.ScanInfo
	level := strings.ToUpper(string(lo.Ternary(info.RiskLevel == "", types.RiskLevelNone, info.RiskLevel)))

	msg := Message{
		Text: fmt.Sprintf("Vulnissimo scan of %s finished with risk level %s and %d vulnerabilities.",
			info.Target, level, len(result.Vulnerabilities)),
		Blocks: []Block{
			{
				Type: blockHeader,
				Text: &Text{Type: textPlain, Text: "Scan finished: " + info.EffectiveTarget()},
			},
			{
				Type: blockSection,
				Fields: []Text{
					markdown("*Target*\n" + info.Target),
					markdown(fmt.Sprintf("*Risk level*\n%s %s", lo.ValueOr(riskEmoji, info.RiskLevel, ":white_check_mark:"), level)),
					markdown(fmt.Sprintf("*Open ports*\n%d", len(result.Recon.OpenPorts))),
					markdown(fmt.Sprintf("*Vulnerabilities*\n%d", len(result.Vulnerabilities))),
				},
			},
		},
	}

	if info.HasRedirect() {
		msg.Blocks = append(msg.Blocks, Block{
			Type: blockSection,
			Text: &Text{Type: textMarkdown, Text: "Redirected to " + info.Redirect()},
		})
	}

	if len(result.Vulnerabilities) > 0 {
		msg.Blocks = append(msg.Blocks,
			Block{Type: blockDivider},
			Block{Type: blockSection, Text: &Text{Type: textMarkdown, Text: vulnerabilityList(result.Vulnerabilities)}},
		)
	}

	footer := []Text{markdown("Scan ID `" + result.ID.String() + "`")}
	if liveURL != "" {
		footer = append(footer, markdown(fmt.Sprintf("<%s|View full result>", liveURL)))
	}

	msg.Blocks = append(msg.Blocks, Block{Type: blockContext, Elements: footer})

	return msg, nil
}

// vulnerabilityList renders the most severe findings as a bullet list
func vulnerabilityList(vulns []types.Vulnerability) string {
	sorted := slices.Clone(vulns)
	slices.SortStableFunc(sorted, func(a, b types.Vulnerability) int {
		return risk.Weight(b.RiskLevel) - risk.Weight(a.RiskLevel)
	})

	lines := lo.Map(lo.Slice(sorted, 0, maxListedVulnerabilities), func(v types.Vulnerability, _ int) string {
		return fmt.Sprintf("• [%s] %s", strings.ToUpper(string(v.RiskLevel)), v.Title)
	})

	if extra := len(sorted) - maxListedVulnerabilities; extra > 0 {
		lines = append(lines, fmt.Sprintf("…and %d more", extra))
	}

	return strings.Join(lines, "\n")
}

func markdown(s string) Text {
	return Text{Type: textMarkdown, Text: s}
}
