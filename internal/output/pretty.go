package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/samber/lo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/vulnissimo/vulnissimo/internal/console"
	"github.com/vulnissimo/vulnissimo/internal/risk"
	"github.com/vulnissimo/vulnissimo/internal/types"
)

const (
	// layoutWidth is the width of rules and panel borders
	layoutWidth = 80
	// startTimeLayout formats the scan start time in the reader's local zone
	startTimeLayout = "2006-01-02 15:04:05 MST"
	// fixedProtocol is the protocol shown for every open port
	fixedProtocol = "TCP"
	// ipGroupSeparatorWidth is the width of the line between IP info groups
	ipGroupSeparatorWidth = 40
)

// painter applies a style to text; console.Plain leaves it untouched
type painter func(text string, style console.Style) string

// panel is a titled, boxed section of the pretty layout
type panel struct {
	title string
	body  bytes.Buffer
}

// newPanel creates an empty panel
func newPanel(title string) *panel {
	return &panel{title: title}
}

// field writes one label/value line
func (p *panel) field(label, value string) {
	fmt.Fprintf(&p.body, "%-16s %s\n", label, value)
}

// line writes one free-form line
func (p *panel) line(format string, args ...any) {
	fmt.Fprintf(&p.body, format+"\n", args...)
}

// table returns a column writer appending to the panel body; callers must Flush it
func (p *panel) table() *tabwriter.Writer {
	return tabwriter.NewWriter(&p.body, 0, 0, 2, ' ', 0)
}

// writeTo draws the panel border around its body
func (p *panel) writeTo(w io.Writer, paint painter) {
	head := "╭─ " + paint(p.title, console.StyleBold) + " "
	fill := layoutWidth - utf8.RuneCountInString(p.title) - 4

	fmt.Fprintln(w, head+strings.Repeat("─", max(fill, 1)))

	// lines are unbounded, a description may be arbitrarily long
	for _, line := range strings.Split(strings.TrimSuffix(p.body.String(), "\n"), "\n") {
		fmt.Fprintln(w, strings.TrimRight("│ "+line, " "))
	}

	fmt.Fprintln(w, "╰"+strings.Repeat("─", layoutWidth-1))
}

// writePretty renders the human oriented layout of result
func writePretty(w io.Writer, result *types.ScanResult, paint painter) {
	fmt.Fprintln(w, rule(result.ScanInfo.Target+" Vulnerability Scan Result", paint))
	fmt.Fprintln(w)

	scanInfoPanel(result, paint).writeTo(w, paint)
	fmt.Fprintln(w)

	reconPanel(result.Recon, paint).writeTo(w, paint)
	fmt.Fprintln(w)

	vulnerabilitiesPanel(result.Vulnerabilities, paint).writeTo(w, paint)
}

// rule centres title in a horizontal line
func rule(title string, paint painter) string {
	title = " " + title + " "
	width := utf8.RuneCountInString(title)
	left := max((layoutWidth-width)/2, 2)
	right := max(layoutWidth-width-left, 2)

	return strings.Repeat("─", left) + paint(title, console.StyleBold) + strings.Repeat("─", right)
}

// scanInfoPanel lays out the scan metadata
func scanInfoPanel(result *types.ScanResult, paint painter) *panel {
	info := result.ScanInfo
	p := newPanel("Scan Info")

	p.field("Target", info.Target+lo.Ternary(info.HasRedirect(), " (redirect)", ""))
	p.field("Scanned target", info.EffectiveTarget())
	p.field("Started at", info.CreatedAt.Local().Format(startTimeLayout))
	p.field("Status", statusLabel(info))
	p.field("Risk level", paint(riskLabel(info.RiskLevel), risk.ColorFor(info.RiskLevel)))
	p.field("Scan type", title(string(info.Type)))
	p.field("Visibility", lo.Ternary(info.IsPrivate, "Private", "Public"))
	p.field("Scan ID", result.ID.String())

	return p
}

// reconPanel lays out the IP info, open port and web technology tables
func reconPanel(recon types.Recon, paint painter) *panel {
	p := newPanel("Recon")

	p.line("%s", paint("IP info", console.StyleBold))

	if len(recon.IPInfo) == 0 {
		p.line("  No IP information found.")
	}

	for i, ip := range recon.IPInfo {
		if i > 0 {
			p.line("  %s", paint(strings.Repeat("─", ipGroupSeparatorWidth), console.StyleDim))
		}

		p.line("  %-9s %s", "Address", ip.IP)
		p.line("  %-9s %s", "Country", strings.ToUpper(ip.CountryCode))
		p.line("  %-9s %s", "Network", ip.NetworkName)
		p.line("  %-9s %s", "ASN", ip.ASN)
	}

	p.line("")
	p.line("%s", paint("Open ports", console.StyleBold))

	if len(recon.OpenPorts) == 0 {
		p.line("  No open ports found.")
	} else {
		tw := p.table()
		fmt.Fprintln(tw, "  Port\tProtocol\tService\tProduct")

		for _, port := range recon.OpenPorts {
			fmt.Fprintf(tw, "  %d\t%s\t%s\t%s\n", port.Port, fixedProtocol, port.Service, withVersion(port.Product, lo.FromPtr(port.Version)))
		}

		_ = tw.Flush()
	}

	p.line("")
	p.line("%s", paint("Web technologies", console.StyleBold))

	if len(recon.WebTechnologies) == 0 {
		p.line("  No web technologies detected.")
	} else {
		tw := p.table()
		fmt.Fprintln(tw, "  Technology\tCategory")

		for _, tech := range recon.WebTechnologies {
			fmt.Fprintf(tw, "  %s\t%s\n", withVersion(tech.Name, lo.FromPtr(tech.Version)), tech.Category)
		}

		_ = tw.Flush()
	}

	return p
}

// vulnerabilitiesPanel lists every vulnerability with its details
func vulnerabilitiesPanel(vulns []types.Vulnerability, paint painter) *panel {
	p := newPanel(fmt.Sprintf("Vulnerabilities (%d)", len(vulns)))

	if len(vulns) == 0 {
		p.line("No vulnerabilities found.")
	}

	for i, v := range vulns {
		if i > 0 {
			p.line("")
		}

		level := paint("["+strings.ToUpper(riskLabel(v.RiskLevel))+"]", risk.ColorFor(v.RiskLevel))
		p.line("%s %s", level, v.Title)

		if v.Description != "" {
			p.line("    %s", v.Description)
		}

		if v.Recommendation != "" {
			p.line("    Recommendation: %s", v.Recommendation)
		}

		if len(v.References) > 0 {
			p.line("    References:")

			for _, ref := range v.References {
				p.line("      - %s", ref)
			}
		}
	}

	return p
}

// statusLabel capitalizes the status and appends the progress of a running scan
func statusLabel(info types.ScanInfo) string {
	label := title(string(info.Status))
	if info.Status == types.ScanStatusRunning {
		label += fmt.Sprintf(" (%d%%)", info.Progress)
	}

	return label
}

// riskLabel capitalizes a risk level, treating an empty level as none
func riskLabel(level types.RiskLevel) string {
	if level == "" {
		level = types.RiskLevelNone
	}

	return title(string(level))
}

// withVersion appends an optional version to a name
func withVersion(name, version string) string {
	if version == "" {
		return name
	}

	return name + " " + version
}

// title capitalizes the first letter of each word
func title(s string) string {
	return cases.Title(language.English).String(s)
}
