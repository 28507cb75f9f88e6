package review

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/phobologic/qprefix/internal/classify"
	"github.com/phobologic/qprefix/internal/lang"
	"github.com/phobologic/qprefix/internal/model"
)

// Severity ranks a finding.
type Severity string

const (
	Critical Severity = "critical"
	High     Severity = "high"
	Medium   Severity = "medium"
	Low      Severity = "low"
	Info     Severity = "info"
)

// Weight is the severity's contribution to a risk score.
func (s Severity) Weight() int {
	switch s {
	case Critical:
		return 10
	case High:
		return 5
	case Medium:
		return 2
	case Low:
		return 1
	}
	return 0
}

// Rule flags lines matching Pattern, unless they also match Unless.
type Rule struct {
	Severity    Severity
	Description string
	Pattern     *regexp.Regexp
	Unless      *regexp.Regexp
}

func rule(sev Severity, pattern, desc string) Rule {
	return Rule{Severity: sev, Description: desc, Pattern: regexp.MustCompile(`(?i)` + pattern)}
}

func (r Rule) matches(line string) bool {
	return r.Pattern.MatchString(line) && (r.Unless == nil || !r.Unless.MatchString(line))
}

var pythonRules = []Rule{
	rule(High, `\bexec\s*\(`, "dynamic code execution (exec)"),
	rule(High, `\beval\s*\(`, "dynamic code evaluation (eval)"),
	rule(High, `subprocess\.\w+\(.*shell\s*=\s*True`, "shell injection risk (subprocess shell=True)"),
	rule(High, `os\.system\s*\(`, "OS command execution"),
	rule(Medium, `__import__\s*\(`, "dynamic import"),
	rule(Critical, `(password|secret|api_key|token)\s*=\s*["'][^"']+["']`, "hardcoded secret or credential"),
	rule(High, `pickle\.loads?\s*\(`, "unsafe deserialization (pickle)"),
	{
		Severity:    Medium,
		Description: "unsafe YAML load (no Loader)",
		Pattern:     regexp.MustCompile(`(?i)yaml\.load\s*\(`),
		Unless:      regexp.MustCompile(`Loader`),
	},
	rule(Low, `^\s*assert\s+`, "assert used for validation (stripped under -O)"),
	rule(Info, `#\s*(TODO|FIXME|HACK)`, "code smell marker"),
}

var javascriptRules = []Rule{
	rule(High, `\beval\s*\(`, "eval: code injection risk"),
	rule(Medium, `innerHTML\s*=`, "innerHTML: XSS risk"),
	rule(Medium, `document\.write\s*\(`, "document.write: XSS risk"),
	rule(Critical, `(password|secret|api_key|token)\s*[:=]\s*["'][^"']+["']`, "hardcoded secret"),
	rule(High, `new\s+Function\s*\(`, "dynamic function creation"),
	rule(High, `child_process`, "shell command access"),
	rule(Info, `//\s*(TODO|FIXME)`, "code smell marker"),
}

var shellRules = []Rule{
	rule(Low, `\$\{.*:-.*\}`, "unquoted variable expansion"),
	rule(Critical, `curl\s.*\|\s*(bash|sh)\b`, "pipe to shell: remote code execution"),
	rule(High, `chmod\s+777`, "world-writable permissions"),
	rule(Critical, `rm\s+-rf\s+/`, "recursive delete from root"),
	rule(High, `(password|secret|token)=`, "hardcoded credential in shell"),
}

// Rules returns the rule set for a language, python's when it has none.
func Rules(language string) []Rule {
	switch language {
	case "javascript", "typescript":
		return javascriptRules
	case "shell", "nushell":
		return shellRules
	}
	return pythonRules
}

// HasRules reports whether language has a rule set of its own.
func HasRules(language string) bool {
	switch language {
	case "python", "javascript", "typescript", "shell", "nushell":
		return true
	}
	return false
}

const maxSnippet = 120

// Finding is one rule match.
type Finding struct {
	Line        int            `json:"line" yaml:"line"`
	Symbol      model.Symbol   `json:"symbol" yaml:"symbol"`
	Category    model.Category `json:"category" yaml:"category"`
	Severity    Severity       `json:"severity" yaml:"severity"`
	Description string         `json:"description" yaml:"description"`
	Code        string         `json:"code" yaml:"code"`
}

// ScanReport collects the findings for one document.
type ScanReport struct {
	Path       string           `json:"path,omitempty" yaml:"path,omitempty"`
	Language   string           `json:"language" yaml:"language"`
	TotalLines int              `json:"total_lines" yaml:"total_lines"`
	Findings   []Finding        `json:"findings" yaml:"findings"`
	BySeverity map[Severity]int `json:"by_severity" yaml:"by_severity"`
	Risk       int              `json:"risk" yaml:"risk"`
	Clean      bool             `json:"clean" yaml:"clean"`
}

// Scan checks every line of source against the language's rules. Each
// finding carries the line's classification; a line can match several rules.
func Scan(source string, l *lang.Language, backend classify.Backend) *ScanReport {
	lines := classify.SplitLines(source)
	classes := backend.Lines(lines, l)
	rules := Rules(l.Name)

	r := &ScanReport{
		Language:   l.Name,
		TotalLines: len(lines),
		BySeverity: make(map[Severity]int),
	}
	for i, text := range lines {
		for _, ru := range rules {
			if !ru.matches(text) {
				continue
			}
			r.Findings = append(r.Findings, Finding{
				Line:        i + 1,
				Symbol:      classes[i].Symbol,
				Category:    classes[i].Category,
				Severity:    ru.Severity,
				Description: ru.Description,
				Code:        snippet(text),
			})
			r.BySeverity[ru.Severity]++
			r.Risk += ru.Severity.Weight()
		}
	}
	r.Clean = len(r.Findings) == 0
	return r
}

// TreeReport combines the scans of the files under a directory.
type TreeReport struct {
	Root     string        `json:"root" yaml:"root"`
	Scanned  int           `json:"files_scanned" yaml:"files_scanned"`
	Findings int           `json:"total_findings" yaml:"total_findings"`
	Risk     int           `json:"risk" yaml:"risk"`
	Files    []*ScanReport `json:"files" yaml:"files"`
}

// Tree keeps the reports with findings, riskiest first. Ties keep their
// input order.
func Tree(root string, reports []*ScanReport) *TreeReport {
	t := &TreeReport{Root: root, Scanned: len(reports), Files: []*ScanReport{}}
	for _, r := range reports {
		if r.Clean {
			continue
		}
		t.Findings += len(r.Findings)
		t.Risk += r.Risk
		t.Files = append(t.Files, r)
	}
	sort.SliceStable(t.Files, func(i, j int) bool {
		return t.Files[i].Risk > t.Files[j].Risk
	})
	return t
}

func snippet(line string) string {
	s := strings.TrimSpace(line)
	if utf8.RuneCountInString(s) <= maxSnippet {
		return s
	}
	return string([]rune(s)[:maxSnippet])
}
