// Package toon implements TOON (Token-Oriented Object Notation) encoding.
package toon

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/phobologic/qprefix/internal/model"
)

var (
	needsQuoting = regexp.MustCompile(`[,:"\\{}\[\]]`)
	looksNumeric = regexp.MustCompile(`^-?(?:0|[1-9]\d*)(?:\.\d+)?$`)
	keywords     = map[string]struct{}{
		"true":  {},
		"false": {},
		"null":  {},
	}
)

// EncodeDocument converts one document's metadata into TOON format.
func EncodeDocument(md *model.DocumentMetadata) string {
	var parts []string

	if md.Path != "" {
		parts = append(parts, field("path", md.Path))
	}
	parts = append(parts,
		field("language", md.Language),
		field("backend", md.Backend),
		field("total_lines", strconv.Itoa(md.TotalLines)),
		field("classified_lines", strconv.Itoa(md.ClassifiedLines)),
		field("coverage", strconv.Itoa(md.Coverage)),
		field("fingerprint", strconv.FormatUint(md.Fingerprint, 16)),
	)
	parts = append(parts, formatTabular("counts", []string{"category", "symbol", "count"}, countRows(md.Counts)))

	lineRows := make([][]string, 0, len(md.Lines))
	for _, lc := range md.Lines {
		lineRows = append(lineRows, []string{
			strconv.Itoa(lc.Line),
			lc.Symbol.String(),
			string(lc.Category),
		})
	}
	parts = append(parts, formatTabular("lines", []string{"line", "symbol", "category"}, lineRows))

	return strings.Join(parts, "\n")
}

// EncodeSummary converts the metadata of many documents under root into a
// per-file table followed by category totals. Per-line detail is omitted.
func EncodeSummary(root string, docs []*model.DocumentMetadata) string {
	var parts []string
	parts = append(parts, field("root", root))

	totals := make(map[model.Category]int, len(model.Categories))
	var fileRows [][]string
	lines, classified := 0, 0
	for _, md := range docs {
		fileRows = append(fileRows, []string{
			md.Path,
			md.Language,
			strconv.Itoa(md.TotalLines),
			strconv.Itoa(md.Coverage),
		})
		for c, n := range md.Counts {
			totals[c] += n
		}
		lines += md.TotalLines
		classified += md.ClassifiedLines
	}
	parts = append(parts, field("total_lines", strconv.Itoa(lines)))
	parts = append(parts, field("classified_lines", strconv.Itoa(classified)))
	parts = append(parts, formatTabular("files", []string{"path", "language", "lines", "coverage"}, fileRows))
	parts = append(parts, formatTabular("counts", []string{"category", "symbol", "count"}, countRows(totals)))

	return strings.Join(parts, "\n")
}

// EncodeCircuit converts a circuit into TOON format.
func EncodeCircuit(c *model.Circuit) string {
	var parts []string
	parts = append(parts,
		field("qubits", strconv.Itoa(c.Qubits)),
		field("depth", strconv.Itoa(c.Depth)),
		field("width", strconv.Itoa(c.Width)),
	)

	gateRows := make([][]string, 0, len(c.Gates))
	for _, g := range c.Gates {
		target := ""
		if g.Target >= 0 {
			target = strconv.Itoa(g.Target)
		}
		gateRows = append(gateRows, []string{
			strconv.Itoa(g.Step),
			g.Gate,
			strconv.Itoa(g.Qubit),
			target,
			strconv.Itoa(g.Line),
			g.Symbol.String(),
		})
	}
	parts = append(parts, formatTabular("gates", []string{"step", "gate", "qubit", "target", "line", "symbol"}, gateRows))

	return strings.Join(parts, "\n")
}

// countRows lists counts in category order, skipping empty categories.
func countRows(counts map[model.Category]int) [][]string {
	var rows [][]string
	for _, c := range model.Categories {
		n := counts[c]
		if n == 0 {
			continue
		}
		rows = append(rows, []string{string(c), c.Symbol().String(), strconv.Itoa(n)})
	}
	return rows
}

func field(name, value string) string {
	return fmt.Sprintf("%s: %s", name, encodeValue(value))
}

func formatTabular(name string, columns []string, rows [][]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s[%d]{%s}:", name, len(rows), strings.Join(columns, ","))
	for _, row := range rows {
		encoded := make([]string, len(row))
		for i, cell := range row {
			encoded[i] = encodeValue(cell)
		}
		fmt.Fprintf(&b, "\n  %s", strings.Join(encoded, ","))
	}
	return b.String()
}

func encodeValue(value string) string {
	if value == "" {
		return `""`
	}

	if value != strings.TrimSpace(value) {
		return quote(value)
	}

	if strings.ContainsAny(value, "\n\r\t") {
		return quote(value)
	}

	if _, ok := keywords[strings.ToLower(value)]; ok {
		return quote(value)
	}

	if looksNumeric.MatchString(value) {
		return value
	}

	if needsQuoting.MatchString(value) {
		return quote(value)
	}

	if strings.HasPrefix(value, "-") {
		return quote(value)
	}

	return value
}

func quote(value string) string {
	escaped := strings.ReplaceAll(value, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	escaped = strings.ReplaceAll(escaped, "\n", `\n`)
	escaped = strings.ReplaceAll(escaped, "\r", `\r`)
	escaped = strings.ReplaceAll(escaped, "\t", `\t`)
	return `"` + escaped + `"`
}
