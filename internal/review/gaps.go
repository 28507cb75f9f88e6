package review

import (
	"math"

	"github.com/phobologic/qprefix/internal/model"
)

// GapCategories are the categories a well-rounded document is expected to
// contain.
var GapCategories = []model.Category{
	model.Comment, model.Import, model.Declaration, model.Assignment, model.Logic,
	model.Loop, model.IO, model.Output, model.Exit,
}

// sparse categories are reported when under sparseShare percent of lines.
var sparse = map[model.Category]bool{
	model.IO: true, model.Loop: true, model.Exit: true, model.Output: true,
}

const sparseShare = 3.0

var suggestions = map[model.Category]string{
	model.Comment:     "no documentation: add comments or docstrings",
	model.Import:      "no imports: make dependencies explicit",
	model.Declaration: "no declarations: extract logic into functions or types",
	model.Assignment:  "no assignments: logic may be overly inline",
	model.Logic:       "no conditional logic: handle edge cases and errors",
	model.Loop:        "no loops: consider iteration for batch work",
	model.IO:          "no input or output operations",
	model.Output:      "no output or logging: add log statements for debugging",
	model.Exit:        "no explicit returns: make exits clear",
}

// Gap is a category that is absent or sparse in a document.
type Gap struct {
	Category   model.Category `json:"category" yaml:"category"`
	Symbol     model.Symbol   `json:"symbol" yaml:"symbol"`
	Count      int            `json:"count" yaml:"count"`
	Percent    float64        `json:"percent" yaml:"percent"`
	Missing    bool           `json:"missing" yaml:"missing"`
	Suggestion string         `json:"suggestion" yaml:"suggestion"`
}

// GapReport lists a document's gaps against a coverage threshold.
type GapReport struct {
	Language        string  `json:"language" yaml:"language"`
	TotalLines      int     `json:"total_lines" yaml:"total_lines"`
	ClassifiedLines int     `json:"classified_lines" yaml:"classified_lines"`
	Coverage        int     `json:"coverage" yaml:"coverage"`
	Threshold       float64 `json:"threshold" yaml:"threshold"`
	MeetsThreshold  bool    `json:"meets_threshold" yaml:"meets_threshold"`
	Gaps            []Gap   `json:"gaps" yaml:"gaps"`
}

// Gaps reports categories with no lines, and sparse categories with a
// small share of lines, in GapCategories order.
func Gaps(md *model.DocumentMetadata, threshold float64) *GapReport {
	r := &GapReport{
		Language:        md.Language,
		TotalLines:      md.TotalLines,
		ClassifiedLines: md.ClassifiedLines,
		Coverage:        md.Coverage,
		Threshold:       threshold,
		MeetsThreshold:  float64(md.Coverage) >= threshold,
	}
	for _, c := range GapCategories {
		n := md.Counts[c]
		pct := 0.0
		if md.TotalLines > 0 {
			pct = math.Round(float64(n)/float64(md.TotalLines)*1000) / 10
		}
		switch {
		case n == 0:
			r.Gaps = append(r.Gaps, Gap{Category: c, Symbol: c.Symbol(), Missing: true, Suggestion: suggestions[c]})
		case sparse[c] && pct < sparseShare:
			r.Gaps = append(r.Gaps, Gap{Category: c, Symbol: c.Symbol(), Count: n, Percent: pct, Suggestion: "few " + string(c) + " lines"})
		}
	}
	return r
}
