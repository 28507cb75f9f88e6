package classify

import (
	"math"
	"strings"

	"github.com/minio/highwayhash"
	"github.com/rs/zerolog"

	"github.com/phobologic/qprefix/internal/lang"
	"github.com/phobologic/qprefix/internal/model"
)

var fingerprintKey = []byte("qprefix-fingerprint-key-32-bytes")

// Fingerprint returns a stable 64-bit hash of source.
func Fingerprint(source []byte) uint64 {
	return highwayhash.Sum64(source, fingerprintKey)
}

// SplitLines splits source on '\n', trimming one trailing '\r' per line.
// A final newline does not start another line and an empty source has no
// lines.
func SplitLines(source string) []string {
	if source == "" {
		return nil
	}
	source = strings.TrimSuffix(source, "\n")
	lines := strings.Split(source, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// Analyzer turns whole documents into DocumentMetadata.
type Analyzer struct {
	backend Backend
	log     zerolog.Logger
}

// NewAnalyzer creates an analyzer classifying with backend.
func NewAnalyzer(backend Backend, log zerolog.Logger) *Analyzer {
	return &Analyzer{
		backend: backend,
		log:     log.With().Str("component", "analyzer").Str("backend", backend.Name()).Logger(),
	}
}

// Backend returns the analyzer's backend.
func (a *Analyzer) Backend() Backend {
	return a.backend
}

// Analyze detects the language of source once, classifies every line and
// tallies the result. path and hint only steer detection.
func (a *Analyzer) Analyze(path, source, hint string) *model.DocumentMetadata {
	l := lang.DetectFile(path, source, hint)
	lines := SplitLines(source)
	md := Summarize(a.backend.Lines(lines, l))
	md.Path = path
	md.Language = l.Name
	md.Backend = a.backend.Name()
	md.Fingerprint = Fingerprint([]byte(source))

	a.log.Debug().
		Str("path", path).
		Str("language", l.Name).
		Int("lines", md.TotalLines).
		Int("coverage", md.Coverage).
		Msg("analyzed document")
	return md
}

// Summarize builds metadata from per-line classifications: one count per
// category, the number of non-default lines and the rounded coverage.
func Summarize(lines []model.LineClassification) *model.DocumentMetadata {
	md := &model.DocumentMetadata{
		TotalLines: len(lines),
		Counts:     make(map[model.Category]int, len(model.Categories)),
		Lines:      lines,
	}
	for _, c := range model.Categories {
		md.Counts[c] = 0
	}
	for _, lc := range lines {
		md.Counts[lc.Category]++
		if lc.Category != model.Default {
			md.ClassifiedLines++
		}
	}
	md.Coverage = Coverage(md.ClassifiedLines, md.TotalLines)
	return md
}

// Coverage returns round(classified/total*100), or 0 when total is 0.
func Coverage(classified, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(classified) / float64(total) * 100))
}
