package classify

import (
	"github.com/phobologic/qprefix/internal/batch"
	"github.com/phobologic/qprefix/internal/lang"
	"github.com/phobologic/qprefix/internal/model"
)

// Parallel classifies documents with the batch kernel: fixed-width line
// slots, one unit of work per line, atomic packing and histogram.
type Parallel struct {
	Workers       int
	MaxLineLength int
}

// Name implements Backend.
func (*Parallel) Name() string { return BackendParallel }

// Line implements Backend.
func (*Parallel) Line(n int, text string, l *lang.Language) model.LineClassification {
	return batch.NewKernel(l).Classify(n, []byte(text))
}

// Lines implements Backend.
func (p *Parallel) Lines(lines []string, l *lang.Language) []model.LineClassification {
	k := batch.NewKernel(l)
	return k.Classifications(k.Run(batch.Segment(lines, p.MaxLineLength), p.Workers))
}

// Pack runs the kernel and returns the packed result.
func (p *Parallel) Pack(lines []string, l *lang.Language) *batch.Result {
	return batch.NewKernel(l).Run(batch.Segment(lines, p.MaxLineLength), p.Workers)
}
