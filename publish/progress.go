package publish

import (
	"io"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// progress is a thin wrapper so the sync loop doesn't care whether a bar is shown.  The nil
// *progress is valid and does nothing.
type progress struct {
	p   *mpb.Progress
	bar *mpb.Bar
}

func newProgress(out io.Writer, total int) *progress {
	if out == nil || total < 1 {
		return nil
	}

	p := mpb.New(mpb.WithWidth(64), mpb.WithOutput(out))

	bar := p.AddBar(int64(total),
		mpb.PrependDecorators(
			// display our name with one space on the right
			decor.Name("pages:", decor.WC{C: decor.DindentRight | decor.DextraSpace}),
		),
		mpb.AppendDecorators(
			decor.CountersNoUnit("(%d/%d) "),
			decor.NewPercentage("%d"),
		),
	)

	return &progress{p: p, bar: bar}
}

func (pr *progress) increment() {
	if pr == nil {
		return
	}
	pr.bar.Increment()
}

// done flushes the bar.  A bar that never reached its total (we bailed out early) is aborted,
// otherwise Wait would block forever.
func (pr *progress) done() {
	if pr == nil {
		return
	}
	if !pr.bar.Completed() {
		pr.bar.Abort(false)
	}
	pr.p.Wait()
}
