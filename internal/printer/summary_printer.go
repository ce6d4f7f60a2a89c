// Package printer renders resolution results as text.
package printer

import (
	"fmt"
	"io"

	"github.com/geos-esm/jedi-bundle/internal/cmd/output"
	"github.com/geos-esm/jedi-bundle/internal/resolve"
)

var _ output.Printer[Summary] = (*SummaryPrinter)(nil)

// Summary is what a run will fetch, and the optional repositories it will leave out.
type Summary struct {
	Resolved []resolve.Repository `json:"resolved"          yaml:"resolved"`
	Skipped  []string             `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// NewSummary creates a Summary from a resolution outcome.
func NewSummary(outcome resolve.Outcome) Summary {
	return Summary{
		Resolved: outcome.Resolved,
		Skipped:  outcome.Skipped,
	}
}

// SummaryPrinter writes one aligned line per resolved repository, e.g.
//
//	Branch develop of oops will be cloned from https://github.com/JCSDA/oops
type SummaryPrinter struct {
	// headerFunc is an optional custom header function.
	headerFunc output.WriteFunc[Summary]

	// footerFunc is an optional custom footer function.
	footerFunc output.WriteFunc[Summary]
}

// Header writes a custom header if one has been configured via SetHeader.
func (p *SummaryPrinter) Header(w io.Writer, count int) {
	if p.headerFunc != nil {
		p.headerFunc(w, count)
	}
}

// SetHeader configures a custom header function for the printer.
func (p *SummaryPrinter) SetHeader(fn output.WriteFunc[Summary]) {
	p.headerFunc = fn
}

// Item writes the summary lines.
func (p *SummaryPrinter) Item(w io.Writer, s Summary) error {
	if len(s.Resolved) == 0 {
		if _, err := fmt.Fprintln(w, "No repositories will be cloned"); err != nil {
			return err
		}
	}

	var refLen, repoLen int
	for _, r := range s.Resolved {
		refLen = max(refLen, len(r.Ref))
		repoLen = max(repoLen, len(r.Repo))
	}

	for _, r := range s.Resolved {
		kind := "Branch"
		if r.IsTag {
			kind = "Tag"
		}
		if _, err := fmt.Fprintf(
			w,
			"%-6s %-*s of %-*s will be cloned from %s\n",
			kind,
			refLen, r.Ref,
			repoLen, r.Repo,
			r.URL,
		); err != nil {
			return err
		}
	}

	if len(s.Skipped) == 0 {
		return nil
	}

	if _, err := fmt.Fprintln(w, "\nThe following optional repos are not being built:"); err != nil {
		return err
	}
	for _, repo := range s.Skipped {
		if _, err := fmt.Fprintf(w, " %s\n", repo); err != nil {
			return err
		}
	}

	return nil
}

// Footer writes a custom footer if one has been configured via SetFooter.
func (p *SummaryPrinter) Footer(w io.Writer, count int) {
	if p.footerFunc != nil {
		p.footerFunc(w, count)
	}
}

// SetFooter configures a custom footer function for the printer.
func (p *SummaryPrinter) SetFooter(fn output.WriteFunc[Summary]) {
	p.footerFunc = fn
}
