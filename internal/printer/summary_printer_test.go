package printer

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/geos-esm/jedi-bundle/internal/resolve"
)

func TestSummaryPrinter_Item(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		summary  Summary
		expected string
	}{
		{
			name: "aligned branches and tags",
			summary: Summary{
				Resolved: []resolve.Repository{
					{Repo: "jedicmake", URL: "https://github.com/JCSDA/jedicmake", Ref: "develop"},
					{Repo: "gsw", URL: "https://github.com/JCSDA/GSW-Fortran", Ref: "v3.07", IsTag: true},
					{Repo: "oops", URL: "https://github.com/JCSDA-internal/oops", Ref: "feature/x"},
				},
			},
			expected: "Branch develop   of jedicmake will be cloned from https://github.com/JCSDA/jedicmake\n" +
				"Tag    v3.07     of gsw       will be cloned from https://github.com/JCSDA/GSW-Fortran\n" +
				"Branch feature/x of oops      will be cloned from https://github.com/JCSDA-internal/oops\n",
		},
		{
			name: "skipped optional repositories",
			summary: Summary{
				Resolved: []resolve.Repository{{Repo: "oops", URL: "u", Ref: "develop"}},
				Skipped:  []string{"crtm", "rttov"},
			},
			expected: "Branch develop of oops will be cloned from u\n" +
				"\n" +
				"The following optional repos are not being built:\n" +
				" crtm\n" +
				" rttov\n",
		},
		{
			name:     "nothing resolved",
			summary:  Summary{Skipped: []string{"crtm"}},
			expected: "No repositories will be cloned\n\nThe following optional repos are not being built:\n crtm\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			p := &SummaryPrinter{}
			require.NoError(t, p.Item(&buf, tc.summary))
			require.Equal(t, tc.expected, buf.String())
		})
	}
}

func TestSummaryPrinter_HeaderFooter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := &SummaryPrinter{}

	p.Header(&buf, 1)
	p.Footer(&buf, 1)
	require.Empty(t, buf.String())

	p.SetHeader(func(w io.Writer, _ int) { _, _ = io.WriteString(w, "head\n") })
	p.SetFooter(func(w io.Writer, _ int) { _, _ = io.WriteString(w, "foot\n") })
	p.Header(&buf, 1)
	p.Footer(&buf, 1)
	require.Equal(t, "head\nfoot\n", buf.String())
}

func TestNewSummary(t *testing.T) {
	t.Parallel()

	outcome := resolve.Outcome{
		Resolved: []resolve.Repository{{Repo: "oops"}},
		Skipped:  []string{"crtm"},
	}
	require.Equal(t, Summary{Resolved: outcome.Resolved, Skipped: outcome.Skipped}, NewSummary(outcome))
}
