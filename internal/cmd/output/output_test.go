package output

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

type testRepo struct {
	Repo string `json:"repo" yaml:"repo"`
	Ref  string `json:"ref"  yaml:"ref"`
}

// fakePrinter records calls and fails on a chosen item.
type fakePrinter[T comparable] struct {
	headerCount int
	footerCount int
	items       []T
	errOnItem   T
}

func (p *fakePrinter[T]) Header(w io.Writer, count int) {
	p.headerCount = count
	_, _ = io.WriteString(w, "HEADER\n")
}

func (p *fakePrinter[T]) SetHeader(WriteFunc[T]) {}

func (p *fakePrinter[T]) Item(w io.Writer, elem T) error {
	p.items = append(p.items, elem)
	_, _ = fmt.Fprintf(w, "ITEM:%v\n", elem)
	if elem == p.errOnItem {
		return errors.New("item error")
	}
	return nil
}

func (p *fakePrinter[T]) Footer(w io.Writer, count int) {
	p.footerCount = count
	_, _ = io.WriteString(w, "FOOTER\n")
}

func (p *fakePrinter[T]) SetFooter(WriteFunc[T]) {}

func TestTextHandler(t *testing.T) {
	t.Parallel()

	t.Run("items", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		p := &fakePrinter[string]{}
		h := NewTextHandler[string](&buf, p)
		require.Equal(t, &buf, h.Writer())

		require.NoError(t, h.HandleResults("oops", "ufo"))
		require.Equal(t, "HEADER\nITEM:oops\nITEM:ufo\nFOOTER\n", buf.String())
		require.Equal(t, 2, p.headerCount)
		require.Equal(t, 2, p.footerCount)
	})

	t.Run("single", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, NewTextHandler[string](&buf, &fakePrinter[string]{}).HandleResult("oops"))
		require.Equal(t, "HEADER\nITEM:oops\nFOOTER\n", buf.String())
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		p := &fakePrinter[string]{}
		require.NoError(t, NewTextHandler[string](&buf, p).HandleResults())
		require.Equal(t, "Nothing to show\n", buf.String())
		require.Zero(t, p.headerCount)
	})

	t.Run("item error stops output", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		p := &fakePrinter[int]{errOnItem: 2}
		err := NewTextHandler[int](&buf, p).HandleResults(1, 2, 3)
		require.EqualError(t, err, "item error")
		require.Equal(t, []int{1, 2}, p.items)
		require.Zero(t, p.footerCount)
	})

	t.Run("error is returned", func(t *testing.T) {
		t.Parallel()

		err := NewTextHandler[int](nil, &fakePrinter[int]{}).HandleError(errors.New("boom"))
		require.EqualError(t, err, "boom")
	})
}

func TestJSONHandler(t *testing.T) {
	t.Parallel()

	t.Run("results", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		h := NewJSONHandler[testRepo](&buf, 2)
		require.Equal(t, &buf, h.Writer())

		require.NoError(t, h.HandleResults(testRepo{Repo: "oops", Ref: "develop"}))
		require.Equal(t, "{\n  \"results\": [\n    {\n      \"repo\": \"oops\",\n      \"ref\": \"develop\"\n    }\n  ]\n}\n", buf.String())
	})

	t.Run("result compact", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, NewJSONHandler[testRepo](&buf, 0).HandleResult(testRepo{Repo: "ufo", Ref: "v1"}))
		require.Equal(t, `{"result":{"repo":"ufo","ref":"v1"}}`+"\n", buf.String())
	})

	t.Run("error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, NewJSONHandler[testRepo](&buf, 0).HandleError(errors.New("no org")))
		require.Equal(t, `{"error":"no org"}`+"\n", buf.String())
	})
}

func TestYAMLHandler(t *testing.T) {
	t.Parallel()

	t.Run("results", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		h := NewYAMLHandler[testRepo](&buf, 2)
		require.Equal(t, &buf, h.Writer())

		require.NoError(t, h.HandleResults(testRepo{Repo: "oops", Ref: "develop"}, testRepo{Repo: "ufo", Ref: "v1"}))
		require.Equal(t, "results:\n  - repo: oops\n    ref: develop\n  - repo: ufo\n    ref: v1\n", buf.String())
	})

	t.Run("result", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, NewYAMLHandler[testRepo](&buf, 2).HandleResult(testRepo{Repo: "oops", Ref: "develop"}))
		require.Equal(t, "result:\n  repo: oops\n  ref: develop\n", buf.String())
	})

	t.Run("error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, NewYAMLHandler[testRepo](&buf, 2).HandleError(errors.New("no org")))
		require.Equal(t, "error: no org\n", buf.String())
	})
}
