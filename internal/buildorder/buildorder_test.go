package buildorder

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/geos-esm/jedi-bundle/internal/bundle"
	apperrors "github.com/geos-esm/jedi-bundle/internal/errors"
)

func testOrder() []Entry {
	return []Entry{
		{Repo: "jedicmake", RemoteName: "jedi-cmake", DefaultRef: "develop"},
		{Repo: "gsibec", DefaultRef: "develop"},
		{Repo: "oops", DefaultRef: "develop"},
		{Repo: "saber", DefaultRef: "develop"},
		{Repo: "crtm", DefaultRef: "v2.4.1-jedi", IsTag: true},
		{Repo: "ioda", DefaultRef: "develop"},
		{Repo: "fv3-jedi", DefaultRef: "develop", ExtraBuildText: "set(FV3_FORECAST_MODEL GEOS)"},
	}
}

func TestFilter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		order    []Entry
		required bundle.Set
		optional bundle.Set
		expected []string
	}{
		{
			name: "drops unrequested repositories and keeps order",
			order: []Entry{
				{Repo: "repo1", DefaultRef: "develop"},
				{Repo: "repo2", DefaultRef: "develop"},
				{Repo: "repo3", DefaultRef: "develop"},
			},
			required: bundle.NewSet("repo1", "repo2"),
			optional: bundle.NewSet(),
			expected: []string{"repo1", "repo2"},
		},
		{
			name:     "set insertion order does not influence output order",
			order:    testOrder(),
			required: bundle.NewSet("fv3-jedi", "oops", "jedicmake"),
			optional: bundle.NewSet("crtm"),
			expected: []string{"jedicmake", "oops", "crtm", "fv3-jedi"},
		},
		{
			name:     "repository in both sets appears once",
			order:    testOrder(),
			required: bundle.NewSet("saber", "oops"),
			optional: bundle.NewSet("saber", "ioda"),
			expected: []string{"oops", "saber", "ioda"},
		},
		{
			name:     "nothing requested",
			order:    testOrder(),
			required: bundle.NewSet(),
			optional: nil,
			expected: []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			filtered, err := Filter(tc.order, tc.required, tc.optional)
			require.NoError(t, err)
			require.Equal(t, tc.expected, Names(filtered))
		})
	}
}

func TestFilter_PreservesEntryFields(t *testing.T) {
	t.Parallel()

	filtered, err := Filter(testOrder(), bundle.NewSet("fv3-jedi", "crtm"), nil)
	require.NoError(t, err)
	require.Len(t, filtered, 2)
	require.Equal(t, Entry{Repo: "crtm", DefaultRef: "v2.4.1-jedi", IsTag: true}, filtered[0])
	require.Equal(t, "set(FV3_FORECAST_MODEL GEOS)", filtered[1].ExtraBuildText)
}

func TestFilter_Idempotent(t *testing.T) {
	t.Parallel()

	required := bundle.NewSet("fv3-jedi", "oops", "jedicmake")
	optional := bundle.NewSet("crtm", "ioda")

	once, err := Filter(testOrder(), required, optional)
	require.NoError(t, err)

	twice, err := Filter(once, required, optional)
	require.NoError(t, err)

	require.Equal(t, once, twice)
}

func TestFilter_RelativeOrderIsSubsequence(t *testing.T) {
	t.Parallel()

	order := testOrder()
	filtered, err := Filter(order, bundle.NewSet("ioda", "gsibec", "saber"), bundle.NewSet("fv3-jedi"))
	require.NoError(t, err)

	// Every retained entry must appear at a strictly increasing position of the input.
	pos := -1
	for _, e := range filtered {
		found := -1
		for i := pos + 1; i < len(order); i++ {
			if order[i].Repo == e.Repo {
				found = i
				break
			}
		}
		require.NotEqual(t, -1, found, "entry %s out of order", e.Repo)
		pos = found
	}
}

func TestFilter_UnknownRepository(t *testing.T) {
	t.Parallel()

	filtered, err := Filter(testOrder(), bundle.NewSet("oops", "zeta"), bundle.NewSet("alpha"))
	require.Error(t, err)
	require.Nil(t, filtered)
	require.True(t, errors.Is(err, apperrors.ErrUnknownRepository))
	require.Contains(t, err.Error(), "alpha, zeta")
}

func TestEntry_RemoteNameOrRepo(t *testing.T) {
	t.Parallel()

	require.Equal(t, "jedi-cmake", Entry{Repo: "jedicmake", RemoteName: "jedi-cmake"}.RemoteNameOrRepo())
	require.Equal(t, "oops", Entry{Repo: "oops"}.RemoteNameOrRepo())
	require.Equal(t, "oops", Entry{Repo: "oops", RemoteName: "  "}.RemoteNameOrRepo())
}

func TestEntry_Validate(t *testing.T) {
	t.Parallel()

	require.NoError(t, Entry{Repo: "oops", DefaultRef: "develop"}.Validate())
	require.EqualError(t, Entry{DefaultRef: "develop"}.Validate(), "repository name cannot be empty")
	require.EqualError(t, Entry{Repo: "oops"}.Validate(), "repository 'oops' has no default_branch")
}
