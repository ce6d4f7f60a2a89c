package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	"github.com/geos-esm/jedi-bundle/internal/catalog"
	"github.com/geos-esm/jedi-bundle/internal/cmd"
	cmdopts "github.com/geos-esm/jedi-bundle/internal/cmd/options"
	"github.com/geos-esm/jedi-bundle/internal/config"
	apperrors "github.com/geos-esm/jedi-bundle/internal/errors"
	"github.com/geos-esm/jedi-bundle/internal/flags"
	"github.com/geos-esm/jedi-bundle/internal/printer"
	"github.com/geos-esm/jedi-bundle/internal/probe"
	"github.com/geos-esm/jedi-bundle/internal/ui"
)

type fakeLoader struct {
	cfg *config.Config
	err error
}

func (f *fakeLoader) Load(string) (*config.Config, error) {
	return f.cfg, f.err
}

type fakeProber struct {
	repos map[string][]string
}

func (f *fakeProber) URL(org, name string) string {
	return fmt.Sprintf("https://github.com/%s/%s", org, name)
}

func (f *fakeProber) Exists(_ context.Context, org, name string) bool {
	_, ok := f.repos[org+"/"+name]
	return ok
}

func (f *fakeProber) HasRef(_ context.Context, org, name, ref string, _ bool) bool {
	for _, r := range f.repos[org+"/"+name] {
		if r == ref {
			return true
		}
	}
	return false
}

type fakeRunner struct {
	outputs map[string]string
}

func (f *fakeRunner) Output(_ context.Context, command string) (string, error) {
	return f.outputs[command], nil
}

func testCatalog() *catalog.Catalog {
	return catalog.New(fstest.MapFS{
		"bundles/build-order.yaml": {Data: []byte(`
- oops:
    default_branch: develop
- saber:
    default_branch: develop
`)},
		"bundles/oops.yaml": {Data: []byte(`
required_repos:
  - oops
optional_repos:
  - saber
`)},
		"cmake.yaml": {Data: []byte(`
header:
  - 'project( test )'
footer: []
`)},
		"platforms/lab.yaml": {Data: []byte(`
platform_name: lab
is_it_me:
  - command: hostname
    contains: lab
modules:
  default_modules: gnu
  gnu:
    - module load gcc
  intel:
    - module load intel
`)},
	}, "test")
}

func testOptions(t *testing.T, console ui.UI) []cmdopts.CmdOption {
	t.Helper()

	cfg := config.Default(t.TempDir())
	cfg.Source.Bundles = []string{"oops"}

	prober := &fakeProber{repos: map[string][]string{
		"JCSDA/oops": {"develop"},
	}}

	return []cmdopts.CmdOption{
		cmdopts.WithConfigLoader(&fakeLoader{cfg: cfg}),
		cmdopts.WithCatalog(testCatalog()),
		cmdopts.WithProberBuilder(probe.BuilderFunc(func() (probe.Prober, error) { return prober, nil })),
		cmdopts.WithUI(console),
		cmdopts.WithCommandRunner(&fakeRunner{outputs: map[string]string{"hostname": "lab-node-1"}}),
	}
}

func testBaseCmd() *cmd.BaseCmd {
	baseCmd := &cmd.BaseCmd{}
	baseCmd.SetLogger(hclog.NewNullLogger())
	return baseCmd
}

func TestResolveCmd_JSON(t *testing.T) {
	var consoleOut bytes.Buffer
	console := ui.NewConsole(cmd.ConsoleTask, ui.DefaultLevels(), &consoleOut, nil)

	c, err := NewResolveCmd(testBaseCmd(), testOptions(t, console)...)
	require.NoError(t, err)

	var out bytes.Buffer
	c.SetOut(&out)
	c.SetArgs([]string{"--format", "json", "--jobs", "2"})
	require.NoError(t, c.Execute())

	var payload struct {
		Result printer.Summary `json:"result"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &payload))
	require.Len(t, payload.Result.Resolved, 1)
	require.Equal(t, "oops", payload.Result.Resolved[0].Repo)
	require.Equal(t, "https://github.com/JCSDA/oops", payload.Result.Resolved[0].URL)
	require.Equal(t, []string{"saber"}, payload.Result.Skipped)
}

func TestResolveCmd_Text(t *testing.T) {
	console := ui.NewConsole(cmd.ConsoleTask, ui.DefaultLevels(), &bytes.Buffer{}, nil)

	c, err := NewResolveCmd(testBaseCmd(), testOptions(t, console)...)
	require.NoError(t, err)

	var out bytes.Buffer
	c.SetOut(&out)
	c.SetArgs([]string{})
	require.NoError(t, c.Execute())

	require.Contains(t, out.String(), "Branch develop of oops will be cloned from https://github.com/JCSDA/oops")
	require.Contains(t, out.String(), "The following optional repos are not being built:\n saber\n")
}

func TestResolveCmd_ConfigError(t *testing.T) {
	console := ui.NewConsole(cmd.ConsoleTask, ui.DefaultLevels(), &bytes.Buffer{}, nil)
	opts := append(
		testOptions(t, console),
		cmdopts.WithConfigLoader(&fakeLoader{err: config.ErrConfigLoadFailed}),
	)

	c, err := NewResolveCmd(testBaseCmd(), opts...)
	require.NoError(t, err)

	c.SetOut(&bytes.Buffer{})
	c.SetArgs([]string{})
	require.ErrorIs(t, c.Execute(), apperrors.ErrConfig)
}

func TestRunCmd_UnknownTask(t *testing.T) {
	console := ui.NewConsole(cmd.ConsoleTask, ui.DefaultLevels(), &bytes.Buffer{}, nil)

	c, err := NewRunCmd(testBaseCmd(), testOptions(t, console)...)
	require.NoError(t, err)

	c.SetArgs([]string{"clone", "deploy"})
	require.ErrorIs(t, c.Execute(), apperrors.ErrUnknownTask)
}

func TestConfigureCmd_PlatformFlagsTogether(t *testing.T) {
	console := ui.NewConsole(cmd.ConsoleTask, ui.DefaultLevels(), &bytes.Buffer{}, nil)

	c, err := NewConfigureCmd(testBaseCmd(), testOptions(t, console)...)
	require.NoError(t, err)

	c.SetArgs([]string{"--platform", "lab"})
	require.ErrorContains(t, c.Execute(), "must be provided together or not at all (modules, platform)")
}

func TestBundlesCmd(t *testing.T) {
	console := ui.NewConsole(cmd.ConsoleTask, ui.DefaultLevels(), &bytes.Buffer{}, nil)

	c, err := NewBundlesCmd(testBaseCmd(), testOptions(t, console)...)
	require.NoError(t, err)

	var out bytes.Buffer
	c.SetOut(&out)
	c.SetArgs([]string{})
	require.NoError(t, c.Execute())

	require.Equal(t, "oops\n  required: oops\n  optional: saber\n", out.String())
}

func TestPlatformsCmd(t *testing.T) {
	console := ui.NewConsole(cmd.ConsoleTask, ui.DefaultLevels(), &bytes.Buffer{}, nil)

	c, err := NewPlatformsCmd(testBaseCmd(), testOptions(t, console)...)
	require.NoError(t, err)

	var out bytes.Buffer
	c.SetOut(&out)
	c.SetArgs([]string{})
	require.NoError(t, c.Execute())

	require.Equal(t, "lab (modules: gnu [default], intel)\n\nThis machine is 'lab'\n", out.String())
}

func TestInitCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "build.yaml")

	prev := flags.ConfigFile
	flags.ConfigFile = path
	t.Cleanup(func() { flags.ConfigFile = prev })

	var consoleOut bytes.Buffer
	console := ui.NewConsole(cmd.ConsoleTask, ui.DefaultLevels(), &consoleOut, strings.NewReader("\n"))

	c, err := NewInitCmd(testBaseCmd(), cmdopts.WithUI(console))
	require.NoError(t, err)
	c.SetArgs([]string{})
	require.NoError(t, c.Execute())

	cfg, err := (&config.DefaultLoader{}).Load(path)
	require.NoError(t, err)
	require.Equal(t, filepath.Dir(path), cfg.Source.PathToSource)

	// A second run asks before replacing the file.
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))
	var confirmOut bytes.Buffer
	confirm := ui.NewConsole(cmd.ConsoleTask, ui.DefaultLevels(), &confirmOut, strings.NewReader("\n"))
	c, err = NewInitCmd(testBaseCmd(), cmdopts.WithUI(confirm))
	require.NoError(t, err)
	c.SetArgs([]string{})
	require.NoError(t, c.Execute())

	require.Contains(t, confirmOut.String(), "already exists and will be overwritten")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotEqual(t, "stale", string(data))
}

func TestInitCmd_KeepsFileWithoutConfirmation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "build.yaml")
	require.NoError(t, os.WriteFile(path, []byte("precious: true\n"), 0o644))

	prev := flags.ConfigFile
	flags.ConfigFile = path
	t.Cleanup(func() { flags.ConfigFile = prev })

	var consoleOut bytes.Buffer
	console := ui.NewConsole(cmd.ConsoleTask, ui.DefaultLevels(), &consoleOut, strings.NewReader(""))

	c, err := NewInitCmd(testBaseCmd(), cmdopts.WithUI(console))
	require.NoError(t, err)
	c.SetArgs([]string{})
	c.SetOut(io.Discard)
	c.SetErr(io.Discard)

	err = c.Execute()
	require.Error(t, err)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	require.Contains(t, consoleOut.String(), "already exists and will be overwritten")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "precious: true\n", string(data))
}

func TestNewRootCmd(t *testing.T) {
	root, err := NewRootCmd(&RootCmd{BaseCmd: testBaseCmd()})
	require.NoError(t, err)

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	require.ElementsMatch(
		t,
		[]string{"init", "clone", "resolve", "configure", "make", "run", "bundles", "platforms"},
		names,
	)
}
