// Package script writes and runs the shell scripts that drive the configure and make steps.
package script

import (
	"bytes"
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/syntax"

	"github.com/geos-esm/jedi-bundle/internal/files"
	"github.com/geos-esm/jedi-bundle/internal/perms"
)

const (
	ConfigureScriptName = "jedi_bundle_configure.sh"
	MakeScriptName      = "jedi_bundle_make.sh"
	ModulesFileName     = "modules"

	shebang = "#!/usr/bin/env bash"
)

// Configure returns the script that configures the build tree for sourceDir.
func Configure(buildType string, sourceDir string) (string, error) {
	command, err := ConfigureCommand(buildType, sourceDir)
	if err != nil {
		return "", err
	}

	return lines(
		shebang,
		"",
		"source "+ModulesFileName,
		"",
		command,
	), nil
}

// ConfigureCommand returns the ecbuild invocation run by the configure script, with sourceDir quoted for the shell.
func ConfigureCommand(buildType string, sourceDir string) (string, error) {
	src, err := quote(sourceDir)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("ecbuild --build=%s -DMPIEXEC=$MPIEXEC %s", buildType, src), nil
}

// Make returns the script that compiles the configured build tree.
// The modules file is not sourced when the caller manages the environment itself.
func Make(cores int, externalModules bool) string {
	l := []string{shebang, ""}
	if !externalModules {
		l = append(l, "source "+ModulesFileName, "")
	}
	l = append(l, fmt.Sprintf("make -j%d", cores))
	return lines(l...)
}

// Modules returns the modules file content for the given directives.
func Modules(directives []string) string {
	return lines(directives...)
}

// Format parses src as a bash script and prints it back in canonical form.
// It fails when src is not valid bash.
func Format(name string, src string) (string, error) {
	f, err := syntax.NewParser(syntax.KeepComments(true), syntax.Variant(syntax.LangBash)).
		Parse(strings.NewReader(src), name)
	if err != nil {
		return "", fmt.Errorf("invalid script '%s': %w", name, err)
	}

	var buf bytes.Buffer
	if err := syntax.NewPrinter().Print(&buf, f); err != nil {
		return "", fmt.Errorf("failed to print script '%s': %w", name, err)
	}
	return buf.String(), nil
}

// WriteExecutable validates and formats src, then replaces path with it as an executable file.
func WriteExecutable(path string, src string) error {
	formatted, err := Format(path, src)
	if err != nil {
		return err
	}
	return files.ReplaceFile(path, []byte(formatted), perms.ExecutableFile)
}

// WriteModules validates directives as shell and replaces path with them.
func WriteModules(path string, directives []string) error {
	content := Modules(directives)
	if _, err := Format(path, content); err != nil {
		return err
	}
	return files.ReplaceFile(path, []byte(content), perms.RegularFile)
}

func lines(l ...string) string {
	if len(l) == 0 {
		return ""
	}
	return strings.Join(l, "\n") + "\n"
}

// quote returns s as a single shell word.
func quote(s string) (string, error) {
	if !strings.ContainsAny(s, " \t\n'\"`$\\;&|<>()*?[]#~") {
		return s, nil
	}

	q, err := syntax.Quote(s, syntax.LangBash)
	if err != nil {
		return "", fmt.Errorf("cannot quote '%s' for the shell: %w", s, err)
	}
	return q, nil
}
