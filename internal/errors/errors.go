// Package errors defines domain-level errors used throughout the application.
// These errors represent failures that abort a run; callers wrap them with
// context using fmt.Errorf("%w: ...") and classify them with errors.Is.
//
// Conditions that are reported but never abort a run (an optional repository
// that could not be resolved, an unreachable organization while probing) are
// deliberately NOT represented here.
package errors

import (
	"errors"
)

var (
	// ErrConfig indicates that a required configuration file is missing or could not be parsed,
	// or that it parsed but failed validation.
	// The wrapping message always names the offending file.
	ErrConfig = errors.New("configuration error")

	// ErrUnknownRepository indicates that a bundle, or the extra repositories list,
	// references a repository which is absent from the build order.
	ErrUnknownRepository = errors.New("unknown repository")

	// ErrRequiredResolution indicates that a required repository exists in the build order,
	// but no hosting organization yields a matching branch or tag for it.
	ErrRequiredResolution = errors.New("required repository could not be resolved")

	// ErrUnknownTask indicates that a task name passed on the command line is not recognised.
	ErrUnknownTask = errors.New("unknown task")

	// ErrUnknownPlatform indicates that the requested platform is not present in the catalog,
	// or that platform discovery did not match any known platform.
	ErrUnknownPlatform = errors.New("unknown platform")

	// ErrExecutableNotFound indicates that an executable required by a step is not on the PATH.
	ErrExecutableNotFound = errors.New("executable not found")

	// ErrCommandFailed indicates that an external command (git, a generated script) exited unsuccessfully.
	ErrCommandFailed = errors.New("command failed")
)
