// Package perms provides centralized file and directory permission constants
// for consistent permissions across everything jedi_bundle writes.
package perms

import "os"

// File permission constants.
const (
	// RegularFile permissions for standard files (build descriptor, modules file, copied config).
	// Mode 0644: owner read/write, group read, others read.
	RegularFile os.FileMode = 0o644

	// ExecutableFile permissions for generated scripts that are run by jedi_bundle.
	// Mode 0755: owner read/write/execute, group read/execute, others read/execute.
	ExecutableFile os.FileMode = 0o755
)

// Directory permission constants.
const (
	// RegularDir permissions for source and build directories.
	// Mode 0755: owner read/write/execute, group read/execute, others read/execute.
	RegularDir os.FileMode = 0o755
)
