package files

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/geos-esm/jedi-bundle/internal/perms"
)

const (
	// EnvVarXDGConfigHome is the XDG Base Directory env var name for config files.
	EnvVarXDGConfigHome = "XDG_CONFIG_HOME"
)

// AppDirName returns the name of the application directory for use in user-specific operations.
func AppDirName() string {
	return "jedi_bundle"
}

// EnsureRegularDir creates a directory (and any parents) if it doesn't exist,
// then sets its permissions to perms.RegularDir.
// It returns an error if the path exists but is not a directory.
func EnsureRegularDir(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return fmt.Errorf("directory path cannot be empty")
	}

	if err := os.MkdirAll(path, perms.RegularDir); err != nil {
		return fmt.Errorf("could not ensure directory exists for '%s': %w", path, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("could not stat directory '%s': %w", path, err)
	}

	if !info.IsDir() {
		return fmt.Errorf("path '%s' is not a directory", path)
	}

	if err := os.Chmod(path, perms.RegularDir); err != nil {
		return fmt.Errorf("could not set permissions on directory '%s': %w", path, err)
	}

	return nil
}

// Exists reports whether anything exists at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// RemoveFile removes the file at path if it exists.
// A missing file is not an error.
func RemoveFile(path string) error {
	err := os.Remove(path)
	if err == nil || os.IsNotExist(err) {
		return nil
	}

	return fmt.Errorf("failed to remove the existing file '%s': %w", path, err)
}

// ReplaceFile discards any previous contents at path and writes data with the given permissions.
// Permissions are applied explicitly so that the process umask does not affect them.
func ReplaceFile(path string, data []byte, perm os.FileMode) error {
	if err := RemoveFile(path); err != nil {
		return err
	}

	if err := os.WriteFile(path, data, perm); err != nil {
		return fmt.Errorf("failed to write '%s': %w", path, err)
	}

	if err := os.Chmod(path, perm); err != nil {
		return fmt.Errorf("failed to set permissions on '%s': %w", path, err)
	}

	return nil
}

// CopyFile copies the regular file at src to dst, replacing dst if present.
func CopyFile(src string, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open '%s': %w", src, err)
	}
	defer func() {
		_ = in.Close()
	}()

	if err := RemoveFile(dst); err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perms.RegularFile)
	if err != nil {
		return fmt.Errorf("failed to create '%s': %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("failed to copy '%s' to '%s': %w", src, dst, err)
	}

	return out.Close()
}

// UserSpecificConfigDir returns the directory that should be used to store any user-specific configuration.
// It adheres to the XDG Base Directory Specification, respecting the XDG_CONFIG_HOME environment variable.
// When XDG_CONFIG_HOME is not set, it defaults to ~/.config/jedi_bundle
// See: https://specifications.freedesktop.org/basedir-spec/latest/
func UserSpecificConfigDir() (string, error) {
	return userSpecificDir(EnvVarXDGConfigHome, ".config")
}

// userSpecificDir returns a user-specific directory following XDG Base Directory Specification.
// It respects the given environment variable, falling back to homeDir/dir/AppDirName() if not set.
func userSpecificDir(envVar string, dir string) (string, error) {
	envVar = strings.TrimSpace(envVar)
	if !strings.HasPrefix(envVar, "XDG_") {
		return "", fmt.Errorf(
			"environment variable '%s' does not follow XDG Base Directory Specification",
			envVar,
		)
	}

	if ch, ok := os.LookupEnv(envVar); ok && strings.TrimSpace(ch) != "" {
		home := strings.TrimSpace(ch)
		if filepath.IsAbs(home) {
			return filepath.Join(home, AppDirName()), nil
		}

		return "", fmt.Errorf("environment variable '%s' must be an absolute path, got: %s", envVar, home)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, dir, AppDirName()), nil
}
