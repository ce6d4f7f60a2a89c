package flags

import (
	"os"
	"strings"

	"github.com/spf13/pflag"
)

const (
	// Env vars
	EnvVarConfigFile = "JEDI_BUNDLE_CONFIG_FILE"
	EnvVarCatalogDir = "JEDI_BUNDLE_CATALOG_DIR"
	EnvVarLogPath    = "JEDI_BUNDLE_LOG_PATH"
	EnvVarLogLevel   = "JEDI_BUNDLE_LOG_LEVEL"

	// Defaults
	DefaultConfigFile = "build.yaml"
	DefaultCatalogDir = ""
	DefaultLogPath    = ""
	DefaultLogLevel   = "info"

	// Flag names
	FlagNameConfigFile = "config-file"
	FlagNameCatalogDir = "catalog-dir"
	FlagNameLogPath    = "log-path"
	FlagNameLogLevel   = "log-level"
)

var (
	ConfigFile string
	CatalogDir string
	LogPath    string
	LogLevel   string
)

func InitFlags(fs *pflag.FlagSet) {
	initConfigFile(fs)
	initCatalogDir(fs)
	initLogger(fs)
}

func initConfigFile(fs *pflag.FlagSet) {
	if ConfigFile == "" {
		if env := strings.TrimSpace(os.Getenv(EnvVarConfigFile)); env != "" {
			ConfigFile = env
		} else {
			ConfigFile = DefaultConfigFile
		}
	}
	fs.StringVar(&ConfigFile, FlagNameConfigFile, ConfigFile, "path to the build configuration file")
}

func initCatalogDir(fs *pflag.FlagSet) {
	if CatalogDir == "" {
		if env := strings.TrimSpace(os.Getenv(EnvVarCatalogDir)); env != "" {
			CatalogDir = env
		} else {
			CatalogDir = DefaultCatalogDir
		}
	}
	fs.StringVar(
		&CatalogDir,
		FlagNameCatalogDir,
		CatalogDir,
		"directory holding bundles, build order, cmake and platform files (defaults to the built-in catalog)",
	)
}

func initLogger(fs *pflag.FlagSet) {
	if LogPath == "" {
		if env := strings.TrimSpace(os.Getenv(EnvVarLogPath)); env != "" {
			LogPath = env
		} else {
			LogPath = DefaultLogPath
		}
	}
	fs.StringVar(&LogPath, FlagNameLogPath, LogPath, "path to generated log file")

	if LogLevel == "" {
		if env := strings.TrimSpace(os.Getenv(EnvVarLogLevel)); env != "" {
			LogLevel = strings.ToLower(env)
		} else {
			LogLevel = DefaultLogLevel
		}
	}
	fs.StringVar(&LogLevel, FlagNameLogLevel, LogLevel, "log level for jedi_bundle logs")
}
