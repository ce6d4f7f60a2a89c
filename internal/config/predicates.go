package config

import (
	"fmt"
	"strings"
)

// RequireBuildOptions checks the settings needed by the configure and make steps.
func RequireBuildOptions(cfg *Config) error {
	b := cfg.Build

	if strings.TrimSpace(b.Platform) == "" {
		return fmt.Errorf("%w: build_options.platform is required", ErrConfigLoadFailed)
	}
	if strings.TrimSpace(b.Modules) == "" {
		return fmt.Errorf("%w: build_options.modules is required", ErrConfigLoadFailed)
	}
	if strings.TrimSpace(b.CMakeBuildType) == "" {
		return fmt.Errorf("%w: build_options.cmake_build_type is required", ErrConfigLoadFailed)
	}
	if strings.TrimSpace(b.PathToBuild) == "" {
		return fmt.Errorf("%w: build_options.path_to_build is required", ErrConfigLoadFailed)
	}
	if b.CoresToUseForMake < 1 {
		return fmt.Errorf(
			"%w: %w",
			ErrConfigLoadFailed,
			NewErrInvalidValue("build_options.cores_to_use_for_make", fmt.Sprint(b.CoresToUseForMake)),
		)
	}

	return nil
}
