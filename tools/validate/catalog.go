//go:build validate_catalog
// +build validate_catalog

package main

import (
	"fmt"
	"os"

	"github.com/geos-esm/jedi-bundle/internal/buildorder"
	"github.com/geos-esm/jedi-bundle/internal/bundle"
	"github.com/geos-esm/jedi-bundle/internal/catalog"
)

// main loads every file of a catalog directory (or the embedded catalog when none is given)
// and checks that each bundle only names repositories in the build order.
func main() {
	if len(os.Args) > 2 {
		fmt.Fprintf(os.Stderr, "Usage: go run -tags=validate_catalog ./tools/validate/catalog.go [catalog-dir]\n")
		os.Exit(1)
	}

	var dir string
	if len(os.Args) == 2 {
		dir = os.Args[1]
	}

	if err := validate(dir); err != nil {
		fmt.Fprintf(os.Stderr, "Catalog is invalid: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Catalog is valid")
}

func validate(dir string) error {
	cat, err := catalog.Open(dir)
	if err != nil {
		return err
	}

	order, err := cat.LoadBuildOrder()
	if err != nil {
		return err
	}

	names, err := cat.Bundles()
	if err != nil {
		return err
	}

	for _, n := range names {
		sets, err := bundle.Aggregate([]string{n}, cat, nil)
		if err != nil {
			return err
		}
		if _, err := buildorder.Filter(order, sets.Required, sets.Optional); err != nil {
			return fmt.Errorf("bundle '%s': %w", n, err)
		}
	}

	if _, err := cat.LoadDescriptorTemplate(); err != nil {
		return err
	}

	platforms, err := cat.LoadPlatforms()
	if err != nil {
		return err
	}

	fmt.Printf("%d bundles, %d repositories, %d platforms in %s\n", len(names), len(order), len(platforms), cat.Source())
	return nil
}
