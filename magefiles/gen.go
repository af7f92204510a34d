//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

type Gen mg.Namespace

// Example regenerates the accessors, builders and optional structs of the
// example package from their directives
func (Gen) Example() error {
	fmt.Println("Regenerating example package...")
	return sh.RunV("go", "generate", "./example/...")
}

// Testdata runs the command line over every testdata case that carries
// directives, writing the output to a scratch directory
func (Gen) Testdata() error {
	fmt.Println("Generating testdata cases...")
	tmp, err := os.MkdirTemp("", "faststruct")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmp)

	for _, dir := range []string{"basic", "builder", "except", "generics", "optional", "embedded"} {
		out := filepath.Join(tmp, dir+"_faststruct.go")
		if err := sh.RunV("go", "run", ".", "-v", "-o", out, filepath.Join("testdata", dir)); err != nil {
			return fmt.Errorf("testdata/%s: %w", dir, err)
		}
	}
	return nil
}

// Verify regenerates examples and checks if files changed
func (Gen) Verify() error {
	fmt.Println("Verifying generated files are up to date...")
	mg.Deps(Gen.Example)

	// Check if git shows any changes
	out, err := sh.Output("git", "status", "--porcelain", "example/")
	if err != nil {
		return err
	}

	if out != "" {
		return fmt.Errorf("generated files are out of date, run 'mage gen:example'")
	}

	fmt.Println("Generated files are up to date!")
	return nil
}
