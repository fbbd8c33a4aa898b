//go:build mage

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main contains Mage build targets for cv-extractor developer tooling.
package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "cv-extractor"
	cmdPkg  = "./cmd/cv-extractor"

	// markitdownSource is built into the image the markitdown decoder runs.
	markitdownSource = "https://github.com/microsoft/markitdown.git"
	markitdownImage  = "markitdown:latest"
)

// projectDirs lists the working directories a local deployment expects.
var projectDirs = []string{
	"data",
	"lexicon",
}

// Init creates the local data directories and a starting lexicon file.
func Init() error {
	for _, dir := range projectDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}

	lexFile := filepath.Join("lexicon", "lexicon.yaml")
	if _, err := os.Stat(lexFile); os.IsNotExist(err) {
		src, err := os.ReadFile(filepath.Join("internal", "lexicon", "lexicon.yaml"))
		if err != nil {
			return fmt.Errorf("reading embedded lexicon: %w", err)
		}
		if err := os.WriteFile(lexFile, src, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", lexFile, err)
		}
		fmt.Println("  ", lexFile)
	}
	fmt.Println("Project directories initialized.")
	return nil
}

// Build compiles the CLI binary into bin/, stamping the git version.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	version, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil {
		version = "dev"
	}
	out := filepath.Join(binDir, binName)
	ldflags := "-X main.version=" + version
	if err := sh.RunV("go", "build", "-ldflags", ldflags, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s (%s)\n", out, version)
	return nil
}

// Test runs the unit tests with the race detector.
func Test() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Lint runs go vet over every package.
func Lint() error {
	return sh.RunV("go", "vet", "./...")
}

// Check runs Lint and Test.
func Check() {
	mg.SerialDeps(Lint, Test)
}

// Markitdown builds the container image used by decoder.backend=markitdown.
// It uses docker when available and podman otherwise.
func Markitdown() error {
	runtime := "docker"
	if _, err := sh.Output("docker", "info"); err != nil {
		runtime = "podman"
	}
	return sh.RunV(runtime, "build", "-t", markitdownImage, markitdownSource)
}

// Lexicon validates the local lexicon file created by Init.
func Lexicon() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "lexicon", "validate", filepath.Join("lexicon", "lexicon.yaml"))
}

// Stats prints project metrics: Go production/test LOC and lexicon sizes.
func Stats() error {
	prodLines, testLines, err := countGoLines(".")
	if err != nil {
		return err
	}
	entries, err := countLexiconEntries(filepath.Join("internal", "lexicon", "lexicon.yaml"))
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)
	fmt.Printf("Lexicon entries (embedded):     %d\n", entries)
	return nil
}

// countGoLines walks the tree and counts non-blank lines in production and
// test Go files, skipping hidden and underscore-prefixed directories.
func countGoLines(root string) (prod, test int, err error) {
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			name := info.Name()
			if path != root && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		n := nonBlankLines(data)
		if strings.HasSuffix(path, "_test.go") {
			test += n
		} else {
			prod += n
		}
		return nil
	})
	return prod, test, err
}

// countLexiconEntries counts YAML list items ("- word") in a lexicon file.
func countLexiconEntries(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	count := 0
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimSpace(line), []byte("- ")) {
			count++
		}
	}
	return count, nil
}

func nonBlankLines(data []byte) int {
	n := 0
	for _, line := range bytes.Split(data, []byte("\n")) {
		if len(bytes.TrimSpace(line)) > 0 {
			n++
		}
	}
	return n
}
