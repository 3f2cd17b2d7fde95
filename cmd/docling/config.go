package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the project-local configuration file, adapted from
// cmd/chunky's .chunkyrc.
const ConfigFileName = ".doclingrc"

// FindProjectRoot searches for .doclingrc starting from the current
// directory and walking up the directory tree, returning the directory that
// holds it or the current directory if none is found.
func FindProjectRoot() (string, bool, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", false, fmt.Errorf("failed to get current directory: %w", err)
	}

	dir := cwd
	for {
		if _, err := os.Stat(filepath.Join(dir, ConfigFileName)); err == nil {
			return dir, true, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd, false, nil
		}
		dir = parent
	}
}

// LoadConfig reads .doclingrc from projectRoot.
func LoadConfig(projectRoot string) (*Options, error) {
	data, err := os.ReadFile(filepath.Join(projectRoot, ConfigFileName))
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var opts Options
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &opts, nil
}

// SaveConfig writes opts to .doclingrc in projectRoot.
func SaveConfig(projectRoot string, opts *Options) error {
	data, err := yaml.Marshal(opts)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}
	header := "# docling configuration file\n\n"
	data = append([]byte(header), data...)
	if err := os.WriteFile(filepath.Join(projectRoot, ConfigFileName), data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// MergeOptions merges config into cli, with cli values taking precedence
// whenever they differ from their Kong-declared default. Slice-valued
// fields are concatenated rather than overridden, same as
// cmd/chunky/config.go's MergeOptions.
func MergeOptions(config, cli *Options) *Options {
	result := &Options{}

	result.Files = append(result.Files, config.Files...)
	result.Files = append(result.Files, cli.Files...)

	if cli.OutDir != "" && cli.OutDir != "." {
		result.OutDir = cli.OutDir
	} else if config.OutDir != "" {
		result.OutDir = config.OutDir
	} else {
		result.OutDir = "."
	}

	if cli.Format != "" && cli.Format != "json" {
		result.Format = cli.Format
	} else if config.Format != "" {
		result.Format = config.Format
	} else {
		result.Format = "json"
	}

	if cli.Chunker != "" && cli.Chunker != "hybrid" {
		result.Chunker = cli.Chunker
	} else if config.Chunker != "" {
		result.Chunker = config.Chunker
	} else {
		result.Chunker = "hybrid"
	}

	if cli.Budget != 0 && cli.Budget != 512 {
		result.Budget = cli.Budget
	} else if config.Budget != 0 {
		result.Budget = config.Budget
	} else {
		result.Budget = 512
	}

	if cli.Tokenizer != "" && cli.Tokenizer != "o200k_base" {
		result.Tokenizer = cli.Tokenizer
	} else if config.Tokenizer != "" {
		result.Tokenizer = config.Tokenizer
	} else {
		result.Tokenizer = "o200k_base"
	}

	result.Strict = cli.Strict || config.Strict
	result.NoMerge = cli.NoMerge || config.NoMerge
	result.DryRun = cli.DryRun || config.DryRun
	result.Verbose = cli.Verbose || config.Verbose

	return result
}
