package main

import (
	"fmt"
	"path/filepath"
)

// InitCmd writes a new .doclingrc file, adapted from cmd/chunky/init.go's
// InitCmd.
type InitCmd struct {
	Options

	Files []string `arg:"" optional:"" help:"File globs to include in config"`
	Force bool     `help:"Overwrite an existing .doclingrc"`
}

// Run executes the init command.
func (i *InitCmd) Run() error {
	projectRoot, foundConfig, err := FindProjectRoot()
	if err != nil {
		return err
	}

	if foundConfig && !i.Force {
		return fmt.Errorf("config file already exists at %s (use --force to overwrite)",
			filepath.Join(projectRoot, ConfigFileName))
	}
	if !foundConfig {
		if projectRoot, err = filepath.Abs("."); err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
	}

	i.Options.Files = i.Files
	if err := i.Options.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	if err := SaveConfig(projectRoot, &i.Options); err != nil {
		return err
	}

	fmt.Printf("Created configuration file at %s\n", filepath.Join(projectRoot, ConfigFileName))
	return nil
}
