package main

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/inertia-go/inertia/internal/config"
	"github.com/inertia-go/inertia/internal/errors"
	"github.com/inertia-go/inertia/internal/scaffold"
)

func initCmd() *cobra.Command {
	var (
		force    bool
		template string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create inertia.json and starter files",
		Long: `Write a default inertia.json to the current directory, plus the
starter files of the chosen template:

  • minimal  Root HTML document only
  • chi      Root HTML document plus a runnable chi server

Every inertia.json field is optional; anything you delete falls back
to the default written here.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(template, force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing files")
	cmd.Flags().StringVarP(&template, "template", "t", "minimal",
		"Starter template ("+strings.Join(scaffold.List(), ", ")+")")

	return cmd
}

func runInit(template string, force bool) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}

	tmpl, err := scaffold.Get(template)
	if err != nil {
		return err
	}

	if config.Exists(wd) && !force {
		return errors.Newf(errors.CategoryCLI, "inertia.json already exists (use --force to overwrite)")
	}

	cfg := config.New()
	cfg.Name = filepath.Base(wd)

	if err := tmpl.Create(wd, scaffold.Config{
		ProjectName: cfg.Name,
		Entry:       cfg.Entry,
	}, force); err != nil {
		return err
	}

	if err := cfg.SaveTo(filepath.Join(wd, config.ConfigFileName)); err != nil {
		return err
	}

	written := make([]string, 0, len(tmpl.Files)+1)
	written = append(written, config.ConfigFileName)
	for relPath := range tmpl.Files {
		written = append(written, relPath)
	}
	sort.Strings(written)
	for _, relPath := range written {
		success("wrote %s", relPath)
	}

	info("point entry and template at your app, then run 'inertia doctor'")
	return nil
}
