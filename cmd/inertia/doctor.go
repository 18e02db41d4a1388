package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/inertia-go/inertia/internal/config"
	"github.com/inertia-go/inertia/internal/errors"
	"github.com/inertia-go/inertia/pkg/ssr"
	"github.com/inertia-go/inertia/pkg/vite"
)

func doctorCmd() *cobra.Command {
	var (
		dir     string
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the project setup",
		Long: `Check that everything a running app needs is in place.

This command verifies:
  • inertia.json parses and validates
  • the Vite build manifest exists and contains the entry chunk
  • the root template exists and carries the @inertia::body directive
  • the SSR bundle, runtime, and renderer (when SSR is enabled)

With --json, findings are printed to stdout as a JSON array for CI.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(cmd.Context(), dir, jsonOut)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "Project directory to check")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print findings as JSON")

	return cmd
}

func runDoctor(ctx context.Context, dir string, jsonOut bool) error {
	root, err := config.FindProjectRoot(dir)
	if err != nil {
		return err
	}
	cfg, err := config.Load(root)
	if err != nil {
		return err
	}

	d := &doctor{quiet: jsonOut}
	if !jsonOut {
		fmt.Printf("  Checking %s\n\n", root)
	}

	d.run("inertia.json", func() (string, error) {
		return "", cfg.Validate()
	})
	d.run("build manifest", func() (string, error) {
		return checkManifest(cfg)
	})
	d.run("root template", func() (string, error) {
		return "", checkTemplate(cfg)
	})

	if cfg.SSR.Enabled {
		d.run("ssr bundle", func() (string, error) {
			return "", checkSSRBundle(cfg)
		})
		d.run("ssr runtime", func() (string, error) {
			return checkSSRRuntime(cfg)
		})
		d.runWarn("ssr renderer", func() (string, error) {
			return cfg.SSR.URL, checkRenderer(ctx, cfg)
		})
	} else if !jsonOut {
		info("ssr disabled, skipping renderer checks")
	}

	return d.finish()
}

// doctor collects findings while checks run.
type doctor struct {
	quiet    bool
	failures []*errors.InertiaError
	warnings []*errors.InertiaError
}

// run performs one check. note, when non-empty, is appended to the
// success line.
func (d *doctor) run(label string, fn func() (string, error)) {
	note, err := fn()
	if err != nil {
		d.failures = append(d.failures, errors.FromError(err, "E102"))
		if !d.quiet {
			errorMsg("%s", label)
		}
		return
	}
	d.ok(label, note)
}

// runWarn is run for checks whose failure should not fail the doctor.
func (d *doctor) runWarn(label string, fn func() (string, error)) {
	note, err := fn()
	if err != nil {
		d.warnings = append(d.warnings, errors.FromError(err, "E141"))
		if !d.quiet {
			warn("%s", label)
		}
		return
	}
	d.ok(label, note)
}

func (d *doctor) ok(label, note string) {
	if d.quiet {
		return
	}
	if note != "" {
		success("%s (%s)", label, note)
	} else {
		success("%s", label)
	}
}

func (d *doctor) finish() error {
	if d.quiet {
		items := make([]string, 0, len(d.failures)+len(d.warnings))
		for _, f := range d.failures {
			items = append(items, f.FormatJSON())
		}
		for _, w := range d.warnings {
			items = append(items, w.FormatJSON())
		}
		fmt.Println("[" + strings.Join(items, ",") + "]")
	} else {
		for _, f := range d.failures {
			fmt.Fprint(os.Stderr, f.Format())
		}
		for _, w := range d.warnings {
			fmt.Fprint(os.Stderr, w.Format())
		}
		fmt.Println()
	}

	switch n := len(d.failures); n {
	case 0:
		if !d.quiet {
			success("no problems found")
		}
		return nil
	case 1:
		return errors.Newf(errors.CategoryCLI, "1 problem found")
	default:
		return errors.Newf(errors.CategoryCLI, "%d problems found", n)
	}
}

func checkManifest(cfg *config.Config) (string, error) {
	path := cfg.ManifestPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.New("E120").
				WithDetail(path + " does not exist").
				WithSuggestion("Run your frontend build first (vite build)")
		}
		return "", errors.FromError(err, "E120")
	}

	m, err := vite.Parse(data)
	if err != nil {
		return "", errors.FromJSONError("E121", path, data, err)
	}

	if _, ok := m.Chunk(cfg.Entry); !ok {
		return "", errors.New("E122").
			WithDetail(fmt.Sprintf("entry %q is not a key in %s", cfg.Entry, path)).
			WithSuggestion("Check the entry field in inertia.json against your Vite config")
	}

	return fmt.Sprintf("%d chunks, version %.8s", m.Len(), m.Version()), nil
}

func checkTemplate(cfg *config.Config) error {
	path := cfg.TemplatePath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.New("E123").
				WithDetail(path + " does not exist")
		}
		return errors.FromError(err, "E123")
	}

	if !strings.Contains(string(data), vite.DirectiveBody) {
		return errors.New("E124").
			WithDetail(path + " never mentions " + vite.DirectiveBody).
			WithSuggestion("Add the directive where the page should render").
			WithExample("<body>\n  " + vite.DirectiveBody + "\n</body>")
	}
	return nil
}

func checkSSRBundle(cfg *config.Config) error {
	path := cfg.SSRBundlePath()
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return errors.New("E140").
				WithDetail(path + " does not exist").
				WithSuggestion("Build the renderer bundle (vite build --ssr)")
		}
		return errors.FromError(err, "E140")
	}
	return nil
}

func checkSSRRuntime(cfg *config.Config) (string, error) {
	path, err := exec.LookPath(cfg.SSR.Runtime)
	if err != nil {
		return "", errors.New("E142").
			WithDetail(cfg.SSR.Runtime + " is not in PATH").
			WithSuggestion("Install it, or set ssr.runtime in inertia.json")
	}
	return path, nil
}

func checkRenderer(ctx context.Context, cfg *config.Config) error {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	client := ssr.NewClient(cfg.SSR.URL, ssr.WithTimeout(2*time.Second))
	if err := client.Ping(pingCtx); err != nil {
		return errors.New("E141").
			WithDetail(cfg.SSR.URL + " did not answer: " + err.Error()).
			WithSuggestion("Start the renderer, or let your app spawn it on boot")
	}
	return nil
}
