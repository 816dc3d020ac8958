package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/iisrank/pkg/errors"
	"github.com/matzehuels/iisrank/pkg/pipeline"
)

func newTestCLI() (*CLI, *bytes.Buffer) {
	var out bytes.Buffer
	c := New(&bytes.Buffer{}, log.InfoLevel)
	c.SetOutput(&out)
	return c, &out
}

func execute(t *testing.T, c *CLI, args ...string) error {
	t.Helper()
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	return root.ExecuteContext(context.Background())
}

func TestRootWritesFigure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "figure.svg")
	c, out := newTestCLI()

	if err := execute(t, c, "--simulations", "5", "-o", path); err != nil {
		t.Fatalf("execute: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("<svg")) {
		t.Errorf("output is not SVG: %.40q", data)
	}
	if !strings.HasSuffix(out.String(), "Updated Figure S2 saved as "+path+"\n") {
		t.Errorf("missing confirmation line in %q", out.String())
	}
	for _, label := range []string{"Erdős-Renyi", "Scale-Free"} {
		if !strings.Contains(out.String(), label) {
			t.Errorf("summary missing %q", label)
		}
	}
}

func TestRunSubcommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.svg")
	c, out := newTestCLI()

	err := execute(t, c, "run", "--simulations", "3", "--key-node", "1", "--key-node", "45", "-o", path)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("figure not written: %v", err)
	}
	if !strings.Contains(out.String(), "Updated Figure S2 saved as") {
		t.Errorf("missing confirmation in %q", out.String())
	}
}

func TestRootRejectsInvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"weight above one", []string{"--overlap-weight", "1.5"}},
		{"one node", []string{"--nodes", "1"}},
		{"key node out of range", []string{"--key-node", "50"}},
		{"inverted density", []string{"--density-min", "0.5", "--density-max", "0.1"}},
		{"unknown format", []string{"--format", "gif"}},
		{"negative simulations", []string{"--simulations", "-2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, out := newTestCLI()
			err := execute(t, c, tt.args...)
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("err = %v, want INVALID_CONFIG", err)
			}
			if strings.Contains(out.String(), "Updated Figure S2") {
				t.Error("confirmation printed on failure")
			}
		})
	}
}

func TestRootUnwritableOutput(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, _ := newTestCLI()
	err := execute(t, c, "--simulations", "2", "-o", filepath.Join(blocker, "fig.svg"))
	if !errors.Is(err, errors.ErrCodeIO) {
		t.Errorf("err = %v, want IO_ERROR", err)
	}
}

func TestResolveOptions(t *testing.T) {
	dir := t.TempDir()
	config := filepath.Join(dir, "run.toml")
	content := "simulations = 50\nnodes = 30\nseed = 9\n"
	if err := os.WriteFile(config, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	flagOpts := pipeline.DefaultOptions()
	flagOpts.Simulations = 4
	flagOpts.Output = "plots/out.png"

	changed := func(names ...string) func(string) bool {
		return func(name string) bool { return slices.Contains(names, name) }
	}

	t.Run("defaults", func(t *testing.T) {
		opts, err := resolveOptions(changed(), flagOpts, "")
		if err != nil {
			t.Fatal(err)
		}
		if opts.Simulations != 1000 || opts.Output != "figure_s2.pdf" || opts.Format != "pdf" {
			t.Errorf("unexpected options %+v", opts)
		}
	})

	t.Run("config over defaults", func(t *testing.T) {
		opts, err := resolveOptions(changed(), flagOpts, config)
		if err != nil {
			t.Fatal(err)
		}
		if opts.Simulations != 50 || opts.Nodes != 30 || opts.Seed != 9 {
			t.Errorf("config not applied: %+v", opts)
		}
	})

	t.Run("flags over config", func(t *testing.T) {
		opts, err := resolveOptions(changed("simulations", "output"), flagOpts, config)
		if err != nil {
			t.Fatal(err)
		}
		if opts.Simulations != 4 {
			t.Errorf("Simulations = %d, want 4", opts.Simulations)
		}
		if opts.Nodes != 30 {
			t.Errorf("Nodes = %d, want 30 from config", opts.Nodes)
		}
		if opts.Output != "plots/out.png" || opts.Format != "png" {
			t.Errorf("output=%q format=%q", opts.Output, opts.Format)
		}
	})

	t.Run("format implies output", func(t *testing.T) {
		fo := pipeline.DefaultOptions()
		fo.Format = "svg"
		opts, err := resolveOptions(changed("format"), fo, "")
		if err != nil {
			t.Fatal(err)
		}
		if opts.Output != "figure_s2.svg" {
			t.Errorf("Output = %q", opts.Output)
		}
	})

	t.Run("missing config", func(t *testing.T) {
		_, err := resolveOptions(changed(), flagOpts, filepath.Join(dir, "absent.yaml"))
		if !errors.Is(err, errors.ErrCodeIO) {
			t.Errorf("err = %v, want IO_ERROR", err)
		}
	})
}

func TestSampleCommand(t *testing.T) {
	for _, model := range []string{"er", "sf"} {
		t.Run(model, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "sample.svg")
			c, out := newTestCLI()
			if err := execute(t, c, "sample", "--model", model, "--nodes", "20", "--key-node", "3", "-o", path); err != nil {
				t.Fatalf("execute: %v", err)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Contains(data, []byte("<svg")) {
				t.Error("sample output is not SVG")
			}
			if !strings.Contains(out.String(), path) {
				t.Errorf("output path not reported in %q", out.String())
			}
		})
	}
}

func TestSampleCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown model", []string{"sample", "--model", "ws"}},
		{"key node out of range", []string{"sample", "--nodes", "10", "--key-node", "12"}},
		{"bad format", []string{"sample", "--format", "gif"}},
		{"bad density", []string{"sample", "--density", "1.5"}},
		{"NaN density", []string{"sample", "--density", "NaN"}},
		{"NaN weight", []string{"sample", "--overlap-weight", "NaN"}},
		{"single node", []string{"sample", "--nodes", "1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCLI()
			args := append(tt.args, "-o", filepath.Join(t.TempDir(), "s.svg"))
			if err := execute(t, c, args...); !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("err = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestSampleRejectsNodeCountFirst(t *testing.T) {
	c, _ := newTestCLI()
	err := execute(t, c, "sample", "--nodes", "1", "-o", filepath.Join(t.TempDir(), "s.svg"))
	if err == nil || !strings.Contains(err.Error(), "node count must be >= 2") {
		t.Errorf("err = %v, want node count error", err)
	}
}

func TestRootDefaultPDFNeedsConverter(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	path := filepath.Join(t.TempDir(), "figure_s2.pdf")
	c, out := newTestCLI()

	err := execute(t, c, "--simulations", "2", "-o", path)
	if !errors.Is(err, errors.ErrCodeIO) {
		t.Fatalf("err = %v, want IO_ERROR", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Errorf("figure written despite failed conversion: %v", statErr)
	}
	if strings.Contains(out.String(), "Updated Figure S2") {
		t.Error("confirmation printed on failure")
	}
}

func TestVersionCommand(t *testing.T) {
	c, out := newTestCLI()
	if err := execute(t, c, "version"); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"version", "commit", "built"} {
		if !strings.Contains(out.String(), key) {
			t.Errorf("version output missing %q: %q", key, out.String())
		}
	}
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	PrintError(&buf, errors.Config("nodes must be >= 2, got 1"))
	if !strings.Contains(buf.String(), "INVALID_CONFIG: nodes must be >= 2, got 1") {
		t.Errorf("PrintError wrote %q", buf.String())
	}
}
