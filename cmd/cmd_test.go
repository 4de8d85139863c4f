package cmd

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/VoxDroid/cookme/internal/config"
	"github.com/VoxDroid/cookme/internal/version"
)

// setupCLI points the data dir and database at a temp dir.
func setupCLI(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv(config.EnvCookmeHome, tmp)
	t.Setenv(config.EnvCookmeDB, "")
	t.Setenv("HOME", tmp)
	t.Setenv("USERPROFILE", tmp)
	viper.Reset()
	t.Cleanup(viper.Reset)
	color.NoColor = true
	return tmp
}

// runCLI executes the root command with args and returns what it printed.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	defer resetFlags(rootCmd)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

// mustRun is runCLI that fails the test on error.
func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := runCLI(t, "", args...)
	if err != nil {
		t.Fatalf("cookme %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

// resetFlags restores every flag to its default so commands can be run
// again in the same process.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func TestVersion(t *testing.T) {
	setupCLI(t)
	out := mustRun(t, "version")
	if strings.TrimSpace(out) != "cookme "+version.Version {
		t.Fatalf("unexpected version output %q", out)
	}
}

func TestWhoamiSetShowClear(t *testing.T) {
	setupCLI(t)

	if _, err := runCLI(t, "", "whoami", "set"); err == nil {
		t.Fatalf("expected error when no name is given")
	}
	mustRun(t, "whoami", "set", "--name", "Bob", "--email", "bob@example.com")
	if out := mustRun(t, "whoami", "show"); !strings.Contains(out, "Bob <bob@example.com>") {
		t.Fatalf("unexpected show output: %s", out)
	}

	mustRun(t, "whoami", "set", "alice")
	if out := mustRun(t, "whoami", "show"); strings.TrimSpace(out) != "alice" {
		t.Fatalf("positional name should replace the profile, got %q", out)
	}

	mustRun(t, "whoami", "clear")
	if out := mustRun(t, "whoami", "show"); !strings.Contains(out, "no stored identity") {
		t.Fatalf("unexpected show output after clear: %s", out)
	}
}

func TestEncodeDecode(t *testing.T) {
	setupCLI(t)

	out := mustRun(t, "encode", "white bread,", "lemon")
	if strings.TrimSpace(out) != "white-bread lemon" {
		t.Fatalf("encode = %q", out)
	}
	out = mustRun(t, "decode", "white-bread", "lemon")
	if out != "Lemon\nWhite Bread\n" {
		t.Fatalf("decode = %q", out)
	}
	out = mustRun(t, "decode", "--raw", "white-bread lemon")
	if strings.TrimSpace(out) != "white bread,lemon" {
		t.Fatalf("decode --raw = %q", out)
	}
}

func TestConfigFile(t *testing.T) {
	tmp := setupCLI(t)

	if _, err := runCLI(t, "", "--config", filepath.Join(tmp, "missing.yaml"), "version"); err == nil {
		t.Fatalf("expected error for a missing explicit config file")
	}
}

func TestParseIngredientSpec(t *testing.T) {
	tests := []struct {
		spec    string
		name    string
		qty     float64
		unit    string
		wantErr bool
	}{
		{spec: "Chicken:1:kilogram", name: "Chicken", qty: 1, unit: "kilogram"},
		{spec: "lemon:2", name: "lemon", qty: 2},
		{spec: "salt", name: "salt"},
		{spec: "milk:0,5:litre", name: "milk", qty: 0.5, unit: "litre"},
		{spec: ":1:g", wantErr: true},
		{spec: "egg:two", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := parseIngredientSpec(tt.spec)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseIngredientSpec: %v", err)
			}
			if got.Name != tt.name || got.Quantity != tt.qty || got.Unit != tt.unit {
				t.Fatalf("got %+v", got)
			}
		})
	}
}
