package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSettings_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	s, err := LoadSettings(NewViper(), "")
	require.NoError(t, err)

	assert.Equal(t, "due", s.SIPTiming)
	assert.Equal(t, 1000, s.MonteCarlo.Trials)
	assert.True(t, s.MonteCarlo.MonthlySteps)
	assert.True(t, s.MonteCarlo.Lognormal)
	assert.Equal(t, int64(0), s.MonteCarlo.Seed)
	assert.Equal(t, "warn", s.Logging.Level)
	assert.Equal(t, "console", s.Output.Format)

	timing, err := s.Timing()
	require.NoError(t, err)
	assert.Equal(t, domain.TimingDue, timing)
}

func TestLoadSettings_Precedence(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "finplan.yaml", `
sip_timing: ordinary
monte_carlo:
  trials: 500
  seed: 7
  workers: 2
output:
  format: json
`)

	t.Run("file beats defaults", func(t *testing.T) {
		s, err := LoadSettings(NewViper(), path)
		require.NoError(t, err)
		assert.Equal(t, "ordinary", s.SIPTiming)
		assert.Equal(t, 500, s.MonteCarlo.Trials)
		assert.Equal(t, int64(7), s.MonteCarlo.Seed)
		assert.Equal(t, 2, s.MonteCarlo.Workers)
		assert.Equal(t, "json", s.Output.Format)
		assert.True(t, s.MonteCarlo.Lognormal, "unset keys keep their defaults")
	})

	t.Run("env beats file", func(t *testing.T) {
		t.Setenv("FINPLAN_SIP_TIMING", "due")
		t.Setenv("FINPLAN_MONTE_CARLO_TRIALS", "2500")

		s, err := LoadSettings(NewViper(), path)
		require.NoError(t, err)
		assert.Equal(t, "due", s.SIPTiming)
		assert.Equal(t, 2500, s.MonteCarlo.Trials)
		assert.Equal(t, int64(7), s.MonteCarlo.Seed)
	})

	t.Run("flag beats env", func(t *testing.T) {
		t.Setenv("FINPLAN_MONTE_CARLO_TRIALS", "2500")

		flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
		flags.Int("trials", 1000, "")
		flags.Int64("seed", 0, "")
		require.NoError(t, flags.Set("trials", "42"))

		v := NewViper()
		require.NoError(t, BindFlags(v, flags))
		s, err := LoadSettings(v, path)
		require.NoError(t, err)
		assert.Equal(t, 42, s.MonteCarlo.Trials)
		assert.Equal(t, int64(7), s.MonteCarlo.Seed, "unchanged flag does not override the file")
	})
}

func TestLoadSettings_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadSettings(NewViper(), filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err, "an explicit config path must exist")

	bad := writeFile(t, dir, "bad.yaml", "sip_timing: sometimes\n")
	_, err = LoadSettings(NewViper(), bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "settings validation failed")

	badFormat := writeFile(t, dir, "format.yaml", "output:\n  format: xml\n")
	_, err = LoadSettings(NewViper(), badFormat)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name    string
		s       Settings
		wantErr bool
	}{
		{"zero value", Settings{}, false},
		{"ordinary", Settings{SIPTiming: "end"}, false},
		{"negative trials", Settings{MonteCarlo: MonteCarloSettings{Trials: -1}}, true},
		{"negative workers", Settings{MonteCarlo: MonteCarloSettings{Workers: -3}}, true},
		{"yaml output", Settings{Output: OutputSettings{Format: "yaml"}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.s.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()

	assert.NoError(t, LoadEnvFile(filepath.Join(dir, "absent.env")))

	path := writeFile(t, dir, "test.env", "FINPLAN_OUTPUT_FORMAT=csv\n")
	t.Setenv("FINPLAN_OUTPUT_FORMAT", "")
	os.Unsetenv("FINPLAN_OUTPUT_FORMAT")
	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "csv", os.Getenv("FINPLAN_OUTPUT_FORMAT"))
}

// chdir changes the working directory for the duration of the test
// (equivalent to testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatal(err)
		}
	})
}
