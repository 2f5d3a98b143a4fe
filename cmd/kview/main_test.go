package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/huh"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/kview/internal/columns"
	"github.com/renato0307/kview/internal/interval"
)

// workspace writes a config file running in dummy mode with settings kept in
// dir, and returns dir.
func workspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	config := "dummy: true\nsettings:\n  file: " + filepath.Join(dir, "settings.yaml") + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(config), 0o600))
	return dir
}

func execute(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", filepath.Join(dir, "config.yaml")}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestColumns_ListDefaults(t *testing.T) {
	dir := workspace(t)

	out, err := execute(t, dir, "columns", "list", "pods")
	require.NoError(t, err)
	assert.Regexp(t, `name\s+Name\s+always\s+true`, out)
	assert.Regexp(t, `status\s+Status\s+yes\s+true`, out)
	assert.Regexp(t, `ip\s+IP\s+no\s+false`, out)
}

func TestColumns_ToggleIsPersisted(t *testing.T) {
	dir := workspace(t)

	out, err := execute(t, dir, "columns", "toggle", "pods", "ip", "node")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved Pod columns: name, namespace, status, ready, restarts, owner, age, ip")

	out, err = execute(t, dir, "columns", "list", "Pod")
	require.NoError(t, err)
	assert.Regexp(t, `ip\s+IP\s+yes`, out)
	assert.Regexp(t, `node\s+Node\s+no`, out)

	_, err = os.Stat(filepath.Join(dir, "settings.yaml"))
	assert.NoError(t, err)
}

func TestColumns_ToggleErrors(t *testing.T) {
	tests := []struct {
		name    string
		setup   []string
		args    []string
		wantErr string
	}{
		{
			name:    "unknown resource",
			args:    []string{"columns", "toggle", "widgets", "ip"},
			wantErr: `unknown resource "widgets"`,
		},
		{
			name:    "unknown column",
			args:    []string{"columns", "toggle", "pods", "colour"},
			wantErr: `Pod has no column "colour"`,
		},
		{
			name:    "name column",
			args:    []string{"columns", "toggle", "pods", "name"},
			wantErr: `column "name" is always shown`,
		},
		{
			name:    "over capacity",
			setup:   []string{"columns", "toggle", "pods", "ip"},
			args:    []string{"columns", "toggle", "pods", "qos"},
			wantErr: "at most 9 columns",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := workspace(t)
			if tt.setup != nil {
				_, err := execute(t, dir, tt.setup...)
				require.NoError(t, err)
			}

			_, err := execute(t, dir, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestColumns_FailedToggleWritesNothing(t *testing.T) {
	dir := workspace(t)

	_, err := execute(t, dir, "columns", "toggle", "pods", "ip", "colour")
	require.Error(t, err)

	_, err = os.Stat(filepath.Join(dir, "settings.yaml"))
	assert.True(t, os.IsNotExist(err))
}

func TestColumns_Reset(t *testing.T) {
	dir := workspace(t)

	_, err := execute(t, dir, "columns", "toggle", "pods", "ip", "namespace")
	require.NoError(t, err)

	out, err := execute(t, dir, "columns", "reset", "pods")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved Pod columns: name, namespace, status, ready, restarts, owner, node, age\n")
}

func dummyOptions(t *testing.T) *options {
	cfg := &Config{Dummy: true}
	cfg.Settings.File = filepath.Join(t.TempDir(), "settings.yaml")
	return &options{cfg: cfg}
}

func TestColumnsEdit(t *testing.T) {
	tests := []struct {
		name    string
		chosen  []string
		editErr error
		want    string
		wantErr string
	}{
		{
			name:   "exact choice in layout order",
			chosen: []string{"ip", "status"},
			want:   "Saved Pod columns: name, status, ip\n",
		},
		{
			name:   "nothing chosen keeps name",
			chosen: nil,
			want:   "Saved Pod columns: name\n",
		},
		{
			name:    "aborted",
			editErr: huh.ErrUserAborted,
			want:    "Cancelled, columns unchanged\n",
		},
		{
			name:    "unknown column",
			chosen:  []string{"colour"},
			wantErr: `no column "colour"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := dummyOptions(t)
			var seeded []string
			cmd := newColumnsEditCmd(o, func(_ context.Context, ctrl *columns.Controller) ([]string, error) {
				seeded = ctrl.Selection.Commit()
				return tt.chosen, tt.editErr
			})
			var out bytes.Buffer
			cmd.SetOut(&out)
			cmd.SetErr(&out)
			cmd.SetArgs([]string{"pods"})

			err := cmd.Execute()
			assert.Contains(t, seeded, "namespace", "editor starts from the defaults")
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestKinds(t *testing.T) {
	dir := workspace(t)

	out, err := execute(t, dir, "kinds")
	require.NoError(t, err)
	assert.Regexp(t, `Deployment\s+deployment\s+Deployment\s+Deployments\s+extensions\s+v1beta1\s+deployments`, out)
	assert.Regexp(t, `ConfigMap\s+configmap\s+Config Map\s+Config Maps\s+core\s+v1\s+configmaps`, out)
	assert.Regexp(t, `Always\s+Always Pull\s+100\s+true`, out)
	assert.Contains(t, out, "VOLUME SOURCE")

	out, err = execute(t, dir, "kinds", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "pullPolicies:")
	assert.Contains(t, out, "kind: Pod")
	assert.Contains(t, out, "label: Restart On Failure")

	out, err = execute(t, dir, "kinds", "daemonset", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "kind: DaemonSet")
	assert.NotContains(t, out, "pullPolicies")

	_, err = execute(t, dir, "kinds", "widget")
	assert.ErrorContains(t, err, `unknown kind "widget"`)

	_, err = execute(t, dir, "kinds", "-o", "json")
	assert.ErrorContains(t, err, `unknown output format "json"`)
}

func TestIntervals(t *testing.T) {
	dir := workspace(t)

	out, err := execute(t, dir, "intervals")
	require.NoError(t, err)
	assert.Regexp(t, `OFF_KEY\s+Refresh off\s+-`, out)
	assert.Regexp(t, `15s\s+15 seconds\s+15\n`, out)
	assert.Regexp(t, `1d\s+1 day\s+86400\n`, out)

	out, err = execute(t, dir, "intervals", "--language", "pt")
	require.NoError(t, err)
	assert.Contains(t, out, "15 segundos")
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("theme: nord\nrefresh: 5m\nlog:\n  level: debug\n"), 0o600))

	newFlags := func(args ...string) *pflag.FlagSet {
		fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
		fs.String("theme", "charm", "")
		fs.String("refresh", "30s", "")
		require.NoError(t, fs.Parse(args))
		return fs
	}

	cfg, err := loadConfig(viper.New(), file, newFlags())
	require.NoError(t, err)
	assert.Equal(t, "nord", cfg.Theme, "file beats flag defaults")
	assert.Equal(t, "5m", cfg.Refresh)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 10, cfg.Log.MaxSize)

	cfg, err = loadConfig(viper.New(), file, newFlags("--theme", "dracula"))
	require.NoError(t, err)
	assert.Equal(t, "dracula", cfg.Theme, "explicit flags beat the file")

	t.Setenv("KVIEW_REFRESH", "1h")
	cfg, err = loadConfig(viper.New(), file, newFlags())
	require.NoError(t, err)
	assert.Equal(t, "1h", cfg.Refresh)
}

func TestLoadConfig_Errors(t *testing.T) {
	dir := t.TempDir()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)

	_, err := loadConfig(viper.New(), filepath.Join(dir, "missing.yaml"), fs)
	assert.ErrorContains(t, err, "failed to read config")

	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("refresh: 10s\n"), 0o600))
	_, err = loadConfig(viper.New(), file, fs)
	assert.ErrorIs(t, err, interval.ErrUnknownInterval)

	require.NoError(t, os.WriteFile(file, []byte("theme: neon\n"), 0o600))
	_, err = loadConfig(viper.New(), file, fs)
	assert.ErrorContains(t, err, `unknown theme "neon"`)
}
