package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"k8s.io/cli-runtime/pkg/genericclioptions"
	"k8s.io/kubectl/pkg/util/templates"

	"github.com/renato0307/kview/internal/app"
	"github.com/renato0307/kview/internal/i18n"
	"github.com/renato0307/kview/internal/interval"
	"github.com/renato0307/kview/internal/k8s"
	"github.com/renato0307/kview/internal/logging"
	"github.com/renato0307/kview/internal/settings"
	"github.com/renato0307/kview/internal/types"
	"github.com/renato0307/kview/internal/ui"
)

var (
	rootLong = templates.LongDesc(`
		kview is a terminal console for Kubernetes clusters.

		It lists cluster resources in tables whose columns you choose, and
		refreshes them at the interval you pick. Column and interval choices
		are stored per user in a ConfigMap in the cluster, with a local file
		used when the cluster cannot be written.`)

	rootExample = templates.Examples(`
		# Open the console on the current kubeconfig context
		kview

		# Explore with built-in sample data
		kview --dummy

		# Refresh every 5 minutes unless another interval is stored
		kview --refresh 5m`)
)

// options is shared by every command.
type options struct {
	configFile string
	kubeFlags  *genericclioptions.ConfigFlags
	viper      *viper.Viper
	cfg        *Config
}

// session holds what a command needs to read resources and user settings.
type session struct {
	repo      k8s.Repository
	namespace string
	columns   *settings.Setting[settings.TableColumns]
	interval  *settings.Setting[string]
}

func newRootCmd() *cobra.Command {
	o := &options{
		kubeFlags: genericclioptions.NewConfigFlags(true),
		viper:     viper.New(),
	}

	cmd := &cobra.Command{
		Use:           "kview",
		Short:         "Terminal console for Kubernetes clusters",
		Long:          rootLong,
		Example:       rootExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.complete(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logging.Shutdown()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.runTUI(cmd.Context())
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&o.configFile, "config", "", "config file (default is $XDG_CONFIG_HOME/kview/config.yaml)")
	flags.String("theme", "charm", "theme to use (charm, dracula, nord)")
	flags.String("language", "en", fmt.Sprintf("display language (%s)", strings.Join(i18n.Languages(), ", ")))
	flags.Bool("dummy", false, "use sample data instead of connecting to a cluster")
	flags.String("refresh", "30s", "refresh interval used when none is stored (15s, 30s, 1m, 5m, 15m, 30m, 1h, 2h, 1d, OFF_KEY)")
	flags.String("log-file", "", "write logs to this file (disabled when empty)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "text", "log format (text, json)")
	flags.String("settings-namespace", settings.DefaultNamespace, "namespace of the user settings ConfigMap")
	flags.String("settings-name", "", "name of the user settings ConfigMap (derived from the kubeconfig user when empty)")
	flags.String("settings-file", "", "local settings file used when the cluster cannot be written")
	o.kubeFlags.AddFlags(flags)

	cmd.AddCommand(newColumnsCmd(o))
	cmd.AddCommand(newKindsCmd())
	cmd.AddCommand(newIntervalsCmd(o))

	return cmd
}

// complete loads the configuration and starts logging.
func (o *options) complete(cmd *cobra.Command) error {
	cfg, err := loadConfig(o.viper, o.configFile, cmd.Flags())
	if err != nil {
		return err
	}
	o.cfg = cfg

	if err := logging.Init(logging.Config{
		FilePath:   cfg.Log.File,
		Level:      logging.ParseLevel(cfg.Log.Level),
		Format:     logging.ParseFormat(cfg.Log.Format),
		MaxSizeMB:  cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
	}); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	logging.Info("Starting kview", "command", cmd.CommandPath(), "dummy", cfg.Dummy)
	return nil
}

// connect builds the repository and the settings from the configuration.
// Without a cluster the settings live only in the local file.
func (o *options) connect(ctx context.Context) (*session, error) {
	path, err := o.cfg.settingsFile()
	if err != nil {
		return nil, err
	}
	local := settings.NewFileBackend(path)

	if o.cfg.Dummy {
		return &session{
			repo:     k8s.NewDummyRepository(),
			columns:  settings.TableColumnsSetting(nil, local),
			interval: settings.RefreshIntervalSetting(nil, local),
		}, nil
	}

	timing := logging.Start("Connect to cluster")
	clients, err := k8s.NewClients(o.kubeFlags)
	if err != nil {
		return nil, err
	}
	logging.End(timing)

	name := o.cfg.Settings.Name
	if name == "" {
		name = settings.UserSettingsName(clients.User)
	}
	remote := settings.NewConfigMapBackend(clients.Clientset, o.cfg.Settings.Namespace, name)
	logging.Info("Using user settings", "configmap", remote.String(), "file", local.Path())

	return &session{
		repo:      clients.Repository,
		namespace: clients.Namespace,
		columns:   settings.TableColumnsSetting(remote, local),
		interval:  settings.RefreshIntervalSetting(remote, local),
	}, nil
}

func (o *options) runTUI(ctx context.Context) error {
	s, err := o.connect(ctx)
	if err != nil {
		return err
	}

	refresh, err := interval.Parse(o.cfg.Refresh)
	if err != nil {
		return err
	}

	appCtx := types.NewAppContext(
		ui.GetTheme(o.cfg.Theme),
		i18n.New(o.cfg.Language),
		s.repo,
		s.columns,
		s.interval,
	)
	appCtx.Namespace = s.namespace

	p := tea.NewProgram(
		app.NewModel(appCtx, refresh),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	start := time.Now()
	_, err = p.Run()
	logging.Info("kview stopped", "uptime", time.Since(start).Round(time.Second))
	if err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
