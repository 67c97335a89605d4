package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	charmLog "github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ZeeshanAK/my-availability-app/internal/adapters/storage/sqlite"
	"github.com/ZeeshanAK/my-availability-app/internal/app"
	"github.com/ZeeshanAK/my-availability-app/internal/config"
	"github.com/ZeeshanAK/my-availability-app/internal/domain"
	"github.com/ZeeshanAK/my-availability-app/internal/platform"
	"github.com/ZeeshanAK/my-availability-app/internal/tui"
)

var (
	flagConfig string
	flagDB     string
	flagApp    string
	flagDev    bool
)

// rootCmd is the base command; invoked bare it opens the calendar TUI.
var rootCmd = &cobra.Command{
	Use:   "avail",
	Short: "Personal availability calendar with shareable day views",
	Long: `avail keeps a local catalog of activities and schedule entries and
resolves them into per-day availability. Run it bare for the interactive
calendar, or use the subcommands for scripting and serving share links.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	RunE: runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file path (default per-OS, or AVAIL_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "sqlite database path (default per-OS, or AVAIL_DB_PATH)")
	rootCmd.PersistentFlags().StringVar(&flagApp, "app", "", "app name override for path isolation (or AVAIL_APP_NAME)")
	rootCmd.PersistentFlags().BoolVar(&flagDev, "dev", false, "use the -dev path namespace (or AVAIL_DEV_MODE)")
}

// program represents program data used by this package.
type program interface {
	Run() (tea.Model, error)
}

// programFactory stores a package-level helper value.
var programFactory = func(m tea.Model) program {
	return tea.NewProgram(m)
}

// cliRuntime bundles the opened dependencies one command invocation needs.
type cliRuntime struct {
	appName    string
	devMode    bool
	configPath string
	paths      platform.Paths
	cfg        config.Config
	logger     *charmLog.Logger
	repo       *sqlite.Repository
	svc        *app.Service
	owner      domain.Owner
}

// Close releases the sqlite handle.
func (r *cliRuntime) Close() {
	if err := r.repo.Close(); err != nil {
		r.logger.Warn("sqlite close failed", "db_path", r.cfg.Database.Path, "err", err)
	}
}

// resolveIdentity applies the flag > env > default precedence for the app
// name and dev mode.
func resolveIdentity(cmd *cobra.Command) (appName string, devMode bool) {
	appName = "avail"
	if envApp := strings.TrimSpace(os.Getenv("AVAIL_APP_NAME")); envApp != "" {
		appName = envApp
	}
	if cmd.Flags().Changed("app") && strings.TrimSpace(flagApp) != "" {
		appName = strings.TrimSpace(flagApp)
	}

	devMode = version == "dev"
	if envDev, ok := parseBoolEnv("AVAIL_DEV_MODE"); ok {
		devMode = envDev
	}
	if cmd.Flags().Changed("dev") {
		devMode = flagDev
	}
	return appName, devMode
}

// openRuntime resolves paths and config, opens storage, and makes sure the
// owner row exists. Every command goes through here so they all share one
// startup story.
func openRuntime(cmd *cobra.Command) (*cliRuntime, error) {
	ctx := cmd.Context()
	appName, devMode := resolveIdentity(cmd)

	paths, err := platform.DefaultPathsWithOptions(platform.Options{AppName: appName, DevMode: devMode})
	if err != nil {
		return nil, fmt.Errorf("resolve app paths: %w", err)
	}

	configPath := strings.TrimSpace(flagConfig)
	if configPath == "" {
		if envPath := strings.TrimSpace(os.Getenv("AVAIL_CONFIG")); envPath != "" {
			configPath = envPath
		} else {
			configPath = paths.ConfigPath
		}
	}
	dbPath := strings.TrimSpace(flagDB)
	dbOverridden := dbPath != ""
	if !dbOverridden {
		if envPath := strings.TrimSpace(os.Getenv("AVAIL_DB_PATH")); envPath != "" {
			dbPath = envPath
			dbOverridden = true
		} else {
			dbPath = paths.DBPath
		}
	}

	defaultCfg := config.Default(dbPath)
	cfg, err := config.Load(configPath, defaultCfg)
	if err != nil {
		return nil, fmt.Errorf("load config %q: %w", configPath, err)
	}
	if dbOverridden {
		cfg.Database.Path = dbPath
	}

	logger, err := newLogger(cmd.ErrOrStderr(), appName, cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("configure runtime logger: %w", err)
	}
	logger.Info("startup configuration resolved", "app", appName, "dev_mode", devMode)
	logger.Debug("runtime paths resolved", "config_path", configPath, "data_dir", paths.DataDir, "db_path", dbPath)
	logger.Info("configuration loaded", "config_path", configPath, "db_path", cfg.Database.Path, "log_level", cfg.Logging.Level)

	logger.Info("opening sqlite repository", "db_path", cfg.Database.Path)
	repo, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Error("sqlite open failed", "db_path", cfg.Database.Path, "err", err)
		return nil, fmt.Errorf("open sqlite repository: %w", err)
	}
	logger.Info("sqlite repository ready", "db_path", cfg.Database.Path, "migrations", "ensured")

	svc := app.NewService(repo, uuid.NewString, nil)
	owner, err := svc.EnsureOwner(ctx, cfg.Owner.ID, cfg.Owner.Name, cfg.Owner.Timezone)
	if err != nil {
		if closeErr := repo.Close(); closeErr != nil {
			logger.Warn("sqlite close failed", "db_path", cfg.Database.Path, "err", closeErr)
		}
		return nil, fmt.Errorf("ensure owner: %w", err)
	}
	if cfg.Owner.ID != owner.ID {
		saved, err := config.SaveOwnerID(configPath, cfg, owner.ID)
		if err != nil {
			if closeErr := repo.Close(); closeErr != nil {
				logger.Warn("sqlite close failed", "db_path", cfg.Database.Path, "err", closeErr)
			}
			return nil, fmt.Errorf("persist owner id: %w", err)
		}
		cfg = saved
		logger.Info("owner identity persisted", "owner_id", owner.ID, "config_path", configPath)
	}

	return &cliRuntime{
		appName:    appName,
		devMode:    devMode,
		configPath: configPath,
		paths:      paths,
		cfg:        cfg,
		logger:     logger,
		repo:       repo,
		svc:        svc,
		owner:      owner,
	}, nil
}

// newLogger builds the styled console logger all commands share.
func newLogger(stderr io.Writer, appName, level string) (*charmLog.Logger, error) {
	parsed, err := charmLog.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse logging level %q: %w", level, err)
	}
	if stderr == nil {
		stderr = io.Discard
	}
	return charmLog.NewWithOptions(stderr, charmLog.Options{
		Level:           parsed,
		Prefix:          appName,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Formatter:       charmLog.TextFormatter,
	}), nil
}

// parseBoolEnv parses input into a normalized form.
func parseBoolEnv(name string) (bool, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}

// keyOverrides maps persisted key bindings onto the TUI override set.
func keyOverrides(cfg config.KeyConfig) tui.KeyConfig {
	return tui.KeyConfig{
		AddEntry:       cfg.AddEntry,
		AddActivity:    cfg.AddActivity,
		DeleteEntry:    cfg.DeleteEntry,
		DeleteActivity: cfg.DeleteActivity,
		CopyShare:      cfg.CopyShare,
		Today:          cfg.Today,
	}
}

// runTUI opens the interactive calendar, the default when no subcommand is
// given.
func runTUI(cmd *cobra.Command, _ []string) error {
	rt, err := openRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	rt.logger.Info("command flow start", "command", "tui")
	// Runtime logs would tear the alt screen while the calendar is active.
	rt.logger.SetOutput(io.Discard)

	m := tui.NewModel(rt.svc, rt.owner,
		tui.WithWeekStart(rt.cfg.Calendar.StartWeekday()),
		tui.WithShareBase(rt.cfg.Share.AdvertiseURL),
		tui.WithFeed(rt.svc.Feed()),
		tui.WithKeyConfig(keyOverrides(rt.cfg.Keys)),
	)
	_, runErr := programFactory(m).Run()
	rt.logger.SetOutput(cmd.ErrOrStderr())
	if runErr != nil {
		rt.logger.Error("tui program terminated with error", "err", runErr)
		return fmt.Errorf("run tui program: %w", runErr)
	}
	rt.logger.Info("command flow complete", "command", "tui")
	return nil
}
