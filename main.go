package main

import (
	"os"

	"github.com/spf13/cobra"

	"entropy/internal/config"
)

var rootCmd = &cobra.Command{
	Use:           "entropy",
	Short:         "Entropy desktop shell",
	Long:          "Entropy runs a small always-available window with a tray icon, a mini mode and popup notifications.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

var notificationCmd = &cobra.Command{
	Use:    "notification",
	Short:  "Show one notification window",
	Hidden: true,
	RunE:   runNotification,
}

var notifyOpts notificationOptions

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "Log level: error, info, debug (default from config)")
	rootCmd.PersistentFlags().String("config-dir", "", "Override the app config directory")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if dir, _ := rootCmd.PersistentFlags().GetString("config-dir"); dir != "" {
			config.SetDir(dir)
		}
		return nil
	}

	f := notificationCmd.Flags()
	f.StringVar(&notifyOpts.Label, "label", "", "Window label")
	f.StringVar(&notifyOpts.Title, "title", "", "Window title")
	f.StringVar(&notifyOpts.URL, "url", "", "Page to load")
	f.IntVar(&notifyOpts.X, "x", 0, "Left edge in logical pixels")
	f.IntVar(&notifyOpts.Y, "y", 0, "Top edge in logical pixels")
	f.IntVar(&notifyOpts.Width, "width", 0, "Window width")
	f.IntVar(&notifyOpts.Height, "height", 0, "Window height")
	f.BoolVar(&notifyOpts.Resizable, "resizable", false, "Allow resizing")
	f.BoolVar(&notifyOpts.Decorations, "decorations", false, "Show the native frame")
	f.BoolVar(&notifyOpts.AlwaysOnTop, "on-top", true, "Keep above other windows")

	rootCmd.AddCommand(notificationCmd)
	rootCmd.AddCommand(stateCmd)
}

// loadSettings reads the config file and applies --log-level over it.
func loadSettings(cmd *cobra.Command) *config.AppConfig {
	cfg := config.Load(config.Path(config.FileName))
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}
	return cfg
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg := loadSettings(cmd)

	logFile, err := InitLogger(cfg.LogLevel)
	if err != nil {
		Log.Error("open log file failed, logging to stderr", "error", err)
	} else {
		defer logFile.Close()
	}
	Log.Info("starting", "configDir", config.Dir(), "logLevel", GetLogLevel())

	if err := runDesktop(cfg); err != nil {
		Log.Error("desktop app exited with error", "error", err)
		return err
	}
	return nil
}

func runNotification(cmd *cobra.Command, args []string) error {
	setLogLevelVar(loadSettings(cmd).LogLevel)
	Log.Debug("notification window", "label", notifyOpts.Label, "url", notifyOpts.URL)
	return runNotificationWindow(notifyOpts)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		Log.Error("command failed", "error", err)
		os.Exit(1)
	}
}
