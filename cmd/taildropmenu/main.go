package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/rescp17/taildropMenu/internal/config"
	"github.com/rescp17/taildropMenu/internal/logging"
)

type globalFlags struct {
	configPath  string
	logLevel    string
	logFile     string
	tailscale   string
	showDNSName bool
	hideOffline bool
	notifier    string
}

func main() {
	var flags globalFlags
	var cfg config.Config

	cmd := &cobra.Command{
		Use:   "taildropmenu",
		Short: "Send and receive files with Taildrop from a menu",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			cfg = loaded
			return nil
		},
	}

	defaultConfig, err := config.DefaultPath()
	if err != nil {
		defaultConfig = ""
	}
	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", defaultConfig, "Path to the config file")
	pf.StringVar(&flags.logLevel, "log", "info", "Log level (debug, info, warn, error)")
	pf.StringVar(&flags.logFile, "log-file", logging.DefaultFile, "Log file used while the TUI is running")
	pf.StringVar(&flags.tailscale, "tailscale", "", "Path to the tailscale binary")
	pf.BoolVar(&flags.showDNSName, "show-dns-name", false, "Show full DNS names instead of machine names")
	pf.BoolVar(&flags.hideOffline, "hide-offline", false, "Leave offline devices out of the menu")
	pf.StringVar(&flags.notifier, "notifier", "", "Notification sink (desktop, socket, log, none)")

	cmd.AddCommand(newDevicesCmd(&cfg, &flags))
	cmd.AddCommand(newSendCmd(&cfg, &flags))
	cmd.AddCommand(newReceiveCmd(&cfg, &flags))

	if err := fang.Execute(context.Background(), cmd); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the config file and lets explicitly set flags win.
func loadConfig(cmd *cobra.Command, flags globalFlags) (config.Config, error) {
	cfg := config.Default()
	if flags.configPath != "" {
		loaded, err := config.Load(flags.configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	changed := cmd.Flags().Changed
	if changed("tailscale") {
		cfg.TailscaleBinary = flags.tailscale
	}
	if changed("show-dns-name") {
		cfg.ShowDNSName = flags.showDNSName
	}
	if changed("hide-offline") {
		cfg.HideOffline = flags.hideOffline
	}
	if changed("notifier") {
		cfg.Notifier = flags.notifier
	}
	return cfg, cfg.Validate()
}
