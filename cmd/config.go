package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/zhubert/snappy/internal/config"
	"github.com/zhubert/snappy/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change the configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		showConfig(cfg, cmd.OutOrStdout())
		return nil
	},
}

var configSetHostCmd = &cobra.Command{
	Use:   "set-host URL",
	Short: "Persist the message service URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return setHost(cfg, args[0], cmd.OutOrStdout())
	},
}

var configSetThemeCmd = &cobra.Command{
	Use:   "set-theme NAME",
	Short: "Persist the color theme",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return setTheme(cfg, args[0], cmd.OutOrStdout())
	},
}

var configNotificationsCmd = &cobra.Command{
	Use:       "notifications on|off",
	Short:     "Turn desktop notifications on or off",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"on", "off"},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return setNotifications(cfg, args[0], cmd.OutOrStdout())
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetHostCmd)
	configCmd.AddCommand(configSetThemeCmd)
	configCmd.AddCommand(configNotificationsCmd)
	rootCmd.AddCommand(configCmd)
}

func showConfig(cfg *config.Config, out io.Writer) {
	token := "not set"
	if cfg.GetToken() != "" {
		token = "set"
	}
	theme := cfg.GetTheme()
	if theme == "" {
		theme = string(ui.DefaultTheme)
	}

	fmt.Fprintf(out, "config file:    %s\n", cfg.Path())
	fmt.Fprintf(out, "host:           %s\n", cfg.GetHost())
	fmt.Fprintf(out, "storage key:    %s\n", cfg.GetStorageKey())
	fmt.Fprintf(out, "store:          %s\n", cfg.StoreDir())
	fmt.Fprintf(out, "timeout:        %s\n", cfg.GetTimeout())
	fmt.Fprintf(out, "notifications:  %s\n", onOff(cfg.GetNotificationsEnabled()))
	fmt.Fprintf(out, "theme:          %s\n", theme)
	fmt.Fprintf(out, "token:          %s\n", token)
}

func setHost(cfg *config.Config, host string, out io.Writer) error {
	cfg.SetHost(strings.TrimRight(host, "/"))
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := cfg.Save(); err != nil {
		return err
	}
	fmt.Fprintf(out, "Host set to %s\n", cfg.GetHost())
	return nil
}

func setTheme(cfg *config.Config, name string, out io.Writer) error {
	names := lo.Map(ui.ThemeNames(), func(n ui.ThemeName, _ int) string { return string(n) })
	if !lo.Contains(names, name) {
		return fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(names, ", "))
	}
	cfg.SetTheme(name)
	if err := cfg.Save(); err != nil {
		return err
	}
	fmt.Fprintf(out, "Theme set to %s\n", name)
	return nil
}

func setNotifications(cfg *config.Config, value string, out io.Writer) error {
	var enabled bool
	switch strings.ToLower(value) {
	case "on":
		enabled = true
	case "off":
		enabled = false
	default:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("expected on or off, got %q", value)
		}
		enabled = b
	}
	cfg.SetNotificationsEnabled(enabled)
	if err := cfg.Save(); err != nil {
		return err
	}
	fmt.Fprintf(out, "Notifications %s\n", onOff(enabled))
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
