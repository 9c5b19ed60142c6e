package wrench

import (
	"fmt"
	"strconv"

	"github.com/arthur-debert/wrench/pkg/config"
	"github.com/arthur-debert/wrench/pkg/paths"
	"github.com/arthur-debert/wrench/pkg/ui/display"
	"github.com/spf13/cobra"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		GroupID: "misc",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: MsgConfigShowShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, p, err := loadConfig(opts)
			if err != nil {
				return err
			}
			renderer, err := newRenderer(opts, cfg, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			configFile := opts.configFile
			if configFile == "" {
				configFile = p.ConfigFilePath()
			}
			return renderer.RenderResult(configTable(cfg, p, configFile))
		},
	}

	defaults := &cobra.Command{
		Use:   "defaults",
		Short: MsgConfigDefaultShort,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), config.DefaultContent())
		},
	}

	cmd.AddCommand(show, defaults)
	return cmd
}

// configTable lists the effective settings and wrench's own file locations
func configTable(cfg *config.Config, p paths.Paths, configFile string) display.Table {
	row := func(key, value string) display.Row {
		return display.Row{Cells: []string{key, value}}
	}
	root := cfg.Settings.Root
	if root == "" {
		root = paths.DefaultSettingsRoot()
	}
	return display.Table{
		Title:  "Configuration",
		Header: []string{"Key", "Value"},
		Rows: []display.Row{
			row("settings.root", root),
			row("backups.import_name", cfg.Backups.ImportName),
			row("esi.enabled", strconv.FormatBool(cfg.ESI.Enabled)),
			row("esi.base_url", cfg.ESI.BaseURL),
			row("esi.user_agent", cfg.ESI.UserAgent),
			row("esi.timeout", cfg.ESI.Timeout.String()),
			row("watch.enabled", strconv.FormatBool(cfg.Watch.Enabled)),
			row("watch.debounce", cfg.Watch.Debounce.String()),
			row("output.format", cfg.Output.Format),
			row("config file", configFile),
			row("prefs file", p.PrefsPath()),
			row("aliases file", p.AliasesPath()),
			row("log file", p.LogFilePath()),
		},
	}
}
