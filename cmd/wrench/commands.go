package wrench

import (
	"fmt"

	"github.com/arthur-debert/wrench/internal/version"
	"github.com/arthur-debert/wrench/pkg/errors"
	"github.com/spf13/cobra"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	var servers bool
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   MsgListShort,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(cmd, opts, func(a *app) error {
				return a.list(servers)
			})
		},
	}
	cmd.Flags().BoolVar(&servers, "servers", false, MsgFlagServers)
	return cmd
}

func newCopyCmd(opts *rootOptions) *cobra.Command {
	var profile, server string
	cmd := &cobra.Command{
		Use:     "copy SOURCE [TARGET...]",
		Short:   MsgCopyShort,
		Long:    MsgCopyLong,
		Example: MsgCopyExample,
		GroupID: "core",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 && profile == "" {
				return errors.New(errors.ErrInvalidInput, MsgErrNoTargets)
			}
			return runWithApp(cmd, opts, func(a *app) error {
				if err := a.selectSource(args[0]); err != nil {
					return err
				}
				if err := a.addTargets(args[1:], profile, server); err != nil {
					return err
				}
				return a.copySelection()
			})
		},
	}
	cmd.Flags().StringVarP(&profile, "profile", "p", "", MsgFlagProfile)
	cmd.Flags().StringVarP(&server, "server", "s", "", MsgFlagServer)
	return cmd
}

func newBackupCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "backup",
		Short:   MsgBackupShort,
		GroupID: "core",
	}

	var name string
	create := &cobra.Command{
		Use:   "create ENTRY",
		Short: MsgBackupCreateShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(cmd, opts, func(a *app) error {
				return a.createBackup(args[0], name)
			})
		},
	}
	create.Flags().StringVarP(&name, "name", "n", "", MsgFlagBackupName)

	list := &cobra.Command{
		Use:     "list [ENTRY]",
		Aliases: []string{"ls"},
		Short:   MsgBackupListShort,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := ""
			if len(args) == 1 {
				ref = args[0]
			}
			return runWithApp(cmd, opts, func(a *app) error {
				return a.listBackups(ref)
			})
		},
	}

	del := &cobra.Command{
		Use:     "delete BACKUP",
		Aliases: []string{"rm"},
		Short:   MsgBackupDeleteShort,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(cmd, opts, func(a *app) error {
				return a.deleteBackup(args[0])
			})
		},
	}

	restore := &cobra.Command{
		Use:   "restore BACKUP [ENTRY]",
		Short: MsgBackupRestoreShort,
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry := ""
			if len(args) == 2 {
				entry = args[1]
			}
			return runWithApp(cmd, opts, func(a *app) error {
				return a.restoreBackup(args[0], entry)
			})
		},
	}

	apply := &cobra.Command{
		Use:   "apply BACKUP ENTRY...",
		Short: MsgBackupApplyShort,
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(cmd, opts, func(a *app) error {
				return a.applyBackup(args[0], args[1:])
			})
		},
	}

	cmd.AddCommand(create, list, del, restore, apply)
	return cmd
}

func newExportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "export DEST",
		Short:   MsgExportShort,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(cmd, opts, func(a *app) error {
				return a.export(args[0])
			})
		},
	}
}

func newImportCmd(opts *rootOptions) *cobra.Command {
	var (
		choice importChoice
		dryRun bool
	)
	cmd := &cobra.Command{
		Use:     "import ARCHIVE",
		Short:   MsgImportShort,
		Long:    MsgImportLong,
		Example: MsgImportExample,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(cmd, opts, func(a *app) error {
				analysis, err := a.analyzeImport(args[0])
				if err != nil || analysis == nil {
					return err
				}
				if dryRun {
					return a.manager.CancelImport()
				}
				return a.commitImport(choice)
			})
		},
	}
	cmd.Flags().StringArrayVar(&choice.overwrite, "overwrite", nil, MsgFlagOverwrite)
	cmd.Flags().BoolVar(&choice.overwriteAll, "overwrite-all", false, MsgFlagOverwriteAll)
	cmd.Flags().BoolVar(&choice.keepAll, "keep-all", false, MsgFlagKeepAll)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, MsgFlagDryRun)
	cmd.MarkFlagsMutuallyExclusive("overwrite", "overwrite-all", "keep-all")
	return cmd
}

func newRootPathCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "root",
		Short:   MsgRootCmdShort,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(cmd, opts, func(a *app) error {
				return a.showRoot()
			})
		},
	}
	show := &cobra.Command{
		Use:   "show",
		Short: MsgRootShowShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(cmd, opts, func(a *app) error {
				return a.showRoot()
			})
		},
	}
	set := &cobra.Command{
		Use:   "set PATH",
		Short: MsgRootSetShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(cmd, opts, func(a *app) error {
				return a.setRoot(args[0])
			})
		},
	}
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: MsgRootClearShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(cmd, opts, func(a *app) error {
				return a.clearRoot()
			})
		},
	}
	cmd.AddCommand(show, set, clearCmd)
	return cmd
}

func newBracketsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "brackets SERVER on|off",
		Short:     MsgBracketsShort,
		GroupID:   "core",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(cmd, opts, func(a *app) error {
				return a.setBrackets(args[0], args[1])
			})
		},
	}
}

func newAliasCmd(opts *rootOptions) *cobra.Command {
	var clearAlias bool
	cmd := &cobra.Command{
		Use:     "alias ENTRY [ALIAS]",
		Short:   MsgAliasShort,
		GroupID: "core",
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			alias := ""
			switch {
			case clearAlias && len(args) == 2:
				return errors.New(errors.ErrInvalidInput, "give an alias or --clear, not both")
			case !clearAlias && len(args) == 1:
				return errors.New(errors.ErrInvalidInput, "give an alias, or --clear to remove it")
			case len(args) == 2:
				alias = args[1]
			}
			return runWithApp(cmd, opts, func(a *app) error {
				return a.setAlias(args[0], alias)
			})
		},
	}
	cmd.Flags().BoolVar(&clearAlias, "clear", false, MsgFlagClear)
	return cmd
}

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "topics",
		Short:   MsgTopicsShort,
		Long:    MsgTopicsLong,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			// help is installed by the topics package and knows about "topics"
			if helpCmd, _, err := cmd.Root().Find([]string{"help"}); err == nil && helpCmd.Name() == "help" {
				if helpCmd.RunE != nil {
					return helpCmd.RunE(helpCmd, []string{"topics"})
				} else if helpCmd.Run != nil {
					helpCmd.Run(helpCmd, []string{"topics"})
					return nil
				}
			}
			return fmt.Errorf("help command not found")
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}
