package wrench

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/arthur-debert/wrench/internal/version"
	"github.com/arthur-debert/wrench/pkg/cobrax/topics"
	"github.com/arthur-debert/wrench/pkg/logging"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed topics
var topicFiles embed.FS

// rootOptions holds the global flags shared by every command
type rootOptions struct {
	verbosity  int
	yes        bool
	format     string
	configFile string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "wrench",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVarP(&opts.yes, "yes", "y", false, MsgFlagYes)
	rootCmd.PersistentFlags().StringVar(&opts.format, "format", "", MsgFlagFormat)
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", MsgFlagConfig)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newListCmd(opts))
	rootCmd.AddCommand(newCopyCmd(opts))
	rootCmd.AddCommand(newBackupCmd(opts))
	rootCmd.AddCommand(newExportCmd(opts))
	rootCmd.AddCommand(newImportCmd(opts))
	rootCmd.AddCommand(newRootPathCmd(opts))
	rootCmd.AddCommand(newBracketsCmd(opts))
	rootCmd.AddCommand(newAliasCmd(opts))
	rootCmd.AddCommand(newSessionCmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))
	rootCmd.AddCommand(newTopicsCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newVersionCmd())

	if sub, err := fs.Sub(topicFiles, "topics"); err == nil {
		_, err = topics.Initialize(rootCmd, sub, topics.Options{
			Extensions: []string{".md", ".txt"},
			Renderer:   topics.NewGlamourRenderer(),
		})
		if err != nil {
			log.Warn().Err(err).Msg("Help topics unavailable")
		}
	}

	return rootCmd
}
