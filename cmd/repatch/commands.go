// Package repatch holds the cobra command tree of the repatch binary.
package repatch

import (
	"embed"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/repatch/internal/version"
	"github.com/arthur-debert/repatch/pkg/cobrax/topics"
	"github.com/arthur-debert/repatch/pkg/commands/apply"
	"github.com/arthur-debert/repatch/pkg/commands/genconfig"
	"github.com/arthur-debert/repatch/pkg/logging"
	"github.com/arthur-debert/repatch/pkg/report"
	"github.com/arthur-debert/repatch/pkg/ui"
	"github.com/arthur-debert/repatch/pkg/ui/output"
)

//go:embed topics
var topicFiles embed.FS

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	var (
		verbosity int
		dryRun    bool
	)

	rootCmd := &cobra.Command{
		Use:     "repatch",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf(MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, MsgFlagDryRun)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newApplyCmd())
	rootCmd.AddCommand(newGenConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	topicsDir, err := fs.Sub(topicFiles, "topics")
	if err == nil {
		var renderer topics.Renderer = &topics.PlainRenderer{}
		if stdoutIsTerminal() {
			renderer = topics.NewGlamourRenderer()
		}
		if _, err := topics.InitializeWithOptions(rootCmd, topicsDir, topics.Options{Renderer: renderer}); err != nil {
			log.Warn().Err(err).Msg("Help topics unavailable")
		}
	}
	rootCmd.SetHelpCommandGroupID("misc")

	return rootCmd
}

func newApplyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "apply [root]",
		Short:   MsgApplyShort,
		Long:    MsgApplyLong,
		Example: MsgApplyExample,
		Args:    cobra.MaximumNArgs(1),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}

			// Persistent flags live on the root command
			dryRun, _ := cmd.Root().PersistentFlags().GetBool("dry-run")
			verbosity, _ := cmd.Root().PersistentFlags().GetCount("verbose")
			configPath, _ := cmd.Flags().GetString("config")
			diffFlag, _ := cmd.Flags().GetString("diff")
			formatFlag, _ := cmd.Flags().GetString("format")

			diffMode, err := report.ParseDiffMode(diffFlag)
			if err != nil {
				return err
			}
			format, err := ui.ParseFormat(formatFlag)
			if err != nil {
				return err
			}

			log.Info().
				Str("root", root).
				Bool("dry_run", dryRun).
				Str("config", configPath).
				Msg("Applying patches")

			renderer := ui.NewRenderer(format, cmd.OutOrStdout(), output.Options{
				Verbose: verbosity > 0,
				Diff:    diffMode,
			})

			if _, err := apply.Apply(apply.ApplyOptions{
				Root:       root,
				ConfigPath: configPath,
				DryRun:     dryRun,
				Verbose:    verbosity > 0,
				Renderer:   renderer,
			}); err != nil {
				return fmt.Errorf(MsgErrApply, err)
			}
			return nil
		},
	}

	cmd.Flags().StringP("config", "c", "", MsgFlagConfig)
	cmd.Flags().String("diff", report.DiffPositional.String(), MsgFlagDiff)
	cmd.Flags().String("format", ui.FormatAuto.String(), MsgFlagFormat)

	_ = cmd.RegisterFlagCompletionFunc("diff", cobra.FixedCompletions(
		[]string{report.DiffPositional.String(), report.DiffUnified.String()}, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(ui.FormatNames(), cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

func newGenConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		Example: MsgGenConfigExample,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			write, _ := cmd.Flags().GetBool("write")

			result, err := genconfig.GenConfig(genconfig.GenConfigOptions{
				Format: format,
				Root:   ".",
				Write:  write,
			})
			if err != nil {
				return fmt.Errorf(MsgErrGenConfig, err)
			}

			out := cmd.OutOrStdout()
			switch {
			case result.FileWritten != "":
				fmt.Fprintf(out, MsgConfigWritten, result.FileWritten)
			case result.AlreadyExisted:
				fmt.Fprintf(out, MsgConfigExists, "repatch."+result.Format)
			default:
				fmt.Fprint(out, result.ConfigContent)
			}
			return nil
		},
	}

	cmd.Flags().StringP("format", "f", "yaml", MsgFlagGenFormat)
	cmd.Flags().BoolP("write", "w", false, MsgFlagWrite)

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
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

func newManCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "man <dir>",
		Short:   MsgManShort,
		Args:    cobra.ExactArgs(1),
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf(MsgErrManPages, err)
			}

			header := &doc.GenManHeader{
				Title:   "REPATCH",
				Section: "1",
				Source:  "repatch " + version.Version,
				Manual:  "repatch manual",
			}
			if err := doc.GenManTree(cmd.Root(), header, dir); err != nil {
				return fmt.Errorf(MsgErrManPages, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), MsgManPagesWritten, dir)
			return nil
		},
	}
}
