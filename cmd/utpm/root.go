// Package utpm builds the utpm command line.
package utpm

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/typst-community/utpm/internal/version"
	"github.com/typst-community/utpm/pkg/commands"
	"github.com/typst-community/utpm/pkg/config"
	"github.com/typst-community/utpm/pkg/errors"
	"github.com/typst-community/utpm/pkg/logging"
	"github.com/typst-community/utpm/pkg/paths"
	"github.com/typst-community/utpm/pkg/types"
	"github.com/typst-community/utpm/pkg/ui"
	"github.com/typst-community/utpm/pkg/ui/styles"
	"github.com/typst-community/utpm/pkg/ui/text"
)

// globals holds the persistent flags shared by every command.
type globals struct {
	verbosity  int
	dryRun     bool
	format     string
	configFile string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	rootCmd, _ := newRootCmd()
	return rootCmd
}

// Execute runs the command line and returns the process exit code. Errors are
// written in the selected output format: styled on stderr for text, as a document on
// stdout otherwise.
func Execute() int {
	rootCmd, g := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		g.renderError(rootCmd, err)
		return 1
	}
	return 0
}

func newRootCmd() (*cobra.Command, *globals) {
	initTemplateFormatting()

	g := &globals{}

	rootCmd := &cobra.Command{
		Use:     "utpm",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.String(),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetupLogger(g.verbosity)
			format, err := ui.ParseFormat(g.format)
			if err != nil {
				return err
			}
			styles.SetEnabled(format == ui.FormatText && ui.ColorSupported(os.Stdout))
			logging.LogCommand(cmd.CommandPath(), args)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&g.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVar(&g.dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().StringVarP(&g.format, "output-format", "o", "text", MsgFlagOutput)
	rootCmd.PersistentFlags().StringVar(&g.configFile, "config", "", MsgFlagConfig)
	_ = rootCmd.RegisterFlagCompletionFunc("output-format", cobra.FixedCompletions(ui.Formats, cobra.ShellCompDirectiveNoFileComp))

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newWorkspaceCmd(g))
	rootCmd.AddCommand(newPackagesCmd(g))
	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newGuideCmd(g))
	rootCmd.AddCommand(newGenConfigCmd(g))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd, g
}

// env loads the configuration and builds the command environment.
func (g *globals) env() (*types.Env, error) {
	cfg, err := config.Load(config.LoadOptions{ConfigFile: g.configFile})
	if err != nil {
		return nil, err
	}
	if cfg.UI.StylesFile != "" {
		if err := styles.LoadFile(paths.ExpandHome(cfg.UI.StylesFile)); err != nil {
			return nil, err
		}
	}
	return commands.NewEnv(cfg, g.dryRun)
}

// render writes result in the selected output format.
func (g *globals) render(cmd *cobra.Command, result interface{}) error {
	format, err := ui.ParseFormat(g.format)
	if err != nil {
		return err
	}
	renderer, err := ui.NewRenderer(format, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return renderer.RenderResult(result)
}

func (g *globals) renderError(cmd *cobra.Command, err error) {
	format, perr := ui.ParseFormat(g.format)
	if perr != nil || format == ui.FormatText {
		_ = text.New(cmd.ErrOrStderr()).RenderError(err)
		return
	}
	renderer, rerr := ui.NewRenderer(format, cmd.OutOrStdout())
	if rerr != nil {
		_ = text.New(cmd.ErrOrStderr()).RenderError(err)
		return
	}
	_ = renderer.RenderError(err)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "utpm version %s\n", version.Version)
			fmt.Fprintf(out, "  commit: %s\n", version.Commit)
			fmt.Fprintf(out, "  built:  %s\n", version.Date)
		},
	}
}
