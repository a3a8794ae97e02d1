// Package cli implements the imgedit command line: one subcommand per editor
// operation plus serve, which runs the MCP server on stdio.
package cli

import (
	"encoding/json"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/ironsheep/image-edit-mcp/internal/config"
	"github.com/ironsheep/image-edit-mcp/internal/editor"
	"github.com/ironsheep/image-edit-mcp/internal/server"
)

// LogLevelEnv enables debug logging when set to "debug".
const LogLevelEnv = "IMAGE_EDIT_LOG_LEVEL"

// app carries state built by the root command's pre-run hook.
type app struct {
	ed *editor.Editor
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	configFlag, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(config.Path(configFlag))
	if err != nil {
		return err
	}

	var opts []editor.Option
	debug, _ := cmd.Flags().GetBool("debug")
	if debug || os.Getenv(LogLevelEnv) == "debug" {
		opts = append(opts, editor.WithLogger(log.New(cmd.ErrOrStderr(), "", log.Ldate|log.Ltime|log.Lshortfile)))
	}
	a.ed = editor.New(cfg, opts...)
	return nil
}

// NewCLI builds the root command.
func NewCLI() *cobra.Command {
	cobra.EnableCommandSorting = false

	a := &app{}
	rootCmd := &cobra.Command{
		Use:               "imgedit",
		Short:             "Edit raster images (PNG, JPEG, GIF)",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		Run: func(cmd *cobra.Command, args []string) {
			if version, _ := cmd.Flags().GetBool("version"); version {
				cmd.Printf("imgedit %s\n", server.Version)
				return
			}

			cmd.Print(cmd.UsageString())
		},
	}

	rootCmd.Flags().BoolP("version", "v", false, "Show version information")
	rootCmd.PersistentFlags().String("config", "", "YAML config file (default $"+config.EnvPath+")")
	rootCmd.PersistentFlags().Bool("debug", false, "Log each operation to stderr")

	rootCmd.AddCommand(
		a.newConvertCmd(),
		a.newFlipCmd(),
		a.newRotateCmd(),
		a.newFilterCmd(),
		a.newResizeCmd(),
		a.newResizeWidthCmd(),
		a.newResizeHeightCmd(),
		a.newShrinkFitCmd(),
		a.newShrinkSquareCmd(),
		a.newTrimCmd(),
		a.newTrimSquareCmd(),
		a.newCropCmd(),
		a.newSquareCropCmd(),
		a.newWatermarkCmd(),
		a.newTextCmd(),
		a.newColorAtCmd(),
		a.newTrimBoxCmd(),
		a.newInfoCmd(),
		a.newServeCmd(),
	)

	return rootCmd
}

// printJSON writes v as indented JSON to the command's output.
func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server over stdin/stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return server.New(a.ed).Serve(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
