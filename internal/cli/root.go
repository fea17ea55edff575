package cli

import (
	"github.com/spf13/cobra"

	"github.com/subtitlekit/subkit/internal/logging"
)

var (
	verbose bool
	logger  *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "subkit",
	Short: "Convert subtitles between text and bitmap formats",
	Long: `Subkit is a CLI tool that converts subtitle files between formats.

It reads SRT, WebVTT, ASS/SSA, LRC, SBV, TTML and Blu-ray PGS (.sup)
subtitles into one document model and writes them back out in any
supported output format.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.NewLogger(verbose)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
}
