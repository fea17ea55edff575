package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/subtitlekit/subkit/internal/pgs"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [sup_file]",
	Short: "List the segment structure of a PGS subtitle stream",
	Long: `List the raw segments of a Blu-ray PGS (.sup) subtitle stream:
offset, presentation timestamp, segment type and payload size.

Examples:
  subkit inspect movie.sup
  subkit inspect movie.sup --events`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().
		Bool("events", false, "Show decoded subtitle events instead of raw segments")
}

func runInspect(cmd *cobra.Command, args []string) error {
	path := args[0]
	showEvents, _ := cmd.Flags().GetBool("events")

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read SUP file: %w", err)
	}

	if showEvents {
		sub := pgs.Decode(data)
		logger.Infow("Decoded PGS stream",
			"file", path,
			"events", len(sub.Entries),
		)
		for _, e := range sub.Entries {
			img := e.Image
			fmt.Printf("#%-4d %12s --> %-12s  %4dx%-4d at (%d,%d)  composition %d window %d\n",
				e.Index,
				formatClock(e.StartTime), formatClock(e.EndTime),
				img.Width, img.Height, img.X, img.Y,
				img.CompositionNumber, img.WindowID)
		}
		return nil
	}

	segments := pgs.Segments(data)
	logger.Infow("Parsed PGS stream",
		"file", path,
		"segments", len(segments),
	)
	for _, s := range segments {
		fmt.Printf("%08x  pts=%-12s %s  %d bytes\n",
			s.Offset, formatClock(ptsToTime(s.PTS)), s.Type, s.Size)
	}
	return nil
}

func ptsToTime(pts uint32) time.Duration {
	return time.Duration(pts) * time.Second / 90000
}

func formatClock(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	millis := int(d.Milliseconds()) % 1000

	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, seconds, millis)
}
