package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/subtitlekit/subkit/internal/pgs"
	"github.com/subtitlekit/subkit/internal/subtitle"
)

var convertCmd = &cobra.Command{
	Use:   "convert [subtitle_file]",
	Short: "Convert a subtitle file to another format",
	Long: `Convert a subtitle file to another format.

Input formats: srt, vtt, ass/ssa, lrc, sbv, ttml, sup (Blu-ray PGS).
Output formats: srt, vtt, ass, lrc, sup.

Bitmap subtitles (.sup) carry no text; converting them to a text format
keeps the timing but emits empty cues unless the entries carry text.

Examples:
  subkit convert movie.srt -f vtt
  subkit convert movie.sup -o movie.srt
  subkit convert lyrics.lrc --format srt`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().
		StringP("format", "f", "", "Output format (srt, vtt, ass, lrc, sup)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	format, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")

	if format == "" && outputPath == "" {
		return fmt.Errorf("either --format or --output must be given")
	}

	outputFormat := subtitle.Format(strings.ToLower(format))
	if format == "" {
		outputFormat = subtitle.GetFormatFromExtension(outputPath)
	}
	if outputPath == "" {
		ext := filepath.Ext(inputPath)
		outputPath = strings.TrimSuffix(inputPath, ext) +
			subtitle.GetExtensionForFormat(outputFormat)
	}

	file, err := openSubtitle(inputPath)
	if err != nil {
		return err
	}
	sub := file.Subtitle()

	logger.Infow("Converting subtitle",
		"input", inputPath,
		"output", outputPath,
		"from", file.Format(),
		"to", outputFormat,
		"entries", len(sub.Entries),
	)

	if outputFormat == subtitle.FormatSUP {
		data, err := pgs.Encode(sub)
		if err != nil {
			return fmt.Errorf("PGS encoding failed: %w", err)
		}
		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			return fmt.Errorf("conversion failed: %w", err)
		}
	} else {
		writer, err := subtitle.NewWriter(outputFormat)
		if err != nil {
			return err
		}
		if err := writer.Write(sub, outputPath); err != nil {
			return fmt.Errorf("conversion failed: %w", err)
		}
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Subtitle converted successfully: %s\n", absOutput)

	return nil
}

// opens either a text subtitle or a PGS stream depending on extension
func openSubtitle(path string) (subtitle.File, error) {
	if strings.EqualFold(filepath.Ext(path), ".sup") {
		return pgs.Open(path)
	}
	return subtitle.Open(path)
}
