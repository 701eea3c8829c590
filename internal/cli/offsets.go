package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rgabbard/bue-common-open/internal/logging"
	"github.com/rgabbard/bue-common-open/internal/ui/pretty"
	"github.com/rgabbard/bue-common-open/pkg/files"
	"github.com/rgabbard/bue-common-open/pkg/located"
)

type offsetsFlags struct {
	format      string
	edtAsChar   bool
	byteOffsets bool
	startOffset int
}

func newOffsetsCommand() *cobra.Command {
	flags := &offsetsFlags{}

	cmd := &cobra.Command{
		Use:   "offsets <file>",
		Short: "Show the offset region map of a document",
		Long:  offsetsLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOffsets(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "table", "output format: table, json")
	cmd.Flags().BoolVar(&flags.edtAsChar, "edt-as-char", false,
		"count EDT offsets like char offsets instead of skipping markup")
	cmd.Flags().BoolVar(&flags.byteOffsets, "byte-offsets", false, "also track byte offsets")
	cmd.Flags().IntVar(&flags.startOffset, "start-offset", 0,
		"char and EDT offset of the document's first character")

	return cmd
}

const offsetsLongDescription = `Show how a document's characters map to byte, code point, and EDT offsets.

The document is split into regions of uniform offset behavior. EDT offsets
skip angle-bracket markup spans and carriage returns; regions covering
skipped text are marked in the table. Files ending in .gz or .xz are
decompressed transparently.

Examples:
  bue offsets doc.sgml                  # Region table for a markup document
  bue offsets doc.sgml --format json    # Machine-readable region map
  bue offsets doc.txt --edt-as-char     # Plain text with no markup semantics
  bue offsets doc.sgml --byte-offsets   # Include byte offset columns`

func runOffsets(cmd *cobra.Command, path string, flags *offsetsFlags) error {
	logger := logging.FromContext(cmd.Context())

	reader, err := files.OptionallyCompressedReader(path)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer reader.Close()

	content, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	initial := located.GroupFromMatchingCharAndEDT(flags.startOffset)
	if flags.byteOffsets {
		initial = located.NewGroupWithByte(0,
			located.CharOffset(flags.startOffset), located.EDTOffset(flags.startOffset))
	}

	var ls *located.LocatedString
	if flags.edtAsChar {
		ls, err = located.FromTextEDTMatchingChar(string(content), initial)
	} else {
		ls, err = located.FromText(string(content), initial)
	}
	if err != nil {
		return fmt.Errorf("map offsets of %s: %w", path, err)
	}

	logger.Debug("mapped document",
		logging.FieldPath, path,
		logging.FieldLength, ls.Length(),
		logging.FieldRegions, len(ls.Regions()))

	out := cmd.OutOrStdout()
	switch flags.format {
	case "json":
		encoded, err := json.MarshalIndent(ls, "", "  ")
		if err != nil {
			return fmt.Errorf("encode region map: %w", err)
		}
		fmt.Fprintln(out, string(encoded))
	case "table":
		colorMode, _ := cmd.Flags().GetString("color")
		styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, os.Stdout))
		formatter := pretty.NewRegionTableFormatter(styles, pretty.TerminalWidth(os.Stdout, 100))
		fmt.Fprint(out, formatter.FormatTable(path, ls))
	default:
		return fmt.Errorf("unknown format %q", flags.format)
	}

	return nil
}
