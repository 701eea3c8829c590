package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgabbard/bue-common-open/internal/logging"
	"github.com/rgabbard/bue-common-open/internal/ui/pretty"
	"github.com/rgabbard/bue-common-open/pkg/evaluation"
	"github.com/rgabbard/bue-common-open/pkg/files"
	"github.com/rgabbard/bue-common-open/pkg/params"
)

type scoreFlags struct {
	name      string
	outputDir string
	samples   int
	seed      uint64
}

func newScoreCommand() *cobra.Command {
	flags := &scoreFlags{}

	cmd := &cobra.Command{
		Use:   "score <counts-file>",
		Short: "Bootstrap-score per-document precision/recall counts",
		Long:  scoreLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.name, "name", "", "report name (default: counts file base name)")
	cmd.Flags().StringVar(&flags.outputDir, "output-dir", ".", "directory for report files")
	cmd.Flags().IntVar(&flags.samples, "samples", evaluation.DefaultBootstrapSamples,
		"number of bootstrap resamples")
	cmd.Flags().Uint64Var(&flags.seed, "seed", 0, "seed for the resampling RNG")

	return cmd
}

const scoreLongDescription = `Score annotation system output with bootstrapped confidence intervals.

The counts file is tab-separated with one line per document and category:

  docID  category  truePositives  falsePositives  falseNegatives

Lines sharing a docID form one observation; resampling draws whole
documents with replacement. Four report files are written next to each
other: a percentile chart (.bootstrapped.txt), percentile and median CSVs,
and a raw sample dump. Defaults may also come from a parameter file given
with --params, under the score namespace (score.samples, score.seed,
score.outputDir).

Examples:
  bue score counts.tsv                       # Reports in the current directory
  bue score counts.tsv --samples 5000        # More resamples
  bue score counts.tsv --params exp.params   # Defaults from a parameter file`

func runScore(cmd *cobra.Command, path string, flags *scoreFlags) error {
	logger := logging.FromContext(cmd.Context())

	if err := applyScoreParams(cmd, flags); err != nil {
		return err
	}
	if flags.name == "" {
		base := filepath.Base(path)
		flags.name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	observations, err := loadCountsFile(path)
	if err != nil {
		return err
	}

	aggregator := evaluation.NewBootstrapAggregator(flags.name, flags.outputDir,
		evaluation.BootstrapConfig{Samples: flags.samples, Seed: flags.seed})
	totals := make(map[string]evaluation.FMeasureCounts)
	for _, observation := range observations {
		aggregator.Observe(observation)
		for category, counts := range observation {
			totals[category] = totals[category].Add(counts)
		}
	}

	if err := aggregator.Finish(); err != nil {
		return err
	}

	logger.Debug("scored counts file",
		logging.FieldInput, path,
		logging.FieldOutput, flags.outputDir,
		logging.FieldSamples, flags.samples)

	colorMode, _ := cmd.Flags().GetString("color")
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, os.Stdout))
	fmt.Fprint(cmd.OutOrStdout(),
		pretty.NewScoreTableFormatter(styles).FormatTable(flags.name, scoreRows(totals)))
	return nil
}

// applyScoreParams fills in score settings from the parameter file for any
// flag the user did not set explicitly.
func applyScoreParams(cmd *cobra.Command, flags *scoreFlags) error {
	paramsPath, _ := cmd.Flags().GetString("params")
	if paramsPath == "" {
		return nil
	}

	var p *params.Params
	var err error
	switch filepath.Ext(paramsPath) {
	case ".yaml", ".yml":
		p, err = params.LoadYAMLFile(paramsPath)
	default:
		p, err = params.LoadFile(paramsPath)
	}
	if err != nil {
		return fmt.Errorf("load parameters: %w", err)
	}
	scoreParams := p.CopyNamespace("score")

	if !cmd.Flags().Changed("samples") && scoreParams.IsPresent("samples") {
		samples, err := scoreParams.GetInteger("samples")
		if err != nil {
			return err
		}
		flags.samples = samples
	}
	if !cmd.Flags().Changed("seed") && scoreParams.IsPresent("seed") {
		seed, err := scoreParams.GetInteger("seed")
		if err != nil {
			return err
		}
		flags.seed = uint64(seed)
	}
	if !cmd.Flags().Changed("output-dir") && scoreParams.IsPresent("outputDir") {
		flags.outputDir = scoreParams.GetStringOr("outputDir", flags.outputDir)
	}
	if !cmd.Flags().Changed("name") && scoreParams.IsPresent("name") {
		flags.name = scoreParams.GetStringOr("name", flags.name)
	}
	return nil
}

// loadCountsFile parses the tab-separated counts file into per-document
// observations, preserving document order.
func loadCountsFile(path string) ([]map[string]evaluation.FMeasureCounts, error) {
	reader, err := files.OptionallyCompressedReader(path)
	if err != nil {
		return nil, fmt.Errorf("open counts file: %w", err)
	}
	defer reader.Close()

	byDoc := make(map[string]map[string]evaluation.FMeasureCounts)
	var docOrder []string

	scanner := bufio.NewScanner(reader)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) != 5 {
			return nil, fmt.Errorf("%s:%d: want 5 tab-separated fields, got %d", path, lineNo, len(fields))
		}

		docID, category := fields[0], fields[1]
		var values [3]float64
		for i, field := range fields[2:] {
			values[i], err = strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: bad count %q: %w", path, lineNo, field, err)
			}
		}

		observation, ok := byDoc[docID]
		if !ok {
			observation = make(map[string]evaluation.FMeasureCounts)
			byDoc[docID] = observation
			docOrder = append(docOrder, docID)
		}
		observation[category] = observation[category].Add(evaluation.FMeasureCounts{
			TruePositives:  values[0],
			FalsePositives: values[1],
			FalseNegatives: values[2],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read counts file: %w", err)
	}
	if len(byDoc) == 0 {
		return nil, fmt.Errorf("%s: no count lines found", path)
	}

	observations := make([]map[string]evaluation.FMeasureCounts, 0, len(docOrder))
	for _, docID := range docOrder {
		observations = append(observations, byDoc[docID])
	}
	return observations, nil
}

// scoreRows converts aggregate counts into sorted display rows.
func scoreRows(totals map[string]evaluation.FMeasureCounts) []pretty.ScoreRow {
	categories := make([]string, 0, len(totals))
	for category := range totals {
		categories = append(categories, category)
	}
	slices.Sort(categories)

	rows := make([]pretty.ScoreRow, 0, len(categories))
	for _, category := range categories {
		counts := totals[category]
		rows = append(rows, pretty.ScoreRow{
			Category:  category,
			Precision: counts.Precision(),
			Recall:    counts.Recall(),
			F1:        counts.F1(),
		})
	}
	return rows
}
