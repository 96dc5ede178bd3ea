package output

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/vsinha/prodseq/pkg/application/dto"
)

// ErrUnsupportedFormat is returned for unknown output or input formats
var ErrUnsupportedFormat = errors.New("unsupported format")

const dateLayout = "2006-01-02"

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
	Out       io.Writer // defaults to stdout
}

// Generate renders result in the configured format. When OutputDir is set
// the rendering is also saved to a file there.
func Generate(result *dto.SequenceResult, config Config) error {
	out := config.Out
	if out == nil {
		out = os.Stdout
	}

	var render func(io.Writer, *dto.SequenceResult) error
	var filename string
	switch config.Format {
	case "", "text":
		render, filename = writeText, "sequence.txt"
	case "json":
		render, filename = writeJSON, "sequence.json"
	case "yaml":
		render, filename = writeYAML, "sequence.yaml"
	case "csv":
		render, filename = writeCSV, "sequence.csv"
	default:
		return fmt.Errorf("output format %q: %w", config.Format, ErrUnsupportedFormat)
	}

	if err := render(out, result); err != nil {
		return err
	}

	if config.OutputDir == "" {
		return nil
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(config.OutputDir, filename)
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	if err := render(file, result); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if config.Verbose {
		fmt.Fprintf(out, "💾 Results saved to: %s\n", path)
	}
	return nil
}

// writeText creates human-readable text output
func writeText(w io.Writer, result *dto.SequenceResult) error {
	fmt.Fprintf(w, "🎯 Production Sequence: %s / %s\n", result.Cell, result.Family)
	fmt.Fprintf(w, "==============================\n\n")

	fmt.Fprintf(w, "Day: %s\n", result.Today.Format(dateLayout))
	fmt.Fprintf(w, "State: %s\n", result.State)
	fmt.Fprintf(w, "Rate/Hour: %s\n", result.RatePerHour.String())
	fmt.Fprintf(w, "Parts Analyzed: %d\n\n", result.PartsAnalyzed)

	if !result.Critical() {
		fmt.Fprintf(w, "✅ No critical parts for this cell right now\n")
	} else {
		fmt.Fprintf(w, "%-4s %-15s %-10s %-10s %-12s %-10s %-20s\n",
			"#", "Part Number", "Containers", "Deficit", "Earliest", "Color", "Flags")
		fmt.Fprintf(w, "%-4s %-15s %-10s %-10s %-12s %-10s %-20s\n",
			"----", "---------------", "----------", "----------", "------------", "----------", "--------------------")

		for _, req := range result.Requirements {
			fmt.Fprintf(w, "%-4d %-15s %-10d %-10d %-12s %-10s %-20s\n",
				req.Rank,
				req.PartNumber,
				req.Containers,
				req.Deficit,
				req.EarliestDate.Format(dateLayout),
				req.Color,
				req.Flags)
		}
	}

	if len(result.Excluded) > 0 {
		fmt.Fprintf(w, "\n⚠️  Excluded Parts:\n")
		for _, excluded := range result.Excluded {
			fmt.Fprintf(w, "  %-15s %s\n", excluded.PartNumber, excluded.Reason)
		}
	}

	return nil
}

// writeJSON creates JSON output
func writeJSON(w io.Writer, result *dto.SequenceResult) error {
	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(jsonData))
	return err
}

// writeYAML creates YAML output
func writeYAML(w io.Writer, result *dto.SequenceResult) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(result); err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return encoder.Close()
}

// writeCSV writes one row per requirement
func writeCSV(w io.Writer, result *dto.SequenceResult) error {
	writer := csv.NewWriter(w)

	header := []string{
		"rank", "part_number", "containers", "deficit", "earliest_date",
		"color", "grouped_across_days", "same_day_contention", "sequence_locked", "pull_ahead",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, req := range result.Requirements {
		row := []string{
			strconv.Itoa(req.Rank),
			string(req.PartNumber),
			strconv.FormatInt(req.Containers, 10),
			strconv.FormatInt(int64(req.Deficit), 10),
			req.EarliestDate.Format(dateLayout),
			req.Color.String(),
			strconv.FormatBool(req.Flags.GroupedAcrossDays),
			strconv.FormatBool(req.Flags.SameDayContention),
			strconv.FormatBool(req.Flags.SequenceLocked),
			strconv.FormatBool(req.Flags.PullAhead),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
