package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/vsinha/prodseq/pkg/domain/services"
	"github.com/vsinha/prodseq/pkg/infrastructure/config"
)

// AuditIssue is one data-quality finding
type AuditIssue struct {
	Table  string
	Part   string
	Column string
	Value  string
	Reason string
}

// AuditReport collects what the silent-zero pipeline would otherwise hide
type AuditReport struct {
	Issues            []AuditIssue
	SkippedRows       []int
	DuplicateParts    []string
	IgnoredDuplicates int
	UncoveredParts    []string
	UnknownParts      []string
}

// Clean reports whether the audit found nothing
func (r *AuditReport) Clean() bool {
	return len(r.Issues) == 0 &&
		len(r.SkippedRows) == 0 &&
		len(r.DuplicateParts) == 0 &&
		r.IgnoredDuplicates == 0 &&
		len(r.UncoveredParts) == 0 &&
		len(r.UnknownParts) == 0
}

// AuditCommand strictly re-checks the input tables for data-quality problems
type AuditCommand struct {
	config       *config.Config
	out          io.Writer
	failOnIssues bool
}

// NewAuditCommand creates an audit command
func NewAuditCommand(cfg *config.Config, out io.Writer, failOnIssues bool) *AuditCommand {
	return &AuditCommand{config: cfg, out: out, failOnIssues: failOnIssues}
}

// Execute runs the audit and prints its report
func (c *AuditCommand) Execute(ctx context.Context) (*AuditReport, error) {
	data, err := loadDataset(ctx, c.config)
	if err != nil {
		return nil, err
	}

	report := &AuditReport{
		SkippedRows:       data.catalogTable.SkippedRows,
		IgnoredDuplicates: data.demand.IgnoredDuplicates(),
	}
	for _, pn := range data.catalogTable.DuplicateParts {
		report.DuplicateParts = append(report.DuplicateParts, string(pn))
	}

	schema := data.demandTable.Schema
	for _, key := range schema.DateKeys {
		if _, err := time.Parse(schema.DateLayout, key); err != nil {
			report.Issues = append(report.Issues, AuditIssue{
				Table:  "demand",
				Column: key,
				Reason: fmt.Sprintf("date column does not match layout %q", schema.DateLayout),
			})
		}
	}

	for _, record := range data.demandTable.Records {
		if !record.InScope(c.config.DemandType) {
			continue
		}
		for _, key := range schema.DateKeys {
			raw := record.Cells[key]
			if _, err := services.ParseQuantityStrict(raw); err != nil {
				report.Issues = append(report.Issues, AuditIssue{
					Table:  "demand",
					Part:   string(record.PartNumber),
					Column: key,
					Value:  raw,
					Reason: err.Error(),
				})
			}
		}
	}

	parts, err := data.catalog.GetAllParts()
	if err != nil {
		return nil, err
	}
	coverage := services.NewSchemaValidator().ValidateDemandCoverage(parts, data.demandTable.Records, c.config.DemandType)
	for _, pn := range coverage.UncoveredParts {
		report.UncoveredParts = append(report.UncoveredParts, string(pn))
	}
	for _, pn := range coverage.UnknownParts {
		report.UnknownParts = append(report.UnknownParts, string(pn))
	}

	c.print(report)

	if c.failOnIssues && !report.Clean() {
		return report, fmt.Errorf("audit found data-quality issues (%d value issues)", len(report.Issues))
	}
	return report, nil
}

func (c *AuditCommand) print(report *AuditReport) {
	if report.Clean() {
		fmt.Fprintf(c.out, "✅ No data-quality issues found\n")
		return
	}

	if len(report.Issues) > 0 {
		fmt.Fprintf(c.out, "⚠️  Value Issues: %d\n", len(report.Issues))
		fmt.Fprintf(c.out, "%-8s %-15s %-12s %-12s %s\n", "Table", "Part", "Column", "Value", "Reason")
		for _, issue := range report.Issues {
			fmt.Fprintf(c.out, "%-8s %-15s %-12s %-12q %s\n",
				issue.Table, issue.Part, issue.Column, issue.Value, issue.Reason)
		}
		fmt.Fprintln(c.out)
	}
	if len(report.SkippedRows) > 0 {
		fmt.Fprintf(c.out, "Catalog rows without cell or family: %v\n", report.SkippedRows)
	}
	if len(report.DuplicateParts) > 0 {
		fmt.Fprintf(c.out, "Duplicate catalog parts: %v\n", report.DuplicateParts)
	}
	if report.IgnoredDuplicates > 0 {
		fmt.Fprintf(c.out, "Duplicate demand rows ignored: %d\n", report.IgnoredDuplicates)
	}
	if len(report.UncoveredParts) > 0 {
		fmt.Fprintf(c.out, "Catalog parts without demand: %v\n", report.UncoveredParts)
	}
	if len(report.UnknownParts) > 0 {
		fmt.Fprintf(c.out, "Demand parts missing from catalog: %v\n", report.UnknownParts)
	}
}

func newAuditCommand(a *app) *cobra.Command {
	var failOnIssues bool

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Report malformed values and coverage gaps in the input tables",
		Long: `audit parses every in-scope demand cell strictly instead of reading
malformed values as zero, and cross-checks the catalog against the demand table.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := NewAuditCommand(a.config, a.out(cmd), failOnIssues).Execute(cmd.Context())
			return err
		},
	}
	cmd.Flags().BoolVar(&failOnIssues, "fail-on-issues", false, "exit with an error when anything is reported")
	return cmd
}
