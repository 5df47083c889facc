package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/muesli/termenv"

	"github.com/aretw0/synthaser"
	"github.com/aretw0/synthaser/internal/presentation/tui"
)

// Output formats accepted by WriteReport.
const (
	FormatTable    = "table"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// OutputOptions controls how a report is written.
type OutputOptions struct {
	Format string
	// Profile selects terminal styling; termenv.Ascii writes plain text.
	Profile termenv.Profile
	// Domains lists every resolved domain under each sequence in table output.
	Domains  bool
	WordWrap int
}

// WriteReport renders report to w.
func WriteReport(w io.Writer, report *synthaser.Report, opts OutputOptions) error {
	switch opts.Format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case FormatMarkdown:
		md := tui.Summary(report.RunID, report.Sequences, report.Index, report.Hierarchy)
		if opts.Profile == termenv.Ascii {
			_, err := io.WriteString(w, md)
			return err
		}
		out, err := tui.NewRenderer(opts.WordWrap)(md)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err
	case FormatTable, "":
		return writeTable(w, report, opts)
	}
	return fmt.Errorf("unknown output format %q", opts.Format)
}

func writeTable(w io.Writer, report *synthaser.Report, opts OutputOptions) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	p := opts.Profile
	fmt.Fprintf(tw, "%s\t%s\t%s\n", p.String("SEQUENCE").Bold(), p.String("CLASSIFICATION").Bold(), p.String("ARCHITECTURE").Bold())
	for i := range report.Sequences {
		s := &report.Sequences[i]
		labels := make([]string, len(s.LabelPaths))
		for j, lp := range s.LabelPaths {
			labels[j] = lp.String()
		}
		class := strings.Join(labels, "; ")
		if class == "" {
			class = "-"
		}
		arch := tui.Architecture(p, s)
		if arch == "" {
			arch = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", s.ID, class, arch)
		if opts.Domains {
			for _, d := range s.Domains {
				fmt.Fprintf(tw, "\t  %s\t%s %d-%d\n", d.Type, d.Family, d.Start, d.End)
			}
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d/%d classified (run %s)\n", report.Classified(), len(report.Sequences), report.RunID)
	return err
}
