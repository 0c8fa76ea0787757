package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"astrotrade/internal/report"
	"astrotrade/internal/types"
)

func generateCmd(a *app) *cobra.Command {
	var (
		pf     profileFlags
		start  string
		end    string
		format string
		save   bool
		stats  bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the trading calendar for a date range",
		Example: `  astrotrade generate -p Vijay --start 2025-09-01 --end 2025-09-30
  astrotrade generate --dob 1990-05-15 --tob 14:30 --lat 31.1 --lon 77.17 -f csv --save`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := pf.resolve(a)
			if err != nil {
				return err
			}
			first, last, err := a.svc.Range(start, end, nowFunc())
			if err != nil {
				return err
			}
			records, _, err := a.svc.Calendar(cmd.Context(), p, first, last)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if save {
				exp, err := report.ExporterFor(format)
				if err != nil {
					return err
				}
				path, err := report.Writer{Dir: a.cfg.ExportDir}.Write(exp, p.Name, first, last, records)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "wrote %s\n", path)
				return nil
			}

			switch strings.ToLower(format) {
			case "table":
				printTable(out, records)
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(records); err != nil {
					return err
				}
			default:
				exp, err := report.ExporterFor(format)
				if err != nil {
					return err
				}
				if err := exp.Export(out, "AstroTrade Calendar - "+p.Name, records); err != nil {
					return err
				}
			}
			if stats {
				printStats(out, report.Summarize(records))
			}
			return nil
		},
	}
	pf.register(cmd)
	cmd.Flags().StringVar(&start, "start", "", "first date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&end, "end", "", "last date YYYY-MM-DD (default start + default_days - 1)")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "table, json, csv or ics")
	cmd.Flags().BoolVar(&save, "save", false, "write the export under export_dir instead of stdout")
	cmd.Flags().BoolVar(&stats, "stats", false, "print summary statistics after the calendar")
	return cmd
}

func printTable(w io.Writer, records []types.DayRecord) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tDAY\tNAKSHATRA\tNAVATARA\tCHANGE\t\tVERDICT\tREASON")
	for _, r := range records {
		marker := ""
		if r.ChangeDuringMarket {
			marker = "🔺"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s (%d)\t%s\t%s\t%s\t%s %s\t%s\n",
			r.DateString(), r.Weekday[:3], r.Nakshatra, r.Pada, r.Navatara,
			r.ChangeTime, marker, report.Emoji(r.Recommendation), r.Recommendation, r.ReasonText())
	}
	tw.Flush()
}

func printStats(w io.Writer, s report.Stats) {
	fmt.Fprintf(w, "\nTotal days: %d (trading %d)\n", s.Total, s.TradingDays())
	for _, rec := range types.Recommendations {
		fmt.Fprintf(w, "  %-7s %3d  %5.1f%%\n", rec, s.Counts[rec], s.Percentages[rec])
	}
	fmt.Fprintf(w, "Nakshatra changes during market hours: %d\n", s.MarketHourTransitions)
}
