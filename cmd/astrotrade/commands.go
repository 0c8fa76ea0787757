package main

import (
	"encoding/json"
	"fmt"
	"net"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"astrotrade/internal/api"
	"astrotrade/internal/logger"
	"astrotrade/internal/report"
	"astrotrade/internal/scheduler"
	"astrotrade/internal/types"
)

var nowFunc = time.Now

func todayCmd(a *app) *cobra.Command {
	var pf profileFlags
	cmd := &cobra.Command{
		Use:   "today",
		Short: "Print today's verdict as a chat message",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := pf.resolve(a)
			if err != nil {
				return err
			}
			day := types.CivilDate(nowFunc(), a.svc.Location())
			records, _, err := a.svc.Calendar(cmd.Context(), p, day, day)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), report.Message(records[0]))
			return nil
		},
	}
	pf.register(cmd)
	return cmd
}

func chartCmd(a *app) *cobra.Command {
	var pf profileFlags
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Show the natal nakshatra, moon sign and lagna of a profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := pf.resolve(a)
			if err != nil {
				return err
			}
			chart, err := a.svc.Chart(p)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(chart)
		},
	}
	pf.register(cmd)
	return cmd
}

func holidaysCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "holidays",
		Short: "List the loaded exchange holidays",
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, row := range a.svc.Holidays().Rows() {
				fmt.Fprintf(tw, "%s\t%s\n", row.Date, row.Description)
			}
			return tw.Flush()
		},
	}
}

func serveCmd(a *app) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and, when enabled, the daily brief scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if port == 0 {
				port = a.cfg.Server.Port
			}
			addr := net.JoinHostPort("", strconv.Itoa(port))
			timeout := time.Duration(a.cfg.Server.ReadTimeoutSeconds) * time.Second

			var sched *scheduler.Scheduler
			if a.cfg.Scheduler.Enabled {
				sched = scheduler.New(a.svc.Location())
				job := &scheduler.DailyBrief{
					Svc:     a.svc,
					Writer:  report.Writer{Dir: a.cfg.ExportDir},
					Profile: a.cfg.Scheduler.Profile,
					Spec:    a.cfg.Scheduler.Cron,
					Days:    a.cfg.Scheduler.Days,
					Formats: a.cfg.Scheduler.Formats,
				}
				if err := sched.AddJob(job); err != nil {
					return err
				}
				logger.Info(ctx, "Daily brief scheduled", "job", job.Name(), "next", sched.Next(job.Name()))
			}

			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return api.NewServer(a.svc).Run(ctx, addr, timeout)
			})
			if sched != nil {
				g.Go(func() error {
					sched.Start(ctx)
					return nil
				})
			}
			return g.Wait()
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "listen port (default server.port)")
	return cmd
}
