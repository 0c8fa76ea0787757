package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"astrotrade/internal/metrics"
	"astrotrade/internal/service"
	"astrotrade/internal/store"
	"astrotrade/internal/types"
)

// app carries what every subcommand needs once the root has run.
type app struct {
	configFlag string
	cfg        *store.Config
	svc        *service.Service
	metrics    *metrics.Registry
}

func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "astrotrade",
		Short:         "Astrological trading calendar for NSE sessions",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initializeSystem(); err != nil {
				return err
			}
			cfg, err := loadConfig(cmd.Context(), a.configFlag)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.metrics = metrics.NewRegistry()
			a.svc, err = initializeService(cmd.Context(), cfg, a.metrics)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			shutdown(context.Background())
		},
	}
	root.PersistentFlags().StringVarP(&a.configFlag, "config", "c", "", "config file (default $ASTROTRADE_CONFIG or config.yaml)")

	root.AddCommand(
		generateCmd(a),
		todayCmd(a),
		chartCmd(a),
		serveCmd(a),
		holidaysCmd(a),
	)
	return root
}

// profileFlags selects a preset or describes an ad-hoc birth profile.
type profileFlags struct {
	preset string
	name   string
	dob    string
	tob    string
	lat    float64
	lon    float64
	lagna  string
}

func (f *profileFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.preset, "profile", "p", "", "profile preset from config")
	cmd.Flags().StringVar(&f.name, "name", "custom", "name for an ad-hoc profile")
	cmd.Flags().StringVar(&f.dob, "dob", "", "birth date YYYY-MM-DD")
	cmd.Flags().StringVar(&f.tob, "tob", "", "birth time HH:MM (civil zone)")
	cmd.Flags().Float64Var(&f.lat, "lat", 0, "birth latitude")
	cmd.Flags().Float64Var(&f.lon, "lon", 0, "birth longitude")
	cmd.Flags().StringVar(&f.lagna, "lagna", "", "declared lagna sign; computed when empty")
}

func (f *profileFlags) resolve(a *app) (types.BirthProfile, error) {
	if f.preset != "" {
		return a.svc.Profile(f.preset)
	}
	if f.dob == "" {
		names := a.cfg.ProfileNames()
		if len(names) == 1 {
			return a.svc.Profile(names[0])
		}
		return types.BirthProfile{}, fmt.Errorf("--profile or --dob/--tob/--lat/--lon is required (presets: %v)", names)
	}
	return types.ParseBirthProfile(f.name, f.dob, f.tob, f.lat, f.lon, f.lagna)
}
