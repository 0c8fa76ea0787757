package service

import (
	"fmt"

	"astrotrade/internal/ephemeris"
	"astrotrade/internal/holidays"
	"astrotrade/internal/metrics"
	"astrotrade/internal/store"
)

// NewFromConfig wires the real ephemeris and the configured holiday file.
func NewFromConfig(cfg *store.Config, m *metrics.Registry) (*Service, error) {
	hol := holidays.Empty()
	if cfg.HolidaysPath != "" {
		loaded, err := holidays.Load(cfg.HolidaysPath)
		if err != nil {
			return nil, fmt.Errorf("load holidays: %w", err)
		}
		hol = loaded
	}
	return New(cfg, ephemeris.New(), hol, m)
}
