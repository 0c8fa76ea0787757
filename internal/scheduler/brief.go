package scheduler

import (
	"context"
	"fmt"
	"time"

	"astrotrade/internal/logger"
	"astrotrade/internal/report"
	"astrotrade/internal/service"
	"astrotrade/internal/types"
)

// DailyBrief generates the upcoming days for one profile, writes the
// configured exports and logs the chat message for the first day.
type DailyBrief struct {
	Svc      *service.Service
	Writer   report.Writer
	Profile  string
	Spec     string
	Days     int
	Formats  []string
	Now      func() time.Time
	// Messages receives each formatted chat message when set.
	Messages func(string)
}

var _ Job = (*DailyBrief)(nil)

func (b *DailyBrief) Name() string     { return "daily_brief_" + report.Slug(b.Profile) }
func (b *DailyBrief) Schedule() string { return b.Spec }

func (b *DailyBrief) Run(ctx context.Context) error {
	p, err := b.Svc.Profile(b.Profile)
	if err != nil {
		return err
	}

	now := time.Now
	if b.Now != nil {
		now = b.Now
	}
	days := b.Days
	if days < 1 {
		days = 1
	}
	start := types.CivilDate(now(), b.Svc.Location())
	end := start.AddDate(0, 0, days-1)

	records, _, err := b.Svc.Calendar(ctx, p, start, end)
	if err != nil {
		return fmt.Errorf("generate brief: %w", err)
	}

	for _, format := range b.Formats {
		exp, err := report.ExporterFor(format)
		if err != nil {
			return err
		}
		if b.Writer.Exists(p.Name, start, end, exp.Extension()) {
			logger.Debug(ctx, "Brief export already written", "format", format)
			continue
		}
		path, err := b.Writer.Write(exp, p.Name, start, end, records)
		if err != nil {
			return fmt.Errorf("write %s export: %w", format, err)
		}
		logger.Info(ctx, "Brief export written", "profile", p.Name, "path", path)
	}

	if len(records) > 0 {
		today := records[0]
		logger.Verdict(ctx, p.Name, today.DateString(), string(today.Recommendation), today.ReasonText(),
			"nakshatra", today.Nakshatra,
			"change_time", today.ChangeTime,
		)
		if b.Messages != nil {
			b.Messages(report.Message(today))
		}
	}
	return nil
}
