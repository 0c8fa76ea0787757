package calendarobs

import (
	"context"
	"errors"
	"time"

	"astrotrade/internal/calendar"
	"astrotrade/internal/interfaces"
	"astrotrade/internal/logger"
	"astrotrade/internal/metrics"
	"astrotrade/internal/trace"
	"astrotrade/internal/types"
)

type observableGenerator struct {
	generator interfaces.CalendarGenerator
	profile   string
	metrics   *metrics.Registry
}

var _ interfaces.CalendarGenerator = (*observableGenerator)(nil)

// Wrap adds a span, structured logs and metrics around gen. m may be nil.
func Wrap(gen interfaces.CalendarGenerator, profile string, m *metrics.Registry) interfaces.CalendarGenerator {
	return &observableGenerator{
		generator: gen,
		profile:   profile,
		metrics:   m,
	}
}

func (og *observableGenerator) Generate(ctx context.Context, start, end time.Time) ([]types.DayRecord, error) {
	ctx, span := trace.StartSpan(ctx, "calendar.Generate")
	defer span.End()

	begin := time.Now()

	logger.InfoSkip(ctx, 1, "Starting calendar generation",
		"profile", og.profile,
		"start", start.Format(types.DateLayout),
		"end", end.Format(types.DateLayout),
	)

	records, err := og.generator.Generate(ctx, start, end)
	elapsed := time.Since(begin)
	if err != nil {
		if og.metrics != nil {
			og.metrics.ObserveFailure(errorKind(err), elapsed)
		}
		logger.ErrorWithErrSkip(ctx, 1, "Calendar generation failed", err,
			"profile", og.profile,
			"duration_ms", elapsed.Milliseconds(),
		)
		return nil, err
	}

	if og.metrics != nil {
		og.metrics.ObserveGeneration(records, elapsed)
	}

	for _, rec := range records {
		logger.DebugSkip(ctx, 1, "Day evaluated",
			"profile", og.profile,
			"date", rec.DateString(),
			"nakshatra", rec.Nakshatra,
			"navatara", rec.Navatara.String(),
			"recommendation", string(rec.Recommendation),
			"reason", rec.ReasonText(),
		)
	}

	logger.InfoSkip(ctx, 1, "Calendar generation completed",
		"profile", og.profile,
		"days", len(records),
		"duration_ms", elapsed.Milliseconds(),
	)

	return records, nil
}

func errorKind(err error) string {
	var rangeErr *calendar.InvalidRangeError
	switch {
	case errors.As(err, &rangeErr):
		return "invalid_range"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "internal"
	}
}
