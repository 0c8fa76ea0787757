package interfaces

import (
	"context"
	"time"

	"astrotrade/internal/types"
)

type CalendarGenerator interface {
	Generate(ctx context.Context, start, end time.Time) ([]types.DayRecord, error)
}
