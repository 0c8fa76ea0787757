package interfaces

import (
	"io"

	"astrotrade/internal/types"
)

// Exporter renders a generated calendar into a downstream format.
type Exporter interface {
	Export(w io.Writer, title string, records []types.DayRecord) error
	ContentType() string
	Extension() string
}
