package holidays

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"astrotrade/internal/types"
)

const sample = `date,description
2025-08-15,Independence Day
27-Aug-2025,Ganesh Chaturthi
2025-10-02,Mahatma Gandhi Jayanti/Dussehra
`

func TestRead(t *testing.T) {
	set, err := Read(strings.NewReader(sample))
	require.NoError(t, err)
	assert.Equal(t, 3, set.Len())

	name, ok := set.Lookup(time.Date(2025, 8, 27, 9, 15, 0, 0, types.IST))
	assert.True(t, ok)
	assert.Equal(t, "Ganesh Chaturthi", name)

	assert.True(t, set.Contains(time.Date(2025, 10, 2, 0, 0, 0, 0, types.IST)))
	assert.False(t, set.Contains(time.Date(2025, 10, 3, 0, 0, 0, 0, types.IST)))

	rows := set.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, "2025-08-15", rows[0].Date)
	assert.Equal(t, "2025-08-27", rows[1].Date)
}

func TestRead_InvalidDate(t *testing.T) {
	_, err := Read(strings.NewReader("date,description\nnot-a-date,Oops\n"))
	assert.Error(t, err)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "holidays.csv")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	set, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, set.Len())

	_, err = Load(filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)
}

func TestNilAndEmptySet(t *testing.T) {
	var nilSet *Set
	assert.False(t, nilSet.Contains(time.Now()))
	assert.Equal(t, 0, nilSet.Len())
	assert.Empty(t, Empty().Rows())
}
