package resultslog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/sortbench/internal/domain/models"
)

func TestFormatRow(t *testing.T) {
	m := models.Measurement{DatasetSize: 8100, Algorithm: "Сортировка пузырьком", Milliseconds: 12.345678}
	assert.Equal(t, `8100,"Сортировка пузырьком",12.3457`, FormatRow(m))
}

func TestLog_AppendIsFlushedImmediately(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results", "timing.csv")

	l, err := Create(path)
	require.NoError(t, err)
	defer l.Close()

	require.NoError(t, l.Append(context.Background(), []models.Measurement{
		{DatasetSize: 100, Algorithm: "std::sort", Milliseconds: 0.5},
		{DatasetSize: 100, Algorithm: "Шейкер-сортировка", Milliseconds: 3},
	}))

	// Read while the log is still open: rows must already be on disk.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Header+"\n100,\"std::sort\",0.5000\n100,\"Шейкер-сортировка\",3.0000\n", string(raw))
}

func TestCreate_Failure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, err := Create(filepath.Join(blocker, "timing.csv"))
	assert.ErrorIs(t, err, ErrCreateLog)
}
