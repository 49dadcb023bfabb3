package codec

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/sortbench/internal/domain/models"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want models.Service
	}{
		{
			name: "well formed",
			line: "Backup,1500.5,3,200",
			want: models.Service{Name: "Backup", Cost: 1500.5, Duration: 3, Prepayment: 200},
		},
		{
			name: "non numeric cost",
			line: "Support,abc,10,5.0",
			want: models.Service{Name: "Support", Cost: 0, Duration: 10, Prepayment: 5},
		},
		{
			name: "bad duration",
			line: "Audit,10,ten,1",
			want: models.Service{Name: "Audit", Cost: 10, Duration: 0, Prepayment: 1},
		},
		{
			name: "missing trailing fields",
			line: "Hosting,99",
			want: models.Service{Name: "Hosting", Cost: 99},
		},
		{
			name: "windows line ending",
			line: "VPN,1,2,3\r",
			want: models.Service{Name: "VPN", Cost: 1, Duration: 2, Prepayment: 3},
		},
		{
			name: "extra commas land in prepayment",
			line: "Mail,1,2,3,4",
			want: models.Service{Name: "Mail", Cost: 1, Duration: 2, Prepayment: 0},
		},
		{
			name: "go literal forms are malformed",
			line: "Exotic,1_0,3,0x1p3",
			want: models.Service{Name: "Exotic", Cost: 0, Duration: 3, Prepayment: 0},
		},
		{
			name: "nan and inf are malformed",
			line: "Broken,nan,1,Inf",
			want: models.Service{Name: "Broken", Cost: 0, Duration: 1, Prepayment: 0},
		},
		{
			name: "signed and exponent decimals",
			line: "Sci,-1.5e2,1,+.5",
			want: models.Service{Name: "Sci", Cost: -150, Duration: 1, Prepayment: 0.5},
		},
		{
			name: "negative duration is kept",
			line: "Legacy,1,-4,0",
			want: models.Service{Name: "Legacy", Cost: 1, Duration: -4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLine(tt.line))
		})
	}
}

func TestFormatLine(t *testing.T) {
	s := models.Service{Name: "Support", Cost: 10, Duration: 5, Prepayment: 2.005}
	assert.Equal(t, "Support,10.00,5,2.00", FormatLine(s))

	s = models.Service{Name: "Hosting", Cost: 1234.567, Duration: 0, Prepayment: 0}
	assert.Equal(t, "Hosting,1234.57,0,0.00", FormatLine(s))
}

func TestReadServices(t *testing.T) {
	input := "name,cost,duration,prepayment\nA,1,2,3\n\nB,4,5,6\n"
	got, err := ReadServices(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []models.Service{
		{Name: "A", Cost: 1, Duration: 2, Prepayment: 3},
		{Name: "B", Cost: 4, Duration: 5, Prepayment: 6},
	}, got)
}

func TestReadServices_Empty(t *testing.T) {
	_, err := ReadServices(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyDataset)

	_, err = ReadServices(strings.NewReader("name,cost,duration,prepayment\n"))
	assert.ErrorIs(t, err, ErrEmptyDataset)

	_, err = ReadServices(strings.NewReader("name,cost,duration,prepayment\n\n\n"))
	assert.ErrorIs(t, err, ErrEmptyDataset)
}

func TestLoadServices_Missing(t *testing.T) {
	_, err := LoadServices(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOpenDataset)
	assert.NotErrorIs(t, err, ErrEmptyDataset)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	services := []models.Service{
		{Name: "C", Cost: 5, Duration: 1, Prepayment: 1},
		{Name: "A", Cost: 10, Duration: 5, Prepayment: 2},
	}
	require.NoError(t, SaveServices(path, services))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, OutputHeader+"\nC,5.00,1,1.00\nA,10.00,5,2.00\n", string(raw))

	loaded, err := LoadServices(path)
	require.NoError(t, err)
	assert.Equal(t, services, loaded)
}

func TestSaveServices_BadDir(t *testing.T) {
	err := SaveServices(filepath.Join(t.TempDir(), "missing", "out.csv"), nil)
	assert.ErrorIs(t, err, ErrCreateOutput)
}
