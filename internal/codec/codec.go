// Package codec reads and writes service datasets in the comma separated layout
// name,cost,duration,prepayment. Fields are never quoted, so a comma inside a
// name is not supported.
package codec

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mamadbah2/sortbench/internal/domain/models"
)

// OutputHeader is the first line of every sorted output file.
const OutputHeader = "Название услуги,Ориентировочная стоимость,Срок исполнения (дни),Размер предоплаты"

var (
	// ErrOpenDataset indicates the dataset file could not be opened for reading.
	ErrOpenDataset = errors.New("open dataset")
	// ErrEmptyDataset indicates the dataset holds no header or no data rows.
	ErrEmptyDataset = errors.New("dataset is empty or header only")
	// ErrReadDataset indicates an I/O failure while reading rows.
	ErrReadDataset = errors.New("read dataset")
	// ErrCreateOutput indicates the output file could not be created.
	ErrCreateOutput = errors.New("create output")
)

const maxLineBytes = 1 << 20

// ParseLine converts one data row into a Service. Numeric fields that are
// missing or malformed are left at zero; the row itself is always accepted.
func ParseLine(line string) models.Service {
	line = strings.TrimRight(line, "\r")
	fields := strings.SplitN(line, ",", 4)

	var s models.Service
	s.Name = fields[0]
	if len(fields) > 1 {
		s.Cost = parseFloat(fields[1])
	}
	if len(fields) > 2 {
		s.Duration = parseInt(fields[2])
	}
	if len(fields) > 3 {
		s.Prepayment = parseFloat(fields[3])
	}
	return s
}

// FormatLine renders s as name,cost,duration,prepayment with two decimals for
// the monetary fields.
func FormatLine(s models.Service) string {
	return fmt.Sprintf("%s,%.2f,%d,%.2f", s.Name, s.Cost, s.Duration, s.Prepayment)
}

// ReadServices skips the header line and parses every non-blank row that follows.
func ReadServices(r io.Reader) ([]models.Service, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("%w: header: %v", ErrReadDataset, err)
		}
		return nil, ErrEmptyDataset
	}

	var services []models.Service
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		services = append(services, ParseLine(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadDataset, err)
	}

	if len(services) == 0 {
		return nil, ErrEmptyDataset
	}
	return services, nil
}

// LoadServices opens path and reads it with ReadServices.
func LoadServices(path string) ([]models.Service, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrOpenDataset, path, err)
	}
	defer f.Close()

	services, err := ReadServices(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return services, nil
}

// WriteServices writes the output header followed by one row per service.
func WriteServices(w io.Writer, services []models.Service) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(OutputHeader + "\n"); err != nil {
		return err
	}
	for _, s := range services {
		if _, err := bw.WriteString(FormatLine(s) + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// SaveServices creates (or truncates) path and writes services into it.
func SaveServices(path string, services []models.Service) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w %s: %v", ErrCreateOutput, path, err)
	}

	if err := WriteServices(f, services); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// parseFloat accepts plain decimal notation only: optional sign, digits, one
// dot and an optional exponent. Hex, underscores, NaN and Inf are zero.
func parseFloat(field string) float64 {
	field = strings.TrimSpace(field)
	if !isDecimal(field) {
		return 0
	}
	v, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return 0
	}
	return v
}

func isDecimal(s string) bool {
	if s != "" && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	digits, dot := 0, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			digits++
		case c == '.' && !dot:
			dot = true
		case (c == 'e' || c == 'E') && digits > 0:
			return isExponent(s[i+1:])
		default:
			return false
		}
	}
	return digits > 0
}

func isExponent(s string) bool {
	if s != "" && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func parseInt(field string) int {
	v, err := strconv.Atoi(strings.TrimSpace(field))
	if err != nil {
		return 0
	}
	return v
}
