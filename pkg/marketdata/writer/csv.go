package writer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"github.com/rxtech-lab/stock-history/internal/types"
)

// Header is the exact CSV header row written for every series.
var Header = []string{"Date", "Open", "High", "Low", "Close", "Adj Close", "Volume"}

// Row is one CSV line. Field order defines column order.
type Row struct {
	Date     string `csv:"Date"`
	Open     string `csv:"Open"`
	High     string `csv:"High"`
	Low      string `csv:"Low"`
	Close    string `csv:"Close"`
	AdjClose string `csv:"Adj Close"`
	Volume   int64  `csv:"Volume"`
}

// CSVWriter buffers bars and writes them as one comma-separated file with a
// header row and no index column. An existing file at the output path is replaced.
type CSVWriter struct {
	outputPath string
	rows       []*Row
}

// NewCSVWriter creates a new CSVWriter for outputPath.
func NewCSVWriter(outputPath string) MarketDataWriter {
	return &CSVWriter{
		outputPath: outputPath,
		rows:       nil,
	}
}

// Initialize resets the row buffer.
func (w *CSVWriter) Initialize() error {
	w.rows = make([]*Row, 0, 2600)

	return nil
}

// Write appends one bar to the buffer.
func (w *CSVWriter) Write(bar types.PriceBar) error {
	if w.rows == nil {
		return fmt.Errorf("writer not initialized")
	}

	w.rows = append(w.rows, &Row{
		Date:     bar.DateString(),
		Open:     bar.Open.String(),
		High:     bar.High.String(),
		Low:      bar.Low.String(),
		Close:    bar.Close.String(),
		AdjClose: bar.AdjClose.String(),
		Volume:   bar.Volume,
	})

	return nil
}

// Finalize writes the buffered rows to a temporary file next to the output
// path and renames it into place.
func (w *CSVWriter) Finalize() (outputPath string, err error) {
	if w.rows == nil {
		return "", fmt.Errorf("writer not initialized")
	}

	dir := filepath.Dir(w.outputPath)
	tmpPath := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(w.outputPath), uuid.New().String()))

	file, err := os.OpenFile(tmpPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", tmpPath, err)
	}

	defer func() {
		if err != nil {
			os.Remove(tmpPath)
		}
	}()

	if err = gocsv.MarshalFile(&w.rows, file); err != nil {
		file.Close()

		return "", fmt.Errorf("failed to encode csv: %w", err)
	}

	if err = file.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", tmpPath, err)
	}

	if err = os.Rename(tmpPath, w.outputPath); err != nil {
		return "", fmt.Errorf("failed to move csv into place: %w", err)
	}

	return w.outputPath, nil
}

// Close drops the row buffer.
func (w *CSVWriter) Close() error {
	w.rows = nil

	return nil
}

// GetOutputPath returns the configured output file path.
func (w *CSVWriter) GetOutputPath() string {
	return w.outputPath
}
