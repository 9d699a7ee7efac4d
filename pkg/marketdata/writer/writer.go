package writer

import (
	"strings"

	"github.com/rxtech-lab/stock-history/internal/types"
)

// Format identifies an output file format.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatParquet Format = "parquet"
)

// MarketDataWriter defines the interface for writing a price series to a destination.
type MarketDataWriter interface {
	// Initialize prepares the writer. It must be called before Write.
	Initialize() error
	// Write buffers or persists a single bar.
	Write(bar types.PriceBar) error
	// Finalize completes the writing process and returns the written file.
	Finalize() (outputPath string, err error)
	// Close releases any resources held by the writer.
	Close() error
	// GetOutputPath returns the configured output file path.
	GetOutputPath() string
}

// OutputFileName returns the file name used for ticker, with every '.'
// replaced by '_' so "RELIANCE.NS" becomes "RELIANCE_NS.csv".
func OutputFileName(ticker string, format Format) string {
	return strings.ReplaceAll(ticker, ".", "_") + "." + string(format)
}

// New creates a writer for the given format writing to outputPath.
func New(format Format, outputPath string) (MarketDataWriter, bool) {
	switch format {
	case FormatCSV:
		return NewCSVWriter(outputPath), true
	case FormatParquet:
		return NewParquetWriter(outputPath), true
	default:
		return nil, false
	}
}
