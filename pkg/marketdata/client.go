package marketdata

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rxtech-lab/stock-history/internal/logger"
	"github.com/rxtech-lab/stock-history/internal/types"
	"github.com/rxtech-lab/stock-history/pkg/errors"
	"github.com/rxtech-lab/stock-history/pkg/marketdata/provider"
	"github.com/rxtech-lab/stock-history/pkg/marketdata/writer"
	"github.com/rxtech-lab/stock-history/pkg/symbols"
	"github.com/schollz/progressbar/v3"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Result describes one successfully written series.
type Result struct {
	Ticker    string
	Path      string
	Rows      int
	FirstDate time.Time
	LastDate  time.Time
	MinClose  decimal.Decimal
	MaxClose  decimal.Decimal
}

// writerFactory creates the writer for a format and output path.
type writerFactory func(format writer.Format, outputPath string) (writer.MarketDataWriter, bool)

// Client is the market data client responsible for downloading data from providers and storing it using writers.
type Client struct {
	provider  provider.Provider
	config    ClientConfig
	catalog   *symbols.Catalog
	reporter  Reporter
	logger    *logger.Logger
	newWriter writerFactory
	now       func() time.Time
}

// NewClient creates a new market data client with the given configuration.
func NewClient(config ClientConfig, catalog *symbols.Catalog, reporter Reporter, log *logger.Logger) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var providerConfig any
	if config.ProviderType == provider.ProviderPolygon {
		providerConfig = config.PolygonApiKey
	}

	marketProvider, err := provider.NewMarketDataProvider(config.ProviderType, providerConfig)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidProvider, err, "failed to create %s provider", config.ProviderType)
	}

	return NewClientWithProvider(marketProvider, config, catalog, reporter, log)
}

// NewClientWithProvider creates a client around an existing provider.
func NewClientWithProvider(marketProvider provider.Provider, config ClientConfig, catalog *symbols.Catalog, reporter Reporter, log *logger.Logger) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if marketProvider == nil {
		return nil, errors.New(errors.ErrCodeMissingParameter, "provider is required")
	}

	if catalog == nil {
		catalog = symbols.Default()
	}

	if reporter == nil {
		reporter = NewConsoleReporter(os.Stdout)
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Client{
		provider:  marketProvider,
		config:    config,
		catalog:   catalog,
		reporter:  reporter,
		logger:    log,
		newWriter: writer.New,
		now:       time.Now,
	}, nil
}

// OutputDir returns the directory files are written to.
func (c *Client) OutputDir() string {
	return c.config.OutputDir
}

// Download fetches years of daily history for ticker and writes it to
// <output dir>/<ticker with '.' replaced by '_'>.<format>.
// Every failure is reported and returned as an *errors.Error whose code maps
// to one failure kind; Download never panics.
func (c *Client) Download(ctx context.Context, ticker string, years int) (Result, error) {
	if years < 1 {
		return Result{}, errors.Newf(errors.ErrCodeInvalidParameter, "years must be at least 1, got %d", years)
	}

	start, end := LookbackWindow(c.now(), years)
	c.reporter.DownloadStarted(ticker, start, end)

	c.logger.Debug("Fetching history",
		zap.String("ticker", ticker),
		zap.String("provider", string(c.provider.Name())),
		zap.Time("start", start),
		zap.Time("end", end),
	)

	series, err := c.fetch(ctx, ticker, start, end)
	if err != nil {
		fetchErr := errors.Wrapf(errors.ErrCodeProviderFailure, err, "failed to fetch %s", ticker)
		c.reporter.DownloadFailed(ticker, fetchErr)

		return Result{}, c.fail(fetchErr)
	}

	if series.IsEmpty() {
		c.reporter.NoData(ticker)

		return Result{}, c.fail(errors.Newf(errors.ErrCodeNoData, "no data found for %s", ticker))
	}

	series = Normalize(series)

	path, err := c.write(ticker, series)
	if err != nil {
		c.reporter.DownloadFailed(ticker, err)

		return Result{}, c.fail(err)
	}

	minClose, maxClose := series.CloseRange()
	result := Result{
		Ticker:    ticker,
		Path:      path,
		Rows:      series.Len(),
		FirstDate: series.First().Date,
		LastDate:  series.Last().Date,
		MinClose:  minClose,
		MaxClose:  maxClose,
	}

	c.reporter.Saved(result)
	c.logger.Debug("Saved history", zap.String("ticker", ticker), zap.String("path", path), zap.Int("rows", result.Rows))

	return result, nil
}

// fetch calls the provider with a spinner running and converts a provider
// panic into an error.
func (c *Client) fetch(ctx context.Context, ticker string, start time.Time, end time.Time) (series types.PriceSeries, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("provider panicked: %v", r)
		}
	}()

	stop := c.startSpinner(ticker)
	defer stop()

	return c.provider.History(ctx, ticker, start, end)
}

// write creates the output directory and writes series with the configured format.
// A writer panic is returned as a filesystem failure.
func (c *Client) write(ticker string, series types.PriceSeries) (path string, err error) {
	defer func() {
		if r := recover(); r != nil {
			path = ""
			err = errors.Newf(errors.ErrCodeFilesystemFailure, "writer panicked while saving %s: %v", ticker, r)
		}
	}()

	if err := os.MkdirAll(c.config.OutputDir, 0o755); err != nil {
		return "", errors.Wrapf(errors.ErrCodeFilesystemFailure, err, "failed to create output directory %s", c.config.OutputDir)
	}

	outputPath := filepath.Join(c.config.OutputDir, writer.OutputFileName(ticker, c.config.Format))

	marketWriter, ok := c.newWriter(c.config.Format, outputPath)
	if !ok {
		return "", errors.Newf(errors.ErrCodeInvalidFormat, "unsupported output format: %s", c.config.Format)
	}

	outputPath = marketWriter.GetOutputPath()

	if err := marketWriter.Initialize(); err != nil {
		return "", errors.Wrapf(errors.ErrCodeFilesystemFailure, err, "failed to initialize writer at %s", outputPath)
	}

	defer func() {
		if cerr := marketWriter.Close(); cerr != nil {
			c.logger.Warn("Failed to close writer", zap.String("path", outputPath), zap.Error(cerr))
		}
	}()

	for _, bar := range series.Bars {
		if err := marketWriter.Write(bar); err != nil {
			return "", errors.Wrapf(errors.ErrCodeFilesystemFailure, err, "failed to write %s", outputPath)
		}
	}

	path, err = marketWriter.Finalize()
	if err != nil {
		return "", errors.Wrapf(errors.ErrCodeFilesystemFailure, err, "failed to save %s", outputPath)
	}

	return path, nil
}

func (c *Client) fail(err error) error {
	c.logger.Debug("Download failed",
		zap.Int("code", int(errors.GetCode(err))),
		zap.String("kind", string(errors.KindOf(err))),
		zap.Error(err),
	)

	return err
}

// startSpinner renders an indeterminate progress bar on stderr until the
// returned function is called.
func (c *Client) startSpinner(ticker string) func() {
	if !c.config.ShowProgress {
		return func() {}
	}

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(fmt.Sprintf("   Fetching %s", ticker)),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)

	done := make(chan struct{})
	stopped := make(chan struct{})

	go func() {
		defer close(stopped)

		tick := time.NewTicker(100 * time.Millisecond)
		defer tick.Stop()

		for {
			select {
			case <-done:
				return
			case <-tick.C:
				bar.Add(1)
			}
		}
	}()

	return func() {
		close(done)
		<-stopped
		bar.Finish()
	}
}
