package provider

import (
	"context"
	"fmt"
	"time"

	binance "github.com/adshao/go-binance/v2"
	"github.com/rxtech-lab/stock-history/internal/types"
	"github.com/shopspring/decimal"
)

// binanceDailyInterval is the kline interval for one trading day.
const binanceDailyInterval = "1d"

// binancePageSize is the default number of klines Binance returns per request.
const binancePageSize = 500

// BinanceKlinesService is the builder subset of *binance.KlinesService used by BinanceClient.
type BinanceKlinesService interface {
	Symbol(symbol string) BinanceKlinesService
	Interval(interval string) BinanceKlinesService
	StartTime(startTime int64) BinanceKlinesService
	EndTime(endTime int64) BinanceKlinesService
	Do(ctx context.Context, opts ...binance.RequestOption) ([]*binance.Kline, error)
}

// BinanceAPIClient abstracts the Binance client for testing.
type BinanceAPIClient interface {
	NewKlinesService() BinanceKlinesService
}

type binanceAPIAdapter struct {
	client *binance.Client
}

func (a *binanceAPIAdapter) NewKlinesService() BinanceKlinesService {
	return &binanceKlinesAdapter{service: a.client.NewKlinesService()}
}

type binanceKlinesAdapter struct {
	service *binance.KlinesService
}

func (a *binanceKlinesAdapter) Symbol(symbol string) BinanceKlinesService {
	a.service.Symbol(symbol)

	return a
}

func (a *binanceKlinesAdapter) Interval(interval string) BinanceKlinesService {
	a.service.Interval(interval)

	return a
}

func (a *binanceKlinesAdapter) StartTime(startTime int64) BinanceKlinesService {
	a.service.StartTime(startTime)

	return a
}

func (a *binanceKlinesAdapter) EndTime(endTime int64) BinanceKlinesService {
	a.service.EndTime(endTime)

	return a
}

func (a *binanceKlinesAdapter) Do(ctx context.Context, opts ...binance.RequestOption) ([]*binance.Kline, error) {
	return a.service.Do(ctx, opts...)
}

// BinanceClient reads daily klines for a trading pair such as BTCUSDT.
// Binance has no adjusted close, so HasAdjClose is always false.
type BinanceClient struct {
	apiClient BinanceAPIClient
}

// NewBinanceClient creates a BinanceClient using the public market data endpoints.
func NewBinanceClient() (Provider, error) {
	return NewBinanceClientWithAPI(&binanceAPIAdapter{client: binance.NewClient("", "")}), nil
}

// NewBinanceClientWithAPI creates a BinanceClient with a custom API client.
func NewBinanceClientWithAPI(apiClient BinanceAPIClient) *BinanceClient {
	return &BinanceClient{apiClient: apiClient}
}

func (c *BinanceClient) Name() ProviderType {
	return ProviderBinance
}

// History downloads daily klines for ticker between start and end,
// paging through the results Binance caps at binancePageSize per request.
func (c *BinanceClient) History(ctx context.Context, ticker string, start time.Time, end time.Time) (types.PriceSeries, error) {
	series := types.PriceSeries{Symbol: ticker, Bars: nil, HasAdjClose: false}

	// Binance API uses milliseconds for timestamps
	currentStartTime := start.UnixMilli()
	endTimeMillis := end.UnixMilli()

	for {
		klines, err := c.apiClient.NewKlinesService().
			Symbol(ticker).
			Interval(binanceDailyInterval).
			StartTime(currentStartTime).
			EndTime(endTimeMillis).
			Do(ctx)
		if err != nil {
			return types.PriceSeries{Symbol: ticker, Bars: nil, HasAdjClose: false}, fmt.Errorf("failed to fetch klines from Binance: %w", err)
		}

		bars, err := convertKlines(klines)
		if err != nil {
			return types.PriceSeries{Symbol: ticker, Bars: nil, HasAdjClose: false}, fmt.Errorf("failed to process klines: %w", err)
		}

		series.Bars = append(series.Bars, bars...)

		if len(klines) < binancePageSize {
			break
		}

		// Use the close time of the last kline + 1ms to avoid duplicates
		currentStartTime = klines[len(klines)-1].CloseTime + 1
		if currentStartTime >= endTimeMillis {
			break
		}
	}

	return series, nil
}

// convertKlines converts Binance kline strings to price bars. Volume is
// truncated to whole units.
func convertKlines(klines []*binance.Kline) ([]types.PriceBar, error) {
	bars := make([]types.PriceBar, 0, len(klines))

	for _, k := range klines {
		open, err := decimal.NewFromString(k.Open)
		if err != nil {
			return nil, fmt.Errorf("invalid open %q: %w", k.Open, err)
		}

		high, err := decimal.NewFromString(k.High)
		if err != nil {
			return nil, fmt.Errorf("invalid high %q: %w", k.High, err)
		}

		low, err := decimal.NewFromString(k.Low)
		if err != nil {
			return nil, fmt.Errorf("invalid low %q: %w", k.Low, err)
		}

		closePrice, err := decimal.NewFromString(k.Close)
		if err != nil {
			return nil, fmt.Errorf("invalid close %q: %w", k.Close, err)
		}

		volume, err := decimal.NewFromString(k.Volume)
		if err != nil {
			return nil, fmt.Errorf("invalid volume %q: %w", k.Volume, err)
		}

		bars = append(bars, types.PriceBar{
			Date:     dayStart(time.UnixMilli(k.OpenTime).UTC()),
			Open:     open,
			High:     high,
			Low:      low,
			Close:    closePrice,
			AdjClose: decimal.Zero,
			Volume:   volume.IntPart(),
		})
	}

	return bars, nil
}
