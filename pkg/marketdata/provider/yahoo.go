package provider

import (
	"context"
	"fmt"
	"time"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/rxtech-lab/stock-history/internal/types"
)

// YahooChartIterator is the subset of chart.Iter used by YahooClient.
type YahooChartIterator interface {
	Next() bool
	Bar() *finance.ChartBar
	Meta() finance.ChartMeta
	Err() error
}

// YahooChartAPI abstracts the Yahoo Finance chart endpoint for testing.
type YahooChartAPI interface {
	Get(params *chart.Params) YahooChartIterator
}

// yahooChartAPIAdapter forwards to the finance-go chart package.
type yahooChartAPIAdapter struct{}

func (yahooChartAPIAdapter) Get(params *chart.Params) YahooChartIterator {
	return chart.Get(params)
}

// YahooClient reads daily bars from the Yahoo Finance chart API.
// It is the only provider that supplies an adjusted close.
type YahooClient struct {
	apiClient YahooChartAPI
}

// NewYahooClient creates a YahooClient backed by finance-go.
func NewYahooClient() *YahooClient {
	return &YahooClient{apiClient: yahooChartAPIAdapter{}}
}

// NewYahooClientWithAPI creates a YahooClient with a custom API client.
func NewYahooClientWithAPI(apiClient YahooChartAPI) *YahooClient {
	return &YahooClient{apiClient: apiClient}
}

func (c *YahooClient) Name() ProviderType {
	return ProviderYahoo
}

// History downloads daily bars for ticker between start and end.
func (c *YahooClient) History(ctx context.Context, ticker string, start time.Time, end time.Time) (types.PriceSeries, error) {
	series := types.PriceSeries{Symbol: ticker, Bars: nil, HasAdjClose: false}

	if err := ctx.Err(); err != nil {
		return series, err
	}

	//nolint:exhaustruct // third-party struct with many optional fields
	params := &chart.Params{
		Params:   finance.Params{Context: &ctx},
		Symbol:   ticker,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.OneDay,
	}

	iter := c.apiClient.Get(params)

	var location *time.Location

	for iter.Next() {
		if err := ctx.Err(); err != nil {
			return series, err
		}

		if location == nil {
			location = exchangeLocation(iter.Meta())
		}

		bar := iter.Bar()
		if bar == nil {
			continue
		}

		// Yahoo sends null for some adjclose entries; those rows keep Close.
		adjClose := bar.AdjClose
		if adjClose.IsZero() {
			adjClose = bar.Close
		} else {
			series.HasAdjClose = true
		}

		series.Bars = append(series.Bars, types.PriceBar{
			Date:     dayStart(time.Unix(int64(bar.Timestamp), 0).In(location)),
			Open:     bar.Open,
			High:     bar.High,
			Low:      bar.Low,
			Close:    bar.Close,
			AdjClose: adjClose,
			Volume:   int64(bar.Volume),
		})
	}

	if err := iter.Err(); err != nil {
		return types.PriceSeries{Symbol: ticker, Bars: nil, HasAdjClose: false}, fmt.Errorf("error iterating yahoo chart: %w", err)
	}

	return series, nil
}

// exchangeLocation returns a fixed zone at the exchange's GMT offset so a
// bar stamped at the session open lands on its local trading day.
func exchangeLocation(meta finance.ChartMeta) *time.Location {
	if meta.Gmtoffset == 0 {
		return time.UTC
	}

	return time.FixedZone(meta.ExchangeTimezoneName, meta.Gmtoffset)
}
