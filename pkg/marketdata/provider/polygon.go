package provider

import (
	"context"
	"fmt"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/iter"
	"github.com/polygon-io/client-go/rest/models"
	"github.com/rxtech-lab/stock-history/internal/types"
	"github.com/shopspring/decimal"
)

// PolygonAggsIterator is the subset of the Polygon aggregates iterator used by PolygonClient.
type PolygonAggsIterator interface {
	Next() bool
	Item() models.Agg
	Err() error
}

// PolygonAPIClient abstracts the Polygon REST client for testing.
type PolygonAPIClient interface {
	ListAggs(ctx context.Context, params *models.ListAggsParams, options ...models.RequestOption) PolygonAggsIterator
}

// polygonAPIAdapter wraps *polygon.Client to satisfy PolygonAPIClient.
type polygonAPIAdapter struct {
	client *polygon.Client
}

func (a *polygonAPIAdapter) ListAggs(ctx context.Context, params *models.ListAggsParams, options ...models.RequestOption) PolygonAggsIterator {
	return a.client.ListAggs(ctx, params, options...)
}

var _ PolygonAggsIterator = (*iter.Iter[models.Agg])(nil)

// PolygonClient reads daily aggregates from Polygon.io. Polygon has no
// adjusted close column, so the series always reports HasAdjClose false.
type PolygonClient struct {
	apiClient PolygonAPIClient
	// location is the calendar used to date each aggregate.
	location *time.Location
}

// NewPolygonClient creates a PolygonClient for apiKey.
func NewPolygonClient(apiKey string) (Provider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("apiKey is required")
	}

	return NewPolygonClientWithAPI(&polygonAPIAdapter{client: polygon.New(apiKey)}), nil
}

// NewPolygonClientWithAPI creates a PolygonClient with a custom API client.
func NewPolygonClientWithAPI(apiClient PolygonAPIClient) *PolygonClient {
	return &PolygonClient{
		apiClient: apiClient,
		location:  newYorkLocation(),
	}
}

func (c *PolygonClient) Name() ProviderType {
	return ProviderPolygon
}

// History downloads daily aggregates for ticker between start and end.
func (c *PolygonClient) History(ctx context.Context, ticker string, start time.Time, end time.Time) (types.PriceSeries, error) {
	series := types.PriceSeries{Symbol: ticker, Bars: nil, HasAdjClose: false}

	//nolint:exhaustruct // third-party struct with many optional fields
	params := models.ListAggsParams{
		Ticker:     ticker,
		Multiplier: 1,
		Timespan:   models.Day,
		From:       models.Millis(start),
		To:         models.Millis(end),
	}.WithLimit(50000)

	aggs := c.apiClient.ListAggs(ctx, params)

	for aggs.Next() {
		agg := aggs.Item()

		series.Bars = append(series.Bars, types.PriceBar{
			Date:     dayStart(time.Time(agg.Timestamp).In(c.location)),
			Open:     decimal.NewFromFloat(agg.Open),
			High:     decimal.NewFromFloat(agg.High),
			Low:      decimal.NewFromFloat(agg.Low),
			Close:    decimal.NewFromFloat(agg.Close),
			AdjClose: decimal.Zero,
			Volume:   int64(agg.Volume),
		})
	}

	if err := aggs.Err(); err != nil {
		return types.PriceSeries{Symbol: ticker, Bars: nil, HasAdjClose: false}, fmt.Errorf("error iterating polygon aggregates: %w", err)
	}

	return series, nil
}

// newYorkLocation returns the US equities calendar zone, falling back to a
// fixed EST offset when the tz database is unavailable.
func newYorkLocation() *time.Location {
	location, err := time.LoadLocation("America/New_York")
	if err != nil {
		return time.FixedZone("EST", -5*60*60)
	}

	return location
}
