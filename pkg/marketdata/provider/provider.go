package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/rxtech-lab/stock-history/internal/types"
)

// ProviderType defines the type of market data provider.
type ProviderType string

const (
	ProviderYahoo   ProviderType = "yahoo"
	ProviderPolygon ProviderType = "polygon"
	ProviderBinance ProviderType = "binance"
)

// Provider fetches the daily price history of one ticker.
type Provider interface {
	// Name returns the provider type, used in diagnostics.
	Name() ProviderType
	// History returns the daily bars for ticker between start and end.
	// An empty series with a nil error means the provider had no rows for the ticker.
	// The context can be used to cancel the request.
	// example:
	// History(ctx, "AAPL", time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC), time.Now())
	History(ctx context.Context, ticker string, start time.Time, end time.Time) (types.PriceSeries, error)
}

// NewMarketDataProvider creates a new market data provider based on the provider type.
// Polygon requires the API key as a string config; the other providers ignore config.
func NewMarketDataProvider(providerType ProviderType, config any) (Provider, error) {
	switch providerType {
	case ProviderYahoo:
		return NewYahooClient(), nil
	case ProviderBinance:
		return NewBinanceClient()
	case ProviderPolygon:
		apiKey, ok := config.(string)
		if !ok {
			return nil, fmt.Errorf("polygon provider requires API key string config")
		}

		return NewPolygonClient(apiKey)
	default:
		return nil, fmt.Errorf("unsupported market data provider: %s", providerType)
	}
}

// dayStart returns midnight of t's calendar date in UTC. Bars carry only a
// calendar date, so the zone is normalized once the local date is known.
func dayStart(t time.Time) time.Time {
	year, month, day := t.Date()

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
