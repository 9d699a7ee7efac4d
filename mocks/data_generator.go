package mocks

import (
	"math"
	"math/rand"
	"time"

	"github.com/rxtech-lab/stock-history/internal/types"
	"github.com/shopspring/decimal"
)

// DataGenerator generates realistic daily price series for testing.
type DataGenerator struct {
	rng *rand.Rand
}

// NewDataGenerator creates a new DataGenerator with the given seed.
// Use a fixed seed for reproducible results in tests.
func NewDataGenerator(seed int64) *DataGenerator {
	return &DataGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// GeneratorConfig configures how a series is generated.
type GeneratorConfig struct {
	// Symbol is the ticker (e.g., "AAPL", "RELIANCE.NS")
	Symbol string
	// StartDate is the first trading day. Weekends are skipped.
	StartDate time.Time
	// Count is the number of trading days to generate
	Count int
	// InitialPrice is the starting price
	InitialPrice float64
	// Volatility controls price movement (0.01 = 1% typical daily volatility)
	Volatility float64
	// Trend is the drift factor (-0.01 to 0.01 for bearish to bullish)
	Trend float64
	// VolumeBase is the average volume per day
	VolumeBase float64
	// VolumeVariance is the variance in volume (0.0 to 1.0)
	VolumeVariance float64
	// DividendFactor scales Close into AdjClose. Zero leaves AdjClose unset
	// and the series reports no adjusted close column.
	DividendFactor float64
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Symbol:         "TEST",
		StartDate:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Count:          250,
		InitialPrice:   100.0,
		Volatility:     0.015,
		Trend:          0.0,
		VolumeBase:     1000000,
		VolumeVariance: 0.3,
		DividendFactor: 0.98,
	}
}

// Generate creates a daily series based on the configuration.
// Prices follow a geometric Brownian motion rounded to two decimals.
func (g *DataGenerator) Generate(config GeneratorConfig) types.PriceSeries {
	bars := make([]types.PriceBar, 0, config.Count)
	currentPrice := config.InitialPrice
	currentDate := nextTradingDay(config.StartDate)

	for i := 0; i < config.Count; i++ {
		open := currentPrice

		// Using Box-Muller transform for normal distribution
		u1 := g.rng.Float64()
		u2 := g.rng.Float64()
		z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)

		priceChange := config.Volatility * z
		drift := config.Trend / float64(config.Count)

		closePrice := open * (1 + priceChange + drift)
		if closePrice <= 0 {
			closePrice = open * 0.99
		}

		highExtension := math.Abs(g.rng.Float64() * config.Volatility * open * 0.5)
		lowExtension := math.Abs(g.rng.Float64() * config.Volatility * open * 0.5)

		high := math.Max(open, closePrice) + highExtension
		low := math.Min(open, closePrice) - lowExtension
		if low <= 0 {
			low = math.Min(open, closePrice) * 0.99
		}

		volumeVariation := 1.0 + (g.rng.Float64()*2-1)*config.VolumeVariance
		volume := config.VolumeBase * volumeVariation
		if volume < 0 {
			volume = config.VolumeBase * 0.1
		}

		closeValue := price(closePrice)
		adjClose := decimal.Zero

		if config.DividendFactor > 0 {
			adjClose = closeValue.Mul(decimal.NewFromFloat(config.DividendFactor)).Round(4)
		}

		bars = append(bars, types.PriceBar{
			Date:     currentDate,
			Open:     price(open),
			High:     price(high),
			Low:      price(low),
			Close:    closeValue,
			AdjClose: adjClose,
			Volume:   int64(math.Round(volume)),
		})

		currentPrice = closePrice
		currentDate = nextTradingDay(currentDate.AddDate(0, 0, 1))
	}

	return types.PriceSeries{
		Symbol:      config.Symbol,
		Bars:        bars,
		HasAdjClose: config.DividendFactor > 0,
	}
}

// GenerateYears is a convenience function returning 252 trading days per
// year, starting the given number of years before end.
func GenerateYears(symbol string, years int, end time.Time) types.PriceSeries {
	gen := NewDataGenerator(42) // Fixed seed for reproducibility
	config := DefaultConfig()
	config.Symbol = symbol
	config.Count = 252 * years
	config.StartDate = end.AddDate(-years, 0, 0)

	return gen.Generate(config)
}

// nextTradingDay returns d, or the following Monday when d falls on a weekend.
func nextTradingDay(d time.Time) time.Time {
	switch d.Weekday() {
	case time.Saturday:
		return d.AddDate(0, 0, 2)
	case time.Sunday:
		return d.AddDate(0, 0, 1)
	default:
		return d
	}
}

func price(val float64) decimal.Decimal {
	return decimal.NewFromFloat(val).Round(2)
}
