package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-date form used for every written Date value.
const DateLayout = "2006-01-02"

// PriceBar is one trading day of a historical price series.
type PriceBar struct {
	// Date is the trading day. Only the calendar date is meaningful; the
	// location should be the exchange's local zone.
	Date     time.Time
	Open     decimal.Decimal
	High     decimal.Decimal
	Low      decimal.Decimal
	Close    decimal.Decimal
	AdjClose decimal.Decimal
	Volume   int64
}

// DateString returns the bar's date as YYYY-MM-DD.
func (b PriceBar) DateString() string {
	return b.Date.Format(DateLayout)
}

// PriceSeries is the result of one history request for one ticker.
// Bars are in the order the provider returned them (ascending date).
type PriceSeries struct {
	Symbol string
	Bars   []PriceBar
	// HasAdjClose is false when the provider has no adjusted close column.
	HasAdjClose bool
}

// Len returns the number of bars in the series.
func (s PriceSeries) Len() int {
	return len(s.Bars)
}

// IsEmpty reports whether the provider returned no rows.
func (s PriceSeries) IsEmpty() bool {
	return len(s.Bars) == 0
}

// First returns the earliest bar. It panics on an empty series.
func (s PriceSeries) First() PriceBar {
	return s.Bars[0]
}

// Last returns the latest bar. It panics on an empty series.
func (s PriceSeries) Last() PriceBar {
	return s.Bars[len(s.Bars)-1]
}

// CloseRange returns the minimum and maximum Close across the series.
// Both values are zero for an empty series.
func (s PriceSeries) CloseRange() (minClose decimal.Decimal, maxClose decimal.Decimal) {
	if s.IsEmpty() {
		return decimal.Zero, decimal.Zero
	}

	minClose = s.Bars[0].Close
	maxClose = s.Bars[0].Close

	for _, bar := range s.Bars[1:] {
		if bar.Close.LessThan(minClose) {
			minClose = bar.Close
		}

		if bar.Close.GreaterThan(maxClose) {
			maxClose = bar.Close
		}
	}

	return minClose, maxClose
}
