package marketdata

import "github.com/rxtech-lab/stock-history/internal/types"

// Normalize returns a copy of series that always carries an adjusted close.
// When the provider had no adjusted close column, every bar's Close is used.
func Normalize(series types.PriceSeries) types.PriceSeries {
	bars := make([]types.PriceBar, len(series.Bars))
	copy(bars, series.Bars)

	if !series.HasAdjClose {
		for i := range bars {
			bars[i].AdjClose = bars[i].Close
		}
	}

	return types.PriceSeries{
		Symbol:      series.Symbol,
		Bars:        bars,
		HasAdjClose: true,
	}
}
