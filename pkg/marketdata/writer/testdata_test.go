package writer

import (
	"time"

	"github.com/rxtech-lab/stock-history/internal/types"
	"github.com/shopspring/decimal"
)

func testBar(day int, closePrice string) types.PriceBar {
	c := decimal.RequireFromString(closePrice)

	return types.PriceBar{
		Date:     time.Date(2024, 1, day, 9, 15, 0, 0, time.UTC),
		Open:     c.Sub(decimal.NewFromInt(1)),
		High:     c.Add(decimal.NewFromInt(2)),
		Low:      c.Sub(decimal.NewFromInt(2)),
		Close:    c,
		AdjClose: c.Mul(decimal.RequireFromString("0.98")),
		Volume:   int64(1000 * day),
	}
}
