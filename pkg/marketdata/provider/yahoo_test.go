package provider

import (
	"context"
	"errors"
	"testing"
	"time"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// mockYahooChartAPI implements YahooChartAPI for testing.
type mockYahooChartAPI struct {
	iterator   *mockYahooIterator
	lastParams *chart.Params
}

func (m *mockYahooChartAPI) Get(params *chart.Params) YahooChartIterator {
	m.lastParams = params

	return m.iterator
}

// mockYahooIterator implements YahooChartIterator for testing.
type mockYahooIterator struct {
	bars  []*finance.ChartBar
	meta  finance.ChartMeta
	index int
	err   error
}

func (m *mockYahooIterator) Next() bool {
	if m.index < len(m.bars) {
		m.index++
		return true
	}
	return false
}

func (m *mockYahooIterator) Bar() *finance.ChartBar {
	if m.index > 0 && m.index <= len(m.bars) {
		return m.bars[m.index-1]
	}
	return nil
}

func (m *mockYahooIterator) Meta() finance.ChartMeta {
	return m.meta
}

func (m *mockYahooIterator) Err() error {
	return m.err
}

func yahooBar(ts time.Time, closePrice string, adjClose string) *finance.ChartBar {
	c := decimal.RequireFromString(closePrice)

	return &finance.ChartBar{
		Open:      c,
		Low:       c,
		High:      c,
		Close:     c,
		AdjClose:  decimal.RequireFromString(adjClose),
		Volume:    1200,
		Timestamp: int(ts.Unix()),
	}
}

type YahooClientTestSuite struct {
	suite.Suite
}

func TestYahooClientSuite(t *testing.T) {
	suite.Run(t, new(YahooClientTestSuite))
}

func (suite *YahooClientTestSuite) TestNewYahooClient() {
	client := NewYahooClient()
	suite.NotNil(client.apiClient)
	suite.Equal(ProviderYahoo, client.Name())
}

type requestKey struct{}

func (suite *YahooClientTestSuite) TestHistoryRequestParams() {
	api := &mockYahooChartAPI{iterator: &mockYahooIterator{}}
	client := NewYahooClientWithAPI(api)

	start := time.Date(2016, 10, 18, 21, 0, 0, 0, time.UTC)
	end := time.Date(2026, 10, 16, 21, 0, 0, 0, time.UTC)
	ctx := context.WithValue(context.Background(), requestKey{}, "download")

	_, err := client.History(ctx, "AAPL", start, end)
	suite.Require().NoError(err)
	suite.Require().NotNil(api.lastParams)
	suite.Equal("AAPL", api.lastParams.Symbol)
	suite.Equal(datetime.OneDay, api.lastParams.Interval)

	// the request carries the caller's context and the exact window
	suite.Require().NotNil(api.lastParams.Context)
	suite.Equal("download", (*api.lastParams.Context).Value(requestKey{}))
	suite.Equal(int(start.Unix()), api.lastParams.Start.Unix())
	suite.Equal(int(end.Unix()), api.lastParams.End.Unix())
}

func (suite *YahooClientTestSuite) TestHistorySuccess() {
	ist := 19800
	// 09:15 IST on 2024-01-02 is 03:45 UTC on the same day.
	first := time.Date(2024, 1, 2, 3, 45, 0, 0, time.UTC)
	second := time.Date(2024, 1, 3, 3, 45, 0, 0, time.UTC)

	api := &mockYahooChartAPI{iterator: &mockYahooIterator{
		bars: []*finance.ChartBar{
			yahooBar(first, "2580.55", "2570.10"),
			yahooBar(second, "2601.1", "2590.85"),
		},
		meta: finance.ChartMeta{Gmtoffset: ist, ExchangeTimezoneName: "Asia/Kolkata"},
	}}
	client := NewYahooClientWithAPI(api)

	series, err := client.History(context.Background(), "RELIANCE.NS", first, second)
	suite.Require().NoError(err)
	suite.Equal("RELIANCE.NS", series.Symbol)
	suite.True(series.HasAdjClose)
	suite.Require().Equal(2, series.Len())
	suite.Equal("2024-01-02", series.Bars[0].DateString())
	suite.Equal("2024-01-03", series.Bars[1].DateString())
	suite.Equal("2580.55", series.Bars[0].Close.String())
	suite.Equal("2590.85", series.Bars[1].AdjClose.String())
	suite.Equal(int64(1200), series.Bars[0].Volume)
}

func (suite *YahooClientTestSuite) TestHistoryDatesUseExchangeOffset() {
	// 20:00 UTC on Jan 2 is already Jan 3 in India.
	ts := time.Date(2024, 1, 2, 20, 0, 0, 0, time.UTC)

	api := &mockYahooChartAPI{iterator: &mockYahooIterator{
		bars: []*finance.ChartBar{yahooBar(ts, "10", "10")},
		meta: finance.ChartMeta{Gmtoffset: 19800},
	}}

	series, err := NewYahooClientWithAPI(api).History(context.Background(), "TCS.NS", ts, ts)
	suite.Require().NoError(err)
	suite.Require().Equal(1, series.Len())
	suite.Equal("2024-01-03", series.Bars[0].DateString())
}

func (suite *YahooClientTestSuite) TestHistoryWithoutAdjClose() {
	ts := time.Date(2024, 1, 2, 14, 30, 0, 0, time.UTC)

	api := &mockYahooChartAPI{iterator: &mockYahooIterator{
		bars: []*finance.ChartBar{yahooBar(ts, "185.64", "0")},
	}}

	series, err := NewYahooClientWithAPI(api).History(context.Background(), "AAPL", ts, ts)
	suite.Require().NoError(err)
	suite.False(series.HasAdjClose)
	suite.Equal("185.64", series.Bars[0].AdjClose.String())
}

func (suite *YahooClientTestSuite) TestHistoryNullAdjCloseFallsBackToClose() {
	first := time.Date(2024, 1, 2, 14, 30, 0, 0, time.UTC)
	second := time.Date(2024, 1, 3, 14, 30, 0, 0, time.UTC)

	api := &mockYahooChartAPI{iterator: &mockYahooIterator{
		bars: []*finance.ChartBar{
			yahooBar(first, "185.64", "184.9"),
			yahooBar(second, "184.25", "0"),
		},
	}}

	series, err := NewYahooClientWithAPI(api).History(context.Background(), "AAPL", first, second)
	suite.Require().NoError(err)
	suite.Require().Equal(2, series.Len())
	suite.True(series.HasAdjClose)
	suite.Equal("184.9", series.Bars[0].AdjClose.String())
	suite.Equal("184.25", series.Bars[1].AdjClose.String())
}

func (suite *YahooClientTestSuite) TestHistoryEmpty() {
	api := &mockYahooChartAPI{iterator: &mockYahooIterator{}}

	series, err := NewYahooClientWithAPI(api).History(context.Background(), "XYZINVALID", time.Now().AddDate(-1, 0, 0), time.Now())
	suite.NoError(err)
	suite.True(series.IsEmpty())
}

func (suite *YahooClientTestSuite) TestHistoryIteratorError() {
	ts := time.Date(2024, 1, 2, 14, 30, 0, 0, time.UTC)

	api := &mockYahooChartAPI{iterator: &mockYahooIterator{
		bars: []*finance.ChartBar{yahooBar(ts, "185.64", "185.1")},
		err:  errors.New("remote-error: 404"),
	}}

	series, err := NewYahooClientWithAPI(api).History(context.Background(), "AAPL", ts, ts)
	suite.Error(err)
	suite.Contains(err.Error(), "error iterating yahoo chart")
	suite.Contains(err.Error(), "404")
	suite.True(series.IsEmpty())
}

func (suite *YahooClientTestSuite) TestHistoryCancelledContext() {
	api := &mockYahooChartAPI{iterator: &mockYahooIterator{}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewYahooClientWithAPI(api).History(ctx, "AAPL", time.Now(), time.Now())
	suite.ErrorIs(err, context.Canceled)
	suite.Nil(api.lastParams)
}
