package provider

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/polygon-io/client-go/rest/models"
	"github.com/stretchr/testify/suite"
)

// mockPolygonAPIClient implements PolygonAPIClient for testing.
type mockPolygonAPIClient struct {
	iterator   PolygonAggsIterator
	lastParams *models.ListAggsParams
}

func (m *mockPolygonAPIClient) ListAggs(_ context.Context, params *models.ListAggsParams, _ ...models.RequestOption) PolygonAggsIterator {
	m.lastParams = params

	return m.iterator
}

// mockPolygonIterator implements PolygonAggsIterator for testing.
type mockPolygonIterator struct {
	aggs  []models.Agg
	index int
	err   error
}

func (m *mockPolygonIterator) Next() bool {
	if m.index < len(m.aggs) {
		m.index++
		return true
	}
	return false
}

func (m *mockPolygonIterator) Item() models.Agg {
	if m.index > 0 && m.index <= len(m.aggs) {
		return m.aggs[m.index-1]
	}
	return models.Agg{}
}

func (m *mockPolygonIterator) Err() error {
	return m.err
}

type PolygonClientTestSuite struct {
	suite.Suite
}

func TestPolygonClientSuite(t *testing.T) {
	suite.Run(t, new(PolygonClientTestSuite))
}

func (suite *PolygonClientTestSuite) TestNewPolygonClient_ValidApiKey() {
	client, err := NewPolygonClient("test-api-key")
	suite.NoError(err)
	suite.NotNil(client)

	polygonClient, ok := client.(*PolygonClient)
	suite.True(ok)
	suite.NotNil(polygonClient.apiClient)
	suite.NotNil(polygonClient.location)
}

func (suite *PolygonClientTestSuite) TestNewPolygonClientWithAPI() {
	mockAPI := &mockPolygonAPIClient{}
	client := NewPolygonClientWithAPI(mockAPI)
	suite.NotNil(client)
	suite.Equal(mockAPI, client.apiClient)
	suite.Equal(ProviderPolygon, client.Name())
}

func (suite *PolygonClientTestSuite) TestNewPolygonClient_EmptyApiKey() {
	client, err := NewPolygonClient("")
	suite.Error(err)
	suite.Nil(client)
	suite.Contains(err.Error(), "apiKey is required")
}

// TestHistorySuccess tests a successful download with mock API.
func (suite *PolygonClientTestSuite) TestHistorySuccess() {
	aggs := []models.Agg{
		{
			// Polygon stamps daily bars at midnight New York time.
			Timestamp: models.Millis(time.Date(2024, 1, 2, 5, 0, 0, 0, time.UTC)),
			Open:      187.15,
			High:      188.44,
			Low:       183.885,
			Close:     185.64,
			Volume:    82488674,
		},
		{
			Timestamp: models.Millis(time.Date(2024, 1, 3, 5, 0, 0, 0, time.UTC)),
			Open:      184.22,
			High:      185.88,
			Low:       183.43,
			Close:     184.25,
			Volume:    58414460,
		},
	}

	mockAPI := &mockPolygonAPIClient{iterator: &mockPolygonIterator{aggs: aggs}}
	client := NewPolygonClientWithAPI(mockAPI)

	startDate := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	endDate := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	series, err := client.History(context.Background(), "AAPL", startDate, endDate)
	suite.Require().NoError(err)
	suite.False(series.HasAdjClose)
	suite.Require().Equal(2, series.Len())
	suite.Equal("2024-01-02", series.Bars[0].DateString())
	suite.Equal("2024-01-03", series.Bars[1].DateString())
	suite.Equal("185.64", series.Bars[0].Close.String())
	suite.Equal("183.885", series.Bars[0].Low.String())
	suite.Equal(int64(82488674), series.Bars[0].Volume)

	suite.Require().NotNil(mockAPI.lastParams)
	suite.Equal("AAPL", mockAPI.lastParams.Ticker)
	suite.Equal(1, mockAPI.lastParams.Multiplier)
	suite.Equal(models.Day, mockAPI.lastParams.Timespan)
	suite.Equal(startDate, time.Time(mockAPI.lastParams.From))
	suite.Equal(endDate, time.Time(mockAPI.lastParams.To))
}

func (suite *PolygonClientTestSuite) TestHistoryEmpty() {
	mockAPI := &mockPolygonAPIClient{iterator: &mockPolygonIterator{}}
	client := NewPolygonClientWithAPI(mockAPI)

	series, err := client.History(context.Background(), "XYZINVALID", time.Now().AddDate(0, -1, 0), time.Now())
	suite.NoError(err)
	suite.True(series.IsEmpty())
}

// TestHistoryIteratorError tests error handling when iterator returns an error.
func (suite *PolygonClientTestSuite) TestHistoryIteratorError() {
	mockIter := &mockPolygonIterator{
		aggs: []models.Agg{{Timestamp: models.Millis(time.Date(2024, 1, 2, 5, 0, 0, 0, time.UTC)), Close: 1}},
		err:  errors.New("API rate limit exceeded"),
	}
	client := NewPolygonClientWithAPI(&mockPolygonAPIClient{iterator: mockIter})

	series, err := client.History(context.Background(), "SPY", time.Now().AddDate(0, -1, 0), time.Now())
	suite.Error(err)
	suite.Contains(err.Error(), "error iterating polygon aggregates")
	suite.Contains(err.Error(), "API rate limit exceeded")
	suite.True(series.IsEmpty())
}
