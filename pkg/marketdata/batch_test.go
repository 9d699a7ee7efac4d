package marketdata

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rxtech-lab/stock-history/internal/types"
	"github.com/rxtech-lab/stock-history/pkg/errors"
	"github.com/rxtech-lab/stock-history/pkg/marketdata/writer"
	"go.uber.org/mock/gomock"
)

func (suite *ClientTestSuite) TestRunBatchPartialSuccess() {
	client := suite.newClient(suite.tempDir, writer.FormatCSV)

	gomock.InOrder(
		suite.mockProvider.EXPECT().History(gomock.Any(), "AAPL", gomock.Any(), gomock.Any()).
			Return(suite.series("AAPL", true, "185.64", "184.25"), nil),
		suite.mockProvider.EXPECT().History(gomock.Any(), "XYZINVALID", gomock.Any(), gomock.Any()).
			Return(types.PriceSeries{Symbol: "XYZINVALID"}, nil),
		suite.mockProvider.EXPECT().History(gomock.Any(), "MSFT", gomock.Any(), gomock.Any()).
			Return(suite.series("MSFT", false, "370.6"), nil),
	)

	paths := client.RunBatch(context.Background(), []string{"AAPL", "XYZINVALID", "MSFT"}, 10)

	suite.Equal([]string{
		filepath.Join(suite.tempDir, "AAPL.csv"),
		filepath.Join(suite.tempDir, "MSFT.csv"),
	}, paths)

	for _, path := range paths {
		info, err := os.Stat(path)
		suite.Require().NoError(err)
		suite.Greater(info.Size(), int64(0))
	}

	output := suite.out.String()
	suite.Contains(output, "🚀 Downloading 3 stocks...")
	suite.Contains(output, fmt.Sprintf("📁 Output directory: %s", suite.tempDir))
	suite.Contains(output, "✅ Successfully downloaded 2/3 stocks")
}

func (suite *ClientTestSuite) TestRunBatchResolvesShorthands() {
	client := suite.newClient(suite.tempDir, writer.FormatCSV)

	gomock.InOrder(
		suite.mockProvider.EXPECT().History(gomock.Any(), "AAPL", gomock.Any(), gomock.Any()).
			Return(suite.series("AAPL", true, "185.64"), nil),
		suite.mockProvider.EXPECT().History(gomock.Any(), "RELIANCE.NS", gomock.Any(), gomock.Any()).
			Return(suite.series("RELIANCE.NS", true, "2580.55"), nil),
		suite.mockProvider.EXPECT().History(gomock.Any(), "NFLX", gomock.Any(), gomock.Any()).
			Return(suite.series("NFLX", true, "480"), nil),
	)

	paths := client.RunBatch(context.Background(), []string{"Apple", "reliance", "NFLX"}, 5)

	suite.Len(paths, 3)
	suite.Equal(filepath.Join(suite.tempDir, "RELIANCE_NS.csv"), paths[1])

	output := suite.out.String()
	suite.Contains(output, "💡 'apple' → AAPL")
	suite.Contains(output, "💡 'reliance' → RELIANCE.NS")
	suite.NotContains(output, "'nflx'")
}

func (suite *ClientTestSuite) TestRunBatchKeepsDuplicates() {
	client := suite.newClient(suite.tempDir, writer.FormatCSV)

	suite.mockProvider.EXPECT().History(gomock.Any(), "AAPL", gomock.Any(), gomock.Any()).
		Return(suite.series("AAPL", true, "185.64"), nil).
		Times(2)

	paths := client.RunBatch(context.Background(), []string{"AAPL", "apple"}, 1)

	suite.Len(paths, 2)
	suite.Equal(paths[0], paths[1])
	suite.Contains(suite.out.String(), "✅ Successfully downloaded 2/2 stocks")
}

func (suite *ClientTestSuite) TestRunBatchAllFail() {
	client := suite.newClient(suite.tempDir, writer.FormatCSV)

	suite.mockProvider.EXPECT().History(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(types.PriceSeries{}, fmt.Errorf("timeout")).
		Times(2)

	paths := client.RunBatch(context.Background(), []string{"AAPL", "MSFT"}, 10)

	suite.NotNil(paths)
	suite.Empty(paths)
	suite.Contains(suite.out.String(), "✅ Successfully downloaded 0/2 stocks")
}

func (suite *ClientTestSuite) TestRunBatchStopsWhenCancelled() {
	client := suite.newClient(suite.tempDir, writer.FormatCSV)

	ctx, cancel := context.WithCancel(context.Background())

	suite.mockProvider.EXPECT().History(gomock.Any(), "AAPL", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, ticker string, _ time.Time, _ time.Time) (types.PriceSeries, error) {
			cancel()

			return suite.series(ticker, true, "185.64"), nil
		})

	paths := client.RunBatch(ctx, []string{"AAPL", "MSFT", "GOOGL"}, 10)

	suite.Len(paths, 1)
	suite.Contains(suite.out.String(), "✅ Successfully downloaded 1/3 stocks")
}

func (suite *ClientTestSuite) TestRunPreset() {
	client := suite.newClient(suite.tempDir, writer.FormatCSV)

	tickers, err := client.catalog.Expand("us_tech")
	suite.Require().NoError(err)

	calls := make([]any, 0, len(tickers))
	for _, ticker := range tickers {
		calls = append(calls, suite.mockProvider.EXPECT().
			History(gomock.Any(), ticker, gomock.Any(), gomock.Any()).
			Return(suite.series(ticker, true, "100"), nil))
	}

	gomock.InOrder(calls...)

	paths, err := client.RunPreset(context.Background(), "us_tech", 3)
	suite.Require().NoError(err)
	suite.Len(paths, len(tickers))

	output := suite.out.String()
	suite.Contains(output, "📦 Downloading preset: us_tech")
	suite.Contains(output, fmt.Sprintf("✅ Successfully downloaded %d/%d stocks", len(tickers), len(tickers)))
}

func (suite *ClientTestSuite) TestRunPresetUnknown() {
	client := suite.newClient(suite.tempDir, writer.FormatCSV)

	paths, err := client.RunPreset(context.Background(), "crypto_top10", 10)

	suite.Empty(paths)
	suite.True(errors.HasCode(err, errors.ErrCodeUnknownPreset))
	suite.Equal(errors.FailureUnknownPreset, errors.KindOf(err))

	output := suite.out.String()
	suite.Contains(output, "❌ Unknown preset: crypto_top10")
	suite.Contains(output, "Available presets: indian_top10, us_top10, indian_it, indian_banks, us_tech")
	suite.NotContains(output, "🚀")
}
