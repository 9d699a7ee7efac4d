package symbols

const (
	RegionIndia = "Indian Stocks (NSE)"
	RegionUS    = "US Stocks"
)

var defaultRegions = []Region{
	{
		Name: RegionIndia,
		Shorthands: []Shorthand{
			{Name: "reliance", Ticker: "RELIANCE.NS"},
			{Name: "tcs", Ticker: "TCS.NS"},
			{Name: "infy", Ticker: "INFY.NS"},
			{Name: "hdfcbank", Ticker: "HDFCBANK.NS"},
			{Name: "icicibank", Ticker: "ICICIBANK.NS"},
			{Name: "bhartiartl", Ticker: "BHARTIARTL.NS"},
			{Name: "itc", Ticker: "ITC.NS"},
			{Name: "sbin", Ticker: "SBIN.NS"},
			{Name: "hindunilvr", Ticker: "HINDUNILVR.NS"},
			{Name: "bajfinance", Ticker: "BAJFINANCE.NS"},
			{Name: "wipro", Ticker: "WIPRO.NS"},
			{Name: "maruti", Ticker: "MARUTI.NS"},
			{Name: "tatamotors", Ticker: "TATAMOTORS.NS"},
			{Name: "adaniports", Ticker: "ADANIPORTS.NS"},
			{Name: "ongc", Ticker: "ONGC.NS"},
		},
	},
	{
		Name: RegionUS,
		Shorthands: []Shorthand{
			{Name: "apple", Ticker: "AAPL"},
			{Name: "microsoft", Ticker: "MSFT"},
			{Name: "google", Ticker: "GOOGL"},
			{Name: "amazon", Ticker: "AMZN"},
			{Name: "tesla", Ticker: "TSLA"},
			{Name: "meta", Ticker: "META"},
			{Name: "nvidia", Ticker: "NVDA"},
			{Name: "jpmorgan", Ticker: "JPM"},
			{Name: "visa", Ticker: "V"},
			{Name: "walmart", Ticker: "WMT"},
		},
	},
}

var defaultPresets = []Preset{
	{
		Name:        "indian_top10",
		Description: "Top 10 NSE stocks",
		Tickers: []string{
			"RELIANCE.NS", "TCS.NS", "HDFCBANK.NS", "INFY.NS", "ICICIBANK.NS",
			"BHARTIARTL.NS", "ITC.NS", "SBIN.NS", "HINDUNILVR.NS", "BAJFINANCE.NS",
		},
	},
	{
		Name:        "us_top10",
		Description: "Top 10 US stocks",
		Tickers: []string{
			"AAPL", "MSFT", "GOOGL", "AMZN", "TSLA",
			"META", "NVDA", "JPM", "V", "WMT",
		},
	},
	{
		Name:        "indian_it",
		Description: "Indian IT sector",
		Tickers:     []string{"TCS.NS", "INFY.NS", "WIPRO.NS", "HCLTECH.NS", "TECHM.NS"},
	},
	{
		Name:        "indian_banks",
		Description: "Indian banking sector",
		Tickers:     []string{"HDFCBANK.NS", "ICICIBANK.NS", "SBIN.NS", "KOTAKBANK.NS", "AXISBANK.NS"},
	},
	{
		Name:        "us_tech",
		Description: "US tech giants",
		Tickers:     []string{"AAPL", "MSFT", "GOOGL", "META", "NVDA", "TSLA", "AMD", "INTC"},
	},
}
