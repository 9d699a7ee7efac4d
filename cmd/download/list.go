package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/rxtech-lab/stock-history/pkg/marketdata"
	"github.com/rxtech-lab/stock-history/pkg/symbols"
)

const listRuleWidth = 40

var regionIcons = map[string]string{
	symbols.RegionIndia: "🇮🇳",
	symbols.RegionUS:    "🇺🇸",
}

// tipText is printed under the usage help when there is nothing to download.
const tipText = "💡 Tip: Use --list to see available shortcuts"

// printList writes every shorthand region sorted by name, the presets with
// their descriptions, the providers and a few usage examples.
func printList(w io.Writer, name string, catalog *symbols.Catalog) {
	for _, region := range catalog.Regions() {
		icon, ok := regionIcons[region.Name]
		if !ok {
			icon = "🌐"
		}

		printHeader(w, fmt.Sprintf("%s %s:", icon, region.Name))

		shorthands := region.Shorthands
		sort.Slice(shorthands, func(i, j int) bool { return shorthands[i].Name < shorthands[j].Name })

		for _, s := range shorthands {
			fmt.Fprintf(w, "  %-15s → %s\n", s.Name, TickerStyle.Render(s.Ticker))
		}
	}

	printHeader(w, "📦 Presets:")

	for _, preset := range catalog.Presets() {
		description := preset.Description
		if description == "" {
			description = strings.Join(preset.Tickers, ", ")
		}

		fmt.Fprintf(w, "  %-15s→ %s\n", preset.Name, description)
	}

	printHeader(w, "🔌 Providers:")

	for _, providerName := range marketdata.GetSupportedProviders() {
		info, err := marketdata.GetProviderInfo(providerName)
		if err != nil {
			continue
		}

		fmt.Fprintf(w, "  %-15s→ %s\n", info.Name, info.Description)
	}

	fmt.Fprintf(w, "\n%s\n", TitleStyle.Render("💡 Usage examples:"))

	for _, example := range []string{
		"reliance",
		"AAPL TSLA MSFT",
		"--preset indian_top10",
		"--years 5 --output data/ TCS.NS",
	} {
		fmt.Fprintf(w, "  %s\n", HelpStyle.Render(name+" "+example))
	}
}

func printHeader(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n", TitleStyle.Render(title))
	fmt.Fprintln(w, strings.Repeat("-", listRuleWidth))
}
