package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/stock-history/internal/config"
	"github.com/rxtech-lab/stock-history/internal/logger"
	"github.com/rxtech-lab/stock-history/internal/version"
	"github.com/rxtech-lab/stock-history/pkg/errors"
	"github.com/rxtech-lab/stock-history/pkg/marketdata"
	"github.com/rxtech-lab/stock-history/pkg/symbols"
	"github.com/rxtech-lab/stock-history/pkg/utils"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// clientFactory builds the market data client used by the download action.
type clientFactory func(config marketdata.ClientConfig, catalog *symbols.Catalog, reporter marketdata.Reporter, log *logger.Logger) (*marketdata.Client, error)

type app struct {
	out       io.Writer
	newClient clientFactory
}

func init() {
	// -v is taken by --verbose.
	cli.VersionFlag = &cli.BoolFlag{
		Name:  "version",
		Usage: "print the version",
	}
}

// downloadAction is the core logic executed by the CLI command.
// Dispatch order is --list, then --preset, then positional symbols, then help.
func (a *app) downloadAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("config-schema") {
		//nolint:exhaustruct // Empty struct is intentional for schema generation
		schema, err := utils.ToJSONSchema(config.Config{})
		if err != nil {
			return fmt.Errorf("failed to generate config schema: %w", err)
		}

		fmt.Fprintln(a.out, schema)

		return nil
	}

	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}

	cfg.Apply(overridesFrom(cmd))

	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logger.NewLogger(cfg.LogLevel)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to create logger", err)
	}

	defer log.Sync() //nolint:errcheck

	log.Debug("Configuration loaded", zap.Stringer("config", cfg))

	catalog := cfg.Catalog()

	preset := cmd.String("preset")
	if preset != "" && !catalog.HasPreset(preset) {
		return errors.Newf(errors.ErrCodeUnknownPreset,
			"invalid choice for --preset: '%s' (choose from %s)", preset, strings.Join(catalog.PresetNames(), ", "))
	}

	if cmd.Bool("list") {
		printList(a.out, cmd.Name, catalog)

		return nil
	}

	symbolArgs := cmd.Args().Slice()

	if preset == "" && len(symbolArgs) == 0 {
		if err := cli.ShowAppHelp(cmd); err != nil {
			return err
		}

		fmt.Fprintf(a.out, "\n%s\n", HelpStyle.Render(tipText))

		return nil
	}

	client, err := a.newClient(cfg.ClientConfig(!cmd.Bool("no-progress")), catalog, marketdata.NewConsoleReporter(a.out), log)
	if err != nil {
		return err
	}

	if preset != "" {
		if _, err := client.RunPreset(ctx, preset, cfg.Years); err != nil {
			log.Warn("Preset failed", zap.String("preset", preset), zap.Error(err))
		}

		return nil
	}

	client.RunBatch(ctx, symbolArgs, cfg.Years)

	return nil
}

// overridesFrom collects the flags the user set explicitly, so unset flags
// never shadow values from the config file.
func overridesFrom(cmd *cli.Command) config.Overrides {
	overrides := config.Overrides{
		Years:    optional.None[int](),
		Output:   optional.None[string](),
		Provider: optional.None[string](),
		Format:   optional.None[string](),
		LogLevel: optional.None[string](),
	}

	if cmd.IsSet("years") {
		overrides.Years = optional.Some(int(cmd.Int("years")))
	}

	if cmd.IsSet("output") {
		overrides.Output = optional.Some(cmd.String("output"))
	}

	if cmd.IsSet("provider") {
		overrides.Provider = optional.Some(cmd.String("provider"))
	}

	if cmd.IsSet("format") {
		overrides.Format = optional.Some(cmd.String("format"))
	}

	if cmd.Bool("verbose") {
		overrides.LogLevel = optional.Some("debug")
	}

	return overrides
}

func newCommand(out io.Writer, newClient clientFactory) *cli.Command {
	a := &app{out: out, newClient: newClient}

	versionText, err := version.Display(version.GetVersion())
	if err != nil {
		versionText = version.GetVersion()
	}

	return &cli.Command{
		Name:      "download",
		Usage:     "Download historical stock data from Yahoo Finance",
		ArgsUsage: "[SYMBOL ...]",
		Version:   versionText,
		Writer:    out,
		Description: "Works with Indian (NSE) and US stocks. Shorthands such as 'reliance' or 'apple'\n" +
			"resolve to their tickers; see --list.\n\n" +
			"Examples:\n" +
			"  download RELIANCE.NS\n" +
			"  download AAPL TSLA MSFT\n" +
			"  download reliance tcs infy\n" +
			"  download --years 5 HDFCBANK.NS\n" +
			"  download --output data/ TCS.NS\n" +
			"  download --preset us_tech --years 3\n" +
			"  download --list",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "years",
				Usage: "Years of historical data",
				Value: 10,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output directory",
				Value:   ".",
			},
			&cli.StringFlag{
				Name:  "preset",
				Usage: fmt.Sprintf("Download preset stock list (%s)", strings.Join(symbols.Default().PresetNames(), ", ")),
			},
			&cli.BoolFlag{
				Name:    "list",
				Aliases: []string{"l"},
				Usage:   "List available stock shortcuts",
			},
			&cli.StringFlag{
				Name:    "provider",
				Aliases: []string{"p"},
				Usage:   fmt.Sprintf("Data provider to use (%s)", strings.Join(marketdata.GetSupportedProviders(), ", ")),
				Value:   "yahoo",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output file format (csv, parquet)",
				Value:   "csv",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   fmt.Sprintf("Path to a YAML config file (default $%s)", config.EnvConfigPath),
			},
			&cli.BoolFlag{
				Name:  "config-schema",
				Usage: "Print the JSON schema of the config file and exit",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Write debug diagnostics to stderr",
			},
			&cli.BoolFlag{
				Name:  "no-progress",
				Usage: "Hide the spinner shown while a request is in flight",
			},
		},
		Action: a.downloadAction,
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newCommand(os.Stdout, marketdata.NewClient)

	if err := cmd.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("❌ "+err.Error()))
		stop()
		os.Exit(1)
	}
}
