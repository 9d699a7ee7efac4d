package marketdata

import (
	"context"
	"strings"

	"github.com/rxtech-lab/stock-history/pkg/errors"
	"go.uber.org/zap"
)

// RunBatch downloads every input in order and returns the paths that were
// written. Inputs are resolved through the shorthand catalog first. Failures
// are skipped, so the result may be empty. A cancelled context stops the
// loop before the next input.
func (c *Client) RunBatch(ctx context.Context, inputs []string, years int) []string {
	c.reporter.BatchStarted(len(inputs), c.config.OutputDir)

	paths := make([]string, 0, len(inputs))

	for _, input := range inputs {
		if err := ctx.Err(); err != nil {
			c.logger.Warn("Batch cancelled", zap.Error(err))

			break
		}

		ticker, shorthand := c.catalog.Resolve(input)
		if shorthand {
			c.reporter.Resolved(strings.ToLower(input), ticker)
		}

		result, err := c.Download(ctx, ticker, years)
		if err != nil {
			continue
		}

		paths = append(paths, result.Path)
	}

	c.reporter.BatchFinished(len(paths), len(inputs))

	return paths
}

// RunPreset expands a named preset and runs it as a batch. An unknown preset
// is reported with the available names and nothing is downloaded.
func (c *Client) RunPreset(ctx context.Context, name string, years int) ([]string, error) {
	tickers, err := c.catalog.Expand(name)
	if err != nil {
		c.reporter.UnknownPreset(name, c.catalog.PresetNames())
		c.logger.Debug("Unknown preset", zap.String("preset", name), zap.Int("code", int(errors.GetCode(err))))

		return []string{}, err
	}

	c.reporter.PresetStarted(name)

	return c.RunBatch(ctx, tickers, years), nil
}
