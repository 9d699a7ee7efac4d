package marketdata

import (
	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/stock-history/pkg/errors"
	"github.com/rxtech-lab/stock-history/pkg/marketdata/provider"
	"github.com/rxtech-lab/stock-history/pkg/marketdata/writer"
)

// ClientConfig holds the configuration for the market data client.
type ClientConfig struct {
	ProviderType  provider.ProviderType `validate:"required,oneof=yahoo polygon binance"`
	Format        writer.Format         `validate:"required,oneof=csv parquet"`
	OutputDir     string                `validate:"required"`
	PolygonApiKey string                `validate:"required_if=ProviderType polygon"`
	// ShowProgress renders a spinner on stderr while a provider request is in flight.
	ShowProgress bool
}

// Validate checks the configuration.
func (c ClientConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid client configuration", err)
	}

	return nil
}
