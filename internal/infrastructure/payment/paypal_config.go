package payment

import (
	"errors"
	"strings"
	"time"

	"github.com/archerandash/storefront/internal/infrastructure/config"
)

const (
	paypalSandboxURL = "https://api-m.sandbox.paypal.com"
	paypalLiveURL    = "https://api-m.paypal.com"

	defaultPayPalCurrency = "GBP"
	defaultPayPalTimeout  = 30 * time.Second
)

// PayPalConfig contains configuration for the PayPal REST API
type PayPalConfig struct {
	// ClientID is the REST application client ID
	ClientID string
	// ClientSecret is the REST application secret
	ClientSecret string
	// BaseURL is the API host, derived from the environment when empty
	BaseURL string
	// Currency is the ISO 4217 code used for every order
	Currency string
	// Timeout bounds each HTTP request to PayPal
	Timeout time.Duration
}

// Errors for configuration validation
var (
	ErrPayPalMissingClientID     = errors.New("paypal: missing client ID")
	ErrPayPalMissingClientSecret = errors.New("paypal: missing client secret")
	ErrPayPalInvalidEnvironment  = errors.New("paypal: invalid environment, must be sandbox or live")
)

// NewPayPalConfig builds an adapter configuration from application config
func NewPayPalConfig(cfg config.PayPalConfig) (*PayPalConfig, error) {
	baseURL, err := paypalBaseURL(cfg.Environment)
	if err != nil {
		return nil, err
	}
	c := &PayPalConfig{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		BaseURL:      baseURL,
		Currency:     cfg.Currency,
		Timeout:      cfg.Timeout,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate validates the configuration and fills defaults
func (c *PayPalConfig) Validate() error {
	if c.ClientID == "" {
		return ErrPayPalMissingClientID
	}
	if c.ClientSecret == "" {
		return ErrPayPalMissingClientSecret
	}
	if c.BaseURL == "" {
		c.BaseURL = paypalSandboxURL
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.Currency == "" {
		c.Currency = defaultPayPalCurrency
	}
	c.Currency = strings.ToUpper(c.Currency)
	if c.Timeout <= 0 {
		c.Timeout = defaultPayPalTimeout
	}
	return nil
}

// paypalBaseURL maps an environment name to its API host
func paypalBaseURL(environment string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(environment)) {
	case "", "sandbox":
		return paypalSandboxURL, nil
	case "live", "production":
		return paypalLiveURL, nil
	default:
		return "", ErrPayPalInvalidEnvironment
	}
}
