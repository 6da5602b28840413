package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/archerandash/storefront/internal/domain/sales"
)

// refresh the access token this long before PayPal expires it
const tokenExpiryMargin = 60 * time.Second

// PayPalAdapter implements sales.PaymentGateway against PayPal Orders v2
type PayPalAdapter struct {
	config     *PayPalConfig
	httpClient *http.Client
	logger     *zap.Logger
	now        func() time.Time

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// PayPalOption configures a PayPalAdapter
type PayPalOption func(*PayPalAdapter)

// WithHTTPClient overrides the HTTP client
func WithHTTPClient(client *http.Client) PayPalOption {
	return func(a *PayPalAdapter) {
		if client != nil {
			a.httpClient = client
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) PayPalOption {
	return func(a *PayPalAdapter) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewPayPalAdapter creates a new PayPal adapter
func NewPayPalAdapter(config *PayPalConfig, opts ...PayPalOption) (*PayPalAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	a := &PayPalAdapter{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// CreateOrder opens a CAPTURE order for the given cart
func (a *PayPalAdapter) CreateOrder(ctx context.Context, req *sales.CreatePaymentRequest) (*sales.CreatePaymentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	currency := a.config.Currency
	if req.Currency != "" {
		currency = strings.ToUpper(req.Currency)
	}

	total := formatAmount(req.Total)
	items := make([]paypalItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, paypalItem{
			Name:     truncateRunes(item.Name, paypalMaxItemNameLength),
			Quantity: strconv.Itoa(item.Quantity),
			UnitAmount: paypalMoney{
				CurrencyCode: currency,
				Value:        formatAmount(item.UnitAmount),
			},
		})
	}

	body := paypalCreateOrderRequest{
		Intent: paypalIntentCapture,
		PurchaseUnits: []paypalPurchaseUnit{{
			Amount: paypalAmount{
				CurrencyCode: currency,
				Value:        total,
				Breakdown: &paypalBreakdown{
					ItemTotal: paypalMoney{CurrencyCode: currency, Value: total},
				},
			},
			Items: items,
		}},
	}

	var resp paypalCreateOrderResponse
	if err := a.doJSON(ctx, http.MethodPost, paypalOrdersPath, body, nil, &resp); err != nil {
		return nil, err
	}

	a.logger.Info("PayPal order created",
		zap.String("paypal_order_id", resp.ID),
		zap.String("status", resp.Status),
		zap.String("total", total),
	)

	return &sales.CreatePaymentResponse{
		OrderID: resp.ID,
		Status:  resp.Status,
	}, nil
}

// CaptureOrder captures an approved order and reports the payer
func (a *PayPalAdapter) CaptureOrder(ctx context.Context, orderID string) (*sales.CaptureResult, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, &sales.GatewayError{StatusCode: http.StatusBadRequest, Message: "order ID is required"}
	}

	path := paypalOrdersPath + "/" + url.PathEscape(orderID) + "/capture"
	headers := map[string]string{
		// lets PayPal replay the first result if this capture is retried
		"PayPal-Request-Id": "capture-" + orderID,
	}

	var resp paypalCaptureResponse
	if err := a.doJSON(ctx, http.MethodPost, path, struct{}{}, headers, &resp); err != nil {
		return nil, err
	}

	result := &sales.CaptureResult{
		OrderID: resp.ID,
		Status:  resp.Status,
		Payer:   mapPayer(resp),
	}
	if len(resp.PurchaseUnits) > 0 && len(resp.PurchaseUnits[0].Payments.Captures) > 0 {
		capture := resp.PurchaseUnits[0].Payments.Captures[0]
		result.CaptureID = capture.ID
		result.Currency = capture.Amount.CurrencyCode
		if amount, err := decimal.NewFromString(capture.Amount.Value); err == nil {
			result.Amount = amount
		}
	}

	a.logger.Info("PayPal order captured",
		zap.String("paypal_order_id", result.OrderID),
		zap.String("capture_id", result.CaptureID),
		zap.String("status", result.Status),
	)

	return result, nil
}

// doJSON sends an authorised JSON request, retrying once with a fresh token on 401
func (a *PayPalAdapter) doJSON(ctx context.Context, method, path string, body any, headers map[string]string, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	for attempt := 0; ; attempt++ {
		token, err := a.token(ctx)
		if err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, method, a.config.BaseURL+path, bytes.NewReader(payload))
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Prefer", "return=representation")
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		status, respBody, err := a.send(req)
		if err != nil {
			return err
		}

		if status == http.StatusUnauthorized && attempt == 0 {
			a.invalidateToken()
			continue
		}
		if status >= 400 {
			return newGatewayError(status, respBody)
		}

		if out == nil {
			return nil
		}
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
		return nil
	}
}

// token returns a cached access token or fetches a new one
func (a *PayPalAdapter) token(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.accessToken != "" && a.now().Add(tokenExpiryMargin).Before(a.tokenExpiry) {
		return a.accessToken, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.config.BaseURL+paypalTokenPath, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(a.config.ClientID, a.config.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	status, body, err := a.send(req)
	if err != nil {
		return "", err
	}
	if status >= 400 {
		return "", newGatewayError(status, body)
	}

	var resp paypalTokenResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to parse token response: %w", err)
	}
	if resp.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token", sales.ErrGatewayUnavailable)
	}

	a.accessToken = resp.AccessToken
	a.tokenExpiry = a.now().Add(time.Duration(resp.ExpiresIn) * time.Second)
	return a.accessToken, nil
}

func (a *PayPalAdapter) invalidateToken() {
	a.mu.Lock()
	a.accessToken = ""
	a.tokenExpiry = time.Time{}
	a.mu.Unlock()
}

// send performs the request; transport failures are reported as gateway unavailable
func (a *PayPalAdapter) send(req *http.Request) (int, []byte, error) {
	resp, err := a.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", sales.ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: failed to read response: %v", sales.ErrGatewayUnavailable, err)
	}
	return resp.StatusCode, body, nil
}

func newGatewayError(status int, body []byte) *sales.GatewayError {
	gwErr := &sales.GatewayError{StatusCode: status}

	var resp paypalErrorResponse
	if err := json.Unmarshal(body, &resp); err == nil {
		gwErr.Name = resp.Name
		gwErr.Message = resp.Message
		if gwErr.Name == "" {
			gwErr.Name = resp.Error
			gwErr.Message = resp.ErrorDescription
		}
	}
	if gwErr.Message == "" {
		gwErr.Message = http.StatusText(status)
	}
	if json.Valid(body) {
		gwErr.Details = json.RawMessage(body)
	} else if len(body) > 0 {
		quoted, _ := json.Marshal(string(body))
		gwErr.Details = quoted
	}
	return gwErr
}

func mapPayer(resp paypalCaptureResponse) sales.Customer {
	name := strings.TrimSpace(resp.Payer.Name.GivenName + " " + resp.Payer.Name.Surname)
	customer := sales.Customer{
		Name:  name,
		Email: resp.Payer.EmailAddress,
	}

	if len(resp.PurchaseUnits) == 0 || resp.PurchaseUnits[0].Shipping == nil {
		return customer
	}
	shipping := resp.PurchaseUnits[0].Shipping
	if customer.Name == "" {
		customer.Name = shipping.Name.FullName
	}
	if addr := shipping.Address; addr != nil {
		customer.Address = &sales.Address{
			Line1:       addr.AddressLine1,
			Line2:       addr.AddressLine2,
			City:        addr.AdminArea2,
			State:       addr.AdminArea1,
			PostalCode:  addr.PostalCode,
			CountryCode: addr.CountryCode,
		}
	}
	return customer
}

func formatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}

// Ensure interface compliance
var _ sales.PaymentGateway = (*PayPalAdapter)(nil)
