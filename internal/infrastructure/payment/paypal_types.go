package payment

import "encoding/json"

const (
	paypalTokenPath  = "/v1/oauth2/token"
	paypalOrdersPath = "/v2/checkout/orders"

	paypalIntentCapture = "CAPTURE"

	// PayPal rejects item names longer than this
	paypalMaxItemNameLength = 127
)

type paypalTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type paypalMoney struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

type paypalBreakdown struct {
	ItemTotal paypalMoney `json:"item_total"`
}

type paypalAmount struct {
	CurrencyCode string           `json:"currency_code"`
	Value        string           `json:"value"`
	Breakdown    *paypalBreakdown `json:"breakdown,omitempty"`
}

type paypalItem struct {
	Name       string      `json:"name"`
	Quantity   string      `json:"quantity"`
	UnitAmount paypalMoney `json:"unit_amount"`
}

type paypalPurchaseUnit struct {
	Amount paypalAmount `json:"amount"`
	Items  []paypalItem `json:"items,omitempty"`
}

type paypalCreateOrderRequest struct {
	Intent        string               `json:"intent"`
	PurchaseUnits []paypalPurchaseUnit `json:"purchase_units"`
}

type paypalCreateOrderResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type paypalName struct {
	GivenName string `json:"given_name"`
	Surname   string `json:"surname"`
	FullName  string `json:"full_name"`
}

type paypalPayer struct {
	Name         paypalName `json:"name"`
	EmailAddress string     `json:"email_address"`
}

type paypalAddress struct {
	AddressLine1 string `json:"address_line_1"`
	AddressLine2 string `json:"address_line_2"`
	AdminArea2   string `json:"admin_area_2"`
	AdminArea1   string `json:"admin_area_1"`
	PostalCode   string `json:"postal_code"`
	CountryCode  string `json:"country_code"`
}

type paypalShipping struct {
	Name    paypalName     `json:"name"`
	Address *paypalAddress `json:"address"`
}

type paypalCapture struct {
	ID     string      `json:"id"`
	Status string      `json:"status"`
	Amount paypalMoney `json:"amount"`
}

type paypalCapturedUnit struct {
	Shipping *paypalShipping `json:"shipping"`
	Payments struct {
		Captures []paypalCapture `json:"captures"`
	} `json:"payments"`
}

type paypalCaptureResponse struct {
	ID            string               `json:"id"`
	Status        string               `json:"status"`
	Payer         paypalPayer          `json:"payer"`
	PurchaseUnits []paypalCapturedUnit `json:"purchase_units"`
}

type paypalErrorResponse struct {
	Name             string          `json:"name"`
	Message          string          `json:"message"`
	DebugID          string          `json:"debug_id"`
	Details          json.RawMessage `json:"details"`
	Error            string          `json:"error"`
	ErrorDescription string          `json:"error_description"`
}
