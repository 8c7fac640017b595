package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/aiaero/shopsite-api/models"
	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

const razorpayOrdersURL = "https://api.razorpay.com/v1/orders"

// Client talks to the Razorpay REST API.
type Client struct {
	keyID     string
	keySecret string
	currency  string
	http      *resty.Client
}

func NewClient() (*Client, error) {
	keyID := os.Getenv("RAZORPAY_KEY_ID")
	keySecret := os.Getenv("RAZORPAY_KEY_SECRET")
	if keyID == "" || keySecret == "" {
		return nil, fmt.Errorf("razorpay credentials are not set")
	}

	currency := os.Getenv("CHECKOUT_CURRENCY")
	if currency == "" {
		currency = "INR"
	}

	return &Client{
		keyID:     keyID,
		keySecret: keySecret,
		currency:  currency,
		http:      resty.New().SetTimeout(30 * time.Second),
	}, nil
}

func (c *Client) KeyID() string {
	return c.keyID
}

// MinorUnits converts a total to the gateway's minor currency unit,
// truncating to an integer.
func MinorUnits(total decimal.Decimal) int64 {
	return total.Mul(decimal.NewFromInt(100)).IntPart()
}

// CreateOrder registers the order with the gateway and returns the gateway
// order id used to correlate the later payment callback.
func (c *Client) CreateOrder(order *models.Order) (string, error) {
	body := map[string]any{
		"amount":          MinorUnits(order.Total),
		"currency":        c.currency,
		"receipt":         fmt.Sprintf("order-%d", order.ID),
		"payment_capture": 1,
	}

	resp, err := c.http.R().
		SetBasicAuth(c.keyID, c.keySecret).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetBody(body).
		Post(razorpayOrdersURL)
	if err != nil {
		return "", err
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("razorpay order request failed with status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	var response map[string]any
	if err := json.Unmarshal(resp.Body(), &response); err != nil {
		return "", fmt.Errorf("failed to parse razorpay response: %w", err)
	}

	id, ok := response["id"].(string)
	if !ok || id == "" {
		return "", fmt.Errorf("order id not found in razorpay response: %v", response)
	}
	return id, nil
}

// VerifySignature checks the callback signature: HMAC-SHA256 over
// "<gatewayOrderID>|<paymentID>" keyed with the API secret.
func (c *Client) VerifySignature(gatewayOrderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(c.keySecret))
	mac.Write([]byte(gatewayOrderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
