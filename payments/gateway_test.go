package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/shopspring/decimal"
)

func TestMinorUnits(t *testing.T) {
	cases := map[string]int64{
		"1280.00":  128000,
		"0.00":     0,
		"0.01":     1,
		"9999.99":  999999,
		"10.005":   1000, // truncated, never rounded up
		"11798.82": 1179882,
	}
	for in, want := range cases {
		d, err := decimal.NewFromString(in)
		if err != nil {
			t.Fatalf("bad decimal literal %q: %v", in, err)
		}
		if got := MinorUnits(d); got != want {
			t.Errorf("MinorUnits(%s): expected %d, got %d", in, want, got)
		}
	}
}

func TestNewClient_RequiresCredentials(t *testing.T) {
	t.Setenv("RAZORPAY_KEY_ID", "")
	t.Setenv("RAZORPAY_KEY_SECRET", "")

	if _, err := NewClient(); err == nil {
		t.Error("Expected an error without credentials")
	}
}

func TestNewClient_DefaultsCurrency(t *testing.T) {
	t.Setenv("RAZORPAY_KEY_ID", "rzp_test_key")
	t.Setenv("RAZORPAY_KEY_SECRET", "secret")
	t.Setenv("CHECKOUT_CURRENCY", "")

	client, err := NewClient()
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	if client.currency != "INR" {
		t.Errorf("Expected default currency INR, got %q", client.currency)
	}
	if client.KeyID() != "rzp_test_key" {
		t.Errorf("Unexpected key id %q", client.KeyID())
	}
}

func TestVerifySignature(t *testing.T) {
	t.Setenv("RAZORPAY_KEY_ID", "rzp_test_key")
	t.Setenv("RAZORPAY_KEY_SECRET", "secret")

	client, err := NewClient()
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	mac := hmac.New(sha256.New, []byte("secret"))
	mac.Write([]byte("order_abc|pay_xyz"))
	valid := hex.EncodeToString(mac.Sum(nil))

	if !client.VerifySignature("order_abc", "pay_xyz", valid) {
		t.Error("Expected valid signature to verify")
	}
	if client.VerifySignature("order_abc", "pay_xyz", "deadbeef") {
		t.Error("Expected forged signature to fail")
	}
	if client.VerifySignature("order_abc", "pay_other", valid) {
		t.Error("Expected signature over different payment id to fail")
	}
}
