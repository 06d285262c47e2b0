// Package payments builds UPI deep links. The link is handed to the
// client and opened by whatever app the OS resolves; no response comes
// back.
package payments

import (
	"errors"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

type PayRequest struct {
	PayeeAddress string          // pa: payee VPA, e.g. name@bank
	PayeeName    string          // pn
	Amount       decimal.Decimal // am
	Note         string          // tn
}

func (r PayRequest) Validate() error {
	if !strings.Contains(r.PayeeAddress, "@") {
		return errors.New("payee address must be a VPA (name@bank)")
	}
	if strings.TrimSpace(r.PayeeName) == "" {
		return errors.New("payee name required")
	}
	if !r.Amount.IsPositive() {
		return errors.New("amount must be > 0")
	}
	return nil
}

// PayURI renders upi://pay?pa=&pn=&am=&tn=&cu=INR with the amount
// fixed to two decimal places.
func PayURI(r PayRequest) (string, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}
	q := url.Values{}
	q.Set("pa", r.PayeeAddress)
	q.Set("pn", r.PayeeName)
	q.Set("am", r.Amount.StringFixed(2))
	if r.Note != "" {
		q.Set("tn", r.Note)
	}
	q.Set("cu", "INR")
	return "upi://pay?" + q.Encode(), nil
}
