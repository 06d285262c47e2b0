package payments

import (
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestPayURI(t *testing.T) {
	uri, err := PayURI(PayRequest{
		PayeeAddress: "priya@upi",
		PayeeName:    "Priya Sharma",
		Amount:       decimal.NewFromInt(450),
		Note:         "Dinner split",
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(uri, "upi://pay?") {
		t.Fatalf("bad scheme: %s", uri)
	}

	q, err := url.ParseQuery(strings.TrimPrefix(uri, "upi://pay?"))
	if err != nil {
		t.Fatal(err)
	}
	for k, want := range map[string]string{
		"pa": "priya@upi",
		"pn": "Priya Sharma",
		"am": "450.00",
		"tn": "Dinner split",
		"cu": "INR",
	} {
		if got := q.Get(k); got != want {
			t.Errorf("%s = %q, want %q", k, got, want)
		}
	}
}

func TestPayURIOmitsEmptyNote(t *testing.T) {
	uri, err := PayURI(PayRequest{
		PayeeAddress: "m@bank",
		PayeeName:    "M",
		Amount:       decimal.NewFromFloat(10.5),
	})
	if err != nil {
		t.Fatal(err)
	}
	q, _ := url.ParseQuery(strings.TrimPrefix(uri, "upi://pay?"))
	if _, ok := q["tn"]; ok {
		t.Fatal("tn should be absent when note is empty")
	}
	if got := q.Get("am"); got != "10.50" {
		t.Fatalf("am = %q, want 10.50", got)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		req  PayRequest
		ok   bool
	}{
		{"valid", PayRequest{PayeeAddress: "a@b", PayeeName: "A", Amount: decimal.NewFromInt(1)}, true},
		{"no at sign", PayRequest{PayeeAddress: "ab", PayeeName: "A", Amount: decimal.NewFromInt(1)}, false},
		{"blank name", PayRequest{PayeeAddress: "a@b", PayeeName: "  ", Amount: decimal.NewFromInt(1)}, false},
		{"zero amount", PayRequest{PayeeAddress: "a@b", PayeeName: "A"}, false},
		{"negative amount", PayRequest{PayeeAddress: "a@b", PayeeName: "A", Amount: decimal.NewFromInt(-5)}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			if tc.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
