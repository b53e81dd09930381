package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type fakeUpgrader struct {
	upgraded []string
	err      error
}

func (f *fakeUpgrader) Upgrade(ctx context.Context, userID string) error {
	f.upgraded = append(f.upgraded, userID)
	return f.err
}

func signCallback(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	client := NewRazorpayClient("key_id", "secret")

	good := signCallback("secret", "order_1", "pay_1")
	if !client.VerifySignature("order_1", "pay_1", good) {
		t.Fatal("valid signature rejected")
	}
	if client.VerifySignature("order_1", "pay_1", "deadbeef") {
		t.Fatal("bogus signature accepted")
	}
	if client.VerifySignature("order_2", "pay_1", good) {
		t.Fatal("signature must bind the order id")
	}

	var nilClient *RazorpayClient
	if nilClient.VerifySignature("order_1", "pay_1", good) {
		t.Fatal("nil client must never verify")
	}
}

func TestCreateOrderRejectsBadAmount(t *testing.T) {
	svc := NewService(NewRazorpayClient("", ""), NewMemoryRepo(), nil)
	if _, err := svc.CreateOrder(context.Background(), CreateOrderInput{UserID: "u1", Amount: 0}); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestCreateOrderDemoModeWhenUnconfigured(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(NewRazorpayClient("", ""), repo, nil)

	result, err := svc.CreateOrder(context.Background(), CreateOrderInput{UserID: "u1", Amount: 99.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Demo {
		t.Fatal("expected demo order without credentials")
	}
	if !strings.HasPrefix(result.OrderID, "order_") {
		t.Fatalf("order id = %q", result.OrderID)
	}
	if result.Key != demoCheckoutKey {
		t.Fatalf("key = %q, want demo key", result.Key)
	}
	if result.Amount != 9900 {
		t.Fatalf("amount = %d, want 9900 paise", result.Amount)
	}
	if result.Currency != "INR" {
		t.Fatalf("currency = %q, want INR default", result.Currency)
	}

	stored, err := repo.GetOrder(context.Background(), result.OrderID)
	if err != nil {
		t.Fatalf("order not recorded: %v", err)
	}
	if !stored.Demo || stored.Status != StatusCreated {
		t.Fatalf("unexpected stored order: %+v", stored)
	}
}

func TestCreateOrderLive(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/orders" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if user, _, ok := r.BasicAuth(); !ok || user != "key_id" {
			t.Error("missing basic auth")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "order_live_1", "amount": 9900, "currency": "INR", "status": "created"}`))
	}))
	t.Cleanup(server.Close)

	client := NewRazorpayClient("key_id", "secret")
	client.BaseURL = server.URL
	svc := NewService(client, NewMemoryRepo(), nil)

	result, err := svc.CreateOrder(context.Background(), CreateOrderInput{UserID: "u1", Amount: 99.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Demo {
		t.Fatal("live order must not be flagged demo")
	}
	if result.OrderID != "order_live_1" {
		t.Fatalf("order id = %q", result.OrderID)
	}
	if result.Key != "key_id" {
		t.Fatalf("key = %q, want live key id", result.Key)
	}
}

func TestCreateOrderFallsBackToDemoOnAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"description": "auth failed"}}`, http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)

	client := NewRazorpayClient("key_id", "secret")
	client.BaseURL = server.URL
	svc := NewService(client, NewMemoryRepo(), nil)

	result, err := svc.CreateOrder(context.Background(), CreateOrderInput{UserID: "u1", Amount: 99.0})
	if err != nil {
		t.Fatalf("checkout must degrade to demo, got %v", err)
	}
	if !result.Demo {
		t.Fatal("expected demo fallback after API failure")
	}
}

func TestVerifyRejectsBadSignatureWhenConfigured(t *testing.T) {
	svc := NewService(NewRazorpayClient("key_id", "secret"), NewMemoryRepo(), &fakeUpgrader{})
	_, err := svc.Verify(context.Background(), VerifyInput{
		UserID:            "u1",
		RazorpayOrderID:   "order_1",
		RazorpayPaymentID: "pay_1",
		RazorpaySignature: "deadbeef",
	})
	if !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestVerifyRequiresIDs(t *testing.T) {
	svc := NewService(NewRazorpayClient("", ""), NewMemoryRepo(), nil)
	if _, err := svc.Verify(context.Background(), VerifyInput{UserID: "u1"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestVerifyUpgradesUser(t *testing.T) {
	repo := NewMemoryRepo()
	upgrader := &fakeUpgrader{}
	client := NewRazorpayClient("key_id", "secret")
	svc := NewService(client, repo, upgrader)
	ctx := context.Background()

	if err := repo.CreateOrder(ctx, PaymentOrder{
		OrderID:  "order_1",
		UserID:   "u1",
		Amount:   9900,
		Currency: "INR",
		Status:   StatusCreated,
	}); err != nil {
		t.Fatalf("seed order: %v", err)
	}

	payment, err := svc.Verify(ctx, VerifyInput{
		UserID:            "u1",
		RazorpayOrderID:   "order_1",
		RazorpayPaymentID: "pay_1",
		RazorpaySignature: signCallback("secret", "order_1", "pay_1"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payment.Amount != 9900 {
		t.Fatalf("amount = %d, want amount from the recorded order", payment.Amount)
	}
	if payment.Status != StatusCompleted {
		t.Fatalf("status = %q", payment.Status)
	}
	if len(upgrader.upgraded) != 1 || upgrader.upgraded[0] != "u1" {
		t.Fatalf("upgrader calls = %v", upgrader.upgraded)
	}

	order, err := repo.GetOrder(ctx, "order_1")
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if order.Status != StatusCompleted {
		t.Fatalf("order status = %q, want completed", order.Status)
	}
}

func TestVerifyDemoModeSkipsSignature(t *testing.T) {
	upgrader := &fakeUpgrader{}
	svc := NewService(NewRazorpayClient("", ""), NewMemoryRepo(), upgrader)

	payment, err := svc.Verify(context.Background(), VerifyInput{
		UserID:            "u1",
		RazorpayOrderID:   "order_demo",
		RazorpayPaymentID: "pay_demo",
	})
	if err != nil {
		t.Fatalf("demo verify must succeed, got %v", err)
	}
	if payment.Status != StatusCompleted {
		t.Fatalf("status = %q", payment.Status)
	}
	if len(upgrader.upgraded) != 1 {
		t.Fatal("demo verification must still upgrade the user")
	}
}
