package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/floravitalis/creatinamax/internal/domain/payment"
)

func newCardRequest(amount int64, method payment.MethodType) *payment.Request {
	req := &payment.Request{
		Amount:   decimal.NewFromInt(amount),
		Currency: "BRL",
		Method:   payment.Method{Type: method, Installments: 1},
		Customer: payment.Customer{
			Name:     "Maria Oliveira",
			Email:    "maria@example.com",
			Phone:    "11988887777",
			Document: "12345678901",
		},
		Items: []payment.Item{
			{ID: "prod-creatina", Title: "Creatina Monohidratada 300g", Quantity: 1, UnitPrice: decimal.NewFromInt(amount)},
		},
	}
	if method.RequiresCard() {
		req.Card = &payment.Card{
			Number:     "5031433215406351",
			HolderName: "MARIA OLIVEIRA",
			ExpMonth:   11,
			ExpYear:    2030,
			CVV:        "123",
		}
	}
	return req
}

func TestMercadoPagoSimulatedCardOutcomes(t *testing.T) {
	g := NewMercadoPago(placeholderCredential, true, DefaultMercadoPagoPolicy(), 5*time.Second)
	ctx := context.Background()

	approved, err := g.ProcessPayment(ctx, newCardRequest(999, payment.MethodCreditCard))
	if err != nil {
		t.Fatalf("ProcessPayment: %v", err)
	}
	if approved.Status != payment.StatusApproved {
		t.Errorf("cartão de 999 com status %s, esperava approved", approved.Status)
	}
	if approved.Gateway != ProviderMercadoPago {
		t.Errorf("Gateway = %s, esperava %s", approved.Gateway, ProviderMercadoPago)
	}

	rejected, err := g.ProcessPayment(ctx, newCardRequest(1000, payment.MethodCreditCard))
	if err != nil {
		t.Fatalf("ProcessPayment: %v", err)
	}
	if rejected.Status != payment.StatusRejected {
		t.Errorf("cartão de 1000 com status %s, esperava rejected", rejected.Status)
	}
}

func TestMercadoPagoSimulatedPixStaysPending(t *testing.T) {
	g := NewMercadoPago(placeholderCredential, true, DefaultMercadoPagoPolicy(), 5*time.Second)
	ctx := context.Background()

	resp, err := g.ProcessPayment(ctx, newCardRequest(2500, payment.MethodPix))
	if err != nil {
		t.Fatalf("ProcessPayment: %v", err)
	}
	if resp.Status != payment.StatusPending {
		t.Errorf("PIX com status %s, esperava pending mesmo acima do limite de cartão", resp.Status)
	}
	if resp.PixQRCode == "" || resp.PixQRCodeBase64 == "" {
		t.Error("PIX simulado sem payload de QR code")
	}
}

func TestMercadoPagoSimulatedStatusIsDeterministic(t *testing.T) {
	g := NewMercadoPago(placeholderCredential, true, DefaultMercadoPagoPolicy(), 5*time.Second)
	ctx := context.Background()

	resp, err := g.ProcessPayment(ctx, newCardRequest(100, payment.MethodCreditCard))
	if err != nil {
		t.Fatalf("ProcessPayment: %v", err)
	}

	for i := 0; i < 3; i++ {
		got, err := g.GetPaymentStatus(ctx, resp.ID)
		if err != nil {
			t.Fatalf("GetPaymentStatus: %v", err)
		}
		if got.Status != resp.Status {
			t.Errorf("consulta %d retornou %s, esperava %s estável", i, got.Status, resp.Status)
		}
		if got.ID != resp.ID {
			t.Errorf("consulta %d retornou id %s, esperava %s", i, got.ID, resp.ID)
		}
	}

	// Id fora do formato sintético responde como pendente
	unknown, err := g.GetPaymentStatus(ctx, "123456789")
	if err != nil {
		t.Fatalf("GetPaymentStatus: %v", err)
	}
	if unknown.Status != payment.StatusPending {
		t.Errorf("id desconhecido com status %s, esperava pending", unknown.Status)
	}
}

func TestMercadoPagoDoesNotMutateRequest(t *testing.T) {
	g := NewMercadoPago(placeholderCredential, true, DefaultMercadoPagoPolicy(), 5*time.Second)

	req := newCardRequest(100, payment.MethodCreditCard)
	amountBefore := req.Amount.String()
	cardBefore := *req.Card

	if _, err := g.ProcessPayment(context.Background(), req); err != nil {
		t.Fatalf("ProcessPayment: %v", err)
	}
	if req.Amount.String() != amountBefore {
		t.Errorf("Amount alterado de %s para %s", amountBefore, req.Amount)
	}
	if *req.Card != cardBefore {
		t.Error("dados do cartão foram alterados pelo adaptador")
	}
}

func TestMercadoPagoValidatesBeforeNetwork(t *testing.T) {
	g := NewMercadoPago("token-real", false, DefaultMercadoPagoPolicy(), 5*time.Second)
	g.baseURL = "http://127.0.0.1:1" // qualquer chamada de rede falharia

	req := newCardRequest(100, payment.MethodCreditCard)
	req.Card = nil

	_, err := g.ProcessPayment(context.Background(), req)
	var verr *payment.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("esperava ValidationError, obteve %v", err)
	}
	if verr.Field != "card" {
		t.Errorf("campo do erro = %s, esperava card", verr.Field)
	}
}

func TestMercadoPagoStatusTable(t *testing.T) {
	cases := map[string]payment.Status{
		"approved":     payment.StatusApproved,
		"in_process":   payment.StatusPending,
		"rejected":     payment.StatusRejected,
		"refunded":     payment.StatusCancelled,
		"charged_back": payment.StatusCancelled,
		"nunca_visto":  payment.StatusPending,
	}
	for native, want := range cases {
		if got := mpMapStatus(native); got != want {
			t.Errorf("mpMapStatus(%q) = %s, esperava %s", native, got, want)
		}
	}
}

func TestMercadoPagoLivePayment(t *testing.T) {
	var received mpPaymentRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/payments" || r.Method != http.MethodPost {
			t.Errorf("chamada inesperada: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer token-de-teste" {
			t.Errorf("Authorization = %q", got)
		}
		if r.Header.Get("X-Idempotency-Key") == "" {
			t.Error("requisição sem chave de idempotência")
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("corpo inválido: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":                 987654,
			"status":             "approved",
			"payment_method_id":  "credit_card",
			"transaction_amount": 149.90,
			"installments":       1,
		})
	}))
	defer server.Close()

	g := NewMercadoPago("token-de-teste", false, DefaultMercadoPagoPolicy(), 5*time.Second)
	g.baseURL = server.URL

	req := newCardRequest(100, payment.MethodCreditCard)
	req.Amount = decimal.NewFromFloat(149.90)

	resp, err := g.ProcessPayment(context.Background(), req)
	if err != nil {
		t.Fatalf("ProcessPayment: %v", err)
	}
	if resp.ID != "987654" || resp.GatewayPaymentID != "987654" {
		t.Errorf("id = %s/%s, esperava 987654", resp.ID, resp.GatewayPaymentID)
	}
	if resp.Status != payment.StatusApproved {
		t.Errorf("status = %s, esperava approved", resp.Status)
	}
	if received.TransactionAmount != 149.90 {
		t.Errorf("valor enviado = %v, esperava 149.90", received.TransactionAmount)
	}
	if received.Payer.Identification.Type != "CPF" {
		t.Errorf("tipo de documento = %s, esperava CPF", received.Payer.Identification.Type)
	}
	if received.Payer.FirstName != "Maria" || received.Payer.LastName != "Oliveira" {
		t.Errorf("nome enviado = %s %s", received.Payer.FirstName, received.Payer.LastName)
	}
}

func TestMercadoPagoLiveErrorResponses(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/payments/rejeitado":
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"message":"invalid access token"}`))
		case "/v1/payments/quebrado":
			w.Write([]byte(`{"id": not-json`))
		}
	}))
	defer server.Close()

	g := NewMercadoPago("token-de-teste", false, DefaultMercadoPagoPolicy(), 5*time.Second)
	g.baseURL = server.URL
	ctx := context.Background()

	_, err := g.GetPaymentStatus(ctx, "rejeitado")
	var gerr *payment.GatewayError
	if !errors.As(err, &gerr) {
		t.Fatalf("esperava GatewayError em HTTP 403, obteve %v", err)
	}
	if gerr.Timeout {
		t.Error("rejeição HTTP marcada como timeout")
	}

	if _, err := g.GetPaymentStatus(ctx, "quebrado"); !errors.As(err, &gerr) {
		t.Fatalf("esperava GatewayError em JSON malformado, obteve %v", err)
	}
}

func TestMercadoPagoLiveTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	g := NewMercadoPago("token-de-teste", false, DefaultMercadoPagoPolicy(), 20*time.Millisecond)
	g.baseURL = server.URL

	_, err := g.GetPaymentStatus(context.Background(), "lento")
	if !payment.IsGatewayTimeout(err) {
		t.Fatalf("esperava timeout de gateway, obteve %v", err)
	}
}

func TestDocumentType(t *testing.T) {
	cases := map[string]string{
		"12345678901":        "CPF",
		"123.456.789-01":     "CPF",
		"12345678000199":     "CNPJ",
		"12.345.678/0001-99": "CNPJ",
	}
	for doc, want := range cases {
		if got := documentType(doc); got != want {
			t.Errorf("documentType(%q) = %s, esperava %s", doc, got, want)
		}
	}
}

func TestSplitName(t *testing.T) {
	first, last := splitName("Ana Clara de Souza")
	if first != "Ana" || last != "Clara de Souza" {
		t.Errorf("splitName = %q/%q", first, last)
	}
	first, last = splitName("Madonna")
	if first != "Madonna" || last != "" {
		t.Errorf("splitName de nome único = %q/%q", first, last)
	}
}
