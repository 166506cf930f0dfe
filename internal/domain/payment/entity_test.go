package payment

import (
	"testing"

	"github.com/shopspring/decimal"
)

func validRequest(method MethodType) *Request {
	req := &Request{
		Amount:   decimal.NewFromFloat(149.90),
		Currency: "BRL",
		Method:   Method{Type: method, Installments: 1},
		Customer: Customer{
			Name:     "Maria Oliveira",
			Email:    "maria@example.com",
			Document: "12345678901",
		},
	}
	if method.RequiresCard() {
		req.Card = &Card{Number: "5031433215406351", HolderName: "MARIA OLIVEIRA", ExpMonth: 11, ExpYear: 2030, CVV: "123"}
	}
	return req
}

func TestRequestValidate(t *testing.T) {
	cases := []struct {
		name      string
		mutate    func(*Request)
		wantField string
	}{
		{"válida", func(r *Request) {}, ""},
		{"pix sem cartão é válido", func(r *Request) { r.Card = nil }, ""},
		{"valor zero", func(r *Request) { r.Amount = decimal.Zero }, "amount"},
		{"valor negativo", func(r *Request) { r.Amount = decimal.NewFromInt(-1) }, "amount"},
		{"sem moeda", func(r *Request) { r.Currency = "" }, "currency"},
		{"meio desconhecido", func(r *Request) { r.Method.Type = "boleto" }, "payment_method.type"},
		{"parcelas negativas", func(r *Request) { r.Method.Installments = -1 }, "payment_method.installments"},
		{"sem nome", func(r *Request) { r.Customer.Name = "" }, "customer.name"},
		{"sem email", func(r *Request) { r.Customer.Email = "" }, "customer.email"},
		{"sem documento", func(r *Request) { r.Customer.Document = "" }, "customer.document"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest(MethodPix)
			tc.mutate(req)
			err := req.Validate()
			if tc.wantField == "" {
				if err != nil {
					t.Fatalf("esperava requisição válida, obteve %v", err)
				}
				return
			}
			verr, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("esperava ValidationError, obteve %v", err)
			}
			if verr.Field != tc.wantField {
				t.Errorf("campo = %s, esperava %s", verr.Field, tc.wantField)
			}
		})
	}
}

func TestRequestValidateCardRules(t *testing.T) {
	cases := []struct {
		name      string
		mutate    func(*Request)
		wantField string
	}{
		{"cartão completo", func(r *Request) {}, ""},
		{"sem cartão", func(r *Request) { r.Card = nil }, "card"},
		{"sem número", func(r *Request) { r.Card.Number = "" }, "card"},
		{"sem titular", func(r *Request) { r.Card.HolderName = "" }, "card"},
		{"sem cvv", func(r *Request) { r.Card.CVV = "" }, "card"},
		{"mês zero", func(r *Request) { r.Card.ExpMonth = 0 }, "card.exp_month"},
		{"mês treze", func(r *Request) { r.Card.ExpMonth = 13 }, "card.exp_month"},
	}

	for _, method := range []MethodType{MethodCreditCard, MethodDebitCard} {
		for _, tc := range cases {
			t.Run(string(method)+"/"+tc.name, func(t *testing.T) {
				req := validRequest(method)
				tc.mutate(req)
				err := req.Validate()
				if tc.wantField == "" {
					if err != nil {
						t.Fatalf("esperava requisição válida, obteve %v", err)
					}
					return
				}
				verr, ok := err.(*ValidationError)
				if !ok {
					t.Fatalf("esperava ValidationError, obteve %v", err)
				}
				if verr.Field != tc.wantField {
					t.Errorf("campo = %s, esperava %s", verr.Field, tc.wantField)
				}
			})
		}
	}
}

func TestMethodTypeRequiresCard(t *testing.T) {
	if MethodPix.RequiresCard() {
		t.Error("PIX não exige cartão")
	}
	if !MethodCreditCard.RequiresCard() || !MethodDebitCard.RequiresCard() {
		t.Error("cartões exigem dados de cartão")
	}
	if MethodType("boleto").IsValid() {
		t.Error("meio desconhecido não deveria ser válido")
	}
}
