package gateway

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/floravitalis/creatinamax/internal/domain/payment"
)

// SimulationPolicy define os resultados determinísticos do modo simulado
// de um adaptador. É injetada na construção para que testes possam
// exercitar limites arbitrários de aprovação sem tocar no adaptador
type SimulationPolicy struct {
	// ApproveBelow é o valor limite: cobranças com cartão abaixo dele são
	// aprovadas, a partir dele são rejeitadas
	ApproveBelow decimal.Decimal
}

// CardOutcome decide o resultado simulado de uma cobrança com cartão
func (p SimulationPolicy) CardOutcome(amount decimal.Decimal) payment.Status {
	if amount.LessThan(p.ApproveBelow) {
		return payment.StatusApproved
	}
	return payment.StatusRejected
}

// DefaultMercadoPagoPolicy aprova cartões abaixo de R$ 1000,00 no modo
// simulado
func DefaultMercadoPagoPolicy() SimulationPolicy {
	return SimulationPolicy{ApproveBelow: decimal.NewFromInt(1000)}
}

// DefaultPagarMePolicy aprova cartões abaixo de R$ 500,00 no modo
// simulado. O limite difere de propósito do Mercado Pago para exercitar
// os dois ramos nos chamadores
func DefaultPagarMePolicy() SimulationPolicy {
	return SimulationPolicy{ApproveBelow: decimal.NewFromInt(500)}
}

// simulatedID gera um id sintético que carrega provedor, status e meio de
// pagamento. Consultas de status em modo simulado decodificam o id para
// responder de forma determinística e estável entre chamadas repetidas
func simulatedID(provider string, status payment.Status, method payment.MethodType) string {
	return fmt.Sprintf("%s-sim-%s-%s-%s", provider, status, method, uuid.New().String())
}

// decodeSimulatedID extrai status e meio de pagamento de um id sintético
func decodeSimulatedID(id string) (payment.Status, payment.MethodType, bool) {
	parts := strings.SplitN(id, "-", 5)
	if len(parts) != 5 || parts[1] != "sim" {
		return "", "", false
	}
	return payment.Status(parts[2]), payment.MethodType(parts[3]), true
}

// simulatePixPayload fabrica um payload de QR PIX sintético no formato
// copia-e-cola, junto com sua versão base64
func simulatePixPayload(provider, paymentID string) (string, string) {
	raw := fmt.Sprintf("00020126580014br.gov.bcb.pix0136%s5204000053039865802BR5913CreatinaMax%s6009Sao Paulo", paymentID, provider)
	return raw, base64.StdEncoding.EncodeToString([]byte(raw))
}

// simulatePayment sintetiza a resposta de uma cobrança sem nenhuma
// chamada de rede: PIX fica sempre pendente com QR sintético; cartão é
// aprovado ou rejeitado conforme a política do provedor
func simulatePayment(provider string, policy SimulationPolicy, req *payment.Request) *payment.Response {
	status := payment.StatusPending
	if req.Method.Type.RequiresCard() {
		status = policy.CardOutcome(req.Amount)
	}

	id := simulatedID(provider, status, req.Method.Type)
	resp := &payment.Response{
		ID:                id,
		Status:            status,
		PaymentMethodID:   string(req.Method.Type),
		TransactionAmount: req.Amount,
		Installments:      req.Method.Installments,
		Gateway:           provider,
		GatewayPaymentID:  id,
		CreatedAt:         time.Now(),
	}
	if req.Method.Type == payment.MethodPix {
		resp.PixQRCode, resp.PixQRCodeBase64 = simulatePixPayload(provider, id)
	}
	return resp
}

// simulateStatus reconstrói a resposta de consulta de status a partir de
// um id sintético. Ids fora do formato esperado respondem como pendentes
func simulateStatus(provider, paymentID string) *payment.Response {
	status, method, ok := decodeSimulatedID(paymentID)
	if !ok {
		status = payment.StatusPending
	}

	resp := &payment.Response{
		ID:               paymentID,
		Status:           status,
		Gateway:          provider,
		GatewayPaymentID: paymentID,
		CreatedAt:        time.Now(),
	}
	if ok {
		resp.PaymentMethodID = string(method)
		if method == payment.MethodPix {
			resp.PixQRCode, resp.PixQRCodeBase64 = simulatePixPayload(provider, paymentID)
		}
	}
	return resp
}
