package payment

import (
	"context"
)

// Gateway define a interface que todo adaptador de provedor de pagamento
// deve implementar
type Gateway interface {
	// ProcessPayment submete uma nova cobrança ao provedor. Não é
	// idempotente: duas chamadas criam duas cobranças. A requisição nunca
	// é modificada
	ProcessPayment(ctx context.Context, req *Request) (*Response, error)

	// GetPaymentStatus consulta o estado atual de um pagamento já criado.
	// Chamadas repetidas com o mesmo id retornam resultados consistentes
	GetPaymentStatus(ctx context.Context, paymentID string) (*Response, error)

	// Name retorna o identificador do provedor (ex: "mercado_pago")
	Name() string
}

// Factory resolve um nome de provedor para uma instância de Gateway
type Factory interface {
	// Create resolve credenciais e constrói o gateway do provedor informado
	Create(provider string) (Gateway, error)

	// DefaultProvider retorna o provedor padrão configurado
	DefaultProvider() string

	// AvailableProviders retorna os provedores com credenciais presentes.
	// Nunca retorna uma lista vazia
	AvailableProviders() []string
}
