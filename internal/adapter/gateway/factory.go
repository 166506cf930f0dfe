package gateway

import (
	"strings"

	"github.com/floravitalis/creatinamax/internal/domain/payment"
)

// Identificadores dos provedores conhecidos
const (
	ProviderMercadoPago = "mercado_pago"
	ProviderPagarMe     = "pagar_me"
)

// fallbackProvider é o provedor padrão quando nada está configurado
const fallbackProvider = ProviderMercadoPago

// placeholderCredential substitui a credencial em desenvolvimento para
// que o modo simulado funcione sem configuração
const placeholderCredential = "TEST-PLACEHOLDER"

// Factory resolve nomes de provedor para instâncias de gateway,
// implementando payment.Factory. Credencial ausente em produção falha na
// construção do gateway; em desenvolvimento o adaptador nasce em modo
// simulado
type Factory struct {
	cfg      *Config
	policies map[string]SimulationPolicy
}

// NewFactory cria uma factory com as políticas de simulação padrão de
// cada provedor
func NewFactory(cfg *Config) *Factory {
	return &Factory{
		cfg: cfg,
		policies: map[string]SimulationPolicy{
			ProviderMercadoPago: DefaultMercadoPagoPolicy(),
			ProviderPagarMe:     DefaultPagarMePolicy(),
		},
	}
}

// SetSimulationPolicy substitui a política de simulação de um provedor.
// Usado por testes para exercitar limites de aprovação arbitrários
func (f *Factory) SetSimulationPolicy(provider string, policy SimulationPolicy) {
	f.policies[provider] = policy
}

// Create resolve credenciais e constrói o gateway do provedor informado
func (f *Factory) Create(provider string) (payment.Gateway, error) {
	name := strings.ToLower(strings.TrimSpace(provider))
	switch name {
	case ProviderMercadoPago:
		token, simulated, err := f.resolveCredential(name, f.cfg.MercadoPagoAccessToken, "MERCADO_PAGO_ACCESS_TOKEN")
		if err != nil {
			return nil, err
		}
		return NewMercadoPago(token, simulated, f.policies[name], f.cfg.RequestTimeout), nil
	case ProviderPagarMe:
		key, simulated, err := f.resolveCredential(name, f.cfg.PagarMeAPIKey, "PAGAR_ME_API_KEY")
		if err != nil {
			return nil, err
		}
		return NewPagarMe(key, simulated, f.policies[name], f.cfg.RequestTimeout), nil
	default:
		return nil, &payment.UnsupportedProviderError{Provider: provider}
	}
}

// resolveCredential decide entre credencial real, placeholder de
// desenvolvimento ou erro de configuração
func (f *Factory) resolveCredential(provider, credential, variable string) (string, bool, error) {
	if credential != "" {
		return credential, false, nil
	}
	if !f.cfg.IsDevelopment() {
		return "", false, &payment.ConfigurationError{Provider: provider, Variable: variable}
	}
	return placeholderCredential, true, nil
}

// DefaultProvider retorna o provedor padrão configurado ou o fallback
func (f *Factory) DefaultProvider() string {
	if f.cfg.DefaultProvider != "" {
		return strings.ToLower(f.cfg.DefaultProvider)
	}
	return fallbackProvider
}

// AvailableProviders retorna os provedores utilizáveis. Em
// desenvolvimento todos os conhecidos estão disponíveis via simulação; em
// produção apenas os com credencial. A lista nunca é vazia: na pior
// hipótese contém o provedor padrão
func (f *Factory) AvailableProviders() []string {
	if f.cfg.IsDevelopment() {
		return []string{ProviderMercadoPago, ProviderPagarMe}
	}

	var available []string
	if f.cfg.MercadoPagoAccessToken != "" {
		available = append(available, ProviderMercadoPago)
	}
	if f.cfg.PagarMeAPIKey != "" {
		available = append(available, ProviderPagarMe)
	}
	if len(available) == 0 {
		available = append(available, f.DefaultProvider())
	}
	return available
}
