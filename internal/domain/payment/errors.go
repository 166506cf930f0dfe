package payment

import (
	"errors"
	"fmt"
)

// ConfigurationError indica credencial ausente ou inválida para um
// provedor em ambiente que exige credenciais reais
type ConfigurationError struct {
	Provider string
	Variable string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("credencial %s não configurada para o provedor %s", e.Variable, e.Provider)
}

// UnsupportedProviderError indica que a factory recebeu um nome de
// provedor desconhecido
type UnsupportedProviderError struct {
	Provider string
}

func (e *UnsupportedProviderError) Error() string {
	return fmt.Sprintf("provedor de pagamento não suportado: %s", e.Provider)
}

// ValidationError indica requisição de pagamento malformada, rejeitada
// antes de qualquer I/O
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("requisição inválida (%s): %s", e.Field, e.Message)
}

// GatewayError indica falha na chamada ao provedor ou rejeição com
// payload malformado. Preserva a mensagem bruta do provedor para que o
// chamador possa registrá-la sem precisar interpretá-la
type GatewayError struct {
	Provider string
	Message  string
	Timeout  bool
	Err      error
}

func (e *GatewayError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("timeout na chamada ao provedor %s: %s", e.Provider, e.Message)
	}
	return fmt.Sprintf("erro do provedor %s: %s", e.Provider, e.Message)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// IsGatewayTimeout verifica se o erro é um timeout de gateway, distinto
// de uma rejeição do provedor
func IsGatewayTimeout(err error) bool {
	var ge *GatewayError
	return errors.As(err, &ge) && ge.Timeout
}
