package gateway

import (
	"os"
	"strconv"
	"time"
)

// Config contém as configurações dos provedores de pagamento, resolvidas
// a partir de variáveis de ambiente
type Config struct {
	DefaultProvider        string
	MercadoPagoAccessToken string
	PagarMeAPIKey          string
	Environment            string
	RequestTimeout         time.Duration
}

// NewConfigFromEnv cria uma nova configuração a partir de variáveis de
// ambiente
func NewConfigFromEnv() *Config {
	timeoutSec, _ := strconv.Atoi(getEnv("PAYMENT_GATEWAY_TIMEOUT", "30"))
	if timeoutSec <= 0 {
		timeoutSec = 30
	}

	return &Config{
		DefaultProvider:        getEnv("DEFAULT_PAYMENT_GATEWAY", ""),
		MercadoPagoAccessToken: getEnv("MERCADO_PAGO_ACCESS_TOKEN", ""),
		PagarMeAPIKey:          getEnv("PAGAR_ME_API_KEY", ""),
		Environment:            getEnv("APP_ENV", "development"),
		RequestTimeout:         time.Duration(timeoutSec) * time.Second,
	}
}

// IsDevelopment indica se o ambiente permite modo simulado sem
// credenciais reais
func (c *Config) IsDevelopment() bool {
	return c.Environment != "production"
}

// getEnv retorna o valor da variável de ambiente ou o valor padrão
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
