package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"

	"github.com/floravitalis/creatinamax/internal/domain/payment"
)

// doJSON executa uma chamada HTTP com corpo e resposta JSON contra um
// provedor. Falhas de rede, timeout e respostas fora de 2xx viram
// GatewayError preservando a mensagem bruta do provedor; o timeout é
// distinguível da rejeição
func doJSON(ctx context.Context, client *http.Client, provider, method, url string, headers map[string]string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("erro ao serializar requisição para %s: %w", provider, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("erro ao montar requisição para %s: %w", provider, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return &payment.GatewayError{
			Provider: provider,
			Message:  err.Error(),
			Timeout:  isTimeout(err),
			Err:      err,
		}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &payment.GatewayError{Provider: provider, Message: "erro ao ler resposta do provedor", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &payment.GatewayError{
			Provider: provider,
			Message:  fmt.Sprintf("HTTP %d: %s", resp.StatusCode, string(raw)),
		}
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return &payment.GatewayError{Provider: provider, Message: "resposta do provedor malformada: " + err.Error(), Err: err}
		}
	}
	return nil
}

// isTimeout verifica se o erro de transporte foi um estouro de prazo
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
