// Package remote implementa o cliente HTTP da API do VacaFácil:
// autenticação bearer, normalização de erros e limite de taxa no
// próprio cliente. O cliente não toca o espelho local; isso é papel
// dos stores de domínio.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/vacafacil/vacafacil-sync/internal/config"
)

// TokenSource fornece o token de sessão corrente; string vazia
// significa sessão anônima e a requisição segue sem Authorization.
type TokenSource interface {
	Token() string
}

// Client cliente autenticado da API remota.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	limiter    *rate.Limiter
}

// New cria um cliente a partir da configuração da API.
func New(cfg config.API, tokens TokenSource) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		tokens:     tokens,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	url := c.baseURL + path
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, url, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// request executa a chamada e decodifica a resposta em out (quando não
// nil). Falha de transporte vira ErrUnavailable; resposta não-2xx vira
// *APIError com a mensagem do corpo.
func (c *Client) request(ctx context.Context, method, path string, body, out any) error {
	const op = "remote.request"

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		observeRequest(method, outcomeUnreachable, time.Since(start))
		return fmt.Errorf("%s: %w: %v", op, ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		observeRequest(method, outcomeAPIError, time.Since(start))
		return fmt.Errorf("%s: %w", op, decodeAPIError(resp))
	}
	observeRequest(method, outcomeOK, time.Since(start))

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%s: decode response: %w", op, err)
		}
	}
	return nil
}
