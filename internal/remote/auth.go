package remote

import (
	"context"
	"net/http"

	"github.com/vacafacil/vacafacil-sync/internal/models"
)

// LoginResult resposta do endpoint de login.
type LoginResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Login autentica por email e senha. Em caso de credencial inválida o
// erro carrega a mensagem do servidor verbatim.
func (c *Client) Login(ctx context.Context, email, senha string) (*LoginResult, error) {
	body := map[string]string{"email": email, "senha": senha}
	var out LoginResult
	if err := c.request(ctx, http.MethodPost, "/auth/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me retorna o perfil completo do usuário autenticado.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := c.request(ctx, http.MethodGet, "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Assinatura retorna a assinatura corrente do usuário autenticado.
func (c *Client) Assinatura(ctx context.Context) (*models.Assinatura, error) {
	var out models.Assinatura
	if err := c.request(ctx, http.MethodGet, "/assinatura", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
