package remote

import (
	"context"
	"fmt"
	"net/http"
)

// Resource expõe as operações CRUD de uma coleção da API sob um
// caminho convencional (list/create na raiz, update/delete por id).
type Resource[T any] struct {
	c    *Client
	path string
}

// NewResource cria o acesso tipado a uma coleção, ex.:
// NewResource[models.Vaca](client, "/vacas").
func NewResource[T any](c *Client, path string) *Resource[T] {
	return &Resource[T]{c: c, path: path}
}

// List retorna todos os registros da coleção.
func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	var out []T
	if err := r.c.request(ctx, http.MethodGet, r.path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create envia um novo registro e retorna a versão confirmada pelo
// servidor, que pode trazer um identificador diferente do rascunho.
func (r *Resource[T]) Create(ctx context.Context, rec T) (T, error) {
	var out T
	if err := r.c.request(ctx, http.MethodPost, r.path, rec, &out); err != nil {
		return out, err
	}
	return out, nil
}

// Update atualiza o registro identificado por id.
func (r *Resource[T]) Update(ctx context.Context, id any, rec T) (T, error) {
	var out T
	if err := r.c.request(ctx, http.MethodPut, fmt.Sprintf("%s/%v", r.path, id), rec, &out); err != nil {
		return out, err
	}
	return out, nil
}

// Delete remove o registro identificado por id.
func (r *Resource[T]) Delete(ctx context.Context, id any) error {
	return r.c.request(ctx, http.MethodDelete, fmt.Sprintf("%s/%v", r.path, id), nil, nil)
}
