package store

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/vacafacil/vacafacil-sync/internal/models"
)

// MarketplaceStore coleção de anúncios do marketplace.
type MarketplaceStore struct {
	*Store[models.Anuncio]
}

// NewMarketplace cria o store do marketplace.
func NewMarketplace(rc RemoteCollection[models.Anuncio], local Snapshots, session SessionReader, toast Toaster, log *slog.Logger) *MarketplaceStore {
	return &MarketplaceStore{New("anuncios", rc, local, session, toast, log)}
}

// NovoRascunho prepara um anúncio com id de rascunho gerado no
// cliente. O servidor pode trocar o id ao confirmar o Create; o id de
// rascunho não pode colidir com ids emitidos pelo servidor, por isso
// uuid e não timestamp.
func (s *MarketplaceStore) NovoRascunho(titulo, categoria string, preco float64) models.Anuncio {
	return models.Anuncio{
		ID:        "draft-" + uuid.NewString(),
		Titulo:    titulo,
		Categoria: categoria,
		Preco:     preco,
	}
}

// PorCategoria retorna os anúncios de uma categoria.
func (s *MarketplaceStore) PorCategoria(categoria string) []models.Anuncio {
	return s.Where(func(a models.Anuncio) bool { return a.Categoria == categoria })
}
