package models

import "time"

// Anuncio representa um item publicado no marketplace.
// O ID é string: rascunhos criados no cliente recebem um uuid e o
// servidor pode devolver um identificador próprio ao confirmar.
type Anuncio struct {
	ID         string    `json:"id"`
	Titulo     string    `json:"titulo" validate:"required"`
	Descricao  string    `json:"descricao,omitempty"`
	Preco      float64   `json:"preco" validate:"required,gt=0"`
	Categoria  string    `json:"categoria" validate:"required"`
	Cidade     *string   `json:"cidade,omitempty"`
	Foto       *string   `json:"foto,omitempty"`
	VendedorID string    `json:"vendedor_id,omitempty"`
	CriadoEm   time.Time `json:"criado_em,omitempty"`
}

// RecordID retorna o identificador do anúncio.
func (a Anuncio) RecordID() any { return a.ID }
