package models

import "time"

// Tipos de transação financeira.
const (
	TransacaoReceita = "receita"
	TransacaoDespesa = "despesa"
)

// Transacao representa um lançamento financeiro da fazenda.
type Transacao struct {
	ID        int64     `json:"id"`
	Tipo      string    `json:"tipo" validate:"required,oneof=receita despesa"`
	Categoria string    `json:"categoria" validate:"required"`
	Descricao string    `json:"descricao,omitempty"`
	Valor     float64   `json:"valor" validate:"required,gt=0"`
	Data      time.Time `json:"data" validate:"required"`
}

// RecordID retorna o identificador da transação.
func (t Transacao) RecordID() any { return t.ID }
