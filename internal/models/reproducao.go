package models

import "time"

// DiasGestacao é o período médio de gestação bovina usado para prever
// a data de parto a partir da inseminação.
const DiasGestacao = 283

// Inseminacao registra uma inseminação (natural ou artificial).
type Inseminacao struct {
	ID         int64     `json:"id"`
	VacaID     int64     `json:"vaca_id" validate:"required"`
	Data       time.Time `json:"data" validate:"required"`
	Touro      string    `json:"touro,omitempty"`
	Tipo       string    `json:"tipo,omitempty"` // natural, artificial
	Observacao *string   `json:"observacao,omitempty"`
}

// RecordID retorna o identificador da inseminação.
func (i Inseminacao) RecordID() any { return i.ID }

// PartoPrevisto calcula a data provável do parto.
func (i Inseminacao) PartoPrevisto() time.Time {
	return i.Data.AddDate(0, 0, DiasGestacao)
}

// Vacinacao registra uma dose aplicada e a próxima dose prevista.
type Vacinacao struct {
	ID          int64      `json:"id"`
	VacaID      int64      `json:"vaca_id" validate:"required"`
	Data        time.Time  `json:"data" validate:"required"`
	Vacina      string     `json:"vacina" validate:"required"`
	ProximaDose *time.Time `json:"proxima_dose,omitempty"`
	Observacao  *string    `json:"observacao,omitempty"`
}

// RecordID retorna o identificador da vacinação.
func (v Vacinacao) RecordID() any { return v.ID }

// Parto registra um nascimento.
type Parto struct {
	ID          int64     `json:"id"`
	VacaID      int64     `json:"vaca_id" validate:"required"`
	Data        time.Time `json:"data" validate:"required"`
	SexoBezerro string    `json:"sexo_bezerro,omitempty"` // macho, femea
	NomeBezerro *string   `json:"nome_bezerro,omitempty"`
	Observacao  *string   `json:"observacao,omitempty"`
}

// RecordID retorna o identificador do parto.
func (p Parto) RecordID() any { return p.ID }
