package models

import "time"

// ProducaoLeite registra uma ordenha de uma vaca em uma data e período.
type ProducaoLeite struct {
	ID         int64     `json:"id"`
	VacaID     int64     `json:"vaca_id" validate:"required"`
	Data       time.Time `json:"data" validate:"required"`
	Litros     float64   `json:"litros" validate:"required,gt=0"`
	Periodo    string    `json:"periodo,omitempty"` // manha, tarde, noite
	Observacao *string   `json:"observacao,omitempty"`
}

// RecordID retorna o identificador do registro de produção.
func (p ProducaoLeite) RecordID() any { return p.ID }
