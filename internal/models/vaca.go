// Package models contém as estruturas de domínio do rebanho, produção,
// finanças, reprodução e marketplace, além dos tipos auxiliares de
// sessão, plano e notificação. Campos opcionais usam ponteiros para
// distinguir "não informado" de valor vazio e manter a serialização
// sem perdas.
package models

import "time"

// Vaca representa um animal do rebanho.
type Vaca struct {
	ID         int64      `json:"id"`
	Numero     string     `json:"numero" validate:"required"` // Número de identificação (brinco)
	Nome       string     `json:"nome" validate:"required"`
	Raca       string     `json:"raca,omitempty"`
	Nascimento *time.Time `json:"nascimento,omitempty"`
	PesoKg     *float64   `json:"peso_kg,omitempty"`
	Foto       *string    `json:"foto,omitempty"`
	NomePai    *string    `json:"nome_pai,omitempty"`
	NomeMae    *string    `json:"nome_mae,omitempty"`
	Observacao *string    `json:"observacao,omitempty"`
	Status     string     `json:"status,omitempty"` // ativa, seca, vendida, morta
}

// RecordID retorna o identificador da vaca.
func (v Vaca) RecordID() any { return v.ID }
