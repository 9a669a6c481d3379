package store

import (
	"log/slog"
	"time"

	"github.com/vacafacil/vacafacil-sync/internal/models"
)

// FinanceStore coleção de lançamentos financeiros.
type FinanceStore struct {
	*Store[models.Transacao]
}

// NewFinance cria o store financeiro.
func NewFinance(rc RemoteCollection[models.Transacao], local Snapshots, session SessionReader, toast Toaster, log *slog.Logger) *FinanceStore {
	return &FinanceStore{New("transacoes", rc, local, session, toast, log)}
}

// PorTipo retorna os lançamentos de um tipo (receita ou despesa).
func (s *FinanceStore) PorTipo(tipo string) []models.Transacao {
	return s.Where(func(t models.Transacao) bool { return t.Tipo == tipo })
}

// NoPeriodo retorna os lançamentos dentro do intervalo fechado.
func (s *FinanceStore) NoPeriodo(de, ate time.Time) []models.Transacao {
	return s.Where(func(t models.Transacao) bool {
		return !t.Data.Before(de) && !t.Data.After(ate)
	})
}

// Saldo retorna receitas menos despesas de toda a coleção.
func (s *FinanceStore) Saldo() float64 {
	var saldo float64
	for _, t := range s.Items() {
		switch t.Tipo {
		case models.TransacaoReceita:
			saldo += t.Valor
		case models.TransacaoDespesa:
			saldo -= t.Valor
		}
	}
	return saldo
}
