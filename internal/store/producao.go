package store

import (
	"log/slog"
	"time"

	"github.com/vacafacil/vacafacil-sync/internal/models"
)

// ProductionStore coleção de ordenhas com consultas derivadas.
type ProductionStore struct {
	*Store[models.ProducaoLeite]
}

// NewProduction cria o store de produção de leite.
func NewProduction(rc RemoteCollection[models.ProducaoLeite], local Snapshots, session SessionReader, toast Toaster, log *slog.Logger) *ProductionStore {
	return &ProductionStore{New("producao", rc, local, session, toast, log)}
}

// PorVaca retorna as ordenhas de uma vaca.
func (s *ProductionStore) PorVaca(vacaID any) []models.ProducaoLeite {
	return s.Where(func(p models.ProducaoLeite) bool {
		return models.SameID(p.VacaID, vacaID)
	})
}

// NoPeriodo retorna as ordenhas dentro do intervalo fechado [de, ate].
func (s *ProductionStore) NoPeriodo(de, ate time.Time) []models.ProducaoLeite {
	return s.Where(func(p models.ProducaoLeite) bool {
		return !p.Data.Before(de) && !p.Data.After(ate)
	})
}

// TotalLitros soma os litros produzidos no intervalo.
func (s *ProductionStore) TotalLitros(de, ate time.Time) float64 {
	var total float64
	for _, p := range s.NoPeriodo(de, ate) {
		total += p.Litros
	}
	return total
}
