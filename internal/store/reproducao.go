package store

import (
	"log/slog"
	"time"

	"github.com/vacafacil/vacafacil-sync/internal/models"
)

// InseminationStore coleção de inseminações.
type InseminationStore struct {
	*Store[models.Inseminacao]
}

// NewInsemination cria o store de inseminações.
func NewInsemination(rc RemoteCollection[models.Inseminacao], local Snapshots, session SessionReader, toast Toaster, log *slog.Logger) *InseminationStore {
	return &InseminationStore{New("inseminacoes", rc, local, session, toast, log)}
}

// PorVaca retorna as inseminações de uma vaca.
func (s *InseminationStore) PorVaca(vacaID any) []models.Inseminacao {
	return s.Where(func(i models.Inseminacao) bool {
		return models.SameID(i.VacaID, vacaID)
	})
}

// PartosPrevistosAte retorna as inseminações cujo parto previsto cai
// até a data limite (e ainda não passou de hoje - janela do chamador).
func (s *InseminationStore) PartosPrevistosAte(limite time.Time) []models.Inseminacao {
	return s.Where(func(i models.Inseminacao) bool {
		return !i.PartoPrevisto().After(limite)
	})
}

// VaccinationStore coleção de vacinações.
type VaccinationStore struct {
	*Store[models.Vacinacao]
}

// NewVaccination cria o store de vacinações.
func NewVaccination(rc RemoteCollection[models.Vacinacao], local Snapshots, session SessionReader, toast Toaster, log *slog.Logger) *VaccinationStore {
	return &VaccinationStore{New("vacinacoes", rc, local, session, toast, log)}
}

// PorVaca retorna as vacinações de uma vaca.
func (s *VaccinationStore) PorVaca(vacaID any) []models.Vacinacao {
	return s.Where(func(v models.Vacinacao) bool {
		return models.SameID(v.VacaID, vacaID)
	})
}

// DosesPendentesAte retorna vacinações com próxima dose marcada até a
// data limite.
func (s *VaccinationStore) DosesPendentesAte(limite time.Time) []models.Vacinacao {
	return s.Where(func(v models.Vacinacao) bool {
		return v.ProximaDose != nil && !v.ProximaDose.After(limite)
	})
}

// BirthStore coleção de partos.
type BirthStore struct {
	*Store[models.Parto]
}

// NewBirth cria o store de partos.
func NewBirth(rc RemoteCollection[models.Parto], local Snapshots, session SessionReader, toast Toaster, log *slog.Logger) *BirthStore {
	return &BirthStore{New("partos", rc, local, session, toast, log)}
}

// PorVaca retorna os partos de uma vaca.
func (s *BirthStore) PorVaca(vacaID any) []models.Parto {
	return s.Where(func(p models.Parto) bool {
		return models.SameID(p.VacaID, vacaID)
	})
}
