package store

import (
	"log/slog"
	"strings"

	"github.com/vacafacil/vacafacil-sync/internal/models"
)

// HerdStore coleção do rebanho com consultas derivadas. As consultas
// operam só sobre a memória, sem I/O.
type HerdStore struct {
	*Store[models.Vaca]
}

// NewHerd cria o store do rebanho.
func NewHerd(rc RemoteCollection[models.Vaca], local Snapshots, session SessionReader, toast Toaster, log *slog.Logger) *HerdStore {
	return &HerdStore{New("vacas", rc, local, session, toast, log)}
}

// PorNumero busca uma vaca pelo número do brinco.
func (s *HerdStore) PorNumero(numero string) (models.Vaca, bool) {
	for _, v := range s.Items() {
		if v.Numero == numero {
			return v, true
		}
	}
	return models.Vaca{}, false
}

// Ativas retorna as vacas em produção (status vazio conta como ativa).
func (s *HerdStore) Ativas() []models.Vaca {
	return s.Where(func(v models.Vaca) bool {
		return v.Status == "" || v.Status == "ativa"
	})
}

// PorNome busca por fragmento do nome, sem diferenciar maiúsculas.
func (s *HerdStore) PorNome(fragmento string) []models.Vaca {
	frag := strings.ToLower(fragmento)
	return s.Where(func(v models.Vaca) bool {
		return strings.Contains(strings.ToLower(v.Nome), frag)
	})
}
