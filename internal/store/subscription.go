package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/vacafacil/vacafacil-sync/internal/entitlement"
	"github.com/vacafacil/vacafacil-sync/internal/lib/sl"
	"github.com/vacafacil/vacafacil-sync/internal/models"
	"github.com/vacafacil/vacafacil-sync/internal/storage"
)

// assinaturaTTL validade do espelho local da assinatura; vencido o
// prazo, o agente volta a tratar o usuário como plano gratuito até
// conseguir falar com a API.
const assinaturaTTL = 24 * time.Hour

// SubscriptionAPI endpoint da assinatura corrente.
type SubscriptionAPI interface {
	Assinatura(ctx context.Context) (*models.Assinatura, error)
}

// SubscriptionSession sessão com identidade, para a chave por usuário.
type SubscriptionSession interface {
	Authenticated() bool
	UserID() string
}

// SnapshotsTTL espelho local com expiração.
type SnapshotsTTL interface {
	Read(key string, dest any) bool
	WriteTTL(key string, value any, ttl time.Duration)
}

// SubscriptionStore guarda a assinatura corrente do usuário, com o
// mesmo padrão de fallback dos demais stores mas registro único em
// vez de coleção.
type SubscriptionStore struct {
	api     SubscriptionAPI
	local   SnapshotsTTL
	session SubscriptionSession
	log     *slog.Logger

	mu      sync.Mutex
	current *models.Assinatura
	prov    Provenance
}

// NewSubscription cria o store da assinatura.
func NewSubscription(api SubscriptionAPI, local SnapshotsTTL, session SubscriptionSession, log *slog.Logger) *SubscriptionStore {
	return &SubscriptionStore{api: api, local: local, session: session, log: log}
}

// Load busca a assinatura na API; em falha adota o espelho local.
// Nunca retorna erro nem emite toast.
func (s *SubscriptionStore) Load(ctx context.Context) {
	const op = "store.SubscriptionStore.Load"
	log := s.log.With(slog.String("op", op))

	if !s.session.Authenticated() {
		s.adoptLocal()
		return
	}

	assinatura, err := s.api.Assinatura(ctx)
	if err != nil {
		log.Warn("failed to fetch subscription, serving local snapshot", sl.Err(err))
		s.adoptLocal()
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = assinatura
	s.prov = ProvenanceFresh
	s.local.WriteTTL(storage.SubscriptionKey(s.session.UserID()), assinatura, assinaturaTTL)
}

func (s *SubscriptionStore) adoptLocal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	var snap models.Assinatura
	if s.local.Read(storage.SubscriptionKey(s.session.UserID()), &snap) {
		s.current = &snap
	} else {
		s.current = nil
	}
	s.prov = ProvenanceStale
}

// Current retorna a assinatura corrente, se houver.
func (s *SubscriptionStore) Current() *models.Assinatura {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	c := *s.current
	return &c
}

// Plano resolve o plano da assinatura corrente no catálogo local,
// caindo no gratuito quando não há assinatura conhecida.
func (s *SubscriptionStore) Plano() models.Plano {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return entitlement.PlanoPorID(entitlement.PlanoGratuito)
	}
	return entitlement.PlanoPorID(s.current.PlanoID)
}

// Provenance informa a origem do dado corrente.
func (s *SubscriptionStore) Provenance() Provenance {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prov
}
