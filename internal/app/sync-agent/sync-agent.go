// Package syncagent monta o agente de sincronização: espelho local,
// sessão, cliente da API, stores de domínio, central de notificações,
// agendador de lembretes e o servidor HTTP de diagnóstico.
package syncagent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/vacafacil/vacafacil-sync/internal/config"
	"github.com/vacafacil/vacafacil-sync/internal/lib/sl"
	"github.com/vacafacil/vacafacil-sync/internal/models"
	"github.com/vacafacil/vacafacil-sync/internal/notify"
	"github.com/vacafacil/vacafacil-sync/internal/remote"
	"github.com/vacafacil/vacafacil-sync/internal/scheduler"
	"github.com/vacafacil/vacafacil-sync/internal/session"
	"github.com/vacafacil/vacafacil-sync/internal/storage/local"
	"github.com/vacafacil/vacafacil-sync/internal/storage/rediscache"
	"github.com/vacafacil/vacafacil-sync/internal/store"
)

// Mirror operações do espelho local usadas na montagem do app; tanto
// o driver sqlite quanto o redis a satisfazem.
type Mirror interface {
	Read(key string, dest any) bool
	Write(key string, value any)
	WriteTTL(key string, value any, ttl time.Duration)
	Remove(key string)
	Close() error
}

// Stores reúne os stores de domínio hidratados pelo app.
type Stores struct {
	Vacas        *store.HerdStore
	Producao     *store.ProductionStore
	Transacoes   *store.FinanceStore
	Inseminacoes *store.InseminationStore
	Vacinacoes   *store.VaccinationStore
	Partos       *store.BirthStore
	Anuncios     *store.MarketplaceStore
	Assinatura   *store.SubscriptionStore
}

// App agente de sincronização montado e pronto para rodar.
type App struct {
	server    *http.Server
	logger    *slog.Logger
	mirror    Mirror
	guard     *session.Guard
	center    *notify.Center
	stores    *Stores
	scheduler *scheduler.Service

	credenciais config.Credenciais
}

// lazyTokens quebra o ciclo cliente/sessão: o cliente precisa do token
// da sessão e a sessão precisa do cliente para autenticar.
type lazyTokens struct {
	guard *session.Guard
}

func (t *lazyTokens) Token() string {
	if t.guard == nil {
		return ""
	}
	return t.guard.Token()
}

// New monta o agente a partir da configuração, sem tocar a rede.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "syncagent.New"

	mirror, err := newMirror(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	tokens := &lazyTokens{}
	client := remote.New(cfg.API, tokens)

	guard := session.New(mirror, client, logger)
	tokens.guard = guard
	if watcher, ok := mirror.(session.Watcher); ok {
		guard.WatchCredentials(watcher)
	}

	center := notify.NewCenter(mirror, logger)

	stores := &Stores{
		Vacas:        store.NewHerd(remote.NewResource[models.Vaca](client, "/vacas"), mirror, guard, center, logger),
		Producao:     store.NewProduction(remote.NewResource[models.ProducaoLeite](client, "/producao"), mirror, guard, center, logger),
		Transacoes:   store.NewFinance(remote.NewResource[models.Transacao](client, "/transacoes"), mirror, guard, center, logger),
		Inseminacoes: store.NewInsemination(remote.NewResource[models.Inseminacao](client, "/inseminacoes"), mirror, guard, center, logger),
		Vacinacoes:   store.NewVaccination(remote.NewResource[models.Vacinacao](client, "/vacinacoes"), mirror, guard, center, logger),
		Partos:       store.NewBirth(remote.NewResource[models.Parto](client, "/partos"), mirror, guard, center, logger),
		Anuncios:     store.NewMarketplace(remote.NewResource[models.Anuncio](client, "/anuncios"), mirror, guard, center, logger),
		Assinatura:   store.NewSubscription(client, mirror, guard, logger),
	}

	sched := scheduler.New(stores.Vacinacoes, stores.Inseminacoes, center, logger,
		cfg.Reminder.Interval, cfg.Reminder.Window)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, guard, center, stores)

	srv := &http.Server{
		Addr:         cfg.DiagServer.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.DiagServer.TimeoutHTTP,
		WriteTimeout: cfg.DiagServer.TimeoutHTTP,
		IdleTimeout:  cfg.DiagServer.IdleTimeout,
	}

	return &App{
		server:      srv,
		logger:      logger,
		mirror:      mirror,
		guard:       guard,
		center:      center,
		stores:      stores,
		scheduler:   sched,
		credenciais: cfg.Credenciais,
	}, nil
}

func newMirror(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Mirror, error) {
	switch cfg.LocalStore.Driver {
	case "redis":
		return rediscache.New(ctx, cfg.RedisConnection, logger)
	default:
		return local.New(cfg.LocalStore.Path, logger)
	}
}

// Stores expõe os stores montados, para uso do agente como biblioteca.
func (a *App) Stores() *Stores { return a.stores }

// Guard expõe a sessão montada.
func (a *App) Guard() *session.Guard { return a.guard }

// Center expõe a central de notificações montada.
func (a *App) Center() *notify.Center { return a.center }

// Hydrate restaura a sessão, autentica quando há credenciais na
// configuração e carrega todos os stores. Falhas de rede não derrubam
// o agente; os stores caem para os snapshots locais.
func (a *App) Hydrate(ctx context.Context) {
	const op = "syncagent.Hydrate"
	log := a.logger.With(slog.String("op", op))

	state := a.guard.Restore()
	log.Info("session restored", slog.String("state", state.String()))

	if state != session.Authenticated && a.credenciais.Email != "" {
		if err := a.guard.Login(ctx, a.credenciais.Email, a.credenciais.Senha); err != nil {
			log.Warn("login failed, serving local snapshots", sl.Err(err))
		} else {
			log.Info("logged in", slog.String("email", a.credenciais.Email))
		}
	}

	a.stores.Vacas.Load(ctx)
	a.stores.Producao.Load(ctx)
	a.stores.Transacoes.Load(ctx)
	a.stores.Inseminacoes.Load(ctx)
	a.stores.Vacinacoes.Load(ctx)
	a.stores.Partos.Load(ctx)
	a.stores.Anuncios.Load(ctx)
	a.stores.Assinatura.Load(ctx)
}

// Run hidrata os stores, inicia o agendador e serve o endpoint de
// diagnóstico até o contexto ser cancelado.
func (a *App) Run(ctx context.Context) error {
	a.Hydrate(ctx)

	go a.scheduler.Run(ctx)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("diag server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down diag server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if cerr := a.mirror.Close(); cerr != nil {
			a.logger.Warn("failed to close local mirror", sl.Err(cerr))
		}
		return err
	}
}
