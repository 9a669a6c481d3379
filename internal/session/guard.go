// Package session decide, a partir das credenciais armazenadas, se o
// app está autenticado, e media os efeitos de login/logout sobre o
// espelho local. Credenciais pela metade (só token, ou perfil
// ilegível) são limpas para não persistir um estado meio autenticado.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vacafacil/vacafacil-sync/internal/lib/sl"
	"github.com/vacafacil/vacafacil-sync/internal/models"
	"github.com/vacafacil/vacafacil-sync/internal/remote"
	"github.com/vacafacil/vacafacil-sync/internal/storage"
)

// State estado da sessão.
type State int

const (
	// Unknown antes da primeira leitura do armazenamento.
	Unknown State = iota
	// Anonymous sem credenciais válidas.
	Anonymous
	// Authenticated token e perfil presentes e legíveis.
	Authenticated
)

func (s State) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case Authenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Credentials armazenamento das credenciais.
type Credentials interface {
	Read(key string, dest any) bool
	Write(key string, value any)
	Remove(key string)
}

// Watcher notifica mudanças de chaves vindas de outro contexto.
type Watcher interface {
	Watch(fn func(key string))
}

// AuthAPI endpoints de autenticação da API remota.
type AuthAPI interface {
	Login(ctx context.Context, email, senha string) (*remote.LoginResult, error)
	Me(ctx context.Context) (*models.User, error)
}

// Guard dono da sessão. Os stores de domínio apenas leem o estado,
// nunca o mutam.
type Guard struct {
	creds Credentials
	api   AuthAPI
	log   *slog.Logger
	now   func() time.Time

	mu    sync.Mutex
	state State
	token string
	user  *models.User
}

// New cria o guard no estado Unknown; chame Restore para ler as
// credenciais armazenadas.
func New(creds Credentials, api AuthAPI, log *slog.Logger) *Guard {
	return &Guard{creds: creds, api: api, log: log, now: time.Now, state: Unknown}
}

// Restore lê token (chave primária, depois a cópia de segurança) e
// perfil do armazenamento. Só transiciona para Authenticated com os
// dois presentes, o perfil legível e o token dentro da validade;
// qualquer outra combinação limpa o que houver e fica Anonymous.
func (g *Guard) Restore() State {
	const op = "session.Restore"
	log := g.log.With(slog.String("op", op))

	g.mu.Lock()
	defer g.mu.Unlock()

	var token string
	if !g.creds.Read(storage.KeyToken, &token) || token == "" {
		g.creds.Read(storage.KeyTokenBackup, &token)
	}
	var user models.User
	hasUser := g.creds.Read(storage.KeyUser, &user)

	if token == "" || !hasUser || tokenExpired(token, g.now()) {
		if token != "" || hasUser {
			log.Warn("partial or expired credentials found, clearing")
			g.creds.Remove(storage.KeyToken)
			g.creds.Remove(storage.KeyTokenBackup)
			g.creds.Remove(storage.KeyUser)
		}
		g.state = Anonymous
		g.token = ""
		g.user = nil
		return g.state
	}

	g.token = token
	g.user = &user
	g.state = Authenticated

	// Garante a cópia de segurança do token. Escrita condicionada para
	// não realimentar o watch de credenciais.
	var backup string
	if !g.creds.Read(storage.KeyTokenBackup, &backup) || backup != token {
		g.creds.Write(storage.KeyTokenBackup, token)
	}
	log.Info("session restored", slog.String("user", user.ID))
	return g.state
}

// Login autentica na API, busca o perfil completo e persiste token
// (primário e cópia) e perfil. Em falha permanece Anonymous e o erro
// carrega a mensagem do servidor verbatim.
func (g *Guard) Login(ctx context.Context, email, senha string) error {
	const op = "session.Login"
	log := g.log.With(slog.String("op", op))

	res, err := g.api.Login(ctx, email, senha)
	if err != nil {
		log.Warn("login rejected", sl.Err(err))
		return err
	}

	// O token precisa estar visível antes do Me: o cliente remoto lê
	// esta fonte para montar o Authorization.
	g.mu.Lock()
	g.token = res.Token
	g.mu.Unlock()

	user, err := g.api.Me(ctx)
	if err != nil {
		log.Error("failed to fetch profile after login", sl.Err(err))
		g.mu.Lock()
		g.token = ""
		g.state = Anonymous
		g.mu.Unlock()
		return fmt.Errorf("%s: %w", op, err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.user = user
	g.state = Authenticated
	g.creds.Write(storage.KeyToken, res.Token)
	g.creds.Write(storage.KeyTokenBackup, res.Token)
	g.creds.Write(storage.KeyUser, user)
	log.Info("logged in", slog.String("user", user.ID))
	return nil
}

// Logout limpa token (todas as chaves) e perfil. Síncrono e sem rede.
func (g *Guard) Logout() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.token = ""
	g.user = nil
	g.state = Anonymous
	g.creds.Remove(storage.KeyToken)
	g.creds.Remove(storage.KeyTokenBackup)
	g.creds.Remove(storage.KeyUser)
	g.log.Info("logged out")
}

// WatchCredentials religa o Restore a mudanças de chaves de
// autenticação vindas de outro contexto: um logout em um processo
// desautentica o vizinho.
func (g *Guard) WatchCredentials(w Watcher) {
	w.Watch(func(key string) {
		if strings.HasPrefix(key, storage.AuthPrefix) {
			g.Restore()
		}
	})
}

// State retorna o estado corrente.
func (g *Guard) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Authenticated informa se há sessão válida. Sem token a sessão é
// anônima, independente de qualquer outro estado.
func (g *Guard) Authenticated() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state == Authenticated && g.token != ""
}

// Token implementa a fonte de token do cliente remoto.
func (g *Guard) Token() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.token
}

// User retorna uma cópia do perfil corrente, ou nil.
func (g *Guard) User() *models.User {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.user == nil {
		return nil
	}
	u := *g.user
	return &u
}

// UserID retorna o id do usuário corrente, ou vazio.
func (g *Guard) UserID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.user == nil {
		return ""
	}
	return g.user.ID
}

// tokenExpired inspeciona as claims sem validar assinatura: a
// validação criptográfica é papel do servidor, aqui só evitamos
// apresentar um token sabidamente vencido. Token ilegível conta como
// vencido.
func tokenExpired(token string, now time.Time) bool {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(now)
}
