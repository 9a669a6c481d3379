// Package syncagent registra as rotas de diagnóstico do agente.
package syncagent

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vacafacil/vacafacil-sync/internal/notify"
	"github.com/vacafacil/vacafacil-sync/internal/session"
)

type storeStatus struct {
	Count      int    `json:"count"`
	Provenance string `json:"provenance"`
}

type healthResponse struct {
	Session string                 `json:"session"`
	Stores  map[string]storeStatus `json:"stores"`
}

// RegisterRoutes registra as rotas de diagnóstico do agente.
func RegisterRoutes(r chi.Router, logger *slog.Logger, guard *session.Guard, center *notify.Center, stores *Stores) {
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		render.JSON(w, req, healthResponse{
			Session: guard.State().String(),
			Stores: map[string]storeStatus{
				stores.Vacas.Dominio():        {Count: stores.Vacas.Len(), Provenance: stores.Vacas.Provenance().String()},
				stores.Producao.Dominio():     {Count: stores.Producao.Len(), Provenance: stores.Producao.Provenance().String()},
				stores.Transacoes.Dominio():   {Count: stores.Transacoes.Len(), Provenance: stores.Transacoes.Provenance().String()},
				stores.Inseminacoes.Dominio(): {Count: stores.Inseminacoes.Len(), Provenance: stores.Inseminacoes.Provenance().String()},
				stores.Vacinacoes.Dominio():   {Count: stores.Vacinacoes.Len(), Provenance: stores.Vacinacoes.Provenance().String()},
				stores.Partos.Dominio():       {Count: stores.Partos.Len(), Provenance: stores.Partos.Provenance().String()},
				stores.Anuncios.Dominio():     {Count: stores.Anuncios.Len(), Provenance: stores.Anuncios.Provenance().String()},
			},
		})
	})

	r.Get("/notifications", func(w http.ResponseWriter, req *http.Request) {
		render.JSON(w, req, map[string]any{
			"unread": center.Unread(),
			"items":  center.Items(),
		})
	})

	r.Handle("/metrics", promhttp.Handler())
}
