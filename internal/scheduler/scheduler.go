// Package scheduler varre periodicamente as coleções de reprodução e
// vacinação e gera lembretes de doses e partos que caem dentro da
// janela configurada.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vacafacil/vacafacil-sync/internal/models"
)

// VaccinationSource consultas de doses pendentes, sem I/O.
type VaccinationSource interface {
	DosesPendentesAte(limite time.Time) []models.Vacinacao
}

// CalvingSource consultas de partos previstos, sem I/O.
type CalvingSource interface {
	PartosPrevistosAte(limite time.Time) []models.Inseminacao
}

// Notifier recebe os lembretes gerados.
type Notifier interface {
	Push(tipo, titulo, mensagem string) models.Notificacao
}

// Service agendador de lembretes.
type Service struct {
	vacinacoes   VaccinationSource
	inseminacoes CalvingSource
	notifier     Notifier
	log          *slog.Logger

	interval time.Duration
	window   time.Duration
	now      func() time.Time

	// já notificados nesta execução; evita repetir o lembrete a cada
	// varredura enquanto o evento ainda está dentro da janela
	seen map[string]bool
}

// New cria o agendador.
func New(vacinacoes VaccinationSource, inseminacoes CalvingSource, notifier Notifier, log *slog.Logger, interval, window time.Duration) *Service {
	return &Service{
		vacinacoes:   vacinacoes,
		inseminacoes: inseminacoes,
		notifier:     notifier,
		log:          log,
		interval:     interval,
		window:       window,
		now:          time.Now,
		seen:         map[string]bool{},
	}
}

// Run varre imediatamente e depois a cada intervalo, até o contexto
// ser cancelado.
func (s *Service) Run(ctx context.Context) {
	s.Scan()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Scan()
		}
	}
}

// Scan executa uma varredura única.
func (s *Service) Scan() {
	const op = "scheduler.Scan"
	log := s.log.With(slog.String("op", op))

	limite := s.now().Add(s.window)

	doses := s.vacinacoes.DosesPendentesAte(limite)
	for _, v := range doses {
		key := fmt.Sprintf("vacina:%v:%s", v.ID, v.ProximaDose.Format("2006-01-02"))
		if s.seen[key] {
			continue
		}
		s.seen[key] = true
		s.notifier.Push(models.NotificacaoLembrete, "Vacinação próxima",
			fmt.Sprintf("dose de %s da vaca %d prevista para %s", v.Vacina, v.VacaID, v.ProximaDose.Format("02/01/2006")))
	}

	partos := s.inseminacoes.PartosPrevistosAte(limite)
	for _, i := range partos {
		previsto := i.PartoPrevisto()
		if previsto.Before(s.now().AddDate(0, 0, -7)) {
			// parto já ocorreu há mais de uma semana, não há o que lembrar
			continue
		}
		key := fmt.Sprintf("parto:%v:%s", i.ID, previsto.Format("2006-01-02"))
		if s.seen[key] {
			continue
		}
		s.seen[key] = true
		s.notifier.Push(models.NotificacaoLembrete, "Parto previsto",
			fmt.Sprintf("vaca %d com parto previsto para %s", i.VacaID, previsto.Format("02/01/2006")))
	}

	if len(doses)+len(partos) > 0 {
		log.Info("reminder scan finished",
			slog.Int("doses", len(doses)), slog.Int("partos", len(partos)))
	}
}
