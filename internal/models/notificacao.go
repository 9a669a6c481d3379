package models

import "time"

// Tipos de notificação exibidos ao usuário.
const (
	NotificacaoSucesso  = "sucesso"
	NotificacaoErro     = "erro"
	NotificacaoLembrete = "lembrete"
)

// Notificacao é um aviso exibido ao usuário e mantido no histórico
// local, limitado às 50 entradas mais recentes.
type Notificacao struct {
	ID        string    `json:"id"`
	Lida      bool      `json:"lida"`
	Tipo      string    `json:"tipo"`
	Titulo    string    `json:"titulo"`
	Mensagem  string    `json:"mensagem"`
	Timestamp time.Time `json:"timestamp"`
}

// RecordID retorna o identificador da notificação.
func (n Notificacao) RecordID() any { return n.ID }
