package models

// LimiteIlimitado é o valor sentinela para "sem limite" em uma cota.
const LimiteIlimitado = -1

// Plano descreve um plano de assinatura: limites numéricos por recurso
// e um mapa de recursos cujo valor pode ser booleano ou um nível
// qualitativo (ex.: "basico", "completo").
type Plano struct {
	ID       string         `json:"id"`
	Nome     string         `json:"nome"`
	Preco    float64        `json:"preco"`
	Limites  map[string]int `json:"limites"`
	Recursos map[string]any `json:"recursos"`
}

// Assinatura é o vínculo do usuário com um plano.
type Assinatura struct {
	UserID   string `json:"user_id"`
	PlanoID  string `json:"plano_id"`
	Status   string `json:"status"` // ativa, trial, cancelada
	ExpiraEm string `json:"expira_em,omitempty"`
}
