package models

// User representa o perfil do produtor autenticado.
type User struct {
	ID       string  `json:"id"`
	Nome     string  `json:"nome"`
	Email    string  `json:"email"`
	Fazenda  *string `json:"fazenda,omitempty"`
	Telefone *string `json:"telefone,omitempty"`
	PlanoID  string  `json:"plano_id,omitempty"`
}
