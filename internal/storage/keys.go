// Package storage define as chaves estáveis do espelho local.
// A estabilidade das chaves entre execuções é o que permite servir o
// último snapshot quando a API está inacessível.
package storage

import "fmt"

// Chaves de credenciais. O token possui uma cópia de segurança que
// sobrevive à limpeza da chave primária.
const (
	KeyToken       = "vacafacil:auth:token"
	KeyTokenBackup = "vacafacil:auth:token_backup"
	KeyUser        = "vacafacil:auth:user"

	KeyNotifications = "vacafacil:notifications"
)

// AuthPrefix prefixo comum das chaves de credenciais, usado pelo
// observador de mudanças da sessão.
const AuthPrefix = "vacafacil:auth:"

// RecordsKey retorna a chave do snapshot de uma coleção de domínio.
func RecordsKey(dominio string) string {
	return fmt.Sprintf("vacafacil:%s:records", dominio)
}

// SubscriptionKey retorna a chave da assinatura de um usuário.
func SubscriptionKey(userID string) string {
	return fmt.Sprintf("vacafacil:subscription:%s", userID)
}
