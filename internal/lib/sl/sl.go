// Package sl contém funções auxiliares para o logger slog.
// O objetivo é padronizar os campos estruturados de log,
// principalmente o registro de erros.
package sl

import "log/slog"

// Err retorna um slog.Attr com a chave "error" e o texto do erro.
// Útil para manter o formato de erros uniforme nos logs.
//
// Exemplo:
//
//	log.Error("failed to load snapshot", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
