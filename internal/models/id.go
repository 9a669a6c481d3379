package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Record é implementado por todos os registros de domínio que vivem
// em uma coleção sincronizada.
type Record interface {
	// RecordID retorna o identificador do registro dentro da coleção.
	RecordID() any
}

// SameID compara dois identificadores tolerando divergência de tipo:
// um registro cujo id é numérico deve casar com uma chave de busca
// fornecida como string numericamente equivalente ("42" casa com 42).
func SameID(a, b any) bool {
	return idKey(a) == idKey(b)
}

func idKey(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case int:
		return strconv.Itoa(x)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case float32:
		return idKey(float64(x))
	case float64:
		// JSON decodifica números como float64; ids inteiros não podem
		// ganhar casas decimais na comparação.
		if x == math.Trunc(x) {
			return strconv.FormatInt(int64(x), 10)
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}
