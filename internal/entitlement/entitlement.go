// Package entitlement avalia recursos e cotas de um plano de
// assinatura. As funções são puras e sem efeito: quem decide o que
// fazer com uma negativa (ex.: levar ao fluxo de upgrade) é o
// chamador. A checagem aqui é apenas de experiência de uso; a
// autoridade final sobre cotas é sempre a API.
package entitlement

import (
	"math"

	"github.com/vacafacil/vacafacil-sync/internal/models"
)

// HasFeature informa se o plano dá acesso ao recurso. Apenas um false
// explícito no mapa nega: recurso ausente é concedido, e qualquer
// valor não-booleano (nível qualitativo) também.
func HasFeature(p models.Plano, recurso string) bool {
	v, ok := p.Recursos[recurso]
	if !ok {
		return true
	}
	if b, isBool := v.(bool); isBool {
		return b
	}
	return true
}

// CheckLimit informa se mais uma unidade do recurso cabe na cota.
// O sentinela -1 significa ilimitado. Atingir o limite nega a próxima
// unidade (uso 5 com limite 5 nega). Limite não declarado no plano é
// tratado como ilimitado.
func CheckLimit(p models.Plano, recurso string, usoAtual int) bool {
	limite, ok := p.Limites[recurso]
	if !ok || limite == models.LimiteIlimitado {
		return true
	}
	return usoAtual < limite
}

// Remaining retorna quantas unidades do recurso ainda cabem na cota;
// +Inf para ilimitado, nunca negativo.
func Remaining(p models.Plano, recurso string, usoAtual int) float64 {
	limite, ok := p.Limites[recurso]
	if !ok || limite == models.LimiteIlimitado {
		return math.Inf(1)
	}
	return math.Max(0, float64(limite-usoAtual))
}
