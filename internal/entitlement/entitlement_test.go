package entitlement_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vacafacil/vacafacil-sync/internal/entitlement"
	"github.com/vacafacil/vacafacil-sync/internal/models"
)

func TestCheckLimit_Boundary(t *testing.T) {
	plano := models.Plano{ID: "free", Limites: map[string]int{"vacas": 5}}

	for uso := range 5 {
		assert.True(t, entitlement.CheckLimit(plano, "vacas", uso), "uso=%d", uso)
	}
	assert.False(t, entitlement.CheckLimit(plano, "vacas", 5))
	assert.False(t, entitlement.CheckLimit(plano, "vacas", 6))
	assert.False(t, entitlement.CheckLimit(plano, "vacas", 1000))
}

func TestCheckLimit_UnlimitedSentinel(t *testing.T) {
	plano := models.Plano{Limites: map[string]int{"vacas": models.LimiteIlimitado}}

	assert.True(t, entitlement.CheckLimit(plano, "vacas", 0))
	assert.True(t, entitlement.CheckLimit(plano, "vacas", 1))
	assert.True(t, entitlement.CheckLimit(plano, "vacas", 1_000_000))
}

func TestCheckLimit_UndeclaredLimitAllows(t *testing.T) {
	plano := models.Plano{Limites: map[string]int{}}

	assert.True(t, entitlement.CheckLimit(plano, "vacas", 999))
}

func TestRemaining(t *testing.T) {
	plano := models.Plano{Limites: map[string]int{
		"vacas":    5,
		"anuncios": models.LimiteIlimitado,
	}}

	assert.Equal(t, float64(5), entitlement.Remaining(plano, "vacas", 0))
	assert.Equal(t, float64(2), entitlement.Remaining(plano, "vacas", 3))
	assert.Equal(t, float64(0), entitlement.Remaining(plano, "vacas", 5))
	// Nunca negativo, mesmo com uso acima do limite.
	assert.Equal(t, float64(0), entitlement.Remaining(plano, "vacas", 8))
	assert.True(t, math.IsInf(entitlement.Remaining(plano, "anuncios", 42), 1))
}

// HasFeature: apenas false explícito nega. Comportamento herdado do
// produto, fixado aqui de propósito.
func TestHasFeature_OnlyExplicitFalseDenies(t *testing.T) {
	plano := models.Plano{Recursos: map[string]any{
		"financeiro": false,
		"relatorios": true,
		"exportacao": "completo",
	}}

	assert.False(t, entitlement.HasFeature(plano, "financeiro"))
	assert.True(t, entitlement.HasFeature(plano, "relatorios"))
	// Nível qualitativo concede.
	assert.True(t, entitlement.HasFeature(plano, "exportacao"))
	// Ausente do mapa concede.
	assert.True(t, entitlement.HasFeature(plano, "marketplace"))
}

func TestPlanoPorID(t *testing.T) {
	assert.Equal(t, "Premium", entitlement.PlanoPorID(entitlement.PlanoPremium).Nome)
	// Desconhecido cai no gratuito.
	assert.Equal(t, "Gratuito", entitlement.PlanoPorID("inexistente").Nome)
	assert.Equal(t, "Gratuito", entitlement.PlanoPorID("").Nome)
}

// Cenário de ponta a ponta: plano gratuito com 5 vacas cadastradas não
// permite a sexta; o chamador deve levar ao fluxo de upgrade em vez de
// chamar Create.
func TestFreePlanAtCapacityDeniesNextCreate(t *testing.T) {
	plano := entitlement.PlanoPorID(entitlement.PlanoGratuito)

	assert.False(t, entitlement.CheckLimit(plano, entitlement.RecursoVacas, 5))
	assert.Equal(t, float64(0), entitlement.Remaining(plano, entitlement.RecursoVacas, 5))
}
