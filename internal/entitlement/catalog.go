package entitlement

import "github.com/vacafacil/vacafacil-sync/internal/models"

// Identificadores dos planos comercializados.
const (
	PlanoGratuito = "gratuito"
	PlanoBasico   = "basico"
	PlanoPremium  = "premium"
)

// Nomes de recursos e limites usados pelos planos.
const (
	RecursoVacas       = "vacas"
	RecursoAnuncios    = "anuncios"
	RecursoFinanceiro  = "financeiro"
	RecursoRelatorios  = "relatorios"
	RecursoExportacao  = "exportacao"
	RecursoMarketplace = "marketplace"
)

// Catalogo é a tabela local dos planos. O servidor é a fonte da
// verdade; esta cópia serve para avaliar cotas sem rede.
var Catalogo = map[string]models.Plano{
	PlanoGratuito: {
		ID:    PlanoGratuito,
		Nome:  "Gratuito",
		Preco: 0,
		Limites: map[string]int{
			RecursoVacas:    5,
			RecursoAnuncios: 1,
		},
		Recursos: map[string]any{
			RecursoFinanceiro: false,
			RecursoRelatorios: false,
			RecursoExportacao: false,
		},
	},
	PlanoBasico: {
		ID:    PlanoBasico,
		Nome:  "Básico",
		Preco: 29.90,
		Limites: map[string]int{
			RecursoVacas:    50,
			RecursoAnuncios: 10,
		},
		Recursos: map[string]any{
			RecursoFinanceiro: true,
			RecursoRelatorios: "basico",
			RecursoExportacao: false,
		},
	},
	PlanoPremium: {
		ID:    PlanoPremium,
		Nome:  "Premium",
		Preco: 59.90,
		Limites: map[string]int{
			RecursoVacas:    models.LimiteIlimitado,
			RecursoAnuncios: models.LimiteIlimitado,
		},
		Recursos: map[string]any{
			RecursoFinanceiro: true,
			RecursoRelatorios: "completo",
			RecursoExportacao: true,
		},
	},
}

// PlanoPorID resolve um plano pelo id, caindo no Gratuito para ids
// desconhecidos ou vazios.
func PlanoPorID(id string) models.Plano {
	if p, ok := Catalogo[id]; ok {
		return p
	}
	return Catalogo[PlanoGratuito]
}
