package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddressSegments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		address string
		want    []string
	}{
		{"drops numeric and short", "1234, 12, Avenue Habib Bourguiba", []string{"avenue habib bourguiba"}},
		{"drops stop-list only", "Rue de Marseille; Tunis, Restaurant Tunisie", []string{"rue de marseille"}},
		{"keeps mixed segment", "Restaurant Le Lac, Tunis", []string{"restaurant le lac"}},
		{"folds accents and spaces", "Résidence  Les Jasmins", []string{"residence les jasmins"}},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, AddressSegments(tt.address))
		})
	}
}

func TestAddressInName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		display string
		address string
		want    float64
	}{
		{"whole segment capped", "Pizzeria Menzah 6", "Menzah 6, Ariana", 0.9},
		{"whole segment scaled", "Chez Ali - Restaurant Traditionnel Marsa", "Marsa, Tunisie", 5.0 / 40.0 * 3},
		{"single token", "Le Baroque Lac 2", "Rue du Lac Léman, Les Berges du Lac 2, Tunis", 0.6},
		{"no match", "Le Baroque", "Avenue de la Liberté, Tunis", 0},
		{"stop word not evidence", "Pizza Tunis", "Pizza, Tunis", 0},
		{"empty name", "", "Menzah 6", 0},
		{"empty address", "Menzah 6", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, AddressInName(tt.display, tt.address), 1e-9)
		})
	}
}

func TestAddressInName_CaseInvariant(t *testing.T) {
	t.Parallel()

	lower := AddressInName("pizzeria menzah 6", "menzah 6, ariana")
	upper := AddressInName("PIZZERIA MENZAH 6", "MENZAH 6, ARIANA")
	assert.InDelta(t, lower, upper, 1e-9)
}

func TestIsCommonWord(t *testing.T) {
	t.Parallel()

	assert.True(t, IsCommonWord("Café"))
	assert.True(t, IsCommonWord("TUNIS"))
	assert.False(t, IsCommonWord("marsa"))
}
