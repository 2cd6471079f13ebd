package keyphrase

import (
	"reflect"
	"testing"
)

func TestFilter(t *testing.T) {
	tests := []struct {
		name    string
		phrases []Keyphrase
		minNorm float64
		want    []string
	}{
		{
			name:    "empty input",
			phrases: nil,
			want:    nil,
		},
		{
			name: "lower raw score normalizes higher",
			phrases: []Keyphrase{
				{Text: "club de los perdedores", Score: 0.01},
				{Text: "alcantarillas de Derry", Score: 0.05},
				{Text: "ruido lejano", Score: 0.9},
			},
			want: []string{"club de los perdedores", "alcantarillas de Derry"},
		},
		{
			name: "single word phrases dropped",
			phrases: []Keyphrase{
				{Text: "Pennywise", Score: 0.01},
				{Text: "globos rojos", Score: 0.02},
				{Text: "miedo", Score: 0.9},
			},
			want: []string{"globos rojos"},
		},
		{
			name: "uniform scores all normalize to one",
			phrases: []Keyphrase{
				{Text: "casa de Neibolt", Score: 0.5},
				{Text: "verano de 1958", Score: 0.5},
			},
			want: []string{"casa de Neibolt", "verano de 1958"},
		},
		{
			name: "custom cutoff",
			phrases: []Keyphrase{
				{Text: "mejor frase aqui", Score: 0.0},
				{Text: "frase mediana aqui", Score: 0.5},
				{Text: "peor frase aqui", Score: 1.0},
			},
			minNorm: 0.4,
			want:    []string{"mejor frase aqui", "frase mediana aqui"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(tt.phrases, tt.minNorm)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Filter = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDedupeOrdered(t *testing.T) {
	in := []string{"globos rojos", "casa de Neibolt", "globos rojos", "verano de 1958", "casa de Neibolt"}
	want := []string{"globos rojos", "casa de Neibolt", "verano de 1958"}

	got := DedupeOrdered(in)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DedupeOrdered = %v, want %v", got, want)
	}
}

func TestDedupeOrdered_Empty(t *testing.T) {
	if got := DedupeOrdered(nil); got != nil {
		t.Errorf("expected nil for empty input, got %v", got)
	}
}
