package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggest(t *testing.T) {
	tests := []struct {
		name   string
		target string
		known  []string
		limit  int
		want   []string
	}{
		{
			name:   "misspelled parent",
			target: "Objct",
			known:  []string{"A", "B", "Object"},
			limit:  3,
			want:   []string{"Object"},
		},
		{
			name:   "misspelled primitive",
			target: "epiFlot",
			known:  []string{"epiDouble", "epiFloat", "epiU8"},
			limit:  2,
			want:   []string{"epiFloat"},
		},
		{
			name:   "nothing close",
			target: "Zebra",
			known:  []string{"A", "epiU8"},
			limit:  3,
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Suggest(tt.target, tt.known, tt.limit))
		})
	}
}

func TestRankCandidates_Deterministic(t *testing.T) {
	ranked := RankCandidates("AB", []string{"AD", "AC", "AB"})

	assert.Equal(t, []string{"AB", "AC", "AD"}, []string{ranked[0].Name, ranked[1].Name, ranked[2].Name})
	assert.Len(t, ranked.Top(1), 1)
	assert.Empty(t, RankCandidates("AB", nil).Top(1))
}

func TestNormalizeIdent(t *testing.T) {
	assert.Equal(t, "float", NormalizeIdent("epiFloat"))
	assert.Equal(t, "epi", NormalizeIdent("epi"))
	assert.Equal(t, "virtualfloats", NormalizeIdent("Virtual_Floats"))
}
