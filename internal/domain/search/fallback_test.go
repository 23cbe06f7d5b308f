package search

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/carikost/carikost/internal/domain/listing"
)

func TestExtractJSONArray(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{
			name: "bare array",
			in:   `[{"name":"a"}]`,
			want: `[{"name":"a"}]`,
			ok:   true,
		},
		{
			name: "surrounded by prose",
			in:   "Sure! Here are the listings:\n```json\n[{\"name\":\"a\"}]\n```\nEnjoy.",
			want: `[{"name":"a"}]`,
			ok:   true,
		},
		{
			name: "nested arrays",
			in:   `[{"facilities":["AC","WiFi"]},{"facilities":[]}]`,
			want: `[{"facilities":["AC","WiFi"]},{"facilities":[]}]`,
			ok:   true,
		},
		{
			name: "brackets inside strings",
			in:   `[{"name":"Kos [Premium] \"Dago\"","address":"Jl. ] Aneh"}]`,
			want: `[{"name":"Kos [Premium] \"Dago\"","address":"Jl. ] Aneh"}]`,
			ok:   true,
		},
		{
			name: "no array",
			in:   "maaf, tidak ada data",
			ok:   false,
		},
		{
			name: "unterminated array",
			in:   `[{"name":"a"}`,
			ok:   false,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := extractJSONArray(tc.in)
			require.Equal(t, tc.ok, ok)
			if tc.ok {
				require.Equal(t, tc.want, got)
			}
		})
	}
}

func TestParseGeneratedAppliesDefaults(t *testing.T) {
	filters := listing.Filters{Location: "Bandung", MaxBudget: 1_000_000, Category: listing.CategoryFemale}
	text := `[{"name":"Kos A","address":"Jl. A","price":2500000,"rating":9.5},{"name":"Kos B","address":"Jl. B","price":800000,"category":"Putra","rating":4.4}]`

	items := parseGenerated(text, filters)
	require.Len(t, items, 2)

	first := items[0]
	require.Equal(t, 1_000_000, first.Price)
	require.Equal(t, 4.0, first.Rating)
	require.Equal(t, listing.CategoryFemale, first.Category)
	require.Equal(t, "AI Generated", first.Source)
	require.True(t, first.Available)
	require.True(t, strings.HasPrefix(first.ID, "ai-"))
	require.NotNil(t, first.Facilities)

	second := items[1]
	require.Equal(t, 800_000, second.Price)
	require.Equal(t, listing.CategoryMale, second.Category)
	require.Equal(t, 4.4, second.Rating)
}

func TestParseGeneratedRejectsGarbage(t *testing.T) {
	filters := listing.Filters{MaxBudget: 1_000_000}
	require.Nil(t, parseGenerated("not json at all", filters))
	require.Nil(t, parseGenerated(`["just", "strings"]`, filters))
}

func TestBuildGenerationPromptIncludesCriteria(t *testing.T) {
	prompt := buildGenerationPrompt(listing.Filters{
		Location:   "Surabaya",
		MaxBudget:  1_750_000,
		Facilities: []string{"AC", "Kamar Mandi Dalam"},
		Category:   listing.CategoryMale,
	})
	require.Contains(t, prompt, "Surabaya")
	require.Contains(t, prompt, "Rp 1750000")
	require.Contains(t, prompt, "AC, Kamar Mandi Dalam")
	require.Contains(t, prompt, "Putra")
	require.Contains(t, prompt, "JSON array")
}

func TestSynthesizeRespectsFilters(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	filters := listing.Filters{
		Location:   "Bandung",
		MaxBudget:  1_200_000,
		Facilities: []string{"AC", "WiFi"},
		Category:   listing.CategoryFemale,
	}

	for i := 0; i < 50; i++ {
		got := synthesize(filters, rng)
		require.LessOrEqual(t, got.Price, filters.MaxBudget)
		require.Positive(t, got.Price)
		require.Zero(t, got.Price%50_000)
		require.Equal(t, listing.CategoryFemale, got.Category)
		require.Equal(t, "generated", got.Source)
		require.Equal(t, "Bandung", got.City)
		require.Subset(t, got.Facilities, filters.Facilities)
		require.GreaterOrEqual(t, got.Rating, 3.5)
		require.LessOrEqual(t, got.Rating, 5.0)
		require.True(t, strings.HasPrefix(got.ID, "generated-"))
		require.True(t, strings.HasPrefix(got.WhatsApp, "https://wa.me/62"))
	}
}

func TestSynthesizeUnknownLocation(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	got := synthesize(listing.Filters{Location: "Malang", MaxBudget: 900_000, Category: listing.CategoryAny}, rng)
	require.Equal(t, "Malang", got.City)
	require.Equal(t, listing.CategoryMixed, got.Category)
	require.Contains(t, got.Address, "Malang")
}
