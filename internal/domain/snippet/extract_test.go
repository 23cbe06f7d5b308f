package snippet

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/carikost/carikost/internal/domain/listing"
)

func TestExtractorsOnRealisticSnippet(t *testing.T) {
	s := "Kos AC wifi dekat ITB, harga 1 juta, putri only"

	require.Equal(t, 1_000_000, Price(s, 2_000_000))
	require.Subset(t, Facilities(s), []string{"AC", "WiFi"})
	require.Equal(t, listing.CategoryFemale, Category(s))
}

func TestPrice(t *testing.T) {
	cases := []struct {
		name    string
		snippet string
		budget  int
		want    int
	}{
		{"juta unit", "harga 1 juta per bulan", 2_000_000, 1_000_000},
		{"jt shorthand", "cuma 1.5jt nego", 2_000_000, 1_500_000},
		{"comma decimal", "sewa 1,2 juta", 2_000_000, 1_200_000},
		{"ribu unit", "mulai 800 ribu", 2_000_000, 800_000},
		{"clamped to budget", "harga 3 juta", 1_000_000, 1_000_000},
		{"no match defaults to 80%", "kos nyaman dekat kampus", 1_000_000, 800_000},
		{"empty snippet", "", 500_000, 400_000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Price(tc.snippet, tc.budget))
		})
	}
}

func TestFacilitiesVocabularyOrderAndDedup(t *testing.T) {
	s := "lemari besar, wifi kencang, internet 24 jam, ada AC dan parkir"
	got := Facilities(s)

	// Vocabulary order, not mention order, and wifi+internet collapse to one tag.
	require.Equal(t, []string{"AC", "WiFi", "Parkir Motor", "Lemari"}, got)
}

func TestFacilitiesNoMatch(t *testing.T) {
	require.Empty(t, Facilities("kamar kosong tanpa perabot"))
}

func TestCategoryPriorityAndDefault(t *testing.T) {
	require.Equal(t, listing.CategoryMale, Category("kos khusus putra dan campur"))
	require.Equal(t, listing.CategoryFemale, Category("khusus wanita karir"))
	require.Equal(t, listing.CategoryMixed, Category("kos campur bebas"))
	require.Equal(t, listing.CategoryMixed, Category("kos strategis murah"))
}

func TestContact(t *testing.T) {
	require.Equal(t, "081234567890", Contact("hubungi WA: 081234567890 segera"))
	require.Equal(t, "6281234567890", Contact("telp 6281234567890"))
	require.Equal(t, "", Contact("hubungi pemilik langsung"))
	require.Equal(t, "", Contact(""))
}

func TestTitle(t *testing.T) {
	require.Equal(t, "Kos dari Google", Title(""))
	require.Equal(t, "Putri Dago", Title("Kost Murah Putri Dago Bandung"))
	require.Equal(t, "Kos Terbaik", Title("kos murah"))
}

func TestAddress(t *testing.T) {
	require.Equal(t, "Gang Dago 15", Address("kos nyaman di Gang Dago 15, Bandung"))
	// The capture stops at the first period or comma, so abbreviated street
	// prefixes truncate to the abbreviation.
	require.Equal(t, "Jl", Address("kos nyaman di Jl. Dago No. 15, Bandung"))
	require.Equal(t, "Alamat lengkap akan diberikan saat kontak", Address("kos nyaman dan strategis"))
}
