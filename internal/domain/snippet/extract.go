// Package snippet extracts structured listing fields from free-text search
// engine snippets. Every extractor is pure, total and deterministic.
package snippet

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/carikost/carikost/internal/domain/listing"
)

var (
	priceRe   = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*(jt|juta|rb|ribu)`)
	addressRe = regexp.MustCompile(`(?i)(?:di|dengan alamat|lokasi)\s+([^,.]+)`)
	contactRe = regexp.MustCompile(`(?i)(?:telp|hp|wa|whatsapp)\s*:?\s*(\d{10,13})`)
	titleRe   = regexp.MustCompile(`(?i)kost|kos|murah|bandung|jakarta|surabaya|yogyakarta`)
	spacesRe  = regexp.MustCompile(`\s+`)

	maleRe   = regexp.MustCompile(`(?i)putra|pria|cowok|laki-laki`)
	femaleRe = regexp.MustCompile(`(?i)putri|wanita|cewek|perempuan`)
	mixedRe  = regexp.MustCompile(`(?i)campur|gabung|mixed`)
)

// facilityPattern pairs a canonical tag with one combined regex covering all
// of its synonyms, so a snippet mentioning several synonyms still emits the
// tag once. Slice order fixes the output order.
type facilityPattern struct {
	tag string
	re  *regexp.Regexp
}

var facilityVocabulary = []facilityPattern{
	{"AC", regexp.MustCompile(`(?i)\b(?:ac|air conditioner|pendingin)\b`)},
	{"WiFi", regexp.MustCompile(`(?i)\b(?:wifi|internet|wi-fi)\b`)},
	{"Kamar Mandi Dalam", regexp.MustCompile(`(?i)kamar mandi dalam|km dalam|toilet dalam`)},
	{"Parkir Motor", regexp.MustCompile(`(?i)\bparkir\b`)},
	{"TV", regexp.MustCompile(`(?i)\b(?:tv|televisi)\b`)},
	{"Kulkas", regexp.MustCompile(`(?i)\b(?:kulkas|refrigerator)\b`)},
	{"Meja Belajar", regexp.MustCompile(`(?i)\bmeja\b`)},
	{"Lemari", regexp.MustCompile(`(?i)\b(?:lemari|closet)\b`)},
}

// Price pulls a rupiah amount out of a snippet. "1,2 juta" style decimals and
// "800 ribu" style thousands are both understood. The result is clamped to
// maxBudget; a snippet with no price defaults to 80% of the budget.
func Price(snippet string, maxBudget int) int {
	m := priceRe.FindStringSubmatch(snippet)
	if m == nil {
		return maxBudget * 8 / 10
	}
	amount, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
	if err != nil {
		return maxBudget * 8 / 10
	}
	multiplier := 1_000.0
	unit := strings.ToLower(m[2])
	if strings.Contains(unit, "jt") || strings.Contains(unit, "juta") {
		multiplier = 1_000_000.0
	}
	return listing.ClampPrice(int(amount*multiplier), maxBudget)
}

// Facilities tests the fixed vocabulary against the snippet and returns the
// matched tags in vocabulary order.
func Facilities(snippet string) []string {
	var out []string
	for _, p := range facilityVocabulary {
		if p.re.MatchString(snippet) {
			out = append(out, p.tag)
		}
	}
	return out
}

// Category resolves the occupancy type with male > female > mixed priority
// and defaults to mixed when no keyword matches.
func Category(snippet string) listing.Category {
	switch {
	case maleRe.MatchString(snippet):
		return listing.CategoryMale
	case femaleRe.MatchString(snippet):
		return listing.CategoryFemale
	case mixedRe.MatchString(snippet):
		return listing.CategoryMixed
	default:
		return listing.CategoryMixed
	}
}

// Contact extracts a labeled phone number; no label means no contact.
func Contact(snippet string) string {
	m := contactRe.FindStringSubmatch(snippet)
	if m == nil {
		return ""
	}
	return m[1]
}

// Title cleans a search result title into a display name.
func Title(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return "Kos dari Google"
	}
	cleaned := strings.TrimSpace(spacesRe.ReplaceAllString(titleRe.ReplaceAllString(raw, ""), " "))
	if cleaned == "" {
		return "Kos Terbaik"
	}
	return cleaned
}

// Address pulls the best-effort street fragment out of a snippet.
func Address(snippet string) string {
	m := addressRe.FindStringSubmatch(snippet)
	if m == nil {
		return "Alamat lengkap akan diberikan saat kontak"
	}
	return strings.TrimSpace(m[1])
}
