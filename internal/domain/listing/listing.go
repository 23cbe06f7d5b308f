package listing

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Category is the closed set of occupancy types a kost can advertise.
type Category string

const (
	CategoryMale   Category = "Putra"
	CategoryFemale Category = "Putri"
	CategoryMixed  Category = "Campur"
	CategoryAny    Category = "Semua"
)

// ParseCategory maps a raw token onto the closed category set. Unrecognized
// values fail closed to CategoryMixed so no provider string ever propagates.
func ParseCategory(raw string) Category {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "putra":
		return CategoryMale
	case "putri":
		return CategoryFemale
	case "campur":
		return CategoryMixed
	case "semua":
		return CategoryAny
	default:
		return CategoryMixed
	}
}

// ParseRequestedCategory is the user-input variant: an absent token means the
// caller has no preference and defaults to CategoryAny.
func ParseRequestedCategory(raw string) Category {
	if strings.TrimSpace(raw) == "" {
		return CategoryAny
	}
	return ParseCategory(raw)
}

// Listing is the canonical record every source normalizes into.
type Listing struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Address     string   `json:"address"`
	Price       int      `json:"price"`
	DistanceKm  *float64 `json:"distanceKm,omitempty"`
	Facilities  []string `json:"facilities"`
	Category    Category `json:"category"`
	Available   bool     `json:"available"`
	Source      string   `json:"source"`
	SourceURL   string   `json:"sourceUrl,omitempty"`
	Rating      float64  `json:"rating,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Contact     string   `json:"contact,omitempty"`
	WhatsApp    string   `json:"whatsapp,omitempty"`
	Description string   `json:"description,omitempty"`
	Images      []string `json:"images,omitempty"`

	District        string   `json:"district,omitempty"`
	City            string   `json:"city,omitempty"`
	Province        string   `json:"province,omitempty"`
	NearbyCampuses  []string `json:"nearbyCampuses,omitempty"`
	NearbyMalls     []string `json:"nearbyMalls,omitempty"`
	TransportAccess []string `json:"transportAccess,omitempty"`
	ExtraCosts      []string `json:"extraCosts,omitempty"`
	HouseRules      []string `json:"houseRules,omitempty"`
	Advantages      []string `json:"advantages,omitempty"`
}

// DedupKey identifies duplicates across providers. Two listings with the same
// address and price are treated as the same physical unit; this will merge
// distinct units that coincidentally share both fields and will miss the same
// unit re-priced elsewhere, which is a known limitation of the key.
func (l Listing) DedupKey() string {
	return l.Address + "|" + strconv.Itoa(l.Price)
}

// Origin tags whether a result came from a real source or was fabricated by
// the fallback generator, so consumers can always tell the two apart.
type Origin string

const (
	OriginSourced   Origin = "sourced"
	OriginSynthetic Origin = "synthetic"
)

// Result pairs a listing with its provenance variant.
type Result struct {
	Listing
	Origin Origin `json:"origin"`
}

// Filters is the per-request search query. It is constructed once per request
// and never mutated after dispatch.
type Filters struct {
	Location      string   `json:"location"`
	MaxBudget     int      `json:"maxBudget"`
	Facilities    []string `json:"facilities"`
	Category      Category `json:"category"`
	MaxDistanceKm float64  `json:"maxDistanceKm,omitempty"`
}

// CacheKey derives the deterministic cache key for a provider + filter pair.
func (f Filters) CacheKey(provider string) string {
	payload, err := json.Marshal(f)
	if err != nil {
		payload = []byte(f.Location + "|" + strconv.Itoa(f.MaxBudget) + "|" + string(f.Category))
	}
	return provider + "-" + string(payload)
}

// ClampPrice enforces the producer-side invariant price <= maxBudget.
func ClampPrice(price, maxBudget int) int {
	if price < 0 {
		return 0
	}
	if maxBudget > 0 && price > maxBudget {
		return maxBudget
	}
	return price
}
