package search

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/carikost/carikost/internal/domain/listing"
)

// fallback is invoked only when every adapter returned zero combined results.
// It first asks the generative model for listings; when that fails or yields
// nothing parseable, it synthesizes exactly one listing locally so the search
// path always answers. Everything produced here is tagged OriginSynthetic.
func (s *service) fallback(ctx context.Context, filters listing.Filters) []listing.Result {
	if s.gen != nil {
		res, err := s.gen.GenerateContent(ctx, buildGenerationPrompt(filters))
		if err != nil {
			s.logger.Warn("generative fallback failed", "error", err)
		} else if items := parseGenerated(res.Text, filters); len(items) > 0 {
			s.logger.Info("generative fallback produced listings", "count", len(items), "totalTokens", res.Usage.TotalTokens)
			out := make([]listing.Result, 0, len(items))
			for _, item := range items {
				out = append(out, listing.Result{Listing: item, Origin: listing.OriginSynthetic})
			}
			return out
		} else {
			s.logger.Warn("generative fallback returned no parseable listings")
		}
	}

	s.rngMu.Lock()
	item := synthesize(filters, s.rng)
	s.rngMu.Unlock()
	return []listing.Result{{Listing: item, Origin: listing.OriginSynthetic}}
}

func buildGenerationPrompt(filters listing.Filters) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate realistic Indonesian kost (boarding room) listings matching these criteria:\n")
	fmt.Fprintf(&b, "Location: %s\n", filters.Location)
	fmt.Fprintf(&b, "Max monthly budget: Rp %d\n", filters.MaxBudget)
	fmt.Fprintf(&b, "Requested facilities: %s\n", strings.Join(filters.Facilities, ", "))
	fmt.Fprintf(&b, "Occupancy type: %s\n\n", filters.Category)
	b.WriteString(`Respond ONLY with a JSON array. Each element must use this schema:
{"name":string,"address":string,"price":number,"facilities":string[],"category":"Putra"|"Putri"|"Campur","rating":number,"source":string,"sourceUrl":string,"contact":string,"description":string,"latitude":number,"longitude":number,"distanceKm":number}
Use current market rates for the location, real landmark references in addresses, and WhatsApp numbers in 628xxxxxxxxx format. No text outside the JSON array.`)
	return b.String()
}

// generatedWire is the tolerant schema for model output. Absent or invalid
// fields map to explicit defaults in toListing rather than ad hoc fallbacks.
type generatedWire struct {
	Name        string   `json:"name"`
	Address     string   `json:"address"`
	Price       int      `json:"price"`
	Facilities  []string `json:"facilities"`
	Category    string   `json:"category"`
	Rating      float64  `json:"rating"`
	Source      string   `json:"source"`
	SourceURL   string   `json:"sourceUrl"`
	Contact     string   `json:"contact"`
	Description string   `json:"description"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	DistanceKm  *float64 `json:"distanceKm"`
}

func parseGenerated(text string, filters listing.Filters) []listing.Listing {
	raw, ok := extractJSONArray(text)
	if !ok {
		return nil
	}
	var wires []generatedWire
	if err := json.Unmarshal([]byte(raw), &wires); err != nil {
		return nil
	}
	out := make([]listing.Listing, 0, len(wires))
	for _, w := range wires {
		out = append(out, w.toListing(filters))
	}
	return out
}

func (w generatedWire) toListing(filters listing.Filters) listing.Listing {
	category := listing.ParseCategory(w.Category)
	if strings.TrimSpace(w.Category) == "" {
		category = filters.Category
		if category == listing.CategoryAny || category == "" {
			category = listing.CategoryMixed
		}
	}
	rating := w.Rating
	if rating < 1 || rating > 5 {
		rating = 4.0
	}
	source := w.Source
	if source == "" {
		source = "AI Generated"
	}
	facilities := w.Facilities
	if facilities == nil {
		facilities = []string{}
	}
	return listing.Listing{
		ID:          "ai-" + uuid.NewString(),
		Name:        w.Name,
		Address:     w.Address,
		Price:       listing.ClampPrice(w.Price, filters.MaxBudget),
		DistanceKm:  w.DistanceKm,
		Facilities:  facilities,
		Category:    category,
		Available:   true,
		Source:      source,
		SourceURL:   w.SourceURL,
		Rating:      rating,
		Latitude:    w.Latitude,
		Longitude:   w.Longitude,
		Contact:     w.Contact,
		Description: w.Description,
	}
}

// extractJSONArray locates the first top-level JSON array literal in text by
// bracket matching. String literals are tracked so brackets inside quoted
// values do not unbalance the scan.
func extractJSONArray(text string) (string, bool) {
	start := strings.IndexByte(text, '[')
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}
