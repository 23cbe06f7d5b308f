package providers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/carikost/carikost/internal/domain/listing"
	"github.com/carikost/carikost/internal/domain/search"
)

// Mamitroom queries the Mamitroom kost marketplace.
type Mamitroom struct {
	client
}

// NewMamitroom constructs the Mamitroom adapter.
func NewMamitroom(cfg Config, cache search.Cache, logger *slog.Logger) *Mamitroom {
	return &Mamitroom{client: newClient("mamitroom", cfg, cache, logger)}
}

func (m *Mamitroom) Name() string { return "mamitroom" }

func (m *Mamitroom) Search(ctx context.Context, filters listing.Filters) ([]listing.Listing, error) {
	params := url.Values{
		"location":   {filters.Location},
		"max_price":  {strconv.Itoa(filters.MaxBudget)},
		"type":       {string(filters.Category)},
		"facilities": {strings.Join(filters.Facilities, ",")},
		"limit":      {"12"},
		"page":       {"1"},
	}
	return m.fetch(ctx, filters, "/kos/search", params, authBearer, func(body []byte) ([]listing.Listing, error) {
		var envelope struct {
			Kos []upstreamListing `json:"kos"`
		}
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, err
		}
		out := make([]listing.Listing, 0, len(envelope.Kos))
		for _, item := range envelope.Kos {
			name := item.Name
			if name == "" {
				name = "Kos Mamitroom"
			}
			description := item.Description
			if description == "" {
				description = "Kos dari Mamitroom"
			}
			out = append(out, listing.Listing{
				ID:          "mamitroom-" + item.ID.String(),
				Name:        name,
				Address:     item.address(),
				Price:       item.price(filters.MaxBudget),
				DistanceKm:  item.Distance,
				Facilities:  item.facilities(),
				Category:    item.category(),
				Available:   item.available(),
				Source:      "mamitroom.com",
				Rating:      item.rating(),
				Images:      item.images(),
				Description: description,
				Latitude:    item.Latitude,
				Longitude:   item.Longitude,
				Contact:     item.contact(),
				WhatsApp:    item.WhatsApp,
			})
		}
		return out, nil
	})
}

var _ search.Provider = (*Mamitroom)(nil)
