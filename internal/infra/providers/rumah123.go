package providers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/carikost/carikost/internal/domain/listing"
	"github.com/carikost/carikost/internal/domain/search"
)

// Rumah123 queries the Rumah123 property API filtered to kost units.
type Rumah123 struct {
	client
}

// NewRumah123 constructs the Rumah123 adapter.
func NewRumah123(cfg Config, cache search.Cache, logger *slog.Logger) *Rumah123 {
	return &Rumah123{client: newClient("rumah123", cfg, cache, logger)}
}

func (r *Rumah123) Name() string { return "rumah123" }

func (r *Rumah123) Search(ctx context.Context, filters listing.Filters) ([]listing.Listing, error) {
	params := url.Values{
		"location":      {filters.Location},
		"price_max":     {strconv.Itoa(filters.MaxBudget)},
		"property_type": {"kos"},
		"limit":         {"15"},
		"page":          {"1"},
	}
	return r.fetch(ctx, filters, "/properties/search", params, authBearer, func(body []byte) ([]listing.Listing, error) {
		var envelope struct {
			Properties []upstreamListing `json:"properties"`
		}
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, err
		}
		out := make([]listing.Listing, 0, len(envelope.Properties))
		for _, item := range envelope.Properties {
			name := item.Name
			if name == "" {
				name = "Kos Rumah123"
			}
			description := item.Description
			if description == "" {
				description = "Kos dari Rumah123"
			}
			out = append(out, listing.Listing{
				ID:          "rumah123-" + item.ID.String(),
				Name:        name,
				Address:     item.address(),
				Price:       item.price(filters.MaxBudget),
				DistanceKm:  item.Distance,
				Facilities:  item.facilities(),
				Category:    item.category(),
				Available:   item.available(),
				Source:      "rumah123.com",
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

var _ search.Provider = (*Rumah123)(nil)
