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

// Mamikos queries the Mamikos kost marketplace.
type Mamikos struct {
	client
}

// NewMamikos constructs the Mamikos adapter.
func NewMamikos(cfg Config, cache search.Cache, logger *slog.Logger) *Mamikos {
	return &Mamikos{client: newClient("mamikos", cfg, cache, logger)}
}

func (m *Mamikos) Name() string { return "mamikos" }

func (m *Mamikos) Search(ctx context.Context, filters listing.Filters) ([]listing.Listing, error) {
	params := url.Values{
		"location":   {filters.Location},
		"max_price":  {strconv.Itoa(filters.MaxBudget)},
		"type":       {strings.ToLower(string(filters.Category))},
		"facilities": {strings.Join(filters.Facilities, ",")},
		"limit":      {"20"},
		"page":       {"1"},
	}
	return m.fetch(ctx, filters, "/kos/search", params, authBearer, func(body []byte) ([]listing.Listing, error) {
		var envelope struct {
			Data []upstreamListing `json:"data"`
		}
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, err
		}
		out := make([]listing.Listing, 0, len(envelope.Data))
		for _, item := range envelope.Data {
			name := item.Name
			if name == "" {
				name = "Kos Mamikos"
			}
			description := item.Description
			if description == "" {
				description = "Kos nyaman dengan fasilitas lengkap"
			}
			out = append(out, listing.Listing{
				ID:          "mamikos-" + item.ID.String(),
				Name:        name,
				Address:     item.address(),
				Price:       item.price(filters.MaxBudget),
				DistanceKm:  item.Distance,
				Facilities:  item.facilities(),
				Category:    item.category(),
				Available:   item.available(),
				Source:      "mamikos.com",
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

var _ search.Provider = (*Mamikos)(nil)
