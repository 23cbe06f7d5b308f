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

// Travelio queries the Travelio monthly-rental API.
type Travelio struct {
	client
}

// NewTravelio constructs the Travelio adapter.
func NewTravelio(cfg Config, cache search.Cache, logger *slog.Logger) *Travelio {
	return &Travelio{client: newClient("travelio", cfg, cache, logger)}
}

func (t *Travelio) Name() string { return "travelio" }

func (t *Travelio) Search(ctx context.Context, filters listing.Filters) ([]listing.Listing, error) {
	params := url.Values{
		"city":          {filters.Location},
		"max_price":     {strconv.Itoa(filters.MaxBudget)},
		"property_type": {"kost"},
		"limit":         {"10"},
		"page":          {"1"},
	}
	return t.fetch(ctx, filters, "/properties", params, authBearer, func(body []byte) ([]listing.Listing, error) {
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
				name = "Kos Travelio"
			}
			description := item.Description
			if description == "" {
				description = "Kos dari Travelio"
			}
			out = append(out, listing.Listing{
				ID:          "travelio-" + item.ID.String(),
				Name:        name,
				Address:     item.address(),
				Price:       item.price(filters.MaxBudget),
				DistanceKm:  item.Distance,
				Facilities:  item.facilities(),
				Category:    item.category(),
				Available:   item.available(),
				Source:      "travelio.com",
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

var _ search.Provider = (*Travelio)(nil)
