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

// OLX queries the OLX classifieds API. OLX listings carry no rating, so a
// neutral 4.0 is reported, and availability is derived from the sold flag.
type OLX struct {
	client
}

// NewOLX constructs the OLX adapter.
func NewOLX(cfg Config, cache search.Cache, logger *slog.Logger) *OLX {
	return &OLX{client: newClient("olx", cfg, cache, logger)}
}

func (o *OLX) Name() string { return "olx" }

func (o *OLX) Search(ctx context.Context, filters listing.Filters) ([]listing.Listing, error) {
	params := url.Values{
		"q":           {"kos " + filters.Location},
		"price_max":   {strconv.Itoa(filters.MaxBudget)},
		"category":    {"rumah-dijual-dan-disewakan"},
		"subcategory": {"kos"},
		"limit":       {"15"},
		"page":        {"1"},
	}
	return o.fetch(ctx, filters, "/listings", params, authAPIKeyHeader, func(body []byte) ([]listing.Listing, error) {
		var envelope struct {
			Listings []upstreamListing `json:"listings"`
		}
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, err
		}
		out := make([]listing.Listing, 0, len(envelope.Listings))
		for _, item := range envelope.Listings {
			name := item.Title
			if name == "" {
				name = "Kos OLX"
			}
			description := item.Description
			if description == "" {
				description = "Kos dari OLX"
			}
			out = append(out, listing.Listing{
				ID:          "olx-" + item.ID.String(),
				Name:        name,
				Address:     item.address(),
				Price:       item.price(filters.MaxBudget),
				Facilities:  item.facilities(),
				Category:    item.category(),
				Available:   !item.Sold,
				Source:      "olx.co.id",
				Rating:      4.0,
				Images:      item.images(),
				Description: description,
				Latitude:    item.Latitude,
				Longitude:   item.Longitude,
				Contact:     item.ContactPhone,
				WhatsApp:    item.ContactWhatsApp,
			})
		}
		return out, nil
	})
}

var _ search.Provider = (*OLX)(nil)
