package catalog

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/carikost/carikost/internal/domain/listing"
)

const (
	defaultLocation = "Bandung"
	defaultBudget   = 2_000_000
)

var (
	locationRe = regexp.MustCompile(`(?i)kos\s+(\w+)`)
	budgetRe   = regexp.MustCompile(`(?i)(\d+)\s*(jt|juta|rb|ribu)`)
)

// ParseKeyword derives search filters from a free-form sync keyword such as
// "kos murah Bandung 1 juta". Unparseable parts fall back to the Bandung
// defaults the sync pipeline has always used.
func ParseKeyword(keyword string) listing.Filters {
	filters := listing.Filters{
		Location:   defaultLocation,
		MaxBudget:  defaultBudget,
		Facilities: []string{},
		Category:   listing.CategoryAny,
	}

	if m := locationRe.FindStringSubmatch(keyword); m != nil {
		filters.Location = m[1]
	}
	if m := budgetRe.FindStringSubmatch(keyword); m != nil {
		amount, err := strconv.Atoi(m[1])
		if err == nil {
			if unit := strings.ToLower(m[2]); strings.HasPrefix(unit, "jt") || strings.HasPrefix(unit, "juta") {
				filters.MaxBudget = amount * 1_000_000
			} else {
				filters.MaxBudget = amount * 1_000
			}
		}
	}
	return filters
}
