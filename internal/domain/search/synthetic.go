package search

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"

	"github.com/carikost/carikost/internal/domain/listing"
)

// cityInfo is the fixed per-city reference data used by the synthetic
// generator: representative coordinates, landmarks and naming.
type cityInfo struct {
	prefix          string
	area            string
	city            string
	province        string
	street          string
	district        string
	latitude        float64
	longitude       float64
	priceMultiplier float64
	campuses        []string
	malls           []string
	transport       []string
	localFacilities []string
}

var cityTable = map[string]cityInfo{
	"jakarta": {
		prefix: "Kos Exclusive", area: "Jakarta Selatan", city: "Jakarta", province: "DKI Jakarta",
		street: "Jl. Kemang Raya", district: "Kebayoran Baru",
		latitude: -6.261493, longitude: 106.8106, priceMultiplier: 1.5,
		campuses:        []string{"Universitas Indonesia", "BINUS University", "Atma Jaya University"},
		malls:           []string{"Kemang Village", "Pondok Indah Mall", "Senayan City"},
		transport:       []string{"TransJakarta", "MRT Jakarta", "Go-Jek/Grab"},
		localFacilities: []string{"Deket MRT", "Deket TransJakarta", "Deket Mall"},
	},
	"bandung": {
		prefix: "Kos Asri", area: "Dago", city: "Bandung", province: "Jawa Barat",
		street: "Jl. Ir. H. Djuanda", district: "Coblong",
		latitude: -6.890898, longitude: 107.6101, priceMultiplier: 1.2,
		campuses:        []string{"ITB", "Universitas Padjadjaran", "Universitas Kristen Maranatha"},
		malls:           []string{"Paris Van Java", "Bandung Indah Plaza", "Trans Studio Mall"},
		transport:       []string{"Angkot", "Trans Bandung Raya", "Go-Jek/Grab"},
		localFacilities: []string{"Deket Kampus", "Deket PVJ", "Deket Cihampelas"},
	},
	"yogyakarta": {
		prefix: "Kos Harmoni", area: "Sleman", city: "Yogyakarta", province: "DI Yogyakarta",
		street: "Jl. Kaliurang", district: "Depok",
		latitude: -7.7956, longitude: 110.3695, priceMultiplier: 1.0,
		campuses:        []string{"UGM", "Universitas Islam Indonesia", "Universitas Atma Jaya Yogyakarta"},
		malls:           []string{"Hartono Mall", "Jogja City Mall", "Ambarrukmo Plaza"},
		transport:       []string{"Trans Jogja", "Gojek/Grab", "Angkot"},
		localFacilities: []string{"Deket UGM", "Deket Malioboro", "Deket Kaliurang"},
	},
	"surabaya": {
		prefix: "Kos Premium", area: "Surabaya Barat", city: "Surabaya", province: "Jawa Timur",
		street: "Jl. Mayjen Sungkono", district: "Dukuh Pakis",
		latitude: -7.2906, longitude: 112.7344, priceMultiplier: 1.1,
		campuses:        []string{"ITS", "Universitas Airlangga", "Universitas Surabaya"},
		malls:           []string{"Tunjungan Plaza", "Surabaya Town Square", "Ciputra World"},
		transport:       []string{"Trans Semanggi Suroboyo", "Gojek/Grab", "Angkot"},
		localFacilities: []string{"Deket ITS", "Deket Tunjungan", "Deket Bandara"},
	},
}

func cityFor(location string) cityInfo {
	key := strings.ToLower(strings.TrimSpace(location))
	if info, ok := cityTable[key]; ok {
		return info
	}
	name := strings.TrimSpace(location)
	if name == "" {
		name = "Bandung"
	}
	return cityInfo{
		prefix: "Kos Nyaman", area: name, city: name, province: "Indonesia",
		street: "Jl. " + name + " Raya", district: name,
		latitude: -6.2088, longitude: 106.8456, priceMultiplier: 1.0,
		campuses:  []string{"Universitas Terdekat"},
		malls:     []string{"Mall Terdekat"},
		transport: []string{"Transportasi Umum"},
	}
}

var (
	categoryMultipliers = map[listing.Category]float64{
		listing.CategoryMale:   1.0,
		listing.CategoryFemale: 1.1,
		listing.CategoryMixed:  0.9,
	}

	commonFacilities = []string{
		"WiFi", "AC", "Kamar Mandi Dalam", "Spring Bed", "Lemari", "Meja Belajar",
		"Smart TV", "Kulkas Mini", "Dispenser", "CCTV Security",
		"Akses 24 Jam", "Dapur Bersama", "Laundry",
	}

	contactPrefixes = []string{
		"62811", "62812", "62813", "62821", "62822", "62823", "62852", "62853", "62881", "62882",
	}

	descriptionTemplates = []string{
		"Kos %s nyaman di %s dengan fasilitas lengkap. Dekat kampus dan tempat belanja. Lingkungan aman untuk mahasiswa dan karyawan.",
		"Kos premium %s di lokasi strategis %s. Akses mudah ke transportasi umum dan fasilitas umum.",
		"Kos %s modern dengan konsep minimalis di %s. Dilengkapi fasilitas terbaik untuk kenyamanan penghuni.",
		"Kos %s exclusive di %s dengan lingkungan tenang dan asri, cocok untuk yang mengutamakan privasi.",
	}

	extraCostPool = []string{
		"Listrik: Rp 150.000 - 300.000/bulan",
		"Air: Rp 50.000 - 100.000/bulan",
		"WiFi: Rp 100.000 - 200.000/bulan",
		"Keamanan: Rp 50.000 - 100.000/bulan",
		"Kebersihan: Rp 50.000 - 100.000/bulan",
	}

	houseRulePool = []string{
		"Tidak boleh membawa tamu lawan jenis ke kamar",
		"Tidak boleh merokok di dalam kamar",
		"Wajib menjaga kebersihan kamar dan lingkungan",
		"Dilarang membawa hewan peliharaan",
		"Jam malam berlaku setelah jam 22:00",
	}

	advantagePool = []string{
		"Lokasi sangat strategis dekat kampus dan tempat belanja",
		"Lingkungan aman dengan CCTV 24 jam",
		"Fasilitas lengkap siap huni",
		"Akses mudah ke transportasi umum",
		"Dikelola oleh pengelola profesional dan ramah",
		"Area parkir luas untuk motor dan mobil",
	}
)

// synthesize fabricates one plausible listing from local randomization and the
// fixed city table. The caller must hold the service rng lock; tests pass
// their own seeded rng.
func synthesize(filters listing.Filters, rng *rand.Rand) listing.Listing {
	info := cityFor(filters.Location)

	category := filters.Category
	if category == listing.CategoryAny || category == "" {
		category = listing.CategoryMixed
	}

	base := float64(filters.MaxBudget) * 0.8
	if base > 2_000_000 {
		base = 2_000_000
	}
	multiplier := info.priceMultiplier * categoryMultipliers[category]
	variation := 0.8 + rng.Float64()*0.4
	price := int(base*multiplier*variation/50_000) * 50_000
	price = listing.ClampPrice(price, filters.MaxBudget)

	facilities := append([]string(nil), filters.Facilities...)
	seen := make(map[string]struct{}, len(facilities))
	for _, f := range facilities {
		seen[f] = struct{}{}
	}
	for len(facilities) < 8 {
		candidate := commonFacilities[rng.IntN(len(commonFacilities))]
		if _, ok := seen[candidate]; ok {
			continue
		}
		seen[candidate] = struct{}{}
		facilities = append(facilities, candidate)
	}
	for _, local := range info.localFacilities {
		if _, ok := seen[local]; !ok {
			seen[local] = struct{}{}
			facilities = append(facilities, local)
		}
	}

	contact := contactPrefixes[rng.IntN(len(contactPrefixes))] + fmt.Sprintf("%08d", 10_000_000+rng.IntN(90_000_000))
	latitude := info.latitude + (rng.Float64()-0.5)*0.02
	longitude := info.longitude + (rng.Float64()-0.5)*0.02
	distance := float64(int((0.5+rng.Float64()*4.5)*10)) / 10
	rating := float64(int((3.5+rng.Float64()*1.5)*10)) / 10

	return listing.Listing{
		ID:              "generated-" + uuid.NewString(),
		Name:            fmt.Sprintf("%s %s %s", info.prefix, category, info.area),
		Address:         fmt.Sprintf("%s No. %d, %s, %s", info.street, 1+rng.IntN(200), info.area, info.city),
		Price:           price,
		DistanceKm:      &distance,
		Facilities:      facilities,
		Category:        category,
		Available:       rng.Float64() > 0.15,
		Source:          "generated",
		SourceURL:       fmt.Sprintf("https://www.mamikos.com/kos/kos-%s-%s", strings.ToLower(string(category)), strings.ToLower(strings.ReplaceAll(info.area, " ", "-"))),
		Rating:          rating,
		Latitude:        &latitude,
		Longitude:       &longitude,
		Contact:         contact,
		WhatsApp:        "https://wa.me/" + contact,
		Description:     fmt.Sprintf(descriptionTemplates[rng.IntN(len(descriptionTemplates))], category, info.city),
		District:        info.district,
		City:            info.city,
		Province:        info.province,
		NearbyCampuses:  info.campuses,
		NearbyMalls:     info.malls,
		TransportAccess: info.transport,
		ExtraCosts:      extraCostPool[:2+rng.IntN(3)],
		HouseRules:      houseRulePool[:3+rng.IntN(3)],
		Advantages:      advantagePool[:2+rng.IntN(3)],
		Images:          []string{},
	}
}
