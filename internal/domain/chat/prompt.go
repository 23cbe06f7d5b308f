package chat

import (
	"fmt"
	"regexp"
	"strings"
)

var markdownBoldRe = regexp.MustCompile(`\*\*(.*?)\*\*`)

const apologyReply = "Wah maaf ya dek, Mbah lagi sibuk ngurus kos lain. Coba tanya lagi nanti ya! 😊"

const personaPrompt = `Anda adalah Mbah, seorang ahli kos di Indonesia yang sangat ramah, berpengalaman, dan menguasai semua area kos di Indonesia. Gunakan bahasa Indonesia yang santai, ramah, dan khas anak kos.

Karakteristik Mbah:
- Ramah dan sering menggunakan kata "ya", "nak", "dek"
- Menggunakan emotikon seperti 😊, 🏠, 💰 sesuai konteks
- Pengetahuan mendalam tentang area kos di Jakarta, Bandung, Yogyakarta, Surabaya, dll
- Memberikan informasi harga realistis dan lokasi strategis
- Memberikan tips kos yang berguna
- Bisa memberikan rekomendasi berdasarkan budget dan kebutuhan

Format jawaban yang natural:
- Untuk pencarian kos: berikan 2-3 rekomendasi spesifik dengan lokasi dan harga
- Untuk pertanyaan umum: jawab dengan pengalaman dan tips
- Gunakan bahasa gaul anak kos yang familiar`

func buildPersonaPrompt(message string) string {
	return fmt.Sprintf("%s\n\nPertanyaan user: %s\n\nJawaban Mbah:", personaPrompt, message)
}

func buildExtractionPrompt(message string) string {
	return fmt.Sprintf(`Extract search criteria from this Indonesian message: %q

Return JSON with:
- location: string (area/city)
- maxBudget: number (IDR)
- facilities: string[]
- type: string (Putra/Putri/Campur/Semua)

Return null if no criteria found.`, message)
}

var knownCities = []string{"jakarta", "bandung", "yogyakarta", "surabaya", "malang"}

var cityRecommendations = map[string][]string{
	"bandung": {
		"Kos Putri Dago - Deket ITB, fasilitas AC + WiFi, harga 1.2 juta/bulan",
		"Kos Campur Cihampelas - Deket mall, kamar mandi dalam, 900 ribu/bulan",
		"Kos Putra Antapani - Deket Telkom, parkir luas, 1 juta/bulan",
	},
	"jakarta": {
		"Kos Putri Depok - Deket UI, fasilitas lengkap, 1.5 juta/bulan",
		"Kos Campur Jakarta Selatan - Deket kampus, 1.8 juta/bulan",
		"Kos Putra Jakarta Timur - Akses mudah, 1.3 juta/bulan",
	},
	"yogyakarta": {
		"Kos Putri Sleman - Deket UGM, suasana tenang, 800 ribu/bulan",
		"Kos Campur Yogyakarta - Deket kraton, 1 juta/bulan",
		"Kos Putra Depok Sleman - Deket kampus, 900 ribu/bulan",
	},
}

// recommendationsFor appends a localized recommendation block for messages
// that mention kost living. Cities without a curated list get the Bandung
// set, the assistant's home turf.
func recommendationsFor(lowerMessage string) string {
	city := "bandung"
	for _, candidate := range knownCities {
		if strings.Contains(lowerMessage, candidate) {
			city = candidate
			break
		}
	}
	recs, ok := cityRecommendations[city]
	if !ok {
		recs = cityRecommendations["bandung"]
	}

	var b strings.Builder
	b.WriteString("💡 Rekomendasi spesifik dari Mbah:")
	for _, rec := range recs {
		b.WriteString("\n• ")
		b.WriteString(rec)
	}
	return b.String()
}
