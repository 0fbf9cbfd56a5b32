package fetcher

import "github.com/gramseva/district-pulse/district"

// upDistricts is the seeded coverage: all 75 districts of Uttar Pradesh
// with their census district codes.
var upDistricts = []struct {
	Code string
	Name string
}{
	{"0901", "Agra"},
	{"0902", "Aligarh"},
	{"0903", "Allahabad"},
	{"0904", "Ambedkar Nagar"},
	{"0905", "Amethi"},
	{"0906", "Amroha"},
	{"0907", "Auraiya"},
	{"0908", "Azamgarh"},
	{"0909", "Baghpat"},
	{"0910", "Bahraich"},
	{"0911", "Ballia"},
	{"0912", "Balrampur"},
	{"0913", "Banda"},
	{"0914", "Barabanki"},
	{"0915", "Bareilly"},
	{"0916", "Basti"},
	{"0917", "Bijnor"},
	{"0918", "Budaun"},
	{"0919", "Bulandshahr"},
	{"0920", "Chandauli"},
	{"0921", "Chitrakoot"},
	{"0922", "Deoria"},
	{"0923", "Etah"},
	{"0924", "Etawah"},
	{"0925", "Ayodhya"},
	{"0926", "Farrukhabad"},
	{"0927", "Fatehpur"},
	{"0928", "Firozabad"},
	{"0929", "Gautam Buddha Nagar"},
	{"0930", "Ghaziabad"},
	{"0931", "Ghazipur"},
	{"0932", "Gonda"},
	{"0933", "Gorakhpur"},
	{"0934", "Hamirpur"},
	{"0935", "Hapur"},
	{"0936", "Hardoi"},
	{"0937", "Hathras"},
	{"0938", "Jalaun"},
	{"0939", "Jaunpur"},
	{"0940", "Jhansi"},
	{"0941", "Kannauj"},
	{"0942", "Kanpur Dehat"},
	{"0943", "Kanpur Nagar"},
	{"0944", "Kasganj"},
	{"0945", "Kaushambi"},
	{"0946", "Kushinagar"},
	{"0947", "Lakhimpur Kheri"},
	{"0948", "Lalitpur"},
	{"0949", "Lucknow"},
	{"0950", "Maharajganj"},
	{"0951", "Mahoba"},
	{"0952", "Mainpuri"},
	{"0953", "Mathura"},
	{"0954", "Mau"},
	{"0955", "Meerut"},
	{"0956", "Mirzapur"},
	{"0957", "Moradabad"},
	{"0958", "Muzaffarnagar"},
	{"0959", "Pilibhit"},
	{"0960", "Pratapgarh"},
	{"0961", "Prayagraj"},
	{"0962", "Raebareli"},
	{"0963", "Rampur"},
	{"0964", "Saharanpur"},
	{"0965", "Sambhal"},
	{"0966", "Sant Kabir Nagar"},
	{"0967", "Shahjahanpur"},
	{"0968", "Shamli"},
	{"0969", "Shravasti"},
	{"0970", "Siddharthnagar"},
	{"0971", "Sitapur"},
	{"0972", "Sonbhadra"},
	{"0973", "Sultanpur"},
	{"0974", "Unnao"},
	{"0975", "Varanasi"},
}

// SeedDistricts returns the built-in district reference list.
func SeedDistricts() []district.District {
	out := make([]district.District, 0, len(upDistricts))
	for _, d := range upDistricts {
		out = append(out, district.District{
			StateCode:    "09",
			StateName:    "Uttar Pradesh",
			DistrictCode: d.Code,
			DistrictName: d.Name,
		})
	}
	return out
}

// districtName resolves a code against the seed list.
func districtName(code string) string {
	for _, d := range upDistricts {
		if d.Code == code {
			return d.Name
		}
	}
	return "Unknown"
}
