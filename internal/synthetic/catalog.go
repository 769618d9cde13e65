package synthetic

type region struct {
	Province string
	Cities   []string
}

var regions = []region{
	{"Western", []string{"Colombo", "Gampaha", "Negombo", "Kalutara"}},
	{"Southern", []string{"Galle", "Matara", "Tangalle", "Mirissa", "Hikkaduwa"}},
	{"Central", []string{"Kandy", "Nuwara Eliya", "Dambulla", "Sigiriya"}},
	{"Northern", []string{"Jaffna", "Kilinochchi", "Mannar"}},
	{"Eastern", []string{"Trincomalee", "Batticaloa", "Arugam Bay"}},
	{"North Western", []string{"Kurunegala", "Puttalam", "Kalpitiya"}},
	{"North Central", []string{"Anuradhapura", "Polonnaruwa"}},
	{"Uva", []string{"Badulla", "Ella", "Bandarawela"}},
	{"Sabaragamuwa", []string{"Ratnapura", "Kegalle"}},
}

var (
	accommodationTypes   = []string{"hotel", "villa", "guesthouse", "resort", "hostel", "boutique_hotel", "eco_lodge"}
	accommodationWeights = []float64{25, 15, 20, 20, 10, 5, 5}

	amenities = []string{
		"wifi", "hot_water", "pool", "parking", "restaurant", "bar",
		"gym", "spa", "beach_access", "garden", "air_conditioning",
		"room_service", "laundry", "airport_shuttle", "terrace", "bbq",
	}

	interests = []string{
		"coastal", "adventure", "cultural", "wildlife", "wellness",
		"luxury", "budget_friendly", "eco_friendly", "romantic", "family_friendly",
		"photography", "hiking", "surfing", "diving", "historical",
	}

	travelStyles = []string{
		"luxury", "budget", "family", "solo", "adventure",
		"romantic", "cultural", "relaxation", "eco_tourism", "business",
	}

	languages = []string{
		"English", "Sinhala", "Tamil", "French", "German",
		"Japanese", "Chinese", "Spanish", "Italian", "Russian",
	}

	expertiseAreas = []string{
		"Wildlife", "Cultural", "Adventure", "Historical", "Photography",
		"Surfing", "Diving", "Hiking", "Tea Plantation", "Ayurveda",
		"Bird Watching", "Food Tours", "Religious Sites", "Beach Activities",
		"Nature Trails", "City Tours", "Shopping", "Whale Watching",
	}

	firstNames = []string{
		"Nimal", "Saman", "Kamal", "Priya", "Sandun", "Chatura", "Dilshan",
		"Tharindu", "Chaminda", "Asanka", "Nuwan", "Kasun", "Ruwan", "Mahesh",
		"Kumar", "Ravi", "Sunil", "Anil", "Prasad", "Dinesh", "Roshan",
		"Lakshmi", "Nalini", "Amali", "Thilini", "Chathurika", "Nadeeka",
	}

	lastNames = []string{
		"Silva", "Fernando", "Perera", "Jayawardena", "Wickramasinghe",
		"Gunasekara", "Rajapakse", "Amarasinghe", "Bandaranaike", "Dissanayake",
		"Wijesinghe", "Karunaratne", "De Silva", "Jayasuriya", "Mendis",
	}

	namePrefixes = []string{"The", "Grand", "Royal", "Paradise", "Ocean", "Hill", "Palm", "Green", "Blue", "Golden"}
	nameSuffixes = []string{"Resort", "Hotel", "Villa", "Retreat", "Lodge", "Inn", "Guesthouse", "Hideaway"}
)

var (
	coastalCities  = []string{"Galle", "Mirissa", "Hikkaduwa", "Negombo", "Trincomalee", "Arugam Bay", "Tangalle"}
	surfCities     = []string{"Galle", "Mirissa", "Hikkaduwa", "Arugam Bay"}
	wildlifeCities = []string{"Trincomalee", "Arugam Bay"}
	heritageCities = []string{"Kandy", "Anuradhapura", "Polonnaruwa", "Sigiriya"}
	hillCities     = []string{"Nuwara Eliya", "Ella", "Kandy", "Badulla"}
	trekkingCities = []string{"Nuwara Eliya", "Ella", "Badulla"}

	beachExpertise    = []string{"Surfing", "Diving", "Whale Watching", "Beach Activities"}
	heritageExpertise = []string{"Cultural", "Historical", "Religious Sites"}
	hillExpertise     = []string{"Hiking", "Tea Plantation", "Nature Trails"}
)

// Provinces lists the province names the generators draw from.
func Provinces() []string {
	out := make([]string, len(regions))
	for i, r := range regions {
		out[i] = r.Province
	}
	return out
}
