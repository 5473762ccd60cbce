package geo

// Upazila is a sub-district administrative unit.
type Upazila struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	NameBn string `json:"name_bn"`
}

// District is a top-level administrative region of Rangpur Division.
type District struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	NameBn   string    `json:"name_bn"`
	Upazilas []Upazila `json:"upazilas"`
}

// Districts is the closed set of districts served by the portal. Scope
// identifiers used for role assignment and authorization come from here.
var Districts = []District{
	{
		ID: "rangpur", Name: "Rangpur", NameBn: "রংপুর",
		Upazilas: []Upazila{
			{ID: "rangpur-sadar", Name: "Rangpur Sadar", NameBn: "রংপুর সদর"},
			{ID: "badarganj", Name: "Badarganj", NameBn: "বদরগঞ্জ"},
			{ID: "gangachara", Name: "Gangachara", NameBn: "গংগাচড়া"},
			{ID: "kaunia", Name: "Kaunia", NameBn: "কাউনিয়া"},
			{ID: "mithapukur", Name: "Mithapukur", NameBn: "মিঠাপুকুর"},
			{ID: "pirgachha", Name: "Pirgachha", NameBn: "পীরগাছা"},
			{ID: "pirganj", Name: "Pirganj", NameBn: "পীরগঞ্জ"},
			{ID: "taraganj", Name: "Taraganj", NameBn: "তারাগঞ্জ"},
		},
	},
	{
		ID: "dinajpur", Name: "Dinajpur", NameBn: "দিনাজপুর",
		Upazilas: []Upazila{
			{ID: "dinajpur-sadar", Name: "Dinajpur Sadar", NameBn: "দিনাজপুর সদর"},
			{ID: "birampur", Name: "Birampur", NameBn: "বিরামপুর"},
			{ID: "birganj", Name: "Birganj", NameBn: "বীরগঞ্জ"},
			{ID: "biral", Name: "Biral", NameBn: "বিরল"},
			{ID: "bochaganj", Name: "Bochaganj", NameBn: "বোচাগঞ্জ"},
			{ID: "chirirbandar", Name: "Chirirbandar", NameBn: "চিরিরবন্দর"},
			{ID: "phulbari", Name: "Phulbari", NameBn: "ফুলবাড়ী"},
			{ID: "ghoraghat", Name: "Ghoraghat", NameBn: "ঘোড়াঘাট"},
			{ID: "hakimpur", Name: "Hakimpur", NameBn: "হাকিমপুর"},
			{ID: "kaharole", Name: "Kaharole", NameBn: "কাহারোল"},
			{ID: "khansama", Name: "Khansama", NameBn: "খানসামা"},
			{ID: "nawabganj", Name: "Nawabganj", NameBn: "নবাবগঞ্জ"},
			{ID: "parbatipur", Name: "Parbatipur", NameBn: "পার্বতীপুর"},
		},
	},
	{
		ID: "kurigram", Name: "Kurigram", NameBn: "কুড়িগ্রাম",
		Upazilas: []Upazila{
			{ID: "kurigram-sadar", Name: "Kurigram Sadar", NameBn: "কুড়িগ্রাম সদর"},
			{ID: "bhurungamari", Name: "Bhurungamari", NameBn: "ভুরুঙ্গামারী"},
			{ID: "char-rajibpur", Name: "Char Rajibpur", NameBn: "চর রাজিবপুর"},
			{ID: "chilmari", Name: "Chilmari", NameBn: "চিলমারী"},
			{ID: "nageshwari", Name: "Nageshwari", NameBn: "নাগেশ্বরী"},
			{ID: "phulbari-kurigram", Name: "Phulbari", NameBn: "ফুলবাড়ী"},
			{ID: "rajarhat", Name: "Rajarhat", NameBn: "রাজারহাট"},
			{ID: "raomari", Name: "Raomari", NameBn: "রৌমারী"},
			{ID: "ulipur", Name: "Ulipur", NameBn: "উলিপুর"},
		},
	},
	{
		ID: "lalmonirhat", Name: "Lalmonirhat", NameBn: "লালমনিরহাট",
		Upazilas: []Upazila{
			{ID: "lalmonirhat-sadar", Name: "Lalmonirhat Sadar", NameBn: "লালমনিরহাট সদর"},
			{ID: "aditmari", Name: "Aditmari", NameBn: "আদিতমারী"},
			{ID: "hatibandha", Name: "Hatibandha", NameBn: "হাতীবান্ধা"},
			{ID: "kaliganj", Name: "Kaliganj", NameBn: "কালীগঞ্জ"},
			{ID: "patgram", Name: "Patgram", NameBn: "পাটগ্রাম"},
		},
	},
	{
		ID: "nilphamari", Name: "Nilphamari", NameBn: "নীলফামারী",
		Upazilas: []Upazila{
			{ID: "nilphamari-sadar", Name: "Nilphamari Sadar", NameBn: "নীলফামারী সদর"},
			{ID: "dimla", Name: "Dimla", NameBn: "ডিমলা"},
			{ID: "domar", Name: "Domar", NameBn: "ডোমার"},
			{ID: "jaldhaka", Name: "Jaldhaka", NameBn: "জলঢাকা"},
			{ID: "kishoreganj", Name: "Kishoreganj", NameBn: "কিশোরগঞ্জ"},
			{ID: "saidpur", Name: "Saidpur", NameBn: "সৈয়দপুর"},
		},
	},
	{
		ID: "panchagarh", Name: "Panchagarh", NameBn: "পঞ্চগড়",
		Upazilas: []Upazila{
			{ID: "panchagarh-sadar", Name: "Panchagarh Sadar", NameBn: "পঞ্চগড় সদর"},
			{ID: "atwari", Name: "Atwari", NameBn: "আটোয়ারী"},
			{ID: "boda", Name: "Boda", NameBn: "বোদা"},
			{ID: "debiganj", Name: "Debiganj", NameBn: "দেবীগঞ্জ"},
			{ID: "tetulia", Name: "Tetulia", NameBn: "তেতুলিয়া"},
		},
	},
	{
		ID: "thakurgaon", Name: "Thakurgaon", NameBn: "ঠাকুরগাঁও",
		Upazilas: []Upazila{
			{ID: "thakurgaon-sadar", Name: "Thakurgaon Sadar", NameBn: "ঠাকুরগাঁও সদর"},
			{ID: "baliadangi", Name: "Baliadangi", NameBn: "বালিয়াডাঙ্গী"},
			{ID: "haripur", Name: "Haripur", NameBn: "হরিপুর"},
			{ID: "pirganj-thakurgaon", Name: "Pirganj", NameBn: "পীরগঞ্জ"},
			{ID: "ranisankail", Name: "Ranisankail", NameBn: "রাণীশংকৈল"},
		},
	},
	{
		ID: "gaibandha", Name: "Gaibandha", NameBn: "গাইবান্ধা",
		Upazilas: []Upazila{
			{ID: "gaibandha-sadar", Name: "Gaibandha Sadar", NameBn: "গাইবান্ধা সদর"},
			{ID: "phulchhari", Name: "Phulchhari", NameBn: "ফুলছড়ি"},
			{ID: "gobindaganj", Name: "Gobindaganj", NameBn: "গোবিন্দগঞ্জ"},
			{ID: "palashbari", Name: "Palashbari", NameBn: "পলাশবাড়ী"},
			{ID: "sadullapur", Name: "Sadullapur", NameBn: "সাদুল্লাপুর"},
			{ID: "saghata", Name: "Saghata", NameBn: "সাঘাটা"},
			{ID: "sundarganj", Name: "Sundarganj", NameBn: "সুন্দরগঞ্জ"},
		},
	},
}

var (
	districtIndex = map[string]*District{}
	upazilaIndex  = map[string]string{} // upazila id -> district id
)

func init() {
	for i := range Districts {
		d := &Districts[i]
		districtIndex[d.ID] = d
		for _, u := range d.Upazilas {
			upazilaIndex[u.ID] = d.ID
		}
	}
}

// DistrictByID looks up a district by its identifier.
func DistrictByID(id string) (*District, bool) {
	d, ok := districtIndex[id]
	return d, ok
}

// IsDistrict reports whether id names a district.
func IsDistrict(id string) bool {
	_, ok := districtIndex[id]
	return ok
}

// IsUpazilaOf reports whether upazilaID belongs to districtID.
func IsUpazilaOf(districtID, upazilaID string) bool {
	return upazilaIndex[upazilaID] == districtID
}

// IsScope reports whether id is a valid scope identifier, i.e. a district
// or an upazila anywhere in the division.
func IsScope(id string) bool {
	if _, ok := districtIndex[id]; ok {
		return true
	}
	_, ok := upazilaIndex[id]
	return ok
}
