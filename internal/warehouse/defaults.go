package warehouse

var regionLabels = map[Region]string{
	RegionWest:    "US West",
	RegionCentral: "US Central",
	RegionEast:    "US East",
}

// Label returns a display name for the region.
func (r Region) Label() string {
	if label, ok := regionLabels[r]; ok {
		return label
	}
	return string(r)
}

// Valid reports whether r is one of the known regions.
func (r Region) Valid() bool {
	_, ok := regionLabels[r]
	return ok
}

// DefaultID is the warehouse new quotes start with.
const DefaultID = "WPOCA"

var tiktokUS = []Warehouse{
	{Region: RegionWest, Sequence: 1, Name: "Tiktok_Rialto(CA_2)_FC", Type: KindFC, ID: "WPOCA", Code: "FC11_ONT5", City: "Rialto", State: "CA", Zip: "92376", Address: "1979 Renaissance Pkwy"},
	{Region: RegionWest, Sequence: 2, Name: "TikTok_Fontana(CA_1)_FC", Type: KindFC, ID: "CAICA", Code: "FC07_ONT3", City: "Fontana", State: "CA", Zip: "92337", Address: "10886 Citrus Ave"},
	{Region: RegionWest, Sequence: 3, Name: "TikTok_Fontana(CA_2)_FC", Type: KindFC, ID: "ARMFC", Code: "FC08_ONT4", City: "Fontana", State: "CA", Zip: "92337", Address: "11618 Mulberry Avenue"},
	{Region: RegionWest, Sequence: 4, Name: "TikTok_Ontario(CA)_Hub", Type: KindHub, ID: "TLHUB", Code: "XD01_ONT1", City: "Eastvale", State: "CA", Zip: "91752", Address: "4560 Hamner Ave"},
	{Region: RegionWest, Sequence: 5, Name: "TikTok_Chino(CA)_Hub", Type: KindHub, ID: "TWHUB", Code: "XD03_ONT6", City: "Chino", State: "CA", Zip: "91708", Address: "15820 Euclid Ave, Unit B"},
	{Region: RegionWest, Sequence: 6, Name: "Tiktok_Rialto(CA)_FC", Type: KindFC, ID: "GCWCA", Code: "FC01_ONT2", City: "Rialto", State: "CA", Zip: "92376", Address: "1420 Tamarind Ave"},
	{Region: RegionCentral, Sequence: 7, Name: "TikTok_Carol(IL)_FC", Type: KindFC, ID: "VEYIL", Code: "FC02_ORD1", City: "Carol", State: "IL", Zip: "60188", Address: "515 Kehoe Blvd"},
	{Region: RegionCentral, Sequence: 8, Name: "TikTok_Joliet(IL)_FC", Type: KindFC, ID: "WPOIL", Code: "FC10_ORD2", City: "Joliet", State: "IL", Zip: "60436", Address: "100 W. Compass Boulevard"},
	{Region: RegionCentral, Sequence: 9, Name: "TikTok_Stafford(TX)_FC", Type: KindFC, ID: "JDLTX", Code: "FC12_HOU3", City: "Stafford", State: "TX", Zip: "77477", Address: "13650 Pike Rd, Bldg 1"},
	{Region: RegionCentral, Sequence: 10, Name: "TikTok_Pasadena(TX)_FC", Type: KindFC, ID: "ARMTX", Code: "FC06_HOU2", City: "Pasadena", State: "TX", Zip: "77503", Address: "619 E Sam Houston Pkwy S Ste 800"},
	{Region: RegionCentral, Sequence: 11, Name: "TikTok_Houston(TX)_FC", Type: KindFC, ID: "CAITX", Code: "FC05_HOU1", City: "Houston", State: "TX", Zip: "77085", Address: "5880 W Fuqua, Suite #200"},
	{Region: RegionEast, Sequence: 12, Name: "TikTok_Middlesex(NJ)_FC", Type: KindFC, ID: "JDLNJ", Code: "FC04_EWR2", City: "Middlesex", State: "NJ", Zip: "08846", Address: "245 Mountain Ave"},
	{Region: RegionEast, Sequence: 13, Name: "TikTok_Buford(GA_2)_FC", Type: KindFC, ID: "YQNGA", Code: "FC09_ATL2", City: "Buford", State: "GA", Zip: "30518", Address: "2105 Buford Highway"},
	{Region: RegionEast, Sequence: 14, Name: "TikTok_Buford(GA)_FC", Type: KindFC, ID: "JDLGA", Code: "FC03_ATL1", City: "Buford", State: "GA", Zip: "30518", Address: "4375 S Lee St"},
	{Region: RegionEast, Sequence: 15, Name: "TikTok_Oldbridge(NJ)_FC", Type: KindFC, ID: "NJOLDB", Code: "FC13_EWR3", City: "Old Bridge", State: "NJ", Zip: "08857", Address: "400 Fairway Ln"},
	{Region: RegionEast, Sequence: 16, Name: "TikTok_Middlesex(NJ)_Hub", Type: KindHub, ID: "JDHUB", Code: "XD02_EWR1", City: "Middlesex", State: "NJ", Zip: "08846", Address: "245 Mountain Ave"},
	{Region: RegionEast, Sequence: 17, Name: "TikTok_PortReading(NJ)_FC", Type: KindFC, ID: "NJYQN", Code: "FC14_EWR4", City: "Port Reading", State: "NJ", Zip: "07064", Address: "1001 W Middlesex Ave"},
}

// Default returns a directory of the TikTok Shop US fulfilment warehouses.
func Default() *Directory {
	return NewDirectory(tiktokUS)
}
