package domain

// Quality is the craft-outcome rank of an item, independent of tier and enchantment.
type Quality int

const (
	QualityNormal      Quality = 1
	QualityGood        Quality = 2
	QualityOutstanding Quality = 3
	QualityExcellent   Quality = 4
	QualityMasterpiece Quality = 5
)

var AllQualities = []Quality{
	QualityNormal,
	QualityGood,
	QualityOutstanding,
	QualityExcellent,
	QualityMasterpiece,
}

func (q Quality) Label() string {
	switch q {
	case QualityNormal:
		return "Normal"
	case QualityGood:
		return "Good"
	case QualityOutstanding:
		return "Outstanding"
	case QualityExcellent:
		return "Excellent"
	case QualityMasterpiece:
		return "Masterpiece"
	}
	return "Unknown"
}

func (q Quality) Valid() bool {
	return q >= QualityNormal && q <= QualityMasterpiece
}

// City is one of the fixed trading locations the price API reports on.
type City string

const (
	CityBridgewatch  City = "Bridgewatch"
	CityCaerleon     City = "Caerleon"
	CityFortSterling City = "Fort Sterling"
	CityLymhurst     City = "Lymhurst"
	CityMartlock     City = "Martlock"
	CityThetford     City = "Thetford"
	CityBlackMarket  City = "Black Market"
	CityBrecilien    City = "Brecilien"
)

// AllCities lists every location, including the Black Market.
var AllCities = []City{
	CityBridgewatch,
	CityCaerleon,
	CityFortSterling,
	CityLymhurst,
	CityMartlock,
	CityThetford,
	CityBlackMarket,
	CityBrecilien,
}

// FlippingCities are the locations considered for city-to-city resource
// flipping. The Black Market only buys, and Brecilien has no open market
// access, so both are excluded from min/max comparisons.
var FlippingCities = []City{
	CityBridgewatch,
	CityCaerleon,
	CityFortSterling,
	CityLymhurst,
	CityMartlock,
	CityThetford,
}

func (c City) Flippable() bool {
	return c != CityBlackMarket && c != CityBrecilien
}
