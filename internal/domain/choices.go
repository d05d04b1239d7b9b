package domain

// Closed value sets for car attributes. These are fixed catalogs loaded at
// compile time; request handlers expose them for form selects and the
// validator checks exact membership.

type BodyType string

const (
	BodyCityCar     BodyType = "city"
	BodySedan       BodyType = "sedan"
	BodySUV         BodyType = "suv"
	BodyFourByFour  BodyType = "4x4"
	BodyPickup      BodyType = "pickup"
	BodyVan         BodyType = "van"
	BodyMinibus     BodyType = "minibus"
	BodyBus         BodyType = "bus"
	BodyCar         BodyType = "car"
	BodyCoupe       BodyType = "coupe"
	BodyConvertible BodyType = "conv"
	BodyOther       BodyType = "other"
)

var BodyTypes = []BodyType{
	BodyCityCar, BodySedan, BodySUV, BodyFourByFour, BodyPickup, BodyVan,
	BodyMinibus, BodyBus, BodyCar, BodyCoupe, BodyConvertible, BodyOther,
}

type FuelType string

const (
	FuelGasoline FuelType = "gasoline"
	FuelDiesel   FuelType = "diesel"
	FuelHybrid   FuelType = "hybrid"
	FuelElectric FuelType = "electric"
	FuelLPG      FuelType = "lpg"
	FuelOther    FuelType = "other"
)

var FuelTypes = []FuelType{
	FuelGasoline, FuelDiesel, FuelHybrid, FuelElectric, FuelLPG, FuelOther,
}

type Transmission string

const (
	TransmissionManual Transmission = "manual"
	TransmissionAuto   Transmission = "auto"
)

var Transmissions = []Transmission{TransmissionManual, TransmissionAuto}

// Region enumerates the 14 regions of Senegal.
type Region string

const (
	RegionDakar       Region = "Dakar"
	RegionThies       Region = "Thiès"
	RegionDiourbel    Region = "Diourbel"
	RegionKaolack     Region = "Kaolack"
	RegionFatick      Region = "Fatick"
	RegionKaffrine    Region = "Kaffrine"
	RegionLouga       Region = "Louga"
	RegionSaintLouis  Region = "Saint-Louis"
	RegionMatam       Region = "Matam"
	RegionTambacounda Region = "Tambacounda"
	RegionKedougou    Region = "Kédougou"
	RegionKolda       Region = "Kolda"
	RegionSedhiou     Region = "Sédhiou"
	RegionZiguinchor  Region = "Ziguinchor"
)

var Regions = []Region{
	RegionDakar, RegionThies, RegionDiourbel, RegionKaolack, RegionFatick,
	RegionKaffrine, RegionLouga, RegionSaintLouis, RegionMatam,
	RegionTambacounda, RegionKedougou, RegionKolda, RegionSedhiou,
	RegionZiguinchor,
}

type CarColor string

const (
	ColorWhite  CarColor = "white"
	ColorBlack  CarColor = "black"
	ColorSilver CarColor = "silver"
	ColorGrey   CarColor = "grey"
	ColorBlue   CarColor = "blue"
	ColorRed    CarColor = "red"
	ColorGreen  CarColor = "green"
	ColorYellow CarColor = "yellow"
	ColorOrange CarColor = "orange"
	ColorBrown  CarColor = "brown"
	ColorBeige  CarColor = "beige"
	ColorGold   CarColor = "gold"
	ColorPurple CarColor = "purple"
	ColorOther  CarColor = "other"
)

var CarColors = []CarColor{
	ColorWhite, ColorBlack, ColorSilver, ColorGrey, ColorBlue, ColorRed,
	ColorGreen, ColorYellow, ColorOrange, ColorBrown, ColorBeige, ColorGold,
	ColorPurple, ColorOther,
}

// ColorHex maps a car color to the hex value used for the swatch next to the
// listing. Unknown values fall back to the "other" swatch.
var ColorHex = map[CarColor]string{
	ColorWhite:  "#ffffff",
	ColorBlack:  "#000000",
	ColorSilver: "#c0c0c0",
	ColorGrey:   "#808080",
	ColorBlue:   "#1e73be",
	ColorRed:    "#d32f2f",
	ColorGreen:  "#2e7d32",
	ColorYellow: "#fbc02d",
	ColorOrange: "#fb8c00",
	ColorBrown:  "#795548",
	ColorBeige:  "#f5f5dc",
	ColorGold:   "#d4af37",
	ColorPurple: "#7b1fa2",
	ColorOther:  "#9e9e9e",
}

// HexFor returns the display hex for a color.
func HexFor(c CarColor) string {
	if hex, ok := ColorHex[c]; ok {
		return hex
	}
	return ColorHex[ColorOther]
}

// Daily prices and mileages are selections from fixed ladders, not free-form
// numbers. Both run in 5 000 steps.
var (
	PriceLadder   = buildLadder(15000, 100000, 5000)
	MileageLadder = buildLadder(10000, 300000, 5000)
)

func buildLadder(from, to, step int) []int {
	out := make([]int, 0, (to-from)/step+1)
	for v := from; v <= to; v += step {
		out = append(out, v)
	}
	return out
}

// InLadder reports whether v is one of the permitted ladder values.
func InLadder(ladder []int, v int) bool {
	for _, p := range ladder {
		if p == v {
			return true
		}
	}
	return false
}
