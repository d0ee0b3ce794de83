package weather

// UnknownDescription is returned by Describe for codes outside the WMO table.
const UnknownDescription = "Unknown"

// Symbols for each condition class.
const (
	SymbolClear        = "☀️"
	SymbolPartlyCloudy = "⛅"
	SymbolOvercast     = "☁️"
	SymbolFog          = "🌫️"
	SymbolRain         = "🌧️"
	SymbolFreezingRain = "🧊"
	SymbolSnow         = "❄️"
	SymbolThunderstorm = "⛈️"
	SymbolDefault      = "🌡️"
)

// WMO weather interpretation codes as used by Open-Meteo.
var descriptions = map[int]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Fog",
	48: "Depositing rime fog",
	51: "Light drizzle",
	53: "Moderate drizzle",
	55: "Dense drizzle",
	56: "Light freezing drizzle",
	57: "Dense freezing drizzle",
	61: "Slight rain",
	63: "Moderate rain",
	65: "Heavy rain",
	66: "Light freezing rain",
	67: "Heavy freezing rain",
	71: "Slight snow fall",
	73: "Moderate snow fall",
	75: "Heavy snow fall",
	77: "Snow grains",
	80: "Slight rain showers",
	81: "Moderate rain showers",
	82: "Violent rain showers",
	85: "Slight snow showers",
	86: "Heavy snow showers",
	95: "Thunderstorm",
	96: "Thunderstorm with slight hail",
	99: "Thunderstorm with heavy hail",
}

type symbolRule struct {
	symbol string
	codes  map[int]struct{}
}

func codeSet(codes ...int) map[int]struct{} {
	set := make(map[int]struct{}, len(codes))
	for _, c := range codes {
		set[c] = struct{}{}
	}
	return set
}

// The sets are disjoint, so evaluation order does not change the result.
var symbolRules = []symbolRule{
	{symbol: SymbolClear, codes: codeSet(0)},
	{symbol: SymbolPartlyCloudy, codes: codeSet(1, 2)},
	{symbol: SymbolOvercast, codes: codeSet(3)},
	{symbol: SymbolFog, codes: codeSet(45, 48)},
	{symbol: SymbolRain, codes: codeSet(51, 53, 55, 61, 63, 65, 80, 81, 82)},
	{symbol: SymbolFreezingRain, codes: codeSet(56, 57, 66, 67)},
	{symbol: SymbolSnow, codes: codeSet(71, 73, 75, 77, 85, 86)},
	{symbol: SymbolThunderstorm, codes: codeSet(95, 96, 99)},
}

// Describe returns the human-readable label for a WMO weather code,
// or UnknownDescription when the code is not in the table.
func Describe(code int) string {
	if d, ok := descriptions[code]; ok {
		return d
	}
	return UnknownDescription
}

// Symbol returns the emoji for the condition class of a WMO weather code.
// Codes that match no class get SymbolDefault.
func Symbol(code int) string {
	for _, rule := range symbolRules {
		if _, ok := rule.codes[code]; ok {
			return rule.symbol
		}
	}
	return SymbolDefault
}
