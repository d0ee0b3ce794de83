package weather

import "testing"

func TestDescribeKnownCodes(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{0, "Clear sky"},
		{2, "Partly cloudy"},
		{3, "Overcast"},
		{45, "Fog"},
		{66, "Light freezing rain"},
		{95, "Thunderstorm"},
		{99, "Thunderstorm with heavy hail"},
	}

	for _, tt := range tests {
		if got := Describe(tt.code); got != tt.want {
			t.Errorf("Describe(%d): expected %q, got %q", tt.code, tt.want, got)
		}
	}
}

func TestSymbolClasses(t *testing.T) {
	tests := []struct {
		codes []int
		want  string
	}{
		{[]int{0}, SymbolClear},
		{[]int{1, 2}, SymbolPartlyCloudy},
		{[]int{3}, SymbolOvercast},
		{[]int{45, 48}, SymbolFog},
		{[]int{51, 53, 55, 61, 63, 65, 80, 81, 82}, SymbolRain},
		{[]int{56, 57, 66, 67}, SymbolFreezingRain},
		{[]int{71, 73, 75, 77, 85, 86}, SymbolSnow},
		{[]int{95, 96, 99}, SymbolThunderstorm},
	}

	for _, tt := range tests {
		for _, code := range tt.codes {
			if got := Symbol(code); got != tt.want {
				t.Errorf("Symbol(%d): expected %q, got %q", code, tt.want, got)
			}
		}
	}
}

func TestUnknownCodesFallBack(t *testing.T) {
	for code := 0; code <= 99; code++ {
		if _, known := descriptions[code]; known {
			continue
		}
		if got := Describe(code); got != UnknownDescription {
			t.Errorf("Describe(%d): expected %q, got %q", code, UnknownDescription, got)
		}
		if got := Symbol(code); got != SymbolDefault {
			t.Errorf("Symbol(%d): expected default symbol, got %q", code, got)
		}
	}

	for _, code := range []int{-1, 100, 1000} {
		if got := Describe(code); got != UnknownDescription {
			t.Errorf("Describe(%d): expected %q, got %q", code, UnknownDescription, got)
		}
		if got := Symbol(code); got != SymbolDefault {
			t.Errorf("Symbol(%d): expected default symbol, got %q", code, got)
		}
	}
}

func TestSymbolRulesAreDisjoint(t *testing.T) {
	seen := make(map[int]string)
	for _, rule := range symbolRules {
		for code := range rule.codes {
			if prev, dup := seen[code]; dup {
				t.Fatalf("code %d matches both %q and %q", code, prev, rule.symbol)
			}
			seen[code] = rule.symbol
		}
	}

	// Every classified code also has a description.
	for code := range seen {
		if Describe(code) == UnknownDescription {
			t.Errorf("code %d has a symbol but no description", code)
		}
	}
}
