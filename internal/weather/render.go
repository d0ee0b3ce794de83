package weather

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
)

var compassPoints = []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// Compass converts a bearing in degrees to one of eight compass points.
func Compass(deg int) string {
	d := math.Mod(float64(deg), 360)
	if d < 0 {
		d += 360
	}
	idx := int(math.Round(d/45)) % len(compassPoints)
	return compassPoints[idx]
}

// MapURL returns an OpenStreetMap link centred on the coordinates.
func MapURL(lat, lon float64) string {
	la := strconv.FormatFloat(lat, 'f', -1, 64)
	lo := strconv.FormatFloat(lon, 'f', -1, 64)

	values := url.Values{}
	values.Set("mlat", la)
	values.Set("mlon", lo)
	return fmt.Sprintf("https://www.openstreetmap.org/?%s#map=10/%s/%s", values.Encode(), la, lo)
}

// Temperature formats a temperature for display.
func (r Report) Temperature() string {
	return fmt.Sprintf("%.1f °C", r.Current.Temperature)
}

// Wind formats wind speed and direction for display.
func (r Report) Wind() string {
	return fmt.Sprintf("%.1f km/h from %d° (%s)",
		r.Current.WindSpeed, r.Current.WindDirection, Compass(r.Current.WindDirection))
}

// Headline is the symbol followed by the place name.
func (r Report) Headline() string {
	return r.Symbol + "  " + r.Place
}
