// Package units converts between the metric values upstream APIs return and
// the imperial values shown to surfers.
package units

const (
	feetPerMeter = 3.28084
	kmPerMile    = 1.60934
)

func MetersToFeet(m float64) float64 {
	return m * feetPerMeter
}

func CelsiusToFahrenheit(c float64) float64 {
	return c*9/5 + 32
}

func FahrenheitToCelsius(f float64) float64 {
	return (f - 32) * 5 / 9
}

func KmhToMph(kmh float64) float64 {
	return kmh / kmPerMile
}

func KmToMiles(km float64) float64 {
	return km / kmPerMile
}
