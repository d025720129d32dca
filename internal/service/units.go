package service

// Imperial-to-metric factors used by the target calculator and the
// per-100g conversions. OzPer100g is 28.3495 g/oz divided by 100.
const (
	lbPerKg   = 2.20462
	cmPerInch = 2.54
	OzPer100g = 0.283495
)

func LbToKg(lb float64) float64 {
	return lb / lbPerKg
}

func InchToCm(inch float64) float64 {
	return inch * cmPerInch
}
