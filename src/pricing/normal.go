package pricing

import (
	"gonum.org/v1/gonum/stat/distuv"
)

// NormalCDF returns P(Z <= x) for a standard normal Z. It is erfc based, so the tails keep
// full relative precision and NormalCDF(-Inf) == 0, NormalCDF(+Inf) == 1.
func NormalCDF(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}

func NormalPDF(x float64) float64 {
	return distuv.UnitNormal.Prob(x)
}
