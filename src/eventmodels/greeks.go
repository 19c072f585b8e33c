package eventmodels

// Greeks are the closed form sensitivities of an option price. Theta is per year and Vega and
// Rho are per unit (not per percentage point) change of volatility and rate.
type Greeks struct {
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Vega  float64 `json:"vega"`
	Theta float64 `json:"theta"`
	Rho   float64 `json:"rho"`
}
