package brewing

import (
	"fmt"
	"math"
)

// RatioPlaceholder se muestra cuando el ratio no es representable.
const RatioPlaceholder = "—"

// BrewRatio = yield / dose. Con dose = 0 devuelve +Inf en lugar de fallar.
func BrewRatio(dose, yield float64) float64 {
	if dose == 0 {
		return math.Inf(1)
	}
	return yield / dose
}

// IsDisplayable indica si el ratio puede mostrarse como número.
func IsDisplayable(ratio float64) bool {
	return !math.IsInf(ratio, 0) && !math.IsNaN(ratio) && ratio > 0
}

// FormatRatio devuelve "1:2.0", o RatioPlaceholder si el ratio no es finito o no es positivo.
func FormatRatio(ratio float64) string {
	if !IsDisplayable(ratio) {
		return RatioPlaceholder
	}
	return fmt.Sprintf("1:%.1f", ratio)
}
