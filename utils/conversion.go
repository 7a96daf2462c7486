package utils

import (
	"fmt"
	"math"
)

// ToMinorUnits converts a major-unit amount to integer minor units (cents).
func ToMinorUnits(amount float64) (int64, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return 0, fmt.Errorf("invalid amount %v", amount)
	}
	return int64(math.Round(amount * 100)), nil
}
