package numberutils

import (
	"math"
	"strconv"
)

// IsFloat64 checks if the given string can be converted to a valid float64.
// It returns true if the string can be converted to a float64, false otherwise.
func IsFloat64(str string) bool {
	_, err := strconv.ParseFloat(str, 64)
	return err == nil
}

// ToFloat64WithError converts the given string to a float64 and returns any error that occurred during conversion.
// It returns the float64 value if successful, or an error if the string cannot be converted.
func ToFloat64WithError(str string) (float64, error) {
	return strconv.ParseFloat(str, 64)
}

// ToFloat64WithDefault converts the given string to a float64.
// If the string cannot be converted, it returns the provided default value.
func ToFloat64WithDefault(s string, defaultVal float64) float64 {
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return defaultVal
}

// IsFinite checks if the given float64 is a finite number.
// It returns false for NaN and for positive or negative infinity.
func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// MaxFloat64 returns the maximum value from a list of float64 values.
// It accepts a variadic number of float64 values and returns the largest one.
func MaxFloat64(nums ...float64) float64 {
	if len(nums) == 0 {
		return 0
	}
	maxVal := nums[0]
	for _, num := range nums[1:] {
		if num > maxVal {
			maxVal = num
		}
	}
	return maxVal
}

// MinFloat64 returns the minimum value from a list of float64 values.
// It accepts a variadic number of float64 values and returns the smallest one.
func MinFloat64(nums ...float64) float64 {
	if len(nums) == 0 {
		return 0
	}
	minVal := nums[0]
	for _, num := range nums[1:] {
		if num < minVal {
			minVal = num
		}
	}
	return minVal
}
