package chromosome

import (
	"fmt"
	"strconv"
	"strings"
)

func ValidListOfHumanChromosomes() []string {
	var humChroms []string
	for i := 1; i < 23; i++ {
		humChroms = append(humChroms, fmt.Sprint(i))
	}
	humChroms = append(humChroms, "X")
	humChroms = append(humChroms, "Y")
	humChroms = append(humChroms, "M")
	return humChroms
}

// Normalize strips a leading "chr" and upper-cases sex/mitochondrial
// names ("chrx" -> "X", "chrMT" -> "M").
func Normalize(text string) string {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) >= 3 && strings.EqualFold(trimmed[:3], "chr") {
		trimmed = trimmed[3:]
	}

	switch strings.ToUpper(trimmed) {
	case "X", "Y":
		return strings.ToUpper(trimmed)
	case "M", "MT":
		return "M"
	}
	return trimmed
}

func IsValidHumanChromosome(text string) bool {
	normalized := Normalize(text)

	// Check if number can be represented as an int as is non-zero
	chromNumber, err := strconv.Atoi(normalized)
	if err == nil {
		// Check if it in range 1-22
		return chromNumber > 0 && chromNumber < 23
	}

	// No it can't..
	// Check if it is an X, Y or M
	switch normalized {
	case "X", "Y", "M":
		return true
	}

	return false
}

// SortKey orders chromosomes 1..22, X, Y, M, then anything else
// (contigs, scaffolds).
func SortKey(text string) int {
	normalized := Normalize(text)
	if chromNumber, err := strconv.Atoi(normalized); err == nil && chromNumber > 0 {
		return chromNumber
	}
	switch normalized {
	case "X":
		return 23
	case "Y":
		return 24
	case "M":
		return 25
	}
	return 100
}
