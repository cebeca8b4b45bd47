// Package taxid validates Brazilian tax identifiers by their check digits:
// 11-digit CPF for individuals, 14-digit CNPJ for companies.
package taxid

// Valid reports whether digits is a well-formed CPF or CNPJ. The input must
// already be stripped to bare digits; any other length or character fails.
func Valid(digits string) bool {
	switch len(digits) {
	case 11:
		return validCPF(digits)
	case 14:
		return validCNPJ(digits)
	}
	return false
}

var (
	cnpjWeightsFirst  = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjWeightsSecond = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

func validCPF(digits string) bool {
	values, ok := toDigits(digits)
	if !ok {
		return false
	}

	// first check digit: weights 10 down to 2 over the leading 9 digits
	sum := 0
	for i := 0; i < 9; i++ {
		sum += values[i] * (10 - i)
	}
	if checkDigit(sum) != values[9] {
		return false
	}

	// second: weights 11 down to 2 over the leading 10 digits
	sum = 0
	for i := 0; i < 10; i++ {
		sum += values[i] * (11 - i)
	}
	return checkDigit(sum) == values[10]
}

func validCNPJ(digits string) bool {
	values, ok := toDigits(digits)
	if !ok {
		return false
	}

	sum := 0
	for i, weight := range cnpjWeightsFirst {
		sum += values[i] * weight
	}
	if checkDigit(sum) != values[12] {
		return false
	}

	sum = 0
	for i, weight := range cnpjWeightsSecond {
		sum += values[i] * weight
	}
	return checkDigit(sum) == values[13]
}

func checkDigit(sum int) int {
	remainder := sum % 11
	if remainder < 2 {
		return 0
	}
	return 11 - remainder
}

func toDigits(s string) ([]int, bool) {
	values := make([]int, len(s))
	for i, r := range s {
		if r < '0' || r > '9' {
			return nil, false
		}
		values[i] = int(r - '0')
	}
	return values, true
}
