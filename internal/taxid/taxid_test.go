package taxid

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValid_CPF(t *testing.T) {
	valid := []string{
		"52998224725",
		"11144477735",
		// acceptance depends on the check digits alone; repeated-digit
		// sequences with consistent check digits pass
		"11111111111",
	}
	for _, id := range valid {
		assert.True(t, Valid(id), "expected valid CPF %s", id)
	}

	invalid := []string{
		"52998224726", // wrong second check digit
		"52998224735", // wrong first check digit
		"5299822472",  // too short
		"529982247251",
		"5299822472a",
		"",
	}
	for _, id := range invalid {
		assert.False(t, Valid(id), "expected invalid CPF %q", id)
	}
}

func TestValid_CNPJ(t *testing.T) {
	valid := []string{
		"11222333000181",
		"11444777000161",
	}
	for _, id := range valid {
		assert.True(t, Valid(id), "expected valid CNPJ %s", id)
	}

	invalid := []string{
		"11222333000182",
		"11222333000191",
		"22222222222222",
		"1122233300018",
		"112223330001811",
	}
	for _, id := range invalid {
		assert.False(t, Valid(id), "expected invalid CNPJ %q", id)
	}
}

// Mutating any single digit of a valid identifier must flip the result.
func TestValid_SingleDigitMutation(t *testing.T) {
	for _, id := range []string{"52998224725", "11222333000181"} {
		for pos := 0; pos < len(id); pos++ {
			original := id[pos] - '0'
			mutated := []byte(id)
			mutated[pos] = byte('0' + (original+1)%10)
			assert.False(t, Valid(string(mutated)),
				fmt.Sprintf("mutation at %d of %s should be rejected", pos, id))
		}
	}
}
