package service

import "github.com/pavetrack/billing-service/internal/model"

// LineTotal is the single place the quantity × unit price product is computed.
func LineTotal(quantity, unitPrice float64) float64 {
	return quantity * unitPrice
}

// RateUnitPriceSum adds up the unit prices of the rate-based commitments.
// The project bills one combined rate per executed m², so forecast and
// executed totals both multiply this same sum.
func RateUnitPriceSum(commitments []model.ServiceCommitment) float64 {
	sum := 0.0
	for _, c := range commitments {
		if c.UnitKind.RateBased() {
			sum += c.UnitPrice
		}
	}
	return sum
}

// FixedFeeTotal sums the stored line totals of fixed-fee commitments. Fixed
// fees are earned in full once committed, so the same figure feeds both the
// forecast and the executed side.
func FixedFeeTotal(commitments []model.ServiceCommitment) float64 {
	sum := 0.0
	for _, c := range commitments {
		if !c.UnitKind.RateBased() {
			sum += c.LineTotal
		}
	}
	return sum
}

// ForecastTotal projects the full billing value of a project from its planned
// quantity. When no planned quantity has been entered the forecast degrades
// to the sum of stored line totals rather than reporting zero against
// commitments that clearly carry value.
func ForecastTotal(commitments []model.ServiceCommitment, plannedQuantity float64) float64 {
	if plannedQuantity <= 0 {
		sum := 0.0
		for _, c := range commitments {
			sum += c.LineTotal
		}
		return sum
	}
	return RateUnitPriceSum(commitments)*plannedQuantity + FixedFeeTotal(commitments)
}

// ExecutedTotal values the work actually measured in the field: the combined
// rate multiplied by the aggregated executed amount, plus fixed fees in full.
func ExecutedTotal(commitments []model.ServiceCommitment, executedAmount float64) float64 {
	return RateUnitPriceSum(commitments)*executedAmount + FixedFeeTotal(commitments)
}
