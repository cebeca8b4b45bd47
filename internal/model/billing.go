package model

// ProjectBillingSummary is the reconciled financial view of one project:
// forecast from planned quantity, executed from aggregated field facts,
// expenses from the ledger. It feeds the JSON endpoint and both exporters.
type ProjectBillingSummary struct {
	Project            Project
	Commitments        []ServiceCommitment
	ExecutedAmount     float64
	ForecastTotal      float64
	ExecutedTotal      float64
	ExpenseTotal       float64
	ExpensesByCategory []ExpenseCategoryTotal
}
