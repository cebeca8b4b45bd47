package service

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidQuantity  = errors.New("quantity must be positive for fixed-fee services")

	// ErrExpenseLinkFailed marks a fuel purchase that was recorded but whose
	// project expense could not be created. The purchase write stands; the
	// caller surfaces the partial failure instead of rolling back.
	ErrExpenseLinkFailed = errors.New("fuel purchase recorded but expense creation failed")
)
