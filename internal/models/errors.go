package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

// Validation errors
var (
	ErrProfileCurrencyInvalid     = errors.New("the currency must be a valid ISO 4217 code")
	ErrProfileTargetNegative      = errors.New("targets must not be negative")
	ErrTransactionAmountNegative  = errors.New("the transaction amount must not be negative")
	ErrTransactionDateMissing     = errors.New("the transaction date must be set")
	ErrTransactionDebtIDWrongType = errors.New("only debt_payment transactions can reference a debt")
	ErrDebtAmountNegative         = errors.New("the total and monthly amounts of a debt must not be negative")
	ErrDebtNameEmpty              = errors.New("the debt name must not be empty")
	ErrMatchRuleMatchEmpty        = errors.New("the match of a match rule must not be empty")
	ErrMatchRuleCategoryEmpty     = errors.New("the category of a match rule must not be empty")
)
