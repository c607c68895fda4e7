// Package currency validates ISO 4217 codes and formats amounts for display.
//
// No conversion between currencies takes place. Scoring thresholds are
// applied to amounts as they are, whatever their currency.
package currency

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Default is used for profiles that do not specify a currency.
const Default = "EUR"

// ErrInvalid is returned for codes that are not ISO 4217 currencies.
var ErrInvalid = errors.New("not a valid ISO 4217 currency code")

// Parse validates the code and returns it in canonical upper case form.
func Parse(code string) (string, error) {
	unit, err := currency.ParseISO(strings.TrimSpace(code))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalid, code)
	}

	return unit.String(), nil
}

// Symbol returns the narrow symbol of the currency, e.g. "€" for EUR.
// Unknown codes are returned unchanged.
func Symbol(code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return code
	}

	return fmt.Sprint(currency.NarrowSymbol(unit))
}

// Format renders the amount with the currency symbol and the number of
// decimals the currency uses.
func Format(code string, amount decimal.Decimal) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return amount.StringFixed(2) + " " + code
	}

	scale, _ := currency.Standard.Rounding(unit)
	p := message.NewPrinter(language.English)
	return p.Sprintf("%v%s", currency.NarrowSymbol(unit), amount.StringFixed(int32(scale)))
}
