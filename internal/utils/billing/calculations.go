// Package billing holds the line-item calculator: the only code allowed to derive
// line amounts, subtotals, tax and totals for a document.
package billing

import (
	"fmt"
	"strings"

	"github.com/juud-8/ContractorPro02-sub000/internal/apperrors"
	"github.com/juud-8/ContractorPro02-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MoneyPlaces is the number of decimal places every stored money value is rounded to.
const MoneyPlaces = 2

// InputPlaces is the most decimal places a quantity, rate or tax rate may carry.
// Inputs are stored as given, so anything finer would be rounded away on write.
const InputPlaces = 4

var (
	hundred = decimal.NewFromInt(100)

	// maxInput bounds quantities and rates (exclusive), matching NUMERIC(14,4).
	maxInput = decimal.New(1, 10)
	// maxMoney bounds line amounts, totals and payments (exclusive), matching NUMERIC(14,2).
	maxMoney = decimal.New(1, 12)
)

func checkInput(field string, d decimal.Decimal) error {
	if !d.Equal(d.Truncate(InputPlaces)) {
		return fmt.Errorf("%w: %s must have at most %d decimal places, got %s", apperrors.ErrValidation, field, InputPlaces, d)
	}
	if d.Abs().GreaterThanOrEqual(maxInput) {
		return fmt.Errorf("%w: %s must be less than %s, got %s", apperrors.ErrValidation, field, maxInput, d)
	}
	return nil
}

// CheckMoney rejects money values too large to store.
func CheckMoney(field string, d decimal.Decimal) error {
	if d.Abs().GreaterThanOrEqual(maxMoney) {
		return fmt.Errorf("%w: %s must be less than %s, got %s", apperrors.ErrValidation, field, maxMoney, d)
	}
	return nil
}

// LineItemInput is the raw, caller-supplied part of a line item. Amount is never an input.
type LineItemInput struct {
	Description string
	Quantity    decimal.Decimal
	Rate        decimal.Decimal
	SortOrder   *int
}

// ParseDecimal parses a user supplied number for field. Non-numeric input is a validation error.
func ParseDecimal(field, raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s must be a number, got %q", apperrors.ErrValidation, field, raw)
	}
	return d, nil
}

// round rounds half away from zero, which is half-up for the non-negative values used here.
func round(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// ComputeLineAmount returns round(quantity*rate, 2).
func ComputeLineAmount(quantity, rate decimal.Decimal) (decimal.Decimal, error) {
	if quantity.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: quantity must not be negative, got %s", apperrors.ErrValidation, quantity)
	}
	if rate.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: rate must not be negative, got %s", apperrors.ErrValidation, rate)
	}
	if err := checkInput("quantity", quantity); err != nil {
		return decimal.Zero, err
	}
	if err := checkInput("rate", rate); err != nil {
		return decimal.Zero, err
	}
	amount := round(quantity.Mul(rate))
	if err := CheckMoney("line amount", amount); err != nil {
		return decimal.Zero, err
	}
	return amount, nil
}

// ComputeSubtotal sums the already rounded line amounts.
//
// Each amount carries at most two places so the sum is exact and the final rounding is a
// no-op. Compared with rounding the unrounded products once, the result can differ by up
// to half a cent per line; that difference is accepted because the invoice must add up
// line by line as printed.
func ComputeSubtotal(items []domain.LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.Amount)
	}
	return round(sum)
}

// ValidateTaxRate checks that rate is a percentage in [0, 100] with at most InputPlaces places.
func ValidateTaxRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(hundred) {
		return fmt.Errorf("%w: tax rate must be between 0 and 100, got %s", apperrors.ErrValidation, rate)
	}
	return checkInput("tax rate", rate)
}

// ComputeTax returns round(subtotal*rate/100, 2).
func ComputeTax(subtotal, ratePercent decimal.Decimal) (decimal.Decimal, error) {
	if err := ValidateTaxRate(ratePercent); err != nil {
		return decimal.Zero, err
	}
	if ratePercent.IsZero() {
		return decimal.Zero, nil
	}
	return round(subtotal.Mul(ratePercent).Div(hundred)), nil
}

// ComputeTotal returns subtotal + taxAmount. Both inputs are already at two places.
func ComputeTotal(subtotal, taxAmount decimal.Decimal) decimal.Decimal {
	return round(subtotal.Add(taxAmount))
}

// BuildLineItems validates inputs and derives each item's amount.
// Zero-quantity rows are kept. SortOrder defaults to the input position.
func BuildLineItems(inputs []LineItemInput) ([]domain.LineItem, error) {
	items := make([]domain.LineItem, 0, len(inputs))
	for i, in := range inputs {
		amount, err := ComputeLineAmount(in.Quantity, in.Rate)
		if err != nil {
			return nil, fmt.Errorf("line item %d: %w", i+1, err)
		}
		order := i
		if in.SortOrder != nil {
			order = *in.SortOrder
		}
		items = append(items, domain.LineItem{
			Description: strings.TrimSpace(in.Description),
			Quantity:    in.Quantity,
			Rate:        in.Rate,
			Amount:      amount,
			SortOrder:   order,
		})
	}
	return items, nil
}

// ApplyTotals replaces doc's line items and tax rate and recomputes every derived field.
// It is the only write path for LineItems, TaxRate, Subtotal, TaxAmount and Total.
// On error doc is left untouched.
func ApplyTotals(doc *domain.Document, items []domain.LineItem, taxRate decimal.Decimal) error {
	recomputed := make([]domain.LineItem, len(items))
	for i, item := range items {
		amount, err := ComputeLineAmount(item.Quantity, item.Rate)
		if err != nil {
			return fmt.Errorf("line item %d: %w", i+1, err)
		}
		item.Amount = amount
		item.DocumentID = doc.DocumentID
		recomputed[i] = item
	}

	subtotal := ComputeSubtotal(recomputed)
	tax, err := ComputeTax(subtotal, taxRate)
	if err != nil {
		return err
	}
	total := ComputeTotal(subtotal, tax)
	if err := CheckMoney("total", total); err != nil {
		return err
	}

	doc.LineItems = recomputed
	doc.TaxRate = taxRate
	doc.Subtotal = subtotal
	doc.TaxAmount = tax
	doc.Total = total
	return nil
}

// Recalculate re-derives doc's totals from its current line items and tax rate.
func Recalculate(doc *domain.Document) error {
	return ApplyTotals(doc, doc.LineItems, doc.TaxRate)
}
