package billing

import (
	"math/rand"
	"testing"

	"github.com/juud-8/ContractorPro02-sub000/internal/apperrors"
	"github.com/juud-8/ContractorPro02-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeLineAmount(t *testing.T) {
	tests := []struct {
		name     string
		quantity string
		rate     string
		want     string
		wantErr  bool
	}{
		{name: "whole numbers", quantity: "2", rate: "50.00", want: "100.00"},
		{name: "rounds half up", quantity: "1", rate: "0.125", want: "0.13"},
		{name: "rounds up to whole", quantity: "3", rate: "0.333", want: "1.00"},
		{name: "fractional quantity", quantity: "1.5", rate: "19.99", want: "29.99"},
		{name: "zero quantity kept", quantity: "0", rate: "75", want: "0"},
		{name: "negative quantity", quantity: "-1", rate: "10", wantErr: true},
		{name: "negative rate", quantity: "1", rate: "-0.01", wantErr: true},
		{name: "four places accepted", quantity: "1.2345", rate: "0.0001", want: "0.00"},
		{name: "trailing zeros past four places", quantity: "2.500000", rate: "4", want: "10.00"},
		{name: "rate finer than four places", quantity: "1000", rate: "0.00005", wantErr: true},
		{name: "quantity finer than four places", quantity: "0.12345", rate: "10", wantErr: true},
		{name: "rate too large", quantity: "1", rate: "10000000000", wantErr: true},
		{name: "amount too large", quantity: "9999999999", rate: "9999999999", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeLineAmount(dec(tt.quantity), dec(tt.rate))
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.True(t, dec(tt.want).Equal(got), "want %s got %s", tt.want, got)
		})
	}
}

func TestComputeLineAmount_Commutative(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		q := decimal.New(r.Int63n(100000), -int32(r.Intn(4)))
		p := decimal.New(r.Int63n(1000000), -int32(r.Intn(4)))

		a, err := ComputeLineAmount(q, p)
		require.NoError(t, err)
		b, err := ComputeLineAmount(p, q)
		require.NoError(t, err)

		assert.True(t, a.Equal(b), "q=%s r=%s", q, p)
		assert.True(t, q.Mul(p).Round(2).Equal(a))
	}
}

func TestParseDecimal(t *testing.T) {
	d, err := ParseDecimal("quantity", " 2.50 ")
	require.NoError(t, err)
	assert.True(t, dec("2.5").Equal(d))

	_, err = ParseDecimal("rate", "abc")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "rate")
}

func TestComputeSubtotal(t *testing.T) {
	assert.True(t, decimal.Zero.Equal(ComputeSubtotal(nil)))

	items, err := BuildLineItems([]LineItemInput{
		{Quantity: dec("1"), Rate: dec("0.005")},
		{Quantity: dec("1"), Rate: dec("0.005")},
		{Quantity: dec("1"), Rate: dec("0.005")},
	})
	require.NoError(t, err)

	// each line rounds to 0.01 so the subtotal is 0.03, not round(0.015) = 0.02
	got := ComputeSubtotal(items)
	assert.True(t, dec("0.03").Equal(got), "got %s", got)

	unrounded := dec("0.015").Round(2)
	drift := got.Sub(unrounded).Abs()
	assert.True(t, drift.LessThanOrEqual(dec("0.005").Mul(decimal.NewFromInt(int64(len(items))))))
}

func TestComputeTax(t *testing.T) {
	for _, subtotal := range []string{"0", "0.01", "125.50", "99999.99"} {
		tax, err := ComputeTax(dec(subtotal), decimal.Zero)
		require.NoError(t, err)
		assert.True(t, tax.IsZero())
	}

	tax, err := ComputeTax(dec("125.50"), dec("8"))
	require.NoError(t, err)
	assert.True(t, dec("10.04").Equal(tax), "got %s", tax)

	tax, err = ComputeTax(dec("10.00"), dec("100"))
	require.NoError(t, err)
	assert.True(t, dec("10.00").Equal(tax))

	_, err = ComputeTax(dec("10"), dec("-0.5"))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	_, err = ComputeTax(dec("10"), dec("100.01"))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestValidateTaxRate(t *testing.T) {
	tests := []struct {
		rate    string
		wantErr bool
	}{
		{rate: "0"},
		{rate: "100"},
		{rate: "8.1234"},
		{rate: "8.10000"},
		{rate: "8.12345", wantErr: true},
		{rate: "-0.0001", wantErr: true},
		{rate: "100.0001", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.rate, func(t *testing.T) {
			err := ValidateTaxRate(dec(tt.rate))
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCheckMoney(t *testing.T) {
	assert.NoError(t, CheckMoney("amount", dec("999999999999.99")))
	assert.ErrorIs(t, CheckMoney("amount", dec("1000000000000")), apperrors.ErrValidation)
}

func TestComputeTotal(t *testing.T) {
	got := ComputeTotal(dec("125.50"), dec("10.04"))
	assert.True(t, dec("135.54").Equal(got))

	got = ComputeTotal(dec("0.10"), dec("0.20"))
	assert.True(t, dec("0.30").Equal(got))
}

func TestBuildLineItems(t *testing.T) {
	order := 7
	items, err := BuildLineItems([]LineItemInput{
		{Description: "  Labour ", Quantity: dec("0"), Rate: dec("40")},
		{Description: "Parts", Quantity: dec("2"), Rate: dec("3.333"), SortOrder: &order},
	})
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "Labour", items[0].Description)
	assert.Equal(t, 0, items[0].SortOrder)
	assert.True(t, items[0].Amount.IsZero())
	assert.Equal(t, 7, items[1].SortOrder)
	assert.True(t, dec("6.67").Equal(items[1].Amount))

	_, err = BuildLineItems([]LineItemInput{{Quantity: dec("-2"), Rate: dec("1")}})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "line item 1")
}

func TestApplyTotals(t *testing.T) {
	t.Run("invoice with tax", func(t *testing.T) {
		doc := &domain.Document{DocumentID: 9, Kind: domain.KindInvoice}
		items, err := BuildLineItems([]LineItemInput{
			{Description: "Consulting", Quantity: dec("2"), Rate: dec("50.00")},
			{Description: "Travel", Quantity: dec("1"), Rate: dec("25.50")},
		})
		require.NoError(t, err)

		require.NoError(t, ApplyTotals(doc, items, dec("8")))
		assert.True(t, dec("125.50").Equal(doc.Subtotal), "subtotal %s", doc.Subtotal)
		assert.True(t, dec("10.04").Equal(doc.TaxAmount), "tax %s", doc.TaxAmount)
		assert.True(t, dec("135.54").Equal(doc.Total), "total %s", doc.Total)
		assert.Equal(t, int64(9), doc.LineItems[0].DocumentID)
	})

	t.Run("zero tax rate", func(t *testing.T) {
		doc := &domain.Document{}
		items, err := BuildLineItems([]LineItemInput{{Quantity: dec("4"), Rate: dec("25")}})
		require.NoError(t, err)

		require.NoError(t, ApplyTotals(doc, items, decimal.Zero))
		assert.Equal(t, "100.00", doc.Subtotal.StringFixed(2))
		assert.Equal(t, "0.00", doc.TaxAmount.StringFixed(2))
		assert.Equal(t, "100.00", doc.Total.StringFixed(2))
	})

	t.Run("stale amounts are recomputed", func(t *testing.T) {
		doc := &domain.Document{}
		items := []domain.LineItem{{Quantity: dec("3"), Rate: dec("10"), Amount: dec("999")}}

		require.NoError(t, ApplyTotals(doc, items, decimal.Zero))
		assert.True(t, dec("30").Equal(doc.LineItems[0].Amount))
		assert.True(t, dec("999").Equal(items[0].Amount), "input slice must not be mutated")
	})

	t.Run("accepted inputs survive four place storage", func(t *testing.T) {
		doc := &domain.Document{}
		items, err := BuildLineItems([]LineItemInput{
			{Quantity: dec("1000"), Rate: dec("0.0001")},
			{Quantity: dec("3.3333"), Rate: dec("19.9999")},
		})
		require.NoError(t, err)
		require.NoError(t, ApplyTotals(doc, items, dec("8.1234")))

		stored := &domain.Document{}
		reloaded := make([]domain.LineItem, len(doc.LineItems))
		for i, item := range doc.LineItems {
			item.Quantity = item.Quantity.Round(InputPlaces)
			item.Rate = item.Rate.Round(InputPlaces)
			reloaded[i] = item
		}
		require.NoError(t, ApplyTotals(stored, reloaded, doc.TaxRate.Round(InputPlaces)))
		assert.True(t, doc.Total.Equal(stored.Total), "before %s after %s", doc.Total, stored.Total)
		assert.True(t, doc.TaxAmount.Equal(stored.TaxAmount))
	})

	t.Run("total too large to store", func(t *testing.T) {
		doc := &domain.Document{}
		items, err := BuildLineItems([]LineItemInput{
			{Quantity: dec("1000000"), Rate: dec("999999")},
			{Quantity: dec("1000000"), Rate: dec("999999")},
		})
		require.NoError(t, err)
		err = ApplyTotals(doc, items, decimal.Zero)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
		assert.Nil(t, doc.LineItems)
	})

	t.Run("invalid tax rate leaves document untouched", func(t *testing.T) {
		doc := &domain.Document{Subtotal: dec("1"), Total: dec("1")}
		err := ApplyTotals(doc, nil, dec("101"))
		assert.ErrorIs(t, err, apperrors.ErrValidation)
		assert.True(t, dec("1").Equal(doc.Subtotal))
		assert.Nil(t, doc.LineItems)
	})
}
