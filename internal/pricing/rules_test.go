package pricing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-pricing-backend/internal/domain"
)

func TestDefaultRules_Order(t *testing.T) {
	rules := DefaultRules()
	require.Len(t, rules, 4)

	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.Name
	}
	assert.Equal(t, []string{RuleCompanyFees, RuleSetRentalDuration, RuleRentalPricePerDay, RuleRentalDuration}, names)
	assert.True(t, rules[0].InteractiveOnly)
	assert.True(t, rules[1].InteractiveOnly)
	assert.False(t, rules[2].InteractiveOnly)
	assert.False(t, rules[3].InteractiveOnly)
}

func TestRecalculator_Recalculate(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Non-rental orders are never touched", func(t *testing.T) {
		prices := new(MockPriceSource)
		r := NewRecalculator(prices, nil, nil)
		line := domain.OrderLine{
			ID: 1, Name: "Desk", ProductID: i32(3), PriceUnit: 70, ProductUomQty: 1,
			StartDate: at(start), ReturnDate: at(start.Add(48 * time.Hour)),
			RentalPricePerDay: 10, RentalDurationInDays: 5, RentalCompanyFees: 20,
		}
		order := &domain.Order{ID: 1, PricelistID: i32(7), Lines: []domain.OrderLine{line}}

		all := domain.NewFieldSet(domain.FieldProductID, domain.FieldStartDate, domain.FieldReturnDate,
			domain.FieldRentalDurationInDays, domain.FieldRentalCompanyFees, domain.FieldProductUomQty)
		for _, mode := range []Mode{ModeInteractive, ModeStored} {
			modified, err := r.Recalculate(ctx, order, &order.Lines[0], Edit{Changed: all, Mode: mode, Label: utcEnglish})
			assert.NoError(t, err)
			assert.Empty(t, modified)
		}
		assert.Equal(t, line, order.Lines[0])
		prices.AssertNotCalled(t, "BasePrice")
	})

	t.Run("Interactive duration edit cascades to dates and price", func(t *testing.T) {
		r := NewRecalculator(nil, nil, nil)
		order := rentalOrder(domain.OrderLine{
			ID: 1, Name: "Camera\nperiod", PriceUnit: 40, StartDate: at(start), ReturnDate: at(start.Add(24 * time.Hour)),
			RentalPricePerDay: 40, RentalDurationInDays: 2.5, RentalCompanyFees: 10,
		})

		modified, err := r.Recalculate(ctx, order, &order.Lines[0], Edit{
			Changed: domain.NewFieldSet(domain.FieldRentalDurationInDays),
			Mode:    ModeInteractive,
			Label:   utcEnglish,
		})
		require.NoError(t, err)
		assert.True(t, modified.Has(domain.FieldPriceUnit))
		assert.True(t, modified.Has(domain.FieldReturnDate))
		assert.True(t, modified.Has(domain.FieldName))

		l := order.Lines[0]
		assert.Equal(t, time.Date(2024, 3, 3, 12, 0, 0, 0, time.UTC), *l.ReturnDate)
		assert.InDelta(t, 2.5, l.RentalDurationInDays, 1e-9)
		assert.InDelta(t, 110.0, l.PriceUnit, 1e-9)
		assert.Equal(t, "Camera\nMar 1, 2024, 12:00:00 AM to Mar 3, 2024, 12:00:00 PM", l.Name)
	})

	t.Run("Stored writes skip interactive rules", func(t *testing.T) {
		r := NewRecalculator(nil, nil, nil)
		order := rentalOrder(domain.OrderLine{ID: 1, PriceUnit: 40, RentalPricePerDay: 40, RentalDurationInDays: 2, RentalCompanyFees: 50})

		modified, err := r.Recalculate(ctx, order, &order.Lines[0], Edit{
			Changed: domain.NewFieldSet(domain.FieldRentalCompanyFees, domain.FieldRentalDurationInDays),
			Mode:    ModeStored,
		})
		assert.NoError(t, err)
		assert.Empty(t, modified)
		assert.Equal(t, 40.0, order.Lines[0].PriceUnit)
	})

	t.Run("Stored date change recomputes duration", func(t *testing.T) {
		r := NewRecalculator(nil, nil, nil)
		order := rentalOrder(domain.OrderLine{ID: 1, StartDate: at(start), ReturnDate: at(start.Add(96 * time.Hour)), RentalPricePerDay: 10, RentalDurationInDays: 1})

		modified, err := r.Recalculate(ctx, order, &order.Lines[0], Edit{Changed: domain.NewFieldSet(domain.FieldReturnDate), Mode: ModeStored})
		require.NoError(t, err)
		assert.Equal(t, []domain.Field{domain.FieldPriceUnit, domain.FieldRentalDurationInDays}, modified.Sorted())
		assert.Equal(t, 4.0, order.Lines[0].RentalDurationInDays)
		assert.InDelta(t, 40.0, order.Lines[0].PriceUnit, 1e-9)
	})

	t.Run("Product change derives rate before price", func(t *testing.T) {
		prices := new(MockPriceSource)
		prices.On("BasePrice", ctx, int32(3), 1.0, int32(7)).Return(300.0, nil)
		r := NewRecalculator(prices, nil, nil)
		order := rentalOrder(domain.OrderLine{
			ID: 1, ProductID: i32(3), ProductUomQty: 1,
			StartDate: at(start), ReturnDate: at(start.Add(72 * time.Hour)), RentalDurationInDays: 3,
		})

		_, err := r.Recalculate(ctx, order, &order.Lines[0], Edit{Changed: domain.NewFieldSet(domain.FieldProductID), Mode: ModeInteractive})
		require.NoError(t, err)
		assert.InDelta(t, 100.0, order.Lines[0].RentalPricePerDay, 1e-9)
		assert.InDelta(t, 300.0, order.Lines[0].PriceUnit, 1e-9)
	})

	t.Run("Failing rule does not stop the others", func(t *testing.T) {
		prices := new(MockPriceSource)
		prices.On("BasePrice", ctx, int32(3), 1.0, int32(7)).Return(0.0, errors.New("no pricelist rule"))
		r := NewRecalculator(prices, nil, nil)
		order := rentalOrder(domain.OrderLine{
			ID: 1, ProductID: i32(3), ProductUomQty: 1, RentalPricePerDay: 10,
			StartDate: at(start), ReturnDate: at(start.Add(48 * time.Hour)), RentalDurationInDays: 5,
		})

		modified, err := r.Recalculate(ctx, order, &order.Lines[0], Edit{Changed: domain.NewFieldSet(domain.FieldProductID), Mode: ModeStored})
		var ruleErr *RuleError
		require.ErrorAs(t, err, &ruleErr)
		assert.Equal(t, RuleRentalPricePerDay, ruleErr.Rule)
		assert.Equal(t, 10.0, order.Lines[0].RentalPricePerDay)
		assert.True(t, modified.Has(domain.FieldRentalDurationInDays))
		assert.Equal(t, 2.0, order.Lines[0].RentalDurationInDays)
		assert.InDelta(t, 20.0, order.Lines[0].PriceUnit, 1e-9)
	})

	t.Run("Nil line", func(t *testing.T) {
		r := NewRecalculator(nil, nil, nil)
		modified, err := r.Recalculate(ctx, rentalOrder(), nil, Edit{Mode: ModeInteractive})
		assert.NoError(t, err)
		assert.Empty(t, modified)
	})
}

func TestCheckDrift(t *testing.T) {
	t.Run("Consistent line", func(t *testing.T) {
		order := rentalOrder(domain.OrderLine{ID: 1, PriceUnit: 110, RentalPricePerDay: 40, RentalDurationInDays: 2.5, RentalCompanyFees: 10})
		_, drift := CheckDrift(order, &order.Lines[0], 0.01)
		assert.False(t, drift)
	})

	t.Run("Drifting line", func(t *testing.T) {
		order := rentalOrder(domain.OrderLine{ID: 2, PriceUnit: 100, RentalPricePerDay: 40, RentalDurationInDays: 2.5, RentalCompanyFees: 10})
		d, drift := CheckDrift(order, &order.Lines[0], 0.01)
		assert.True(t, drift)
		assert.Equal(t, int32(2), d.LineID)
		assert.InDelta(t, 110.0, d.Expected, 1e-9)
		assert.InDelta(t, -10.0, d.Delta(), 1e-9)
	})

	t.Run("Non-rental order", func(t *testing.T) {
		order := &domain.Order{Lines: []domain.OrderLine{{ID: 1, PriceUnit: 5, RentalPricePerDay: 40, RentalDurationInDays: 1}}}
		_, drift := CheckDrift(order, &order.Lines[0], 0.01)
		assert.False(t, drift)
	})
}
