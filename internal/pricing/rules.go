package pricing

import (
	"context"
	"errors"

	"rental-pricing-backend/internal/domain"
	"rental-pricing-backend/internal/logger"
)

// Mode tells the rule table who changed the fields.
type Mode int

const (
	// ModeInteractive is a live edit by a user; every rule may fire.
	ModeInteractive Mode = iota
	// ModeStored is a programmatic write; only dependency rules fire.
	ModeStored
)

func (m Mode) String() string {
	if m == ModeInteractive {
		return "interactive"
	}
	return "stored"
}

const (
	RuleCompanyFees       = "set_price_unit_with_rental_company_fees"
	RuleSetRentalDuration = "set_rental_duration"
	RuleRentalPricePerDay = "compute_rental_price_per_day"
	RuleRentalDuration    = "compute_rental_duration"
)

// Rule recomputes line fields when one of its trigger fields changes.
type Rule struct {
	Name     string
	Triggers []domain.Field
	// InteractiveOnly rules react to user edits only, never to fields set by
	// other rules or to stored writes.
	InteractiveOnly bool
	Apply           func(ctx context.Context, r *Recalculator, order *domain.Order, line *domain.OrderLine, opts LabelOptions) ([]domain.Field, error)
}

// DefaultRules returns the rental rule table in evaluation order.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:            RuleCompanyFees,
			Triggers:        []domain.Field{domain.FieldRentalCompanyFees, domain.FieldRentalDurationInDays, domain.FieldProductUomQty},
			InteractiveOnly: true,
			Apply: func(ctx context.Context, r *Recalculator, o *domain.Order, l *domain.OrderLine, _ LabelOptions) ([]domain.Field, error) {
				return r.SetPriceUnitWithCompanyFees(ctx, o, l)
			},
		},
		{
			Name:            RuleSetRentalDuration,
			Triggers:        []domain.Field{domain.FieldRentalDurationInDays},
			InteractiveOnly: true,
			Apply: func(ctx context.Context, r *Recalculator, o *domain.Order, l *domain.OrderLine, opts LabelOptions) ([]domain.Field, error) {
				return r.SetRentalDuration(ctx, o, l, opts)
			},
		},
		{
			Name:     RuleRentalPricePerDay,
			Triggers: []domain.Field{domain.FieldProductID},
			Apply: func(ctx context.Context, r *Recalculator, o *domain.Order, l *domain.OrderLine, _ LabelOptions) ([]domain.Field, error) {
				return r.ComputeRentalPricePerDay(ctx, o, l)
			},
		},
		{
			Name:     RuleRentalDuration,
			Triggers: []domain.Field{domain.FieldProductID, domain.FieldStartDate, domain.FieldReturnDate},
			Apply: func(ctx context.Context, r *Recalculator, o *domain.Order, l *domain.OrderLine, _ LabelOptions) ([]domain.Field, error) {
				return r.ComputeRentalDuration(ctx, o, l)
			},
		},
	}
}

// Edit describes one batch of field changes on a line.
type Edit struct {
	Changed domain.FieldSet
	Mode    Mode
	Label   LabelOptions
}

// Recalculate runs the rule table once over line after the fields in
// edit.Changed were modified. Interactive rules see only the user's changes;
// dependency rules also see fields set by rules that ran before them. It
// returns every field the pass modified. Rules that fail leave their fields
// untouched and are reported together in the returned error.
func (r *Recalculator) Recalculate(ctx context.Context, order *domain.Order, line *domain.OrderLine, edit Edit) (domain.FieldSet, error) {
	modified := domain.NewFieldSet()
	if order == nil || line == nil {
		return modified, nil
	}

	dirty := domain.NewFieldSet()
	for f := range edit.Changed {
		dirty.Add(f)
	}

	var errs []error
	for _, rule := range r.rules {
		if rule.InteractiveOnly {
			if edit.Mode != ModeInteractive || !edit.Changed.Intersects(rule.Triggers) {
				continue
			}
		} else if !dirty.Intersects(rule.Triggers) {
			continue
		}

		changed, err := rule.Apply(ctx, r, order, line, edit.Label)
		if err != nil {
			logger.Warn("Rental rule not applied", "rule", rule.Name, "line_id", line.ID, "error", err)
			errs = append(errs, err)
			continue
		}
		if len(changed) > 0 {
			logger.Debug("Rental rule applied", "rule", rule.Name, "line_id", line.ID, "fields", changed, "mode", edit.Mode.String())
		}
		dirty.Add(changed...)
		modified.Add(changed...)
	}
	return modified, errors.Join(errs...)
}
