package domain

import "slices"

// Field names a line or order attribute that can trigger a recomputation.
type Field string

const (
	FieldProductID            Field = "product_id"
	FieldName                 Field = "name"
	FieldPriceUnit            Field = "price_unit"
	FieldProductUomQty        Field = "product_uom_qty"
	FieldStartDate            Field = "start_date"
	FieldReturnDate           Field = "return_date"
	FieldRentalPricePerDay    Field = "rental_price_per_day"
	FieldRentalDurationInDays Field = "rental_duration_in_days"
	FieldRentalCompanyFees    Field = "rental_company_fees"
	FieldAnalyticDistribution Field = "analytic_distribution"

	FieldOrderLine         Field = "order_line"
	FieldAnalyticAccountID Field = "analytic_account_id"
)

// FieldSet is an unordered set of field names.
type FieldSet map[Field]struct{}

func NewFieldSet(fields ...Field) FieldSet {
	s := make(FieldSet, len(fields))
	for _, f := range fields {
		s[f] = struct{}{}
	}
	return s
}

func (s FieldSet) Add(fields ...Field) {
	for _, f := range fields {
		s[f] = struct{}{}
	}
}

func (s FieldSet) Has(f Field) bool {
	_, ok := s[f]
	return ok
}

// Intersects reports whether any of fields is in the set.
func (s FieldSet) Intersects(fields []Field) bool {
	for _, f := range fields {
		if s.Has(f) {
			return true
		}
	}
	return false
}

// Sorted returns the field names in a stable order.
func (s FieldSet) Sorted() []Field {
	out := make([]Field, 0, len(s))
	for f := range s {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}
