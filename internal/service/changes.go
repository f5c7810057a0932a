package service

import (
	"fmt"
	"math"
	"reflect"
	"time"

	"github.com/araddon/dateparse"
	"github.com/mitchellh/mapstructure"

	"rental-pricing-backend/internal/domain"
)

var editableLineFields = domain.NewFieldSet(
	domain.FieldProductID,
	domain.FieldName,
	domain.FieldPriceUnit,
	domain.FieldProductUomQty,
	domain.FieldStartDate,
	domain.FieldReturnDate,
	domain.FieldRentalPricePerDay,
	domain.FieldRentalDurationInDays,
	domain.FieldRentalCompanyFees,
	domain.FieldAnalyticDistribution,
)

var timeType = reflect.TypeOf(time.Time{})

// dateHook parses date strings in loc unless they carry their own offset.
// Decoded dates are stored in UTC.
func dateHook(loc *time.Location) mapstructure.DecodeHookFuncType {
	return func(from, to reflect.Type, data any) (any, error) {
		if to != timeType || from.Kind() != reflect.String {
			return data, nil
		}
		t, err := dateparse.ParseIn(reflect.ValueOf(data).String(), loc)
		if err != nil {
			return nil, err
		}
		return t.UTC(), nil
	}
}

// integerHook rejects JSON numbers with a fractional part bound for integer
// fields such as product ids.
func integerHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.Float32 && from.Kind() != reflect.Float64 {
		return data, nil
	}
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if f := reflect.ValueOf(data).Float(); f != math.Trunc(f) {
			return nil, fmt.Errorf("%v is not a whole number", data)
		}
	}
	return data, nil
}

func checkKeys(changes map[string]any, allowed domain.FieldSet) error {
	if len(changes) == 0 {
		return fmt.Errorf("%w: no fields to update", ErrInvalidEdit)
	}
	for key := range changes {
		if !allowed.Has(domain.Field(key)) {
			return fmt.Errorf("%w: field %q cannot be edited", ErrInvalidEdit, key)
		}
	}
	return nil
}

// decode writes changes onto result using the json field names and returns
// the allowed fields that were set.
func decode(changes map[string]any, result any, allowed domain.FieldSet, loc *time.Location) (domain.FieldSet, error) {
	if err := checkKeys(changes, allowed); err != nil {
		return nil, err
	}

	var md mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:    "json",
		Result:     result,
		Metadata:   &md,
		ZeroFields: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(integerHook, dateHook(loc)),
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(changes); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEdit, err)
	}

	changed := domain.NewFieldSet()
	for _, key := range md.Keys {
		if f := domain.Field(key); allowed.Has(f) {
			changed.Add(f)
		}
	}
	return changed, nil
}

// applyLineChanges decodes changes onto line. The line is left untouched
// when any value cannot be decoded.
func applyLineChanges(line *domain.OrderLine, changes map[string]any, loc *time.Location) (domain.FieldSet, error) {
	edited := *line
	changed, err := decode(changes, &edited, editableLineFields, loc)
	if err != nil {
		return nil, err
	}
	*line = edited
	return changed, nil
}
