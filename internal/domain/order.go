package domain

import "time"

type ImageSize string

const (
	ImageSizeBig    ImageSize = "image"
	ImageSizeMedium ImageSize = "image_medium"
	ImageSizeSmall  ImageSize = "image_small"
)

func (s ImageSize) Valid() bool {
	switch s {
	case ImageSizeBig, ImageSizeMedium, ImageSizeSmall:
		return true
	}
	return false
}

type CompanyBrand string

const (
	CompanyBrandRodyan  CompanyBrand = "rodyan"
	CompanyBrandCineArm CompanyBrand = "cinearm"
)

func (b CompanyBrand) Valid() bool {
	return b == CompanyBrandRodyan || b == CompanyBrandCineArm
}

// DisplayName returns the label printed in document headers.
func (b CompanyBrand) DisplayName() string {
	switch b {
	case CompanyBrandCineArm:
		return "CineArm"
	default:
		return "Rodyan"
	}
}

// PrintOptions controls how a sale order is rendered in printed documents.
type PrintOptions struct {
	PrintImage       bool         `json:"print_image"`
	ImageSizes       ImageSize    `json:"image_sizes"`
	DisplayedCompany CompanyBrand `json:"displayed_company_in_printed_document"`
}

// DefaultPrintOptions mirrors the defaults of a newly created order.
func DefaultPrintOptions() PrintOptions {
	return PrintOptions{
		PrintImage:       true,
		ImageSizes:       ImageSizeSmall,
		DisplayedCompany: CompanyBrandRodyan,
	}
}

type Order struct {
	ID                int32       `json:"id"`
	Name              string      `json:"name"`
	IsRentalOrder     bool        `json:"is_rental_order"`
	DurationDays      *float64    `json:"duration_days,omitempty"`
	RemainingHours    *float64    `json:"remaining_hours,omitempty"`
	AnalyticAccountID *int32      `json:"analytic_account_id,omitempty"`
	PricelistID       *int32      `json:"pricelist_id,omitempty"`
	Timezone          string      `json:"timezone"`
	Language          string      `json:"language"`
	Lines             []OrderLine `json:"order_line"`
	PrintOptions
	CreatedOn string `json:"created_on"`
	UpdatedOn string `json:"updated_on"`
}

// TotalRentalDurationInDays folds the order's day and hour durations into days.
// Unset parts count as zero.
func (o *Order) TotalRentalDurationInDays() float64 {
	var days, hours float64
	if o.DurationDays != nil {
		days = *o.DurationDays
	}
	if o.RemainingHours != nil {
		hours = *o.RemainingHours
	}
	return days + hours/24
}

// Line returns the line with the given id, or nil.
func (o *Order) Line(id int32) *OrderLine {
	for i := range o.Lines {
		if o.Lines[i].ID == id {
			return &o.Lines[i]
		}
	}
	return nil
}

type OrderLine struct {
	ID                   int32                `json:"id"`
	OrderID              int32                `json:"order_id"`
	ProductID            *int32               `json:"product_id,omitempty"`
	Name                 string               `json:"name"`
	PriceUnit            float64              `json:"price_unit"`
	ProductUomQty        float64              `json:"product_uom_qty"`
	StartDate            *time.Time           `json:"start_date,omitempty"`
	ReturnDate           *time.Time           `json:"return_date,omitempty"`
	RentalPricePerDay    float64              `json:"rental_price_per_day"`
	RentalDurationInDays float64              `json:"rental_duration_in_days"`
	RentalCompanyFees    float64              `json:"rental_company_fees"`
	AnalyticDistribution AnalyticDistribution `json:"analytic_distribution,omitempty"`
}

// AnalyticDistribution maps an analytic account id to its allocation percentage.
type AnalyticDistribution map[string]float64
