package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-pricing-backend/internal/domain"
	"rental-pricing-backend/internal/repository"
)

var orderColumns = []string{"id", "name", "is_rental_order", "duration_days", "remaining_hours", "analytic_account_id", "pricelist_id",
	"timezone", "language", "print_image", "image_sizes", "displayed_company_in_printed_document", "created_on", "updated_on"}

var lineColumnNames = []string{"id", "order_id", "product_id", "name", "price_unit", "product_uom_qty", "start_date", "return_date",
	"rental_price_per_day", "rental_duration_in_days", "rental_company_fees", "analytic_distribution"}

func TestOrderRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewOrderRepository(db)
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM sale_orders WHERE id = \\$1").
			WithArgs(int32(1)).
			WillReturnRows(sqlmock.NewRows(orderColumns).
				AddRow(1, "S00001", true, 2.0, nil, nil, 7, "Africa/Cairo", "en", true, "image_small", "rodyan", now, now))
		mock.ExpectQuery("SELECT (.+) FROM sale_order_lines WHERE order_id = \\$1").
			WithArgs(int32(1)).
			WillReturnRows(sqlmock.NewRows(lineColumnNames).
				AddRow(10, 1, 3, "Camera\nperiod", 110.0, 1.0, now, now.Add(60*time.Hour), 40.0, 2.5, 10.0, []byte(`{"12":100}`)).
				AddRow(11, 1, nil, "Notes", 0.0, 0.0, nil, nil, 0.0, 0.0, 0.0, nil))

		order, err := repo.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, int32(1), order.ID)
		assert.True(t, order.IsRentalOrder)
		require.NotNil(t, order.DurationDays)
		assert.Equal(t, 2.0, *order.DurationDays)
		assert.Nil(t, order.RemainingHours)
		assert.Nil(t, order.AnalyticAccountID)
		require.NotNil(t, order.PricelistID)
		assert.Equal(t, int32(7), *order.PricelistID)
		assert.Equal(t, domain.ImageSizeSmall, order.ImageSizes)
		assert.Equal(t, domain.CompanyBrandRodyan, order.DisplayedCompany)

		require.Len(t, order.Lines, 2)
		assert.Equal(t, domain.AnalyticDistribution{"12": 100}, order.Lines[0].AnalyticDistribution)
		assert.Equal(t, now.Add(60*time.Hour), *order.Lines[0].ReturnDate)
		assert.Nil(t, order.Lines[1].ProductID)
		assert.Nil(t, order.Lines[1].StartDate)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM sale_orders WHERE id = \\$1").
			WithArgs(int32(99)).
			WillReturnRows(sqlmock.NewRows(orderColumns))

		order, err := repo.GetByID(ctx, 99)
		assert.Nil(t, order)
		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOrderRepository_Save(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewOrderRepository(db)
	ctx := context.Background()
	product := int32(3)
	account := int32(12)
	order := &domain.Order{
		ID:                1,
		AnalyticAccountID: &account,
		Lines: []domain.OrderLine{
			{ID: 10, OrderID: 1, ProductID: &product, Name: "Camera", PriceUnit: 110, ProductUomQty: 1, RentalPricePerDay: 40, RentalDurationInDays: 2.5, RentalCompanyFees: 10},
			{ID: 11, OrderID: 1, Name: "Notes", AnalyticDistribution: domain.AnalyticDistribution{"12": 100}},
		},
	}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE sale_orders SET analytic_account_id").
			WithArgs(&account, sqlmock.AnyArg(), int32(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE sale_order_lines SET").
			WithArgs(&product, "Camera", 110.0, 1.0, nil, nil, 40.0, 2.5, 10.0, nil, int32(10)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE sale_order_lines SET").
			WithArgs(nil, "Notes", 0.0, 0.0, nil, nil, 0.0, 0.0, 0.0, []byte(`{"12":100}`), int32(11)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Save(ctx, order)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Inserts new lines", func(t *testing.T) {
		withNew := &domain.Order{
			ID:                1,
			AnalyticAccountID: &account,
			Lines: []domain.OrderLine{
				{Name: "Tripod", ProductUomQty: 1, AnalyticDistribution: domain.AnalyticDistribution{"12": 100}},
			},
		}
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE sale_orders SET analytic_account_id").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("INSERT INTO sale_order_lines").
			WithArgs(int32(1), nil, "Tripod", 0.0, 1.0, nil, nil, 0.0, 0.0, 0.0, []byte(`{"12":100}`)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))
		mock.ExpectCommit()

		require.NoError(t, repo.Save(ctx, withNew))
		assert.Equal(t, int32(12), withNew.Lines[0].ID)
		assert.Equal(t, int32(1), withNew.Lines[0].OrderID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Rolls back on failure", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE sale_orders SET analytic_account_id").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE sale_order_lines SET").
			WillReturnError(errors.New("deadlock detected"))
		mock.ExpectRollback()

		err := repo.Save(ctx, order)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing order", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE sale_orders SET analytic_account_id").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.Save(ctx, order)
		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOrderRepository_UpdatePrintOptions(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewOrderRepository(db)
	ctx := context.Background()
	opts := domain.PrintOptions{PrintImage: false, ImageSizes: domain.ImageSizeBig, DisplayedCompany: domain.CompanyBrandCineArm}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE sale_orders SET print_image").
			WithArgs(false, "image", "cinearm", sqlmock.AnyArg(), int32(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdatePrintOptions(ctx, 1, opts))
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectExec("UPDATE sale_orders SET print_image").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.UpdatePrintOptions(ctx, 2, opts), repository.ErrNotFound)
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_ListRentalOrderIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT id FROM sale_orders WHERE is_rental_order = TRUE").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1).AddRow(4))

	ids, err := NewOrderRepository(db).ListRentalOrderIDs(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []int32{1, 4}, ids)
}
