package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"rental-pricing-backend/internal/repository"
)

func TestProductRepository(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewProductRepository(db)
	ctx := context.Background()

	t.Run("GetByID", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, name, COALESCE\\(image_key, ''\\) FROM products").
			WithArgs(int32(3)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "image_key"}).AddRow(3, "Cinema camera", "products/3/a.png"))

		p, err := repo.GetByID(ctx, 3)
		assert.NoError(t, err)
		assert.Equal(t, "Cinema camera", p.Name)
		assert.Equal(t, "products/3/a.png", p.ImageKey)
	})

	t.Run("GetByID not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, name").
			WithArgs(int32(4)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "image_key"}))

		_, err := repo.GetByID(ctx, 4)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("SetImageKey", func(t *testing.T) {
		mock.ExpectExec("UPDATE products SET image_key").
			WithArgs("products/3/b.png", int32(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.SetImageKey(ctx, 3, "products/3/b.png"))
	})

	t.Run("SetImageKey on missing product", func(t *testing.T) {
		mock.ExpectExec("UPDATE products SET image_key").
			WithArgs("products/9/b.png", int32(9)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.SetImageKey(ctx, 9, "products/9/b.png"), repository.ErrNotFound)
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}
