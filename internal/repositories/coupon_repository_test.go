package repository_test

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lumieats/table-ordering-platform/internal/models"
	repository "github.com/lumieats/table-ordering-platform/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCouponRepoMock(t *testing.T) (repository.CouponRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	return repository.NewCouponRepo(db), mock
}

func TestCreateCoupon(t *testing.T) {
	coupon := &models.Coupon{
		ID:                  "coupon-1",
		RestaurantID:        "resto-1",
		CampaignID:          "camp-1",
		Code:                "LUMI-4K7PZ",
		Status:              models.CouponStatusActive,
		DiscountType:        models.DiscountTypePercentage,
		DiscountValue:       15,
		DiscountDescription: "-15% sur l'addition",
		DeviceID:            "device-1",
		ValidUntil:          time.Now().Add(7 * 24 * time.Hour),
	}

	t.Run("Success", func(t *testing.T) {
		// Arrange
		repo, mock := newCouponRepoMock(t)
		createdAt := time.Now()

		mock.ExpectQuery(`INSERT INTO coupons`).
			WithArgs(coupon.ID, coupon.RestaurantID, coupon.CampaignID, coupon.Code, coupon.Status, coupon.DiscountType, coupon.DiscountValue, coupon.DiscountDescription, coupon.DeviceID, coupon.ValidUntil).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(createdAt))

		// Act
		err := repo.CreateCoupon(t.Context(), coupon)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, createdAt, coupon.CreatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		// Arrange
		repo, mock := newCouponRepoMock(t)
		dbErr := errors.New("unique constraint violation")

		mock.ExpectQuery(`INSERT INTO coupons`).WillReturnError(dbErr)

		// Act
		err := repo.CreateCoupon(t.Context(), coupon)

		// Assert
		assert.ErrorIs(t, err, dbErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetCouponByCode(t *testing.T) {
	columns := []string{"id", "restaurant_id", "campaign_id", "code", "status", "discount_type", "discount_value", "discount_description", "device_id", "created_at", "valid_until"}

	t.Run("Success", func(t *testing.T) {
		// Arrange
		repo, mock := newCouponRepoMock(t)
		createdAt := time.Now().Add(-48 * time.Hour)
		validUntil := time.Now().Add(5 * 24 * time.Hour)

		mock.ExpectQuery(`SELECT (.+) FROM coupons`).
			WithArgs("resto-1", "LUMI-4K7PZ").
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow("coupon-1", "resto-1", "camp-1", "LUMI-4K7PZ", "active", "percentage", 15, "-15% sur l'addition", "device-1", createdAt, validUntil))

		// Act
		coupon, err := repo.GetCouponByCode(t.Context(), "resto-1", "LUMI-4K7PZ")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "coupon-1", coupon.ID)
		assert.Equal(t, models.CouponStatusActive, coupon.Status)
		assert.Equal(t, int64(15), coupon.DiscountValue)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		repo, mock := newCouponRepoMock(t)

		mock.ExpectQuery(`SELECT (.+) FROM coupons`).
			WithArgs("resto-1", "NOPE-00000").
			WillReturnError(sql.ErrNoRows)

		// Act
		coupon, err := repo.GetCouponByCode(t.Context(), "resto-1", "NOPE-00000")

		// Assert
		assert.Nil(t, coupon)
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCountCouponsForDeviceSince(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		repo, mock := newCouponRepoMock(t)
		since := time.Now().Truncate(24 * time.Hour)

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM coupons`).
			WithArgs("device-1", since).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		// Act
		count, err := repo.CountCouponsForDeviceSince(t.Context(), "device-1", since)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 3, count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMarkCouponUsed(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		repo, mock := newCouponRepoMock(t)

		mock.ExpectExec(`UPDATE coupons`).
			WithArgs(models.CouponStatusUsed, "coupon-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		// Act
		err := repo.MarkCouponUsed(t.Context(), "coupon-1")

		// Assert
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - No Rows Updated", func(t *testing.T) {
		// Arrange
		repo, mock := newCouponRepoMock(t)

		mock.ExpectExec(`UPDATE coupons`).
			WithArgs(models.CouponStatusUsed, "coupon-missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		// Act
		err := repo.MarkCouponUsed(t.Context(), "coupon-missing")

		// Assert
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
