package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentdesk-backend/internal/domain"
)

var orderCols = []string{
	"id", "customer_id", "customer_name", "customer_email", "products", "status", "start_date", "end_date",
	"total_amount_cents", "paid_amount_cents", "pickup_scheduled", "return_scheduled", "created_at", "updated_at",
}

func testOrder() *domain.Order {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return &domain.Order{
		ID:            "ord-1",
		CustomerID:    "cust-1",
		CustomerName:  "Alex",
		CustomerEmail: "alex@example.com",
		Products: []domain.LineItem{
			{ProductID: "p1", ProductName: "Excavator", Quantity: 1, RateCents: 50000, Duration: 3, DurationType: domain.DurationTypeDay},
		},
		Status:           domain.OrderStatusQuotation,
		StartDate:        start,
		EndDate:          start.Add(72 * time.Hour),
		TotalAmountCents: 150000,
		CreatedAt:        start,
		UpdatedAt:        start,
	}
}

func orderRow(o *domain.Order) *sqlmock.Rows {
	products, _ := json.Marshal(o.Products)
	return sqlmock.NewRows(orderCols).AddRow(
		o.ID, o.CustomerID, o.CustomerName, o.CustomerEmail, products, string(o.Status), o.StartDate, o.EndDate,
		o.TotalAmountCents, o.PaidAmountCents, o.PickupScheduled, o.ReturnScheduled, o.CreatedAt, o.UpdatedAt,
	)
}

func TestOrderRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOrderRepository(db)
	o := testOrder()

	mock.ExpectExec("INSERT INTO orders").
		WithArgs(o.ID, o.CustomerID, o.CustomerName, o.CustomerEmail, sqlmock.AnyArg(), o.Status,
			o.StartDate, o.EndDate, o.TotalAmountCents, o.PaidAmountCents, o.PickupScheduled, o.ReturnScheduled,
			o.CreatedAt, o.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	assert.NoError(t, repo.Create(context.Background(), o))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOrderRepository(db)

	t.Run("Found", func(t *testing.T) {
		o := testOrder()
		mock.ExpectQuery("SELECT (.+) FROM orders WHERE id").
			WithArgs(o.ID).
			WillReturnRows(orderRow(o))

		got, err := repo.GetByID(context.Background(), o.ID)
		require.NoError(t, err)
		assert.Equal(t, o.ID, got.ID)
		assert.Equal(t, o.Status, got.Status)
		require.Len(t, got.Products, 1)
		assert.Equal(t, "Excavator", got.Products[0].ProductName)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM orders WHERE id").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(context.Background(), "missing")
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestOrderRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOrderRepository(db)
	o := testOrder()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE orders SET").
			WithArgs(sqlmock.AnyArg(), o.Status, o.StartDate, o.EndDate, o.TotalAmountCents,
				o.PaidAmountCents, o.PickupScheduled, o.ReturnScheduled, o.UpdatedAt, o.ID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Update(context.Background(), o))
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec("UPDATE orders SET").
			WithArgs(sqlmock.AnyArg(), o.Status, o.StartDate, o.EndDate, o.TotalAmountCents,
				o.PaidAmountCents, o.PickupScheduled, o.ReturnScheduled, o.UpdatedAt, o.ID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Update(context.Background(), o), sql.ErrNoRows)
	})
}

func TestOrderRepository_ListOpen(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOrderRepository(db)

	o := testOrder()
	mock.ExpectQuery("SELECT (.+) FROM orders").
		WithArgs(domain.OrderStatusReturned, domain.OrderStatusCancelled).
		WillReturnRows(orderRow(o))

	orders, err := repo.ListOpen(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, o.ID, orders[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOrderRepository(db)
	o := testOrder()

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM").
		WithArgs(string(domain.OrderStatusQuotation)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT (.+) FROM orders WHERE 1=1 AND status").
		WithArgs(string(domain.OrderStatusQuotation), int32(20), int32(0)).
		WillReturnRows(orderRow(o))

	orders, total, err := repo.List(context.Background(), string(domain.OrderStatusQuotation), 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int32(1), total)
	require.Len(t, orders, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_History(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOrderRepository(db)
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	t.Run("Add", func(t *testing.T) {
		entry := &domain.OrderHistory{
			OrderID:     "ord-1",
			OldStatus:   domain.OrderStatusQuotation,
			NewStatus:   domain.OrderStatusConfirmed,
			ChangedByID: "staff-1",
			ChangedAt:   now,
		}
		mock.ExpectQuery("INSERT INTO order_history").
			WithArgs(entry.OrderID, sqlmock.AnyArg(), entry.NewStatus, entry.ChangedByID, entry.ChangedAt).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

		require.NoError(t, repo.AddHistory(context.Background(), entry))
		assert.Equal(t, int64(7), entry.ID)
	})

	t.Run("List", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "order_id", "old_status", "new_status", "changed_by_id", "changed_at"}).
			AddRow(1, "ord-1", nil, "QUOTATION", "cust-1", now).
			AddRow(2, "ord-1", "QUOTATION", "CONFIRMED", "staff-1", now)
		mock.ExpectQuery("SELECT (.+) FROM order_history").
			WithArgs("ord-1").
			WillReturnRows(rows)

		entries, err := repo.ListHistory(context.Background(), "ord-1")
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, domain.OrderStatus(""), entries[0].OldStatus, "creation entry has no old status")
		assert.Equal(t, domain.OrderStatusConfirmed, entries[1].NewStatus)
	})
}
