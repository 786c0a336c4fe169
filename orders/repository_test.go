package orders

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/acestore/acestore-api/logger"
	"github.com/acestore/acestore-api/metrics"
	"github.com/acestore/acestore-api/models"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Order{}, &models.OrderItem{}))
	return NewRepository(db)
}

func pendingOrder(userID string, total int64) *models.Order {
	return &models.Order{
		UserID:           userID,
		TotalAmountCents: total,
		Status:           models.StatusPending,
		DeliveryInfo:     []byte(`{"discord":"ace#1234"}`),
		Metadata:         []byte(`{"user_email":"buyer@example.com"}`),
	}
}

func backdate(t *testing.T, repo *Repository, orderID uint, age time.Duration) {
	t.Helper()
	past := time.Now().Add(-age)
	require.NoError(t, repo.db.Model(&models.Order{}).Where("id = ?", orderID).Update("created_at", past).Error)
}

func TestCreateOrderReturnsGeneratedID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	order := pendingOrder("user-1", 2999)
	require.NoError(t, repo.CreateOrder(ctx, order))
	assert.NotZero(t, order.ID)
}

func TestCreateOrderItemsAndPreload(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	order := pendingOrder("user-1", 3999)
	require.NoError(t, repo.CreateOrder(ctx, order))

	items := []models.OrderItem{
		{OrderID: order.ID, ProductID: "101", ProductName: "AceBot: Juggernaut", VariantID: "101-default", VariantName: "Standard", Quantity: 1, PricePerItemCents: 2999},
		{OrderID: order.ID, ProductID: "202", ProductName: "Gold Pack", VariantID: "202-default", VariantName: "Standard", Quantity: 2, PricePerItemCents: 500},
	}
	require.NoError(t, repo.CreateOrderItems(ctx, items))

	orders, err := repo.ListOrders(ctx, "")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Len(t, orders[0].OrderItems, 2)
}

func TestCreateOrderItemsEmptyBatchIsNoop(t *testing.T) {
	repo := newTestRepo(t)
	assert.NoError(t, repo.CreateOrderItems(context.Background(), nil))
}

func TestListOrdersFiltersByStatus(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := pendingOrder("user-1", 100)
	second := pendingOrder("user-2", 200)
	require.NoError(t, repo.CreateOrder(ctx, first))
	require.NoError(t, repo.CreateOrder(ctx, second))
	require.NoError(t, repo.UpdateStatus(ctx, second.ID, models.StatusCompleted))

	pending, err := repo.ListOrders(ctx, models.StatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, first.ID, pending[0].ID)

	completed, err := repo.ListOrders(ctx, models.StatusCompleted)
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, second.ID, completed[0].ID)
}

func TestOrdersByUser(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	mine := pendingOrder("user-1", 100)
	theirs := pendingOrder("user-2", 200)
	require.NoError(t, repo.CreateOrder(ctx, mine))
	require.NoError(t, repo.CreateOrder(ctx, theirs))

	orders, err := repo.OrdersByUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, mine.ID, orders[0].ID)
}

func TestUpdateStatusValidation(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	order := pendingOrder("user-1", 100)
	require.NoError(t, repo.CreateOrder(ctx, order))

	assert.ErrorIs(t, repo.UpdateStatus(ctx, order.ID, "shipped"), ErrInvalidStatus)
	assert.ErrorIs(t, repo.UpdateStatus(ctx, 9999, models.StatusCompleted), ErrOrderNotFound)
	assert.NoError(t, repo.UpdateStatus(ctx, order.ID, models.StatusRefunded))
}

func TestDeleteOrder(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	order := pendingOrder("user-1", 100)
	require.NoError(t, repo.CreateOrder(ctx, order))
	require.NoError(t, repo.DeleteOrder(ctx, order.ID))
	assert.ErrorIs(t, repo.DeleteOrder(ctx, order.ID), ErrOrderNotFound)

	orders, err := repo.ListOrders(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestFlagOrphans(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	// Old pending order with zero items: the orphan.
	orphan := pendingOrder("user-1", 2999)
	require.NoError(t, repo.CreateOrder(ctx, orphan))
	backdate(t, repo, orphan.ID, 2*time.Hour)

	// Old pending order with items: healthy.
	healthy := pendingOrder("user-2", 500)
	require.NoError(t, repo.CreateOrder(ctx, healthy))
	require.NoError(t, repo.CreateOrderItems(ctx, []models.OrderItem{
		{OrderID: healthy.ID, ProductID: "202", ProductName: "Gold Pack", VariantID: "202-default", VariantName: "Standard", Quantity: 1, PricePerItemCents: 500},
	}))
	backdate(t, repo, healthy.ID, 2*time.Hour)

	// Fresh itemless order: still inside the grace period.
	fresh := pendingOrder("user-3", 100)
	require.NoError(t, repo.CreateOrder(ctx, fresh))

	flagged, err := repo.FlagOrphans(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, flagged)

	// A second sweep does not flag the same order again.
	flagged, err = repo.FlagOrphans(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Zero(t, flagged)

	orders, err := repo.ListOrders(ctx, models.StatusPending)
	require.NoError(t, err)
	for _, o := range orders {
		if o.ID == orphan.ID {
			assert.NotNil(t, o.OrphanedAt)
		} else {
			assert.Nil(t, o.OrphanedAt)
		}
	}
}

func TestReconcilerSweep(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	orphan := pendingOrder("user-1", 2999)
	require.NoError(t, repo.CreateOrder(ctx, orphan))
	backdate(t, repo, orphan.ID, time.Hour)

	m := metrics.NewStoreMetrics(prometheus.NewRegistry())
	rec := NewReconciler(repo, time.Minute, 10*time.Minute, m, logger.NewNop())
	rec.sweep(ctx)

	orders, err := repo.ListOrders(ctx, models.StatusPending)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.NotNil(t, orders[0].OrphanedAt)
}
