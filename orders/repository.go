package orders

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/acestore/acestore-api/models"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrInvalidStatus = errors.New("invalid order status")
)

// Repository wraps the order tables. CreateOrder and CreateOrderItems are
// deliberately separate calls with no shared transaction: each insert is
// atomic on its own, the sequence is not, and a line-item failure leaves the
// parent order behind as an auditable orphan.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateOrder inserts one order and fills in its generated id.
func (r *Repository) CreateOrder(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// CreateOrderItems batch-inserts the order's line items.
func (r *Repository) CreateOrderItems(ctx context.Context, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

// ListOrders returns orders newest first with their items, optionally
// filtered by status.
func (r *Repository) ListOrders(ctx context.Context, status string) ([]models.Order, error) {
	query := r.db.WithContext(ctx).Preload("OrderItems").Order("created_at desc")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	if result := query.Find(&orders); result.Error != nil {
		return nil, result.Error
	}
	return orders, nil
}

// OrdersByUser returns one user's orders newest first with their items.
func (r *Repository) OrdersByUser(ctx context.Context, userID string) ([]models.Order, error) {
	var orders []models.Order
	result := r.db.WithContext(ctx).
		Preload("OrderItems").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&orders)
	if result.Error != nil {
		return nil, result.Error
	}
	return orders, nil
}

func validStatus(status string) bool {
	switch status {
	case models.StatusPending, models.StatusCompleted, models.StatusRefunded:
		return true
	}
	return false
}

// UpdateStatus moves an order between pending, completed and refunded.
func (r *Repository) UpdateStatus(ctx context.Context, orderID uint, status string) error {
	if !validStatus(status) {
		return ErrInvalidStatus
	}

	result := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// DeleteOrder removes an order; its items cascade.
func (r *Repository) DeleteOrder(ctx context.Context, orderID uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Order{}, orderID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// FlagOrphans stamps orphaned_at on pending orders older than the cutoff
// that have no line items and are not flagged yet, and reports how many it
// touched. Flagged orders stay in place for operator inspection.
func (r *Repository) FlagOrphans(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("status = ?", models.StatusPending).
		Where("orphaned_at IS NULL").
		Where("created_at < ?", cutoff).
		Where("NOT EXISTS (SELECT 1 FROM order_items WHERE order_items.order_id = orders.id AND order_items.deleted_at IS NULL)").
		Update("orphaned_at", time.Now())
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
