package checkout

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/acestore/acestore-api/cart"
	"github.com/acestore/acestore-api/logger"
	"github.com/acestore/acestore-api/metrics"
	"github.com/acestore/acestore-api/models"
)

// OrderWriter is the remote persistence collaborator. CreateOrder must fill
// in the generated order id; CreateOrderItems is a single batch insert. Each
// call is atomic on its own, the two-call sequence is not.
type OrderWriter interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	CreateOrderItems(ctx context.Context, items []models.OrderItem) error
}

// Service runs the order submission pipeline:
// validate -> require identity -> create order -> create line items -> clear cart.
// A line-item failure after the order insert leaves an orphaned pending
// order; that partial state is surfaced, not rolled back (the reconciler
// flags it later).
type Service struct {
	carts   *cart.Service
	orders  OrderWriter
	metrics *metrics.StoreMetrics
	log     *logger.Logger
	notify  func(order *models.Order)
}

func NewService(carts *cart.Service, orders OrderWriter, m *metrics.StoreMetrics, log *logger.Logger) *Service {
	return &Service{carts: carts, orders: orders, metrics: m, log: log}
}

// SetNotifier installs a best-effort hook invoked after every successful
// submission. Notification failures never fail the order.
func (s *Service) SetNotifier(notify func(order *models.Order)) {
	s.notify = notify
}

func (s *Service) fail(kind Kind, message string, fields map[string]string) *Error {
	s.metrics.OrderFailures.WithLabelValues(string(kind)).Inc()
	return &Error{Kind: kind, Message: message, Fields: fields}
}

// Submit converts the session's cart into a pending order plus line items.
// On any failure the cart is left untouched so the buyer's selection is
// never lost. Resubmission is not deduplicated: each invocation that reaches
// the order insert creates a new order.
func (s *Service) Submit(ctx context.Context, identity *models.Identity, sessionID string, info DeliveryInfo) (*models.Order, error) {
	c, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	if c.IsEmpty() {
		return nil, s.fail(KindValidation, "Your cart is empty.", nil)
	}

	analysis := Analyze(c.Items)
	if problems := ValidateDeliveryInfo(info, RequiredFields(analysis)); len(problems) > 0 {
		return nil, s.fail(KindValidation, "Delivery information is invalid.", problems)
	}

	if identity == nil {
		return nil, s.fail(KindAuthenticationRequired, "You must be logged in to place an order.", nil)
	}

	deliveryJSON, err := marshalDeliveryInfo(info)
	if err != nil {
		return nil, fmt.Errorf("encode delivery info: %w", err)
	}
	metadataJSON, err := json.Marshal(map[string]string{"user_email": identity.Email})
	if err != nil {
		return nil, fmt.Errorf("encode metadata: %w", err)
	}

	order := models.Order{
		UserID:           identity.ID,
		TotalAmountCents: c.Total(),
		Status:           models.StatusPending,
		DeliveryInfo:     datatypes.JSON(deliveryJSON),
		Metadata:         datatypes.JSON(metadataJSON),
	}

	if err := s.orders.CreateOrder(ctx, &order); err != nil {
		s.log.Error("order insert failed", "user", identity.ID, "error", err)
		return nil, s.fail(KindOrderCreate, "There was a problem placing your order.", nil)
	}

	items := make([]models.OrderItem, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, models.OrderItem{
			OrderID:           order.ID,
			ProductID:         item.Product.ID,
			ProductName:       item.Product.Title,
			VariantID:         item.Variant.ID,
			VariantName:       item.Variant.Title,
			Quantity:          item.Quantity,
			PricePerItemCents: item.Variant.PriceInCents,
		})
	}

	if err := s.orders.CreateOrderItems(ctx, items); err != nil {
		// Order survives with zero items until the reconciler flags it.
		s.log.Error("line-item insert failed, pending order is orphaned",
			"order", order.ID, "user", identity.ID, "error", err)
		return nil, s.fail(KindLineItemCreate, "There was a problem placing your order.", nil)
	}

	order.OrderItems = items

	if err := s.carts.Clear(ctx, sessionID); err != nil {
		s.log.Warn("failed to clear cart after successful order", "order", order.ID, "error", err)
	}

	s.metrics.OrdersCreated.Inc()
	s.log.Info("order placed", "order", order.ID, "user", identity.ID,
		"items", len(items), "total_cents", order.TotalAmountCents)

	if s.notify != nil {
		s.notify(&order)
	}
	return &order, nil
}

// marshalDeliveryInfo keeps delivery_info sparse: a field is present only
// when it holds a non-empty value.
func marshalDeliveryInfo(info DeliveryInfo) ([]byte, error) {
	sparse := make(map[string]string)
	if info.Nickname != "" {
		sparse["nickname"] = info.Nickname
	}
	if info.Discord != "" {
		sparse["discord"] = info.Discord
	}
	return json.Marshal(sparse)
}
