package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/commerce-admin/internal/domain/errors"
	"github.com/polkiloo/commerce-admin/internal/domain/filter"
	"github.com/polkiloo/commerce-admin/internal/domain/model"
	"github.com/polkiloo/commerce-admin/internal/domain/paging"
	"github.com/polkiloo/commerce-admin/internal/domain/pricing"
	"github.com/polkiloo/commerce-admin/internal/domain/repository"
)

const (
	orderStatusColumn    = "status"
	orderReferenceColumn = "order_reference"
	referencePrefix      = "ORD"
	referenceLayout      = "20060102150405"
)

var orderSortColumns = map[string]string{
	"createdAt": paging.CreatedAtColumn,
	"reference": orderReferenceColumn,
	"status":    orderStatusColumn,
}

// CreateOrderItem requests quantity units of a catalog product.
type CreateOrderItem struct {
	ProductID int64
	Quantity  int
}

// CreateOrderInput is the payload of a new order.
type CreateOrderInput struct {
	CustomerID      int64
	ShippingAddress string
	Items           []CreateOrderItem
}

// PatchOrderInput carries the fields to change. Nil fields are left untouched.
type PatchOrderInput struct {
	ShippingAddress *string
	Returned        *bool
	Status          *model.OrderStatus
	Version         *int64
}

// OrderQuery selects a page of orders, optionally by status.
type OrderQuery struct {
	Status *model.OrderStatus
	paging.Request
}

// CustomerSummary is the buyer shown with an order.
type CustomerSummary struct {
	ID    int64
	Name  string
	Email string
}

// OrderItemResult is an item snapshot with its line total.
type OrderItemResult struct {
	ID          int64
	ProductID   int64
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int
	Total       decimal.Decimal
	RecordedOn  time.Time
	Width       decimal.NullDecimal
	Height      decimal.NullDecimal
	Depth       decimal.NullDecimal
}

// OrderResult is the read model of an order with freshly computed totals.
type OrderResult struct {
	ID              int64
	Reference       string
	Customer        CustomerSummary
	Status          model.OrderStatus
	Returned        bool
	ShippingAddress string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Version         int64
	Items           []OrderItemResult
	Totals          pricing.Totals
}

// OrderUseCase encapsulates order lifecycle logic.
type OrderUseCase struct {
	orders     repository.OrderRepository
	customers  repository.CustomerDirectory
	products   repository.ProductCatalog
	calculator *pricing.Calculator
	pages      *paging.Executor[model.Order]
	logger     *slog.Logger
	now        func() time.Time
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(
	orders repository.OrderRepository,
	customers repository.CustomerDirectory,
	products repository.ProductCatalog,
	calculator *pricing.Calculator,
	limits paging.Limits,
	logger *slog.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		orders:     orders,
		customers:  customers,
		products:   products,
		calculator: calculator,
		pages:      paging.NewExecutor[model.Order](orders, orderSortColumns, limits),
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// CreateOrder validates the request, freezes product snapshots and stores the order.
func (u *OrderUseCase) CreateOrder(ctx context.Context, in CreateOrderInput) (*OrderResult, error) {
	if strings.TrimSpace(in.ShippingAddress) == "" {
		return nil, domainErrors.ErrBlankShippingAddress
	}
	if len(in.Items) == 0 {
		return nil, domainErrors.ErrEmptyItems
	}
	for _, item := range in.Items {
		if item.Quantity <= 0 {
			return nil, &domainErrors.InvalidQuantityError{ProductID: item.ProductID, Quantity: item.Quantity}
		}
	}

	customer, err := u.customers.GetCustomer(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}

	now := u.now()
	recordedOn := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	order := &model.Order{
		Reference:       newReference(now),
		CustomerID:      customer.ID,
		Status:          model.OrderStatusOrdered,
		ShippingAddress: in.ShippingAddress,
		Version:         1,
		CreatedAt:       now,
		UpdatedAt:       now,
		Items:           make([]model.OrderItem, 0, len(in.Items)),
	}

	resolved := make(map[int64]*model.Product, len(in.Items))
	for _, item := range in.Items {
		product, ok := resolved[item.ProductID]
		if !ok {
			product, err = u.products.GetProduct(ctx, item.ProductID)
			if err != nil {
				return nil, err
			}
			resolved[item.ProductID] = product
		}
		order.Items = append(order.Items, model.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Reference,
			UnitPrice:   product.Price,
			Quantity:    item.Quantity,
			RecordedOn:  recordedOn,
			Width:       product.Width,
			Height:      product.Height,
			Depth:       product.Depth,
		})
	}
	order.ApplyTotals(u.calculator.ComputeTotals(order.Lines()))

	stored, err := u.orders.Create(ctx, order)
	if err != nil {
		return nil, err
	}

	u.logger.Info("order created",
		slog.Int64("order_id", stored.ID),
		slog.String("reference", stored.Reference),
		slog.Int("items", len(stored.Items)),
		slog.String("grand_total", stored.GrandTotal.StringFixed(2)))
	return u.result(stored, summarize(customer)), nil
}

// PatchOrder applies a partial update. The address is applied first, then the
// returned flag, then the status; the whole change is rejected on any error.
func (u *OrderUseCase) PatchOrder(ctx context.Context, id int64, in PatchOrderInput) (*OrderResult, error) {
	order, err := u.activeOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Version != nil && *in.Version != order.Version {
		return nil, domainErrors.ErrVersionConflict
	}

	changed := order.Clone()
	if in.ShippingAddress != nil {
		if strings.TrimSpace(*in.ShippingAddress) == "" {
			return nil, domainErrors.ErrBlankShippingAddress
		}
		changed.ShippingAddress = *in.ShippingAddress
	}

	forced := false
	if in.Returned != nil {
		changed.Returned = *in.Returned
		if *in.Returned && changed.Status == model.OrderStatusDelivered {
			changed.Status = model.OrderStatusCancelled
			forced = true
		}
	}

	if in.Status != nil {
		next := *in.Status
		if !next.Valid() {
			return nil, &domainErrors.InvalidParameterError{Name: "status", Value: string(next)}
		}
		// A returned delivery already moved to CANCELLED; asking for it again is not a second move.
		if !(forced && next == changed.Status) {
			if !changed.Status.CanTransition(next) {
				return nil, &domainErrors.InvalidTransitionError{From: string(changed.Status), To: string(next)}
			}
			changed.Status = next
		}
	}

	changed.ApplyTotals(u.calculator.ComputeTotals(changed.Lines()))
	changed.UpdatedAt = u.now()

	stored, err := u.orders.Update(ctx, changed)
	if err != nil {
		return nil, err
	}

	u.logger.Info("order updated",
		slog.Int64("order_id", stored.ID),
		slog.String("status", string(stored.Status)),
		slog.Bool("returned", stored.Returned),
		slog.Int64("version", stored.Version))
	return u.view(ctx, stored)
}

// SoftDeleteOrder hides the order from every read path.
func (u *OrderUseCase) SoftDeleteOrder(ctx context.Context, id int64) error {
	order, err := u.activeOrder(ctx, id)
	if err != nil {
		return err
	}

	now := u.now()
	order.DeletedAt = &now
	order.UpdatedAt = now
	if _, err := u.orders.Update(ctx, order); err != nil {
		return err
	}

	u.logger.Info("order deleted", slog.Int64("order_id", id))
	return nil
}

// GetOrder returns a non-deleted order.
func (u *OrderUseCase) GetOrder(ctx context.Context, id int64) (*OrderResult, error) {
	order, err := u.activeOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	return u.view(ctx, order)
}

// ListOrders returns every non-deleted order, newest first.
func (u *OrderUseCase) ListOrders(ctx context.Context) ([]OrderResult, error) {
	orders, err := u.orders.Find(ctx, filter.Build([]filter.Clause{filter.NotDeleted()}))
	if err != nil {
		return nil, err
	}
	return u.views(ctx, orders)
}

// PageOrders returns one page of non-deleted orders.
func (u *OrderUseCase) PageOrders(ctx context.Context, q OrderQuery) (paging.Page[OrderResult], error) {
	var status *string
	if q.Status != nil {
		if !q.Status.Valid() {
			return paging.Page[OrderResult]{}, &domainErrors.InvalidParameterError{Name: "status", Value: string(*q.Status)}
		}
		s := string(*q.Status)
		status = &s
	}

	spec := filter.Build([]filter.Clause{filter.NotDeleted()}, filter.Equal(orderStatusColumn, status))
	page, err := u.pages.Execute(ctx, spec, q.Request)
	if err != nil {
		return paging.Page[OrderResult]{}, err
	}

	content, err := u.views(ctx, page.Content)
	if err != nil {
		return paging.Page[OrderResult]{}, err
	}
	return paging.Page[OrderResult]{
		Content:       content,
		TotalElements: page.TotalElements,
		Page:          page.Page,
		Size:          page.Size,
	}, nil
}

// PendingOrders summarizes non-deleted orders awaiting delivery, newest first.
func (u *OrderUseCase) PendingOrders(ctx context.Context) ([]model.PendingOrder, error) {
	ordered := string(model.OrderStatusOrdered)
	spec := filter.Build([]filter.Clause{filter.NotDeleted()}, filter.Equal(orderStatusColumn, &ordered))
	orders, err := u.orders.Find(ctx, spec)
	if err != nil {
		return nil, err
	}

	pending := make([]model.PendingOrder, 0, len(orders))
	for i := range orders {
		totals := u.calculator.ComputeTotals(orders[i].Lines())
		pending = append(pending, model.PendingOrder{
			OrderID:    orders[i].ID,
			Reference:  orders[i].Reference,
			GrandTotal: totals.GrandTotal,
			CreatedAt:  orders[i].CreatedAt,
			ItemCount:  len(orders[i].Items),
		})
	}
	return pending, nil
}

func (u *OrderUseCase) activeOrder(ctx context.Context, id int64) (*model.Order, error) {
	if id <= 0 {
		return nil, domainErrors.ErrInvalidIdentifier
	}
	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Deleted() {
		return nil, domainErrors.ErrOrderNotFound
	}
	return order, nil
}

func (u *OrderUseCase) view(ctx context.Context, order *model.Order) (*OrderResult, error) {
	customer, err := u.lookupCustomer(ctx, order.CustomerID)
	if err != nil {
		return nil, err
	}
	return u.result(order, customer), nil
}

func (u *OrderUseCase) views(ctx context.Context, orders []model.Order) ([]OrderResult, error) {
	customers := make(map[int64]CustomerSummary)
	out := make([]OrderResult, 0, len(orders))
	for i := range orders {
		customer, ok := customers[orders[i].CustomerID]
		if !ok {
			var err error
			customer, err = u.lookupCustomer(ctx, orders[i].CustomerID)
			if err != nil {
				return nil, err
			}
			customers[orders[i].CustomerID] = customer
		}
		out = append(out, *u.result(&orders[i], customer))
	}
	return out, nil
}

// lookupCustomer renders an unknown customer with an empty name.
func (u *OrderUseCase) lookupCustomer(ctx context.Context, id int64) (CustomerSummary, error) {
	customer, err := u.customers.GetCustomer(ctx, id)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			u.logger.Warn("order customer missing", slog.Int64("customer_id", id))
			return CustomerSummary{ID: id}, nil
		}
		return CustomerSummary{}, err
	}
	return summarize(customer), nil
}

func (u *OrderUseCase) result(order *model.Order, customer CustomerSummary) *OrderResult {
	items := make([]OrderItemResult, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemResult{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			Total:       item.Line().Total(),
			RecordedOn:  item.RecordedOn,
			Width:       item.Width,
			Height:      item.Height,
			Depth:       item.Depth,
		})
	}
	return &OrderResult{
		ID:              order.ID,
		Reference:       order.Reference,
		Customer:        customer,
		Status:          order.Status,
		Returned:        order.Returned,
		ShippingAddress: order.ShippingAddress,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
		Version:         order.Version,
		Items:           items,
		Totals:          u.calculator.ComputeTotals(order.Lines()),
	}
}

func summarize(c *model.Customer) CustomerSummary {
	return CustomerSummary{ID: c.ID, Name: c.FullName(), Email: c.Email}
}

func newReference(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return referencePrefix + now.Format(referenceLayout) + "-" + suffix
}
