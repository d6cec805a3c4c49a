package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"stallhub/internal/cache"
	"stallhub/internal/database"
	"stallhub/internal/logging"
	"stallhub/internal/model"
	"stallhub/internal/monitor"
	"stallhub/internal/repository"
)

const (
	orderNumberPrefix   = "ORD-"
	orderNumberLength   = 8
	orderNumberAttempts = 3
	// No 0/O or 1/I so numbers can be read out at the counter.
	orderNumberAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	analyticsKeyPrefix  = "analytics:"
)

// PlaceItem is one requested line of a direct order.
type PlaceItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Notes     string `json:"notes"`
}

// OrderQuery filters order listings.
type OrderQuery struct {
	Status  model.OrderStatus
	StallID string
	Limit   int
	Offset  int
}

type OrderService interface {
	// Checkout turns the cart into one order per stall and empties the cart.
	Checkout(ctx context.Context, p model.Principal, notes string) ([]model.Order, error)
	// Place orders an explicit list of items without touching the cart.
	Place(ctx context.Context, p model.Principal, items []PlaceItem, notes string) ([]model.Order, error)
	Get(ctx context.Context, p model.Principal, id string) (*model.Order, error)
	ListMine(ctx context.Context, p model.Principal, q OrderQuery) (*Page[model.Order], error)
	ListForBusiness(ctx context.Context, p model.Principal, businessID string, q OrderQuery) (*Page[model.Order], error)
	UpdateStatus(ctx context.Context, p model.Principal, id string, to model.OrderStatus, reason string) (*model.Order, error)
	// Cancel lets a customer withdraw a pending order. Staff may cancel through it too.
	Cancel(ctx context.Context, p model.Principal, id string, reason string) (*model.Order, error)
	Events(ctx context.Context, p model.Principal, id string) ([]model.OrderEvent, error)
}

type orderService struct {
	orders     repository.OrderRepository
	products   repository.ProductRepository
	stalls     repository.StallRepository
	businesses repository.BusinessRepository
	carts      repository.CartRepository
	tx         database.TxManager
	cache      *cache.Manager
	metrics    *monitor.Metrics
	logger     *logging.Logger
	tracer     trace.Tracer
}

func NewOrderService(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	stalls repository.StallRepository,
	businesses repository.BusinessRepository,
	carts repository.CartRepository,
	tx database.TxManager,
	c *cache.Manager,
	metrics *monitor.Metrics,
	logger *logging.Logger,
) OrderService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &orderService{
		orders: orders, products: products, stalls: stalls, businesses: businesses, carts: carts,
		tx: tx, cache: c, metrics: metrics, logger: logger,
		tracer: otel.Tracer("stallhub/internal/service"),
	}
}

func (s *orderService) Checkout(ctx context.Context, p model.Principal, notes string) ([]model.Order, error) {
	if err := requireUser(p); err != nil {
		return nil, err
	}
	ctx, span := s.tracer.Start(ctx, "order.checkout", trace.WithAttributes(attribute.String("user.id", p.UserID)))
	defer span.End()

	var placed []model.Order
	err := s.tx.Run(ctx, func(ctx context.Context) error {
		c, err := s.carts.Get(ctx, p.UserID)
		if err != nil {
			if errors.Is(notFound(err), ErrNotFound) {
				return ErrCartEmpty
			}
			return err
		}
		if len(c.Items) == 0 {
			return ErrCartEmpty
		}
		items := make([]PlaceItem, 0, len(c.Items))
		for _, it := range c.Items {
			items = append(items, PlaceItem{ProductID: it.ProductID, Quantity: it.Quantity, Notes: it.Notes})
		}
		placed, err = s.place(ctx, p, items, notes)
		if err != nil {
			return err
		}
		return s.carts.Delete(ctx, p.UserID)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	s.placed(placed)
	return placed, nil
}

func (s *orderService) Place(ctx context.Context, p model.Principal, items []PlaceItem, notes string) ([]model.Order, error) {
	if err := requireUser(p); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, invalid("items are required")
	}
	for _, it := range items {
		if it.ProductID == "" {
			return nil, invalid("product_id is required")
		}
		if it.Quantity < 1 || it.Quantity > MaxLineQuantity {
			return nil, invalid("quantity must be between 1 and %d", MaxLineQuantity)
		}
	}
	ctx, span := s.tracer.Start(ctx, "order.place", trace.WithAttributes(attribute.String("user.id", p.UserID)))
	defer span.End()

	var placed []model.Order
	err := s.tx.Run(ctx, func(ctx context.Context) error {
		var err error
		placed, err = s.place(ctx, p, items, notes)
		return err
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	s.placed(placed)
	return placed, nil
}

// place prices items against the catalogue and writes one pending order per
// stall. It must run inside a transaction.
func (s *orderService) place(ctx context.Context, p model.Principal, items []PlaceItem, notes string) ([]model.Order, error) {
	var (
		businessID string
		stallOrder []string
		byStall    = map[string][]model.OrderItem{}
	)
	for _, it := range items {
		prod, err := s.products.FindByID(ctx, it.ProductID)
		if err != nil {
			if errors.Is(notFound(err), ErrNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrProductUnavailable, it.ProductID)
			}
			return nil, err
		}
		if !prod.Available {
			return nil, fmt.Errorf("%w: %s", ErrProductUnavailable, prod.Name)
		}
		if businessID == "" {
			businessID = prod.BusinessID
		} else if prod.BusinessID != businessID {
			return nil, invalid("all items must belong to one business")
		}
		if _, ok := byStall[prod.StallID]; !ok {
			stallOrder = append(stallOrder, prod.StallID)
		}
		byStall[prod.StallID] = append(byStall[prod.StallID], model.OrderItem{
			ProductID:      prod.ID,
			Name:           prod.Name,
			UnitPriceCents: prod.PriceCents,
			Quantity:       it.Quantity,
			Notes:          strings.TrimSpace(it.Notes),
			LineTotalCents: prod.PriceCents * int64(it.Quantity),
		})
	}

	b, err := s.businesses.FindByID(ctx, businessID)
	if err != nil {
		return nil, notFound(err)
	}
	if !b.Active || !b.Settings.AcceptingOrders {
		return nil, ErrNotAcceptingOrders
	}

	customerName := p.Name
	if customerName == "" {
		customerName = p.Email
	}
	now := utcNow()
	out := make([]model.Order, 0, len(stallOrder))
	for _, stallID := range stallOrder {
		st, err := s.stalls.FindByID(ctx, stallID)
		if err != nil {
			return nil, notFound(err)
		}
		if !st.Active {
			return nil, fmt.Errorf("%w: stall %s is closed", ErrProductUnavailable, st.Name)
		}

		o := model.Order{
			ID:           uuid.NewString(),
			BusinessID:   b.ID,
			StallID:      stallID,
			CustomerID:   p.UserID,
			CustomerName: customerName,
			Status:       model.OrderPending,
			Items:        byStall[stallID],
			Notes:        strings.TrimSpace(notes),
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		for _, it := range o.Items {
			o.SubtotalCents += it.LineTotalCents
		}
		o.TaxCents = model.TaxCents(o.SubtotalCents, b.Settings.TaxRateBps)
		o.TotalCents = o.SubtotalCents + o.TaxCents

		if err := s.create(ctx, &o); err != nil {
			return nil, err
		}
		if err := s.orders.AddEvent(ctx, &model.OrderEvent{
			ID:        uuid.NewString(),
			OrderID:   o.ID,
			ToStatus:  model.OrderPending,
			ActorID:   p.UserID,
			CreatedAt: now,
		}); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

// create inserts o, drawing a new order number when one collides.
func (s *orderService) create(ctx context.Context, o *model.Order) error {
	var err error
	for i := 0; i < orderNumberAttempts; i++ {
		if o.Number, err = newOrderNumber(); err != nil {
			return err
		}
		err = s.orders.Create(ctx, o)
		if !errors.Is(err, repository.ErrDuplicate) {
			return err
		}
	}
	return fmt.Errorf("allocate order number: %w", err)
}

func newOrderNumber() (string, error) {
	buf := make([]byte, orderNumberLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = orderNumberAlphabet[int(b)%len(orderNumberAlphabet)]
	}
	return orderNumberPrefix + string(buf), nil
}

func (s *orderService) placed(orders []model.Order) {
	s.metrics.OrdersPlaced(len(orders))
	s.cache.DeletePrefix(analyticsKeyPrefix)
	for _, o := range orders {
		s.logger.Info("order_placed", map[string]any{
			"order_id":    o.ID,
			"number":      o.Number,
			"business_id": o.BusinessID,
			"stall_id":    o.StallID,
			"total_cents": o.TotalCents,
		})
	}
}

func (s *orderService) Get(ctx context.Context, p model.Principal, id string) (*model.Order, error) {
	if err := requireUser(p); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, ErrIDRequired
	}
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if o.CustomerID != p.UserID && !p.CanOperateStall(o.BusinessID, o.StallID) {
		return nil, ErrNotFound
	}
	return o, nil
}

func (s *orderService) ListMine(ctx context.Context, p model.Principal, q OrderQuery) (*Page[model.Order], error) {
	if err := requireUser(p); err != nil {
		return nil, err
	}
	if q.Status != "" && !q.Status.Valid() {
		return nil, invalid("unknown status %q", q.Status)
	}
	pq := pageQuery(q.Limit, q.Offset)
	res, err := s.orders.List(ctx, repository.OrderFilter{
		CustomerID: p.UserID,
		StallID:    q.StallID,
		Status:     q.Status,
		Page:       pq,
	})
	if err != nil {
		return nil, err
	}
	return newPage(res, pq), nil
}

func (s *orderService) ListForBusiness(ctx context.Context, p model.Principal, businessID string, q OrderQuery) (*Page[model.Order], error) {
	if err := requireUser(p); err != nil {
		return nil, err
	}
	if businessID == "" {
		return nil, ErrIDRequired
	}
	if !p.WorksAt(businessID) {
		return nil, ErrForbidden
	}
	if q.Status != "" && !q.Status.Valid() {
		return nil, invalid("unknown status %q", q.Status)
	}
	var stallIDs []string
	if scopes := p.StallScopes(businessID); scopes != nil {
		switch {
		case q.StallID != "":
			if !slices.Contains(scopes, q.StallID) {
				return nil, ErrForbidden
			}
		case len(scopes) == 1:
			q.StallID = scopes[0]
		default:
			stallIDs = scopes
		}
	}

	pq := pageQuery(q.Limit, q.Offset)
	res, err := s.orders.List(ctx, repository.OrderFilter{
		BusinessID: businessID,
		StallID:    q.StallID,
		StallIDs:   stallIDs,
		Status:     q.Status,
		Page:       pq,
	})
	if err != nil {
		return nil, err
	}
	return newPage(res, pq), nil
}

func (s *orderService) UpdateStatus(ctx context.Context, p model.Principal, id string, to model.OrderStatus, reason string) (*model.Order, error) {
	if err := requireUser(p); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, ErrIDRequired
	}
	if !to.Valid() {
		return nil, invalid("unknown status %q", to)
	}
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if !p.CanOperateStall(o.BusinessID, o.StallID) {
		if o.CustomerID == p.UserID {
			return nil, ErrForbidden
		}
		return nil, ErrNotFound
	}
	return s.transition(ctx, p, o, to, reason)
}

func (s *orderService) Cancel(ctx context.Context, p model.Principal, id string, reason string) (*model.Order, error) {
	if err := requireUser(p); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, ErrIDRequired
	}
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	switch {
	case p.CanOperateStall(o.BusinessID, o.StallID):
	case o.CustomerID == p.UserID:
		if o.Status != model.OrderPending {
			return nil, fmt.Errorf("%w: orders can only be cancelled while pending", ErrInvalidTransition)
		}
	default:
		return nil, ErrNotFound
	}
	return s.transition(ctx, p, o, model.OrderCancelled, reason)
}

// transition moves o to the next status if nobody else moved it first.
func (s *orderService) transition(ctx context.Context, p model.Principal, o *model.Order, to model.OrderStatus, reason string) (*model.Order, error) {
	from := o.Status
	if !from.CanTransitionTo(to) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, from, to)
	}
	ctx, span := s.tracer.Start(ctx, "order.transition", trace.WithAttributes(
		attribute.String("order.id", o.ID),
		attribute.String("order.from", string(from)),
		attribute.String("order.to", string(to)),
	))
	defer span.End()

	reason = strings.TrimSpace(reason)
	cancelReason := ""
	if to == model.OrderCancelled {
		cancelReason = reason
	}
	now := utcNow()
	err := s.tx.Run(ctx, func(ctx context.Context) error {
		if err := s.orders.UpdateStatus(ctx, o.ID, from, to, cancelReason, now); err != nil {
			if errors.Is(err, repository.ErrStale) {
				return conflict("order status changed, reload and retry")
			}
			return err
		}
		return s.orders.AddEvent(ctx, &model.OrderEvent{
			ID:         uuid.NewString(),
			OrderID:    o.ID,
			FromStatus: from,
			ToStatus:   to,
			ActorID:    p.UserID,
			Reason:     reason,
			CreatedAt:  now,
		})
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	o.Status = to
	o.CancelReason = cancelReason
	o.UpdatedAt = now
	s.metrics.OrderTransition(string(from), string(to))
	s.cache.DeletePrefix(analyticsKeyPrefix)
	s.logger.Info("order_status_changed", map[string]any{
		"order_id": o.ID,
		"from":     from,
		"to":       to,
		"actor_id": p.UserID,
	})
	return o, nil
}

func (s *orderService) Events(ctx context.Context, p model.Principal, id string) ([]model.OrderEvent, error) {
	o, err := s.Get(ctx, p, id)
	if err != nil {
		return nil, err
	}
	return s.orders.Events(ctx, o.ID)
}
