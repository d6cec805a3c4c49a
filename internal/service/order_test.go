package service

import (
	"database/sql"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"stallhub/internal/cache"
	"stallhub/internal/logging"
	"stallhub/internal/model"
	"stallhub/internal/monitor"
	"stallhub/internal/repository"
	repoMocks "stallhub/internal/repository/mocks"
)

type orderFixture struct {
	orders     *repoMocks.MockOrderRepository
	products   *repoMocks.MockProductRepository
	stalls     *repoMocks.MockStallRepository
	businesses *repoMocks.MockBusinessRepository
	carts      *repoMocks.MockCartRepository
	tx         *passTx
	cache      *cache.Manager
	reg        *prometheus.Registry
	svc        OrderService
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	f := &orderFixture{
		orders:     new(repoMocks.MockOrderRepository),
		products:   new(repoMocks.MockProductRepository),
		stalls:     new(repoMocks.MockStallRepository),
		businesses: new(repoMocks.MockBusinessRepository),
		carts:      new(repoMocks.MockCartRepository),
		tx:         &passTx{},
		cache:      testCache(),
		reg:        prometheus.NewRegistry(),
	}
	metrics, err := monitor.NewMetrics(f.reg)
	require.NoError(t, err)
	f.svc = NewOrderService(f.orders, f.products, f.stalls, f.businesses, f.carts, f.tx, f.cache, metrics, logging.Discard())
	return f
}

// counter sums every series of the named counter.
func counter(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	total := 0.0
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			total += m.GetCounter().GetValue()
		}
	}
	return total
}

func (f *orderFixture) catalogue(settings model.BusinessSettings) {
	f.products.On("FindByID", mock.Anything, "bao").Return(bao, nil)
	f.products.On("FindByID", mock.Anything, "tea").Return(tea, nil)
	f.products.On("FindByID", mock.Anything, "gone").Return(soldOut, nil)
	f.products.On("FindByID", mock.Anything, "taco").Return(foreign, nil)
	f.businesses.On("FindByID", mock.Anything, bizID).Return(&model.Business{ID: bizID, Active: true, Settings: settings}, nil)
	f.stalls.On("FindByID", mock.Anything, stallA).Return(&model.Stall{ID: stallA, BusinessID: bizID, Name: "A", Active: true}, nil)
	f.stalls.On("FindByID", mock.Anything, stallB).Return(&model.Stall{ID: stallB, BusinessID: bizID, Name: "B", Active: true}, nil)
}

func TestOrderService_Checkout(t *testing.T) {
	open := model.BusinessSettings{Currency: "USD", TaxRateBps: 1000, AcceptingOrders: true}

	t.Run("splits the cart per stall", func(t *testing.T) {
		f := newOrderFixture(t)
		f.catalogue(open)
		f.cache.Set("analytics:platform:x", &model.AnalyticsReport{})
		f.carts.On("Get", mock.Anything, custID).Return(&model.Cart{
			UserID:     custID,
			BusinessID: bizID,
			Items: []model.CartItem{
				{ProductID: "bao", StallID: stallA, Quantity: 3, Notes: "extra chili"},
				{ProductID: "tea", StallID: stallB, Quantity: 1},
			},
		}, nil)
		var created []*model.Order
		f.orders.On("Create", mock.Anything, mock.AnythingOfType("*model.Order")).Run(func(args mock.Arguments) {
			created = append(created, args.Get(1).(*model.Order))
		}).Return(nil)
		f.orders.On("AddEvent", mock.Anything, mock.MatchedBy(func(e *model.OrderEvent) bool {
			return e.FromStatus == "" && e.ToStatus == model.OrderPending && e.ActorID == custID
		})).Return(nil).Twice()
		f.carts.On("Delete", mock.Anything, custID).Return(nil)

		out, err := f.svc.Checkout(bg(), customer, " by the window ")
		require.NoError(t, err)
		require.Len(t, out, 2)

		a := out[0]
		assert.Equal(t, stallA, a.StallID)
		assert.Equal(t, model.OrderPending, a.Status)
		assert.Equal(t, "Casey", a.CustomerName)
		assert.Equal(t, "by the window", a.Notes)
		assert.Equal(t, int64(1350), a.SubtotalCents)
		assert.Equal(t, int64(135), a.TaxCents)
		assert.Equal(t, int64(1485), a.TotalCents)
		assert.Equal(t, "extra chili", a.Items[0].Notes)
		assert.True(t, strings.HasPrefix(a.Number, "ORD-"))
		assert.Len(t, a.Number, 12)

		assert.Equal(t, stallB, out[1].StallID)
		assert.Equal(t, int64(330), out[1].TotalCents)
		assert.Len(t, created, 2)

		assert.Equal(t, 1, f.tx.calls)
		assert.Equal(t, 2.0, counter(t, f.reg, "orders_placed_total"))
		_, ok := f.cache.Get("analytics:platform:x")
		assert.False(t, ok)
		f.orders.AssertExpectations(t)
		f.carts.AssertExpectations(t)
	})

	t.Run("empty cart", func(t *testing.T) {
		f := newOrderFixture(t)
		f.carts.On("Get", mock.Anything, custID).Return(nil, sql.ErrNoRows)

		_, err := f.svc.Checkout(bg(), customer, "")
		assert.ErrorIs(t, err, ErrCartEmpty)
	})

	t.Run("business paused ordering", func(t *testing.T) {
		f := newOrderFixture(t)
		f.catalogue(model.BusinessSettings{Currency: "USD", AcceptingOrders: false})
		f.carts.On("Get", mock.Anything, custID).Return(&model.Cart{
			UserID: custID, BusinessID: bizID,
			Items: []model.CartItem{{ProductID: "bao", StallID: stallA, Quantity: 1}},
		}, nil)

		_, err := f.svc.Checkout(bg(), customer, "")
		assert.ErrorIs(t, err, ErrNotAcceptingOrders)
		f.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		f.carts.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("sold out item", func(t *testing.T) {
		f := newOrderFixture(t)
		f.catalogue(open)
		f.carts.On("Get", mock.Anything, custID).Return(&model.Cart{
			UserID: custID, BusinessID: bizID,
			Items: []model.CartItem{{ProductID: "gone", StallID: stallA, Quantity: 1}},
		}, nil)

		_, err := f.svc.Checkout(bg(), customer, "")
		assert.ErrorIs(t, err, ErrProductUnavailable)
	})

	t.Run("order number collision retries", func(t *testing.T) {
		f := newOrderFixture(t)
		f.catalogue(open)
		f.carts.On("Get", mock.Anything, custID).Return(&model.Cart{
			UserID: custID, BusinessID: bizID,
			Items: []model.CartItem{{ProductID: "bao", StallID: stallA, Quantity: 1}},
		}, nil)
		f.orders.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicate).Once()
		f.orders.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
		f.orders.On("AddEvent", mock.Anything, mock.Anything).Return(nil)
		f.carts.On("Delete", mock.Anything, custID).Return(nil)

		out, err := f.svc.Checkout(bg(), customer, "")
		require.NoError(t, err)
		assert.Len(t, out, 1)
		f.orders.AssertNumberOfCalls(t, "Create", 2)
	})
}

func TestOrderService_Place(t *testing.T) {
	open := model.BusinessSettings{Currency: "USD", AcceptingOrders: true}

	t.Run("explicit items leave the cart alone", func(t *testing.T) {
		f := newOrderFixture(t)
		f.catalogue(open)
		f.orders.On("Create", mock.Anything, mock.Anything).Return(nil)
		f.orders.On("AddEvent", mock.Anything, mock.Anything).Return(nil)

		out, err := f.svc.Place(bg(), customer, []PlaceItem{{ProductID: "bao", Quantity: 2}}, "")
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, int64(900), out[0].TotalCents)
		f.carts.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("items from two businesses", func(t *testing.T) {
		f := newOrderFixture(t)
		f.catalogue(open)

		_, err := f.svc.Place(bg(), customer, []PlaceItem{{ProductID: "bao", Quantity: 1}, {ProductID: "taco", Quantity: 1}}, "")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("validation", func(t *testing.T) {
		f := newOrderFixture(t)
		_, err := f.svc.Place(bg(), customer, nil, "")
		assert.ErrorIs(t, err, ErrInvalidInput)
		_, err = f.svc.Place(bg(), customer, []PlaceItem{{ProductID: "bao", Quantity: 0}}, "")
		assert.ErrorIs(t, err, ErrInvalidInput)
		_, err = f.svc.Place(bg(), anonymous, []PlaceItem{{ProductID: "bao", Quantity: 1}}, "")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})
}

func pendingOrder() *model.Order {
	return &model.Order{ID: "o1", BusinessID: bizID, StallID: stallA, CustomerID: custID, Status: model.OrderPending}
}

func TestOrderService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name    string
		p       model.Principal
		order   func() *model.Order
		to      model.OrderStatus
		repoErr error
		wantErr error
	}{
		{name: "staff confirms", p: staffA, order: pendingOrder, to: model.OrderConfirmed},
		{name: "owner cancels", p: owner, order: pendingOrder, to: model.OrderCancelled},
		{name: "super admin confirms", p: superAdmin, order: pendingOrder, to: model.OrderConfirmed},
		{
			name:    "skipping a step",
			p:       staffA,
			order:   pendingOrder,
			to:      model.OrderReady,
			wantErr: ErrInvalidTransition,
		},
		{
			name: "terminal order",
			p:    staffA,
			order: func() *model.Order {
				o := pendingOrder()
				o.Status = model.OrderFulfilled
				return o
			},
			to:      model.OrderCancelled,
			wantErr: ErrInvalidTransition,
		},
		{
			name: "staff of another stall",
			p:    staffA,
			order: func() *model.Order {
				o := pendingOrder()
				o.StallID = stallB
				return o
			},
			to:      model.OrderConfirmed,
			wantErr: ErrNotFound,
		},
		{name: "customer cannot confirm", p: customer, order: pendingOrder, to: model.OrderConfirmed, wantErr: ErrForbidden},
		{name: "unknown status", p: staffA, order: pendingOrder, to: "eaten", wantErr: ErrInvalidInput},
		{
			name:    "concurrent change",
			p:       staffA,
			order:   pendingOrder,
			to:      model.OrderConfirmed,
			repoErr: repository.ErrStale,
			wantErr: ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newOrderFixture(t)
			o := tt.order()
			f.orders.On("FindByID", mock.Anything, "o1").Return(o, nil)
			from := o.Status
			f.orders.On("UpdateStatus", mock.Anything, "o1", from, tt.to, mock.Anything, mock.Anything).Return(tt.repoErr)
			f.orders.On("AddEvent", mock.Anything, mock.MatchedBy(func(e *model.OrderEvent) bool {
				return e.FromStatus == from && e.ToStatus == tt.to && e.ActorID == tt.p.UserID
			})).Return(nil)

			got, err := f.svc.UpdateStatus(bg(), tt.p, "o1", tt.to, "reason")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				f.orders.AssertNotCalled(t, "AddEvent", mock.Anything, mock.Anything)
				assert.Zero(t, counter(t, f.reg, "order_transitions_total"))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, got.Status)
			assert.Equal(t, 1.0, counter(t, f.reg, "order_transitions_total"))
			if tt.to == model.OrderCancelled {
				assert.Equal(t, "reason", got.CancelReason)
			} else {
				assert.Empty(t, got.CancelReason)
			}
		})
	}
}

func TestOrderService_Cancel(t *testing.T) {
	t.Run("customer cancels pending order", func(t *testing.T) {
		f := newOrderFixture(t)
		f.orders.On("FindByID", mock.Anything, "o1").Return(pendingOrder(), nil)
		f.orders.On("UpdateStatus", mock.Anything, "o1", model.OrderPending, model.OrderCancelled, "changed my mind", mock.Anything).Return(nil)
		f.orders.On("AddEvent", mock.Anything, mock.Anything).Return(nil)

		o, err := f.svc.Cancel(bg(), customer, "o1", "changed my mind")
		require.NoError(t, err)
		assert.Equal(t, model.OrderCancelled, o.Status)
	})

	t.Run("customer cannot cancel once confirmed", func(t *testing.T) {
		f := newOrderFixture(t)
		o := pendingOrder()
		o.Status = model.OrderConfirmed
		f.orders.On("FindByID", mock.Anything, "o1").Return(o, nil)

		_, err := f.svc.Cancel(bg(), customer, "o1", "")
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("staff can cancel while preparing", func(t *testing.T) {
		f := newOrderFixture(t)
		o := pendingOrder()
		o.Status = model.OrderPreparing
		f.orders.On("FindByID", mock.Anything, "o1").Return(o, nil)
		f.orders.On("UpdateStatus", mock.Anything, "o1", model.OrderPreparing, model.OrderCancelled, "out of stock", mock.Anything).Return(nil)
		f.orders.On("AddEvent", mock.Anything, mock.Anything).Return(nil)

		_, err := f.svc.Cancel(bg(), staffA, "o1", "out of stock")
		require.NoError(t, err)
	})

	t.Run("stranger", func(t *testing.T) {
		f := newOrderFixture(t)
		f.orders.On("FindByID", mock.Anything, "o1").Return(pendingOrder(), nil)
		stranger := model.Principal{UserID: "someone", Roles: []model.RoleAssignment{{Role: model.RoleCustomer}}}

		_, err := f.svc.Cancel(bg(), stranger, "o1", "")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestOrderService_Get(t *testing.T) {
	f := newOrderFixture(t)
	f.orders.On("FindByID", mock.Anything, "o1").Return(pendingOrder(), nil)
	f.orders.On("FindByID", mock.Anything, "missing").Return(nil, sql.ErrNoRows)
	f.orders.On("Events", mock.Anything, "o1").Return([]model.OrderEvent{{ToStatus: model.OrderPending}}, nil)

	_, err := f.svc.Get(bg(), customer, "o1")
	assert.NoError(t, err)
	_, err = f.svc.Get(bg(), staffA, "o1")
	assert.NoError(t, err)
	_, err = f.svc.Get(bg(), model.Principal{UserID: "other"}, "o1")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.svc.Get(bg(), customer, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	events, err := f.svc.Events(bg(), customer, "o1")
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestOrderService_ListForBusiness(t *testing.T) {
	page := &repository.PageResult[model.Order]{Items: []model.Order{{ID: "o1"}}, Total: 1}

	t.Run("stall scoped staff only see their stall", func(t *testing.T) {
		f := newOrderFixture(t)
		f.orders.On("List", mock.Anything, repository.OrderFilter{
			BusinessID: bizID, StallID: stallA, Status: model.OrderPending,
			Page: repository.PageQuery{Limit: 20},
		}).Return(page, nil)

		res, err := f.svc.ListForBusiness(bg(), staffA, bizID, OrderQuery{Status: model.OrderPending})
		require.NoError(t, err)
		assert.Equal(t, 1, res.Total)
		f.orders.AssertExpectations(t)
	})

	t.Run("stall scoped staff asking for another stall", func(t *testing.T) {
		f := newOrderFixture(t)
		_, err := f.svc.ListForBusiness(bg(), staffA, bizID, OrderQuery{StallID: stallB})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("staff of two stalls see both", func(t *testing.T) {
		f := newOrderFixture(t)
		twoStalls := model.Principal{UserID: "staff-ab", Roles: []model.RoleAssignment{
			{Role: model.RoleStaff, BusinessID: bizID, StallID: stallA},
			{Role: model.RoleStallManager, BusinessID: bizID, StallID: stallB},
		}}
		f.orders.On("List", mock.Anything, repository.OrderFilter{
			BusinessID: bizID, StallIDs: []string{stallA, stallB},
			Page: repository.PageQuery{Limit: 20},
		}).Return(page, nil)
		f.orders.On("List", mock.Anything, repository.OrderFilter{
			BusinessID: bizID, StallID: stallA,
			Page: repository.PageQuery{Limit: 20},
		}).Return(page, nil)

		_, err := f.svc.ListForBusiness(bg(), twoStalls, bizID, OrderQuery{})
		require.NoError(t, err)
		_, err = f.svc.ListForBusiness(bg(), twoStalls, bizID, OrderQuery{StallID: stallA})
		require.NoError(t, err)
		_, err = f.svc.ListForBusiness(bg(), twoStalls, bizID, OrderQuery{StallID: "stall-c"})
		assert.ErrorIs(t, err, ErrForbidden)
		f.orders.AssertExpectations(t)
	})

	t.Run("owner filters by stall", func(t *testing.T) {
		f := newOrderFixture(t)
		f.orders.On("List", mock.Anything, repository.OrderFilter{
			BusinessID: bizID, StallID: stallB, Page: repository.PageQuery{Limit: 5, Offset: 10},
		}).Return(page, nil)

		_, err := f.svc.ListForBusiness(bg(), owner, bizID, OrderQuery{StallID: stallB, Limit: 5, Offset: 10})
		require.NoError(t, err)
	})

	t.Run("customers are forbidden", func(t *testing.T) {
		f := newOrderFixture(t)
		_, err := f.svc.ListForBusiness(bg(), customer, bizID, OrderQuery{})
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestOrderService_ListMine(t *testing.T) {
	f := newOrderFixture(t)
	f.orders.On("List", mock.Anything, repository.OrderFilter{
		CustomerID: custID, Page: repository.PageQuery{Limit: 20},
	}).Return(&repository.PageResult[model.Order]{}, nil)

	_, err := f.svc.ListMine(bg(), customer, OrderQuery{})
	require.NoError(t, err)

	_, err = f.svc.ListMine(bg(), customer, OrderQuery{Status: "lost"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
