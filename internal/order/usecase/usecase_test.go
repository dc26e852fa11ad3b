package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fekuna/omnipos-order-service/internal/apperr"
	"github.com/fekuna/omnipos-order-service/internal/auth"
	"github.com/fekuna/omnipos-order-service/internal/cart"
	cartdto "github.com/fekuna/omnipos-order-service/internal/cart/dto"
	cartuc "github.com/fekuna/omnipos-order-service/internal/cart/usecase"
	"github.com/fekuna/omnipos-order-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-order-service/internal/model"
	"github.com/fekuna/omnipos-order-service/internal/order"
	orderdto "github.com/fekuna/omnipos-order-service/internal/order/dto"
	"github.com/fekuna/omnipos-order-service/internal/storage/memory"
	"github.com/fekuna/omnipos-order-service/pkg/logger"
)

// fakeProducer records published events; failures are injectable.
type fakeProducer struct {
	published [][]byte
	err       error
}

func (p *fakeProducer) Publish(ctx context.Context, key string, value []byte) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, value)
	return nil
}

var (
	admin    = auth.Actor{ID: "admin-1", Role: auth.RoleAdmin}
	member   = auth.Actor{ID: "member-1", Role: auth.RoleMember}
	stranger = auth.Actor{ID: "member-2", Role: auth.RoleMember}
)

type fixture struct {
	store    *memory.Store
	producer *fakeProducer
	orders   order.UseCase
	carts    cart.UseCase
}

func setup(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	producer := &fakeProducer{}
	log := logger.NewNop()
	return &fixture{
		store:    store,
		producer: producer,
		orders:   NewOrderUseCase(store, store, store, store, store, producer, log),
		carts:    cartuc.NewCartUseCase(store, store, log),
	}
}

func (f *fixture) seedVariant(t *testing.T, basePrice int64, stock int) string {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()

	productID := uuid.New().String()
	require.NoError(t, f.store.CreateProduct(ctx, &model.Product{
		BaseModel: model.BaseModel{ID: productID, CreatedAt: now, UpdatedAt: now},
		Name:      "gym hoodie",
		BasePrice: basePrice,
		IsActive:  true,
	}))

	variantID := uuid.New().String()
	require.NoError(t, f.store.CreateVariant(ctx, &model.Variant{
		BaseModel:   model.BaseModel{ID: variantID, CreatedAt: now, UpdatedAt: now},
		ProductID:   productID,
		Size:        "M",
		Color:       "navy",
		StockAmount: stock,
	}))
	return variantID
}

// addToCart puts qty of the variant into the member's cart and returns the
// resulting cart line id.
func (f *fixture) addToCart(t *testing.T, memberID, variantID string, qty int) string {
	t.Helper()
	c, err := f.carts.AddLine(context.Background(), memberID, &cartdto.AddLineInput{
		VariantID: variantID,
		Quantity:  qty,
	})
	require.NoError(t, err)
	for _, l := range c.Lines {
		if l.VariantID == variantID {
			return l.ID
		}
	}
	t.Fatalf("line for variant %s not found in cart", variantID)
	return ""
}

func shippingInput(lineIDs ...string) *orderdto.PlaceOrderInput {
	return &orderdto.PlaceOrderInput{
		CartLineIDs:  lineIDs,
		ReceiverName: "Jamie Lee",
		Address:      "12 High Street",
		PostalCode:   "04523",
		Phone:        "010-1234-5678",
		PayType:      "CARD",
	}
}

func (f *fixture) stockOf(t *testing.T, variantID string) int {
	t.Helper()
	v, err := f.store.VariantByID(context.Background(), variantID)
	require.NoError(t, err)
	return v.StockAmount
}

func TestPlaceOrder(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	variantID := f.seedVariant(t, 100, 10)
	lineID := f.addToCart(t, member.ID, variantID, 3)

	o, err := f.orders.Place(ctx, member, shippingInput(lineID))
	require.NoError(t, err)

	assert.Equal(t, model.OrderStatusWaiting, o.Status)
	assert.Equal(t, 3, o.TotalCount)
	assert.Equal(t, int64(300), o.TotalPrice)
	require.Len(t, o.Lines, 1)
	assert.Equal(t, int64(100), o.Lines[0].UnitPrice)

	assert.Equal(t, 7, f.stockOf(t, variantID))

	// the consumed line is gone from the cart
	c, err := f.carts.GetCart(ctx, member.ID)
	require.NoError(t, err)
	assert.Empty(t, c.Lines)

	// one sale movement referencing the order
	movements, _, err := f.store.ListMovements(ctx, &dto.MovementFilters{ReferenceID: o.ID})
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, model.MovementTypeSale, movements[0].MovementType)
	assert.Equal(t, -3, movements[0].QuantityChange)

	assert.Len(t, f.producer.published, 1)
}

func TestPlaceIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	variantA := f.seedVariant(t, 100, 5)
	variantB := f.seedVariant(t, 200, 0)
	lineA := f.addToCart(t, member.ID, variantA, 2)
	lineB := f.addToCart(t, member.ID, variantB, 1)

	_, err := f.orders.Place(ctx, member, shippingInput(lineA, lineB))
	assert.ErrorIs(t, err, apperr.ErrInsufficientStock)

	// no partial stock mutation, no order, cart intact
	assert.Equal(t, 5, f.stockOf(t, variantA))
	assert.Equal(t, 0, f.stockOf(t, variantB))

	orders, total, err := f.orders.ListMine(ctx, member, 1, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, orders)

	c, err := f.carts.GetCart(ctx, member.ID)
	require.NoError(t, err)
	assert.Len(t, c.Lines, 2)

	assert.Empty(t, f.producer.published)
}

func TestPlaceRejectsEmptySelection(t *testing.T) {
	f := setup(t)
	_, err := f.orders.Place(context.Background(), member, shippingInput())
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
}

func TestPlaceRejectsForeignLines(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	variantID := f.seedVariant(t, 100, 10)
	lineID := f.addToCart(t, member.ID, variantID, 1)

	// another member ordering with someone else's cart line id
	_, err := f.orders.Place(ctx, stranger, shippingInput(lineID))
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Equal(t, 10, f.stockOf(t, variantID))
}

func TestPlaceFreezesCartPrice(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	variantID := f.seedVariant(t, 100, 10)
	lineID := f.addToCart(t, member.ID, variantID, 1)

	// catalog price changes after the line was added
	v, err := f.store.VariantByID(ctx, variantID)
	require.NoError(t, err)
	p, err := f.store.ProductByID(ctx, v.ProductID)
	require.NoError(t, err)
	p.BasePrice = 150
	require.NoError(t, f.store.UpdateProduct(ctx, p))

	o, err := f.orders.Place(ctx, member, shippingInput(lineID))
	require.NoError(t, err)
	require.Len(t, o.Lines, 1)
	assert.Equal(t, int64(100), o.Lines[0].UnitPrice, "order must keep the cart's frozen price")
	assert.Equal(t, int64(100), o.TotalPrice)
}

func TestPlaceConsumesOnlySelectedLines(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	variantA := f.seedVariant(t, 100, 10)
	variantB := f.seedVariant(t, 50, 10)
	lineA := f.addToCart(t, member.ID, variantA, 2)
	f.addToCart(t, member.ID, variantB, 1)

	o, err := f.orders.Place(ctx, member, shippingInput(lineA))
	require.NoError(t, err)
	assert.Equal(t, 2, o.TotalCount)

	c, err := f.carts.GetCart(ctx, member.ID)
	require.NoError(t, err)
	require.Len(t, c.Lines, 1, "unselected lines stay in the cart")
	assert.Equal(t, variantB, c.Lines[0].VariantID)
}

func placeWaiting(t *testing.T, f *fixture, qty, stock int) (*model.Order, string) {
	t.Helper()
	variantID := f.seedVariant(t, 100, stock)
	lineID := f.addToCart(t, member.ID, variantID, qty)
	o, err := f.orders.Place(context.Background(), member, shippingInput(lineID))
	require.NoError(t, err)
	return o, variantID
}

func TestUpdateStatusHappyPath(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	o, _ := placeWaiting(t, f, 1, 5)

	o2, err := f.orders.UpdateStatus(ctx, admin, o.ID, model.OrderStatusDelivering)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusDelivering, o2.Status)

	o3, err := f.orders.UpdateStatus(ctx, admin, o.ID, model.OrderStatusComplete)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusComplete, o3.Status)

	// illegal backwards move leaves status untouched
	_, err = f.orders.UpdateStatus(ctx, admin, o.ID, model.OrderStatusDelivering)
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition)

	got, err := f.orders.Get(ctx, admin, o.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusComplete, got.Status)
}

func TestUpdateStatusRequiresAdmin(t *testing.T) {
	f := setup(t)
	o, _ := placeWaiting(t, f, 1, 5)

	_, err := f.orders.UpdateStatus(context.Background(), member, o.ID, model.OrderStatusDelivering)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	f := setup(t)
	o, _ := placeWaiting(t, f, 1, 5)

	_, err := f.orders.UpdateStatus(context.Background(), admin, o.ID, model.OrderStatus("SHIPPED"))
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
}

func TestAdminCancelRestocksAndAudits(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	o, variantID := placeWaiting(t, f, 3, 10)
	require.Equal(t, 7, f.stockOf(t, variantID))

	o2, err := f.orders.UpdateStatus(ctx, admin, o.ID, model.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCancelled, o2.Status)
	assert.Equal(t, 10, f.stockOf(t, variantID))

	actions, err := f.orders.ListActions(ctx, admin, o.ID)
	require.NoError(t, err)
	require.Len(t, actions, 1)
	assert.Equal(t, model.ActionTypeCancel, actions[0].ActionType)
	assert.Equal(t, admin.ID, actions[0].ActionBy)
}

func TestCancelOnlyFromWaiting(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	o, variantID := placeWaiting(t, f, 2, 10)

	cancelInput := &orderdto.CancelInput{Reason: "changed my mind"}

	// legal from WAITING
	o2, err := f.orders.Cancel(ctx, member, o.ID, cancelInput)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCancelled, o2.Status)
	assert.Equal(t, 10, f.stockOf(t, variantID))

	actions, err := f.orders.ListActions(ctx, member, o.ID)
	require.NoError(t, err)
	require.Len(t, actions, 1)
	assert.Equal(t, model.ActionTypeCancel, actions[0].ActionType)

	// illegal once delivering
	o3, _ := placeWaiting(t, f, 1, 5)
	_, err = f.orders.UpdateStatus(ctx, admin, o3.ID, model.OrderStatusDelivering)
	require.NoError(t, err)
	_, err = f.orders.Cancel(ctx, member, o3.ID, cancelInput)
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition)
}

func TestCancelAuthorization(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	o, _ := placeWaiting(t, f, 1, 5)

	_, err := f.orders.Cancel(ctx, stranger, o.ID, &orderdto.CancelInput{Reason: "nope"})
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	_, err = f.orders.Cancel(ctx, member, o.ID, &orderdto.CancelInput{})
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument, "reason is required")

	// admins may cancel on the member's behalf
	_, err = f.orders.Cancel(ctx, admin, o.ID, &orderdto.CancelInput{Reason: "fraud check"})
	require.NoError(t, err)
}

func completeOrder(t *testing.T, f *fixture, o *model.Order) {
	t.Helper()
	ctx := context.Background()
	_, err := f.orders.UpdateStatus(ctx, admin, o.ID, model.OrderStatusDelivering)
	require.NoError(t, err)
	_, err = f.orders.UpdateStatus(ctx, admin, o.ID, model.OrderStatusComplete)
	require.NoError(t, err)
}

func TestRequestReturnRequiresComplete(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	o, _ := placeWaiting(t, f, 1, 5)

	input := &orderdto.ReturnRequestInput{Reason: "defective", Description: "cracked seam"}

	_, err := f.orders.RequestReturn(ctx, member, o.ID, input)
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition)

	completeOrder(t, f, o)
	o2, err := f.orders.RequestReturn(ctx, member, o.ID, input)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusReturnRequested, o2.Status)

	actions, err := f.orders.ListActions(ctx, member, o.ID)
	require.NoError(t, err)
	require.Len(t, actions, 1)
	assert.Equal(t, model.ActionTypeReturn, actions[0].ActionType)
	assert.Equal(t, "defective", actions[0].Reason)
	assert.Equal(t, "cracked seam", actions[0].Description)
}

func TestRequestReturnValidation(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	o, _ := placeWaiting(t, f, 1, 5)
	completeOrder(t, f, o)

	_, err := f.orders.RequestReturn(ctx, member, o.ID, &orderdto.ReturnRequestInput{Reason: "defective"})
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument, "description is required for returns")

	// only the owner may request a return, not even an admin
	_, err = f.orders.RequestReturn(ctx, admin, o.ID, &orderdto.ReturnRequestInput{Reason: "r", Description: "d"})
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestReturnedRestoresStock(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	o, variantID := placeWaiting(t, f, 3, 10)
	completeOrder(t, f, o)

	_, err := f.orders.RequestReturn(ctx, member, o.ID, &orderdto.ReturnRequestInput{Reason: "defective", Description: "cracked seam"})
	require.NoError(t, err)
	require.Equal(t, 7, f.stockOf(t, variantID), "stock comes back only at RETURNED")

	_, err = f.orders.UpdateStatus(ctx, admin, o.ID, model.OrderStatusReturning)
	require.NoError(t, err)
	assert.Equal(t, 7, f.stockOf(t, variantID))

	o2, err := f.orders.UpdateStatus(ctx, admin, o.ID, model.OrderStatusReturned)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusReturned, o2.Status)
	assert.Equal(t, 10, f.stockOf(t, variantID))

	// movements balance: one sale, one restock
	movements, _, err := f.store.ListMovements(ctx, &dto.MovementFilters{ReferenceID: o.ID})
	require.NoError(t, err)
	require.Len(t, movements, 2)
}

func TestGetHidesForeignOrders(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	o, _ := placeWaiting(t, f, 1, 5)

	_, err := f.orders.Get(ctx, stranger, o.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound, "existence must not leak to other members")

	got, err := f.orders.Get(ctx, admin, o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.ID, got.ID)
}

func TestPublishFailureDoesNotFailPlacement(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	f.producer.err = errors.New("broker down")

	variantID := f.seedVariant(t, 100, 5)
	lineID := f.addToCart(t, member.ID, variantID, 1)

	o, err := f.orders.Place(ctx, member, shippingInput(lineID))
	require.NoError(t, err, "event publication is best effort")
	assert.Equal(t, model.OrderStatusWaiting, o.Status)
	assert.Equal(t, 4, f.stockOf(t, variantID))
}

// Full lifecycle: place, deliver, complete, return round-trip.
func TestOrderLifecycle(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	variantID := f.seedVariant(t, 100, 10)
	lineID := f.addToCart(t, member.ID, variantID, 3)

	o, err := f.orders.Place(ctx, member, shippingInput(lineID))
	require.NoError(t, err)
	assert.Equal(t, 7, f.stockOf(t, variantID))
	assert.Equal(t, 3, o.TotalCount)
	assert.Equal(t, model.OrderStatusWaiting, o.Status)

	c, err := f.carts.GetCart(ctx, member.ID)
	require.NoError(t, err)
	assert.Empty(t, c.Lines)

	completeOrder(t, f, o)

	_, err = f.orders.RequestReturn(ctx, member, o.ID, &orderdto.ReturnRequestInput{
		Reason:      "defective",
		Description: "cracked seam",
	})
	require.NoError(t, err)

	actions, err := f.orders.ListActions(ctx, member, o.ID)
	require.NoError(t, err)
	require.Len(t, actions, 1)

	_, err = f.orders.UpdateStatus(ctx, admin, o.ID, model.OrderStatusReturning)
	require.NoError(t, err)
	final, err := f.orders.UpdateStatus(ctx, admin, o.ID, model.OrderStatusReturned)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusReturned, final.Status)
}
