package orders

import (
	"context"
	"testing"
	"time"

	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/internal/pricing"
	"github.com/angelmondragon/storefront/internal/products"
	"github.com/angelmondragon/storefront/pkg/clock"
	"github.com/angelmondragon/storefront/pkg/db/dbtest"
	"github.com/angelmondragon/storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAddress() Address {
	return Address{
		Email:      "Jane@Example.com",
		FirstName:  "Jane",
		LastName:   "Doe",
		Address:    "12 MG Road",
		City:       "Bengaluru",
		State:      "KA",
		PostalCode: "560001",
		Phone:      "+91 98450 00000",
	}
}

func newTestService(t *testing.T, clk clock.Clock) Service {
	t.Helper()
	db := dbtest.Open(t)
	_, err := products.Seed(context.Background(), db, catalog.SampleProducts())
	require.NoError(t, err)

	svc, err := NewService(ServiceParams{
		Repo:     NewRepository(db),
		Products: products.NewRepository(db),
		Rules:    pricing.DefaultRules(),
		Clock:    clk,
	})
	require.NoError(t, err)
	return svc
}

func TestPlacePricesFromCatalog(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	svc := newTestService(t, clk)
	userID := uuid.New()

	order, err := svc.Place(context.Background(), userID, PlaceRequest{
		Lines: []LineInput{
			{ProductID: "1", Size: "M", Color: "Black", Quantity: 2},
			{ProductID: "2", Size: "L", Color: "Olive", Quantity: 1},
		},
		Address:        testAddress(),
		ShippingMethod: enums.ShippingMethodStandard,
		PaymentMethod:  enums.PaymentMethodCOD,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(6497), order.Subtotal)
	assert.Equal(t, int64(9900), order.Shipping)
	assert.Equal(t, int64(1169), order.Tax)
	assert.Equal(t, int64(17566), order.Total)
	assert.Equal(t, 3, order.ItemCount())
	assert.Equal(t, "jane@example.com", order.Address.Email)
	assert.Equal(t, enums.OrderStatusProcessing, order.Status)
	assert.Equal(t, enums.PaymentStatusPending, order.PaymentStatus)
	assert.Equal(t, "oversized-street-tee", order.Lines[0].Slug)
	assert.Equal(t, int64(1999), order.Lines[0].UnitPrice)

	list, err := svc.List(context.Background(), userID, ListParams{})
	require.NoError(t, err)
	require.Len(t, list.Orders, 1)
	assert.Equal(t, order.ID, list.Orders[0].ID)
	assert.Empty(t, list.NextCursor)
}

func TestPlaceRejectsBadInput(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()
	userID := uuid.New()
	base := PlaceRequest{
		Address:        testAddress(),
		ShippingMethod: enums.ShippingMethodExpress,
		PaymentMethod:  enums.PaymentMethodPayPal,
	}

	_, err := svc.Place(ctx, uuid.Nil, base)
	assert.True(t, pkgerrors.IsUnauthenticated(err))

	_, err = svc.Place(ctx, userID, base)
	assert.True(t, pkgerrors.IsValidation(err))

	req := base
	req.Lines = []LineInput{{ProductID: "999", Size: "M", Color: "Black", Quantity: 1}}
	_, err = svc.Place(ctx, userID, req)
	assert.True(t, pkgerrors.IsNotFound(err))

	req.Lines = []LineInput{{ProductID: "1", Size: "XS", Color: "Black", Quantity: 1}}
	_, err = svc.Place(ctx, userID, req)
	assert.True(t, pkgerrors.IsValidation(err))

	req.Lines = []LineInput{{ProductID: "1", Size: "M", Color: "Black", Quantity: 1}}
	req.ShippingMethod = "drone"
	_, err = svc.Place(ctx, userID, req)
	assert.True(t, pkgerrors.IsValidation(err))
}

func TestPlaceRejectsStaleQuote(t *testing.T) {
	svc := newTestService(t, nil)
	req := PlaceRequest{
		Lines:          []LineInput{{ProductID: "1", Size: "M", Color: "Black", Quantity: 1}},
		Address:        testAddress(),
		ShippingMethod: enums.ShippingMethodExpress,
		PaymentMethod:  enums.PaymentMethodCreditCard,
	}
	quote := pricing.Quote(1999, enums.ShippingMethodExpress, pricing.DefaultRules())

	req.Expected = &quote
	order, err := svc.Place(context.Background(), uuid.New(), req)
	require.NoError(t, err)
	assert.Equal(t, quote.Total, order.Total)

	stale := quote
	stale.Total--
	req.Expected = &stale
	_, err = svc.Place(context.Background(), uuid.New(), req)
	assert.True(t, pkgerrors.IsValidation(err))
}

func TestListPaginatesNewestFirst(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	svc := newTestService(t, clk)
	ctx := context.Background()
	userID := uuid.New()

	var placed []string
	for i := 0; i < 3; i++ {
		order, err := svc.Place(ctx, userID, PlaceRequest{
			Lines:          []LineInput{{ProductID: "1", Size: "S", Color: "White", Quantity: i + 1}},
			Address:        testAddress(),
			ShippingMethod: enums.ShippingMethodStandard,
			PaymentMethod:  enums.PaymentMethodCOD,
		})
		require.NoError(t, err)
		placed = append(placed, order.ID)
		clk.Advance(time.Minute)
	}
	_, err := svc.Place(ctx, uuid.New(), PlaceRequest{
		Lines:          []LineInput{{ProductID: "1", Size: "S", Color: "White", Quantity: 1}},
		Address:        testAddress(),
		ShippingMethod: enums.ShippingMethodStandard,
		PaymentMethod:  enums.PaymentMethodCOD,
	})
	require.NoError(t, err)

	first, err := svc.List(ctx, userID, ListParams{Limit: 2})
	require.NoError(t, err)
	require.Len(t, first.Orders, 2)
	assert.Equal(t, placed[2], first.Orders[0].ID)
	assert.Equal(t, placed[1], first.Orders[1].ID)
	require.NotEmpty(t, first.NextCursor)

	second, err := svc.List(ctx, userID, ListParams{Limit: 2, Cursor: first.NextCursor})
	require.NoError(t, err)
	require.Len(t, second.Orders, 1)
	assert.Equal(t, placed[0], second.Orders[0].ID)
	assert.Empty(t, second.NextCursor)

	_, err = svc.List(ctx, userID, ListParams{Cursor: "%%%"})
	assert.True(t, pkgerrors.IsValidation(err))
}
