package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alexanderramin/shiftclock/internal/domain"
	"github.com/alexanderramin/shiftclock/internal/notify"
	"github.com/alexanderramin/shiftclock/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saleFixture(t *testing.T) (*serviceFixture, SaleService) {
	t.Helper()
	f := newServiceFixture(t)
	uow := testutil.NewTestUoW(f.db)
	require.NoError(t, NewCatalogService(f.products, uow).Replace(context.Background(), domain.LocaleYummy, DefaultCatalog(domain.LocaleYummy)))
	require.NoError(t, NewCatalogService(f.products, uow).Replace(context.Background(), domain.LocaleUwu, DefaultCatalog(domain.LocaleUwu)))
	return f, NewSaleService(f.users, f.sales, uow, f.announcer(), f.observer)
}

func TestCheckout_PricesFromCatalog(t *testing.T) {
	f, svc := saleFixture(t)
	ctx := context.Background()

	sale, err := svc.Checkout(ctx, SaleRequest{
		UserID: f.worker.ID,
		Locale: domain.LocaleYummy,
		Lines: []CheckoutLine{
			{ProductID: "y1", Quantity: 2},
			{ProductID: "y14", Quantity: 1},
			{ProductID: "y1", Quantity: 1},
		},
		At: mins(0),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3*1300+15000), sale.Total)
	require.Len(t, sale.Items, 2)
	assert.Equal(t, 3, sale.Items[0].Quantity)

	stored, err := f.sales.GetByID(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, sale.Total, stored.Total)

	queued, err := f.outbox.ListByStatus(ctx, domain.NotificationPending, 0)
	require.NoError(t, err)
	require.Len(t, queued, 1)
	assert.Equal(t, domain.KindSalesLog, queued[0].Kind)
	var p notify.Payload
	require.NoError(t, json.Unmarshal(queued[0].Payload, &p))
	assert.Equal(t, "$18.900", p.Embeds[0].Fields[1].Value)
}

func TestCheckout_EmptyCart(t *testing.T) {
	f, svc := saleFixture(t)

	_, err := svc.Checkout(context.Background(), SaleRequest{UserID: f.worker.ID, Locale: domain.LocaleYummy})
	assert.ErrorIs(t, err, domain.ErrEmptyCart)

	_, err = svc.Checkout(context.Background(), SaleRequest{
		UserID: f.worker.ID, Locale: domain.LocaleYummy,
		Lines: []CheckoutLine{{ProductID: "y1", Quantity: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
}

func TestCheckout_UnknownOrForeignProduct(t *testing.T) {
	f, svc := saleFixture(t)
	ctx := context.Background()

	_, err := svc.Checkout(ctx, SaleRequest{UserID: f.worker.ID, Locale: domain.LocaleYummy,
		Lines: []CheckoutLine{{ProductID: "nope", Quantity: 1}}})
	assert.ErrorIs(t, err, domain.ErrUnknownProduct)

	_, err = svc.Checkout(ctx, SaleRequest{UserID: f.worker.ID, Locale: domain.LocaleYummy,
		Lines: []CheckoutLine{{ProductID: "u1", Quantity: 1}}})
	assert.ErrorIs(t, err, domain.ErrUnknownProduct)

	sales, err := svc.ListRecent(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, sales)
}

func TestCheckout_LocaleNotAllowed(t *testing.T) {
	f, svc := saleFixture(t)

	_, err := svc.Checkout(context.Background(), SaleRequest{UserID: f.worker.ID, Locale: domain.LocaleUwu,
		Lines: []CheckoutLine{{ProductID: "u1", Quantity: 1}}})
	assert.ErrorIs(t, err, ErrLocaleNotAllowed)
}

func TestCheckout_NoWebhookStillRecordsSale(t *testing.T) {
	f, svc := saleFixture(t)
	ctx := context.Background()

	sale, err := svc.Checkout(ctx, SaleRequest{UserID: f.admin.ID, Locale: domain.LocaleUwu,
		Lines: []CheckoutLine{{ProductID: "u7", Quantity: 2}}})
	require.NoError(t, err)
	assert.Equal(t, int64(4000), sale.Total)

	queued, err := f.outbox.ListByStatus(ctx, domain.NotificationPending, 0)
	require.NoError(t, err)
	assert.Empty(t, queued)

	sales, err := svc.ListRecent(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, sales, 1)
}
