package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/boutique/internal/domain/models"
	"github.com/mamadbah2/boutique/internal/repository/records"
	"github.com/mamadbah2/boutique/internal/repository/records/recordstest"
	"github.com/mamadbah2/boutique/internal/service/catalog"
)

func lawnSuit() models.StockItem {
	return models.StockItem{ArticleNumber: "LS-01", ProductName: "Lawn suit", ProductCost: "2500", Quantity: "12"}
}

func TestCreate_PrependsWithStoreID(t *testing.T) {
	ctx := context.Background()
	store := recordstest.NewRecorder()
	svc := catalog.NewService(store, nil)

	first, err := svc.Create(ctx, lawnSuit(), true)
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.False(t, first.CreatedAt.IsZero())

	second := lawnSuit()
	second.ArticleNumber = "LS-02"
	created, err := svc.Create(ctx, second, true)
	require.NoError(t, err)

	items := svc.List()
	require.Len(t, items, 2)
	assert.Equal(t, created.ID, items[0].ID)
	assert.Equal(t, first.ID, items[1].ID)

	docs, err := store.List(ctx, records.CollectionStock)
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestCreate_ValidationPrecedesStore(t *testing.T) {
	store := recordstest.NewRecorder()
	svc := catalog.NewService(store, nil)

	item := lawnSuit()
	item.ProductCost = "  "
	_, err := svc.Create(context.Background(), item, true)

	assert.ErrorIs(t, err, models.ErrValidation)
	assert.Zero(t, store.Writes())
	assert.Empty(t, svc.List())
}

func TestValidate(t *testing.T) {
	assert.NoError(t, catalog.Validate(models.StockItem{ArticleNumber: "LS-01", ProductName: "Lawn suit", ProductCost: "2500", Quantity: "4"}))
	assert.ErrorIs(t, catalog.Validate(models.StockItem{ArticleNumber: " ", ProductName: "Lawn suit", ProductCost: "2500", Quantity: "4"}), models.ErrValidation)
}

func TestCreate_UnconfirmedDoesNotWrite(t *testing.T) {
	store := recordstest.NewRecorder()
	svc := catalog.NewService(store, nil)

	_, err := svc.Create(context.Background(), lawnSuit(), false)

	var confirm *models.ConfirmationError
	require.True(t, errors.As(err, &confirm))
	assert.Equal(t, "Do you want to add this stock?", confirm.Prompt)
	assert.Zero(t, store.Writes())
}

func TestCreate_StoreFailureLeavesMirror(t *testing.T) {
	store := recordstest.NewRecorder()
	svc := catalog.NewService(store, nil)
	_, err := svc.Create(context.Background(), lawnSuit(), true)
	require.NoError(t, err)

	store.Fail(true)
	_, err = svc.Create(context.Background(), lawnSuit(), true)

	assert.ErrorIs(t, err, models.ErrStore)
	assert.Len(t, svc.List(), 1)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	store := recordstest.NewRecorder()
	svc := catalog.NewService(store, nil)
	created, err := svc.Create(ctx, lawnSuit(), true)
	require.NoError(t, err)

	edit := lawnSuit()
	edit.ProductCost = "2750"

	_, err = svc.Update(ctx, created.ID, edit, false)
	var confirm *models.ConfirmationError
	require.True(t, errors.As(err, &confirm))
	assert.Equal(t, "Are you sure you want to update this stock?", confirm.Prompt)

	updated, err := svc.Update(ctx, created.ID, edit, true)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	got, ok := svc.Get(created.ID)
	require.True(t, ok)
	assert.Equal(t, models.Numeric("2750"), got.ProductCost)

	docs, err := store.List(ctx, records.CollectionStock)
	require.NoError(t, err)
	assert.Equal(t, "2750", docs[0].Attributes.String("productCost"))
}

func TestUpdate_UnknownID(t *testing.T) {
	store := recordstest.NewRecorder()
	svc := catalog.NewService(store, nil)

	_, err := svc.Update(context.Background(), "missing", lawnSuit(), true)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Zero(t, store.Writes())
}

func TestUpdate_StoreFailureLeavesMirror(t *testing.T) {
	ctx := context.Background()
	store := recordstest.NewRecorder()
	svc := catalog.NewService(store, nil)
	created, err := svc.Create(ctx, lawnSuit(), true)
	require.NoError(t, err)

	store.Fail(true)
	edit := lawnSuit()
	edit.ProductName = "Silk suit"
	_, err = svc.Update(ctx, created.ID, edit, true)

	assert.ErrorIs(t, err, models.ErrStore)
	got, _ := svc.Get(created.ID)
	assert.Equal(t, "Lawn suit", got.ProductName)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	store := recordstest.NewRecorder()
	svc := catalog.NewService(store, nil)
	created, err := svc.Create(ctx, lawnSuit(), true)
	require.NoError(t, err)
	writes := store.Writes()

	err = svc.Delete(ctx, created.ID, false)
	var confirm *models.ConfirmationError
	require.True(t, errors.As(err, &confirm))
	assert.Equal(t, writes, store.Writes())

	store.Fail(true)
	assert.ErrorIs(t, svc.Delete(ctx, created.ID, true), models.ErrStore)
	assert.Equal(t, 1, svc.Count())

	store.Fail(false)
	require.NoError(t, svc.Delete(ctx, created.ID, true))
	assert.Zero(t, svc.Count())
}

func TestRefresh_NewestFirst(t *testing.T) {
	ctx := context.Background()
	store := recordstest.NewRecorder()
	for _, number := range []string{"A", "B", "C"} {
		item := lawnSuit()
		item.ArticleNumber = number
		_, err := store.Create(ctx, records.CollectionStock, item.Attributes())
		require.NoError(t, err)
	}

	svc := catalog.NewService(store, nil)
	require.NoError(t, svc.Refresh(ctx))

	items := svc.List()
	require.Len(t, items, 3)
	assert.Equal(t, "C", items[0].ArticleNumber)
	assert.Equal(t, "A", items[2].ArticleNumber)

	store.Fail(true)
	assert.ErrorIs(t, svc.Refresh(ctx), models.ErrStore)
	assert.Len(t, svc.List(), 3)
}
