package customers_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/boutique/internal/domain/models"
	"github.com/mamadbah2/boutique/internal/repository/records"
	"github.com/mamadbah2/boutique/internal/repository/records/recordstest"
	"github.com/mamadbah2/boutique/internal/service/customers"
)

func TestCreate_EmptyFirstNameRejectedBeforeWrite(t *testing.T) {
	store := recordstest.NewRecorder()
	svc := customers.NewService(store, nil)

	_, err := svc.Create(context.Background(), models.Customer{FirstName: "", SecondName: "Khan"}, true)

	assert.ErrorIs(t, err, models.ErrValidation)
	assert.Zero(t, store.Writes())

	docs, err := store.List(context.Background(), records.CollectionCustomers)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestCreate_OptionalFieldsMayBeEmpty(t *testing.T) {
	store := recordstest.NewRecorder()
	svc := customers.NewService(store, nil)

	created, err := svc.Create(context.Background(), models.Customer{FirstName: " Zara ", SecondName: "Khan"}, true)
	require.NoError(t, err)
	assert.Equal(t, "Zara", created.FirstName)
	assert.Equal(t, 1, svc.Count())
}

func TestCreate_RequiresConfirmation(t *testing.T) {
	store := recordstest.NewRecorder()
	svc := customers.NewService(store, nil)

	_, err := svc.Create(context.Background(), models.Customer{FirstName: "Zara", SecondName: "Khan"}, false)

	var confirm *models.ConfirmationError
	require.True(t, errors.As(err, &confirm))
	assert.Equal(t, "Are you sure you want to add this customer?", confirm.Prompt)
	assert.Zero(t, store.Writes())
}

func TestUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	store := recordstest.NewRecorder()
	svc := customers.NewService(store, nil)
	created, err := svc.Create(ctx, models.Customer{FirstName: "Zara", SecondName: "Khan", Address: "Karachi"}, true)
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, models.Customer{FirstName: "", SecondName: "Khan"}, true)
	assert.ErrorIs(t, err, models.ErrValidation)

	updated, err := svc.Update(ctx, created.ID, models.Customer{FirstName: "Zara", SecondName: "Ahmed", Address: "Lahore"}, true)
	require.NoError(t, err)
	assert.Equal(t, "Ahmed", updated.SecondName)

	got, ok := svc.Get(created.ID)
	require.True(t, ok)
	assert.Equal(t, "Lahore", got.Address)

	err = svc.Delete(ctx, created.ID, false)
	var confirm *models.ConfirmationError
	require.True(t, errors.As(err, &confirm))
	assert.Equal(t, "Are you sure you want to delete this customer?", confirm.Prompt)

	require.NoError(t, svc.Delete(ctx, created.ID, true))
	assert.Zero(t, svc.Count())
}

func TestUpdate_UnknownID(t *testing.T) {
	svc := customers.NewService(recordstest.NewRecorder(), nil)

	_, err := svc.Update(context.Background(), "nope", models.Customer{FirstName: "A", SecondName: "B"}, true)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestStoreFailureLeavesMirror(t *testing.T) {
	ctx := context.Background()
	store := recordstest.NewRecorder()
	svc := customers.NewService(store, nil)
	created, err := svc.Create(ctx, models.Customer{FirstName: "Zara", SecondName: "Khan"}, true)
	require.NoError(t, err)

	store.Fail(true)

	_, err = svc.Create(ctx, models.Customer{FirstName: "Noor", SecondName: "Ali"}, true)
	assert.ErrorIs(t, err, models.ErrStore)
	_, err = svc.Update(ctx, created.ID, models.Customer{FirstName: "Zara", SecondName: "Ali"}, true)
	assert.ErrorIs(t, err, models.ErrStore)
	assert.ErrorIs(t, svc.Delete(ctx, created.ID, true), models.ErrStore)

	assert.Equal(t, []models.Customer{created}, svc.List())
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()
	store := recordstest.NewRecorder()
	for _, name := range []string{"Ayesha", "Bushra"} {
		_, err := store.Create(ctx, records.CollectionCustomers, models.Customer{FirstName: name, SecondName: "Khan"}.Attributes())
		require.NoError(t, err)
	}

	svc := customers.NewService(store, nil)
	require.NoError(t, svc.Refresh(ctx))

	list := svc.List()
	require.Len(t, list, 2)
	assert.Equal(t, "Bushra", list[0].FirstName)
}
