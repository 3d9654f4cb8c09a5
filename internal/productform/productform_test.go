package productform

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"podcatalog/internal/client"
	"podcatalog/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCreator is a mock implementation of Creator
type MockCreator struct {
	mock.Mock
}

func (m *MockCreator) CreateProduct(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func apply(t *testing.T, d Draft, actions ...Action) Draft {
	t.Helper()
	for _, a := range actions {
		var err error
		d, err = Reduce(d, a)
		require.NoError(t, err, "action %T", a)
	}
	return d
}

func requireFormError(t *testing.T, err error, msg string) {
	t.Helper()
	var ferr *Error
	require.True(t, errors.As(err, &ferr), "expected *productform.Error, got %v", err)
	assert.Equal(t, msg, ferr.Message)
}

func teeDraft(t *testing.T) Draft {
	return apply(t, Draft{},
		SetName{Value: "Classic Tee"},
		SetDescription{Value: "Soft cotton"},
		SetCategory{Value: "CLOTHING"},
		SetPrice{Value: "20"},
		SetSyncID{Value: "42"},
		AddImage{URL: " http://x/1.png "},
		EditVariant{Fields: VariantFields{Size: "M", Color: "Blue", PrintfulVariantID: "111"}},
		AddVariant{},
	)
}

func TestModeFor(t *testing.T) {
	assert.Equal(t, NoVariants, ModeFor(""))
	assert.Equal(t, NoVariants, ModeFor("SHOES"))
	assert.Equal(t, SingleForced, ModeFor("HATS"))
	assert.Equal(t, SingleForced, ModeFor("MUGS"))
	assert.Equal(t, MultiFreeform, ModeFor("CLOTHING"))
	assert.Equal(t, MultiFreeform, ModeFor("ACCESSORIES"))
}

func TestAddImage(t *testing.T) {
	d := apply(t, Draft{}, AddImage{URL: "http://x/1.png"}, AddImage{URL: "   "}, AddImage{URL: "http://x/1.png"})
	assert.Equal(t, []string{"http://x/1.png", "http://x/1.png"}, d.Images)

	d = apply(t, d, RemoveImage{Index: 0}, RemoveImage{Index: 5})
	assert.Equal(t, []string{"http://x/1.png"}, d.Images)
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	before := apply(t, Draft{}, AddImage{URL: "a"}, AddImage{URL: "b"})
	after := apply(t, before, RemoveImage{Index: 0})

	assert.Equal(t, []string{"a", "b"}, before.Images)
	assert.Equal(t, []string{"b"}, after.Images)
}

func TestAddVariant_MultiAppendsAndDefaultsPrice(t *testing.T) {
	d := teeDraft(t)
	d = apply(t, d,
		EditVariant{Fields: VariantFields{Size: "L", PrintfulVariantID: "112", Price: "22.5"}},
		AddVariant{},
	)

	require.Len(t, d.Variants, 2)
	assert.Equal(t, 20.0, *d.Variants[0].Price)
	assert.Equal(t, "M", *d.Variants[0].Size)
	assert.Equal(t, "Blue", *d.Variants[0].Color)
	assert.Equal(t, 22.5, *d.Variants[1].Price)
	assert.Nil(t, d.Variants[1].Color)
	assert.Equal(t, VariantFields{}, d.CurrentVariant)
}

func TestAddVariant_SingleReplacesAndDropsSizeColor(t *testing.T) {
	d := apply(t, Draft{},
		SetCategory{Value: "MUGS"},
		SetPrice{Value: "12"},
		EditVariant{Fields: VariantFields{Size: "XL", Color: "Red", PrintfulVariantID: "1"}},
		AddVariant{},
		EditVariant{Fields: VariantFields{PrintfulVariantID: "2", Price: "15"}},
		AddVariant{},
	)

	require.Len(t, d.Variants, 1)
	assert.Equal(t, int64(2), *d.Variants[0].PrintfulVariantID)
	assert.Equal(t, 15.0, *d.Variants[0].Price)
	assert.Nil(t, d.Variants[0].Size)
	assert.Nil(t, d.Variants[0].Color)
}

func TestAddVariant_Rejections(t *testing.T) {
	_, err := Reduce(Draft{CurrentVariant: VariantFields{PrintfulVariantID: "1"}}, AddVariant{})
	requireFormError(t, err, MsgNoCategory)

	d := apply(t, Draft{}, SetCategory{Value: "CLOTHING"})
	next, err := Reduce(d, AddVariant{})
	requireFormError(t, err, MsgVariantIDMissing)
	assert.Empty(t, next.Variants)

	d = apply(t, d, EditVariant{Fields: VariantFields{PrintfulVariantID: "abc"}})
	_, err = Reduce(d, AddVariant{})
	requireFormError(t, err, MsgVariantIDInvalid)

	d = apply(t, d, EditVariant{Fields: VariantFields{PrintfulVariantID: "1", Price: "cheap"}})
	_, err = Reduce(d, AddVariant{})
	requireFormError(t, err, MsgVariantPrice)
}

func TestSetCategory_ClearsVariantsOnModeChange(t *testing.T) {
	d := teeDraft(t)

	kept := apply(t, d, SetCategory{Value: "ACCESSORIES"})
	assert.Len(t, kept.Variants, 1)

	cleared := apply(t, d, SetCategory{Value: "HATS"})
	assert.Empty(t, cleared.Variants)

	single := apply(t, Draft{},
		SetCategory{Value: "HATS"},
		EditVariant{Fields: VariantFields{PrintfulVariantID: "9"}},
		AddVariant{},
		SetCategory{Value: "MUGS"},
	)
	assert.Empty(t, single.Variants)

	_, err := Reduce(d, SetCategory{Value: "SHOES"})
	requireFormError(t, err, MsgUnknownCategory)
}

func TestRemoveVariantAndReset(t *testing.T) {
	d := apply(t, teeDraft(t), RemoveVariant{Index: 0})
	assert.Empty(t, d.Variants)

	d = apply(t, d, Reset{})
	assert.Equal(t, Draft{}, d)
}

func TestSubmit_ClientSideChecks(t *testing.T) {
	creator := new(MockCreator)
	ctx := context.Background()

	d := teeDraft(t)
	d.Name = "  "
	_, err := Submit(ctx, d, creator, nil)
	requireFormError(t, err, MsgRequiredFields)

	d = apply(t, teeDraft(t), RemoveVariant{Index: 0})
	_, err = Submit(ctx, d, creator, nil)
	requireFormError(t, err, MsgVariantRequired)

	d = apply(t, teeDraft(t), RemoveImage{Index: 0})
	_, err = Submit(ctx, d, creator, nil)
	requireFormError(t, err, MsgImageRequired)

	d = apply(t, teeDraft(t), SetSyncID{Value: "12abc"})
	_, err = Submit(ctx, d, creator, nil)
	requireFormError(t, err, MsgSyncIDInvalid)

	creator.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
}

func TestSubmit_Success(t *testing.T) {
	creator := new(MockCreator)
	ctx := context.Background()
	stored := &models.Product{ID: "p-1", Name: "Classic Tee"}

	creator.On("CreateProduct", ctx, mock.MatchedBy(func(in models.ProductInput) bool {
		return in.Name == "Classic Tee" &&
			*in.Price == 20 &&
			in.PrintfulSyncID.Int64() == 42 &&
			len(in.Images) == 1 && in.Images[0] == "http://x/1.png" &&
			len(in.Variants) == 1 && *in.Variants[0].PrintfulVariantID == 111
	})).Return(stored, nil).Once()

	var notified *models.Product
	next, err := Submit(ctx, teeDraft(t), creator, func(p *models.Product) { notified = p })

	require.NoError(t, err)
	assert.Equal(t, Draft{}, next)
	assert.Equal(t, stored, notified)
	creator.AssertExpectations(t)
}

func TestSubmit_SurfacesServerReason(t *testing.T) {
	creator := new(MockCreator)
	ctx := context.Background()
	d := teeDraft(t)

	creator.On("CreateProduct", ctx, mock.Anything).Return(nil, &client.APIError{
		StatusCode: http.StatusBadRequest,
		Message:    "A product with printful sync ID 42 already exists",
	}).Once()

	next, err := Submit(ctx, d, creator, func(*models.Product) { t.Fatal("onSuccess must not run") })
	requireFormError(t, err, "A product with printful sync ID 42 already exists")
	assert.Equal(t, d, next)
}

func TestSubmit_GenericFailure(t *testing.T) {
	creator := new(MockCreator)
	ctx := context.Background()

	creator.On("CreateProduct", ctx, mock.Anything).Return(nil, errors.New("connection refused")).Once()
	_, err := Submit(ctx, teeDraft(t), creator, nil)
	requireFormError(t, err, MsgCreateFailed)

	creator.On("CreateProduct", ctx, mock.Anything).Return(nil, &client.APIError{
		StatusCode: http.StatusInternalServerError,
		Message:    "Internal server error",
	}).Once()
	_, err = Submit(ctx, teeDraft(t), creator, nil)
	requireFormError(t, err, MsgCreateFailed)
}
