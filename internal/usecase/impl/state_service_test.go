package impl

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unimarket/internal/domain/entity"
	"unimarket/internal/domain/repository"
	mockRepo "unimarket/internal/mocks/repository"
	"unimarket/internal/usecase"
)

// memMirror is an in-memory StateMirror for exercising the container's
// persistence behavior without a real store.
type memMirror struct {
	mu     sync.Mutex
	data   map[string]*entity.StoredState
	loads  int
	saves  int
	closed bool
}

func newMemMirror() *memMirror {
	return &memMirror{data: make(map[string]*entity.StoredState)}
}

func (m *memMirror) Load(_ context.Context, ownerID string) (*entity.StoredState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads++
	state, ok := m.data[ownerID]
	if !ok {
		return nil, nil
	}

	return state.Clone(), nil
}

func (m *memMirror) Save(_ context.Context, ownerID string, state *entity.StoredState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	m.data[ownerID] = state.Clone()

	return nil
}

func (m *memMirror) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true

	return nil
}

type stateServiceFixtures struct {
	service     usecase.StateUsecase
	mirror      *memMirror
	productRepo *mockRepo.MockProductRepository
	userRepo    *mockRepo.MockUserRepository
}

func createTestStateService(t *testing.T) stateServiceFixtures {
	t.Helper()
	mirror := newMemMirror()
	productRepo := new(mockRepo.MockProductRepository)
	userRepo := new(mockRepo.MockUserRepository)
	service := NewStateService(StateServiceParams{
		Mirror:      mirror,
		ProductRepo: productRepo,
		UserRepo:    userRepo,
		Logger:      slog.Default(),
	})

	return stateServiceFixtures{
		service:     service,
		mirror:      mirror,
		productRepo: productRepo,
		userRepo:    userRepo,
	}
}

func availableProduct(id, title string, price float64) *entity.Product {
	return &entity.Product{
		ID:       id,
		Title:    title,
		Price:    price,
		SellerID: "seller@uni.edu",
		Status:   entity.ProductAvailable,
	}
}

const owner = "alice@uni.edu"

func TestStateService_AddToCart_RepeatedAddIncrementsQuantity(t *testing.T) {
	fx := createTestStateService(t)
	ctx := context.Background()

	fx.productRepo.On("FindByID", ctx, "prod-1").
		Return(availableProduct("prod-1", "Calculus Textbook", 25), nil)

	_, err := fx.service.AddToCart(ctx, owner, "prod-1")
	require.NoError(t, err)

	state, err := fx.service.AddToCart(ctx, owner, "prod-1")
	require.NoError(t, err)

	require.Len(t, state.CartProduct, 1)
	assert.Equal(t, 2, state.CartProduct[0].Quantity)
	assert.Equal(t, "Calculus Textbook", state.CartProduct[0].Title)
}

func TestStateService_AddToCart_ResolvesMainImage(t *testing.T) {
	fx := createTestStateService(t)
	ctx := context.Background()

	withImages := availableProduct("prod-1", "Lamp", 10)
	withImages.Images = []string{"/uploads/lamp-front.webp", "/uploads/lamp-side.webp"}
	fx.productRepo.On("FindByID", ctx, "prod-1").Return(withImages, nil)

	legacyOnly := availableProduct("prod-2", "Chair", 15)
	legacyOnly.LegacyName = "old-chair"
	fx.productRepo.On("FindByID", ctx, "prod-2").Return(legacyOnly, nil)

	titleOnly := availableProduct("prod-3", "Desk", 30)
	fx.productRepo.On("FindByID", ctx, "prod-3").Return(titleOnly, nil)

	_, err := fx.service.AddToCart(ctx, owner, "prod-1")
	require.NoError(t, err)
	_, err = fx.service.AddToCart(ctx, owner, "prod-2")
	require.NoError(t, err)
	state, err := fx.service.AddToCart(ctx, owner, "prod-3")
	require.NoError(t, err)

	require.Len(t, state.CartProduct, 3)
	assert.Equal(t, "/uploads/lamp-front.webp", state.CartProduct[0].MainImage)
	assert.Equal(t, "/images/products/old-chair.webp", state.CartProduct[1].MainImage)
	assert.Equal(t, "/images/products/Desk.webp", state.CartProduct[2].MainImage)
}

func TestStateService_AddToCart_UnknownProduct(t *testing.T) {
	fx := createTestStateService(t)
	ctx := context.Background()

	fx.productRepo.On("FindByID", ctx, "missing").
		Return(nil, repository.ErrProductNotFound)

	_, err := fx.service.AddToCart(ctx, owner, "missing")
	assert.Error(t, err)
}

func TestStateService_DecreaseQuantity_FloorsAtOne(t *testing.T) {
	fx := createTestStateService(t)
	ctx := context.Background()

	fx.productRepo.On("FindByID", ctx, "prod-1").
		Return(availableProduct("prod-1", "Lamp", 10), nil)

	_, err := fx.service.AddToCart(ctx, owner, "prod-1")
	require.NoError(t, err)
	_, err = fx.service.AddToCart(ctx, owner, "prod-1")
	require.NoError(t, err)

	state, err := fx.service.DecreaseQuantity(ctx, owner, "prod-1")
	require.NoError(t, err)
	assert.Equal(t, 1, state.CartProduct[0].Quantity)

	// Decreasing past one keeps the line at one instead of removing it.
	state, err = fx.service.DecreaseQuantity(ctx, owner, "prod-1")
	require.NoError(t, err)
	require.Len(t, state.CartProduct, 1)
	assert.Equal(t, 1, state.CartProduct[0].Quantity)
}

func TestStateService_DecreaseQuantity_AbsentProductIsNoop(t *testing.T) {
	fx := createTestStateService(t)
	ctx := context.Background()

	state, err := fx.service.DecreaseQuantity(ctx, owner, "never-added")
	require.NoError(t, err)
	assert.Empty(t, state.CartProduct)
}

func TestStateService_RemoveFromCart(t *testing.T) {
	fx := createTestStateService(t)
	ctx := context.Background()

	fx.productRepo.On("FindByID", ctx, "prod-1").
		Return(availableProduct("prod-1", "Lamp", 10), nil)
	fx.productRepo.On("FindByID", ctx, "prod-2").
		Return(availableProduct("prod-2", "Chair", 15), nil)

	_, err := fx.service.AddToCart(ctx, owner, "prod-1")
	require.NoError(t, err)
	_, err = fx.service.AddToCart(ctx, owner, "prod-2")
	require.NoError(t, err)

	state, err := fx.service.RemoveFromCart(ctx, owner, "prod-1")
	require.NoError(t, err)
	require.Len(t, state.CartProduct, 1)
	assert.Equal(t, "prod-2", state.CartProduct[0].ID)
}

func TestStateService_ResetCart_ThenAddStartsFresh(t *testing.T) {
	fx := createTestStateService(t)
	ctx := context.Background()

	fx.productRepo.On("FindByID", ctx, "prod-1").
		Return(availableProduct("prod-1", "Lamp", 10), nil)

	_, err := fx.service.AddToCart(ctx, owner, "prod-1")
	require.NoError(t, err)
	_, err = fx.service.AddToCart(ctx, owner, "prod-1")
	require.NoError(t, err)

	state, err := fx.service.ResetCart(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, state.CartProduct)

	state, err = fx.service.AddToCart(ctx, owner, "prod-1")
	require.NoError(t, err)
	require.Len(t, state.CartProduct, 1)
	assert.Equal(t, 1, state.CartProduct[0].Quantity)
}

func TestStateService_ToggleFavorite_Parity(t *testing.T) {
	fx := createTestStateService(t)
	ctx := context.Background()

	fx.productRepo.On("FindByID", ctx, "prod-1").
		Return(availableProduct("prod-1", "Lamp", 10), nil)

	state, err := fx.service.ToggleFavorite(ctx, owner, "prod-1")
	require.NoError(t, err)
	require.Len(t, state.FavoriteProduct, 1)
	assert.Equal(t, 1, state.FavoriteProduct[0].Quantity)

	state, err = fx.service.ToggleFavorite(ctx, owner, "prod-1")
	require.NoError(t, err)
	assert.Empty(t, state.FavoriteProduct)

	// An odd number of toggles leaves the product favorited.
	state, err = fx.service.ToggleFavorite(ctx, owner, "prod-1")
	require.NoError(t, err)
	assert.Len(t, state.FavoriteProduct, 1)
}

func TestStateService_FavoritesIndependentOfCart(t *testing.T) {
	fx := createTestStateService(t)
	ctx := context.Background()

	fx.productRepo.On("FindByID", ctx, "prod-1").
		Return(availableProduct("prod-1", "Lamp", 10), nil)

	_, err := fx.service.AddToCart(ctx, owner, "prod-1")
	require.NoError(t, err)
	_, err = fx.service.ToggleFavorite(ctx, owner, "prod-1")
	require.NoError(t, err)

	state, err := fx.service.ResetCart(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, state.CartProduct)
	assert.Len(t, state.FavoriteProduct, 1)

	state, err = fx.service.ResetFavorite(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, state.FavoriteProduct)
}

func TestStateService_EveryMutationPersists(t *testing.T) {
	fx := createTestStateService(t)
	ctx := context.Background()

	fx.productRepo.On("FindByID", ctx, "prod-1").
		Return(availableProduct("prod-1", "Lamp", 10), nil)

	_, err := fx.service.AddToCart(ctx, owner, "prod-1")
	require.NoError(t, err)
	_, err = fx.service.ToggleFavorite(ctx, owner, "prod-1")
	require.NoError(t, err)
	_, err = fx.service.ResetCart(ctx, owner)
	require.NoError(t, err)

	assert.Equal(t, 3, fx.mirror.saves)

	persisted := fx.mirror.data[owner]
	require.NotNil(t, persisted)
	assert.Empty(t, persisted.CartProduct)
	assert.Len(t, persisted.FavoriteProduct, 1)
}

func TestStateService_RehydratesFromMirrorOnce(t *testing.T) {
	fx := createTestStateService(t)
	ctx := context.Background()

	fx.mirror.data[owner] = &entity.StoredState{
		CartProduct: []entity.CartLineItem{
			{Product: entity.Product{ID: "prod-9", Title: "Bike"}, Quantity: 3},
		},
	}

	state, err := fx.service.GetState(ctx, owner)
	require.NoError(t, err)
	require.Len(t, state.CartProduct, 1)
	assert.Equal(t, 3, state.CartProduct[0].Quantity)

	_, err = fx.service.GetState(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, 1, fx.mirror.loads)
}

func TestStateService_RefreshUser(t *testing.T) {
	fx := createTestStateService(t)
	ctx := context.Background()

	account := &entity.User{Email: owner, FirstName: "Alice"}
	fx.userRepo.On("FindByEmail", ctx, owner).Return(account, nil).Once()

	user, err := fx.service.RefreshUser(ctx, owner)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "Alice", user.FirstName)

	state, err := fx.service.GetState(ctx, owner)
	require.NoError(t, err)
	require.NotNil(t, state.CurrentUser)
	assert.Equal(t, owner, state.CurrentUser.Email)

	// A failed fetch clears the cached user without surfacing an error.
	fx.userRepo.On("FindByEmail", ctx, owner).Return(nil, repository.ErrUserNotFound)

	user, err = fx.service.RefreshUser(ctx, owner)
	require.NoError(t, err)
	assert.Nil(t, user)

	state, err = fx.service.GetState(ctx, owner)
	require.NoError(t, err)
	assert.Nil(t, state.CurrentUser)
}

func TestStateService_ReturnsCopies(t *testing.T) {
	fx := createTestStateService(t)
	ctx := context.Background()

	fx.productRepo.On("FindByID", ctx, "prod-1").
		Return(availableProduct("prod-1", "Lamp", 10), nil)

	state, err := fx.service.AddToCart(ctx, owner, "prod-1")
	require.NoError(t, err)

	// Mutating the returned snapshot must not leak into the container.
	state.CartProduct[0].Quantity = 99

	fresh, err := fx.service.GetState(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, 1, fresh.CartProduct[0].Quantity)
}
