package impl

import (
	"context"
	"log/slog"
	"sync"

	deliverycontext "unimarket/internal/delivery/context"
	"unimarket/internal/domain/entity"
	domainerrors "unimarket/internal/domain/errors"
	"unimarket/internal/domain/repository"
	"unimarket/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// stateService implements the StateUsecase interface. It keeps each owner's
// cart and favorites in memory behind a single lock and mirrors every
// mutation to the key-value store, so state survives restarts and is shared
// across requests.
type stateService struct {
	mu     sync.Mutex
	states map[string]*entity.StoredState

	mirror      repository.StateMirror
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	logger      *slog.Logger
}

// StateServiceParams holds dependencies for StateService, injected by Fx.
type StateServiceParams struct {
	fx.In

	Mirror      repository.StateMirror
	ProductRepo repository.ProductRepository
	UserRepo    repository.UserRepository
	Logger      *slog.Logger
}

// NewStateService is the constructor for stateService.
func NewStateService(params StateServiceParams) usecase.StateUsecase {
	return &stateService{
		states:      make(map[string]*entity.StoredState),
		mirror:      params.Mirror,
		productRepo: params.ProductRepo,
		userRepo:    params.UserRepo,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *stateService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// loadLocked returns the owner's live state, rehydrating it from the mirror
// on first touch. Callers must hold the lock.
func (srv *stateService) loadLocked(ctx context.Context, ownerID string) (*entity.StoredState, error) {
	if state, ok := srv.states[ownerID]; ok {
		return state, nil
	}

	state, err := srv.mirror.Load(ctx, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to rehydrate state")
	}
	if state == nil {
		state = &entity.StoredState{}
	}
	srv.states[ownerID] = state

	return state, nil
}

// persistLocked writes the owner's full snapshot to the mirror. Callers must
// hold the lock.
func (srv *stateService) persistLocked(ctx context.Context, ownerID string, state *entity.StoredState) error {
	if err := srv.mirror.Save(ctx, ownerID, state); err != nil {
		return errors.Wrap(err, "failed to persist state")
	}

	return nil
}

// mutate runs fn against the owner's live state under the lock and persists
// the result, returning a copy for the caller.
func (srv *stateService) mutate(ctx context.Context, ownerID string, fn func(*entity.StoredState) error) (*entity.StoredState, error) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	state, err := srv.loadLocked(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if err := fn(state); err != nil {
		return nil, err
	}

	if err := srv.persistLocked(ctx, ownerID, state); err != nil {
		return nil, err
	}

	return state.Clone(), nil
}

// GetState returns a copy of the owner's current snapshot.
func (srv *stateService) GetState(ctx context.Context, ownerID string) (*entity.StoredState, error) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	state, err := srv.loadLocked(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	return state.Clone(), nil
}

// AddToCart puts the product in the cart, or increments its quantity when it
// is already there.
func (srv *stateService) AddToCart(ctx context.Context, ownerID, productID string) (*entity.StoredState, error) {
	product, err := srv.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to fetch product")
	}

	return srv.mutate(ctx, ownerID, func(state *entity.StoredState) error {
		for i := range state.CartProduct {
			if state.CartProduct[i].ID == productID {
				state.CartProduct[i].Quantity++

				return nil
			}
		}

		state.CartProduct = append(state.CartProduct, entity.CartLineItem{
			Product:   *product,
			Quantity:  1,
			MainImage: product.DisplayImage(),
		})

		return nil
	})
}

// DecreaseQuantity lowers a line item's quantity by one, flooring at one.
// Products not in the cart are a silent no-op.
func (srv *stateService) DecreaseQuantity(ctx context.Context, ownerID, productID string) (*entity.StoredState, error) {
	return srv.mutate(ctx, ownerID, func(state *entity.StoredState) error {
		for i := range state.CartProduct {
			if state.CartProduct[i].ID == productID {
				if state.CartProduct[i].Quantity > 1 {
					state.CartProduct[i].Quantity--
				}

				return nil
			}
		}

		return nil
	})
}

// RemoveFromCart drops the line item entirely.
func (srv *stateService) RemoveFromCart(ctx context.Context, ownerID, productID string) (*entity.StoredState, error) {
	return srv.mutate(ctx, ownerID, func(state *entity.StoredState) error {
		kept := state.CartProduct[:0]
		for _, item := range state.CartProduct {
			if item.ID != productID {
				kept = append(kept, item)
			}
		}
		state.CartProduct = kept

		return nil
	})
}

// ResetCart empties the cart.
func (srv *stateService) ResetCart(ctx context.Context, ownerID string) (*entity.StoredState, error) {
	return srv.mutate(ctx, ownerID, func(state *entity.StoredState) error {
		state.CartProduct = nil

		return nil
	})
}

// ToggleFavorite adds the product to favorites, or removes it when present.
func (srv *stateService) ToggleFavorite(ctx context.Context, ownerID, productID string) (*entity.StoredState, error) {
	product, err := srv.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to fetch product")
	}

	return srv.mutate(ctx, ownerID, func(state *entity.StoredState) error {
		for i, entry := range state.FavoriteProduct {
			if entry.ID == productID {
				state.FavoriteProduct = append(state.FavoriteProduct[:i], state.FavoriteProduct[i+1:]...)

				return nil
			}
		}

		state.FavoriteProduct = append(state.FavoriteProduct, entity.FavoriteEntry{
			Product:   *product,
			Quantity:  1,
			MainImage: product.DisplayImage(),
		})

		return nil
	})
}

// RemoveFromFavorite drops the favorite entry.
func (srv *stateService) RemoveFromFavorite(ctx context.Context, ownerID, productID string) (*entity.StoredState, error) {
	return srv.mutate(ctx, ownerID, func(state *entity.StoredState) error {
		kept := state.FavoriteProduct[:0]
		for _, entry := range state.FavoriteProduct {
			if entry.ID != productID {
				kept = append(kept, entry)
			}
		}
		state.FavoriteProduct = kept

		return nil
	})
}

// ResetFavorite empties the favorites list.
func (srv *stateService) ResetFavorite(ctx context.Context, ownerID string) (*entity.StoredState, error) {
	return srv.mutate(ctx, ownerID, func(state *entity.StoredState) error {
		state.FavoriteProduct = nil

		return nil
	})
}

// RefreshUser re-fetches the owner's account document into the cached
// currentUser slot. A failed fetch clears the slot and reports nil instead
// of propagating, matching the lenient accessor the storefront expects.
func (srv *stateService) RefreshUser(ctx context.Context, ownerID string) (*entity.User, error) {
	user, err := srv.userRepo.FindByEmail(ctx, ownerID)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Failed to refresh cached user",
				slog.String("owner_id", ownerID),
				slog.Any("error", err),
			)
		}
		user = nil
	}

	if _, mErr := srv.mutate(ctx, ownerID, func(state *entity.StoredState) error {
		state.CurrentUser = user

		return nil
	}); mErr != nil {
		return nil, mErr
	}

	return user, nil
}
