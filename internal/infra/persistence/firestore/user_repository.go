package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"

	"unimarket/internal/domain/entity"
	"unimarket/internal/domain/repository"
)

// userRepository implements repository.UserRepository on the Users
// collection. Documents are keyed by email address.
type userRepository struct {
	client *firestore.Client
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(client *firestore.Client) repository.UserRepository {
	return &userRepository{client: client}
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	snap, err := r.client.Collection(usersCollection).Doc(email).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to get user")
	}

	return decodeUser(snap), nil
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	doc := map[string]any{
		"email":          user.Email,
		"firstName":      user.FirstName,
		"lastName":       user.LastName,
		"role":           user.Role.String(),
		"products":       user.Products,
		"paymentDetails": user.PaymentDetails,
		"ratings":        encodeRatings(user.Ratings),
		"fcmTokens":      user.FCMTokens,
		"passwordHash":   user.PasswordHash,
		"createdAt":      firestore.ServerTimestamp,
	}
	if doc["products"] == nil {
		doc["products"] = []string{}
	}
	if doc["fcmTokens"] == nil {
		doc["fcmTokens"] = []string{}
	}
	if doc["paymentDetails"] == nil {
		doc["paymentDetails"] = map[string]any{}
	}

	if _, err := r.client.Collection(usersCollection).Doc(user.Email).Set(ctx, doc); err != nil {
		return errors.Wrap(err, "failed to create user")
	}

	return nil
}

// AddProduct uses array-union so re-adding an id the user already owns is a
// no-op instead of a duplicate.
func (r *userRepository) AddProduct(ctx context.Context, email, productID string) error {
	return r.update(ctx, email, "failed to add product to user", firestore.Update{
		Path:  "products",
		Value: firestore.ArrayUnion(productID),
	})
}

func (r *userRepository) RemoveProduct(ctx context.Context, email, productID string) error {
	return r.update(ctx, email, "failed to remove product from user", firestore.Update{
		Path:  "products",
		Value: firestore.ArrayRemove(productID),
	})
}

func (r *userRepository) AppendRating(ctx context.Context, email string, rating entity.Rating) error {
	createdAt := rating.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	return r.update(ctx, email, "failed to append rating", firestore.Update{
		Path: "ratings",
		Value: firestore.ArrayUnion(map[string]any{
			"score":      rating.Score,
			"comment":    rating.Comment,
			"fromUserId": rating.FromUserID,
			"createdAt":  createdAt,
		}),
	})
}

func (r *userRepository) AddFCMToken(ctx context.Context, email, token string) error {
	return r.update(ctx, email, "failed to register device token", firestore.Update{
		Path:  "fcmTokens",
		Value: firestore.ArrayUnion(token),
	})
}

// UpdatePaymentDetails merges keys via dotted field paths so sibling entries
// in the mapping survive the write.
func (r *userRepository) UpdatePaymentDetails(ctx context.Context, email string, details map[string]any) error {
	if len(details) == 0 {
		return nil
	}

	updates := make([]firestore.Update, 0, len(details))
	for key, value := range details {
		updates = append(updates, firestore.Update{
			Path:  "paymentDetails." + key,
			Value: value,
		})
	}

	return r.update(ctx, email, "failed to update payment details", updates...)
}

func (r *userRepository) update(ctx context.Context, email, failMsg string, updates ...firestore.Update) error {
	if _, err := r.client.Collection(usersCollection).Doc(email).Update(ctx, updates); err != nil {
		if isNotFound(err) {
			return repository.ErrUserNotFound
		}

		return errors.Wrap(err, failMsg)
	}

	return nil
}

func decodeUser(snap *firestore.DocumentSnapshot) *entity.User {
	data := snap.Data()

	return &entity.User{
		Email:          snap.Ref.ID,
		FirstName:      docString(data, "firstName"),
		LastName:       docString(data, "lastName"),
		Role:           entity.Role(docString(data, "role")),
		Products:       docStringSlice(data, "products"),
		PaymentDetails: docMap(data, "paymentDetails"),
		Ratings:        decodeRatings(data["ratings"]),
		FCMTokens:      docStringSlice(data, "fcmTokens"),
		PasswordHash:   docString(data, "passwordHash"),
		CreatedAt:      docTime(data, "createdAt"),
	}
}

func encodeRatings(ratings []entity.Rating) []map[string]any {
	encoded := make([]map[string]any, 0, len(ratings))
	for _, rating := range ratings {
		encoded = append(encoded, map[string]any{
			"score":      rating.Score,
			"comment":    rating.Comment,
			"fromUserId": rating.FromUserID,
			"createdAt":  rating.CreatedAt,
		})
	}

	return encoded
}

func decodeRatings(raw any) []entity.Rating {
	items, ok := raw.([]any)
	if !ok {
		return nil
	}

	ratings := make([]entity.Rating, 0, len(items))
	for _, item := range items {
		data, ok := item.(map[string]any)
		if !ok {
			continue
		}
		ratings = append(ratings, entity.Rating{
			Score:      docInt(data, "score"),
			Comment:    docString(data, "comment"),
			FromUserID: docString(data, "fromUserId"),
			CreatedAt:  docTime(data, "createdAt"),
		})
	}

	return ratings
}
