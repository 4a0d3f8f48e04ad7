package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"

	"unimarket/internal/domain/entity"
	"unimarket/internal/domain/repository"
)

// productRepository implements repository.ProductRepository on the Products
// collection. The stored schema predates the single-title model: documents
// carry both "title" and "name", kept in sync on every write, and either is
// accepted on read. That compatibility lives entirely in this codec; the
// entity only ever sees the canonical Title.
type productRepository struct {
	client *firestore.Client
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(client *firestore.Client) repository.ProductRepository {
	return &productRepository{client: client}
}

// FindByID retrieves a single product by its document key.
func (r *productRepository) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	snap, err := r.client.Collection(productsCollection).Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to get product")
	}

	return decodeProduct(snap.Ref.ID, snap.Data()), nil
}

// List returns all products matching the filter's equality clauses.
func (r *productRepository) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	q := r.client.Collection(productsCollection).Query
	if filter.SellerID != "" {
		q = q.Where("sellerId", "==", filter.SellerID)
	}
	if filter.Status != "" {
		q = q.Where("status", "==", filter.Status.String())
	}
	if filter.Category != "" {
		q = q.Where("category", "==", filter.Category)
	}

	snaps, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	products := make([]*entity.Product, 0, len(snaps))
	for _, snap := range snaps {
		products = append(products, decodeProduct(snap.Ref.ID, snap.Data()))
	}

	return products, nil
}

// Create persists a new product document. The store assigns the timestamp;
// status defaults to available when unset.
func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	status := product.Status
	if status == "" {
		status = entity.ProductAvailable
	}

	doc := map[string]any{
		"title":       product.Title,
		"name":        product.Title, // kept in sync with title for pre-migration readers
		"description": product.Description,
		"price":       product.Price,
		"images":      product.Images,
		"category":    product.Category,
		"sellerId":    product.SellerID,
		"status":      status.String(),
		"createdAt":   firestore.ServerTimestamp,
	}

	if _, err := r.client.Collection(productsCollection).Doc(product.ID).Set(ctx, doc); err != nil {
		return errors.Wrap(err, "failed to create product")
	}

	return nil
}

// Update applies a partial-field merge; unspecified fields are left untouched.
func (r *productRepository) Update(ctx context.Context, id string, patch repository.ProductPatch) error {
	var updates []firestore.Update
	if patch.Title != nil {
		updates = append(updates,
			firestore.Update{Path: "title", Value: *patch.Title},
			firestore.Update{Path: "name", Value: *patch.Title},
		)
	}
	if patch.Description != nil {
		updates = append(updates, firestore.Update{Path: "description", Value: *patch.Description})
	}
	if patch.Price != nil {
		updates = append(updates, firestore.Update{Path: "price", Value: *patch.Price})
	}
	if patch.Images != nil {
		updates = append(updates, firestore.Update{Path: "images", Value: *patch.Images})
	}
	if patch.Category != nil {
		updates = append(updates, firestore.Update{Path: "category", Value: *patch.Category})
	}
	if patch.Status != nil {
		updates = append(updates, firestore.Update{Path: "status", Value: patch.Status.String()})
	}
	if len(updates) == 0 {
		return nil
	}

	if _, err := r.client.Collection(productsCollection).Doc(id).Update(ctx, updates); err != nil {
		if isNotFound(err) {
			return repository.ErrProductNotFound
		}

		return errors.Wrap(err, "failed to update product")
	}

	return nil
}

// SetStatus flips the listing's sale status without touching other fields.
func (r *productRepository) SetStatus(ctx context.Context, id string, status entity.ProductStatus) error {
	updates := []firestore.Update{{Path: "status", Value: status.String()}}
	if _, err := r.client.Collection(productsCollection).Doc(id).Update(ctx, updates); err != nil {
		if isNotFound(err) {
			return repository.ErrProductNotFound
		}

		return errors.Wrap(err, "failed to update product status")
	}

	return nil
}

// Delete permanently removes the document. The store treats deletion of an
// absent id as success, and that contract is passed through unchanged.
func (r *productRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.client.Collection(productsCollection).Doc(id).Delete(ctx); err != nil {
		return errors.Wrap(err, "failed to delete product")
	}

	return nil
}

func decodeProduct(id string, data map[string]any) *entity.Product {
	title := docString(data, "title")
	name := docString(data, "name")
	canonical := title
	if canonical == "" {
		canonical = name
	}

	p := &entity.Product{
		ID:          id,
		Title:       canonical,
		Description: docString(data, "description"),
		Price:       docFloat(data, "price"),
		Images:      docStringSlice(data, "images"),
		Category:    docString(data, "category"),
		SellerID:    docString(data, "sellerId"),
		Status:      entity.ProductStatus(docString(data, "status")),
		CreatedAt:   docTime(data, "createdAt"),
	}
	// Pre-migration records sometimes carry a name that diverged from the
	// title; keep it so legacy image paths still resolve.
	if name != "" && name != canonical {
		p.LegacyName = name
	}

	return p
}
