package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/guttosm/pizza-cart/internal/domain/model"
)

// CatalogRepository reads the pizza catalog from its MongoDB collections.
type CatalogRepository struct {
	db *MongoDB
}

// NewCatalogRepository creates a new catalog repository.
func NewCatalogRepository(db *MongoDB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// Catalog loads every catalog collection ordered by id.
func (r *CatalogRepository) Catalog(ctx context.Context) (*model.Catalog, error) {
	cat := model.EmptyCatalog()

	if err := findAll(ctx, r.db.Doughs, &cat.Doughs); err != nil {
		return nil, fmt.Errorf("load doughs: %w", err)
	}
	if err := findAll(ctx, r.db.Sizes, &cat.Sizes); err != nil {
		return nil, fmt.Errorf("load sizes: %w", err)
	}
	if err := findAll(ctx, r.db.Sauces, &cat.Sauces); err != nil {
		return nil, fmt.Errorf("load sauces: %w", err)
	}
	if err := findAll(ctx, r.db.Ingredients, &cat.Ingredients); err != nil {
		return nil, fmt.Errorf("load ingredients: %w", err)
	}
	if err := findAll(ctx, r.db.Misc, &cat.Misc); err != nil {
		return nil, fmt.Errorf("load misc: %w", err)
	}

	return cat, nil
}

// SeedIfEmpty inserts cat when the catalog collections hold no records.
// It reports whether anything was written.
func (r *CatalogRepository) SeedIfEmpty(ctx context.Context, cat *model.Catalog) (bool, error) {
	if cat == nil || cat.IsEmpty() {
		return false, nil
	}

	for _, coll := range r.collections() {
		count, err := coll.EstimatedDocumentCount(ctx)
		if err != nil {
			return false, err
		}
		if count > 0 {
			return false, nil
		}
	}

	if err := insertAll(ctx, r.db.Doughs, cat.Doughs); err != nil {
		return false, fmt.Errorf("seed doughs: %w", err)
	}
	if err := insertAll(ctx, r.db.Sizes, cat.Sizes); err != nil {
		return false, fmt.Errorf("seed sizes: %w", err)
	}
	if err := insertAll(ctx, r.db.Sauces, cat.Sauces); err != nil {
		return false, fmt.Errorf("seed sauces: %w", err)
	}
	if err := insertAll(ctx, r.db.Ingredients, cat.Ingredients); err != nil {
		return false, fmt.Errorf("seed ingredients: %w", err)
	}
	if err := insertAll(ctx, r.db.Misc, cat.Misc); err != nil {
		return false, fmt.Errorf("seed misc: %w", err)
	}

	return true, nil
}

func (r *CatalogRepository) collections() []*mongo.Collection {
	return []*mongo.Collection{r.db.Doughs, r.db.Sizes, r.db.Sauces, r.db.Ingredients, r.db.Misc}
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, out *[]T) error {
	cursor, err := coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"_id": 1}))
	if err != nil {
		return err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	records := make([]T, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return err
	}
	*out = records
	return nil
}

func insertAll[T any](ctx context.Context, coll *mongo.Collection, records []T) error {
	if len(records) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(records))
	for _, rec := range records {
		docs = append(docs, rec)
	}
	_, err := coll.InsertMany(ctx, docs)
	return err
}
