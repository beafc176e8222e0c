package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/voltworks/ev-service-api/internal/core/domain"
	"github.com/voltworks/ev-service-api/internal/core/ports"
)

const partsCollection = "parts"

// PartRepository implements ports.PartRepository on MongoDB.
type PartRepository struct {
	coll *mongo.Collection
}

func NewPartRepository(db *mongo.Database) *PartRepository {
	return &PartRepository{coll: db.Collection(partsCollection)}
}

func (r *PartRepository) Create(ctx context.Context, p *domain.Part) (*domain.Part, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	p.ID = primitive.NewObjectID().Hex()
	if _, err := r.coll.InsertOne(ctx, p); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrPartExists
		}
		return nil, fmt.Errorf("insert part: %w", err)
	}
	return p, nil
}

func (r *PartRepository) FindBySKU(ctx context.Context, sku string) (*domain.Part, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Part
	if err := r.coll.FindOne(ctx, bson.M{"sku": sku}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPartNotFound
		}
		return nil, fmt.Errorf("find part: %w", err)
	}
	return &p, nil
}

func (r *PartRepository) List(ctx context.Context, filter ports.ListPartsFilter) ([]*domain.Part, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Search != "" {
		pattern := primitive.Regex{Pattern: filter.Search, Options: "i"}
		query["$or"] = bson.A{
			bson.M{"sku": pattern},
			bson.M{"name": pattern},
		}
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count parts: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "sku", Value: 1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list parts: %w", err)
	}
	defer cursor.Close(ctx)

	var parts []*domain.Part
	for cursor.Next(ctx) {
		var p domain.Part
		if err := cursor.Decode(&p); err != nil {
			return nil, 0, fmt.Errorf("decode part: %w", err)
		}
		parts = append(parts, &p)
	}
	return parts, total, cursor.Err()
}

// AdjustStock applies delta atomically. For negative deltas the filter
// requires enough stock, so the count can never go below zero.
func (r *PartRepository) AdjustStock(ctx context.Context, sku string, delta int) (*domain.Part, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"sku": sku}
	if delta < 0 {
		filter["stock"] = bson.M{"$gte": -delta}
	}

	update := bson.M{
		"$inc": bson.M{"stock": delta},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var p domain.Part
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Distinguish a missing part from a stock shortfall.
			if _, findErr := r.FindBySKU(ctx, sku); findErr == nil {
				return nil, domain.ErrInsufficientStock
			}
			return nil, domain.ErrPartNotFound
		}
		return nil, fmt.Errorf("adjust stock: %w", err)
	}
	return &p, nil
}

func (r *PartRepository) Delete(ctx context.Context, sku string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"sku": sku})
	if err != nil {
		return fmt.Errorf("delete part: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPartNotFound
	}
	return nil
}

// EnsureIndexes creates the unique SKU index.
func (r *PartRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "sku", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
