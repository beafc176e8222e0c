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
)

const techniciansCollection = "technicians"

// TechnicianRepository implements ports.TechnicianRepository on MongoDB.
type TechnicianRepository struct {
	coll *mongo.Collection
}

func NewTechnicianRepository(db *mongo.Database) *TechnicianRepository {
	return &TechnicianRepository{coll: db.Collection(techniciansCollection)}
}

func (r *TechnicianRepository) Create(ctx context.Context, t *domain.Technician) (*domain.Technician, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	t.ID = primitive.NewObjectID().Hex()
	if _, err := r.coll.InsertOne(ctx, t); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrTechnicianExists
		}
		return nil, fmt.Errorf("insert technician: %w", err)
	}
	return t, nil
}

func (r *TechnicianRepository) FindByID(ctx context.Context, id string) (*domain.Technician, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *TechnicianRepository) FindByUserID(ctx context.Context, userID string) (*domain.Technician, error) {
	return r.findOne(ctx, bson.M{"user_id": userID})
}

func (r *TechnicianRepository) findOne(ctx context.Context, filter bson.M) (*domain.Technician, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var t domain.Technician
	if err := r.coll.FindOne(ctx, filter).Decode(&t); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTechnicianNotFound
		}
		return nil, fmt.Errorf("find technician: %w", err)
	}
	return &t, nil
}

func (r *TechnicianRepository) List(ctx context.Context, activeOnly bool) ([]*domain.Technician, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if activeOnly {
		query["active"] = true
	}

	cursor, err := r.coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list technicians: %w", err)
	}
	defer cursor.Close(ctx)

	var technicians []*domain.Technician
	for cursor.Next(ctx) {
		var t domain.Technician
		if err := cursor.Decode(&t); err != nil {
			return nil, fmt.Errorf("decode technician: %w", err)
		}
		technicians = append(technicians, &t)
	}
	return technicians, cursor.Err()
}

func (r *TechnicianRepository) AddCertificate(ctx context.Context, id string, cert domain.Certificate) (*domain.Technician, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{
		"$push": bson.M{"certificates": cert},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var t domain.Technician
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&t); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTechnicianNotFound
		}
		return nil, fmt.Errorf("add certificate: %w", err)
	}
	return &t, nil
}

func (r *TechnicianRepository) SetActive(ctx context.Context, id string, active bool) (*domain.Technician, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"active": active, "updated_at": time.Now().UTC()}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var t domain.Technician
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&t); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTechnicianNotFound
		}
		return nil, fmt.Errorf("set active: %w", err)
	}
	return &t, nil
}

// EnsureIndexes creates the one-profile-per-account index.
func (r *TechnicianRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
