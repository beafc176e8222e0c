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

const (
	servicesCollection = "services"
	packagesCollection = "service_packages"
)

// CatalogRepository implements ports.CatalogRepository on MongoDB using
// two collections: services and service_packages.
type CatalogRepository struct {
	services *mongo.Collection
	packages *mongo.Collection
}

func NewCatalogRepository(db *mongo.Database) *CatalogRepository {
	return &CatalogRepository{
		services: db.Collection(servicesCollection),
		packages: db.Collection(packagesCollection),
	}
}

func (r *CatalogRepository) CreateService(ctx context.Context, s *domain.MaintenanceService) (*domain.MaintenanceService, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	s.ID = primitive.NewObjectID().Hex()
	if _, err := r.services.InsertOne(ctx, s); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrServiceExists
		}
		return nil, fmt.Errorf("insert service: %w", err)
	}
	return s, nil
}

func (r *CatalogRepository) FindServiceByID(ctx context.Context, id string) (*domain.MaintenanceService, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var s domain.MaintenanceService
	if err := r.services.FindOne(ctx, bson.M{"_id": id}).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrServiceNotFound
		}
		return nil, fmt.Errorf("find service: %w", err)
	}
	return &s, nil
}

func (r *CatalogRepository) FindServicesByIDs(ctx context.Context, ids []string) ([]*domain.MaintenanceService, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.services.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("find services: %w", err)
	}
	defer cursor.Close(ctx)

	var services []*domain.MaintenanceService
	for cursor.Next(ctx) {
		var s domain.MaintenanceService
		if err := cursor.Decode(&s); err != nil {
			return nil, fmt.Errorf("decode service: %w", err)
		}
		services = append(services, &s)
	}
	return services, cursor.Err()
}

func (r *CatalogRepository) ListServices(ctx context.Context, filter ports.ListServicesFilter) ([]*domain.MaintenanceService, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.ActiveOnly {
		query["active"] = true
	}

	total, err := r.services.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count services: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cursor, err := r.services.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list services: %w", err)
	}
	defer cursor.Close(ctx)

	var services []*domain.MaintenanceService
	for cursor.Next(ctx) {
		var s domain.MaintenanceService
		if err := cursor.Decode(&s); err != nil {
			return nil, 0, fmt.Errorf("decode service: %w", err)
		}
		services = append(services, &s)
	}
	return services, total, cursor.Err()
}

func (r *CatalogRepository) UpdateService(ctx context.Context, id string, update ports.ServiceUpdate) (*domain.MaintenanceService, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"updated_at": time.Now().UTC()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Price != nil {
		set["price"] = *update.Price
	}
	if update.DurationMinutes != nil {
		set["duration_minutes"] = *update.DurationMinutes
	}
	if update.Active != nil {
		set["active"] = *update.Active
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var s domain.MaintenanceService
	if err := r.services.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrServiceNotFound
		}
		return nil, fmt.Errorf("update service: %w", err)
	}
	return &s, nil
}

func (r *CatalogRepository) DeleteService(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.services.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete service: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrServiceNotFound
	}
	return nil
}

func (r *CatalogRepository) CreatePackage(ctx context.Context, p *domain.ServicePackage) (*domain.ServicePackage, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	p.ID = primitive.NewObjectID().Hex()
	if _, err := r.packages.InsertOne(ctx, p); err != nil {
		return nil, fmt.Errorf("insert package: %w", err)
	}
	return p, nil
}

func (r *CatalogRepository) FindPackageByID(ctx context.Context, id string) (*domain.ServicePackage, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.ServicePackage
	if err := r.packages.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPackageNotFound
		}
		return nil, fmt.Errorf("find package: %w", err)
	}
	return &p, nil
}

func (r *CatalogRepository) ListPackages(ctx context.Context, activeOnly bool) ([]*domain.ServicePackage, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if activeOnly {
		query["active"] = true
	}

	cursor, err := r.packages.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}
	defer cursor.Close(ctx)

	var packages []*domain.ServicePackage
	for cursor.Next(ctx) {
		var p domain.ServicePackage
		if err := cursor.Decode(&p); err != nil {
			return nil, fmt.Errorf("decode package: %w", err)
		}
		packages = append(packages, &p)
	}
	return packages, cursor.Err()
}

func (r *CatalogRepository) DeletePackage(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.packages.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete package: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPackageNotFound
	}
	return nil
}
