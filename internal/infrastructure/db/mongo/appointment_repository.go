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

const appointmentsCollection = "appointments"

// AppointmentRepository implements ports.AppointmentRepository on MongoDB.
type AppointmentRepository struct {
	coll *mongo.Collection
}

func NewAppointmentRepository(db *mongo.Database) *AppointmentRepository {
	return &AppointmentRepository{coll: db.Collection(appointmentsCollection)}
}

func (r *AppointmentRepository) Create(ctx context.Context, a *domain.Appointment) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	a.ID = primitive.NewObjectID().Hex()
	if _, err := r.coll.InsertOne(ctx, a); err != nil {
		return fmt.Errorf("insert appointment: %w", err)
	}
	return nil
}

func (r *AppointmentRepository) FindByCode(ctx context.Context, code string) (*domain.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var a domain.Appointment
	if err := r.coll.FindOne(ctx, bson.M{"code": code}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("find appointment: %w", err)
	}
	return &a, nil
}

func (r *AppointmentRepository) List(ctx context.Context, filter ports.ListAppointmentsFilter) ([]*domain.Appointment, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.CustomerID != "" {
		query["customer_id"] = filter.CustomerID
	}
	if filter.TechnicianID != "" {
		query["technician_id"] = filter.TechnicianID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	dateRange := bson.M{}
	if !filter.DateFrom.IsZero() {
		dateRange["$gte"] = filter.DateFrom.UTC()
	}
	if !filter.DateTo.IsZero() {
		dateRange["$lte"] = filter.DateTo.UTC()
	}
	if len(dateRange) > 0 {
		query["scheduled_at"] = dateRange
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count appointments: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "scheduled_at", Value: 1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appointments []*domain.Appointment
	for cursor.Next(ctx) {
		var a domain.Appointment
		if err := cursor.Decode(&a); err != nil {
			return nil, 0, fmt.Errorf("decode appointment: %w", err)
		}
		appointments = append(appointments, &a)
	}
	return appointments, total, cursor.Err()
}

// UpdateStatus atomically sets the status, appends a history entry, and
// optionally assigns a technician. Assignment also moves the slot-hold key
// onto the technician, keeping it in step with the Redis hold.
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, code string, status domain.AppointmentStatus, ts time.Time, notes, technicianID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"status": string(status)}
	if technicianID != "" {
		set["technician_id"] = technicianID
		set["slot_key"] = technicianID
	}

	update := bson.M{
		"$set": set,
		"$push": bson.M{"status_history": bson.M{
			"status":    string(status),
			"timestamp": ts.UTC(),
			"notes":     notes,
		}},
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"code": code}, update)
	if err != nil {
		return fmt.Errorf("update appointment status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAppointmentNotFound
	}
	return nil
}

// EnsureIndexes creates the lookup indexes on the appointments collection.
func (r *AppointmentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "code", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "customer_id", Value: 1}}},
		{Keys: bson.D{{Key: "technician_id", Value: 1}, {Key: "scheduled_at", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
