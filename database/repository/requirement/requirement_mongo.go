package requirementRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nearfix/database"
	"nearfix/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no requirement matches the given id.
var ErrNotFound = errors.New("requirement not found")

// RequirementRepository defines data access for the lead board.
type RequirementRepository interface {
	// Create posts a new open requirement.
	Create(req *models.Requirement) error
	// GetByID retrieves a requirement by its unique ID.
	GetByID(id string) (*models.Requirement, error)
	// ListOpenByCategories returns open leads matching any of the given
	// categories, most urgent and newest first.
	ListOpenByCategories(categories []string) ([]models.Requirement, error)
	// SetStatus updates a requirement's status (fulfilled/closed).
	SetStatus(id, status string) error
}

// MongoRequirementRepo implements RequirementRepository using MongoDB.
type MongoRequirementRepo struct {
	coll *mongo.Collection
}

// NewMongoRequirementRepo creates a requirement repository backed by MongoDB.
func NewMongoRequirementRepo() RequirementRepository {
	coll := database.MongoClient.Database("nearfix").Collection("requirements")
	repo := &MongoRequirementRepo{coll: coll}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "status", Value: 1}}},
	})
	if err != nil {
		fmt.Printf("failed to create requirement indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// Create posts a new requirement document.
func (r *MongoRequirementRepo) Create(req *models.Requirement) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now()
	}
	if _, err := r.coll.InsertOne(ctx, req); err != nil {
		return fmt.Errorf("failed to create requirement: %w", err)
	}
	return nil
}

// GetByID retrieves a requirement by its unique ID.
func (r *MongoRequirementRepo) GetByID(id string) (*models.Requirement, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var req models.Requirement
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&req); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch requirement %s: %w", id, err)
	}
	return &req, nil
}

// ListOpenByCategories returns open leads in the provider's categories.
func (r *MongoRequirementRepo) ListOpenByCategories(categories []string) ([]models.Requirement, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{
		"category": bson.M{"$in": categories},
		"status":   models.RequirementOpen,
	}
	opts := options.Find().SetSort(bson.D{
		{Key: "urgency", Value: -1},
		{Key: "createdAt", Value: -1},
	})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list requirements: %w", err)
	}
	defer cursor.Close(ctx)

	var reqs []models.Requirement
	if err := cursor.All(ctx, &reqs); err != nil {
		return nil, fmt.Errorf("failed to decode requirements: %w", err)
	}
	return reqs, nil
}

// SetStatus updates a requirement's status.
func (r *MongoRequirementRepo) SetStatus(id, status string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return fmt.Errorf("failed to update requirement %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
