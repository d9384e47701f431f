package mongo

import (
	"context"
	"errors"
	"time"

	"alcyxob/wellness-coach/internal/domain"
	"alcyxob/wellness-coach/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mesocycleCollectionName = "mesocycles"

// mongoMesocycleRepository implements the repository.MesocycleRepository interface using MongoDB.
type mongoMesocycleRepository struct {
	collection *mongo.Collection
}

// NewMongoMesocycleRepository creates a new instance of mongoMesocycleRepository.
func NewMongoMesocycleRepository(db *mongo.Database) repository.MesocycleRepository {
	return &mongoMesocycleRepository{
		collection: db.Collection(mesocycleCollectionName),
	}
}

// Create inserts a new lifting block.
func (r *mongoMesocycleRepository) Create(ctx context.Context, mesocycle *domain.Mesocycle) (primitive.ObjectID, error) {
	if mesocycle.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("mesocycle user ID is required")
	}

	mesocycle.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	mesocycle.CreatedAt = now
	mesocycle.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, mesocycle)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}

	return insertedID, nil
}

// GetByID retrieves a mesocycle by its MongoDB ObjectID.
func (r *mongoMesocycleRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Mesocycle, error) {
	var mesocycle domain.Mesocycle
	filter := bson.M{"_id": id}

	err := r.collection.FindOne(ctx, filter).Decode(&mesocycle)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &mesocycle, nil
}

// GetLatestByUserID retrieves the user's most recently started block.
func (r *mongoMesocycleRepository) GetLatestByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Mesocycle, error) {
	var mesocycle domain.Mesocycle
	filter := bson.M{"userId": userID}
	findOneOptions := options.FindOne().SetSort(bson.D{{Key: "startDate", Value: -1}})

	err := r.collection.FindOne(ctx, filter, findOneOptions).Decode(&mesocycle)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &mesocycle, nil
}

// EnsureMesocycleIndexes creates necessary indexes for the mesocycles collection.
func EnsureMesocycleIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "startDate", Value: -1}},
			Options: options.Index(),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
