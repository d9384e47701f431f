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

const planDayExerciseCollectionName = "plan_day_exercises"

// mongoPlanDayExerciseRepository implements the repository.PlanDayExerciseRepository interface using MongoDB.
type mongoPlanDayExerciseRepository struct {
	collection *mongo.Collection
}

// NewMongoPlanDayExerciseRepository creates a new instance of mongoPlanDayExerciseRepository.
func NewMongoPlanDayExerciseRepository(db *mongo.Database) repository.PlanDayExerciseRepository {
	return &mongoPlanDayExerciseRepository{
		collection: db.Collection(planDayExerciseCollectionName),
	}
}

// Create inserts a prescription template.
func (r *mongoPlanDayExerciseRepository) Create(ctx context.Context, pde *domain.PlanDayExercise) (primitive.ObjectID, error) {
	if pde.PlanDayID == primitive.NilObjectID || pde.ExerciseID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("prescription plan day ID and exercise ID are required")
	}

	pde.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	pde.CreatedAt = now
	pde.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, pde)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}

	return insertedID, nil
}

// GetByID retrieves a prescription by its MongoDB ObjectID.
func (r *mongoPlanDayExerciseRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.PlanDayExercise, error) {
	var pde domain.PlanDayExercise
	filter := bson.M{"_id": id}

	err := r.collection.FindOne(ctx, filter).Decode(&pde)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &pde, nil
}

// GetByPlanDayID retrieves the prescriptions of a plan day in display order.
func (r *mongoPlanDayExerciseRepository) GetByPlanDayID(ctx context.Context, planDayID primitive.ObjectID) ([]domain.PlanDayExercise, error) {
	filter := bson.M{"planDayId": planDayID}
	findOptions := options.Find().SetSort(bson.D{{Key: "sortOrder", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var prescriptions []domain.PlanDayExercise
	if err = cursor.All(ctx, &prescriptions); err != nil {
		return nil, err
	}
	return prescriptions, nil
}

// Update replaces the prescription targets.
func (r *mongoPlanDayExerciseRepository) Update(ctx context.Context, pde *domain.PlanDayExercise) error {
	filter := bson.M{"_id": pde.ID}
	update := bson.M{
		"$set": bson.M{
			"sets":        pde.Sets,
			"reps":        pde.Reps,
			"weight":      pde.Weight,
			"restSeconds": pde.RestSeconds,
			"sortOrder":   pde.SortOrder,
			"minReps":     pde.MinReps,
			"maxReps":     pde.MaxReps,
			"updatedAt":   time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a prescription from the plan day template.
func (r *mongoPlanDayExerciseRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
