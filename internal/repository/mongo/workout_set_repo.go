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

const workoutSetCollectionName = "workout_sets"

// mongoWorkoutSetRepository implements the repository.WorkoutSetRepository interface using MongoDB.
type mongoWorkoutSetRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutSetRepository creates a new instance of mongoWorkoutSetRepository.
func NewMongoWorkoutSetRepository(db *mongo.Database) repository.WorkoutSetRepository {
	return &mongoWorkoutSetRepository{
		collection: db.Collection(workoutSetCollectionName),
	}
}

// Create inserts a single workout set.
func (r *mongoWorkoutSetRepository) Create(ctx context.Context, set *domain.WorkoutSet) (primitive.ObjectID, error) {
	if set.WorkoutID == primitive.NilObjectID || set.ExerciseID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("set workout ID and exercise ID are required")
	}
	if set.Status == "" {
		set.Status = domain.SetPending
	}

	set.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	set.CreatedAt = now
	set.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, set)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}

	return insertedID, nil
}

// CreateMany inserts a batch of workout sets. Used when materializing a plan
// day into a scheduled workout.
func (r *mongoWorkoutSetRepository) CreateMany(ctx context.Context, sets []domain.WorkoutSet) error {
	if len(sets) == 0 {
		return nil
	}

	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(sets))
	for i := range sets {
		sets[i].ID = primitive.NewObjectID()
		if sets[i].Status == "" {
			sets[i].Status = domain.SetPending
		}
		sets[i].CreatedAt = now
		sets[i].UpdatedAt = now
		docs = append(docs, sets[i])
	}

	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

// GetByID retrieves a set by its MongoDB ObjectID.
func (r *mongoWorkoutSetRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutSet, error) {
	var set domain.WorkoutSet
	filter := bson.M{"_id": id}

	err := r.collection.FindOne(ctx, filter).Decode(&set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &set, nil
}

// GetByWorkoutID retrieves all sets of a workout in exercise/set order.
func (r *mongoWorkoutSetRepository) GetByWorkoutID(ctx context.Context, workoutID primitive.ObjectID) ([]domain.WorkoutSet, error) {
	return r.find(ctx, bson.M{"workoutId": workoutID})
}

// GetByWorkoutAndExercise retrieves one exercise's sets within a workout in
// set-number order.
func (r *mongoWorkoutSetRepository) GetByWorkoutAndExercise(ctx context.Context, workoutID, exerciseID primitive.ObjectID) ([]domain.WorkoutSet, error) {
	return r.find(ctx, bson.M{"workoutId": workoutID, "exerciseId": exerciseID})
}

func (r *mongoWorkoutSetRepository) find(ctx context.Context, filter bson.M) ([]domain.WorkoutSet, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "exerciseId", Value: 1}, {Key: "setNumber", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sets []domain.WorkoutSet
	if err = cursor.All(ctx, &sets); err != nil {
		return nil, err
	}
	return sets, nil
}

// Update replaces the mutable fields of a set.
func (r *mongoWorkoutSetRepository) Update(ctx context.Context, set *domain.WorkoutSet) error {
	filter := bson.M{"_id": set.ID}
	update := bson.M{
		"$set": bson.M{
			"setNumber":    set.SetNumber,
			"targetReps":   set.TargetReps,
			"targetWeight": set.TargetWeight,
			"actualReps":   set.ActualReps,
			"actualWeight": set.ActualWeight,
			"status":       set.Status,
			"updatedAt":    time.Now().UTC(),
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

// DeletePending deletes a set only while its status is still pending and no
// actuals have been recorded. The condition lives in the delete filter itself
// so a set that was logged between our read and this write survives; the
// caller sees ErrNotFound and treats the set as preserved.
func (r *mongoWorkoutSetRepository) DeletePending(ctx context.Context, id primitive.ObjectID) error {
	filter := bson.M{
		"_id":          id,
		"status":       domain.SetPending,
		"actualReps":   nil,
		"actualWeight": nil,
	}

	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureWorkoutSetIndexes creates necessary indexes for the workout_sets collection.
func EnsureWorkoutSetIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "workoutId", Value: 1}, {Key: "exerciseId", Value: 1}, {Key: "setNumber", Value: 1}},
			Options: options.Index(),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
