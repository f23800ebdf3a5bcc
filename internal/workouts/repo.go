package workouts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel/attribute"

	"github.com/fitstack/workouts/internal/telemetry/tracing"
)

var ErrWorkoutNotFound = errors.New("workout not found")

const collectionName = "workouts"

type Repo struct {
	workouts *mongo.Collection
}

func NewRepo(db *mongo.Database) *Repo {
	return &Repo{
		workouts: db.Collection(collectionName),
	}
}

func (r *Repo) Add(ctx context.Context, workout Workout) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	now := time.Now()
	workout.ID = primitive.NewObjectID()
	workout.CreatedAt = now
	workout.UpdatedAt = now
	if workout.DatePerformed.IsZero() {
		workout.DatePerformed = now
	}

	if _, err := r.workouts.InsertOne(ctx, workout); err != nil {
		return nil, fmt.Errorf("insert workout: %w", err)
	}

	span.SetAttributes(attribute.String("workout.id", workout.ID.Hex()))
	return &workout, nil
}

func (r *Repo) Get(ctx context.Context, id primitive.ObjectID) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("id", id.Hex()))

	var workout Workout
	if err := r.workouts.FindOne(ctx, bson.M{"_id": id}).Decode(&workout); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}

	return &workout, nil
}

// List returns all workouts, most recently performed first,
// ties broken by creation time descending.
func (r *Repo) List(ctx context.Context) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	findOptions := options.Find().SetSort(bson.D{
		{Key: "datePerformed", Value: -1},
		{Key: "createdAt", Value: -1},
	})

	cursor, err := r.workouts.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("find workouts: %w", err)
	}
	defer func() {
		if closeErr := cursor.Close(ctx); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	workouts := make([]Workout, 0)
	if err := cursor.All(ctx, &workouts); err != nil {
		return nil, fmt.Errorf("decode workouts: %w", err)
	}

	span.SetAttributes(attribute.Int("count", len(workouts)))
	return workouts, nil
}

// Update merges the supplied fields into the stored record, bumps
// updatedAt and returns the full updated record.
func (r *Repo) Update(ctx context.Context, id primitive.ObjectID, req *UpdateWorkoutRequest) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("id", id.Hex()))

	set := bson.M{
		"updatedAt": time.Now(),
	}
	if req.Title != nil {
		set["title"] = *req.Title
	}
	if req.Reps != nil {
		set["reps"] = int(*req.Reps)
	}
	if req.Sets != nil {
		set["sets"] = int(*req.Sets)
	}
	if req.Category != nil {
		set["category"] = *req.Category
	}
	if req.Load != nil {
		set["load"] = float64(*req.Load)
	}
	if req.Duration != nil {
		set["duration"] = float64(*req.Duration)
	}
	if req.Intensity != nil {
		set["intensity"] = *req.Intensity
	}
	if req.DatePerformed != nil && !req.DatePerformed.IsZero() {
		set["datePerformed"] = req.DatePerformed.Time
	}
	if req.Notes != nil {
		set["notes"] = *req.Notes
	}

	updateOptions := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated Workout
	findErr := r.workouts.
		FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, updateOptions).
		Decode(&updated)
	if findErr != nil {
		if errors.Is(findErr, mongo.ErrNoDocuments) {
			return nil, ErrWorkoutNotFound
		}
		return nil, findErr
	}

	return &updated, nil
}

// Delete removes the workout and returns its prior state,
// so callers can report what was deleted.
func (r *Repo) Delete(ctx context.Context, id primitive.ObjectID) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("id", id.Hex()))

	var deleted Workout
	if err := r.workouts.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&deleted); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}

	return &deleted, nil
}
