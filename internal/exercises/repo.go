package exercises

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mlafitness/backend/internal/telemetry/tracing"
)

const collExercises = "exercises"

// Repo reads exercise records from the document store. All operations are
// read-only aggregations; the store is populated by the tracking service.
type Repo struct {
	coll *mongo.Collection
}

func NewRepo(db *mongo.Database) *Repo {
	return &Repo{
		coll: db.Collection(collExercises),
	}
}

// Connect dials the document store and verifies the connection before use,
// so that a misconfigured URI fails the process at startup and not per-request.
func Connect(ctx context.Context, uri, dbName string, connectTimeout time.Duration) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, nil, fmt.Errorf("ping mongo: %w", err)
	}

	return client, client.Database(dbName), nil
}

func (r *Repo) List(ctx context.Context, params ListParams) (_ []Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	sortOrder := 1
	if params.NewestFirst {
		sortOrder = -1
	}

	cursor, err := r.coll.Find(
		ctx,
		matchFilter(params.Username, params.From, params.To),
		options.Find().SetSort(bson.D{{Key: "date", Value: sortOrder}}),
	)
	if err != nil {
		return nil, fmt.Errorf("find exercises: %w", err)
	}

	var records []Record
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode exercises: %w", err)
	}

	return records, nil
}

// TotalsByUser groups all records by (username, exerciseType), sums the
// durations, and regroups per username. No window filter - all-time.
func (r *Repo) TotalsByUser(ctx context.Context) (_ []UserTotals, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.totalsByUser")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	pipeline := mongo.Pipeline{
		groupByUserAndTypeStage(),
		regroupByUserStage(),
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "username", Value: "$_id"},
			{Key: "exercises", Value: 1},
			{Key: "_id", Value: 0},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "username", Value: 1}}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate totals by user: %w", err)
	}

	var totals []UserTotals
	if err := cursor.All(ctx, &totals); err != nil {
		return nil, fmt.Errorf("decode totals by user: %w", err)
	}

	return totals, nil
}

// TotalsForUser is TotalsByUser restricted to a single username.
func (r *Repo) TotalsForUser(ctx context.Context, username string) (_ []UserTotals, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.totalsForUser")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "username", Value: username}}}},
		groupByUserAndTypeStage(),
		regroupByUserStage(),
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "username", Value: "$_id"},
			{Key: "exercises", Value: 1},
			{Key: "_id", Value: 0},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate totals for user: %w", err)
	}

	var totals []UserTotals
	if err := cursor.All(ctx, &totals); err != nil {
		return nil, fmt.Errorf("decode totals for user: %w", err)
	}

	return totals, nil
}

// Breakdown groups matched records per exercise type, sums duration and counts
// sessions, ordered by total duration descending.
func (r *Repo) Breakdown(ctx context.Context, params BreakdownParams) (_ []TypeTotal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.breakdown")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: matchFilter(params.Username, params.From, params.To)}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$exerciseType"},
			{Key: "totalDuration", Value: bson.D{{Key: "$sum", Value: "$duration"}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "totalDuration", Value: -1}}}},
	}
	if params.Limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: params.Limit}})
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate breakdown: %w", err)
	}

	var docs []struct {
		ExerciseType  string `bson:"_id"`
		TotalDuration int    `bson:"totalDuration"`
		SessionCount  int    `bson:"count"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode breakdown: %w", err)
	}

	totals := make([]TypeTotal, 0, len(docs))
	for _, d := range docs {
		totals = append(totals, TypeTotal{
			ExerciseType:  d.ExerciseType,
			TotalDuration: d.TotalDuration,
			SessionCount:  d.SessionCount,
		})
	}

	return totals, nil
}

// DailyTotals groups matched records by calendar day and sums duration,
// ordered chronologically. Days without records are absent from the result;
// gap-filling happens in the aggregation layer.
func (r *Repo) DailyTotals(ctx context.Context, username string, from, to *time.Time) (_ []DayTotal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.dailyTotals")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: matchFilter(username, from, to)}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "$dateToString", Value: bson.D{
				{Key: "format", Value: "%Y-%m-%d"},
				{Key: "date", Value: "$date"},
			}}}},
			{Key: "totalDuration", Value: bson.D{{Key: "$sum", Value: "$duration"}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate daily totals: %w", err)
	}

	var docs []struct {
		Date          string `bson:"_id"`
		TotalDuration int    `bson:"totalDuration"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode daily totals: %w", err)
	}

	totals := make([]DayTotal, 0, len(docs))
	for _, d := range docs {
		totals = append(totals, DayTotal{
			Date:          d.Date,
			TotalDuration: d.TotalDuration,
		})
	}

	return totals, nil
}

// matchFilter builds the shared find/match document: username plus an
// optional [from, to) date window (to is exclusive, from inclusive).
func matchFilter(username string, from, to *time.Time) bson.M {
	filter := bson.M{}
	if username != "" {
		filter["username"] = username
	}

	if from != nil || to != nil {
		dateFilter := bson.M{}
		if from != nil {
			dateFilter["$gte"] = *from
		}
		if to != nil {
			dateFilter["$lt"] = *to
		}
		filter["date"] = dateFilter
	}

	return filter
}

func groupByUserAndTypeStage() bson.D {
	return bson.D{{Key: "$group", Value: bson.D{
		{Key: "_id", Value: bson.D{
			{Key: "username", Value: "$username"},
			{Key: "exerciseType", Value: "$exerciseType"},
		}},
		{Key: "totalDuration", Value: bson.D{{Key: "$sum", Value: "$duration"}}},
		{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
	}}}
}

func regroupByUserStage() bson.D {
	return bson.D{{Key: "$group", Value: bson.D{
		{Key: "_id", Value: "$_id.username"},
		{Key: "exercises", Value: bson.D{{Key: "$push", Value: bson.D{
			{Key: "exerciseType", Value: "$_id.exerciseType"},
			{Key: "totalDuration", Value: "$totalDuration"},
			{Key: "count", Value: "$count"},
		}}}},
	}}}
}
