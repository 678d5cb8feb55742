package repo

import (
	"context"
	"errors"
	"time"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SolvedMazeRepo archives solved mazes in MongoDB.
type SolvedMazeRepo struct {
	collection *mongo.Collection
}

// NewSolvedMazeRepo creates a new SolvedMazeRepo with the given MongoDB client, database name, and collection name.
func NewSolvedMazeRepo(client *mongo.Client, dbName, collectionName string) *SolvedMazeRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &SolvedMazeRepo{
		collection: collection,
	}
}

// Save inserts a solved maze, replacing an earlier record with the same id.
func (r *SolvedMazeRepo) Save(ctx context.Context, solved *dmn.SolvedMaze) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	filter := bson.M{"_id": solved.ID}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, filter, solved, opts); err != nil {
		return errors.New("unexpected error: " + err.Error())
	}
	return nil
}

// Stats aggregates the archive: how many mazes were solved, the mean number of
// moves and the best ratio of moves to the shortest path.
func (r *SolvedMazeRepo) Stats(ctx context.Context) (*dmn.SolveStats, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"optimalMoves": bson.M{"$gt": 0}}}},
		{{Key: "$group", Value: bson.M{
			"_id":          nil,
			"solved":       bson.M{"$sum": 1},
			"averageMoves": bson.M{"$avg": "$moves"},
			"bestRatio":    bson.M{"$min": bson.M{"$divide": bson.A{"$moves", "$optimalMoves"}}},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, errors.New("unexpected error: " + err.Error())
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Solved       int64   `bson:"solved"`
		AverageMoves float64 `bson:"averageMoves"`
		BestRatio    float64 `bson:"bestRatio"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, errors.New("unexpected error: " + err.Error())
	}

	if len(rows) == 0 {
		return &dmn.SolveStats{}, nil
	}
	return &dmn.SolveStats{
		Solved:       rows[0].Solved,
		AverageMoves: rows[0].AverageMoves,
		BestRatio:    rows[0].BestRatio,
	}, nil
}
