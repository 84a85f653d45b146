package storage

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/codemix-nlp/codemix/config"
	"github.com/codemix-nlp/codemix/models"
)

// CorpusStore keeps raw annotated lines in mongo so large corpora can be
// imported once and re-read in batches.
type CorpusStore struct {
	Client *mongo.Client
	DB     *mongo.Database
	cfg    *config.MongoConfig
}

func NewCorpusStore(ctx context.Context, cfg *config.MongoConfig) (*CorpusStore, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err = client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	log.Println("Connected to MongoDB")
	db := client.Database(cfg.DBName)

	return &CorpusStore{
		Client: client,
		DB:     db,
		cfg:    cfg,
	}, nil
}

// SaveLines inserts lines under the given corpus name, stamping Corpus
// and CreatedAt on each document.
func (s *CorpusStore) SaveLines(ctx context.Context, corpusName string, lines []models.StoredLine) error {
	if len(lines) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	coll := s.DB.Collection(s.cfg.CorpusColl)

	docs := make([]interface{}, len(lines))
	now := primitive.NewDateTimeFromTime(time.Now())
	for i := range lines {
		lines[i].Corpus = corpusName
		lines[i].CreatedAt = now
		docs[i] = lines[i]
	}

	if _, err := coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert corpus lines: %w", err)
	}
	return nil
}

// GetBatch pages through a corpus in _id order. Pass the returned cursor
// back as lastID to get the next batch; a nil next cursor means the
// corpus is exhausted.
func (s *CorpusStore) GetBatch(
	ctx context.Context,
	corpusName string,
	batchSize int,
	lastID *primitive.ObjectID,
) ([]models.StoredLine, *primitive.ObjectID, error) {

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	collection := s.DB.Collection(s.cfg.CorpusColl)
	filter := bson.M{"corpus": corpusName}
	if lastID != nil {
		filter["_id"] = bson.M{"$gt": *lastID}
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetLimit(int64(batchSize))

	cursor, err := collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find corpus lines: %w", err)
	}
	defer cursor.Close(ctx)

	var lines []models.StoredLine
	if err = cursor.All(ctx, &lines); err != nil {
		return nil, nil, fmt.Errorf("failed to decode corpus lines: %w", err)
	}

	var newLastID *primitive.ObjectID
	if len(lines) > 0 {
		last := lines[len(lines)-1].ID
		newLastID = &last
	}

	return lines, newLastID, nil
}

func (s *CorpusStore) CountLines(ctx context.Context, corpusName string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	coll := s.DB.Collection(s.cfg.CorpusColl)
	count, err := coll.CountDocuments(ctx, bson.M{"corpus": corpusName})
	if err != nil {
		return 0, fmt.Errorf("failed to count corpus lines: %w", err)
	}
	return count, nil
}

func (s *CorpusStore) Disconnect() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from MongoDB: %w", err)
	}
	return nil
}
