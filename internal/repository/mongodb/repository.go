package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/repository"
)

const (
	skuCollection       = "skus"
	warehouseCollection = "warehouses"
	inventoryCollection = "inventory"
	retiredCollection   = "retired_codes"
	statsCollection     = "stats_snapshots"
)

// MongoDBRepository owns the client and hands out per-collection repositories.
type MongoDBRepository struct {
	client *mongo.Client
	db     *mongo.Database
	now    func() time.Time
}

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client: client,
		db:     client.Database(dbName),
		now:    func() time.Time { return time.Now().UTC() },
	}, nil
}

// EnsureIndexes creates the unique indexes code allocation relies on.
func (r *MongoDBRepository) EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		skuCollection: {
			{Keys: bson.D{{Key: "sku", Value: 1}}, Options: options.Index().SetUnique(true).SetName("sku_unique")},
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
		warehouseCollection: {
			{Keys: bson.D{{Key: "code", Value: 1}}, Options: options.Index().SetUnique(true).SetName("code_unique")},
		},
		inventoryCollection: {
			{Keys: bson.D{{Key: "sku", Value: 1}, {Key: "location", Value: 1}}},
		},
		retiredCollection: {
			{Keys: bson.D{{Key: "prefix", Value: 1}, {Key: "code", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}

	for name, specs := range indexes {
		if _, err := r.db.Collection(name).Indexes().CreateMany(ctx, specs); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}
	return nil
}

// Store exposes the collections through the repository interfaces.
func (r *MongoDBRepository) Store() repository.Store {
	return repository.Store{
		SKUs:       &SKURepository{coll: r.db.Collection(skuCollection), now: r.now},
		Warehouses: &WarehouseRepository{coll: r.db.Collection(warehouseCollection), now: r.now},
		Inventory:  &InventoryRepository{coll: r.db.Collection(inventoryCollection), now: r.now},
		Retired:    &RetiredCodeRepository{coll: r.db.Collection(retiredCollection), now: r.now},
		Stats:      r,
	}
}

// SaveStatsSnapshot saves a dashboard snapshot to the history collection.
func (r *MongoDBRepository) SaveStatsSnapshot(ctx context.Context, record models.StatsRecord) error {
	_, err := r.db.Collection(statsCollection).InsertOne(ctx, record)
	if err != nil {
		return fmt.Errorf("failed to insert stats snapshot: %w", err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, repository.ErrNotFound
	}
	return oid, nil
}

// classify maps driver errors onto the repository sentinels.
func classify(op string, err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return repository.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%s: %w", op, repository.ErrDuplicateKey)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func codeRegex(prefix string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexp.QuoteMeta(prefix) + `\d+$`}
}

func containsRegex(value string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(value), Options: "i"}
}
