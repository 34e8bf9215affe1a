package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/stockroom/internal/domain/models"
)

// InventoryRepository stores stock rows in the inventory collection.
type InventoryRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func (r *InventoryRepository) List(ctx context.Context, filter models.InventoryFilter) ([]models.InventoryRow, error) {
	query := bson.M{}
	if filter.SKU != "" {
		query["sku"] = containsRegex(filter.SKU)
	}
	if filter.Location != "" {
		query["location"] = containsRegex(filter.Location)
	}

	opts := options.Find().SetSort(bson.D{{Key: "sku", Value: 1}, {Key: "location", Value: 1}})
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, classify("find inventory", err)
	}
	out := make([]models.InventoryRow, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, classify("decode inventory", err)
	}
	return out, nil
}

func (r *InventoryRepository) Insert(ctx context.Context, row *models.InventoryRow) error {
	now := r.now()
	doc := *row
	doc.ID = primitive.NewObjectID()
	doc.CreatedAt, doc.UpdatedAt = now, now
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return classify("insert inventory row", err)
	}
	*row = doc
	return nil
}

func (r *InventoryRepository) Update(ctx context.Context, id string, req models.UpdateInventoryRequest) (*models.InventoryRow, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updatedAt": r.now()}
	if req.SKU != nil {
		set["sku"] = *req.SKU
	}
	if req.Location != nil {
		set["location"] = *req.Location
	}
	if req.Available != nil {
		set["available"] = *req.Available
	}
	if req.Reserved != nil {
		set["reserved"] = *req.Reserved
	}

	var row models.InventoryRow
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&row); err != nil {
		return nil, classify("update inventory row", err)
	}
	return &row, nil
}

func (r *InventoryRepository) Delete(ctx context.Context, id string) (*models.InventoryRow, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var row models.InventoryRow
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&row); err != nil {
		return nil, classify("delete inventory row", err)
	}
	return &row, nil
}

// TotalsByCode groups rows by sku server-side; rows without an available field count as zero.
func (r *InventoryRepository) TotalsByCode(ctx context.Context) ([]models.CodeTotal, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$sku"},
			{Key: "totalAvailable", Value: bson.D{{Key: "$sum", Value: bson.D{
				{Key: "$ifNull", Value: bson.A{"$available", 0}},
			}}}},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, classify("aggregate inventory", err)
	}
	out := make([]models.CodeTotal, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, classify("decode inventory totals", err)
	}
	return out, nil
}
