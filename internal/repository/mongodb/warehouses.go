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

// WarehouseRepository stores warehouses in the warehouses collection.
type WarehouseRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func (r *WarehouseRepository) List(ctx context.Context) ([]models.Warehouse, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, classify("find warehouses", err)
	}
	out := make([]models.Warehouse, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, classify("decode warehouses", err)
	}
	return out, nil
}

func (r *WarehouseRepository) FindByCode(ctx context.Context, code string) (*models.Warehouse, error) {
	var wh models.Warehouse
	if err := r.coll.FindOne(ctx, bson.M{"code": code}).Decode(&wh); err != nil {
		return nil, classify("find warehouse by code", err)
	}
	return &wh, nil
}

func (r *WarehouseRepository) FindByID(ctx context.Context, id string) (*models.Warehouse, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var wh models.Warehouse
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&wh); err != nil {
		return nil, classify("find warehouse", err)
	}
	return &wh, nil
}

func (r *WarehouseRepository) ListCodes(ctx context.Context, prefix string) ([]string, error) {
	return distinctCodes(ctx, r.coll, "code", prefix)
}

func (r *WarehouseRepository) Insert(ctx context.Context, warehouse *models.Warehouse) error {
	now := r.now()
	doc := *warehouse
	doc.ID = primitive.NewObjectID()
	doc.CreatedAt, doc.UpdatedAt = now, now
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return classify("insert warehouse", err)
	}
	*warehouse = doc
	return nil
}

func (r *WarehouseRepository) Replace(ctx context.Context, id string, warehouse models.Warehouse) (*models.Warehouse, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	update := bson.M{"$set": bson.M{
		"code":      warehouse.Code,
		"name":      warehouse.Name,
		"type":      warehouse.Type,
		"city":      warehouse.City,
		"isActive":  warehouse.IsActive,
		"updatedAt": r.now(),
	}}

	var updated models.Warehouse
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&updated); err != nil {
		return nil, classify("update warehouse", err)
	}
	return &updated, nil
}

func (r *WarehouseRepository) Delete(ctx context.Context, id string) (*models.Warehouse, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var wh models.Warehouse
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&wh); err != nil {
		return nil, classify("delete warehouse", err)
	}
	return &wh, nil
}
