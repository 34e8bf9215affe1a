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

// SKURepository stores catalog entries in the skus collection.
type SKURepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func (r *SKURepository) List(ctx context.Context, filter models.SKUFilter) ([]models.SKU, error) {
	query := bson.M{}
	if filter.Query != "" {
		query["$or"] = bson.A{
			bson.M{"sku": containsRegex(filter.Query)},
			bson.M{"name": containsRegex(filter.Query)},
		}
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	cursor, err := r.coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, classify("find skus", err)
	}
	out := make([]models.SKU, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, classify("decode skus", err)
	}
	return out, nil
}

func (r *SKURepository) FindByCode(ctx context.Context, code string) (*models.SKU, error) {
	var sku models.SKU
	if err := r.coll.FindOne(ctx, bson.M{"sku": code}).Decode(&sku); err != nil {
		return nil, classify("find sku by code", err)
	}
	return &sku, nil
}

func (r *SKURepository) FindByID(ctx context.Context, id string) (*models.SKU, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var sku models.SKU
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&sku); err != nil {
		return nil, classify("find sku", err)
	}
	return &sku, nil
}

func (r *SKURepository) ListCodes(ctx context.Context, prefix string) ([]string, error) {
	return distinctCodes(ctx, r.coll, "sku", prefix)
}

func (r *SKURepository) NamesByCode(ctx context.Context, codes []string) (map[string]string, error) {
	names := make(map[string]string, len(codes))
	if len(codes) == 0 {
		return names, nil
	}

	opts := options.Find().SetProjection(bson.M{"sku": 1, "name": 1})
	cursor, err := r.coll.Find(ctx, bson.M{"sku": bson.M{"$in": codes}}, opts)
	if err != nil {
		return nil, classify("find sku names", err)
	}
	var docs []models.SKU
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, classify("decode sku names", err)
	}
	for _, doc := range docs {
		names[doc.Code] = doc.Name
	}
	return names, nil
}

func (r *SKURepository) Insert(ctx context.Context, sku *models.SKU) error {
	now := r.now()
	doc := *sku
	doc.ID = primitive.NewObjectID()
	doc.CreatedAt, doc.UpdatedAt = now, now
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return classify("insert sku", err)
	}
	*sku = doc
	return nil
}

func (r *SKURepository) Update(ctx context.Context, id string, req models.UpdateSKURequest) (*models.SKU, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	update := bson.M{"$set": bson.M{
		"name":      req.Name,
		"category":  req.Category,
		"status":    req.Status,
		"updatedAt": r.now(),
	}}

	var sku models.SKU
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&sku); err != nil {
		return nil, classify("update sku", err)
	}
	return &sku, nil
}

func (r *SKURepository) Delete(ctx context.Context, id string) (*models.SKU, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var sku models.SKU
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&sku); err != nil {
		return nil, classify("delete sku", err)
	}
	return &sku, nil
}

// distinctCodes returns the values of field that look like prefix + digits.
func distinctCodes(ctx context.Context, coll *mongo.Collection, field, prefix string) ([]string, error) {
	values, err := coll.Distinct(ctx, field, bson.M{field: codeRegex(prefix)})
	if err != nil {
		return nil, classify("distinct "+field, err)
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if code, ok := v.(string); ok {
			out = append(out, code)
		}
	}
	return out, nil
}
