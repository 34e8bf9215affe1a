package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RetiredCodeRepository keeps codes that must never be handed out again.
type RetiredCodeRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

// Retire records code under prefix. Retiring the same code twice is a no-op.
func (r *RetiredCodeRepository) Retire(ctx context.Context, prefix, code string) error {
	filter := bson.M{"prefix": prefix, "code": code}
	update := bson.M{"$setOnInsert": bson.M{"retiredAt": r.now()}}
	_, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return classify("retire code", err)
	}
	return nil
}

func (r *RetiredCodeRepository) ListCodes(ctx context.Context, prefix string) ([]string, error) {
	values, err := r.coll.Distinct(ctx, "code", bson.M{"prefix": prefix})
	if err != nil {
		return nil, classify("distinct retired codes", err)
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if code, ok := v.(string); ok {
			out = append(out, code)
		}
	}
	return out, nil
}
