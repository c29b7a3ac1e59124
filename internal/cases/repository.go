package cases

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository interface {
	Create(ctx context.Context, item Case) error
	Update(ctx context.Context, id string, set bson.M) (Case, error)
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, filter ListFilter, limit, skip int64) ([]Case, error)
	Count(ctx context.Context, filter ListFilter) (int64, error)
	Upsert(ctx context.Context, item Case) error
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Create(ctx context.Context, item Case) error {
	_, err := r.col.InsertOne(ctx, item)
	return err
}

func (r *MongoRepository) Update(ctx context.Context, id string, set bson.M) (Case, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": set}

	var updated Case
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&updated); err != nil {
		return Case{}, err
	}
	return updated, nil
}

func (r *MongoRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *MongoRepository) List(ctx context.Context, filter ListFilter, limit, skip int64) ([]Case, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit).
		SetSkip(skip)

	cursor, err := r.col.Find(ctx, listQuery(filter), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]Case, 0)
	for cursor.Next(ctx) {
		var item Case
		if err := cursor.Decode(&item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *MongoRepository) Count(ctx context.Context, filter ListFilter) (int64, error) {
	return r.col.CountDocuments(ctx, listQuery(filter))
}

// Upsert writes a row keyed by (slug, locale); the id is only assigned on
// insert so sync runs never churn identifiers.
func (r *MongoRepository) Upsert(ctx context.Context, item Case) error {
	filter := bson.M{"slug": item.Slug, "locale": item.Locale}
	update := bson.M{
		"$set": bson.M{
			"title":        item.Title,
			"summary":      item.Summary,
			"category":     item.Category,
			"monetization": item.Monetization,
			"stage":        item.Stage,
			"published_at": item.PublishedAt,
			"tags":         item.Tags,
			"cover":        item.Cover,
			"content":      item.Content,
			"is_published": item.IsPublished,
			"updated_at":   item.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"_id":        item.ID,
			"slug":       item.Slug,
			"locale":     item.Locale,
			"created_at": item.CreatedAt,
		},
	}
	_, err := r.col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func listQuery(filter ListFilter) bson.M {
	query := bson.M{}
	if filter.Locale != "" {
		query["locale"] = filter.Locale
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	return query
}
