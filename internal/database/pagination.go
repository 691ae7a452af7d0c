// internal/database/pagination.go
package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Page is the offset-pagination envelope. It is computed, never persisted.
type Page[T any] struct {
	Items           []T `json:"items"`
	TotalItemsCount int `json:"total_items_count"`
	Page            int `json:"page"`
	PageSize        int `json:"page_size"`
}

// paginationPipeline builds the aggregation that counts every matching
// document and slices out the requested window in one round trip:
// $match (optional) -> $group {count, push $$ROOT} -> $project {count, $slice}.
// A page past the last document yields an empty rows array with the count
// intact.
func paginationPipeline(match bson.M, page, pageSize int) []bson.M {
	pipeline := make([]bson.M, 0, 3)
	if match != nil {
		pipeline = append(pipeline, bson.M{"$match": match})
	}
	pipeline = append(pipeline,
		bson.M{"$group": bson.M{
			"_id":     nil,
			"count":   bson.M{"$sum": 1},
			"results": bson.M{"$push": "$$ROOT"},
		}},
		bson.M{"$project": bson.M{
			"count": 1,
			"rows":  bson.M{"$slice": []interface{}{"$results", (page - 1) * pageSize, pageSize}},
		}},
	)
	return pipeline
}

// paginate runs the pagination pipeline over a collection. Documents keep the
// collection's natural insertion order. When no document matches at all, the
// aggregation emits no bucket and the envelope comes back empty with a zero
// count.
func paginate[T any](ctx context.Context, coll *mongo.Collection, match bson.M, page, pageSize int) (*Page[T], error) {
	cursor, err := coll.Aggregate(ctx, paginationPipeline(match, page, pageSize))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var buckets []struct {
		Count int `bson:"count"`
		Rows  []T `bson:"rows"`
	}
	if err := cursor.All(ctx, &buckets); err != nil {
		return nil, err
	}

	result := &Page[T]{
		Items:    []T{},
		Page:     page,
		PageSize: pageSize,
	}
	if len(buckets) > 0 {
		result.TotalItemsCount = buckets[0].Count
		if buckets[0].Rows != nil {
			result.Items = buckets[0].Rows
		}
	}
	return result, nil
}
