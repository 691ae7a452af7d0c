// internal/database/statistics_repository.go
package database

import (
	"context"

	"bayou-blog/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type statisticDocument struct {
	Date            string `bson:"_id"`
	CreatedComments int    `bson:"created_comments"`
	BlockedComments int    `bson:"blocked_comments"`
}

// IncrementDailyCounter bumps one counter on the record keyed by the given
// YYYY-MM-DD date, creating the record with a zero baseline for the other
// counter on first touch. The $inc upsert is atomic per document, so
// concurrent bumps on the same date cannot lose updates.
func (m *MongoDB) IncrementDailyCounter(ctx context.Context, date string, counter StatCounter) error {
	other := CounterBlocked
	if counter == CounterBlocked {
		other = CounterCreated
	}

	filter := bson.M{"_id": date}
	update := bson.M{
		"$inc":         bson.M{string(counter): 1},
		"$setOnInsert": bson.M{string(other): 0},
	}

	_, err := m.Statistics.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// StatisticsRange returns the records whose date falls inside the inclusive
// range, ascending. Dates without a record are absent, not zero-filled.
func (m *MongoDB) StatisticsRange(ctx context.Context, dateFrom, dateTo string) ([]models.DailyStatistic, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := m.Statistics.Find(ctx, bson.M{"_id": bson.M{"$gte": dateFrom, "$lte": dateTo}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []statisticDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	stats := make([]models.DailyStatistic, 0, len(docs))
	for _, doc := range docs {
		stats = append(stats, models.DailyStatistic{
			Date:            doc.Date,
			CreatedComments: doc.CreatedComments,
			BlockedComments: doc.BlockedComments,
		})
	}
	return stats, nil
}
