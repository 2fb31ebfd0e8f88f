package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// overlapFilter matches reservations sharing a day with [start, end].
func overlapFilter(start, end time.Time) bson.M {
	return bson.M{
		"check_in_date":  bson.M{"$lte": end.UTC()},
		"check_out_date": bson.M{"$gte": start.UTC()},
	}
}

func destinationOverlapFilter(destinationID int64, start, end time.Time) bson.M {
	f := overlapFilter(start, end)
	f["destination_id"] = destinationID
	return f
}

// excludeIDsFilter matches documents whose _id is not in ids.
func excludeIDsFilter(ids []int64) bson.M {
	if len(ids) == 0 {
		return bson.M{}
	}
	return bson.M{"_id": bson.M{"$nin": ids}}
}

func byIDAsc() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
}
