package validators

import "go.mongodb.org/mongo-driver/bson"

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"seq",
			"slot_start",
			"provider",
			"child_name",
			"status",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"seq": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  0,
			},

			// legacy records may hold unparsable starts; the store tolerates them
			"slot_start": bson.M{
				"bsonType":  "string",
				"maxLength": 50,
			},

			"provider": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 100,
			},

			"child_name": bson.M{
				"bsonType":  "string",
				"maxLength": 100,
			},

			"status": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"confirmation_id": bson.M{
				"bsonType":  "string",
				"maxLength": 200,
			},
		},
	},
}
