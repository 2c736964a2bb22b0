package validators

import "go.mongodb.org/mongo-driver/bson"

var ProviderTemplateValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"schedule",
			"position",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"name": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 100,
			},

			"position": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  0,
			},

			"schedule": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType": "object",
					"required": []string{"start", "visit_type"},
					"properties": bson.M{
						"start": bson.M{
							"bsonType":  "string",
							"minLength": 1,
						},
						"visit_type": bson.M{
							"bsonType": "string",
						},
					},
				},
			},
		},
	},
}
