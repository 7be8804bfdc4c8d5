package validators

import "go.mongodb.org/mongo-driver/bson"

var price = bson.M{
	"bsonType": []string{"double", "int", "long", "decimal"},
	"minimum":  0,
}

var MenuSelectionValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"booking_id", "menus"},
		"additionalProperties": true,

		"properties": bson.M{
			"booking_id": bookingIDSchema,
			"menus": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType": "object",
					"properties": bson.M{
						"name": bson.M{"bsonType": "string"},
						"categories": bson.M{
							"bsonType": "array",
							"items": bson.M{
								"bsonType": "object",
								"properties": bson.M{
									"name": bson.M{"bsonType": "string"},
									"items": bson.M{
										"bsonType": "array",
										"items": bson.M{
											"bsonType": "object",
											"required": []string{"name", "price"},
											"properties": bson.M{
												"name":  bson.M{"bsonType": "string"},
												"price": price,
											},
										},
									},
								},
							},
						},
					},
				},
			},
		},
	},
}

var ServicesSelectionValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"booking_id", "services"},
		"additionalProperties": true,

		"properties": bson.M{
			"booking_id": bookingIDSchema,
			"services": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType": "object",
					"required": []string{"name"},
					"properties": bson.M{
						"name":   bson.M{"bsonType": "string"},
						"vendor": bson.M{"bsonType": "string"},
						"price":  price,
					},
				},
			},
		},
	},
}

var TableArrangementValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"booking_id", "tables"},
		"additionalProperties": true,

		"properties": bson.M{
			"booking_id": bookingIDSchema,
			"tables": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType": "object",
					"properties": bson.M{
						"label":        bson.M{"bsonType": "string"},
						"shape":        bson.M{"bsonType": "string"},
						"seats":        bson.M{"bsonType": []string{"int", "long"}, "minimum": 0},
						"chairs":       bson.M{"bsonType": "string"},
						"color_scheme": bson.M{"bsonType": "string"},
					},
				},
			},
		},
	},
}

var BarSelectionValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"booking_id", "items"},
		"additionalProperties": true,

		"properties": bson.M{
			"booking_id": bookingIDSchema,
			"items": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType": "object",
					"required": []string{"name"},
					"properties": bson.M{
						"name":     bson.M{"bsonType": "string"},
						"category": bson.M{"bsonType": "string"},
						"quantity": bson.M{"bsonType": []string{"int", "long"}, "minimum": 0},
						"price":    price,
					},
				},
			},
		},
	},
}
