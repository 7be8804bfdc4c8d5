package validators

import "go.mongodb.org/mongo-driver/bson"

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"booking_id",
			"customer_id",
			"customer_name",
			"booking_date",
			"event_type",
			"status",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"booking_id": bookingIDSchema,

			"customer_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"customer_name": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 200,
			},

			"email": bson.M{
				"bsonType": "string",
			},

			"phone": bson.M{
				"bsonType": "string",
			},

			"booking_date": bson.M{
				"bsonType": "date",
			},

			"event_type": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 50,
			},

			"guest_count": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  0,
			},

			"status": bson.M{
				"enum": []string{"pending", "confirmed", "cancelled", "completed"},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}

var EventDetailsValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"booking_id"},
		"additionalProperties": true,

		"properties": bson.M{
			"booking_id":          bookingIDSchema,
			"event_id":            bson.M{"bsonType": "string"},
			"event_name":          bson.M{"bsonType": "string", "maxLength": 200},
			"groom_name":          bson.M{"bsonType": "string", "maxLength": 200},
			"bride_name":          bson.M{"bsonType": "string", "maxLength": 200},
			"contact_person_name": bson.M{"bsonType": "string", "maxLength": 200},
			"venue":               bson.M{"bsonType": "string"},
			"event_date":          bson.M{"bsonType": "date"},
			"notes":               bson.M{"bsonType": "string", "maxLength": 5000},
		},
	},
}

var ReportAuditValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"event_id",
			"booking_id",
			"kind",
			"filename",
			"generated_at",
			"received_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"event_id":     bson.M{"bsonType": "string", "minLength": 36, "maxLength": 36},
			"booking_id":   bookingIDSchema,
			"kind":         bson.M{"enum": []string{"menu_summary", "event_report"}},
			"filename":     bson.M{"bsonType": "string", "minLength": 1},
			"size_bytes":   bson.M{"bsonType": []string{"int", "long"}, "minimum": 1},
			"requested_by": bson.M{"bsonType": "string"},
			"generated_at": bson.M{"bsonType": "date"},
			"received_at":  bson.M{"bsonType": "date"},
		},
	},
}

var bookingIDSchema = bson.M{
	"bsonType": "string",
	"pattern":  "^[A-Za-z0-9][A-Za-z0-9_-]{0,63}$",
}
