package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
	"time"
)

type AuditLog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
	Entity    string             `bson:"entity" json:"entity"`
	Action    string             `bson:"action" json:"action"`
	RequestID string             `bson:"request_id,omitempty" json:"request_id,omitempty"`
	Data      any                `bson:"data" json:"data"` // raw payload
}
