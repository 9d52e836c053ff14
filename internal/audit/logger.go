package audit

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"book-store-api/internal/middleware"
	"book-store-api/internal/models"
)

func newEntry(ctx context.Context, entity, action string, data any) models.AuditLog {
	return models.AuditLog{
		Timestamp: time.Now().UTC(),
		Entity:    entity,
		Action:    action,
		RequestID: middleware.RequestIDFromContext(ctx),
		Data:      data,
	}
}

// MongoLogger appends audit entries to a collection.
type MongoLogger struct {
	Collection *mongo.Collection
}

func (l *MongoLogger) Log(ctx context.Context, entity, action string, data any) error {
	_, err := l.Collection.InsertOne(ctx, newEntry(ctx, entity, action, data))
	return err
}

// ZapLogger writes audit entries to the structured log.
type ZapLogger struct {
	Logger *zap.Logger
}

func (l *ZapLogger) Log(ctx context.Context, entity, action string, data any) error {
	entry := newEntry(ctx, entity, action, data)
	l.Logger.Info("audit",
		zap.Time("timestamp", entry.Timestamp),
		zap.String("entity", entry.Entity),
		zap.String("action", entry.Action),
		zap.String("request_id", entry.RequestID),
		zap.Any("data", entry.Data),
	)
	return nil
}
