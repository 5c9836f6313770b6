package audit

import (
	"context"

	"github.com/example/freshmart/pkg/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// MongoSink stores events as audit log documents.
type MongoSink struct {
	Repo    *repository.MongoRepository
	Service string
}

func (s MongoSink) Write(ctx context.Context, e Event) error {
	return s.Repo.AppendAuditLog(ctx, &repository.AuditLog{
		Service:   s.Service,
		Action:    e.Action,
		Entity:    e.Entity,
		EntityID:  e.EntityID,
		Data:      bson.M(e.Data),
		CreatedAt: e.At,
	})
}

// LogSink writes events to the application log; used when MongoDB is off.
type LogSink struct {
	Logger *zap.Logger
}

func (s LogSink) Write(_ context.Context, e Event) error {
	s.Logger.Info("Audit",
		zap.String("action", e.Action),
		zap.String("entity", e.Entity),
		zap.String("entity_id", e.EntityID),
		zap.Any("data", e.Data),
		zap.Time("at", e.At))
	return nil
}
