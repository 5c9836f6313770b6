package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/example/freshmart/pkg/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	mongoConnectTimeout = 10 * time.Second
	maxAuditLimit       = 500
)

// AuditLog is one administrative catalog change as stored in MongoDB.
type AuditLog struct {
	ID        string    `bson:"_id,omitempty" json:"id,omitempty"`
	Service   string    `bson:"service" json:"service"`
	Action    string    `bson:"action" json:"action"`
	Entity    string    `bson:"entity" json:"entity"`
	EntityID  string    `bson:"entity_id" json:"entity_id"`
	Data      bson.M    `bson:"data" json:"data"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// MongoRepository keeps the audit trail. Entries are looked up per entity,
// newest first.
type MongoRepository struct {
	client *mongo.Client
	audit  *mongo.Collection
}

// NewMongoRepository connects, checks the server answers and makes sure the
// per-entity lookup index exists.
func NewMongoRepository(cfg *config.MongoDBConfig) (*MongoRepository, error) {
	ctx, cancel := context.WithTimeout(context.Background(), mongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	repo := &MongoRepository{
		client: client,
		audit:  client.Database(cfg.Database).Collection(cfg.Collection),
	}
	if _, err := repo.audit.Indexes().CreateOne(ctx, auditIndex()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to create audit index: %w", err)
	}
	return repo, nil
}

func auditIndex() mongo.IndexModel {
	return mongo.IndexModel{
		Keys: bson.D{
			{Key: "entity", Value: 1},
			{Key: "entity_id", Value: 1},
			{Key: "created_at", Value: -1},
		},
	}
}

func (m *MongoRepository) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, nil)
}

func (m *MongoRepository) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func (m *MongoRepository) AppendAuditLog(ctx context.Context, entry *AuditLog) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if _, err := m.audit.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to append audit log: %w", err)
	}
	return nil
}

// GetAuditLogs returns at most limit entries for one entity, newest first.
// It never returns a nil slice.
func (m *MongoRepository) GetAuditLogs(ctx context.Context, entity, entityID string, limit int64) ([]*AuditLog, error) {
	filter, opts := auditQuery(entity, entityID, limit)

	cursor, err := m.audit.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit logs: %w", err)
	}
	defer cursor.Close(ctx)

	logs := []*AuditLog{}
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, fmt.Errorf("failed to decode audit logs: %w", err)
	}
	return logs, nil
}

func auditQuery(entity, entityID string, limit int64) (bson.D, *options.FindOptions) {
	if limit < 1 || limit > maxAuditLimit {
		limit = maxAuditLimit
	}
	filter := bson.D{{Key: "entity", Value: entity}, {Key: "entity_id", Value: entityID}}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)
	return filter, opts
}
