package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	currency "github.com/malusev998/currency-agency"
)

type (
	mongoStorage struct {
		ctx        context.Context
		client     *mongo.Client
		collection *mongo.Collection
	}

	mongoRate struct {
		From      string    `bson:"from"`
		To        string    `bson:"to"`
		Amount    string    `bson:"amount"`
		Timestamp time.Time `bson:"timestamp"`
	}

	mongoAgency struct {
		ID           string      `bson:"_id"`
		Name         string      `bson:"name"`
		Address      string      `bson:"address"`
		Country      string      `bson:"country"`
		BaseCurrency string      `bson:"baseCurrency"`
		Rates        []mongoRate `bson:"rates"`
	}
)

// NewMongoStorage keeps one document per agency with its rates embedded.
func NewMongoStorage(config MongoDBConfig) (currency.Storage, error) {
	ctx := config.Cxt

	if ctx == nil {
		ctx = context.Background()
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.ConnectionString))

	if err != nil {
		return nil, err
	}

	storage := mongoStorage{
		ctx:        ctx,
		client:     client,
		collection: client.Database(config.Database).Collection(config.Collection),
	}

	if config.Migrate {
		if err := storage.Migrate(); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
	}

	return storage, nil
}

func toMongoAgency(agency *currency.Agency) mongoAgency {
	rates := make([]mongoRate, 0, len(agency.Rates()))

	for _, r := range agency.Rates() {
		rates = append(rates, mongoRate{
			From:      r.From().Code(),
			To:        r.To().Code(),
			Amount:    r.Amount().String(),
			Timestamp: r.Timestamp(),
		})
	}

	return mongoAgency{
		ID:           agency.ID().String(),
		Name:         agency.Name(),
		Address:      agency.Address(),
		Country:      agency.Country(),
		BaseCurrency: agency.BaseCurrency().Code(),
		Rates:        rates,
	}
}

func (m mongoAgency) restore() (*currency.Agency, error) {
	raw := make([]rawRate, 0, len(m.Rates))

	for _, r := range m.Rates {
		raw = append(raw, rawRate{
			From:      r.From,
			To:        r.To,
			Amount:    r.Amount,
			Timestamp: r.Timestamp.UTC().Format(time.RFC3339),
		})
	}

	return restoreAgency(m.ID, m.Name, m.Address, m.Country, m.BaseCurrency, raw)
}

// Store replaces the agency document. Rates already persisted are merged
// first so a partial agency never drops history.
func (m mongoStorage) Store(agency *currency.Agency) error {
	existing, err := m.Get(agency.ID())

	switch {
	case errors.Is(err, ErrAgencyNotFound):
	case err != nil:
		return err
	default:
		agency = currency.RestoreAgency(
			agency.ID(),
			agency.Name(),
			agency.Address(),
			agency.Country(),
			agency.BaseCurrency(),
			append(existing.Rates(), agency.Rates()...),
		)
	}

	_, err = m.collection.ReplaceOne(
		m.ctx,
		bson.M{"_id": agency.ID().String()},
		toMongoAgency(agency),
		options.Replace().SetUpsert(true),
	)

	return err
}

func (m mongoStorage) Get(id uuid.UUID) (*currency.Agency, error) {
	var document mongoAgency

	err := m.collection.FindOne(m.ctx, bson.M{"_id": id.String()}).Decode(&document)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrAgencyNotFound
	}

	if err != nil {
		return nil, err
	}

	return document.restore()
}

func (m mongoStorage) Migrate() error {
	_, err := m.collection.Indexes().CreateOne(m.ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "baseCurrency", Value: 1}},
	})

	return err
}

func (m mongoStorage) Drop() error {
	return m.collection.Drop(m.ctx)
}

func (m mongoStorage) Close() error {
	return m.client.Disconnect(m.ctx)
}

func (m mongoStorage) GetStorageProviderName() string {
	return string(MongoDB)
}
