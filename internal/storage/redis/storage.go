package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bagrada/mythmeta/internal/codec"
	"github.com/bagrada/mythmeta/internal/model"
	"github.com/bagrada/mythmeta/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Player and order records persist in their document form, so what
// lands in Redis is exactly what the reporting surfaces serve.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) AllocatePlayerID(ctx context.Context) (model.PlayerID, error) {
	id, err := s.client.Incr(ctx, playerIDSeqKey()).Result()
	if err != nil {
		return 0, err
	}
	return model.PlayerID(id), nil
}

func (s *Storage) SavePlayer(ctx context.Context, record *model.PlayerRecord) error {
	data, err := json.Marshal(codec.PlayerToDocument(record))
	if err != nil {
		return err
	}

	key := playerKey(record.ID)

	// Use pipeline for atomic save + index updates
	pipe := s.client.Pipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.Set(ctx, loginIndexKey(record.Login()), strconv.FormatUint(uint64(record.ID), 10), 0)
	pipe.SAdd(ctx, playersIndexKey(), key)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.PlayerRecord, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}
	return decodePlayer(data)
}

func (s *Storage) GetPlayerByLogin(ctx context.Context, login string) (*model.PlayerRecord, error) {
	idStr, err := s.client.Get(ctx, loginIndexKey(login)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		return nil, err
	}
	return s.GetPlayer(ctx, model.PlayerID(id))
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.PlayerRecord, error) {
	keys, err := s.client.SMembers(ctx, playersIndexKey()).Result()
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return []*model.PlayerRecord{}, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	records := make([]*model.PlayerRecord, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue
		}
		record, err := decodePlayer([]byte(val.(string)))
		if err != nil {
			continue // Skip invalid data
		}
		records = append(records, record)
	}

	sortPlayers(records)
	return records, nil
}

// Credential operations

func (s *Storage) SaveCredentials(ctx context.Context, creds *model.Credentials) error {
	data, err := json.Marshal(creds)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, credentialsKey(creds.PlayerID), data, 0)
	pipe.Set(ctx, credLoginIndexKey(creds.Login), strconv.FormatUint(uint64(creds.PlayerID), 10), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetCredentials(ctx context.Context, playerID model.PlayerID) (*model.Credentials, error) {
	data, err := s.client.Get(ctx, credentialsKey(playerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrCredentialsNotFound
		}
		return nil, err
	}

	var creds model.Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, err
	}
	return &creds, nil
}

func (s *Storage) GetCredentialsByLogin(ctx context.Context, login string) (*model.Credentials, error) {
	idStr, err := s.client.Get(ctx, credLoginIndexKey(login)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrCredentialsNotFound
		}
		return nil, err
	}

	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		return nil, err
	}
	return s.GetCredentials(ctx, model.PlayerID(id))
}

// Order operations

func (s *Storage) AllocateOrderID(ctx context.Context) (model.OrderID, error) {
	id, err := s.client.Incr(ctx, orderIDSeqKey()).Result()
	if err != nil {
		return 0, err
	}
	return model.OrderID(id), nil
}

func (s *Storage) SaveOrder(ctx context.Context, record *model.OrderRecord) error {
	data, err := json.Marshal(codec.OrderToDocument(record))
	if err != nil {
		return err
	}

	key := orderKey(record.ID)

	pipe := s.client.Pipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.Set(ctx, orderNameIndexKey(record.Name()), strconv.FormatUint(uint64(record.ID), 10), 0)
	pipe.SAdd(ctx, ordersIndexKey(), key)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetOrder(ctx context.Context, id model.OrderID) (*model.OrderRecord, error) {
	data, err := s.client.Get(ctx, orderKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrOrderNotFound
		}
		return nil, err
	}
	return decodeOrder(data)
}

func (s *Storage) GetOrderByName(ctx context.Context, name string) (*model.OrderRecord, error) {
	idStr, err := s.client.Get(ctx, orderNameIndexKey(name)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrOrderNotFound
		}
		return nil, err
	}

	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		return nil, err
	}
	return s.GetOrder(ctx, model.OrderID(id))
}

func (s *Storage) ListOrders(ctx context.Context) ([]*model.OrderRecord, error) {
	keys, err := s.client.SMembers(ctx, ordersIndexKey()).Result()
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return []*model.OrderRecord{}, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	records := make([]*model.OrderRecord, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue
		}
		record, err := decodeOrder([]byte(val.(string)))
		if err != nil {
			continue // Skip invalid data
		}
		records = append(records, record)
	}

	sortOrders(records)
	return records, nil
}

// Helpers

// Set membership comes back unordered; list calls promise id order.
func sortPlayers(records []*model.PlayerRecord) {
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
}

func sortOrders(records []*model.OrderRecord) {
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
}

func decodePlayer(data []byte) (*model.PlayerRecord, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return codec.PlayerFromDocument(doc)
}

func decodeOrder(data []byte) (*model.OrderRecord, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return codec.OrderFromDocument(doc)
}
