package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/bagrada/mythmeta/internal/model"
	"github.com/bagrada/mythmeta/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Records are stored by value: every save copies in and every get
// copies out, so callers always hold an isolated snapshot and can
// never see another writer's half-applied changes.
type Storage struct {
	mu sync.RWMutex

	nextPlayerID model.PlayerID
	nextOrderID  model.OrderID

	players     map[model.PlayerID]model.PlayerRecord
	loginIndex  map[string]model.PlayerID
	credentials map[model.PlayerID]model.Credentials
	credIndex   map[string]model.PlayerID

	orders     map[model.OrderID]model.OrderRecord
	orderNames map[string]model.OrderID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:     make(map[model.PlayerID]model.PlayerRecord),
		loginIndex:  make(map[string]model.PlayerID),
		credentials: make(map[model.PlayerID]model.Credentials),
		credIndex:   make(map[string]model.PlayerID),
		orders:      make(map[model.OrderID]model.OrderRecord),
		orderNames:  make(map[string]model.OrderID),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) AllocatePlayerID(ctx context.Context) (model.PlayerID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextPlayerID++
	return s.nextPlayerID, nil
}

func (s *Storage) SavePlayer(ctx context.Context, record *model.PlayerRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.players[record.ID]; ok && old.Login() != record.Login() {
		delete(s.loginIndex, old.Login())
	}
	s.players[record.ID] = *record
	s.loginIndex[record.Login()] = record.ID
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.PlayerRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return &record, nil
}

func (s *Storage) GetPlayerByLogin(ctx context.Context, login string) (*model.PlayerRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.loginIndex[login]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	record, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return &record, nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.PlayerRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := make([]*model.PlayerRecord, 0, len(s.players))
	for id := range s.players {
		record := s.players[id]
		records = append(records, &record)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records, nil
}

// Credential operations

func (s *Storage) SaveCredentials(ctx context.Context, creds *model.Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credentials[creds.PlayerID] = *creds
	s.credIndex[creds.Login] = creds.PlayerID
	return nil
}

func (s *Storage) GetCredentials(ctx context.Context, playerID model.PlayerID) (*model.Credentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	creds, ok := s.credentials[playerID]
	if !ok {
		return nil, model.ErrCredentialsNotFound
	}
	return &creds, nil
}

func (s *Storage) GetCredentialsByLogin(ctx context.Context, login string) (*model.Credentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	playerID, ok := s.credIndex[login]
	if !ok {
		return nil, model.ErrCredentialsNotFound
	}
	creds, ok := s.credentials[playerID]
	if !ok {
		return nil, model.ErrCredentialsNotFound
	}
	return &creds, nil
}

// Order operations

func (s *Storage) AllocateOrderID(ctx context.Context) (model.OrderID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextOrderID++
	return s.nextOrderID, nil
}

func (s *Storage) SaveOrder(ctx context.Context, record *model.OrderRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.orders[record.ID]; ok && old.Name() != record.Name() {
		delete(s.orderNames, old.Name())
	}
	s.orders[record.ID] = *record
	s.orderNames[record.Name()] = record.ID
	return nil
}

func (s *Storage) GetOrder(ctx context.Context, id model.OrderID) (*model.OrderRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.orders[id]
	if !ok {
		return nil, model.ErrOrderNotFound
	}
	return &record, nil
}

func (s *Storage) GetOrderByName(ctx context.Context, name string) (*model.OrderRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.orderNames[name]
	if !ok {
		return nil, model.ErrOrderNotFound
	}
	record, ok := s.orders[id]
	if !ok {
		return nil, model.ErrOrderNotFound
	}
	return &record, nil
}

func (s *Storage) ListOrders(ctx context.Context) ([]*model.OrderRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := make([]*model.OrderRecord, 0, len(s.orders))
	for id := range s.orders {
		record := s.orders[id]
		records = append(records, &record)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records, nil
}
