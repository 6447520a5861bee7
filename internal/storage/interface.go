package storage

import (
	"context"

	"github.com/bagrada/mythmeta/internal/model"
)

// Storage defines the interface for data persistence. There are no
// delete operations: player and order records are never removed, only
// flagged.
type Storage interface {
	// Player operations. AllocatePlayerID hands out the next account
	// id; ids are never reused.
	AllocatePlayerID(ctx context.Context) (model.PlayerID, error)
	SavePlayer(ctx context.Context, record *model.PlayerRecord) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.PlayerRecord, error)
	GetPlayerByLogin(ctx context.Context, login string) (*model.PlayerRecord, error)
	ListPlayers(ctx context.Context) ([]*model.PlayerRecord, error)

	// Credential operations, kept apart from player records so the
	// hash never rides along with gameplay data.
	SaveCredentials(ctx context.Context, creds *model.Credentials) error
	GetCredentials(ctx context.Context, playerID model.PlayerID) (*model.Credentials, error)
	GetCredentialsByLogin(ctx context.Context, login string) (*model.Credentials, error)

	// Order operations
	AllocateOrderID(ctx context.Context) (model.OrderID, error)
	SaveOrder(ctx context.Context, record *model.OrderRecord) error
	GetOrder(ctx context.Context, id model.OrderID) (*model.OrderRecord, error)
	GetOrderByName(ctx context.Context, name string) (*model.OrderRecord, error)
	ListOrders(ctx context.Context) ([]*model.OrderRecord, error)
}
