package redis

import (
	"context"
	"net/netip"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/bagrada/mythmeta/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// richPlayer exercises the whole document on the way through Redis.
func (s *StorageSuite) richPlayer(id model.PlayerID, login string) *model.PlayerRecord {
	record := model.NewPlayerRecord(id)
	record.SetLogin(login)
	record.SetPasswordSecret("secret")
	record.SetName("Alric")
	record.SetTeamName("The Nine")
	record.SetDescription("Last of the Avatara.")
	record.SetIconCollectionName("interfac")
	record.Flags = model.PlayerFlagAdmin
	record.LastLoginIP = netip.MustParseAddr("10.0.0.7")
	record.LastLoginTime = time.Date(2026, 2, 14, 8, 0, 0, 0, time.UTC)
	record.PrimaryColor = model.RGBColor{Red: 9, Green: 90, Blue: 200, Flags: 1}
	record.CountryCode = 49
	_ = record.Buddies.Insert(model.BuddyEntry{PlayerID: 31, Active: true}, model.RejectWhenFull)
	record.RankedScore = model.ScoreDatum{GamesPlayed: 5, Wins: 4, Losses: 1,
		Points: 11, Rank: 3, HighestPoints: 12, HighestRank: 3}
	record.RankedScoresByGameType[model.GameTypeStampede] = model.ScoreDatum{GamesPlayed: 2, Wins: 2, Points: 6}
	record.AddOpponent(31)
	record.Aux = model.AdditionalPlayerData{GameTypeFlags: model.GameTypeMyth2, BuildVersion: 2150}
	return record
}

// Player tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	record := s.richPlayer(1, "alric")

	err := s.storage.SavePlayer(s.ctx, record)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal(record, retrieved, "the document round trip is lossless")
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, 404)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestGetPlayerByLogin() {
	_ = s.storage.SavePlayer(s.ctx, s.richPlayer(1, "alric"))
	_ = s.storage.SavePlayer(s.ctx, s.richPlayer(2, "shiver"))

	retrieved, err := s.storage.GetPlayerByLogin(s.ctx, "shiver")
	s.Require().NoError(err)
	s.Equal(model.PlayerID(2), retrieved.ID)
}

func (s *StorageSuite) TestGetPlayerByLoginNotFound() {
	_, err := s.storage.GetPlayerByLogin(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestAllocatePlayerIDsAreSequential() {
	first, err := s.storage.AllocatePlayerID(s.ctx)
	s.Require().NoError(err)
	second, err := s.storage.AllocatePlayerID(s.ctx)
	s.Require().NoError(err)

	s.Equal(model.PlayerID(1), first)
	s.Equal(model.PlayerID(2), second)
}

func (s *StorageSuite) TestListPlayers() {
	_ = s.storage.SavePlayer(s.ctx, s.richPlayer(2, "two"))
	_ = s.storage.SavePlayer(s.ctx, s.richPlayer(1, "one"))

	records, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(records, 2)
	s.Equal(model.PlayerID(1), records[0].ID)
	s.Equal(model.PlayerID(2), records[1].ID)
}

func (s *StorageSuite) TestListPlayersEmpty() {
	records, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Empty(records)
}

func (s *StorageSuite) TestResaveUpdatesRecord() {
	record := s.richPlayer(1, "alric")
	s.Require().NoError(s.storage.SavePlayer(s.ctx, record))

	record.RankedScore.Points = 40
	s.Require().NoError(s.storage.SavePlayer(s.ctx, record))

	retrieved, err := s.storage.GetPlayer(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal(int32(40), retrieved.RankedScore.Points)

	records, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Len(records, 1, "resave does not duplicate the index entry")
}

// Credential tests

func (s *StorageSuite) TestSaveAndGetCredentials() {
	creds := &model.Credentials{
		PlayerID:     1,
		Login:        "alric",
		PasswordHash: "$2a$10$fakehash",
		CreatedAt:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:    time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
	}

	err := s.storage.SaveCredentials(s.ctx, creds)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetCredentials(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal(creds, retrieved)
}

func (s *StorageSuite) TestGetCredentialsByLogin() {
	_ = s.storage.SaveCredentials(s.ctx, &model.Credentials{PlayerID: 9, Login: "alric", PasswordHash: "h"})

	retrieved, err := s.storage.GetCredentialsByLogin(s.ctx, "alric")
	s.Require().NoError(err)
	s.Equal(model.PlayerID(9), retrieved.PlayerID)
}

func (s *StorageSuite) TestGetCredentialsNotFound() {
	_, err := s.storage.GetCredentials(s.ctx, 404)
	s.ErrorIs(err, model.ErrCredentialsNotFound)

	_, err = s.storage.GetCredentialsByLogin(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrCredentialsNotFound)
}

// Order tests

func (s *StorageSuite) TestSaveAndGetOrder() {
	order := model.NewOrderRecord(1, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	order.SetName("Heron Guard")
	order.SetMotto("We remember.")
	_ = order.Members.Insert(model.OrderMember{PlayerID: 1, Online: true}, model.RejectWhenFull)
	order.RankedScore.Points = 30

	err := s.storage.SaveOrder(s.ctx, order)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetOrder(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal(order, retrieved)
}

func (s *StorageSuite) TestGetOrderByName() {
	order := model.NewOrderRecord(3, time.Now().UTC())
	order.SetName("Legion")
	_ = s.storage.SaveOrder(s.ctx, order)

	retrieved, err := s.storage.GetOrderByName(s.ctx, "Legion")
	s.Require().NoError(err)
	s.Equal(model.OrderID(3), retrieved.ID)
}

func (s *StorageSuite) TestGetOrderNotFound() {
	_, err := s.storage.GetOrder(s.ctx, 404)
	s.ErrorIs(err, model.ErrOrderNotFound)

	_, err = s.storage.GetOrderByName(s.ctx, "Nobody")
	s.ErrorIs(err, model.ErrOrderNotFound)
}

func (s *StorageSuite) TestAllocateOrderIDsAreSequential() {
	first, err := s.storage.AllocateOrderID(s.ctx)
	s.Require().NoError(err)
	second, err := s.storage.AllocateOrderID(s.ctx)
	s.Require().NoError(err)

	s.Equal(model.OrderID(1), first)
	s.Equal(model.OrderID(2), second)
}

func (s *StorageSuite) TestListOrders() {
	for _, id := range []model.OrderID{4, 2} {
		order := model.NewOrderRecord(id, time.Now().UTC())
		order.SetName(string(rune('a' + id)))
		_ = s.storage.SaveOrder(s.ctx, order)
	}

	orders, err := s.storage.ListOrders(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(orders, 2)
	s.Equal(model.OrderID(2), orders[0].ID)
	s.Equal(model.OrderID(4), orders[1].ID)
}
