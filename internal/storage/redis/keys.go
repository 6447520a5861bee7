package redis

import (
	"fmt"

	"github.com/bagrada/mythmeta/internal/model"
)

// Key prefix for all metaserver data
const keyPrefix = "mythmeta"

// Key generation functions for each entity type

// playerKey returns the Redis key for a player record
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%d", keyPrefix, id)
}

// loginIndexKey returns the Redis key for the login -> player_id index
func loginIndexKey(login string) string {
	return fmt.Sprintf("%s:idx:login:%s", keyPrefix, login)
}

// playersIndexKey returns the Redis key for the SET of all player keys
func playersIndexKey() string {
	return fmt.Sprintf("%s:idx:players", keyPrefix)
}

// playerIDSeqKey returns the Redis key for the player id counter
func playerIDSeqKey() string {
	return fmt.Sprintf("%s:seq:player_id", keyPrefix)
}

// credentialsKey returns the Redis key for a player's credentials
func credentialsKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:credentials:%d", keyPrefix, playerID)
}

// credLoginIndexKey returns the Redis key for the login -> credentials index
func credLoginIndexKey(login string) string {
	return fmt.Sprintf("%s:idx:cred_login:%s", keyPrefix, login)
}

// orderKey returns the Redis key for an order record
func orderKey(id model.OrderID) string {
	return fmt.Sprintf("%s:order:%d", keyPrefix, id)
}

// orderNameIndexKey returns the Redis key for the name -> order_id index
func orderNameIndexKey(name string) string {
	return fmt.Sprintf("%s:idx:order_name:%s", keyPrefix, name)
}

// ordersIndexKey returns the Redis key for the SET of all order keys
func ordersIndexKey() string {
	return fmt.Sprintf("%s:idx:orders", keyPrefix)
}

// orderIDSeqKey returns the Redis key for the order id counter
func orderIDSeqKey() string {
	return fmt.Sprintf("%s:seq:order_id", keyPrefix)
}
