package model

// GameType is a scoring category. The numeric value doubles as the
// index into per-game-type score tables, so the ordinals below are part
// of the wire contract and must never be reordered.
type GameType int16

const (
	GameTypeBodyCount        GameType = 0
	GameTypeStealTheBacon    GameType = 1
	GameTypeLastManOnTheHill GameType = 2
	GameTypeScavengerHunt    GameType = 3
	GameTypeFlagRally        GameType = 4
	GameTypeCaptureTheFlag   GameType = 5
	GameTypeBallsOnParade    GameType = 6
	GameTypeTerritories      GameType = 7
	GameTypeCaptures         GameType = 8
	GameTypeKingOfTheHill    GameType = 9
	GameTypeStampede         GameType = 10
	GameTypeAssassination    GameType = 11
	GameTypeHunting          GameType = 12
	GameTypeCustomScoring    GameType = 13
	GameTypeKingOfTheHillTFL GameType = 14

	// NumGameTypes counts the assigned ordinals; the score table keeps
	// MaxGameTypes slots with the tail reserved.
	NumGameTypes = 15
)

var gameTypeNames = map[GameType]string{
	GameTypeBodyCount:        "Body Count",
	GameTypeStealTheBacon:    "Steal the Bacon",
	GameTypeLastManOnTheHill: "Last Man on the Hill",
	GameTypeScavengerHunt:    "Scavenger Hunt",
	GameTypeFlagRally:        "Flag Rally",
	GameTypeCaptureTheFlag:   "Capture the Flag",
	GameTypeBallsOnParade:    "Balls on Parade",
	GameTypeTerritories:      "Territories",
	GameTypeCaptures:         "Captures",
	GameTypeKingOfTheHill:    "King of the Hill",
	GameTypeStampede:         "Stampede",
	GameTypeAssassination:    "Assassination",
	GameTypeHunting:          "Hunting",
	GameTypeCustomScoring:    "Custom Scoring",
	GameTypeKingOfTheHillTFL: "King of the Hill (TFL)",
}

// Valid reports whether the game type indexes a slot in the score table.
func (t GameType) Valid() bool {
	return t >= 0 && t < MaxGameTypes
}

func (t GameType) String() string {
	if name, ok := gameTypeNames[t]; ok {
		return name
	}
	return "Unknown"
}
