package model

// ScoreDatum is one accumulated scoring bucket. Players carry one for
// unranked play, one for ranked play overall, and one per game type.
type ScoreDatum struct {
	GamesPlayed     uint32
	Wins            uint32
	Losses          uint32
	Ties            uint32
	DamageInflicted uint32
	DamageReceived  uint32
	Disconnects     uint32
	Points          int32
	Rank            int16
	// HighestPoints and HighestRank are running maxima. They only ever
	// rise; ordinary updates that lower Points or Rank leave them alone.
	HighestPoints int32
	HighestRank   int16
	// NumericalRank is the position assigned by an external ranking
	// pass, stored verbatim.
	NumericalRank int16
}

// GameStanding is a player's outcome in a single game.
type GameStanding int

const (
	StandingWin GameStanding = iota
	StandingLoss
	StandingTie
)

// GameResult describes one player's outcome in one finished game.
// PointsDelta and NewRank come from the caller: ranking policy lives
// outside this package.
type GameResult struct {
	GameType        GameType
	Standing        GameStanding
	DamageInflicted uint32
	DamageReceived  uint32
	Disconnected    bool
	PointsDelta     int32
	NewRank         int16
	Opponents       []PlayerID
}

// Apply folds a game result into the datum. Watermarks move only when
// exceeded.
func (d *ScoreDatum) Apply(res GameResult) {
	d.GamesPlayed++
	switch res.Standing {
	case StandingWin:
		d.Wins++
	case StandingLoss:
		d.Losses++
	case StandingTie:
		d.Ties++
	}
	d.DamageInflicted += res.DamageInflicted
	d.DamageReceived += res.DamageReceived
	if res.Disconnected {
		d.Disconnects++
	}
	d.Points += res.PointsDelta
	d.Rank = res.NewRank
	if d.Points > d.HighestPoints {
		d.HighestPoints = d.Points
	}
	if d.Rank > d.HighestRank {
		d.HighestRank = d.Rank
	}
}

// AdditionalPlayerData is the client-reported extra block: which
// products the account has used and the newest build seen.
type AdditionalPlayerData struct {
	GameTypeFlags GameTypeFlags
	BuildVersion  int32
}
