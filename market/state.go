package market

import "time"

// GameState is one tick of the world: the scoreboard plus every market
// snapshot observed at that instant. States are produced by a feed and are
// immutable once handed to the runner.
type GameState struct {
	GameID    string
	Timestamp time.Time

	HomeTeam  string
	AwayTeam  string
	ScoreHome *int
	ScoreAway *int
	ScoreDiff int

	Quarter       int
	TimeRemaining float64 // minutes left in the game

	Markets []Market
}

// Market returns the snapshot for the given market id, or false if the
// feed had no row for it this tick.
func (s *GameState) Market(id string) (Market, bool) {
	for _, m := range s.Markets {
		if m.ID == id {
			return m, true
		}
	}
	return Market{}, false
}

// Winner returns the team with the strictly higher score. ok is false when
// either score is missing or the game is tied, in which case no settlement
// can be performed.
func (s *GameState) Winner() (team string, ok bool) {
	if s.ScoreHome == nil || s.ScoreAway == nil {
		return "", false
	}
	switch {
	case *s.ScoreHome > *s.ScoreAway:
		return s.HomeTeam, true
	case *s.ScoreAway > *s.ScoreHome:
		return s.AwayTeam, true
	}
	return "", false
}

// Ptr is a convenience for building nullable fields in literals and tests.
func Ptr[T any](v T) *T { return &v }
