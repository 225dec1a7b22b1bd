package tournament

import "time"

type Status string

const (
	StatusFilling   Status = "filling"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

const (
	FirstPlace = "1st Place"

	winnerShare = 0.9
)

type Tournament struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Slug              string     `json:"slug"`
	Creator           string     `json:"creator"`
	MaxPlayers        int        `json:"maxPlayers"`
	EntryFee          float64    `json:"entryFee"`
	GameType          string     `json:"gameType"`
	Status            Status     `json:"status"`
	RegisteredPlayers []Player   `json:"registeredPlayers"`
	PrizePool         float64    `json:"prizePool"`
	CreatedAt         time.Time  `json:"createdAt"`
	StartedAt         *time.Time `json:"startedAt"`
	CompletedAt       *time.Time `json:"completedAt"`
	Winner            *Player    `json:"winner"`
	Bracket           *Bracket   `json:"bracket"`
}

func (t *Tournament) IsFull() bool {
	return len(t.RegisteredPlayers) >= t.MaxPlayers
}

func (t *Tournament) player(address string) (int, bool) {
	for i := range t.RegisteredPlayers {
		if t.RegisteredPlayers[i].Address == address {
			return i, true
		}
	}
	return -1, false
}

func (t *Tournament) clone() *Tournament {
	if t == nil {
		return nil
	}
	out := *t
	out.RegisteredPlayers = append([]Player(nil), t.RegisteredPlayers...)
	if out.RegisteredPlayers == nil {
		out.RegisteredPlayers = []Player{}
	}
	out.StartedAt = cloneTime(t.StartedAt)
	out.CompletedAt = cloneTime(t.CompletedAt)
	out.Winner = t.Winner.clone()
	out.Bracket = t.Bracket.clone()
	return &out
}

type Player struct {
	Address      string    `json:"address"`
	Username     string    `json:"username"`
	RegisteredAt time.Time `json:"registeredAt"`
	IsEliminated bool      `json:"isEliminated"`
}

func (p *Player) clone() *Player {
	if p == nil {
		return nil
	}
	out := *p
	return &out
}

type PlayerProfile struct {
	Address           string  `json:"address"`
	Username          string  `json:"username"`
	TournamentsPlayed int     `json:"tournamentsPlayed"`
	TournamentsWon    int     `json:"tournamentsWon"`
	TotalEarnings     float64 `json:"totalEarnings"`
}

type Payout struct {
	ID              string    `json:"id"`
	TournamentID    string    `json:"tournamentId"`
	TournamentName  string    `json:"tournamentName"`
	Winner          Player    `json:"winner"`
	PrizeAmount     float64   `json:"prizeAmount"`
	PlatformFee     float64   `json:"platformFee"`
	Position        string    `json:"position"`
	TransactionHash string    `json:"transactionHash"`
	Timestamp       time.Time `json:"timestamp"`
	GameType        string    `json:"gameType"`
}

// Completion is the result of finishing a tournament.
type Completion struct {
	Tournament *Tournament `json:"tournament"`
	Payout     Payout      `json:"payout"`
}

// MatchReport is the result of recording one bracket match. Completion is
// set when the reported match was the final.
type MatchReport struct {
	Tournament *Tournament `json:"tournament"`
	Match      Match       `json:"match"`
	Completion *Completion `json:"completion,omitempty"`
}

type CreateInput struct {
	ID         string  `json:"id,omitempty"`
	Name       string  `json:"name"`
	Creator    string  `json:"creator"`
	MaxPlayers int     `json:"maxPlayers"`
	EntryFee   float64 `json:"entryFee"`
	GameType   string  `json:"gameType"`
}

type PlayerInput struct {
	Address  string `json:"address"`
	Username string `json:"username,omitempty"`
}

type Leaderboard struct {
	TopWinners []PlayerProfile `json:"topWinners"`
	MostActive []PlayerProfile `json:"mostActive"`
}

type Statistics struct {
	TotalTournaments      int     `json:"totalTournaments"`
	FillingTournaments    int     `json:"fillingTournaments"`
	ActiveTournaments     int     `json:"activeTournaments"`
	CompletedTournaments  int     `json:"completedTournaments"`
	TotalPrizeDistributed float64 `json:"totalPrizeDistributed"`
	TotalPlatformFees     float64 `json:"totalPlatformFees"`
	TotalPlayers          int     `json:"totalPlayers"`
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
