package announce

import (
	"fmt"
	"strconv"
	"time"

	"tournament-flow/internal/tournament"
)

const (
	colorCreated   = 0x6366F1
	colorJoined    = 0x5865F2
	colorStarted   = 0x3BA55D
	colorMatch     = 0xFEE75C
	colorCompleted = 0x57F287
	colorWarn      = 0xED4245

	defaultFooter = "TournamentFlow"
)

// FormatMessage renders ev as a webhook message. It reports false for events
// that carry nothing worth announcing.
func FormatMessage(ev tournament.Event) (Message, bool) {
	msg := Message{Footer: defaultFooter}
	if !ev.At.IsZero() {
		msg.Timestamp = ev.At.UTC().Format(time.RFC3339)
	}
	t := ev.Tournament

	switch ev.Name {
	case tournament.EventTournamentCreated:
		if t == nil {
			return Message{}, false
		}
		msg.Title = "New tournament · " + t.Name
		msg.Description = fmt.Sprintf("%s is open for registration.", t.Name)
		msg.Color = colorCreated
		msg.Fields = []Field{
			{Name: "Game", Value: t.GameType, Inline: true},
			{Name: "Seats", Value: strconv.Itoa(t.MaxPlayers), Inline: true},
			{Name: "Entry fee", Value: money(t.EntryFee), Inline: true},
		}
	case tournament.EventPlayerRegistered:
		if t == nil || ev.Player == nil {
			return Message{}, false
		}
		msg.Title = "Registration · " + t.Name
		msg.Description = fmt.Sprintf("%s joined.", ev.Player.Username)
		msg.Color = colorJoined
		msg.Fields = []Field{
			{Name: "Player", Value: tournament.FormatAddress(ev.Player.Address), Inline: true},
			{Name: "Seats", Value: fmt.Sprintf("%d/%d", len(t.RegisteredPlayers), t.MaxPlayers), Inline: true},
		}
	case tournament.EventTournamentStarted:
		if t == nil {
			return Message{}, false
		}
		msg.Title = "Tournament started · " + t.Name
		msg.Description = fmt.Sprintf("%d players are competing.", len(t.RegisteredPlayers))
		msg.Color = colorStarted
		msg.Fields = []Field{
			{Name: "Prize pool", Value: money(t.PrizePool), Inline: true},
			{Name: "Game", Value: t.GameType, Inline: true},
		}
	case tournament.EventMatchReported:
		m := ev.Match
		if m == nil || m.Winner == nil {
			return Message{}, false
		}
		msg.Title = fmt.Sprintf("Round %d · match %d", m.Round, m.Order)
		if t != nil {
			msg.Title += " · " + t.Name
		}
		msg.Description = fmt.Sprintf("%s advances.", m.Winner.Username)
		msg.Color = colorMatch
	case tournament.EventTournamentCompleted:
		p := ev.Payout
		if p == nil {
			return Message{}, false
		}
		msg.Title = "Champion · " + p.TournamentName
		msg.Description = fmt.Sprintf("%s wins %s.", p.Winner.Username, money(p.PrizeAmount))
		msg.Color = colorCompleted
		msg.Fields = []Field{
			{Name: "Winner", Value: tournament.FormatAddress(p.Winner.Address), Inline: true},
			{Name: "Prize", Value: money(p.PrizeAmount), Inline: true},
			{Name: "Tx", Value: tournament.FormatAddress(p.TransactionHash), Inline: true},
		}
	case tournament.EventPersistenceWarning:
		msg.Title = "Persistence warning"
		msg.Description = ev.Warning
		msg.Color = colorWarn
	default:
		return Message{}, false
	}
	return msg, true
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
