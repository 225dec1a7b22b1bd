package main

import (
	"fmt"
	"time"

	"tournament-flow/internal/tournament"
)

// describe renders one feed event as a single terminal line.
func describe(ev tournament.Event, now time.Time) string {
	prefix := fmt.Sprintf("[%s] %-20s", tournament.FormatTimeAgo(ev.At, now), ev.Name)
	name := ev.TournamentID
	if ev.Tournament != nil {
		name = ev.Tournament.Name
	}
	switch ev.Name {
	case tournament.EventTournamentCreated:
		if t := ev.Tournament; t != nil {
			return fmt.Sprintf("%s %s (%s, %d seats, fee %.2f)", prefix, t.Name, t.GameType, t.MaxPlayers, t.EntryFee)
		}
	case tournament.EventPlayerRegistered:
		if ev.Player != nil {
			seats := ""
			if t := ev.Tournament; t != nil {
				seats = fmt.Sprintf(" %d/%d", len(t.RegisteredPlayers), t.MaxPlayers)
			}
			return fmt.Sprintf("%s %s joined %s%s", prefix, tournament.FormatAddress(ev.Player.Address), name, seats)
		}
	case tournament.EventTournamentStarted:
		if t := ev.Tournament; t != nil {
			return fmt.Sprintf("%s %s with %d players, pool %.2f", prefix, t.Name, len(t.RegisteredPlayers), t.PrizePool)
		}
	case tournament.EventMatchReported:
		if m := ev.Match; m != nil && m.Winner != nil {
			return fmt.Sprintf("%s %s round %d match %d won by %s", prefix, name, m.Round, m.Order, tournament.FormatAddress(m.Winner.Address))
		}
	case tournament.EventTournamentCompleted:
		if p := ev.Payout; p != nil {
			return fmt.Sprintf("%s %s won by %s, prize %.2f", prefix, name, tournament.FormatAddress(p.Winner.Address), p.PrizeAmount)
		}
	case tournament.EventPersistenceWarning:
		return fmt.Sprintf("%s %s", prefix, ev.Warning)
	}
	return fmt.Sprintf("%s %s", prefix, name)
}
