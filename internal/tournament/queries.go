package tournament

import (
	"fmt"
	"sort"
)

const leaderboardSize = 10

// Tournaments returns every tournament, newest first.
func (m *Manager) Tournaments() []*Tournament {
	return m.filter(func(*Tournament) bool { return true })
}

// ActiveTournaments returns tournaments that are not completed.
func (m *Manager) ActiveTournaments() []*Tournament {
	return m.filter(func(t *Tournament) bool { return t.Status != StatusCompleted })
}

func (m *Manager) CompletedTournaments() []*Tournament {
	return m.filter(func(t *Tournament) bool { return t.Status == StatusCompleted })
}

func (m *Manager) filter(keep func(*Tournament) bool) []*Tournament {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Tournament, 0, len(m.tournaments))
	for _, t := range m.tournaments {
		if keep(t) {
			out = append(out, t.clone())
		}
	}
	sortTournaments(out)
	return out
}

func (m *Manager) Tournament(id string) (*Tournament, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tournaments[id]
	if !ok {
		return nil, fmt.Errorf("%w: tournament %s", ErrNotFound, id)
	}
	return t.clone(), nil
}

// Payouts returns payouts, most recent first.
func (m *Manager) Payouts() []Payout {
	m.mu.Lock()
	out := append([]Payout{}, m.payouts...)
	m.mu.Unlock()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

// PlayerStats returns the profile for address, or a zero profile carrying
// only the address when the player is unknown.
func (m *Manager) PlayerStats(address string) PlayerProfile {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.players[address]; ok {
		return *p
	}
	return PlayerProfile{Address: address}
}

func (m *Manager) Leaderboard() Leaderboard {
	m.mu.Lock()
	all := make([]PlayerProfile, 0, len(m.players))
	for _, p := range m.players {
		all = append(all, *p)
	}
	m.mu.Unlock()

	lb := Leaderboard{TopWinners: []PlayerProfile{}, MostActive: []PlayerProfile{}}
	for _, p := range all {
		if p.TournamentsWon > 0 {
			lb.TopWinners = append(lb.TopWinners, p)
		}
		if p.TournamentsPlayed > 0 {
			lb.MostActive = append(lb.MostActive, p)
		}
	}
	sort.Slice(lb.TopWinners, func(i, j int) bool {
		a, b := lb.TopWinners[i], lb.TopWinners[j]
		if a.TotalEarnings != b.TotalEarnings {
			return a.TotalEarnings > b.TotalEarnings
		}
		return a.Address < b.Address
	})
	sort.Slice(lb.MostActive, func(i, j int) bool {
		a, b := lb.MostActive[i], lb.MostActive[j]
		if a.TournamentsPlayed != b.TournamentsPlayed {
			return a.TournamentsPlayed > b.TournamentsPlayed
		}
		return a.Address < b.Address
	})
	if len(lb.TopWinners) > leaderboardSize {
		lb.TopWinners = lb.TopWinners[:leaderboardSize]
	}
	if len(lb.MostActive) > leaderboardSize {
		lb.MostActive = lb.MostActive[:leaderboardSize]
	}
	return lb
}

func (m *Manager) Statistics() Statistics {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := Statistics{
		TotalTournaments: len(m.tournaments),
		TotalPlayers:     len(m.players),
	}
	for _, t := range m.tournaments {
		switch t.Status {
		case StatusFilling:
			s.FillingTournaments++
		case StatusActive:
			s.ActiveTournaments++
		case StatusCompleted:
			s.CompletedTournaments++
		}
	}
	for _, p := range m.payouts {
		s.TotalPrizeDistributed += p.PrizeAmount
		s.TotalPlatformFees += p.PlatformFee
	}
	return s
}

// sortTournaments orders by creation time, newest first. Equal times fall
// back to id, which is sortable for generated ids.
func sortTournaments(ts []*Tournament) {
	sort.Slice(ts, func(i, j int) bool {
		if !ts[i].CreatedAt.Equal(ts[j].CreatedAt) {
			return ts[i].CreatedAt.After(ts[j].CreatedAt)
		}
		return ts[i].ID > ts[j].ID
	})
}

func sortProfiles(ps []*PlayerProfile) {
	sort.Slice(ps, func(i, j int) bool { return ps[i].Address < ps[j].Address })
}
