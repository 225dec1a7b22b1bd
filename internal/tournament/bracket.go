package tournament

import "math/rand"

// Bracket holds single-elimination rounds. Match i of round r feeds match
// i/2 of round r+1, on side 1 when i is even.
type Bracket struct {
	Rounds [][]*Match `json:"rounds"`
}

type Match struct {
	Round     int     `json:"round"`
	Order     int     `json:"order"`
	Player1   *Player `json:"player1"`
	Player2   *Player `json:"player2"`
	Winner    *Player `json:"winner"`
	Completed bool    `json:"completed"`
	Bye       bool    `json:"bye"`
}

// Ready reports whether both sides are known and no winner is recorded.
func (m *Match) Ready() bool {
	return !m.Completed && m.Player1 != nil && m.Player2 != nil
}

func (m *Match) has(address string) bool {
	return (m.Player1 != nil && m.Player1.Address == address) ||
		(m.Player2 != nil && m.Player2.Address == address)
}

func (m *Match) opponent(address string) *Player {
	switch {
	case m.Player1 != nil && m.Player1.Address == address:
		return m.Player2
	case m.Player2 != nil && m.Player2.Address == address:
		return m.Player1
	}
	return nil
}

func (m *Match) clone() *Match {
	out := *m
	out.Player1 = m.Player1.clone()
	out.Player2 = m.Player2.clone()
	out.Winner = m.Winner.clone()
	return &out
}

// generateBracket shuffles players and pairs them into the first round. An
// odd player out gets a completed bye. Later rounds start empty.
func generateBracket(players []Player, rng *rand.Rand) *Bracket {
	seeded := make([]Player, len(players))
	copy(seeded, players)
	rng.Shuffle(len(seeded), func(i, j int) {
		seeded[i], seeded[j] = seeded[j], seeded[i]
	})

	b := &Bracket{}
	first := make([]*Match, 0, (len(seeded)+1)/2)
	for i := 0; i < len(seeded); i += 2 {
		m := &Match{Round: 1, Order: len(first) + 1}
		p1 := seeded[i]
		m.Player1 = &p1
		if i+1 < len(seeded) {
			p2 := seeded[i+1]
			m.Player2 = &p2
		} else {
			m.Bye = true
		}
		first = append(first, m)
	}
	b.Rounds = append(b.Rounds, first)

	for prev := len(first); prev > 1; {
		n := (prev + 1) / 2
		round := make([]*Match, n)
		for j := range round {
			round[j] = &Match{
				Round: len(b.Rounds) + 1,
				Order: j + 1,
				Bye:   2*j+1 >= prev,
			}
		}
		b.Rounds = append(b.Rounds, round)
		prev = n
	}

	for i, m := range first {
		if m.Bye {
			b.decide(0, i, m.Player1)
		}
	}
	return b
}

// decide records winner for match i of round r (0-based) and carries the
// winner forward through any byes. It returns true when the final was
// decided.
func (b *Bracket) decide(r, i int, winner *Player) bool {
	m := b.Rounds[r][i]
	w := *winner
	m.Winner = &w
	m.Completed = true
	if r == len(b.Rounds)-1 {
		return true
	}
	next := b.Rounds[r+1][i/2]
	p := w
	if i%2 == 0 {
		next.Player1 = &p
	} else {
		next.Player2 = &p
	}
	if next.Bye {
		return b.decide(r+1, i/2, &p)
	}
	return false
}

// Match returns the match at the 1-based round and order.
func (b *Bracket) Match(round, order int) (*Match, bool) {
	if b == nil || round < 1 || round > len(b.Rounds) {
		return nil, false
	}
	r := b.Rounds[round-1]
	if order < 1 || order > len(r) {
		return nil, false
	}
	return r[order-1], true
}

// Final returns the last-round match.
func (b *Bracket) Final() *Match {
	if b == nil || len(b.Rounds) == 0 {
		return nil
	}
	return b.Rounds[len(b.Rounds)-1][0]
}

// ReadyMatches lists matches that can be reported now, in bracket order.
func (b *Bracket) ReadyMatches() []Match {
	if b == nil {
		return nil
	}
	var out []Match
	for _, round := range b.Rounds {
		for _, m := range round {
			if m.Ready() {
				out = append(out, *m.clone())
			}
		}
	}
	return out
}

func (b *Bracket) clone() *Bracket {
	if b == nil {
		return nil
	}
	out := &Bracket{Rounds: make([][]*Match, len(b.Rounds))}
	for r, round := range b.Rounds {
		out.Rounds[r] = make([]*Match, len(round))
		for i, m := range round {
			out.Rounds[r][i] = m.clone()
		}
	}
	return out
}
