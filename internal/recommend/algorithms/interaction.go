// Hybridrec - Hybrid Video Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package algorithms

import "fmt"

// Interaction is a single observed (user, item, weight) triple.
type Interaction struct {
	User   string
	Item   string
	Weight float64
}

// InteractionMatrix is a dense user x item engagement pivot. Rows and
// columns follow first-appearance order; unobserved cells are zero and
// repeated (user, item) pairs hold the mean of their weights.
type InteractionMatrix struct {
	users     []string
	items     []string
	values    [][]float64
	userIndex map[string]int
	itemIndex map[string]int
}

// NewInteractionMatrix pivots interactions into a dense matrix. Entries
// with an empty user or item are skipped.
func NewInteractionMatrix(interactions []Interaction) *InteractionMatrix {
	m := &InteractionMatrix{
		userIndex: make(map[string]int),
		itemIndex: make(map[string]int),
	}

	type cell struct{ u, i int }
	sums := make(map[cell]float64)
	counts := make(map[cell]int)

	for _, in := range interactions {
		if in.User == "" || in.Item == "" {
			continue
		}
		u, ok := m.userIndex[in.User]
		if !ok {
			u = len(m.users)
			m.userIndex[in.User] = u
			m.users = append(m.users, in.User)
		}
		i, ok := m.itemIndex[in.Item]
		if !ok {
			i = len(m.items)
			m.itemIndex[in.Item] = i
			m.items = append(m.items, in.Item)
		}
		c := cell{u, i}
		sums[c] += in.Weight
		counts[c]++
	}

	m.values = make([][]float64, len(m.users))
	for u := range m.values {
		m.values[u] = make([]float64, len(m.items))
	}
	for c, sum := range sums {
		m.values[c.u][c.i] = sum / float64(counts[c])
	}
	return m
}

// RestoreInteractionMatrix rebuilds a matrix from persisted parts.
func RestoreInteractionMatrix(users, items []string, values [][]float64) (*InteractionMatrix, error) {
	if len(values) != len(users) {
		return nil, fmt.Errorf("interaction rows %d do not match %d users", len(values), len(users))
	}
	m := &InteractionMatrix{
		users:     users,
		items:     items,
		values:    values,
		userIndex: make(map[string]int, len(users)),
		itemIndex: make(map[string]int, len(items)),
	}
	for u, name := range users {
		if len(values[u]) != len(items) {
			return nil, fmt.Errorf("interaction row %d has %d columns, want %d", u, len(values[u]), len(items))
		}
		m.userIndex[name] = u
	}
	for i, id := range items {
		m.itemIndex[id] = i
	}
	return m, nil
}

// Rows returns the number of users.
func (m *InteractionMatrix) Rows() int { return len(m.users) }

// Cols returns the number of items.
func (m *InteractionMatrix) Cols() int { return len(m.items) }

// Users returns user identities in row order. Callers must not modify it.
func (m *InteractionMatrix) Users() []string { return m.users }

// Items returns item identifiers in column order. Callers must not modify it.
func (m *InteractionMatrix) Items() []string { return m.items }

// Values returns the dense rows. Callers must not modify them.
func (m *InteractionMatrix) Values() [][]float64 { return m.values }

// UserIndex returns the row of a user.
func (m *InteractionMatrix) UserIndex(user string) (int, bool) {
	u, ok := m.userIndex[user]
	return u, ok
}

// ItemIndex returns the column of an item.
func (m *InteractionMatrix) ItemIndex(item string) (int, bool) {
	i, ok := m.itemIndex[item]
	return i, ok
}

// At returns the weight at (u, i).
func (m *InteractionMatrix) At(u, i int) float64 {
	return m.values[u][i]
}

// MostEngaged returns the column with the highest weight in row u, the
// earliest column on ties. ok is false when the row has no positive weight.
func (m *InteractionMatrix) MostEngaged(u int) (col int, ok bool) {
	best := 0.0
	col = -1
	for i, w := range m.values[u] {
		if w > best {
			best = w
			col = i
		}
	}
	return col, col >= 0
}
