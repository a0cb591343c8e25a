package nfa

import "golang.org/x/exp/slices"

// sparseSet is a set of StateIDs with O(1) insert, membership and clear.
// sparse may hold stale values; membership is confirmed through dense.
type sparseSet struct {
	dense  []StateID
	sparse []int32
}

func newSparseSet(capacity int) *sparseSet {
	return &sparseSet{
		dense:  make([]StateID, 0, capacity),
		sparse: make([]int32, capacity),
	}
}

func (s *sparseSet) contains(id StateID) bool {
	i := s.sparse[id]
	return int(i) < len(s.dense) && s.dense[i] == id
}

// insert adds id and reports whether it was absent.
func (s *sparseSet) insert(id StateID) bool {
	if s.contains(id) {
		return false
	}
	s.sparse[id] = int32(len(s.dense))
	s.dense = append(s.dense, id)
	return true
}

func (s *sparseSet) clear() {
	s.dense = s.dense[:0]
}

// machine holds the scratch space for one simulation. The NFA itself is
// never written to.
type machine struct {
	nfa     *NFA
	current *sparseSet
	next    *sparseSet
	stack   []StateID
}

func newMachine(n *NFA) *machine {
	return &machine{
		nfa:     n,
		current: newSparseSet(len(n.states)),
		next:    newSparseSet(len(n.states)),
		stack:   make([]StateID, 0, 16),
	}
}

// addClosure inserts the epsilon closure of id into set. A state already
// in set had its successors pushed when it was inserted, so it is skipped;
// this is also what stops the walk on '*' and '+' loops.
func (m *machine) addClosure(set *sparseSet, id StateID) {
	m.stack = append(m.stack[:0], id)
	for len(m.stack) > 0 {
		id := m.stack[len(m.stack)-1]
		m.stack = m.stack[:len(m.stack)-1]
		if id == NoState || !set.insert(id) {
			continue
		}
		st := &m.nfa.states[id]
		if st.Label.Kind != Epsilon {
			continue
		}
		m.stack = append(m.stack, st.Edge2, st.Edge1)
	}
}

// step fills next with every state reachable from set by consuming c.
func (m *machine) step(set, next *sparseSet, c byte) {
	next.clear()
	for _, id := range set.dense {
		st := &m.nfa.states[id]
		if st.Label.Matches(c) {
			m.addClosure(next, st.Edge1)
		}
	}
}

func simulate[T string | []byte](m *machine, input T) bool {
	n := m.nfa
	m.current.clear()
	m.addClosure(m.current, n.start)

	for i := 0; i < len(input); i++ {
		m.step(m.current, m.next, input[i])
		m.current, m.next = m.next, m.current
		if len(m.current.dense) == 0 {
			return false
		}
	}

	if m.current.contains(n.accept) {
		return true
	}
	return len(input) == 0 && n.start == n.accept
}

func (n *NFA) getMachine() *machine {
	if m, ok := n.pool.Get().(*machine); ok {
		return m
	}
	return newMachine(n)
}

func (n *NFA) putMachine(m *machine) {
	n.pool.Put(m)
}

// MatchString reports whether the automaton accepts the whole of s.
func (n *NFA) MatchString(s string) bool {
	m := n.getMachine()
	defer n.putMachine(m)
	return simulate(m, s)
}

// MatchBytes reports whether the automaton accepts the whole of b.
func (n *NFA) MatchBytes(b []byte) bool {
	m := n.getMachine()
	defer n.putMachine(m)
	return simulate(m, b)
}

// Closure returns the epsilon closure of id in ascending order.
func (n *NFA) Closure(id StateID) []StateID {
	m := newMachine(n)
	m.addClosure(m.current, id)
	out := append([]StateID(nil), m.current.dense...)
	slices.Sort(out)
	return out
}

// ConsumingStates returns the ids of Literal and Wildcard states in
// ascending order.
func (n *NFA) ConsumingStates() []StateID {
	var out []StateID
	for i := range n.states {
		if n.states[i].Label.Consumes() {
			out = append(out, StateID(i))
		}
	}
	return out
}
