package nfa

import (
	"encoding/binary"

	"github.com/dchest/siphash"
	"golang.org/x/exp/slices"
)

// DefaultDFACacheSize is the number of DFA states kept before the cache is
// flushed.
const DefaultDFACacheSize = 4096

// siphash keys for interning state sets; any fixed pair works.
const (
	dfaKey0 = 0x736f6d6570736575
	dfaKey1 = 0x646f72616e646f6d
)

const deadState = 0

type dfaState struct {
	set    []StateID // sorted, epsilon closed
	accept bool
	// next[c] is the index of the successor plus one; zero means not yet
	// computed.
	next [256]int32
}

// DFA lazily determinises an NFA: every distinct set of live NFA states is
// interned once and its transitions are filled in the first time a byte is
// read from it. Results are identical to NFA.MatchString. A DFA is not safe
// for concurrent use.
type DFA struct {
	nfa       *NFA
	maxStates int
	states    []*dfaState
	index     map[uint64][]int32
	start     int32
	flushes   int
	m         *machine
	key       []byte
}

// NewDFA returns an empty cache over n holding at most maxStates states.
// maxStates <= 0 means DefaultDFACacheSize.
func (n *NFA) NewDFA(maxStates int) *DFA {
	if maxStates <= 0 {
		maxStates = DefaultDFACacheSize
	}
	if maxStates < 3 {
		maxStates = 3
	}
	d := &DFA{
		nfa:       n,
		maxStates: maxStates,
		m:         newMachine(n),
	}
	d.reset()
	return d
}

// reset drops every cached state except the dead one.
func (d *DFA) reset() {
	dead := &dfaState{}
	for c := range dead.next {
		dead.next[c] = deadState + 1
	}
	d.states = append(d.states[:0], dead)
	d.index = map[uint64][]int32{d.hash(nil): {deadState}}
	d.start = -1
}

// Len returns the number of cached states, including the dead state.
func (d *DFA) Len() int { return len(d.states) }

// Flushes returns how many times the cache has been cleared.
func (d *DFA) Flushes() int { return d.flushes }

func (d *DFA) hash(set []StateID) uint64 {
	d.key = d.key[:0]
	for _, id := range set {
		d.key = binary.LittleEndian.AppendUint32(d.key, uint32(id))
	}
	return siphash.Hash(dfaKey0, dfaKey1, d.key)
}

// intern returns the index of the state for set, adding it if needed. set
// must be sorted and is retained.
func (d *DFA) intern(set []StateID) int32 {
	h := d.hash(set)
	for _, idx := range d.index[h] {
		if slices.Equal(d.states[idx].set, set) {
			return idx
		}
	}
	idx := int32(len(d.states))
	d.states = append(d.states, &dfaState{
		set:    set,
		accept: slices.Contains(set, d.nfa.accept),
	})
	d.index[h] = append(d.index[h], idx)
	return idx
}

func (d *DFA) startState() int32 {
	if d.start < 0 {
		d.m.current.clear()
		d.m.addClosure(d.m.current, d.nfa.start)
		d.start = d.intern(sortedCopy(d.m.current.dense))
	}
	return d.start
}

// transition computes and caches the successor of state cur on c. The
// returned index is valid in the (possibly flushed) cache.
func (d *DFA) transition(cur int32, c byte) int32 {
	from := d.states[cur].set

	d.m.current.clear()
	for _, id := range from {
		d.m.current.insert(id)
	}
	d.m.step(d.m.current, d.m.next, c)
	to := sortedCopy(d.m.next.dense)

	if len(d.states) >= d.maxStates {
		d.flushes++
		d.reset()
		cur = d.intern(from)
	}
	next := d.intern(to)
	d.states[cur].next[c] = next + 1
	return next
}

func sortedCopy(ids []StateID) []StateID {
	out := append([]StateID(nil), ids...)
	slices.Sort(out)
	return out
}

func dfaMatch[T string | []byte](d *DFA, input T) bool {
	cur := d.startState()
	for i := 0; i < len(input); i++ {
		c := input[i]
		if next := d.states[cur].next[c]; next != 0 {
			cur = next - 1
		} else {
			cur = d.transition(cur, c)
		}
		if cur == deadState {
			return false
		}
	}
	return d.states[cur].accept
}

// MatchString reports whether the automaton accepts the whole of s.
func (d *DFA) MatchString(s string) bool { return dfaMatch(d, s) }

// MatchBytes reports whether the automaton accepts the whole of b.
func (d *DFA) MatchBytes(b []byte) bool { return dfaMatch(d, b) }
