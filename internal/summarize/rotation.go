package summarize

// State is one point in the failover loop over the credential pool.
// The transition function is pure so the rotation policy can be tested
// without any network calls.
type State struct {
	Index     int
	Terminal  bool
	Succeeded bool
}

// Start positions the loop on the first credential. An empty pool is
// immediately terminal and failed.
func Start(poolSize int) State {
	if poolSize <= 0 {
		return State{Terminal: true}
	}
	return State{Index: 0}
}

// Advance applies the outcome of trying the current credential. Success is
// terminal right away - first success wins and no further credential is
// touched. Failure moves to the next credential, or terminates exhausted
// when the pool has run out. No credential is ever visited twice.
func Advance(s State, succeeded bool, poolSize int) State {
	if s.Terminal {
		return s
	}
	if succeeded {
		return State{Index: s.Index, Terminal: true, Succeeded: true}
	}
	next := s.Index + 1
	if next >= poolSize {
		return State{Index: s.Index, Terminal: true}
	}
	return State{Index: next}
}
