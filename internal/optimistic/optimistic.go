package optimistic

// Outcome reports how an Apply attempt settled.
type Outcome int

const (
	Committed Outcome = iota
	RolledBack
)

func (o Outcome) String() string {
	if o == Committed {
		return "committed"
	}
	return "rolled_back"
}

// Apply runs the shared optimistic-update cycle used by the agenda and
// attendance engines: snapshot the local state, mutate it immediately so the
// caller can render without waiting, then run the remote call. If the remote
// call fails the snapshot is restored, so local state is never left
// half-applied.
//
// clone must produce a copy deep enough that mutate cannot alias the
// snapshot.
func Apply[S any](state *S, clone func(S) S, mutate func(*S), remote func() error) (Outcome, error) {
	snapshot := clone(*state)
	mutate(state)
	if err := remote(); err != nil {
		*state = snapshot
		return RolledBack, err
	}
	return Committed, nil
}
