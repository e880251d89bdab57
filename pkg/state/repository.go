package state

// Repository persists the ingest ledger across agent restarts.
type Repository interface {
	// Load reads the persisted state. A missing ledger is not an
	// error; implementations return an empty State.
	Load() (State, error)

	// Save writes the state durably. Implementations must not leave a
	// partially written ledger behind on failure.
	Save(s State) error
}
