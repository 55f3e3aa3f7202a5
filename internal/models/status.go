package models

// MigrationStatus is the per-record progress marker stored in the migration
// source tables. A NULL or "new" status column counts as pending.
type MigrationStatus string

const (
	StatusPending MigrationStatus = "new"
	StatusDone    MigrationStatus = "done"
	StatusFailed  MigrationStatus = "failed"
)

// CanTransitionTo reports whether a status change is permitted. Done is
// terminal; failed records are only reset to pending by an operator, outside
// the engine.
func (s MigrationStatus) CanTransitionTo(next MigrationStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusDone || next == StatusFailed
	default:
		return false
	}
}
