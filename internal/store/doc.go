// Package store provides the SQLite-backed meal catalog.
//
// The catalog holds one row per meal with its battle statistics:
//   - Meals are soft-deleted: the row stays, deleted=TRUE hides it
//   - Names are unique across live and deleted meals
//   - battles/wins only ever increase, via RecordWin and RecordLoss
//
// Store satisfies battle.StatsRecorder.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// Every query orders by a unique key so listings are deterministic.
package store
