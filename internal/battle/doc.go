// Package battle implements the two-combatant battle engine.
//
// The engine stages up to two meals, scores each, turns the score gap into
// a win probability, and consults a random.Source to pick the winner.
//
// STATE MACHINE:
//
// The roster size is the only state:
//
//	EMPTY(0) --Stage--> ONE(1) --Stage--> TWO(2) --Resolve--> ONE(winner)
//	any --Clear--> EMPTY
//
// Resolve is rejected unless the roster holds exactly two combatants. The
// winner stays staged, so a caller can keep a champion and stage the next
// challenger.
//
// DECISION RULE:
//
//	delta      = |s1 - s2| / 100
//	normalized = 1 / (1 + e^-delta)      in [0.5, 1)
//	draw < normalized  => higher score wins
//	otherwise          => lower score wins
//
// At equal scores the first staged combatant counts as the higher one, so
// the outcome is a coin flip decided by the draw alone.
//
// FAILURES:
//
// Resolve mutates the roster only after the draw and both stats writes
// succeed. A failed Resolve leaves both combatants staged. Errors from the
// random source and the stats recorder are returned as-is so callers can
// match them with errors.Is.
//
// Thread-safety: every public Engine method holds the engine mutex for its
// whole duration, including the network calls made by Resolve.
package battle
