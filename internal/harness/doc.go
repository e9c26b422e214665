// Package harness runs scripted battle scenarios against a real engine.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: underdog_wins
//	description: "A low draw hands the battle to the lower scorer"
//	battle_id: test-battle-001
//	meals:
//	  - { meal: Sushi, cuisine: Japanese, price: 12.5, difficulty: MED }
//	  - { meal: Toast, cuisine: British, price: 2, difficulty: LOW }
//	draws: [0.99]
//	flow:
//	  - action: stage
//	    meal: Sushi
//	  - action: stage
//	    meal: Toast
//	  - action: resolve
//	    expect: { winner: Toast }
//	assertions:
//	  - type: roster
//	    meals: [Toast]
//	  - type: meal_stats
//	    meal: Sushi
//	    battles: 1
//	    wins: 0
//
// # Flow Actions
//
//   - stage: look the meal up by name and stage it
//   - resolve: resolve a battle, consuming one draw
//   - clear: empty the roster
//   - delete: soft-delete the meal in the catalog
//
// An expect clause names either the winner of a resolve or the error a step
// must fail with (see ErrorCases). Steps without an expect clause must
// succeed.
//
// # Assertion Types
//
//   - roster: the staged meals, in order, after the flow
//   - meal_stats: battles and wins recorded for one meal
//   - leaderboard: meal order of the leaderboard for a sort key
//   - trace_count: how many times an action appears in the trace
//
// # Deterministic Testing
//
// Each scenario runs against a fresh in-memory SQLite catalog with a scripted
// random source (random.Fixed) and a fixed battle id, so traces are stable
// across runs and can be compared against golden files.
package harness
