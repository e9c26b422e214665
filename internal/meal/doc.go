// Package meal defines the Meal record shared by the catalog and the battle
// engine.
//
// A Meal is validated once, at construction. Code that receives a Meal may
// assume:
//   - Name and Cuisine are non-empty and NFC-normalized
//   - Price >= 0
//   - Difficulty is one of LOW, MED, HIGH
//
// Nothing downstream re-validates these fields. A Meal built as a struct
// literal bypasses the checks; the battle engine treats an unknown
// difficulty found that way as a programmer error.
package meal
