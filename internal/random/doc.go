// Package random provides the draw sources consumed by the battle engine.
//
// Every Source returns one float64 in [0,1] per call. Failures fall into two
// classes that callers can tell apart with errors.Is:
//
//   - ErrUnavailable: the source could not be reached (timeout, transport
//     failure, non-2xx status). Retrying later may succeed.
//   - ErrMalformed: the source answered, but the payload was not a float in
//     [0,1]. Retrying will not help.
//
// Sources never retry on their own.
package random
