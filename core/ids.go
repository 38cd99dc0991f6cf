package core

// Ordinal is a zero-based logical position within the current (possibly
// filtered or sorted) view of an axis. It is a distinct type so that a
// logical position can never be passed where a physical slot is expected.
type Ordinal int

// Coordinate is a physical slot index into the backing arrays. Coordinates
// are stable across filtering and sorting of the opposite axis.
type Coordinate int

// NoCoordinate is the not-found sentinel returned by probing lookups.
const NoCoordinate = Coordinate(-1)
