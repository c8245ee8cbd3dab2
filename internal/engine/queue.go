package engine

import "math/rand/v2"

// NewQueue returns a uniformly shuffled bag holding each piece type once.
func NewQueue(rng *rand.Rand) []PieceType {
	bag := AllPieceTypes()
	// Fisher-Yates
	for i := len(bag) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		bag[i], bag[j] = bag[j], bag[i]
	}
	return bag
}

// SpawnPiece returns a piece of type t at the spawn point.
func SpawnPiece(t PieceType) Piece {
	return Piece{Type: t, Position: InitialPosition}
}

// DrawNext pops the front of queue as a freshly spawned piece. A new bag is
// appended as soon as the queue runs dry, so the returned queue is never
// empty. The input slice is left untouched.
func DrawNext(queue []PieceType, rng *rand.Rand) (Piece, []PieceType) {
	if len(queue) == 0 {
		queue = NewQueue(rng)
	}
	piece := SpawnPiece(queue[0])
	rest := make([]PieceType, len(queue)-1, len(queue)-1+len(AllPieceTypes()))
	copy(rest, queue[1:])
	if len(rest) == 0 {
		rest = append(rest, NewQueue(rng)...)
	}
	return piece, rest
}

// Preview returns up to n upcoming piece types without drawing them.
func Preview(queue []PieceType, n int) []PieceType {
	n = min(max(n, 0), len(queue))
	out := make([]PieceType, n)
	copy(out, queue[:n])
	return out
}
