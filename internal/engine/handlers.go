package engine

// tryMove returns candidate when it is a valid placement, otherwise piece.
func tryMove(grid Grid, piece, candidate Piece) (Piece, bool) {
	if !IsPlacementValid(grid, candidate) {
		return piece, false
	}
	return candidate, true
}

func moveHorizontal(s State, dx int) State {
	if !s.canAct() {
		return s
	}
	s.Current, _ = tryMove(s.Grid, s.Current, s.Current.Translate(dx, 0))
	return s
}

func moveLeft(s State) State  { return moveHorizontal(s, -1) }
func moveRight(s State) State { return moveHorizontal(s, 1) }

// moveDown is a soft drop: one row down, or an immediate lock when resting.
func moveDown(s State) State {
	if !s.canAct() {
		return s
	}
	if p, ok := tryMove(s.Grid, s.Current, s.Current.Translate(0, 1)); ok {
		s.Current = p
		return s
	}
	return lockPiece(s, s.Current)
}

// tick is one gravity step. A resting piece only locks once its lock delay
// has run out or it has nowhere left to go.
func tick(s State) State {
	if !s.canAct() {
		return s
	}
	if p, ok := tryMove(s.Grid, s.Current, s.Current.Translate(0, 1)); ok {
		s.Current = p
		return s
	}
	if s.LockDelayCounter <= LockDelayFrames && !isBlocked(s.Grid, s.Current) {
		return s
	}
	return lockPiece(s, s.Current)
}

func rotate(s State, delta int) State {
	if !s.canAct() {
		return s
	}
	s.Current, _ = tryMove(s.Grid, s.Current, rotationNudge(s.Current.Rotate(delta)))
	return s
}

func rotateLeft(s State) State  { return rotate(s, -1) }
func rotateRight(s State) State { return rotate(s, 1) }

// hardDrop only arms the drop animation; endHardDrop does the work.
func hardDrop(s State) State {
	if !s.canAct() {
		return s
	}
	s.Animation = AnimationDroppingPiece
	return s
}

func endHardDrop(s State) State {
	if s.Animation != AnimationDroppingPiece || s.Status != StatusPlaying {
		return s
	}
	landed := s.Current
	landed.Position = LastValidPosition(s.Grid, s.Current)
	s.Animation = AnimationNone
	return lockPiece(s, landed)
}

// clearFullLines finishes a line-clear animation: compacts the grid, scores
// the removed rows and brings in the next piece.
func clearFullLines(s State) State {
	if len(s.FullLines) == 0 || s.Status != StatusPlaying {
		return s
	}
	grid, removed := removeFullLines(s.Grid)
	s.Grid = grid
	s.Score += CalculateScore(removed)
	s.LinesCleared += removed
	s.FullLines = nil
	s.Animation = AnimationNone
	return spawnNext(s)
}

func holdPiece(s State) State {
	if !s.canAct() || !s.CanHold {
		return s
	}
	next := s
	var incoming Piece
	if s.HasHold() {
		incoming = SpawnPiece(s.Hold)
	} else {
		incoming, next.Queue = DrawNext(s.Queue, next.random())
	}
	if !IsPlacementValid(s.Grid, incoming) {
		return s
	}
	next.Hold = s.Current.Type
	next.Current = incoming
	next.CanHold = false
	next.LockDelayCounter, next.LockDelayResets = 0, 0
	return next
}

// updateLockDelay runs once per frame. Resting time accrues on the counter;
// lifting off again refunds it, but only MaxLockDelayResets times per piece.
func updateLockDelay(s State) State {
	if !s.canAct() {
		return s
	}
	if _, ok := tryMove(s.Grid, s.Current, s.Current.Translate(0, 1)); !ok {
		if isBlocked(s.Grid, s.Current) {
			return s
		}
		s.LockDelayCounter++
		return s
	}
	if s.LockDelayCounter > 0 && s.LockDelayResets < MaxLockDelayResets {
		s.LockDelayResets++
		s.LockDelayCounter = 0
	}
	return s
}

// lockPiece fuses piece into a copy of the grid. Full rows arm the clear
// animation; otherwise the next piece spawns right away.
func lockPiece(s State, piece Piece) State {
	grid := s.Grid.Clone()
	AddPieceToBoard(grid, piece)
	s.Grid = grid
	s.Current = piece
	s.LockDelayCounter, s.LockDelayResets = 0, 0

	if lines := FullLines(grid); len(lines) > 0 {
		s.FullLines = lines
		s.Animation = AnimationClearingLines
		return s
	}
	s.FullLines = nil
	return spawnNext(s)
}

// spawnNext draws the next piece and ends the game if it does not fit.
func spawnNext(s State) State {
	s.Current, s.Queue = DrawNext(s.Queue, s.random())
	s.CanHold = true
	if !IsPlacementValid(s.Grid, s.Current) {
		s.Status = StatusGameOver
	}
	return s
}

// isBlocked reports whether piece can neither shift left, right or down nor
// rotate in place. O pieces are only tested for translations.
func isBlocked(grid Grid, piece Piece) bool {
	candidates := []Piece{
		piece.Translate(-1, 0),
		piece.Translate(1, 0),
		piece.Translate(0, 1),
	}
	if piece.Type != PieceO {
		candidates = append(candidates, piece.Rotate(1), piece.Rotate(-1))
	}
	for _, c := range candidates {
		if IsPlacementValid(grid, c) {
			return false
		}
	}
	return true
}
