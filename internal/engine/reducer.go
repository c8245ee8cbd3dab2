package engine

import "fmt"

// Reduce applies a single action to s and returns the resulting state.
// Rejected moves return s unchanged. An action type Reduce does not know
// is a programming error and panics.
func Reduce(s State, a Action) State {
	switch a.Type {
	case ActionRestart:
		return restart(s)
	case ActionPause:
		return pauseGame(s)
	case ActionResume:
		return resumeGame(s)
	case ActionTick:
		return tick(s)
	case ActionMoveLeft:
		return moveLeft(s)
	case ActionMoveRight:
		return moveRight(s)
	case ActionMoveDown:
		return moveDown(s)
	case ActionRotateLeft:
		return rotateLeft(s)
	case ActionRotateRight:
		return rotateRight(s)
	case ActionHardDrop:
		return hardDrop(s)
	case ActionHold:
		return holdPiece(s)
	case ActionClearFullLines:
		return clearFullLines(s)
	case ActionEndHardDrop:
		return endHardDrop(s)
	case ActionStartAnimation:
		return startAnimation(s, a.Animation)
	case ActionEndAnimation:
		return endAnimation(s)
	case ActionOpenSettings:
		return openSettings(s)
	case ActionCloseSettings:
		return closeSettings(s)
	case ActionSaveSettings:
		return saveSettings(s, a.Settings)
	case ActionUpdateLockDelay:
		return updateLockDelay(s)
	default:
		panic(fmt.Sprintf("engine: unhandled action %d", int(a.Type)))
	}
}

// ReduceAll folds actions over s in order.
func ReduceAll(s State, actions ...Action) State {
	for _, a := range actions {
		s = Reduce(s, a)
	}
	return s
}
