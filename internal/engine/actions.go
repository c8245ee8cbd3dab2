package engine

// ActionType enumerates every transition the engine understands.
type ActionType int

const (
	ActionRestart ActionType = iota + 1
	ActionPause
	ActionResume
	ActionTick
	ActionMoveLeft
	ActionMoveRight
	ActionMoveDown
	ActionRotateLeft
	ActionRotateRight
	ActionHardDrop
	ActionHold
	ActionClearFullLines
	ActionEndHardDrop
	ActionStartAnimation
	ActionEndAnimation
	ActionOpenSettings
	ActionCloseSettings
	ActionSaveSettings
	ActionUpdateLockDelay
)

var actionNames = map[ActionType]string{
	ActionRestart:         "restart",
	ActionPause:           "pause",
	ActionResume:          "resume",
	ActionTick:            "tick",
	ActionMoveLeft:        "move_left",
	ActionMoveRight:       "move_right",
	ActionMoveDown:        "move_down",
	ActionRotateLeft:      "rotate_left",
	ActionRotateRight:     "rotate_right",
	ActionHardDrop:        "hard_drop",
	ActionHold:            "hold",
	ActionClearFullLines:  "clear_full_lines",
	ActionEndHardDrop:     "end_hard_drop",
	ActionStartAnimation:  "start_animation",
	ActionEndAnimation:    "end_animation",
	ActionOpenSettings:    "open_settings",
	ActionCloseSettings:   "close_settings",
	ActionSaveSettings:    "save_settings",
	ActionUpdateLockDelay: "update_lock_delay",
}

// String returns the snake_case name of the action type.
func (t ActionType) String() string {
	if name, ok := actionNames[t]; ok {
		return name
	}
	return "unknown"
}

// Action is a single input to Reduce. Only StartAnimation and SaveSettings
// carry a payload; the other fields are ignored for every other type.
type Action struct {
	Type      ActionType
	Animation Animation // StartAnimation
	Settings  Settings  // SaveSettings
}

// String returns the action's type name.
func (a Action) String() string {
	return a.Type.String()
}

func Restart() Action         { return Action{Type: ActionRestart} }
func Pause() Action           { return Action{Type: ActionPause} }
func Resume() Action          { return Action{Type: ActionResume} }
func Tick() Action            { return Action{Type: ActionTick} }
func MoveLeft() Action        { return Action{Type: ActionMoveLeft} }
func MoveRight() Action       { return Action{Type: ActionMoveRight} }
func MoveDown() Action        { return Action{Type: ActionMoveDown} }
func RotateLeft() Action      { return Action{Type: ActionRotateLeft} }
func RotateRight() Action     { return Action{Type: ActionRotateRight} }
func HardDrop() Action        { return Action{Type: ActionHardDrop} }
func Hold() Action            { return Action{Type: ActionHold} }
func ClearFullLines() Action  { return Action{Type: ActionClearFullLines} }
func EndHardDrop() Action     { return Action{Type: ActionEndHardDrop} }
func EndAnimation() Action    { return Action{Type: ActionEndAnimation} }
func OpenSettings() Action    { return Action{Type: ActionOpenSettings} }
func CloseSettings() Action   { return Action{Type: ActionCloseSettings} }
func UpdateLockDelay() Action { return Action{Type: ActionUpdateLockDelay} }

// StartAnimation arms the given animation marker.
func StartAnimation(kind Animation) Action {
	return Action{Type: ActionStartAnimation, Animation: kind}
}

// SaveSettings replaces the stored key bindings with settings.
func SaveSettings(settings Settings) Action {
	return Action{Type: ActionSaveSettings, Settings: settings}
}
