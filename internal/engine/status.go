package engine

func pauseGame(s State) State {
	if s.Status != StatusPlaying {
		return s
	}
	s.Status = StatusPaused
	return s
}

func resumeGame(s State) State {
	if s.Status != StatusPaused {
		return s
	}
	s.Status = StatusPlaying
	return s
}

// restart starts over with a fresh game that continues the random stream
// and keeps the player's key bindings.
func restart(s State) State {
	return newGame(s.rng, s.Settings)
}

func startAnimation(s State, kind Animation) State {
	if s.Status != StatusPlaying {
		return s
	}
	s.Animation = kind
	return s
}

func endAnimation(s State) State {
	s.Animation = AnimationNone
	return s
}

// openSettings shows the settings modal and pauses a running game.
// A finished game stays as it is.
func openSettings(s State) State {
	if s.Status == StatusGameOver {
		return s
	}
	s.SettingsModalOpen = true
	if s.Status == StatusPlaying {
		s.Status = StatusPaused
	}
	return s
}

// closeSettings hides the modal and resumes a game paused behind it.
func closeSettings(s State) State {
	s.SettingsModalOpen = false
	if s.Status == StatusPaused {
		s.Status = StatusPlaying
	}
	return s
}

func saveSettings(s State, settings Settings) State {
	s.Settings = settings
	return s
}
