package core

import "sort"

// Action represents a semantic game action, abstracted from physical key presses.
// Key bindings (from the player's settings) map keys to actions in the platform layer.
type Action int

const (
	ActionNone      Action = iota
	ActionMoveLeft         // shift the piece one column left
	ActionMoveRight        // shift the piece one column right
	ActionRotate           // rotate the piece clockwise
	ActionSoftDrop         // drop the piece by one row
	ActionHardDrop         // drop the piece to the floor and lock it
	ActionConfirm          // confirm a menu selection
	ActionBack             // return to the menu
	ActionRestart          // start over after game over
	ActionQuit             // exit the session
	ActionPause            // pause/unpause
)

var actionNames = map[Action]string{
	ActionNone:      "None",
	ActionMoveLeft:  "MoveLeft",
	ActionMoveRight: "MoveRight",
	ActionRotate:    "Rotate",
	ActionSoftDrop:  "SoftDrop",
	ActionHardDrop:  "HardDrop",
	ActionConfirm:   "Confirm",
	ActionBack:      "Back",
	ActionRestart:   "Restart",
	ActionQuit:      "Quit",
	ActionPause:     "Pause",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// InputFrame collects the actions triggered during one simulation tick.
// Repeated presses of a movement key within the same tick are counted so that
// fast key repeat is not lost when the terminal delivers several presses per frame.
type InputFrame struct {
	Actions map[Action]int
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]int),
	}
}

// Set records one press of an action for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]int)
	}
	f.Actions[a]++
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Count(a) > 0
}

// Count returns how many times the action was pressed this frame.
func (f InputFrame) Count(a Action) int {
	if f.Actions == nil {
		return 0
	}
	return f.Actions[a]
}

// Ordered returns the triggered actions in a stable order, each repeated by its count.
func (f InputFrame) Ordered() []Action {
	keys := make([]Action, 0, len(f.Actions))
	for a := range f.Actions {
		keys = append(keys, a)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	var out []Action
	for _, a := range keys {
		for rep, reps := 0, f.Actions[a]; rep < reps; rep++ {
			out = append(out, a)
		}
	}
	return out
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}
