package viewer

// Command is a discrete user action, normally bound to a key.
type Command int

// Commands.
const (
	CommandNone Command = iota
	ToggleSelectionMode
	MoveUp
	MoveDown
	MoveLeft
	MoveRight
	ToggleVisibility
	ColorRed
	ColorGreen
	ColorBlue
	ToggleAnimation
	ToggleLight0
	ToggleLight1
	ToggleLight2
	ToggleLight3
	ResetCamera
	Screenshot
	Quit
)

// Names match the keys of the controls.bindings config section.
var commandNames = map[Command]string{
	ToggleSelectionMode: "toggle_selection_mode",
	MoveUp:              "move_up",
	MoveDown:            "move_down",
	MoveLeft:            "move_left",
	MoveRight:           "move_right",
	ToggleVisibility:    "toggle_visibility",
	ColorRed:            "color_red",
	ColorGreen:          "color_green",
	ColorBlue:           "color_blue",
	ToggleAnimation:     "toggle_animation",
	ToggleLight0:        "toggle_light_0",
	ToggleLight1:        "toggle_light_1",
	ToggleLight2:        "toggle_light_2",
	ToggleLight3:        "toggle_light_3",
	ResetCamera:         "reset_camera",
	Screenshot:          "screenshot",
	Quit:                "quit",
}

// String returns the command's binding name.
func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "none"
}

// ParseCommand looks up a command by binding name.
func ParseCommand(name string) (Command, bool) {
	for c, n := range commandNames {
		if n == name {
			return c, true
		}
	}
	return CommandNone, false
}
