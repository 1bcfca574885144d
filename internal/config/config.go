// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Viewer   ViewerConfig   `yaml:"viewer"`
	Controls ControlsConfig `yaml:"controls"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// ViewerConfig holds scene interaction settings.
type ViewerConfig struct {
	Model         string  `yaml:"model"`          // Path of the scene to import
	MoveStep      float32 `yaml:"move_step"`      // Units per move key press
	RotationSpeed float32 `yaml:"rotation_speed"` // Animation speed in degrees per second
	PickSize      int     `yaml:"pick_size"`      // Side of the picking box in pixels
	PickBackend   string  `yaml:"pick_backend"`   // "gpu" or "cpu"
	Watch         bool    `yaml:"watch"`          // Reload the model when it changes on disk
	ScreenshotDir string  `yaml:"screenshot_dir"` // Where the screenshot command writes PNGs
}

// ControlsConfig maps command names to SDL key names.
type ControlsConfig struct {
	Bindings map[string]string `yaml:"bindings"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Picking backends.
const (
	PickBackendGPU = "gpu"
	PickBackendCPU = "cpu"
)

// DefaultBindings returns the stock key map.
func DefaultBindings() map[string]string {
	return map[string]string{
		"toggle_selection_mode": "Tab",
		"move_up":               "W",
		"move_down":             "S",
		"move_left":             "A",
		"move_right":            "D",
		"toggle_visibility":     "V",
		"color_red":             "1",
		"color_green":           "2",
		"color_blue":            "3",
		"toggle_animation":      "Space",
		"toggle_light_0":        "F1",
		"toggle_light_1":        "F2",
		"toggle_light_2":        "F3",
		"toggle_light_3":        "F4",
		"reset_camera":          "R",
		"screenshot":            "F12",
		"quit":                  "Escape",
	}
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "3D Mesh Viewer",
			Width:      800,
			Height:     600,
			Fullscreen: false,
			VSync:      true,
		},
		Viewer: ViewerConfig{
			Model:         "drone.obj",
			MoveStep:      1.0,
			RotationSpeed: 100.0,
			PickSize:      5,
			PickBackend:   PickBackendGPU,
			Watch:         false,
			ScreenshotDir: "screenshots",
		},
		Controls: ControlsConfig{
			Bindings: DefaultBindings(),
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
