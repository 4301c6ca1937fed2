package registry

import "github.com/vovakirdan/tui-pong/internal/engine"

// DefaultPreset is used when neither flags nor config name one.
const DefaultPreset = "classic"

// Classic geometry: an 800x480 field at 1000 world units per pixel.
const (
	classicWidth  = 800
	classicHeight = 480
	classicScale  = 1000
)

func init() {
	Register(Preset{
		ID:    "classic",
		Title: "Classic 800x480 field",
		Engine: engine.Config{
			Area:     engine.V(classicWidth*classicScale/2, classicHeight*classicScale/2),
			Paddle:   engine.V(classicWidth*classicScale/100, classicHeight*classicScale/16),
			BallSize: classicWidth * classicScale / 100,
		},
	})

	Register(Preset{
		ID:    "wide",
		Title: "Wide field with large paddles",
		Engine: engine.Config{
			Area:     engine.V(600000, 400000),
			Paddle:   engine.V(10000, 50000),
			BallSize: 10000,
		},
	})

	Register(Preset{
		ID:    "standard",
		Title: "Square field, slim paddles",
		Engine: engine.Config{
			Area:     engine.V(500000, 500000),
			Paddle:   engine.V(5000, 31250),
			BallSize: 5000,
		},
	})
}
