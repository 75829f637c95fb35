package stream

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/ob6160/Erosion/erosion"
)

var ErrUnknownCommand = errors.New("stream: unknown command")

// Command is a viewer request. Brush is read for "brush", State for
// "state"; State holds only the fields to change.
type Command struct {
	Type  string          `json:"type"`
	Brush *BrushCommand   `json:"brush,omitempty"`
	State json.RawMessage `json:"state,omitempty"`
}

type BrushCommand struct {
	Active    bool    `json:"active"`
	X         float32 `json:"x"`
	Y         float32 `json:"y"`
	Radius    float32 `json:"radius"`
	Intensity float32 `json:"intensity"`
	Mode      string  `json:"mode"`
}

func (b BrushCommand) toBrush() (erosion.Brush, error) {
	var brush = erosion.Brush{
		Active:    b.Active,
		Cursor:    mgl32.Vec2{b.X, b.Y},
		Radius:    b.Radius,
		Intensity: b.Intensity,
	}
	if b.Mode == "" && !b.Active {
		return brush, nil
	}
	mode, err := erosion.ParsePaintMode(b.Mode)
	if err != nil {
		return brush, err
	}
	brush.Mode = mode
	return brush, nil
}

// Apply runs cmd against the eroder. dt is used by "step".
func Apply(e *erosion.CPUEroder, cmd Command, dt float32) error {
	switch cmd.Type {
	case "toggle":
		e.Toggle()
	case "pause":
		e.Pause()
	case "resume":
		e.Resume()
	case "step":
		return e.Step(dt)
	case "reset":
		return e.Reset()
	case "regenerate":
		return e.Regenerate()
	case "brush":
		if cmd.Brush == nil {
			return e.SetBrush(erosion.Brush{})
		}
		brush, err := cmd.Brush.toBrush()
		if err != nil {
			return err
		}
		return e.SetBrush(brush)
	case "state":
		var next = *e.State()
		if err := json.Unmarshal(cmd.State, &next); err != nil {
			return fmt.Errorf("%w: %v", erosion.ErrInvalidConfig, err)
		}
		if err := next.Validate(); err != nil {
			return err
		}
		*e.State() = next
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Type)
	}
	return nil
}
