// Package replay runs scripted matches without a terminal and records the
// resulting event stream.
package replay

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-pong/internal/engine"
)

// Step operations.
const (
	OpInitialize = "initialize"
	OpStart      = "start"
	OpReset      = "reset"
	OpTime       = "time"
	OpAdvance    = "advance"
	OpMove       = "move"
)

// Script is a recorded sequence of actions.
type Script struct {
	// Preset optionally names the engine preset the script was written for.
	Preset string `yaml:"preset,omitempty"`
	Steps  []Step `yaml:"steps"`
}

// Step is one scripted action. Only the fields its Op uses are read.
type Step struct {
	Op        string `yaml:"op"`
	Seed      int64  `yaml:"seed,omitempty"`
	T         uint64 `yaml:"t,omitempty"`
	DT        uint64 `yaml:"dt,omitempty"`
	Player    string `yaml:"player,omitempty"`
	Direction string `yaml:"direction,omitempty"`
}

// LoadScript reads a YAML script from path.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("replay: read script: %w", err)
	}
	return ParseScript(data)
}

// ParseScript decodes a YAML script and checks every step.
func ParseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("replay: parse script: %w", err)
	}
	for i, st := range s.Steps {
		if _, err := st.Action(0); err != nil {
			return nil, fmt.Errorf("replay: step %d: %w", i, err)
		}
	}
	return &s, nil
}

// Action converts the step into an engine action. clock is the engine
// clock the step runs at; advance steps are relative to it.
func (st Step) Action(clock uint64) (engine.Action, error) {
	switch st.Op {
	case OpInitialize:
		return engine.InitializeAction{}, nil
	case OpStart:
		return engine.StartAction{}, nil
	case OpReset:
		return engine.ResetAction{Seed: st.Seed}, nil
	case OpTime:
		return engine.TimeAction{T: st.T}, nil
	case OpAdvance:
		return engine.TimeAction{T: clock + st.DT}, nil
	case OpMove:
		p, err := parsePlayer(st.Player)
		if err != nil {
			return nil, err
		}
		d, err := parseDirection(st.Direction)
		if err != nil {
			return nil, err
		}
		return engine.MoveAction{Player: p, Direction: d}, nil
	default:
		return nil, fmt.Errorf("unknown op %q", st.Op)
	}
}

// Run executes every step of s against e. Events go to rec, when non-nil,
// and then to emit. The first failing step stops the run.
func Run(e *engine.Engine, s *Script, rec *Recorder, emit engine.Sink) error {
	sink := emit
	if rec != nil {
		sink = rec.Sink(emit)
	}

	for i, st := range s.Steps {
		a, err := st.Action(e.Clock())
		if err != nil {
			return fmt.Errorf("replay: step %d: %w", i, err)
		}
		if rec != nil {
			rec.Begin(i)
		}
		if err := e.Process(a, sink); err != nil {
			return fmt.Errorf("replay: step %d: %w", i, err)
		}
	}
	return nil
}

func parsePlayer(s string) (engine.Player, error) {
	switch s {
	case "left":
		return engine.Left, nil
	case "right":
		return engine.Right, nil
	default:
		return engine.Left, fmt.Errorf("unknown player %q", s)
	}
}

func parseDirection(s string) (engine.Direction, error) {
	switch s {
	case "up":
		return engine.Up, nil
	case "down":
		return engine.Down, nil
	case "neutral", "":
		return engine.Neutral, nil
	default:
		return engine.Neutral, fmt.Errorf("unknown direction %q", s)
	}
}
