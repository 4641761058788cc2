package reveal

import (
	"fmt"
	"time"
)

type Animation string

const (
	None       Animation = "none"
	Opacity    Animation = "opacity"
	SlideUp    Animation = "slide-up"
	BlurReveal Animation = "blur-reveal"
)

type State string

const (
	Hidden   State = "hidden"
	Revealed State = "revealed"
)

// Threshold is the visible fraction of a section ("top 85%") at which its
// entrance plays.
const Threshold = 0.15

// Timing describes how the client plays an entrance once it is revealed.
type Timing struct {
	Duration  time.Duration `json:"-"`
	Stagger   time.Duration `json:"-"`
	DurationS float64       `json:"duration"`
	StaggerS  float64       `json:"stagger"`
	Ease      string        `json:"ease"`
	Start     string        `json:"start"`
}

// Entrance is what a section carries in its payload.
type Entrance struct {
	Animation Animation `json:"animation"`
	Timing    *Timing   `json:"timing,omitempty"`
	Initial   State     `json:"initial_state"`
}

func Parse(s string) (Animation, error) {
	switch a := Animation(s); a {
	case None, Opacity, SlideUp, BlurReveal:
		return a, nil
	case "":
		return None, nil
	default:
		return "", fmt.Errorf("unknown entrance animation %q", s)
	}
}

// TimingFor returns the timing for an animation; None has no timing.
func TimingFor(a Animation) *Timing {
	var t Timing
	switch a {
	case Opacity:
		t = Timing{Duration: 1250 * time.Millisecond, Ease: "sine"}
	case SlideUp:
		t = Timing{Duration: time.Second, Ease: "sine"}
	case BlurReveal:
		t = Timing{Duration: 1200 * time.Millisecond, Ease: "power2.out"}
	default:
		return nil
	}
	t.Stagger = 150 * time.Millisecond
	t.Start = "top 85%"
	t.DurationS = t.Duration.Seconds()
	t.StaggerS = t.Stagger.Seconds()
	return &t
}

// Machine is the one-shot hidden -> revealed transition of a single section.
type Machine struct {
	animation Animation
	state     State
}

func New(a Animation) *Machine {
	m := &Machine{animation: a, state: Hidden}
	if a == None {
		m.state = Revealed
	}
	return m
}

func (m *Machine) State() State {
	return m.state
}

// Observe feeds the current intersection ratio and reports whether this call
// revealed the section. Once revealed the state never changes again.
func (m *Machine) Observe(ratio float64) bool {
	if m.state == Revealed {
		return false
	}
	if ratio >= Threshold {
		m.state = Revealed
		return true
	}
	return false
}

func (m *Machine) Entrance() Entrance {
	return Entrance{Animation: m.animation, Timing: TimingFor(m.animation), Initial: m.state}
}
