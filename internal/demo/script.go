package demo

import (
	"math/rand/v2"
	"time"
)

// Fallback clips revealed by the manual paths.
const (
	GenerateFallback = "vids/derivatives.mov"
	ExecuteFallback  = "vids/linear_alzebra.mov"
)

// DefaultSteps returns the built-in autoplay sequence.
func DefaultSteps() []Step {
	return []Step{
		{
			Media: "derivatives.mov",
			Text:  "Create an animation showing the concept of derivatives in calculus. Show a curve with a tangent line that moves along the curve, demonstrating how the slope changes at different points.",
		},
		{
			Media: "linear_alzebra.mov",
			Text:  "Animate linear algebra concepts including vector transformations, matrix operations, and eigenvalue decomposition with visual representations.",
		},
		{
			Media: "quantum_wave_function.mov",
			Text:  "Visualize quantum wave functions showing probability distributions, wave packet evolution, and the uncertainty principle in quantum mechanics.",
		},
	}
}

// Timing holds the fixed pauses of the autoplay sequencer.
type Timing struct {
	StartDelay    time.Duration // page load -> autoplay starts
	StartingPause time.Duration // "starting" status -> first step
	WrapPause     time.Duration // last step ended -> "restarting" status
	RestartPause  time.Duration // "restarting" status -> step 0
	ResumeDelay   time.Duration // clip ended -> next step
}

// DefaultTiming returns the studio's standard pacing.
func DefaultTiming() Timing {
	return Timing{
		StartDelay:    3 * time.Second,
		StartingPause: time.Second,
		WrapPause:     2 * time.Second,
		RestartPause:  time.Second,
		ResumeDelay:   2 * time.Second,
	}
}

// UniformDelay returns a DelayFunc drawing uniformly from [lo, hi).
func UniformDelay(lo, hi time.Duration) DelayFunc {
	if hi <= lo {
		return func() time.Duration { return lo }
	}
	span := hi - lo
	return func() time.Duration {
		return lo + rand.N(span)
	}
}

// FixedDelay returns a DelayFunc that always returns d.
func FixedDelay(d time.Duration) DelayFunc {
	return func() time.Duration { return d }
}

// ProgressStep is one beat of a manual action. A zero Message or Progress
// leaves that part of the display as it is.
type ProgressStep struct {
	Message  string
	Progress int
	Delay    time.Duration
}

// Script is the canned progress animation of a manual action.
type Script struct {
	Name          string
	IntroMessage  string
	IntroProgress int
	Steps         []ProgressStep
	Success       string
	Fallback      string
}

// GenerateScript is the "generate" path.
func GenerateScript() Script {
	return Script{
		Name:          string(TriggerGenerate),
		IntroMessage:  "🧠 Understanding your physics concept...",
		IntroProgress: 10,
		Steps: []ProgressStep{
			{Message: "🎨 Planning the visualization...", Progress: 30, Delay: 1000 * time.Millisecond},
			{Message: "🚀 Generating Manim code...", Progress: 50, Delay: 1500 * time.Millisecond},
			{Message: "🤖 Compiling animation...", Progress: 70, Delay: 2000 * time.Millisecond},
			{Message: "🎬 Rendering video...", Progress: 90, Delay: 3000 * time.Millisecond},
		},
		Success:  "🎉 Animation generated successfully!",
		Fallback: GenerateFallback,
	}
}

// ExecuteScript is the "execute" path.
func ExecuteScript() Script {
	return Script{
		Name:          string(TriggerExecute),
		IntroMessage:  "⚡ Executing your code...",
		IntroProgress: 20,
		Steps: []ProgressStep{
			{Delay: 3000 * time.Millisecond},
		},
		Success:  "✅ Code executed successfully!",
		Fallback: ExecuteFallback,
	}
}

// Status lines of the sequencer.
const (
	msgReady          = "🚀 GraphyBOOK Demo Ready - Auto demo starting soon..."
	msgStarting       = "🎬 Starting automatic demo..."
	msgRestarting     = "🔄 Demo complete! Restarting..."
	msgTypingFormat   = "⌨️ Typing prompt %d of %d..."
	msgPromptComplete = "✅ Prompt complete! Generating animation..."
	msgAnimationReady = "🎬 Animation ready! Playing now..."
	msgPlayingFormat  = "🎬 Playing animation %d of %d"
)
