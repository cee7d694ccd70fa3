package demo

import "fmt"

// Start schedules the autoplay sequencer. Later calls are ignored.
func (c *Controller) Start() {
	if c.s.started {
		return
	}
	c.s.started = true
	c.s.phase = phaseStarting
	c.after(c.timing.StartDelay, c.startAutoplay)
}

func (c *Controller) startAutoplay() {
	// A manual action before the start delay elapsed wins for good.
	if c.s.halted {
		return
	}
	c.s.autoplaying = true
	c.log.Info("autoplay started", "steps", len(c.steps))
	c.setStatus(msgStarting, SeverityInfo)
	c.after(c.timing.StartingPause, c.runStep)
}

// runStep is the re-entry point of the loop.
func (c *Controller) runStep() {
	if !c.s.autoplaying {
		return
	}
	if c.s.typing {
		c.log.Debug("autoplay step skipped while typing")
		return
	}

	if c.s.cursor >= len(c.steps) {
		c.s.cursor = 0
		c.s.phase = phaseScheduled
		c.after(c.timing.WrapPause, func() {
			if !c.s.autoplaying {
				return
			}
			c.setStatus(msgRestarting, SeveritySuccess)
			c.after(c.timing.RestartPause, c.playStep)
		})
		return
	}
	c.playStep()
}

func (c *Controller) playStep() {
	if !c.s.autoplaying {
		return
	}
	index := c.s.cursor
	step := c.steps[index]
	c.observer.StepStarted(index, step)
	c.log.Debug("autoplay step", "index", index, "media", step.Media)

	c.setField(FieldPrompt, "")
	c.hideMedia()

	c.typeText(step.Text, index, func() {
		c.setStatus(msgAnimationReady, SeveritySuccess)
		c.reveal(step.Media)
		c.setStatus(fmt.Sprintf(msgPlayingFormat, index+1, len(c.steps)), SeveritySuccess)
		c.s.cursor++
		c.s.phase = phasePlaying
	})
}

// typeText appends text to the prompt one rune per tick. The liveness flag
// is checked before every rune; a stop leaves the partial text in place
// and never calls done.
func (c *Controller) typeText(text string, index int, done func()) {
	if c.s.typing {
		return
	}
	c.s.typing = true
	c.s.phase = phaseTyping
	c.setField(FieldPrompt, "")
	c.setStatus(fmt.Sprintf(msgTypingFormat, index+1, len(c.steps)), SeverityProcessing)

	runes := []rune(text)
	var next func(i int)
	next = func(i int) {
		if !c.s.autoplaying {
			c.s.typing = false
			c.log.Debug("typing interrupted", "typed", i, "of", len(runes))
			return
		}
		if i == len(runes) {
			c.s.typing = false
			c.setStatus(msgPromptComplete, SeverityProcessing)
			done()
			return
		}
		c.setField(FieldPrompt, c.s.prompt+string(runes[i]))
		c.after(c.delay(), func() { next(i + 1) })
	}
	next(0)
}

// MediaEnded reports that the clip on the media surface finished. Only the
// first report for an autoplay clip advances the sequence.
func (c *Controller) MediaEnded() {
	if !c.s.autoplaying || c.s.phase != phasePlaying {
		return
	}
	c.s.phase = phaseScheduled
	c.after(c.timing.ResumeDelay, c.runStep)
}

// stopAutoplay halts the sequencer for the rest of the controller's life.
// Pending callbacks notice at their next resumption point.
func (c *Controller) stopAutoplay() {
	c.s.halted = true
	c.s.phase = phaseStopped
	if !c.s.autoplaying {
		return
	}
	c.s.autoplaying = false
	c.log.Info("autoplay stopped", "cursor", c.s.cursor)
}
