package demo

import "strings"

// Generate runs the canned generation for the prompt field.
func (c *Controller) Generate() {
	c.runAction(c.generate, c.s.prompt)
}

// Execute runs the canned execution for the code field.
func (c *Controller) Execute() {
	c.runAction(c.execute, c.s.code)
}

// runAction stops autoplay even when the action itself turns out to be a
// no-op (empty input or another action in flight).
func (c *Controller) runAction(sc Script, input string) {
	c.stopAutoplay()

	if strings.TrimSpace(input) == "" || c.s.processing {
		return
	}

	c.observer.ActionStarted(sc.Name)
	c.log.Info("action started", "action", sc.Name)
	c.setProcessing(true)
	c.setStatus(sc.IntroMessage, SeverityProcessing)
	c.setProgress(sc.IntroProgress)
	c.runScriptStep(sc, 0)
}

func (c *Controller) runScriptStep(sc Script, i int) {
	if i == len(sc.Steps) {
		c.finishAction(sc)
		return
	}
	step := sc.Steps[i]
	c.after(step.Delay, func() {
		if step.Message != "" {
			c.setStatus(step.Message, SeverityProcessing)
		}
		if step.Progress > 0 {
			c.setProgress(step.Progress)
		}
		c.runScriptStep(sc, i+1)
	})
}

func (c *Controller) finishAction(sc Script) {
	c.setProgress(100)
	c.setStatus(sc.Success, SeveritySuccess)
	c.reveal(sc.Fallback)
	c.setProcessing(false)
	c.log.Info("action completed", "action", sc.Name, "media", sc.Fallback)
}
