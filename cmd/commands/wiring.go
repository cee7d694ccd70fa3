package commands

import (
	"github.com/graphybook/studio/internal/config"
	"github.com/graphybook/studio/internal/demo"
)

// demoOptions maps the demo section of the config onto controller options.
// Front end bindings (View, Player, Clock, Observer) are left to the caller.
func demoOptions(cfg *config.Config) demo.Options {
	d := cfg.Demo
	opts := demo.Options{
		Timing: demo.Timing{
			StartDelay:    d.StartDelay.Duration(),
			StartingPause: d.StartingPause.Duration(),
			WrapPause:     d.WrapPause.Duration(),
			RestartPause:  d.RestartPause.Duration(),
			ResumeDelay:   d.ResumeDelay.Duration(),
		},
		TypingDelay: demo.UniformDelay(d.TypingMin.Duration(), d.TypingMax.Duration()),
		Generate:    demo.GenerateScript(),
		Execute:     demo.ExecuteScript(),
	}
	if d.GenerateFallback != "" {
		opts.Generate.Fallback = d.GenerateFallback
	}
	if d.ExecuteFallback != "" {
		opts.Execute.Fallback = d.ExecuteFallback
	}
	for _, s := range d.Steps {
		opts.Steps = append(opts.Steps, demo.Step{Text: s.Text, Media: s.Media})
	}
	return opts
}

// mediaRefs lists every clip the configured demo can reveal, in order of
// first use.
func mediaRefs(opts demo.Options) []string {
	steps := opts.Steps
	if len(steps) == 0 {
		steps = demo.DefaultSteps()
	}
	seen := make(map[string]bool)
	var refs []string
	add := func(ref string) {
		if ref != "" && !seen[ref] {
			seen[ref] = true
			refs = append(refs, ref)
		}
	}
	for _, s := range steps {
		add(s.Media)
	}
	add(opts.Generate.Fallback)
	add(opts.Execute.Fallback)
	return refs
}
