package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the studio bindings. Printable keys are left to the text
// fields, so every action sits on a control or function key.
type keyMap struct {
	SwitchMode key.Binding
	Generate   key.Binding
	Execute    key.Binding
	Fullscreen key.Binding
	Download   key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		SwitchMode: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch mode")),
		Generate:   key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "generate")),
		Execute:    key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "execute")),
		Fullscreen: key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "fullscreen")),
		Download:   key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "download")),
		Help:       key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "help")),
		Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.SwitchMode, k.Generate, k.Execute, k.Fullscreen, k.Download, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.SwitchMode, k.Generate, k.Execute},
		{k.Fullscreen, k.Download},
		{k.Help, k.Quit},
	}
}

const helpText = `# GraphyBOOK Studio

The studio types example physics prompts on its own and plays the matching
animation after each one. Touch any trigger to take over.

## Keys

| Key | Action |
|-----|--------|
| ` + "`tab`" + ` | switch between **AI Prompt** and **Manual Code** |
| ` + "`ctrl+g`" + ` | generate an animation from the prompt |
| ` + "`ctrl+e`" + ` | execute the manual code |
| ` + "`ctrl+f`" + ` | toggle fullscreen playback |
| ` + "`ctrl+d`" + ` | save the current clip as *physics-animation.mp4* |
| ` + "`f1`" + ` / ` + "`esc`" + ` | close this help |
| ` + "`ctrl+c`" + ` | quit |

Generating or executing stops the automatic demo for the rest of the session.
`
