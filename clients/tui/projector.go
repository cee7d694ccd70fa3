package tui

import "github.com/graphybook/studio/internal/demo"

// The App is the controller's View: each call updates what the next
// render shows.

func (a *App) SetStatus(message string, severity demo.Severity) {
	a.status = demo.Status{Message: message, Severity: severity}
	a.spinner.SetActive(severity == demo.SeverityProcessing)
}

func (a *App) SetProgress(percent int) {
	a.percent = percent
}

func (a *App) SetFieldText(field demo.Field, text string) {
	ta := &a.prompt
	if field == demo.FieldCode {
		ta = &a.code
	}
	if ta.Value() != text {
		ta.SetValue(text)
	}
}

func (a *App) SetMode(mode demo.Mode) {
	a.mode = mode
	if mode == demo.ModeCode {
		a.prompt.Blur()
		a.code.Focus()
	} else {
		a.code.Blur()
		a.prompt.Focus()
	}
}

func (a *App) RevealMedia(info demo.MediaInfo) {
	a.media = &info
}

func (a *App) HideMedia() {
	a.media = nil
}

func (a *App) SetTriggerEnabled(trigger demo.Trigger, enabled bool) {
	a.triggers[trigger] = enabled
}

func (a *App) SetFullscreen(on bool) {
	a.fullscreen = on
}
