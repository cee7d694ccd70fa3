package components

import (
	"strings"
	"testing"
)

func TestRenderMarkdown(t *testing.T) {
	out := RenderMarkdown("# Studio\n\nPress **tab** to switch.", 60)
	if out == "" {
		t.Fatal("expected rendered output")
	}
	if strings.HasSuffix(out, "\n") {
		t.Error("expected trailing newlines trimmed")
	}
	if !strings.Contains(out, "Studio") {
		t.Errorf("expected heading text in output:\n%s", out)
	}
}
