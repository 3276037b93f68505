package ui

import "testing"

func TestLayoutConfig(t *testing.T) {
	narrow := NewLayoutConfig(70, 30)
	if !narrow.IsCompact {
		t.Errorf("width 70 should be compact")
	}
	if got := narrow.ContentWidth(); got != 66 {
		t.Errorf("ContentWidth = %d, want 66", got)
	}

	wide := NewLayoutConfig(200, 10)
	if wide.IsCompact {
		t.Errorf("width 200 should not be compact")
	}
	w, h := wide.DialogSize()
	if w != DialogMaxWidth || h != 8 {
		t.Errorf("DialogSize = %d,%d want %d,8", w, h, DialogMaxWidth)
	}

	tiny := NewLayoutConfig(10, 5)
	if got := tiny.ContentWidth(); got != MinimumTerminalWidth-ViewportHorizontalPadding {
		t.Errorf("ContentWidth floor = %d", got)
	}
}
