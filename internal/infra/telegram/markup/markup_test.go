package markup

import (
	"testing"
	"time"

	"team_status_bot/internal/domain/calendar"
	"team_status_bot/internal/domain/status"
)

func TestCalendarKeepsGridShape(t *testing.T) {
	g := calendar.Render(2024, time.May)
	m := Calendar(g)
	if len(m.InlineKeyboard) != len(g.Rows) {
		t.Fatalf("rows = %d, want %d", len(m.InlineKeyboard), len(g.Rows))
	}

	days := 0
	for _, row := range m.InlineKeyboard {
		for _, b := range row {
			if b.Unique != "" {
				t.Errorf("button %q has unique %q, want raw payload", b.Text, b.Unique)
			}
			if len(b.Data) > 3 && b.Data[:4] == "cal:" {
				days++
			}
		}
	}
	if days != 31 {
		t.Errorf("day buttons = %d, want 31", days)
	}

	nav := m.InlineKeyboard[len(m.InlineKeyboard)-1]
	if nav[0].Data != "prev:2024-04" || nav[1].Data != "today" || nav[2].Data != "next:2024-06" {
		t.Errorf("navigation = %q %q %q", nav[0].Data, nav[1].Data, nav[2].Data)
	}
}

func TestStatusMenu(t *testing.T) {
	m := StatusMenu()
	if !m.OneTimeKeyboard || !m.ResizeKeyboard {
		t.Error("status menu should be one-time and resized")
	}
	want := append(status.Presets(), status.WriteCustom)
	if len(m.ReplyKeyboard) != len(want) {
		t.Fatalf("rows = %d, want %d", len(m.ReplyKeyboard), len(want))
	}
	for i, label := range want {
		if m.ReplyKeyboard[i][0].Text != label {
			t.Errorf("row %d = %q, want %q", i, m.ReplyKeyboard[i][0].Text, label)
		}
	}
}

func TestCancelOnly(t *testing.T) {
	m := CancelOnly()
	if len(m.ReplyKeyboard) != 1 || m.ReplyKeyboard[0][0].Text != status.Cancel {
		t.Errorf("keyboard = %+v, want single cancel button", m.ReplyKeyboard)
	}
}
