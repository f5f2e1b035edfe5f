// Package markup builds Telegram keyboards for the calendar and the status menu.
package markup

import (
	"team_status_bot/internal/domain/calendar"
	"team_status_bot/internal/domain/status"

	"gopkg.in/telebot.v3"
)

// Calendar turns a rendered month into an inline keyboard. Buttons carry the
// raw calendar payload as callback data, so taps arrive at the OnCallback handler.
func Calendar(g calendar.Grid) *telebot.ReplyMarkup {
	rows := make([][]telebot.InlineButton, 0, len(g.Rows))
	for _, row := range g.Rows {
		buttons := make([]telebot.InlineButton, 0, len(row))
		for _, cell := range row {
			buttons = append(buttons, telebot.InlineButton{
				Text: cell.Label,
				Data: calendar.Encode(cell.Action),
			})
		}
		rows = append(rows, buttons)
	}
	return &telebot.ReplyMarkup{InlineKeyboard: rows}
}

// StatusMenu is the one-time reply keyboard with the presets and "write custom".
func StatusMenu() *telebot.ReplyMarkup {
	labels := append(status.Presets(), status.WriteCustom)
	rows := make([][]telebot.ReplyButton, 0, len(labels))
	for _, label := range labels {
		rows = append(rows, []telebot.ReplyButton{{Text: label}})
	}
	return &telebot.ReplyMarkup{
		ReplyKeyboard:   rows,
		ResizeKeyboard:  true,
		OneTimeKeyboard: true,
	}
}

// CancelOnly offers a single cancel button while free-form text is expected.
func CancelOnly() *telebot.ReplyMarkup {
	return &telebot.ReplyMarkup{
		ReplyKeyboard:  [][]telebot.ReplyButton{{{Text: status.Cancel}}},
		ResizeKeyboard: true,
	}
}

// Remove hides any reply keyboard.
func Remove() *telebot.ReplyMarkup {
	return &telebot.ReplyMarkup{RemoveKeyboard: true}
}
