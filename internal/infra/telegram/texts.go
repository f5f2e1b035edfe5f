package telegram

import (
	"fmt"
	"strings"

	"team_status_bot/internal/domain/status"
)

const (
	helpText = "🔹 /setstatus — статус на сегодня\n" +
		"🔹 /calendar — статус на период\n" +
		"🔹 /status — статусы команды за неделю\n" +
		"🔹 /clearstatus — удалить мой статус на сегодня\n" +
		"🔹 /clearbydate — удалить мой статус на выбранную дату\n" +
		"🔹 /clearall — удалить все мои статусы\n" +
		"🔹 /remindoff, /remindon — выключить или включить напоминания\n" +
		"🔹 /cancel — прервать текущий диалог"

	msgChooseToday     = "Выбери статус на сегодня:"
	msgChooseRange     = "Установить статус с %s по %s?\nВыбери статус:"
	msgPickRangeStart  = "Выбери дату начала периода:"
	msgPickRangeEnd    = "Начало: %s\nТеперь выбери дату окончания:"
	msgRangeRejected   = "❌ Дата окончания не может быть раньше начала.\nВыбери дату окончания снова:"
	msgPickClearDate   = "Выбери дату, статус на которую нужно удалить:"
	msgChoiceReprompt  = "Пожалуйста, выбери статус из кнопок."
	msgAskCustom       = "Напиши свой статус:"
	msgUsePicker       = "Пожалуйста, выбери дату в календаре выше или отправь /cancel."
	msgSavedToday      = "✅ Статус на сегодня обновлён!"
	msgSavedDay        = "✅ Статус на %s обновлён!"
	msgSavedRange      = "✅ Статус обновлён с %s по %s!"
	msgCleared         = "🗑️ Статус на %s удалён."
	msgNothingToClear  = "ℹ️ На %s статуса нет."
	msgCancelled       = "Отменено."
	msgNothingToCancel = "Нечего отменять."
	msgFailed          = "⚠️ Произошла ошибка при работе с базой. Попробуйте позже."
	msgClearedToday    = "🗑️ Ваш статус на сегодня удалён."
	msgNoStatusToday   = "ℹ️ У вас нет статуса на сегодня."
	msgClearedAll      = "🗑️ Удалено статусов: %d."
	msgNoStatuses      = "ℹ️ У вас нет сохранённых статусов."
	msgNoRecent        = "Нет статусов за последние %d дней."
	msgRemindersOff    = "🔕 Напоминания выключены. Включить снова: /remindon"
	msgRemindersOn     = "🔔 Напоминания включены."
	msgUnknownCommand  = "Неизвестная команда."
)

func greeting(firstName string) string {
	return fmt.Sprintf("Привет, %s! 👋\n%s", firstName, helpText)
}

// formatRecent renders the team overview grouped by date. Entries must be
// ordered by date descending.
func formatRecent(entries []*status.RecentEntry, windowDays int) string {
	if len(entries) == 0 {
		return fmt.Sprintf(msgNoRecent, windowDays)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📅 Статусы за последние %d дней:\n", windowDays)
	current := ""
	for _, e := range entries {
		d := e.Date.Format(status.DateLayout)
		if d != current {
			current = d
			fmt.Fprintf(&b, "\n🗓️ %s:\n", d)
		}
		fmt.Fprintf(&b, "  👤 %s: %s\n", e.Username, e.Text)
	}
	return b.String()
}
