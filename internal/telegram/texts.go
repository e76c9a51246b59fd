package telegram

import (
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/evgenshkuropat/shiftmate-bot/internal/domain"
)

// Reply-keyboard button labels. The router matches on these verbatim.
const (
	btnMyShift      = "My shift"
	btnWeather      = "Weather"
	btnAddReminder  = "➕ Add reminder"
	btnMyReminders  = "🗒 My reminders"
	btnHelp         = "Help"
	btnReset        = "Reset shift"
	btnBack         = "↩️ Back"
	btnCancel       = "❌ Cancel"
	btnCurrentShift = "Current shift"
	btnShifts7      = "Shifts 7 days"
	btnShifts14     = "Shifts 14 days"
	btnWeatherToday = "Weather today"
	btnWeather7     = "Weather 7 days"
	btnWeather14    = "Weather 14 days"

	btnCatDoctor  = "Doctor visit"
	btnCatWorkout = "Workout"
	btnCatKid     = "Pick up the kid"
	btnCatOther   = "Other"
)

const dateBtnFmt = "02.01.2006"

const helpText = `ℹ️ Help

✅ Shifts:
• «My shift» → pick your week's shift
• then: current shift / 7 or 14 day schedule

✅ Weather:
• «Weather» → today / 7 / 14 days

✅ Reminders:
• «➕ Add reminder»
• pick a category → pick a date (button or type it)
• then pick a time (button or type it)
• then choose when to be notified`

func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnMyShift),
			tgbotapi.NewKeyboardButton(btnWeather),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnAddReminder),
			tgbotapi.NewKeyboardButton(btnMyReminders),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnHelp),
			tgbotapi.NewKeyboardButton(btnReset),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

// shiftKeyboard shows shift selection; once a shift is chosen the schedule
// actions appear too.
func shiftKeyboard(shiftChosen bool) tgbotapi.ReplyKeyboardMarkup {
	rows := [][]tgbotapi.KeyboardButton{
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(domain.ShiftEarly.Label()),
			tgbotapi.NewKeyboardButton(domain.ShiftNight.Label()),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(domain.ShiftDay.Label()),
		),
	}
	if shiftChosen {
		rows = append(rows,
			tgbotapi.NewKeyboardButtonRow(
				tgbotapi.NewKeyboardButton(btnCurrentShift),
			),
			tgbotapi.NewKeyboardButtonRow(
				tgbotapi.NewKeyboardButton(btnShifts7),
				tgbotapi.NewKeyboardButton(btnShifts14),
			),
		)
	}
	rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnBack)))

	kb := tgbotapi.NewReplyKeyboard(rows...)
	kb.ResizeKeyboard = true
	return kb
}

func weatherKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnWeatherToday),
			tgbotapi.NewKeyboardButton(btnWeather7),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnWeather14),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnBack),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

func remindersKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnAddReminder),
			tgbotapi.NewKeyboardButton(btnMyReminders),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnBack),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

func categoryKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnCatDoctor),
			tgbotapi.NewKeyboardButton(btnCatWorkout),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnCatKid),
			tgbotapi.NewKeyboardButton(btnCatOther),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnCancel),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

// dateKeyboard offers the next 10 dates, two per row.
func dateKeyboard(today time.Time) tgbotapi.ReplyKeyboardMarkup {
	var rows [][]tgbotapi.KeyboardButton
	for i := 0; i < 10; i += 2 {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(today.AddDate(0, 0, i).Format(dateBtnFmt)),
			tgbotapi.NewKeyboardButton(today.AddDate(0, 0, i+1).Format(dateBtnFmt)),
		))
	}
	rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnCancel)))

	kb := tgbotapi.NewReplyKeyboard(rows...)
	kb.ResizeKeyboard = true
	return kb
}

func timeKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("09:00"),
			tgbotapi.NewKeyboardButton("12:00"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("14:00"),
			tgbotapi.NewKeyboardButton("18:00"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("20:00"),
			tgbotapi.NewKeyboardButton(btnCancel),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

func notifyKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(domain.Offset30Min),
			tgbotapi.NewKeyboardButton(domain.Offset1Hour),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(domain.Offset3Hour),
			tgbotapi.NewKeyboardButton(domain.Offset1Day),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(domain.OffsetNone),
			tgbotapi.NewKeyboardButton(btnCancel),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}
