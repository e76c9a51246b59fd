package telegram

import (
	"context"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jmhodges/clock"
	"go.uber.org/zap"

	"github.com/evgenshkuropat/shiftmate-bot/internal/domain"
	"github.com/evgenshkuropat/shiftmate-bot/internal/shifts"
	"github.com/evgenshkuropat/shiftmate-bot/internal/store"
	"github.com/evgenshkuropat/shiftmate-bot/internal/weather"
)

// Router wires Telegram updates to handlers. Conversational state lives in
// the store's per-user reminder drafts; the transport serializes messages
// per chat, so one user's transitions never overlap.
type Router struct {
	bot     *tgbotapi.BotAPI
	log     *zap.Logger
	store   *store.Store
	shifts  *shifts.Service
	weather *weather.Client
	clk     clock.Clock
	loc     *time.Location
}

func NewRouter(bot *tgbotapi.BotAPI, log *zap.Logger, st *store.Store, sh *shifts.Service, wc *weather.Client, clk clock.Clock, loc *time.Location) *Router {
	return &Router{
		bot:     bot,
		log:     log,
		store:   st,
		shifts:  sh,
		weather: wc,
		clk:     clk,
		loc:     loc,
	}
}

func (r *Router) now() time.Time {
	return r.clk.Now().In(r.loc)
}

// HandleUpdate routes a single update. Only plain text messages matter; the
// whole UI is reply keyboards, which arrive as text.
func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.Message == nil || upd.Message.Text == "" {
		return
	}

	chatID := upd.Message.Chat.ID
	text := strings.TrimSpace(upd.Message.Text)

	// The reminder flow has priority: while a draft is open, most input
	// belongs to it.
	if r.handleReminderFlow(ctx, chatID, text) {
		return
	}

	switch text {
	case "/start":
		r.send(chatID, "Hi! Pick an action 👇", mainMenuKeyboard())
	case "/help", btnHelp:
		r.send(chatID, helpText, mainMenuKeyboard())
	case btnBack:
		r.send(chatID, "Ok 👇", mainMenuKeyboard())

	case btnMyShift:
		if r.shifts.HasAnchor(chatID) {
			r.send(chatID, r.shifts.WeekInfo(chatID)+"\nPick an action 👇", shiftKeyboard(true))
		} else {
			r.send(chatID,
				"No shift picked yet.\n\nPick your week's shift (Monday–Friday).\nFor Night: Sun–Fri (6 nights), Sunday start at 21:00.",
				shiftKeyboard(false))
		}

	case domain.ShiftEarly.Label():
		r.saveShift(ctx, chatID, domain.ShiftEarly)
	case domain.ShiftNight.Label():
		r.saveShift(ctx, chatID, domain.ShiftNight)
	case domain.ShiftDay.Label():
		r.saveShift(ctx, chatID, domain.ShiftDay)

	case btnCurrentShift:
		r.send(chatID, r.shifts.CurrentShiftText(chatID), shiftKeyboard(true))
	case btnShifts7:
		r.send(chatID, r.shifts.ScheduleNDays(ctx, chatID, 7, true), shiftKeyboard(true))
	case btnShifts14:
		r.send(chatID, r.shifts.ScheduleNDays(ctx, chatID, 14, true), shiftKeyboard(true))

	case btnWeather:
		r.send(chatID, "Pick a weather range 👇", weatherKeyboard())
	case btnWeatherToday:
		r.sendWeather(ctx, chatID, 1)
	case btnWeather7:
		r.sendWeather(ctx, chatID, 7)
	case btnWeather14:
		r.sendWeather(ctx, chatID, 14)

	case btnAddReminder:
		r.send(chatID, "Pick a reminder category 👇", categoryKeyboard())
	case btnMyReminders:
		r.send(chatID, r.listRemindersText(chatID), remindersKeyboard())

	case btnReset:
		r.store.ClearAnchor(ctx, chatID)
		r.send(chatID, "Shift setup cleared 🧹\nOpen «My shift» and pick again.", mainMenuKeyboard())

	default:
		r.send(chatID, "Didn't get that. Use the buttons 👇", mainMenuKeyboard())
	}
}

func (r *Router) saveShift(ctx context.Context, chatID int64, t domain.ShiftType) {
	r.shifts.Save(ctx, chatID, t)
	r.send(chatID, "Saved ✅\n"+r.shifts.WeekInfo(chatID), shiftKeyboard(true))
}

func (r *Router) sendWeather(ctx context.Context, chatID int64, days int) {
	start := domain.Midnight(r.now())
	end := start.AddDate(0, 0, days-1)
	r.send(chatID, r.weather.Block(ctx, start, end), weatherKeyboard())
}

func (r *Router) send(chatID int64, text string, kb tgbotapi.ReplyKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	if _, err := r.bot.Send(msg); err != nil {
		r.log.Error("send failed", zap.Error(err), zap.Int64("chatID", chatID))
	}
}

// SendMessage sends a plain text message without touching the keyboard.
// This makes Router satisfy scheduler.Sender.
func (r *Router) SendMessage(chatID int64, text string) error {
	_, err := r.bot.Send(tgbotapi.NewMessage(chatID, text))
	return err
}
