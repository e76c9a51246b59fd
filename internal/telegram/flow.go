package telegram

import (
	"context"
	"fmt"
	"strings"

	"github.com/evgenshkuropat/shiftmate-bot/internal/domain"
)

const eventFmt = "02.01 15:04"

// handleReminderFlow feeds one message into the user's reminder draft.
// Returns false when the input is not part of the flow so the router can
// handle it as a regular command. Unparseable input re-prompts and keeps the
// draft where it was; the draft value in the store is only replaced once a
// transition fully applies.
func (r *Router) handleReminderFlow(ctx context.Context, chatID int64, text string) bool {
	if text == btnCancel {
		if r.store.Draft(chatID).Step == domain.StepNone {
			return false
		}
		r.store.ClearDraft(chatID)
		r.send(chatID, "Cancelled ✅", mainMenuKeyboard())
		return true
	}

	now := r.now()

	// Category buttons start (or restart) a draft from any state.
	if isCategory(text) {
		r.store.SetDraft(chatID, r.store.Draft(chatID).Begin(text))
		r.send(chatID,
			"Ok: "+text+"\n\nPick a date below 👇\nor type one:\n• 23.02\n• 23.02.2026",
			dateKeyboard(now))
		return true
	}

	draft := r.store.Draft(chatID)

	switch draft.Step {
	case domain.StepDate:
		date, err := domain.ParseDate(text, now)
		if err != nil {
			r.send(chatID,
				"Didn't get the date 😅\nPick a button or type:\n• 23.02\n• 23.02.2026",
				dateKeyboard(now))
			return true
		}
		next := draft.WithDate(date)
		r.store.SetDraft(chatID, next)
		r.send(chatID,
			"Date ok ✅: "+date.Format(dateBtnFmt)+"\n\nNow pick a time 👇\nor type it: 14:00, 14.00 or just 14",
			timeKeyboard())
		return true

	case domain.StepTime:
		hh, mm, err := domain.ParseClock(text)
		if err != nil {
			r.send(chatID,
				"Didn't get the time 😅\nTry:\n• 14:00\n• 14.00\n• 14",
				timeKeyboard())
			return true
		}
		next, ok := draft.WithClock(hh, mm, now)
		r.store.SetDraft(chatID, next)
		if !ok {
			r.send(chatID, "Let's pick the date first 👇", dateKeyboard(now))
			return true
		}
		r.send(chatID,
			"Great ✅\nEvent: "+next.Title+"\n🗓 "+next.EventAt.Format(eventFmt)+"\n\nWhen should I remind you? 👇",
			notifyKeyboard())
		return true

	case domain.StepOffset:
		offset, err := domain.ParseOffset(text)
		if err != nil {
			r.send(chatID, "Please use the buttons 👇", notifyKeyboard())
			return true
		}
		next, reminder, ok := draft.Finish(chatID, offset, now)
		if !ok {
			r.store.SetDraft(chatID, next)
			r.send(chatID, "Looks like the date/time got lost. Pick a date 👇", dateKeyboard(now))
			return true
		}
		r.store.ClearDraft(chatID)
		r.store.AddReminder(ctx, reminder)

		confirm := "✅ Reminder saved!\n" +
			reminder.Title + "\n" +
			"🗓 " + reminder.EventAt.Format(eventFmt) + "\n" +
			"🔔 Notify: " + domain.HumanOffset(offset) + " (at " + reminder.NotifyAt.Format(eventFmt) + ")"
		r.send(chatID, confirm, remindersKeyboard())
		return true
	}

	return false
}

func isCategory(text string) bool {
	switch text {
	case btnCatDoctor, btnCatWorkout, btnCatKid, btnCatOther:
		return true
	}
	return false
}

// listRemindersText renders the user's reminders, event-time ascending.
func (r *Router) listRemindersText(chatID int64) string {
	list := r.store.Reminders(chatID)
	if len(list) == 0 {
		return "No reminders yet 🙂\nTap «" + btnAddReminder + "»"
	}

	var sb strings.Builder
	sb.WriteString("🗒 My reminders:\n\n")
	for i, rem := range list {
		status := "pending"
		if rem.Sent {
			status = "already sent"
		}
		fmt.Fprintf(&sb, "%d) %s\n   🗓 %s\n   🔔 %s\n\n",
			i+1, rem.Title, rem.EventAt.Format(eventFmt), status)
	}

	out := sb.String()
	if len(out) > 3900 {
		out = out[:3900] + "\n…(truncated)"
	}
	return out
}
