package services

import (
	"fmt"
	"time"
)

// TaskSnapshot is the slice of task state the reminder decision needs.
type TaskSnapshot struct {
	Title    string
	Deadline time.Time
	Priority string
	Status   string
}

// Reminder is a fully-composed notification payload. DaysLeft is the
// whole-day distance from today to the deadline, always 0, 1 or 2.
type Reminder struct {
	Subject  string
	Body     string
	DaysLeft int
}

// DaysUntil counts whole calendar days from today to deadline, ignoring any
// time-of-day component on either side.
func DaysUntil(deadline, today time.Time) int {
	d := dateOnly(deadline)
	t := dateOnly(today)
	return int(d.Sub(t).Hours() / 24)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DecideReminder maps task state to an optional reminder. It is pure: today
// is injected, never read from the wall clock.
//
// The 3-day window is a hard gate evaluated first. Inside the window, a new
// task always notifies; an edit notifies only when the deadline or the
// priority changed. Status-only edits stay silent.
func DecideReminder(task TaskSnapshot, old *TaskSnapshot, isNew bool, today time.Time) (Reminder, bool) {
	daysLeft := DaysUntil(task.Deadline, today)
	if daysLeft < 0 || daysLeft > 2 {
		return Reminder{}, false
	}

	if !isNew {
		if old == nil {
			return Reminder{}, false
		}
		if dateOnly(task.Deadline).Equal(dateOnly(old.Deadline)) && task.Priority == old.Priority {
			return Reminder{}, false
		}
	}

	var body string
	var subject string
	if isNew {
		body = "New Task Notification:\n\n" + detailBlock(task)
		subject = fmt.Sprintf("New Task & Reminder: %s (%d day(s) left)", task.Title, daysLeft)
	} else {
		body = "Task Update Notification:\n\n"
		body += "Previous Task Details:\n" + detailBlock(*old)
		body += "Updated Task Details:\n" + detailBlock(task)
		subject = fmt.Sprintf("Task Update & Reminder: %s (%d day(s) left)", task.Title, daysLeft)
	}
	body += dueLine(task, daysLeft)

	return Reminder{Subject: subject, Body: body, DaysLeft: daysLeft}, true
}

func detailBlock(task TaskSnapshot) string {
	return fmt.Sprintf("- Title: %s\n- Deadline: %s\n- Priority: %s\n- Status: %s\n\n",
		task.Title, task.Deadline.Format("2006-01-02"), task.Priority, task.Status)
}

func dueLine(task TaskSnapshot, daysLeft int) string {
	deadline := task.Deadline.Format("2006-01-02")
	switch daysLeft {
	case 0:
		return fmt.Sprintf("Today: This task is due today (%s) with priority %s.", deadline, task.Priority)
	case 1:
		return fmt.Sprintf("Tomorrow: This task is due tomorrow (%s) with priority %s.", deadline, task.Priority)
	default:
		return fmt.Sprintf("2 Days Left: This task is due in 2 days (%s) with priority %s.", deadline, task.Priority)
	}
}
