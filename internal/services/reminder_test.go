package services_test

import (
	"testing"
	"time"

	"project-tracker/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDecideReminder_NewTaskDueToday(t *testing.T) {
	today := date(2024, time.January, 10)
	task := services.TaskSnapshot{
		Title:    "File the report",
		Deadline: date(2024, time.January, 10),
		Priority: "High",
		Status:   "Pending",
	}

	reminder, ok := services.DecideReminder(task, nil, true, today)
	require.True(t, ok)
	assert.Equal(t, 0, reminder.DaysLeft)
	assert.Equal(t, "New Task & Reminder: File the report (0 day(s) left)", reminder.Subject)
	assert.Contains(t, reminder.Body, "New Task Notification:")
	assert.Contains(t, reminder.Body, "Today: This task is due today (2024-01-10) with priority High.")
}

func TestDecideReminder_NewTaskDueTomorrow(t *testing.T) {
	today := date(2024, time.January, 10)
	task := services.TaskSnapshot{
		Title:    "Prep slides",
		Deadline: date(2024, time.January, 11),
		Priority: "Medium",
		Status:   "Pending",
	}

	reminder, ok := services.DecideReminder(task, nil, true, today)
	require.True(t, ok)
	assert.Equal(t, 1, reminder.DaysLeft)
	assert.Contains(t, reminder.Body, "Tomorrow: This task is due tomorrow (2024-01-11) with priority Medium.")
}

func TestDecideReminder_EditWithoutRelevantChangeStaysSilent(t *testing.T) {
	today := date(2024, time.January, 10)
	old := services.TaskSnapshot{
		Title:    "Prep slides",
		Deadline: date(2024, time.January, 11),
		Priority: "Medium",
		Status:   "Pending",
	}
	updated := old
	updated.Status = "In Progress"

	_, ok := services.DecideReminder(updated, &old, false, today)
	assert.False(t, ok, "status-only changes never notify")

	_, ok = services.DecideReminder(old, &old, false, today)
	assert.False(t, ok, "no-field change never notifies")
}

func TestDecideReminder_EditPriorityChangeNotifies(t *testing.T) {
	today := date(2024, time.January, 10)
	old := services.TaskSnapshot{
		Title:    "Prep slides",
		Deadline: date(2024, time.January, 12),
		Priority: "Medium",
		Status:   "Pending",
	}
	updated := old
	updated.Priority = "High"

	reminder, ok := services.DecideReminder(updated, &old, false, today)
	require.True(t, ok)
	assert.Equal(t, 2, reminder.DaysLeft)
	assert.Equal(t, "Task Update & Reminder: Prep slides (2 day(s) left)", reminder.Subject)
	assert.Contains(t, reminder.Body, "Previous Task Details:")
	assert.Contains(t, reminder.Body, "Updated Task Details:")
	assert.Contains(t, reminder.Body, "- Priority: Medium")
	assert.Contains(t, reminder.Body, "- Priority: High")
	assert.Contains(t, reminder.Body, "2 Days Left: This task is due in 2 days (2024-01-12) with priority High.")
}

func TestDecideReminder_EditDeadlineChangeNotifies(t *testing.T) {
	today := date(2024, time.January, 10)
	old := services.TaskSnapshot{
		Title:    "Prep slides",
		Deadline: date(2024, time.January, 20),
		Priority: "Medium",
		Status:   "Pending",
	}
	updated := old
	updated.Deadline = date(2024, time.January, 11)

	reminder, ok := services.DecideReminder(updated, &old, false, today)
	require.True(t, ok)
	assert.Equal(t, 1, reminder.DaysLeft)
}

func TestDecideReminder_WindowGateDominates(t *testing.T) {
	today := date(2024, time.January, 10)
	old := services.TaskSnapshot{
		Title:    "Prep slides",
		Deadline: date(2024, time.January, 15),
		Priority: "Medium",
		Status:   "Pending",
	}
	updated := old
	updated.Priority = "High"

	// daysUntil = 5: no notification no matter what changed.
	_, ok := services.DecideReminder(updated, &old, false, today)
	assert.False(t, ok)

	_, ok = services.DecideReminder(updated, nil, true, today)
	assert.False(t, ok)

	// Past-due tasks are outside the window too.
	overdue := updated
	overdue.Deadline = date(2024, time.January, 9)
	_, ok = services.DecideReminder(overdue, nil, true, today)
	assert.False(t, ok)
}

func TestDecideReminder_Idempotent(t *testing.T) {
	today := date(2024, time.January, 10)
	task := services.TaskSnapshot{
		Title:    "File the report",
		Deadline: date(2024, time.January, 10),
		Priority: "High",
		Status:   "Pending",
	}

	first, ok1 := services.DecideReminder(task, nil, true, today)
	second, ok2 := services.DecideReminder(task, nil, true, today)
	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, first, second)
}

func TestDaysUntil_IgnoresTimeOfDay(t *testing.T) {
	deadline := time.Date(2024, time.January, 11, 0, 0, 0, 0, time.UTC)
	today := time.Date(2024, time.January, 10, 23, 45, 0, 0, time.UTC)

	assert.Equal(t, 1, services.DaysUntil(deadline, today))
}
