package domain

import "time"

// ReminderKind represents the kind of follow-up event derived from a booking
type ReminderKind string

const (
	ReminderConfirmation ReminderKind = "confirmation"
	Reminder24h          ReminderKind = "reminder_24h"
	Reminder1h           ReminderKind = "reminder_1h"
)

// ReminderStatus represents the delivery status of a reminder
type ReminderStatus string

const (
	ReminderPending   ReminderStatus = "pending"
	ReminderSent      ReminderStatus = "sent"
	ReminderCancelled ReminderStatus = "cancelled"
)

// Reminder represents a scheduled follow-up event for a booking
// Жизненный цикл напоминания полностью принадлежит бронированию:
// при отмене бронирования все pending-напоминания переводятся в cancelled
type Reminder struct {
	ID          int64
	BookingID   int64
	ScheduledAt time.Time
	Kind        ReminderKind
	Status      ReminderStatus
	CreatedAt   time.Time
}
