package notifier

import (
	"context"
	"time"

	"github.com/jamroom/booking-service/internal/domain"
	"github.com/jamroom/booking-service/internal/integrations/calendarservice"
)

// collaboratorTimeout ограничивает время на уведомление коллабораторов
// после того, как бронирование уже закоммичено
const collaboratorTimeout = 10 * time.Second

// EventPublisher интерфейс публикации фактов во внешнюю шину
type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// CalendarClient интерфейс календарного коллаборатора
type CalendarClient interface {
	CreateEvent(ctx context.Context, req *calendarservice.CreateEventRequest) (*calendarservice.Event, error)
	DeleteEvent(ctx context.Context, ref string) error
}

// CalendarRefSaver сохраняет ref события календаря в бронировании
type CalendarRefSaver interface {
	SetExternalCalendarRef(ctx context.Context, id int64, ref string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Notifier разносит факты об уже совершившихся бронированиях коллабораторам:
// шина событий (SMS/WhatsApp, выгрузка в таблицу) и календарь.
// Все вызовы best-effort: любая ошибка логируется и никогда не отменяет
// уже принятое или отменённое бронирование
type Notifier struct {
	publisher EventPublisher // nil, если шина выключена в конфигурации
	calendar  CalendarClient
	refSaver  CalendarRefSaver
	logger    Logger
}

// New создает новый Notifier
func New(publisher EventPublisher, calendar CalendarClient, refSaver CalendarRefSaver, logger Logger) *Notifier {
	return &Notifier{
		publisher: publisher,
		calendar:  calendar,
		refSaver:  refSaver,
		logger:    logger,
	}
}

// BookingAdmitted уведомляет коллабораторов о принятом бронировании
// Запускается fire-and-forget из usecase: не блокирует ответ клиенту
func (n *Notifier) BookingAdmitted(booking *domain.Booking) {
	go func() {
		// Запрос клиента к этому моменту мог уже завершиться,
		// поэтому контекст собственный
		ctx, cancel := context.WithTimeout(context.Background(), collaboratorTimeout)
		defer cancel()

		n.publish(ctx, KeyBookingAdmitted, booking)
		n.createCalendarEvent(ctx, booking)
	}()
}

// BookingCancelled уведомляет коллабораторов об отменённом бронировании
func (n *Notifier) BookingCancelled(booking *domain.Booking) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), collaboratorTimeout)
		defer cancel()

		n.publish(ctx, KeyBookingCancelled, booking)
		n.deleteCalendarEvent(ctx, booking)
	}()
}

func (n *Notifier) publish(ctx context.Context, key string, booking *domain.Booking) {
	if n.publisher == nil {
		return
	}

	event := newBookingEvent(key, booking, time.Now())
	if err := n.publisher.PublishJSON(ctx, key, event); err != nil {
		n.logger.Error("Notifier: failed to publish %s for booking id=%d: %v", key, booking.ID, err)
		return
	}

	n.logger.Info("Notifier: published %s for booking id=%d, event_id=%s", key, booking.ID, event.EventID)
}

func (n *Notifier) createCalendarEvent(ctx context.Context, booking *domain.Booking) {
	if n.calendar == nil {
		return
	}

	event, err := n.calendar.CreateEvent(ctx, &calendarservice.CreateEventRequest{
		Studio:       string(booking.Studio),
		Date:         booking.BookingDate.Format(domain.DateFormat),
		StartTime:    booking.StartTime.String(),
		EndTime:      booking.EndTime.String(),
		ContactPhone: booking.ContactPhone,
	})
	if err != nil {
		n.logger.Error("Notifier: failed to create calendar event for booking id=%d: %v", booking.ID, err)
		return
	}

	if err := n.refSaver.SetExternalCalendarRef(ctx, booking.ID, event.Ref); err != nil {
		n.logger.Error("Notifier: failed to save calendar ref for booking id=%d: %v", booking.ID, err)
	}
}

func (n *Notifier) deleteCalendarEvent(ctx context.Context, booking *domain.Booking) {
	if n.calendar == nil || booking.ExternalCalendarRef == nil {
		return
	}

	if err := n.calendar.DeleteEvent(ctx, *booking.ExternalCalendarRef); err != nil {
		n.logger.Error("Notifier: failed to delete calendar event %s for booking id=%d: %v",
			*booking.ExternalCalendarRef, booking.ID, err)
	}
}
