package notification

import (
	"context"
	"fmt"
	"log"

	"silab/internal/domain"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByUser(ctx context.Context, userID int64, limit int) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id, userID int64) error
	MarkAllRead(ctx context.Context, userID int64) error
	CountUnread(ctx context.Context, userID int64) (int64, error)
}

type UserRepository interface {
	ListByRoles(ctx context.Context, roles ...domain.Role) ([]domain.User, error)
}

type Service struct {
	notifications NotificationRepository
	users         UserRepository
	hub           *Hub
}

func NewService(notifications NotificationRepository, users UserRepository, hub *Hub) *Service {
	return &Service{notifications: notifications, users: users, hub: hub}
}

// notify persists the notification and pushes it to the user's websocket if
// connected. Delivery failures are logged, never bubbled up to the caller's
// request.
func (s *Service) notify(ctx context.Context, userID int64, typ domain.NotificationType, title, message string) {
	n := &domain.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    typ,
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		log.Printf("notification: persist for user %d: %v", userID, err)
		return
	}
	s.hub.SendToUser(userID, n)
}

// BookingSubmitted tells the requester their request went in and fans out to
// everyone who can approve it.
func (s *Service) BookingSubmitted(ctx context.Context, b *domain.Booking, roomName string) {
	s.notify(ctx, b.UserID, domain.NotifyInfo,
		"Booking submitted",
		fmt.Sprintf("Your booking for %s on %s is awaiting approval.",
			roomName, b.StartTime.Format("2 Jan 2006 15:04")))

	approvers, err := s.users.ListByRoles(ctx, domain.RoleAdmin, domain.RoleTechnician)
	if err != nil {
		log.Printf("notification: list approvers: %v", err)
		return
	}
	for _, u := range approvers {
		s.notify(ctx, u.ID, domain.NotifyInfo,
			"New booking request",
			fmt.Sprintf("%s requested %s on %s.",
				b.ResponsiblePerson, roomName, b.StartTime.Format("2 Jan 2006 15:04")))
	}
}

func (s *Service) BookingDecided(ctx context.Context, b *domain.Booking, roomName string) {
	typ := domain.NotifySuccess
	title := "Booking approved"
	if b.Status == domain.BookingRejected {
		typ = domain.NotifyWarning
		title = "Booking rejected"
	}
	s.notify(ctx, b.UserID, typ, title,
		fmt.Sprintf("Your booking for %s on %s was %s.",
			roomName, b.StartTime.Format("2 Jan 2006 15:04"), b.Status))
}

func (s *Service) List(ctx context.Context, userID int64, limit int) ([]domain.Notification, error) {
	return s.notifications.ListByUser(ctx, userID, limit)
}

func (s *Service) MarkRead(ctx context.Context, id, userID int64) error {
	return s.notifications.MarkRead(ctx, id, userID)
}

func (s *Service) MarkAllRead(ctx context.Context, userID int64) error {
	return s.notifications.MarkAllRead(ctx, userID)
}

func (s *Service) CountUnread(ctx context.Context, userID int64) (int64, error) {
	return s.notifications.CountUnread(ctx, userID)
}
