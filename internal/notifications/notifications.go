// Package notifications contains best-effort dispatch of like notifications.
//
// The dispatcher lives entirely off the write path: every failure here is
// logged and swallowed, nothing is retried and nothing propagates back to the
// request that produced the event.
package notifications

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/debook/engagement/internal/events"
	"github.com/debook/engagement/internal/storage"
)

var log = logrus.WithField("package", "notifications")

// Sender delivers a like notification over an external transport.
type Sender interface {
	SendLikeNotification(ctx context.Context, e events.LikeCreatedEvent) error
}

// LogSender writes notifications to the service log. It stands in for a real
// push/email transport.
type LogSender struct{}

// SendLikeNotification ...
func (LogSender) SendLikeNotification(_ context.Context, e events.LikeCreatedEvent) error {
	log.WithFields(logrus.Fields{
		"post":   e.PostID,
		"user":   e.UserID,
		"author": e.PostAuthorID,
	}).Info("user liked post")

	return nil
}

// Dispatcher consumes like.created events and performs one delivery attempt
// and one storage attempt per event.
type Dispatcher struct {
	sender  Sender
	s       storage.Storage
	timeout time.Duration
}

// New creates new instance of Dispatcher.
func New(sender Sender, s storage.Storage, timeout time.Duration) *Dispatcher {
	return &Dispatcher{
		sender:  sender,
		s:       s,
		timeout: timeout,
	}
}

// Register subscribes the dispatcher to like.created events.
func (d *Dispatcher) Register(b *events.Bus) {
	b.Subscribe(events.LikeCreated, d.handleLikeCreated)
}

func (d *Dispatcher) handleLikeCreated(ctx context.Context, payload interface{}) {
	e, ok := payload.(events.LikeCreatedEvent)
	if !ok {
		log.Errorf("unexpected payload type %T", payload)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	if err := d.sender.SendLikeNotification(ctx, e); err != nil {
		log.WithError(err).WithField("post", e.PostID).Error("failed to send like notification")
	}

	if err := d.s.CreateNotification(ctx, &storage.CreateNotificationParams{
		ID:          uuid.NewString(),
		PostID:      e.PostID,
		UserID:      e.UserID,
		RecipientID: e.PostAuthorID,
		CreatedAt:   time.Now(),
	}); err != nil {
		log.WithError(err).WithField("post", e.PostID).Error("failed to store notification")
	}
}
