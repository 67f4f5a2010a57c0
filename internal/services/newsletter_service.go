package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	apperrors "medspace-api/internal/errors"
	"medspace-api/internal/mailer"
	"medspace-api/internal/models"
	"medspace-api/internal/repositories"
	"medspace-api/internal/utils"
	"medspace-api/pkg/config"
	"medspace-api/pkg/logger"

	"golang.org/x/sync/errgroup"
)

type NewsletterService struct {
	subscribers repositories.NewsletterRepository
	mail        mailer.Queue
	sender      mailer.Sender
	cfg         *config.Config
}

func NewNewsletterService(
	subscribers repositories.NewsletterRepository,
	mail mailer.Queue,
	sender mailer.Sender,
	cfg *config.Config,
) *NewsletterService {
	return &NewsletterService{
		subscribers: subscribers,
		mail:        mail,
		sender:      sender,
		cfg:         cfg,
	}
}

func alreadySubscribed() *apperrors.AppError {
	return apperrors.BadRequest(apperrors.ErrCodeAlreadySubscribed, apperrors.MsgAlreadySubscribed)
}

// Subscribe stores a new subscriber and queues the welcome email. A repeat email is an error.
func (s *NewsletterService) Subscribe(ctx context.Context, email string) error {
	if _, err := s.subscribers.FindByEmail(ctx, email); err == nil {
		return alreadySubscribed()
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("find subscriber: %w", err)
	}

	subscriber := &models.NewsletterSubscriber{Email: email}
	if err := s.subscribers.Create(ctx, subscriber); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return alreadySubscribed()
		}
		return fmt.Errorf("create subscriber: %w", err)
	}

	msg, err := mailer.WelcomeMessage(subscriber.Email, s.cfg.Mail.SiteURL)
	if err != nil {
		logger.GlobalLogger.Errorf("render welcome email: %v", err)
		return nil
	}
	if _, err := s.mail.Enqueue(msg); err != nil {
		logger.GlobalLogger.Errorf("queue welcome email for %s: %v", subscriber.Email, err)
	}
	return nil
}

// Broadcast sends the message to every subscriber and reports each failure.
// One failed recipient never stops the others.
func (s *NewsletterService) Broadcast(ctx context.Context, subject, message string) (*models.BroadcastReport, error) {
	emails, err := s.subscribers.ListEmails(ctx)
	if err != nil {
		return nil, fmt.Errorf("list subscribers: %w", err)
	}
	if len(emails) == 0 {
		return nil, apperrors.BadRequest(apperrors.ErrCodeNoSubscribers, apperrors.MsgNoSubscribers)
	}

	// the report is only useful if every send runs, so a client disconnect does not cancel them
	sendCtx := context.WithoutCancel(ctx)

	var (
		mu     sync.Mutex
		failed = []models.BroadcastFailure{}
		g      errgroup.Group
	)
	limit := s.cfg.Mail.BroadcastConcurrency
	if limit <= 0 {
		limit = 1
	}
	g.SetLimit(limit)

	for _, email := range emails {
		g.Go(func() error {
			err := s.sendOne(sendCtx, email, subject, message)
			utils.RecordMailDelivery(mailer.KindBroadcast, err)
			if err != nil {
				logger.GlobalLogger.Errorf("newsletter delivery to %s failed: %v", email, err)
				mu.Lock()
				failed = append(failed, models.BroadcastFailure{Email: email, Error: deliveryError(err)})
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(failed, func(i, j int) bool { return failed[i].Email < failed[j].Email })
	report := &models.BroadcastReport{
		Total:  len(emails),
		Sent:   len(emails) - len(failed),
		Failed: failed,
	}
	logger.GlobalLogger.Printf("newsletter %q sent to %d of %d subscribers", subject, report.Sent, report.Total)
	return report, nil
}

func (s *NewsletterService) sendOne(ctx context.Context, email, subject, message string) error {
	msg, err := mailer.BroadcastMessage(email, subject, message)
	if err != nil {
		return err
	}
	if timeout := s.cfg.Mail.SendTimeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return s.sender.Send(ctx, msg)
}

// deliveryError keeps the report readable without exposing relay internals.
func deliveryError(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "delivery timed out"
	default:
		return "delivery failed"
	}
}
