package notifyservice

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/sushihentaime/postly/internal/common"
	"golang.org/x/exp/rand"
)

func NewNotifyService(mb common.MessageConsumer, host, username, password, sender, admin string, port int, logger *slog.Logger) *NotifyService {
	ctx, cancel := context.WithCancel(context.Background())
	return &NotifyService{
		mb:     mb,
		m:      NewMailer(host, port, username, password, sender, NewTemplate()),
		admin:  admin,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// SendCommentNotification consumes comment.created events and mails the site
// admin about each new comment.
func (s *NotifyService) SendCommentNotification() {
	msgs, err := s.mb.Consume(common.CommentCreatedKey, common.ContentExchange, common.CommentCreatedQueue)
	if err != nil {
		s.logger.Error("could not consume message", slog.String("error", err.Error()))
		return
	}

	go func() {
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					return
				}

				var data struct {
					ID     string `json:"id"`
					PostID string `json:"post_id"`
					User   struct {
						Username string `json:"username"`
					} `json:"user"`
					Content string `json:"content"`
				}

				err := json.Unmarshal(msg.Body, &data)
				if err != nil {
					s.logger.Error("could not unmarshal message", slog.String("error", err.Error()))
					continue
				}

				payload := struct {
					PostID   string
					Username string
					Content  string
				}{
					PostID:   data.PostID,
					Username: data.User.Username,
					Content:  data.Content,
				}

				// using exponential backoff with jitter
				const maxRetries = 5
				const baseDelay = 500 * time.Millisecond

				var attempt int
				for attempt = 0; attempt < maxRetries; attempt++ {
					err = s.m.send(s.admin, payload, "comment_notification.html")
					if err == nil {
						s.logger.Info("comment notification sent", slog.String("comment_id", data.ID))
						msg.Ack(false)
						break
					}

					delay := time.Duration(rand.Int63n(int64(baseDelay) << uint(attempt)))
					s.logger.Info("delaying comment notification", slog.String("comment_id", data.ID), slog.Int("attempt", attempt), slog.Duration("delay", delay))
					time.Sleep(delay)
				}

				if attempt == maxRetries {
					s.logger.Error("could not send comment notification", slog.String("comment_id", data.ID))
					msg.Ack(false)
				}

			case <-s.ctx.Done():
				s.logger.Info("stopping SendCommentNotification due to context cancellation")
				return
			}
		}
	}()
}

func (s *NotifyService) Close() {
	s.cancel()
}
