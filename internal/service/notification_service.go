package service

import (
	"campus_lms_backend/internal/model"
	"campus_lms_backend/internal/repository"
	"campus_lms_backend/pkg/logger"
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

type NotificationService struct {
	Repo  *repository.NotificationRepository
	Redis *redis.Client
}

func NewNotificationService(repo *repository.NotificationRepository, rdb *redis.Client) *NotificationService {
	return &NotificationService{Repo: repo, Redis: rdb}
}

type notificationPayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Link  string `json:"link"`
}

// Notify 异步投递站内通知：落库 + redis 发布给在线端。
// fire-and-forget，失败只记日志，不影响调用方。
func (s *NotificationService) Notify(userIDs []uint, title, body, link string) {
	if len(userIDs) == 0 {
		return
	}

	go func() {
		rows := make([]model.Notification, 0, len(userIDs))
		for _, id := range userIDs {
			rows = append(rows, model.Notification{
				UserID: id,
				Title:  title,
				Body:   body,
				Link:   link,
			})
		}

		if err := s.Repo.CreateBatch(rows); err != nil {
			logger.Log.Error("failed to persist notifications", zap.Error(err))
			return
		}

		if s.Redis == nil {
			return
		}
		payload, _ := json.Marshal(notificationPayload{Title: title, Body: body, Link: link})
		ctx := context.Background()
		for _, id := range userIDs {
			if err := s.Redis.Publish(ctx, fmt.Sprintf("notify:user:%d", id), payload).Err(); err != nil {
				logger.Log.Warn("failed to publish notification", zap.Uint("userId", id), zap.Error(err))
			}
		}
	}()
}

func (s *NotificationService) List(userID uint, page, limit int) ([]model.Notification, int64, error) {
	return s.Repo.ListByUser(userID, page, limit)
}

func (s *NotificationService) CountUnread(userID uint) (int64, error) {
	return s.Repo.CountUnread(userID)
}

func (s *NotificationService) MarkRead(userID, id uint) error {
	return s.Repo.MarkRead(userID, id)
}

func (s *NotificationService) MarkAllRead(userID uint) error {
	return s.Repo.MarkAllRead(userID)
}
