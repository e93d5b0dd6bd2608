package service

import (
	"strings"

	"github.com/DarrenRF/rt/model"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// CreateAlert drops a message into a user's mailbox. Blank messages and
// missing recipients are ignored.
func (s *Service) CreateAlert(userId uint, message, url string) error {
	message = strings.TrimSpace(message)
	if userId == 0 || message == "" {
		return nil
	}
	alert := model.Alert{
		UserId:    userId,
		Message:   message,
		Url:       strings.TrimSpace(url),
		CreatedAt: s.now(),
	}
	return errors.Wrap(s.DB.Create(&alert).Error, "insert alert")
}

// Alerts returns a user's alerts newest first, unread only unless includeRead
// is set.
func (s *Service) Alerts(userId uint, includeRead bool, limit, offset int) ([]model.Alert, error) {
	q := s.DB.Where("user_id = ?", userId)
	if !includeRead {
		q = q.Where("is_read = ?", false)
	}

	var alerts []model.Alert
	err := q.Order("id DESC").Limit(limit).Offset(offset).Find(&alerts).Error
	return alerts, errors.Wrap(err, "query alerts")
}

func (s *Service) CountAlerts(userId uint, includeRead bool) (int64, error) {
	q := s.DB.Model(&model.Alert{}).Where("user_id = ?", userId)
	if !includeRead {
		q = q.Where("is_read = ?", false)
	}

	var count int64
	err := q.Count(&count).Error
	return count, errors.Wrap(err, "count alerts")
}

// UnreadAlertCount feeds the navigation badge.
func (s *Service) UnreadAlertCount(userId uint) (int64, error) {
	return s.CountAlerts(userId, false)
}

// AlertForUser fetches one alert only if it belongs to the user. Returns nil
// for another user's alert so handlers cannot leak mailbox rows by id.
func (s *Service) AlertForUser(alertId, userId uint) (*model.Alert, error) {
	var alert model.Alert
	err := s.DB.Where("id = ? AND user_id = ?", alertId, userId).First(&alert).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "query alert")
	}
	return &alert, nil
}

// MarkAlertRead marks one of the user's alerts read. A foreign or unknown id
// is a no-op.
func (s *Service) MarkAlertRead(alertId, userId uint) error {
	err := s.DB.Model(&model.Alert{}).
		Where("id = ? AND user_id = ?", alertId, userId).
		Update("is_read", true).Error
	return errors.Wrap(err, "mark alert read")
}

// DeleteAlert removes one of the user's alerts. A foreign or unknown id is a
// no-op.
func (s *Service) DeleteAlert(alertId, userId uint) error {
	err := s.DB.Where("id = ? AND user_id = ?", alertId, userId).
		Delete(&model.Alert{}).Error
	return errors.Wrap(err, "delete alert")
}
