package service

import (
	"context"

	"github.com/alexanderramin/shiftclock/internal/domain"
	"github.com/alexanderramin/shiftclock/internal/repository"
)

type timeLogService struct {
	logs repository.TimeLogRepo
}

func NewTimeLogService(logs repository.TimeLogRepo) TimeLogService {
	return &timeLogService{logs: logs}
}

func (s *timeLogService) ListRecent(ctx context.Context, limit int) ([]*domain.TimeLog, error) {
	return s.logs.ListRecent(ctx, limit)
}
