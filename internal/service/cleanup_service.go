package service

import (
	"context"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/user/animedex/internal/utils"
)

// CleanupService 定时清理过期的访客状态与首页缓存
type CleanupService struct {
	viewers  *ViewerStore
	panels   *utils.PanelCache
	interval time.Duration
	logger   hclog.Logger
}

// NewCleanupService 创建清理服务，panels 可为 nil
func NewCleanupService(viewers *ViewerStore, panels *utils.PanelCache, interval time.Duration, logger hclog.Logger) *CleanupService {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &CleanupService{
		viewers:  viewers,
		panels:   panels,
		interval: interval,
		logger:   logger,
	}
}

// Start 启动定时清理任务，ctx 取消后退出
func (s *CleanupService) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.RunOnce()
			}
		}
	}()
}

// RunOnce 执行一次清理
func (s *CleanupService) RunOnce() {
	if n := s.viewers.Sweep(); n > 0 {
		s.logger.Debug("已清理过期访客状态", "count", n, "remaining", s.viewers.Len())
	}
	if s.panels != nil {
		s.panels.DeleteExpired()
	}
}
