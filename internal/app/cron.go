package app

import (
	"context"

	"go.uber.org/zap"

	"github.com/review-monitor/core/internal/config"
	"github.com/review-monitor/core/internal/modules/monitor"
	pkgcron "github.com/review-monitor/core/internal/pkg/cron"
)

// registerCronJobs registers all scheduled background jobs.
func registerCronJobs(sched *pkgcron.Scheduler, monitorSvc *monitor.Service, cfg *config.AppConfig, logger *zap.Logger) {
	cronLogger := logger.Named("CronService")

	sched.Register(pkgcron.Job{
		Name:        "daily_review_monitor",
		Description: "抓取全部商品评论并生成负面评论监测报告",
		Interval:    cfg.Monitor.Interval,
		Fn: func(ctx context.Context) error {
			results, err := monitorSvc.Run(ctx)
			if err != nil {
				cronLogger.Warn("定时监测失败", zap.Error(err))
				return err
			}
			failed := 0
			for _, r := range results {
				if !r.OK {
					failed++
				}
			}
			cronLogger.Info("定时监测完成",
				zap.Int("products", len(results)),
				zap.Int("failed", failed))
			return nil
		},
	})
}
