package app

import (
	"context"
	"fmt"
	"time"

	"github.com/lensframe/studio-core/internal/config"
	"github.com/lensframe/studio-core/internal/modules/storage/backup"
	pkgcron "github.com/lensframe/studio-core/internal/pkg/cron"
	"github.com/lensframe/studio-core/internal/pkg/session"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// registerCronJobs registers all scheduled background jobs.
func registerCronJobs(sched *pkgcron.Scheduler, db *gorm.DB, cfg *config.AppConfig, logger *zap.Logger) {
	cronLogger := logger.Named("CronService")

	sched.Register(pkgcron.Job{
		Name:        "auto_backup",
		Description: "daily database backup to local disk",
		Interval:    24 * time.Hour,
		Fn: func(ctx context.Context) error {
			if err := backup.CreateLocalBackup(db, cfg.BackupDir); err != nil {
				cronLogger.Warn("backup failed", zap.Error(err))
				return err
			}
			cronLogger.Info("backup written")
			return nil
		},
	})

	sched.Register(pkgcron.Job{
		Name:        "prune_sessions",
		Description: "remove expired and revoked login sessions",
		Interval:    12 * time.Hour,
		Fn: func(ctx context.Context) error {
			n, err := session.PruneExpired(db)
			if err != nil {
				cronLogger.Warn("session prune failed", zap.Error(err))
				return err
			}
			cronLogger.Info(fmt.Sprintf("pruned %d sessions", n))
			return nil
		},
	})
}
