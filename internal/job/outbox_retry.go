package job

import (
	"context"
	"time"

	"auditsystem/internal/config"
	"auditsystem/internal/repository"
	"auditsystem/pkg/logger"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// OutboxRetryJob 定期把发送失败的变更事件重新入队
//
// Kafka 短暂不可用会让一批事件被标记失败，恢复后这里兜底重发。
// 事件对消费端是幂等的（订阅端收到后只是刷新数据），重复投递无害
type OutboxRetryJob struct {
	db         *gorm.DB
	outboxRepo *repository.OutboxRepository
	cfg        *config.Config
	log        *logrus.Entry
	stopCh     chan struct{}
	interval   time.Duration
	batchSize  int
}

func NewOutboxRetryJob(db *gorm.DB, cfg *config.Config) *OutboxRetryJob {
	return &OutboxRetryJob{
		db:         db,
		outboxRepo: repository.NewOutboxRepository(db),
		cfg:        cfg,
		log:        logger.WithModule("outbox_retry"),
		stopCh:     make(chan struct{}),
		interval:   5 * time.Minute,
		batchSize:  100,
	}
}

func (j *OutboxRetryJob) Start(ctx context.Context) {
	j.log.Info("失败事件重试任务启动")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			j.log.Info("收到停止信号，任务退出")
			return
		case <-j.stopCh:
			j.log.Info("任务停止")
			return
		case <-ticker.C:
			j.requeueFailedMessages(ctx)
		}
	}
}

func (j *OutboxRetryJob) Stop() {
	close(j.stopCh)
}

func (j *OutboxRetryJob) requeueFailedMessages(ctx context.Context) {
	messages, err := j.outboxRepo.GetFailedMessages(ctx, j.batchSize)
	if err != nil {
		j.log.WithError(err).Error("查询失败事件失败")
		return
	}

	for _, msg := range messages {
		if err := j.outboxRepo.RequeueFailed(ctx, msg.ID); err != nil {
			j.log.WithError(err).WithField("id", msg.ID).Error("重新入队失败")
			continue
		}
		j.log.WithField("id", msg.ID).Info("失败事件已重新入队")
	}
}
