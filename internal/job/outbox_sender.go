package job

import (
	"context"
	"time"

	"auditsystem/internal/config"
	"auditsystem/internal/infrastructure/mq"
	"auditsystem/internal/model"
	"auditsystem/internal/repository"
	"auditsystem/pkg/logger"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// OutboxSender 把 outbox 表里的待发送变更事件推到 Kafka
//
// 【设计思考】为什么不在业务事务里直接发 Kafka？
// 直接发会出现"库提交了但消息丢了"或"消息发了但库回滚了"两种
// 不一致。事件先和业务数据同事务落库，这里再异步搬运，两边
// 最终一定一致（至少一次投递，消费端按幂等处理）。
type OutboxSender struct {
	db         *gorm.DB
	outboxRepo *repository.OutboxRepository
	cfg        *config.Config
	log        *logrus.Entry
	stopCh     chan struct{}
	interval   time.Duration
	batchSize  int
}

func NewOutboxSender(db *gorm.DB, cfg *config.Config) *OutboxSender {
	return &OutboxSender{
		db:         db,
		outboxRepo: repository.NewOutboxRepository(db),
		cfg:        cfg,
		log:        logger.WithModule("outbox_sender"),
		stopCh:     make(chan struct{}),
		interval:   100 * time.Millisecond,
		batchSize:  100,
	}
}

func (s *OutboxSender) Start(ctx context.Context) {
	s.log.Info("变更事件发送任务启动")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("收到停止信号，任务退出")
			return
		case <-s.stopCh:
			s.log.Info("任务停止")
			return
		case <-ticker.C:
			s.processPendingMessages(ctx)
		}
	}
}

func (s *OutboxSender) Stop() {
	close(s.stopCh)
}

func (s *OutboxSender) processPendingMessages(ctx context.Context) {
	messages, err := s.outboxRepo.GetPendingMessages(ctx, s.batchSize)
	if err != nil {
		s.log.WithError(err).Error("查询待发送事件失败")
		return
	}

	if len(messages) == 0 {
		return
	}

	for _, msg := range messages {
		s.sendMessage(ctx, msg)
	}
}

func (s *OutboxSender) sendMessage(ctx context.Context, msg *model.OutboxMessage) {
	err := mq.SendMessage(msg.Topic, msg.MessageKey, msg.Payload)

	if err == nil {
		if updateErr := s.outboxRepo.UpdateStatus(ctx, msg.ID, model.OutboxStatusSent); updateErr != nil {
			s.log.WithError(updateErr).WithField("id", msg.ID).Error("更新事件状态失败")
		} else {
			s.log.WithFields(logrus.Fields{
				"id":    msg.ID,
				"topic": msg.Topic,
				"key":   msg.MessageKey,
			}).Debug("变更事件发送成功")
		}
		return
	}

	s.log.WithError(err).WithField("id", msg.ID).Warn("变更事件发送失败")

	if err := s.outboxRepo.IncrementRetryCount(ctx, msg.ID); err != nil {
		s.log.WithError(err).WithField("id", msg.ID).Error("增加重试次数失败")
	}

	if msg.RetryCount+1 >= s.cfg.Business.MaxRetryCount {
		if err := s.outboxRepo.MarkAsFailed(ctx, msg.ID); err != nil {
			s.log.WithError(err).WithField("id", msg.ID).Error("标记事件失败状态失败")
		} else {
			s.log.WithField("id", msg.ID).Warn("事件超过最大重试次数，标记为失败")
		}
	}
}
