package service

import (
	"context"
	"fmt"
	"strings"

	"auditsystem/internal/config"
	"auditsystem/internal/infrastructure/ai"
	"auditsystem/internal/ledger"
	"auditsystem/internal/model"
	"auditsystem/internal/repository"
	"auditsystem/pkg/idgen"

	"gorm.io/gorm"
)

// ChatService 稽核助手对话服务
//
// 每个稽核档案有独立的对话流。助手回答时带上当前分析结果作为
// 上下文，让回答落在这份账套的具体数字上
type ChatService struct {
	db          *gorm.DB
	cfg         *config.Config
	aiClient    *ai.Client
	auditRepo   *repository.AuditRepository
	findingRepo *repository.FindingRepository
	summaryRepo *repository.SummaryRepository
	chatRepo    *repository.ChatRepository
	outboxRepo  *repository.OutboxRepository
}

func NewChatService(db *gorm.DB, cfg *config.Config, aiClient *ai.Client) *ChatService {
	return &ChatService{
		db:          db,
		cfg:         cfg,
		aiClient:    aiClient,
		auditRepo:   repository.NewAuditRepository(db),
		findingRepo: repository.NewFindingRepository(db),
		summaryRepo: repository.NewSummaryRepository(db),
		chatRepo:    repository.NewChatRepository(db),
		outboxRepo:  repository.NewOutboxRepository(db),
	}
}

// Send 追加一条用户提问并返回助手的回答
//
// 用户消息先落库再调 AI：即使 AI 失败，提问也保留在对话历史里
func (s *ChatService) Send(ctx context.Context, auditNo, question string) (*model.ChatMessage, error) {
	audit, err := s.auditRepo.GetByAuditNo(ctx, auditNo)
	if err != nil {
		return nil, err
	}

	userMsg := &model.ChatMessage{
		MessageNo: idgen.GenerateMessageNo(),
		AuditID:   audit.ID,
		Role:      model.ChatRoleUser,
		Content:   question,
	}
	if err := s.chatRepo.Create(ctx, userMsg); err != nil {
		return nil, fmt.Errorf("保存用户消息失败: %w", err)
	}

	prompt, err := s.buildChatPrompt(ctx, audit, question)
	if err != nil {
		return nil, err
	}

	answer, err := s.aiClient.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	aiMsg := &model.ChatMessage{
		MessageNo: idgen.GenerateMessageNo(),
		AuditID:   audit.ID,
		Role:      model.ChatRoleAI,
		Content:   answer,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.WithContext(ctx).Create(aiMsg).Error; err != nil {
			return fmt.Errorf("保存助手消息失败: %w", err)
		}
		return createChangeEvent(ctx, tx, s.outboxRepo, s.cfg.Kafka.Topic.AuditEvents,
			auditNo, "chat_message", model.ChangeEventInsert, 2)
	})
	if err != nil {
		return nil, err
	}

	return aiMsg, nil
}

// History 按时间顺序返回对话记录
func (s *ChatService) History(ctx context.Context, auditNo string) ([]*model.ChatMessage, error) {
	audit, err := s.auditRepo.GetByAuditNo(ctx, auditNo)
	if err != nil {
		return nil, err
	}
	return s.chatRepo.ListByAuditID(ctx, audit.ID)
}

// buildChatPrompt 把当前分析结果压成文字上下文
// 档案还没分析过时退化为通用助手
func (s *ChatService) buildChatPrompt(ctx context.Context, audit *model.Audit, question string) (string, error) {
	if !audit.DataLoaded {
		return "Sen profesyonel bir denetim asistanısın. Türkçe yanıt ver. Kullanıcı sorusu: " + question, nil
	}

	findings, err := s.findingRepo.ListByAuditID(ctx, audit.ID)
	if err != nil {
		return "", err
	}
	summaries, err := s.summaryRepo.ListByAuditID(ctx, audit.ID)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Denetim: %s (%s)\n\nRisk bulguları:\n", audit.Name, audit.Period)
	for _, f := range findings {
		fmt.Fprintf(&b, "- [%s] %s: %s\n", f.Severity, f.Title, f.Description)
	}
	b.WriteString("\nHesap özetleri:\n")
	for _, sm := range summaries {
		fmt.Fprintf(&b, "- %s %s: bakiye %s TL\n", sm.AccountCode, sm.AccountName, ledger.FormatTL(sm.Balance))
	}

	return fmt.Sprintf(
		"Sen bir denetim asistanısın. İşte denetim bağlamı: %s\n\nKullanıcı sorusu: %s",
		b.String(), question,
	), nil
}
