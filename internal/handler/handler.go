package handler

import (
	"errors"
	"path/filepath"
	"strings"

	"auditsystem/internal/config"
	"auditsystem/internal/infrastructure/ai"
	"auditsystem/internal/ingest"
	"auditsystem/internal/ledger"
	"auditsystem/internal/repository"
	"auditsystem/internal/service"
	"auditsystem/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// Handler 统一处理器，包含所有服务依赖
type Handler struct {
	cfg            *config.Config
	auditService   *service.AuditService
	analyzeService *service.AnalyzeService
	enrichService  *service.EnrichService
	chatService    *service.ChatService
	reportService  *service.ReportService
}

// NewHandler 创建处理器实例
func NewHandler(db *gorm.DB, rdb *redis.Client, cfg *config.Config, aiClient *ai.Client) *Handler {
	return &Handler{
		cfg:            cfg,
		auditService:   service.NewAuditService(db, cfg),
		analyzeService: service.NewAnalyzeService(db, rdb, cfg),
		enrichService:  service.NewEnrichService(db, rdb, cfg, aiClient),
		chatService:    service.NewChatService(db, cfg, aiClient),
		reportService:  service.NewReportService(db, cfg, aiClient),
	}
}

// businessCode 把已知的服务层错误映射为业务错误码，未知错误返回 0
func businessCode(err error) int {
	var validationErr *ledger.ValidationError
	var malformedErr *ledger.MalformedEntryError

	switch {
	case errors.Is(err, repository.ErrAuditNotFound):
		return response.CodeAuditNotFound
	case errors.Is(err, repository.ErrFindingNotFound):
		return response.CodeFindingNotFound
	case errors.Is(err, service.ErrAuditNotLoaded):
		return response.CodeAuditNotLoaded
	case errors.Is(err, service.ErrDuplicateRequest):
		return response.CodeDuplicateRequest
	case errors.As(err, &validationErr), errors.As(err, &malformedErr):
		return response.CodeInvalidLedger
	case errors.Is(err, ai.ErrUnavailable), errors.Is(err, ai.ErrEmptyCompletion):
		return response.CodeAIUnavailable
	case errors.Is(err, service.ErrUnknownReportType), errors.Is(err, service.ErrReportEmpty):
		return response.CodeParamError
	default:
		return 0
	}
}

func handleError(c *gin.Context, err error) {
	if code := businessCode(err); code != 0 {
		response.BusinessError(c, code, err.Error())
		return
	}
	response.ServerError(c, err.Error())
}

// handleAnalyzeError 分析流程里的未知错误统一归为"分析失败"
func handleAnalyzeError(c *gin.Context, err error) {
	if code := businessCode(err); code != 0 {
		response.BusinessError(c, code, err.Error())
		return
	}
	response.BusinessError(c, response.CodeAnalysisFailed, "分析失败: "+err.Error())
}

// ============================================================
// 稽核档案接口
// ============================================================

// CreateAudit 创建稽核档案
// POST /api/v1/audit/create
func (h *Handler) CreateAudit(c *gin.Context) {
	var req service.CreateAuditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "参数错误: "+err.Error())
		return
	}

	audit, err := h.auditService.Create(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, audit)
}

// ListAudits 档案列表
// GET /api/v1/audit/list
func (h *Handler) ListAudits(c *gin.Context) {
	audits, err := h.auditService.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, audits)
}

// GetAudit 档案详情
// GET /api/v1/audit/detail?audit_no=xxx
func (h *Handler) GetAudit(c *gin.Context) {
	auditNo := c.Query("audit_no")
	if auditNo == "" {
		response.ParamError(c, "audit_no 参数缺失")
		return
	}

	audit, err := h.auditService.Get(c.Request.Context(), auditNo)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, audit)
}

// RenameAuditRequest 重命名请求
type RenameAuditRequest struct {
	AuditNo string `json:"audit_no" binding:"required"`
	Name    string `json:"name" binding:"required"`
}

// RenameAudit 档案重命名
// POST /api/v1/audit/rename
func (h *Handler) RenameAudit(c *gin.Context) {
	var req RenameAuditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "参数错误: "+err.Error())
		return
	}

	audit, err := h.auditService.Rename(c.Request.Context(), req.AuditNo, req.Name)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, audit)
}

// DeleteAuditRequest 删除请求
type DeleteAuditRequest struct {
	AuditNo string `json:"audit_no" binding:"required"`
}

// DeleteAudit 删除档案及其下所有数据
// POST /api/v1/audit/delete
func (h *Handler) DeleteAudit(c *gin.Context) {
	var req DeleteAuditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "参数错误: "+err.Error())
		return
	}

	if err := h.auditService.Delete(c.Request.Context(), req.AuditNo); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "删除成功"})
}

// ListEntries 分录列表
// GET /api/v1/audit/entries?audit_no=xxx
func (h *Handler) ListEntries(c *gin.Context) {
	auditNo := c.Query("audit_no")
	if auditNo == "" {
		response.ParamError(c, "audit_no 参数缺失")
		return
	}

	entries, err := h.auditService.ListEntries(c.Request.Context(), auditNo)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, entries)
}

// ListFindings 风险发现列表
// GET /api/v1/audit/findings?audit_no=xxx
func (h *Handler) ListFindings(c *gin.Context) {
	auditNo := c.Query("audit_no")
	if auditNo == "" {
		response.ParamError(c, "audit_no 参数缺失")
		return
	}

	findings, err := h.auditService.ListFindings(c.Request.Context(), auditNo)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, findings)
}

// ListSummaries 科目汇总列表
// GET /api/v1/audit/summaries?audit_no=xxx
func (h *Handler) ListSummaries(c *gin.Context) {
	auditNo := c.Query("audit_no")
	if auditNo == "" {
		response.ParamError(c, "audit_no 参数缺失")
		return
	}

	summaries, err := h.auditService.ListSummaries(c.Request.Context(), auditNo)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, summaries)
}

// ============================================================
// 分析接口
// ============================================================

// AnalyzeDemoRequest 演示分析请求
type AnalyzeDemoRequest struct {
	AuditNo   string `json:"audit_no" binding:"required"`
	RequestID string `json:"request_id" binding:"required"` // 幂等ID
}

// AnalyzeDemo 用内置演示账套执行分析
// POST /api/v1/analyze/demo
func (h *Handler) AnalyzeDemo(c *gin.Context) {
	var req AnalyzeDemoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "参数错误: "+err.Error())
		return
	}

	result, err := h.analyzeService.AnalyzeDemo(c.Request.Context(), req.AuditNo, req.RequestID)
	if err != nil {
		handleAnalyzeError(c, err)
		return
	}
	response.Success(c, result)
}

// AnalyzeUpload 上传账套文件并执行分析
// POST /api/v1/analyze/upload  (multipart: audit_no, request_id, file)
//
// 支持 e-Defter XML 和 Excel 两种格式，按扩展名分流
func (h *Handler) AnalyzeUpload(c *gin.Context) {
	auditNo := c.PostForm("audit_no")
	requestID := c.PostForm("request_id")
	if auditNo == "" || requestID == "" {
		response.ParamError(c, "audit_no/request_id 参数缺失")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BusinessError(c, response.CodeInvalidUpload, "缺少上传文件: "+err.Error())
		return
	}

	if fileHeader.Size > h.cfg.Business.MaxUploadBytes {
		response.BusinessError(c, response.CodeInvalidUpload, "文件超过大小限制")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BusinessError(c, response.CodeInvalidUpload, "打开上传文件失败: "+err.Error())
		return
	}
	defer file.Close()

	var records []ledger.RawRecord
	switch strings.ToLower(filepath.Ext(fileHeader.Filename)) {
	case ".xml":
		records, err = ingest.ParseXML(file)
	case ".xlsx":
		records, err = ingest.ParseXLSX(file)
	default:
		response.BusinessError(c, response.CodeInvalidUpload, "不支持的文件格式，仅支持 .xml 和 .xlsx")
		return
	}
	if err != nil {
		response.BusinessError(c, response.CodeInvalidUpload, "解析上传文件失败: "+err.Error())
		return
	}

	result, err := h.analyzeService.AnalyzeRecords(c.Request.Context(), auditNo, requestID, records)
	if err != nil {
		handleAnalyzeError(c, err)
		return
	}
	response.Success(c, result)
}

// ============================================================
// 风险解读接口
// ============================================================

// ExplainFindingRequest 解读请求
type ExplainFindingRequest struct {
	FindingNo string `json:"finding_no" binding:"required"`
}

// ExplainFinding 为风险发现生成 AI 解读
// POST /api/v1/finding/explain
func (h *Handler) ExplainFinding(c *gin.Context) {
	var req ExplainFindingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "参数错误: "+err.Error())
		return
	}

	finding, err := h.enrichService.ExplainFinding(c.Request.Context(), req.FindingNo)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, finding)
}

// ============================================================
// 对话接口
// ============================================================

// ChatSendRequest 提问请求
type ChatSendRequest struct {
	AuditNo  string `json:"audit_no" binding:"required"`
	Question string `json:"question" binding:"required"`
}

// ChatSend 向稽核助手提问
// POST /api/v1/chat/send
func (h *Handler) ChatSend(c *gin.Context) {
	var req ChatSendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "参数错误: "+err.Error())
		return
	}

	answer, err := h.chatService.Send(c.Request.Context(), req.AuditNo, req.Question)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, answer)
}

// ChatHistory 对话历史
// GET /api/v1/chat/history?audit_no=xxx
func (h *Handler) ChatHistory(c *gin.Context) {
	auditNo := c.Query("audit_no")
	if auditNo == "" {
		response.ParamError(c, "audit_no 参数缺失")
		return
	}

	messages, err := h.chatService.History(c.Request.Context(), auditNo)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, messages)
}

// ============================================================
// 报告接口
// ============================================================

// GenerateReportRequest 草稿生成请求
type GenerateReportRequest struct {
	AuditNo string `json:"audit_no" binding:"required"`
	Type    string `json:"type" binding:"required"` // summary / email / action-plan
}

// GenerateReport 生成 AI 报告草稿并追加到当前报告
// POST /api/v1/report/generate
func (h *Handler) GenerateReport(c *gin.Context) {
	var req GenerateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "参数错误: "+err.Error())
		return
	}

	report, err := h.reportService.GenerateDraft(c.Request.Context(), req.AuditNo, req.Type)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, report)
}

// GetReport 当前报告
// GET /api/v1/report/current?audit_no=xxx
func (h *Handler) GetReport(c *gin.Context) {
	auditNo := c.Query("audit_no")
	if auditNo == "" {
		response.ParamError(c, "audit_no 参数缺失")
		return
	}

	report, err := h.reportService.GetCurrent(c.Request.Context(), auditNo)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, report)
}

// SaveReportRequest 保存请求
type SaveReportRequest struct {
	AuditNo string `json:"audit_no" binding:"required"`
	Content string `json:"content"`
}

// SaveReport 覆盖保存报告内容
// POST /api/v1/report/save
func (h *Handler) SaveReport(c *gin.Context) {
	var req SaveReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "参数错误: "+err.Error())
		return
	}

	report, err := h.reportService.Save(c.Request.Context(), req.AuditNo, req.Content)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, report)
}

// SpeakReport 把当前报告转成语音
// GET /api/v1/report/speech?audit_no=xxx
//
// 成功时直接返回 WAV 字节流，不走 JSON 信封
func (h *Handler) SpeakReport(c *gin.Context) {
	auditNo := c.Query("audit_no")
	if auditNo == "" {
		response.ParamError(c, "audit_no 参数缺失")
		return
	}

	audio, err := h.reportService.Speak(c.Request.Context(), auditNo)
	if err != nil {
		handleError(c, err)
		return
	}
	c.Data(200, "audio/wav", audio)
}
