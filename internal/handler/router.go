package handler

import (
	"auditsystem/internal/config"
	"auditsystem/internal/infrastructure/ai"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// SetupRouter 配置路由
func SetupRouter(db *gorm.DB, rdb *redis.Client, cfg *config.Config, aiClient *ai.Client) *gin.Engine {
	// 设置 gin 为发布模式（减少日志输出）
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// 注册中间件
	r.Use(RecoveryMiddleware())
	r.Use(LoggerMiddleware())
	r.Use(CORSMiddleware())

	// 创建处理器
	h := NewHandler(db, rdb, cfg, aiClient)

	// API 路由组
	api := r.Group("/api/v1")
	{
		// 稽核档案
		audit := api.Group("/audit")
		{
			audit.POST("/create", h.CreateAudit)
			audit.GET("/list", h.ListAudits)
			audit.GET("/detail", h.GetAudit)
			audit.POST("/rename", h.RenameAudit)
			audit.POST("/delete", h.DeleteAudit)
			audit.GET("/entries", h.ListEntries)
			audit.GET("/findings", h.ListFindings)
			audit.GET("/summaries", h.ListSummaries)
		}

		// 账套分析
		analyze := api.Group("/analyze")
		{
			analyze.POST("/demo", h.AnalyzeDemo)
			analyze.POST("/upload", h.AnalyzeUpload)
		}

		// 风险解读
		finding := api.Group("/finding")
		{
			finding.POST("/explain", h.ExplainFinding)
		}

		// 稽核助手对话
		chat := api.Group("/chat")
		{
			chat.POST("/send", h.ChatSend)
			chat.GET("/history", h.ChatHistory)
		}

		// 稽核报告
		report := api.Group("/report")
		{
			report.POST("/generate", h.GenerateReport)
			report.GET("/current", h.GetReport)
			report.POST("/save", h.SaveReport)
			report.GET("/speech", h.SpeakReport)
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
