// ABOUTME: HTTP transport for the dashboard and chat collaborator, built on gin.
// ABOUTME: Wires routes, request logging and shared handler dependencies.
package api

import (
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/harperreed/healthdash/internal/chat"
	"github.com/harperreed/healthdash/internal/dashboard"
)

// Persian user-facing error messages.
const (
	msgInternal          = "خطایی رخ داده است. لطفاً دوباره تلاش کنید."
	msgInvalidBody       = "درخواست نامعتبر است."
	msgTaskNotFound      = "وظیفه یافت نشد."
	msgTitleRequired     = "عنوان وظیفه الزامی است."
	msgInvalidView       = "نمای انتخاب شده نامعتبر است."
	msgNothingToUndo     = "تغییری برای بازگردانی وجود ندارد."
	msgMetricNotFound    = "شاخص سلامت یافت نشد."
	msgInvalidTimeRange  = "بازه زمانی نامعتبر است."
	msgMessageRequired   = "پیام باید ارسال شود."
	msgConversationIDReq = "شناسه گفتگو الزامی است."
	msgConvNotFound      = "گفتگو یافت نشد."
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	dash   *dashboard.Dashboard
	chat   *chat.Service
	logger *log.Logger
}

// NewAPI constructs a handler set. A nil logger discards request logs.
func NewAPI(dash *dashboard.Dashboard, chatService *chat.Service, logger *log.Logger) *API {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &API{dash: dash, chat: chatService, logger: logger}
}

// Router configures the gin engine and routes.
func (a *API) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), a.requestLogger())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	api := r.Group("/api")
	{
		api.GET("/metrics", a.ListMetrics)
		api.GET("/metrics/:id", a.GetMetric)

		api.GET("/tasks", a.ListTasks)
		api.POST("/tasks", a.CreateTask)
		api.PUT("/tasks/:id", a.UpdateTask)
		api.DELETE("/tasks/:id", a.DeleteTask)
		api.POST("/tasks/:id/toggle", a.ToggleTask)
		api.POST("/tasks/:id/undo", a.UndoToggle)

		api.GET("/preferences", a.GetPreferences)
		api.PUT("/preferences", a.UpdatePreferences)

		api.GET("/achievements", a.ListAchievements)

		api.POST("/chat", a.SendMessage)
		api.POST("/chat/create", a.CreateConversation)
		api.GET("/chat/:conversationId", a.GetConversation)
		api.DELETE("/chat/:conversationId", a.DeleteConversation)
	}

	return r
}

func (a *API) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		a.logger.Debug("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}
