// ZouDao 仓储步行距离与工时分析引擎
// 主程序入口

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/zoudao/zoudao/internal/config"
	"github.com/zoudao/zoudao/internal/database"
	"github.com/zoudao/zoudao/internal/handler"
	"github.com/zoudao/zoudao/internal/metrics"
	"github.com/zoudao/zoudao/internal/repository"
	"github.com/zoudao/zoudao/pkg/logger"
)

// 构建信息（通过 ldflags 注入）
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 初始化日志
	logger.Init(logger.Config{
		Level:  cfg.App.LogLevel,
		Format: "console",
	})

	// 打印版本信息
	fmt.Printf("ZouDao 步行距离与工时分析引擎 v%s\n", Version)
	fmt.Printf("Build: %s (%s)\n", BuildTime, GitCommit)
	fmt.Println()

	// 连接数据库（可选：连不上时退化为纯计算模式，只接受内联数据）
	var (
		markerRepo      *repository.MarkerRepository
		pickRepo        *repository.PickRepository
		standardsRepo   *repository.StandardsRepository
		performanceRepo *repository.PerformanceRepository
		snapshotRepo    *repository.SnapshotRepository
	)
	db, err := database.New(&cfg.Database)
	if err != nil {
		logger.Warn().Err(err).Msg("数据库不可用，以纯计算模式启动")
	} else {
		defer db.Close()

		migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := db.Migrate(migrateCtx); err != nil {
			logger.Error().Err(err).Msg("数据库迁移失败")
			cancel()
			os.Exit(1)
		}
		cancel()

		markerRepo = repository.NewMarkerRepository(db)
		pickRepo = repository.NewPickRepository(db)
		standardsRepo = repository.NewStandardsRepository(db)
		performanceRepo = repository.NewPerformanceRepository(db)
		snapshotRepo = repository.NewSnapshotRepository(db)
	}

	// 创建处理器
	routeHandler := handler.NewRouteHandler(markerRepo, pickRepo, standardsRepo)
	laborHandler := handler.NewLaborHandler(
		standardsRepo, performanceRepo, snapshotRepo, pickRepo,
		cfg.Engine.CoverageThresholdPercent,
		cfg.Engine.HotPercentile,
		cfg.Engine.FarPercentile,
	)
	standardsHandler := handler.NewStandardsHandler(standardsRepo)
	markerHandler := handler.NewMarkerHandler(markerRepo)

	// 创建 HTTP 服务器
	mux := http.NewServeMux()

	// ========================================
	// 系统端点
	// ========================================

	// 健康检查端点
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		dbStatus := "disabled"
		if db != nil {
			dbStatus = "ok"
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.Health(ctx); err != nil {
				dbStatus = "down"
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"ok","service":"zoudao","database":"%s"}`, dbStatus)
	})

	// 版本信息端点
	mux.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"version":"%s","build_time":"%s","git_commit":"%s"}`, Version, BuildTime, GitCommit)
	})

	// ========================================
	// API v1 端点
	// ========================================

	// API 根路由
	mux.HandleFunc("/api/v1/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"message": "ZouDao 步行距离与工时分析引擎 API v1",
			"endpoints": {
				"route": {
					"walk_distance": "POST /api/v1/route/walk-distance"
				},
				"labor": {
					"breakdown": "POST /api/v1/labor/breakdown",
					"efficiency": "POST /api/v1/labor/efficiency",
					"staffing": "POST /api/v1/labor/staffing",
					"roi": "POST /api/v1/labor/roi",
					"trends": "POST /api/v1/labor/trends",
					"history": "POST /api/v1/labor/history"
				},
				"standards": {
					"library": "GET /api/v1/standards/library",
					"get": "POST /api/v1/standards/get",
					"save": "POST /api/v1/standards/save"
				},
				"markers": {
					"list": "POST /api/v1/markers/list",
					"replace": "POST /api/v1/markers/replace"
				}
			}
		}`))
	})

	// 步行距离计算 API
	mux.HandleFunc("/api/v1/route/walk-distance", routeHandler.WalkDistance)

	// ========================================
	// 工时分析 API
	// ========================================

	// 时间要素分解 API
	mux.HandleFunc("/api/v1/labor/breakdown", laborHandler.Breakdown)

	// 效率计算 API
	mux.HandleFunc("/api/v1/labor/efficiency", laborHandler.Efficiency)

	// 排班测算 API
	mux.HandleFunc("/api/v1/labor/staffing", laborHandler.Staffing)

	// 重储位ROI分析 API
	mux.HandleFunc("/api/v1/labor/roi", laborHandler.ROI)

	// 绩效趋势分析 API
	mux.HandleFunc("/api/v1/labor/trends", laborHandler.Trends)

	// 测算历史快照 API
	mux.HandleFunc("/api/v1/labor/history", laborHandler.History)

	// ========================================
	// 配置 API
	// ========================================

	// 工时标准库 API - 返回全部标准字段定义与默认值
	mux.HandleFunc("/api/v1/standards/library", handler.StandardsLibraryHandler)

	// 布局工时标准查询/保存 API
	mux.HandleFunc("/api/v1/standards/get", standardsHandler.Get)
	mux.HandleFunc("/api/v1/standards/save", standardsHandler.Save)

	// 路线标记 API
	mux.HandleFunc("/api/v1/markers/list", markerHandler.List)
	mux.HandleFunc("/api/v1/markers/replace", markerHandler.Replace)

	// ========================================
	// 监控端点
	// ========================================

	// Prometheus 指标端点
	if cfg.Metrics.Enabled {
		mux.Handle(cfg.Metrics.Path, metrics.Handler())
	}

	// ========================================
	// 中间件
	// ========================================

	// 中间件执行顺序：requestID -> rateLimit -> cors -> logging -> handler
	globalRateLimiter = NewRateLimiter(float64(cfg.API.RateLimit))
	root := requestIDMiddleware(rateLimitMiddleware(corsMiddleware(loggingMiddleware(mux))))

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      root,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 启动服务器（非阻塞）
	go func() {
		logger.Info().
			Int("port", cfg.App.Port).
			Str("version", Version).
			Str("url", fmt.Sprintf("http://localhost:%d", cfg.App.Port)).
			Str("api_docs", fmt.Sprintf("http://localhost:%d/api/v1/", cfg.App.Port)).
			Msg("服务器启动")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("服务器启动失败")
			os.Exit(1)
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("正在关闭服务器...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("服务器关闭失败")
		os.Exit(1)
	}

	logger.Info().Msg("服务器已关闭")
}

// requestIDMiddleware 请求ID追踪中间件
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 尝试从请求头获取 Request ID，没有则生成新的
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		// 设置响应头
		w.Header().Set("X-Request-ID", requestID)

		// 将 Request ID 存储到 context 中
		ctx := context.WithValue(r.Context(), "request_id", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// loggingMiddleware 日志中间件
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// 获取 Request ID
		requestID, _ := r.Context().Value("request_id").(string)

		// 包装ResponseWriter以捕获状态码
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start)

		logger.Info().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rw.statusCode).
			Dur("duration", duration).
			Msg("请求处理")

		// 记录Prometheus指标
		metrics.RecordRequestMetrics(r.Method, r.URL.Path, rw.statusCode, duration)
	})
}

// responseWriter 包装ResponseWriter以捕获状态码
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// RateLimiter 简单的令牌桶限流器
type RateLimiter struct {
	tokens     float64
	maxTokens  float64
	refillRate float64 // 每秒添加的令牌数
	lastRefill time.Time
	mu         sync.Mutex
}

// NewRateLimiter 创建限流器
func NewRateLimiter(requestsPerSecond float64) *RateLimiter {
	return &RateLimiter{
		tokens:     requestsPerSecond,
		maxTokens:  requestsPerSecond * 2, // 允许突发流量
		refillRate: requestsPerSecond,
		lastRefill: time.Now(),
	}
}

// Allow 检查是否允许请求
func (rl *RateLimiter) Allow() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(rl.lastRefill).Seconds()
	rl.tokens += elapsed * rl.refillRate
	if rl.tokens > rl.maxTokens {
		rl.tokens = rl.maxTokens
	}
	rl.lastRefill = now

	if rl.tokens >= 1 {
		rl.tokens--
		return true
	}
	return false
}

var globalRateLimiter = NewRateLimiter(100) // 默认 100 QPS

// rateLimitMiddleware 限流中间件
func rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !globalRateLimiter.Allow() {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"error":   true,
				"code":    "RATE_LIMITED",
				"message": "请求过于频繁，请稍后重试",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// corsMiddleware CORS中间件
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
