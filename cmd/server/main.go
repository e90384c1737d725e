package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata" // 确保在精简镜像中也能识别时区

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"
	"github.com/joho/godotenv"
	"github.com/user/animedex/internal/config"
	"github.com/user/animedex/internal/handler"
	"github.com/user/animedex/internal/middleware"
	"github.com/user/animedex/internal/router"
	"github.com/user/animedex/internal/service"
	"github.com/user/animedex/internal/utils"
)

func main() {
	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "animedex",
		Level: hclog.Info,
	})

	// 加载环境变量
	if err := godotenv.Load(); err != nil {
		logger.Info("未找到 .env 文件，使用系统环境变量")
	}

	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		logger.Error("配置加载失败", "error", err)
		os.Exit(1)
	}
	logger.SetLevel(hclog.LevelFromString(cfg.LogLevel))
	if cfg.UsesDefaultSecret() {
		logger.Error("生产环境正在使用默认密钥，请立即设置 APP_SECRET 环境变量")
	}

	// 上游客户端：Jikan 限速，AniList 不限速
	jikan := service.NewJikanClient(cfg.JikanBaseURL,
		utils.NewHTTPClient(cfg.HTTPTimeout, cfg.JikanRatePerSec, logger.Named("http")),
		logger.Named("jikan"))
	anilist := service.NewAniListClient(cfg.AniListURL,
		utils.NewHTTPClient(cfg.HTTPTimeout, 0, logger.Named("http")),
		logger.Named("anilist"))

	panels := utils.NewPanelCache(cfg.HomeCacheTTL)
	catalog := service.NewCatalog(jikan, panels, logger.Named("catalog"))
	agg := service.NewAggregator(jikan, anilist, logger.Named("aggregator"))
	viewers := service.NewViewerStore(agg, cfg.ViewerCapacity, cfg.ViewerTTL)

	// 初始化 Gin
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	// 启用 gzip，websocket 握手不压缩
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/ws/"})))

	// 设置 Session 中间件（仅保存匿名访客 ID）
	store := cookie.NewStore([]byte(cfg.AppSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 天
		HttpOnly: true,
		Secure:   cfg.Env == "production",
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions("animedex", store))

	// 加载模板（使用 multitemplate 解决继承问题）
	renderer, err := router.LoadTemplates(cfg.TemplatesDir)
	if err != nil {
		logger.Error("模板加载失败", "error", err)
		os.Exit(1)
	}
	r.HTMLRender = renderer

	// 静态文件
	r.Static("/static", cfg.StaticDir)

	// 中间件
	r.Use(middleware.Logger(logger.Named("request")))
	r.Use(middleware.Security())
	r.Use(middleware.Visitor(logger.Named("visitor")))

	h := handler.NewHandler(cfg, catalog, agg, viewers, logger.Named("handler"))
	router.RegisterRoutes(r, h)

	// 启动定时清理任务
	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	service.NewCleanupService(viewers, panels, cfg.CleanupInterval, logger.Named("cleanup")).Start(ctx)

	srv := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   30 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	// 在 goroutine 中启动服务器，这样我们就可以监听信号
	go func() {
		logger.Info("服务器启动", "addr", "http://localhost:"+cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("服务器启动失败", "error", err)
			os.Exit(1)
		}
	}()

	// 等待中断信号以优雅地关闭服务器
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("正在关闭服务器...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("服务器强制关闭", "error", err)
	}

	logger.Info("服务器已退出")
}
