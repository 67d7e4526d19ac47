package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/gillesritchmond/portfolio-api/internal/config"
	"github.com/gillesritchmond/portfolio-api/internal/feed"
	"github.com/gillesritchmond/portfolio-api/internal/github"
	"github.com/gillesritchmond/portfolio-api/internal/handler"
	"github.com/gillesritchmond/portfolio-api/internal/logger"
	"github.com/gillesritchmond/portfolio-api/internal/mail"
	"github.com/gillesritchmond/portfolio-api/internal/metrics"
	"github.com/gillesritchmond/portfolio-api/internal/middleware"
	"github.com/gillesritchmond/portfolio-api/internal/security"
)

// Init はアプリケーションの初期化を行う。
// 環境変数からConfigを読み込み、JSON構造化ログをセットアップする。
// writerが指定された場合はログ出力先としてそのwriterを使用する。
func Init(w io.Writer) (*config.Config, error) {
	// 1. ログの初期化（設定読み込み前にログを使えるようにする）
	logger.SetupDefault(w, os.Getenv("LOG_LEVEL"))

	// 2. 環境変数から設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}

// Run はアプリケーションのメインエントリーポイント。
// コマンドライン引数からサブコマンドを解析し、対応するモードで起動する。
// argsにはos.Args[1:]を渡す。
func Run(w io.Writer, args []string) error {
	cmd := ParseCommand(args)

	// healthcheck は軽量サブコマンドのため、フル初期化をスキップする
	if cmd == CommandHealthcheck {
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			port = "8080"
		}
		return runHealthcheck(port)
	}

	cfg, err := Init(w)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	slog.Info("starting application",
		slog.String("command", string(cmd)),
		slog.String("port", cfg.ServerPort),
		slog.String("github_username", cfg.GitHubUsername),
	)

	return runServe(cfg)
}

// runServe はAPIサーバーモードで起動する。
// 全依存関係をワイヤリングし、HTTPサーバーを起動する。
// SIGINTまたはSIGTERMシグナルを受信するとグレースフルシャットダウンを行う。
func runServe(cfg *config.Config) error {
	// 1. メトリクスの初期化
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// 2. アウトバウンドHTTPクライアントの初期化（SSRF防止付き）
	guard := security.NewOutboundGuard()
	safeClient := guard.NewSafeClient(cfg.FetchTimeout)

	// 3. ドメインサービスの初期化
	sanitizer := security.NewContentSanitizer()
	articleService := feed.NewService(
		safeClient,
		feed.NewProjector(sanitizer),
		collector,
		slog.Default(),
		feed.ServiceConfig{
			MediumUsername: cfg.MediumUsername,
			CacheTTL:       cfg.CacheTTL,
			MaxBodySize:    cfg.FetchMaxSize,
		},
	)

	githubClient := github.NewClient(
		safeClient,
		collector,
		slog.Default(),
		github.ClientConfig{
			Username: cfg.GitHubUsername,
			Token:    cfg.GitHubToken,
			CacheTTL: cfg.CacheTTL,
		},
	)

	mailClient := mail.NewClient(
		&http.Client{Timeout: cfg.FetchTimeout},
		slog.Default(),
		mail.ClientConfig{
			APIKey: cfg.ResendAPIKey,
			From:   cfg.ContactFrom,
			To:     cfg.ContactTo,
		},
	)

	if !cfg.MailConfigured() {
		slog.Warn("メール設定が未構成のため、コンタクト送信は無効です")
	}

	// 4. レート制限の初期化（configはreq/min単位、rate.Limitはreq/sec単位）
	rateLimiterCfg := middleware.RateLimiterConfig{
		GeneralRate:     rate.Limit(float64(cfg.RateLimitGeneral) / 60.0),
		GeneralBurst:    cfg.RateLimitGeneral,
		ContactRate:     rate.Limit(float64(cfg.RateLimitContact) / 60.0),
		ContactBurst:    cfg.RateLimitContact,
		CleanupInterval: 5 * time.Minute,
	}
	rateLimiter := middleware.NewRateLimiter(rateLimiterCfg)
	defer rateLimiter.Stop()

	// 5. ルーターの構築
	router := handler.NewRouter(&handler.RouterDeps{
		Logger:            slog.Default(),
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		RateLimiter:       rateLimiter,
		Gatherer:          registry,
		ContactMetrics:    collector,
		ArticleService:    articleService,
		GitHubService:     githubClient,
		Mailer:            mailClient,
		MailConfigured:    cfg.MailConfigured(),
	})

	// 6. HTTPサーバーの起動
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// グレースフルシャットダウンのためのシグナルハンドリング
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("API server starting",
			slog.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server listen error", slog.String("error", err.Error()))
		}
	}()

	<-stop
	slog.Info("shutting down API server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("API server stopped gracefully")
	return nil
}

// runHealthcheck はヘルスチェックを実行する。
// distroless環境でのDockerヘルスチェック用サブコマンド。
// /health エンドポイントにHTTPリクエストを送り、結果を返す。
func runHealthcheck(port string) error {
	url := fmt.Sprintf("http://localhost:%s/health", port)
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}
