package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mcnutrition/src/config"
	"mcnutrition/src/database"
	"mcnutrition/src/interface/handler"
	"mcnutrition/src/logger"
	"mcnutrition/src/middleware"
	"mcnutrition/src/planner"
	"mcnutrition/src/repository"
	"mcnutrition/src/routes"
	"mcnutrition/src/service"
	"mcnutrition/src/storage"
	"mcnutrition/src/usecase"
	"mcnutrition/src/validator"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	// 設定を読み込み
	cfg := config.LoadConfig()

	// ロガーを初期化
	if err := logger.InitLogger(cfg.Log.Level); err != nil {
		panic(fmt.Sprintf("ロガーの初期化に失敗: %v", err))
	}
	defer logger.CloseLogger()

	logger.Log.Info("アプリケーションを開始しています")

	// データベースに接続
	db, err := database.NewDB(&cfg.DB, logger.Log)
	if err != nil {
		logger.Log.WithError(err).Fatal("データベース接続に失敗")
	}
	defer db.Close()

	// S3アップローダーを初期化（設定が有効な場合）
	var uploader *storage.LogUploader
	if cfg.Log.UploadEnabled {
		s3Config := &storage.S3Config{
			Endpoint:        cfg.S3.Endpoint,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			Region:          cfg.S3.Region,
			Bucket:          cfg.S3.Bucket,
			UseSSL:          cfg.S3.UseSSL,
		}

		uploader, err = storage.NewLogUploader(s3Config, logger.Log)
		if err != nil {
			logger.Log.WithError(err).Error("S3アップローダーの初期化に失敗")
		} else {
			// 定期的なログアップロードを開始
			uploader.StartPeriodicUpload(cfg.Log.Directory, cfg.Log.UploadInterval, cfg.Log.UploadMaxAge)
		}
	}

	// リポジトリ層を構築
	menuRepo := repository.NewMenuRepository(db, logger.Log)
	plannerRepo := repository.NewPlannerRepository(db, logger.Log, cfg.Planner.AnonTTL)
	mealRepo := repository.NewMealRepository(db, logger.Log)

	// プランナーセッションマネージャーを構築
	manager := planner.NewManager(plannerRepo, mealRepo, planner.NewMemoryDraftCache(), logger.Log, planner.Options{
		DebounceWindow:      cfg.Planner.DebounceWindow,
		DraftMaxAge:         cfg.Planner.DraftMaxAge,
		DeleteAnonOnMigrate: cfg.Planner.DeleteAnonOnMigrate,
	})

	// サービスとユースケース
	jwtService := service.NewJWTService(cfg)
	sessionService := service.NewSessionService()
	menuUsecase := usecase.NewMenuUsecase(menuRepo)
	mealUsecase := usecase.NewMealUsecase(mealRepo)
	cv := validator.NewCustomValidator()

	// ハンドラー
	handlers := routes.Handlers{
		Menu:    handler.NewMenuHandler(menuUsecase, cv, logger.Log),
		Planner: handler.NewPlannerHandler(manager, mealUsecase, cv, logger.Log),
		Meal:    handler.NewMealHandler(mealUsecase, logger.Log),
		Auth:    handler.NewAuthHandler(sessionService, logger.Log),
	}

	// 期限切れの匿名プランナーを定期削除
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if _, err := plannerRepo.PurgeExpired(ctx); err != nil {
				logger.Log.WithError(err).Warn("期限切れプランナーの削除に失敗")
			}
			cancel()
		}
	}()

	// Ginルーターを初期化
	r := gin.Default()

	// NoRouteハンドラー（404）
	r.NoRoute(func(c *gin.Context) {
		logger.WithFields(logrus.Fields{
			"method":    c.Request.Method,
			"uri":       c.Request.RequestURI,
			"client_ip": c.ClientIP(),
		}).Warn("404: ルートが見つかりません")
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})

	// グローバルmiddlewareを適用
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RateLimitMiddleware())

	// ヘルスチェック用のエンドポイント
	r.GET("/health", func(c *gin.Context) {
		if err := db.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "NG",
				"error":  err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":    "OK",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	// APIルートを設定
	routes.SetupRoutes(r, handlers, jwtService, sessionService, cfg.Auth.AdminKeyHash)

	// グレースフルシャットダウンの設定
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan

		logger.Log.Info("シャットダウンシグナルを受信しました")

		// 保留中の自動保存をすべて書き出す
		manager.FlushAll()

		// 最後のログアップロードを実行
		if uploader != nil {
			logger.Log.Info("最後のログアップロードを実行中...")
			if err := uploader.UploadOldLogs(cfg.Log.Directory, 0); err != nil {
				logger.Log.WithError(err).Error("最後のログアップロードに失敗")
			}
		}

		db.Close()
		logger.CloseLogger()
		os.Exit(0)
	}()

	// サーバーを起動
	serverAddr := ":" + cfg.Server.Port
	logger.Log.WithField("port", cfg.Server.Port).Info("サーバーを開始します")

	if err := r.Run(serverAddr); err != nil {
		logger.Log.WithError(err).Fatal("サーバーの起動に失敗")
	}
}
