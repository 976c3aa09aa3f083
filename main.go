// @title Campus LMS 后端 API
// @version 1.0
// @description 校园在线学习平台的后端服务：课程、选课、在线测验与成绩管理。

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"campus_lms_backend/internal/app"
	"campus_lms_backend/internal/config"
	"campus_lms_backend/pkg/configwatcher"
	"campus_lms_backend/pkg/logger"
	"flag"
	"log"

	"go.uber.org/zap"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "只执行数据库迁移，完成后退出")
	migrate := flag.Bool("migrate", false, "启动时强制执行数据库迁移（即使是 release 模式）")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *migrateOnly {
		log.Println("数据库迁移完成，退出程序")
		return
	}

	// 热加载可动态调整的配置项（JWT 过期时间、限流、CORS 白名单等）
	go configwatcher.WatchConfig("configs/config.yaml", func(newCfg *config.Config) {
		cfg.JWT.ExpireTime = newCfg.JWT.ExpireTime
		cfg.RateLimit = newCfg.RateLimit
		cfg.CORS = newCfg.CORS
		logger.Log.Info("配置热加载完成", zap.String("file", "configs/config.yaml"))
	})

	application.Run()
}
