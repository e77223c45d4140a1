package main

import (
	"context"
	"fmt"
	"log"

	"SamuraiArchive/internal/api"
	"SamuraiArchive/internal/config"
	"SamuraiArchive/internal/database"
	"SamuraiArchive/internal/logging"
	"SamuraiArchive/internal/metrics"
	"SamuraiArchive/internal/repository"
	"SamuraiArchive/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// 1. 加载配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("加载配置文件失败: %v", err)
	}

	// 2. 初始化日志
	logger := logging.NewLogger(cfg.Log)
	logger.Info("配置文件加载成功")

	// 3. 连接数据库（postgres 库不存在则先创建）
	db, err := database.Open(cfg.Database, logger)
	if err != nil {
		logger.Fatalf("连接数据库失败: %v", err)
	}
	logger.WithField("driver", cfg.Database.Driver).Info("数据库连接成功")

	// 4. 库表不存在则自动创建
	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Fatalf("数据库表结构迁移失败: %v", err)
		}
		logger.Info("数据库表结构检查完成")
	}

	// 5. 指标
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	// 6. 启动时同步时间线（可选）
	if cfg.Timeline.SeedOnStart || cfg.Timeline.GenerateOnStart {
		ctx := context.Background()
		generator := service.NewTimelineGenerator(repository.NewStore(db), logger, m)
		if cfg.Timeline.SeedOnStart {
			if _, err := generator.SyncHistoricalEvents(ctx); err != nil {
				logger.WithError(err).Error("导入历史事件失败")
			}
		}
		if cfg.Timeline.GenerateOnStart {
			if _, err := generator.GenerateTimeline(ctx); err != nil {
				logger.WithError(err).Error("时间线全量重建失败")
			}
		}
	}

	// 7. 配置Gin运行模式并注册路由
	gin.SetMode(cfg.Server.Mode)
	r := api.NewRouter(cfg, db, logger, m)
	logger.Infof("Gin运行模式: %s", cfg.Server.Mode)

	// 8. 启动服务
	port := cfg.Server.Port
	logger.Infof("服务启动成功，端口：%d", port)
	if err := r.Run(fmt.Sprintf(":%d", port)); err != nil {
		logger.Fatalf("启动服务失败: %v", err)
	}
}
