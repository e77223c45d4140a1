// Package main 提供时间线维护命令行：全量重建、导入历史事件、查看条目
package main

import (
	"fmt"
	"os"

	"SamuraiArchive/internal/config"
	"SamuraiArchive/internal/database"
	"SamuraiArchive/internal/logging"
	"SamuraiArchive/internal/repository"
	"SamuraiArchive/internal/service"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	// configDir 由 --config 指定，目录下需有 config.yaml
	configDir string

	db        *gorm.DB
	store     *repository.Store
	generator *service.TimelineGenerator
	logger    *logrus.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:               "timeline",
	Short:             "Maintain the derived timeline of the samurai archive",
	SilenceUsage:      true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "./config", "directory containing config.yaml")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(listCmd)
}

// setup 加载配置并连接数据库，与 HTTP 服务共用同一份配置
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigFrom(configDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger = logging.NewLogger(cfg.Log)

	db, err = database.Open(cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	store = repository.NewStore(db)
	generator = service.NewTimelineGenerator(store, logger, nil)
	return nil
}

// teardown 关闭数据库连接
func teardown(cmd *cobra.Command, args []string) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
