package db

import (
	"database/sql"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/blog-platform/internal/config"
)

type Database struct {
	Gorm *gorm.DB
	SQL  *sql.DB
}

func Connect(cfg *config.Config) (*Database, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode, cfg.DBTimezone)
	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	return &Database{Gorm: gormDB, SQL: sqlDB}, nil
}

func (d *Database) AutoMigrate(modelsToMigrate ...interface{}) error {
	return d.Gorm.AutoMigrate(modelsToMigrate...)
}

// EnsureIndexes creates the lookup indexes the hot queries depend on.
// Unique indexes (users, tags, post slugs) come from the model tags.
func (d *Database) EnsureIndexes() error {
	stmts := []string{
		"CREATE INDEX IF NOT EXISTS idx_posts_author_id ON posts(author_id);",
		"CREATE INDEX IF NOT EXISTS idx_posts_published ON posts(published);",
		"CREATE INDEX IF NOT EXISTS idx_comments_post_id ON comments(post_id);",
		"CREATE INDEX IF NOT EXISTS idx_comments_author_id ON comments(author_id);",
		"CREATE INDEX IF NOT EXISTS idx_post_tags_post_id ON post_tags(post_id);",
		"CREATE INDEX IF NOT EXISTS idx_post_tags_tag_id ON post_tags(tag_id);",
	}
	for _, stmt := range stmts {
		if err := d.Gorm.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

func (d *Database) Close() error {
	if d.SQL != nil {
		return d.SQL.Close()
	}
	return nil
}

func (d *Database) Transaction(fc func(tx *gorm.DB) error) error {
	return d.Gorm.Transaction(fc)
}
