package logic

import (
	"testing"

	"github.com/blues/cfp/internal/model"
	"github.com/blues/cfp/internal/validation"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// openTestDB 打开内存数据库并迁移模型
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		NamingStrategy: &schema.NamingStrategy{
			SingularTable: true,
		},
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// 内存库只允许单连接，避免连接池拿到空库
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&model.UserModel{},
		&model.ProjectModel{},
		&model.ContributionModel{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func testRules() *validation.Rules {
	return validation.NewRules(
		[]string{"scam", "fake", "fraud", "illegal"},
		[]string{"spam", "scam", "fake", "fraud"},
	)
}
