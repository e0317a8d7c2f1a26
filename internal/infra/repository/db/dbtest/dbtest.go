// Package dbtest 提供測試用的 sqlite in-memory 資料庫
package dbtest

import (
	"fmt"
	"testing"

	"github.com/RoyceAzure/lab/shop/internal/infra/repository/db"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB 每次呼叫都是獨立的資料庫, 測試結束自動關閉
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	// in-memory db 只能有一條連線, 否則每條連線看到的是不同的資料庫
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.NewDbDao(conn).InitMigrate())

	t.Cleanup(func() {
		sqlDB.Close()
	})
	return conn
}

// NewTestStore 回傳已 migrate 完成的 Store
func NewTestStore(t testing.TB) *db.Store {
	t.Helper()
	return db.NewStore(NewTestDB(t))
}
