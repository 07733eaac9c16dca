package storage

import (
	"sync"
	"time"

	"opensourcetogether/internal/config"
	"opensourcetogether/internal/util/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gorm_logger "gorm.io/gorm/logger"
)

var (
	db   *gorm.DB
	once sync.Once
)

// GetDb returns the shared connection pool. Errors are translated so that
// unique violations surface as gorm.ErrDuplicatedKey.
func GetDb() *gorm.DB {
	once.Do(func() {
		log := logger.GetLogger()

		conn, err := gorm.Open(postgres.Open(config.GetEnv().DatabaseDsn), &gorm.Config{
			TranslateError: true,
			Logger:         gorm_logger.Default.LogMode(gorm_logger.Silent),
			NowFunc: func() time.Time {
				return time.Now().UTC()
			},
		})
		if err != nil {
			log.Error("Failed to connect to database", "error", err)
			panic(err)
		}

		sqlDB, err := conn.DB()
		if err != nil {
			panic(err)
		}

		sqlDB.SetMaxOpenConns(50)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)

		db = conn
	})

	return db
}
