package repo

import (
	"ModelHub/config"
	"ModelHub/model"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	mysqlDriver "github.com/go-sql-driver/mysql"
	gormMysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var Db *gorm.DB

// AutoMigrateAll migrates all database models and seeds the category table.
func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.User{}, &model.Category{}, &model.Model3D{}, &model.Rating{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return SeedCategories(db)
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger: gormlogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormlogger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		),
	}
}

// InitDB opens the configured database, migrates it and stores it in Db.
func InitDB() {
	var (
		db  *gorm.DB
		err error
	)
	switch config.AppConfig.DBDriver {
	case "sqlite":
		db, err = OpenSqlite(config.AppConfig.SQLitePath)
	case "postgres", "postgresql":
		db, err = openPostgres()
	default:
		db, err = openMysql()
	}
	if err != nil {
		log.Fatal("init db fail: ", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("get sql db fail: ", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := AutoMigrateAll(db); err != nil {
		log.Fatal("migrate db fail: ", err)
	}
	slog.Info("init db success", "driver", config.AppConfig.DBDriver)
	Db = db
}

// OpenSqlite opens a SQLite database; used for local runs and tests.
func OpenSqlite(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	return db, nil
}

// InitSqliteTest replaces Db with a migrated SQLite database.
func InitSqliteTest(dsn string) error {
	db, err := OpenSqlite(dsn)
	if err != nil {
		return err
	}
	if err := AutoMigrateAll(db); err != nil {
		return err
	}
	Db = db
	return nil
}

func openPostgres() (*gorm.DB, error) {
	dsn := strings.TrimSpace(config.AppConfig.DBDSN)
	if dsn == "" {
		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			config.AppConfig.DBHost,
			config.AppConfig.DBPort,
			config.AppConfig.DBUser,
			config.AppConfig.DBPass,
			config.AppConfig.DBName,
		)
	}
	db, err := gorm.Open(postgres.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return db, nil
}

func mysqlDSN(dbName string) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		config.AppConfig.DBUser,
		config.AppConfig.DBPass,
		config.AppConfig.DBHost,
		config.AppConfig.DBPort,
		dbName,
	)
}

func openMysql() (*gorm.DB, error) {
	dsn := strings.TrimSpace(config.AppConfig.DBDSN)
	if dsn == "" {
		dsn = mysqlDSN(config.AppConfig.DBName)
	}
	db, err := gorm.Open(gormMysql.Open(dsn), gormConfig())
	if err != nil && isUnknownDatabaseError(err) {
		if createErr := ensureMySQLDatabase(config.AppConfig.DBName); createErr != nil {
			return nil, fmt.Errorf("create mysql database: %w", createErr)
		}
		db, err = gorm.Open(gormMysql.Open(dsn), gormConfig())
	}
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	return db, nil
}

func isUnknownDatabaseError(err error) bool {
	var mysqlErr *mysqlDriver.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1049
	}
	return strings.Contains(strings.ToLower(err.Error()), "unknown database")
}

func ensureMySQLDatabase(dbName string) error {
	dbName = strings.TrimSpace(dbName)
	if dbName == "" {
		return errors.New("empty database name")
	}

	serverDB, err := sql.Open("mysql", mysqlDSN(""))
	if err != nil {
		return err
	}
	defer serverDB.Close()

	if err = serverDB.Ping(); err != nil {
		return err
	}

	_, err = serverDB.Exec(
		"CREATE DATABASE IF NOT EXISTS " + quoteMySQLIdentifier(dbName) + " CHARACTER SET utf8mb4 COLLATE utf8mb4_general_ci",
	)
	return err
}

func quoteMySQLIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}
