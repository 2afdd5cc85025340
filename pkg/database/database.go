package database

import (
	"fmt"
	"log"
	"post_place_backend/internal/config"
	"post_place_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.Charset,
		cfg.Database.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	// release 模式默认跳过自动迁移，需要 -migrate 显式开启
	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
		log.Println("Database migration completed")

		SeedInterestCatalog(db)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Post{},
		&model.Comment{},
		&model.Friendship{},
		&model.FriendRequest{},
		&model.Group{},
		&model.GroupMember{},
		&model.Interest{},
		&model.UserInterest{},
	)
}

// SeedInterestCatalog 初始化兴趣目录（目录为空时写入默认条目）
func SeedInterestCatalog(db *gorm.DB) {
	var count int64
	db.Model(&model.Interest{}).Count(&count)
	if count > 0 {
		return
	}

	defaults := []model.Interest{
		{Name: "Fútbol", Category: "Deportes", Emoji: "⚽"},
		{Name: "Baloncesto", Category: "Deportes", Emoji: "🏀"},
		{Name: "Natación", Category: "Deportes", Emoji: "🏊"},
		{Name: "Rock", Category: "Música", Emoji: "🎸"},
		{Name: "Pop", Category: "Música", Emoji: "🎤"},
		{Name: "Jazz", Category: "Música", Emoji: "🎷"},
		{Name: "Videojuegos", Category: "Entretenimiento", Emoji: "🎮"},
		{Name: "Cine", Category: "Entretenimiento", Emoji: "🎬"},
		{Name: "Series", Category: "Entretenimiento", Emoji: "📺"},
		{Name: "Programación", Category: "Tecnología", Emoji: "💻"},
		{Name: "Inteligencia Artificial", Category: "Tecnología", Emoji: "🤖"},
		{Name: "Fotografía", Category: "Arte", Emoji: "📷"},
		{Name: "Pintura", Category: "Arte", Emoji: "🎨"},
		{Name: "Lectura", Category: "Cultura", Emoji: "📚"},
		{Name: "Viajes", Category: "Estilo de vida", Emoji: "✈️"},
		{Name: "Cocina", Category: "Estilo de vida", Emoji: "🍳"},
	}
	for _, it := range defaults {
		db.Create(&it)
	}
}
