package database

import "gorm.io/gorm"

// Database — репозиторий над gorm. Методы по сущностям разложены
// по файлам пакета.
type Database struct {
	db *gorm.DB
}

func NewDatabase(db *gorm.DB) *Database {
	return &Database{db: db}
}
