package versions

import "gorm.io/gorm"

// Snapshot of the schema at migration 0. Future migrations must declare
// their own copies of these types rather than referencing the live schema
// package.

type ChatTab struct {
	ID    uint   `gorm:"primaryKey"`
	Name  string `gorm:"not null"`
	User  string `gorm:"not null;index"`
	Model string `gorm:"not null"`
}

func (ChatTab) TableName() string { return "chat_tabs" }

type ChatHistory struct {
	ID       uint   `gorm:"primaryKey"`
	Prompt   string `gorm:"not null"`
	Response string `gorm:"not null"`
	Tab      uint   `gorm:"index"`
}

func (ChatHistory) TableName() string { return "chat_history" }

func Migration(txn *gorm.DB) error {
	return txn.AutoMigrate(&ChatTab{}, &ChatHistory{})
}
