package database

type ChatTab struct {
	ID    uint   `gorm:"primaryKey"`
	Name  string `gorm:"not null"`
	User  string `gorm:"not null;index"`
	Model string `gorm:"not null"`
}

func (ChatTab) TableName() string { return "chat_tabs" }

// Tab is a logical reference to ChatTab.ID. It is deliberately not an
// enforced foreign key: deleting a tab must never fail against surviving
// history rows, and orphaned history stays clearable via DeleteHistory.
type ChatHistory struct {
	ID       uint   `gorm:"primaryKey"`
	Prompt   string `gorm:"not null"`
	Response string `gorm:"not null"`
	Tab      uint   `gorm:"index"`
}

func (ChatHistory) TableName() string { return "chat_history" }
