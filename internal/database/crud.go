package database

import (
	"context"
	"log/slog"

	"gorm.io/gorm"
)

// CreateTab inserts a tab and returns it with its assigned id. Duplicate
// (name, user) pairs are permitted.
func CreateTab(ctx context.Context, db *gorm.DB, name, user, model string) (ChatTab, error) {
	tab := ChatTab{Name: name, User: user, Model: model}
	err := db.WithContext(ctx).Create(&tab).Error
	return tab, err
}

// ListTabs returns every tab whose user field matches exactly.
func ListTabs(ctx context.Context, db *gorm.DB, user string) ([]ChatTab, error) {
	var tabs []ChatTab
	// Map condition so gorm quotes the column: bare `user` is a reserved word
	// in postgres and would resolve to current_user.
	err := db.WithContext(ctx).Where(map[string]any{"user": user}).Find(&tabs).Error
	return tabs, err
}

// DeleteTab removes the tab row matching id. Matching zero rows is still a
// success; only a store-level error yields false, after rolling back.
func DeleteTab(ctx context.Context, db *gorm.DB, id uint) bool {
	err := db.WithContext(ctx).Transaction(func(txn *gorm.DB) error {
		return txn.Delete(&ChatTab{}, "id = ?", id).Error
	})
	if err != nil {
		slog.Error("error deleting chat tab", "tab", id, "error", err)
		return false
	}
	return true
}

// SaveHistory inserts one prompt/response pair under a tab. Store errors
// propagate to the caller.
func SaveHistory(ctx context.Context, db *gorm.DB, tab uint, prompt, response string) (ChatHistory, error) {
	entry := ChatHistory{Prompt: prompt, Response: response, Tab: tab}
	err := db.WithContext(ctx).Create(&entry).Error
	return entry, err
}

// ListHistory returns every history entry for a tab.
func ListHistory(ctx context.Context, db *gorm.DB, tab uint) ([]ChatHistory, error) {
	var history []ChatHistory
	err := db.WithContext(ctx).Where("tab = ?", tab).Find(&history).Error
	return history, err
}

// DeleteHistory bulk-deletes all entries for a tab, with the same no-op
// success semantics as DeleteTab.
func DeleteHistory(ctx context.Context, db *gorm.DB, tab uint) bool {
	err := db.WithContext(ctx).Transaction(func(txn *gorm.DB) error {
		return txn.Delete(&ChatHistory{}, "tab = ?", tab).Error
	})
	if err != nil {
		slog.Error("error deleting chat history", "tab", tab, "error", err)
		return false
	}
	return true
}
