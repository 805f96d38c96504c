package api

import (
	"chat-backend/internal/database"
	"chat-backend/pkg/api"
)

func toTabRecords(tabs []database.ChatTab) []api.TabRecord {
	records := make([]api.TabRecord, len(tabs))
	for i, tab := range tabs {
		records[i] = api.TabRecord{
			ID:    tab.ID,
			Name:  tab.Name,
			User:  tab.User,
			Model: tab.Model,
		}
	}
	return records
}

func toHistoryRecords(history []database.ChatHistory) []api.HistoryRecord {
	records := make([]api.HistoryRecord, len(history))
	for i, entry := range history {
		records[i] = api.HistoryRecord{
			ID:       entry.ID,
			Prompt:   entry.Prompt,
			Response: entry.Response,
			Tab:      entry.Tab,
		}
	}
	return records
}
