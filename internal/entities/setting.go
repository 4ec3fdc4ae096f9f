package entities

import "time"

const (
	SettingNotionToken = "notionToken"
	SettingDatabaseID  = "databaseId"
)

type Setting struct {
	Name      string `gorm:"primaryKey"`
	Value     string
	UpdatedAt time.Time
}
