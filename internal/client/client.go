package client

import "github.com/karaage0703/pm-bot/internal/models"

// ProjectSource lists the items of one project board on the tracker side.
type ProjectSource interface {
	GetProjectItems(owner string, projectNumber int) ([]models.ProjectItem, error)
}

// Notifier delivers one alert message to a destination channel.
type Notifier interface {
	Name() string
	Notify(message string) error
}
