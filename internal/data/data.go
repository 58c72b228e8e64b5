package data

import (
	"github.com/voidmesh/tgrelay/internal/biz/repo"
	"github.com/voidmesh/tgrelay/internal/infra/telegram"
)

// Repositories contains all repositories.
type Repositories struct {
	Chat repo.ChatRepo
}

// NewRepositories creates all repositories.
func NewRepositories(tgClient *telegram.Client) *Repositories {
	return &Repositories{
		Chat: NewTelegramRepo(tgClient),
	}
}
