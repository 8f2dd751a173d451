package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/research-admin-gateway/internal/models"
	"github.com/noah-isme/research-admin-gateway/internal/query"
)

func newTestQueries() *query.Client {
	return query.New(query.Config{StaleTime: time.Minute}, zap.NewNop())
}

func scoped(user string) context.Context {
	return query.WithScope(context.Background(), user)
}

// callLog counts upstream calls by method name.
type callLog struct {
	mu    sync.Mutex
	calls map[string]int
}

func (l *callLog) hit(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.calls == nil {
		l.calls = map[string]int{}
	}
	l.calls[name]++
}

func (l *callLog) count(name string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls[name]
}

func status(name string, current bool) models.StatusRecord {
	return models.StatusRecord{Definition: models.StatusDefinition{Name: name}, IsCurrent: current}
}

func grade(v float64) *float64 { return &v }
