package port

import "context"

// EventListenerPort – входящий адаптер, который слушает события и
// вызывает ядро. Start блокирует до отмены контекста.
type EventListenerPort interface {
	Start(ctx context.Context) error
	Close() error
}
