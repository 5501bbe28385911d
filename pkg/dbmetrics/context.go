package dbmetrics

import "context"

type contextKey struct{}

var executorKey = contextKey{}

// WithExecutor кладет активную транзакцию в контекст
// Используется transaction manager'ом, чтобы репозитории выполняли запросы
// внутри той же транзакции без изменения сигнатур методов
func WithExecutor(ctx context.Context, executor DBExecutor) context.Context {
	return context.WithValue(ctx, executorKey, executor)
}

// GetExecutor возвращает executor из контекста, если там есть активная транзакция,
// иначе возвращает fallback (обычно основной пул соединений)
func GetExecutor(ctx context.Context, fallback DBExecutor) DBExecutor {
	if executor, ok := ctx.Value(executorKey).(DBExecutor); ok {
		return executor
	}
	return fallback
}

// IsInTransaction возвращает true, если в контексте есть активная транзакция
func IsInTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(executorKey).(DBExecutor)
	return ok
}
