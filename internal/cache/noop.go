package cache

import (
	"context"
	"time"
)

// Noop кеш-заглушка, когда адрес Redis не задан: всегда промах.
type Noop struct{}

func (Noop) Get(context.Context, string, any) (bool, error)        { return false, nil }
func (Noop) Set(context.Context, string, any, time.Duration) error { return nil }
func (Noop) Close() error                                          { return nil }
