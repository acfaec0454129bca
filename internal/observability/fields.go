package observability

import (
	"time"

	"go.uber.org/zap"
)

// Field aliases keep call sites independent of the logging backend.

func String(key, value string) zap.Field { return zap.String(key, value) }

func Int(key string, value int) zap.Field { return zap.Int(key, value) }

func Int64(key string, value int64) zap.Field { return zap.Int64(key, value) }

func Duration(key string, value time.Duration) zap.Field { return zap.Duration(key, value) }

func Strings(key string, values []string) zap.Field { return zap.Strings(key, values) }

func Error(err error) zap.Field { return zap.Error(err) }
