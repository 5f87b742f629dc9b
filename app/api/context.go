package api

import (
	"context"

	"github.com/sirupsen/logrus"
)

type ctxKeyLog struct{}
type ctxKeySessionID struct{}

func WithLogger(ctx context.Context, log logrus.FieldLogger) context.Context {
	return context.WithValue(ctx, ctxKeyLog{}, log)
}

// Logger returns the request logger, or the standard logger outside a request.
func Logger(ctx context.Context) logrus.FieldLogger {
	if log, ok := ctx.Value(ctxKeyLog{}).(logrus.FieldLogger); ok {
		return log
	}
	return logrus.StandardLogger()
}

func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeySessionID{}, id)
}

func SessionID(ctx context.Context) string {
	v, _ := ctx.Value(ctxKeySessionID{}).(string)
	return v
}
