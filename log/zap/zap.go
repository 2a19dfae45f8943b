// Package zap adapts a *zap.Logger to the bos.Logger interface.
package zap

import (
	"github.com/unkn0wn-root/bos"
	"go.uber.org/zap"
)

type Logger struct{ L *zap.Logger }

var _ bos.Logger = Logger{}

func (z Logger) Debug(msg string, f bos.Fields) { z.L.Debug(msg, fields(f)...) }
func (z Logger) Info(msg string, f bos.Fields)  { z.L.Info(msg, fields(f)...) }
func (z Logger) Warn(msg string, f bos.Fields)  { z.L.Warn(msg, fields(f)...) }
func (z Logger) Error(msg string, f bos.Fields) { z.L.Error(msg, fields(f)...) }

func fields(f bos.Fields) []zap.Field {
	if len(f) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(f))
	for k, v := range f {
		out = append(out, zap.Any(k, v))
	}
	return out
}
