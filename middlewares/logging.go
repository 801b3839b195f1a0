package middlewares

import (
	"time"

	"github.com/strutkit/strut/internal"
)

// Logging returns middleware that logs one line per request after dispatch
// completes: method, path, resolved module and controller, status, and
// duration. Errors are logged at warn level and re-returned untouched so the
// application's error path still runs.
func Logging() internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			start := time.Now()

			err := next(c)

			attrs := []any{
				"method", c.Method(),
				"path", c.Request().URL.Path,
				"duration", time.Since(start).String(),
			}
			if m := c.Module(); m != "" {
				attrs = append(attrs, "module", m)
			}
			if ctrl := c.ControllerName(); ctrl != "" {
				attrs = append(attrs, "controller", ctrl)
			}

			if err != nil {
				attrs = append(attrs, "error", err.Error())
				c.LogWarn("request failed", attrs...)
				return err
			}

			c.LogInfo("request completed", attrs...)
			return nil
		}
	}
}
