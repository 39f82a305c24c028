package middleware

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type LoggerConfig struct {
	Skipper          echoMiddleware.Skipper
	Level            zerolog.Level
	LogRequestBody   bool
	LogRequestHeader bool
	LogResponseBody  bool
}

var DefaultLoggerConfig = LoggerConfig{
	Skipper: echoMiddleware.DefaultSkipper,
	Level:   zerolog.DebugLevel,
}

// Logger logs requests with the default config and attaches a request scoped
// zerolog logger to the request context.
func Logger() echo.MiddlewareFunc {
	return LoggerWithConfig(DefaultLoggerConfig)
}

// LoggerWithConfig logs requests with the provided config and attaches a
// request scoped zerolog logger to the request context. Handlers retrieve it
// via util.LogFromContext or util.LogFromEchoContext.
func LoggerWithConfig(config LoggerConfig) echo.MiddlewareFunc {
	if config.Skipper == nil {
		config.Skipper = DefaultLoggerConfig.Skipper
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if config.Skipper(c) {
				return next(c)
			}

			req := c.Request()
			res := c.Response()

			id := req.Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = res.Header().Get(echo.HeaderXRequestID)
			}

			l := log.With().
				Str("id", id).
				Str("method", req.Method).
				Str("uri", req.RequestURI).
				Str("remote_ip", c.RealIP()).
				Logger()

			le := l.WithLevel(config.Level).
				Str("host", req.Host).
				Str("user_agent", req.UserAgent())

			if config.LogRequestHeader {
				he := zerolog.Dict()
				for k := range req.Header {
					he = he.Str(k, req.Header.Get(k))
				}

				le = le.Dict("req_header", he)
			}

			if config.LogRequestBody && req.Body != nil {
				b, err := io.ReadAll(req.Body)
				if err != nil {
					return err
				}

				req.Body = io.NopCloser(bytes.NewBuffer(b))
				le = le.Bytes("req_body", b)
			}

			le.Msg("Request received")

			var resBody bytes.Buffer
			if config.LogResponseBody {
				mw := io.MultiWriter(res.Writer, &resBody)
				res.Writer = &bodyDumpResponseWriter{Writer: mw, ResponseWriter: res.Writer}
			}

			c.SetRequest(req.WithContext(l.WithContext(req.Context())))

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			le = l.WithLevel(config.Level).
				Int("status", res.Status).
				Int64("bytes_out", res.Size).
				Dur("duration_ms", time.Since(start))

			if config.LogResponseBody {
				le = le.Bytes("res_body", resBody.Bytes())
			}

			le.Msg("Request completed")

			return err
		}
	}
}

type bodyDumpResponseWriter struct {
	io.Writer
	http.ResponseWriter
}

func (w *bodyDumpResponseWriter) Write(b []byte) (int, error) {
	return w.Writer.Write(b)
}
