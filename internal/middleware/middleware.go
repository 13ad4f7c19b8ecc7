package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

// RequestID tags every request with a uuid, echoed back in X-Request-Id.
func RequestID() echo.MiddlewareFunc {
	return echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	})
}

func Compress() echo.MiddlewareFunc {
	return echomiddleware.Gzip()
}

func Decompress() echo.MiddlewareFunc {
	return echomiddleware.Decompress()
}

func BodyLimit(limit string) echo.MiddlewareFunc {
	return echomiddleware.BodyLimit(limit)
}
