package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/JameNori/jamenori-dev-journal-sub000/internal/apperror"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

var statusByKind = map[apperror.Kind]int{
	apperror.KindValidation: http.StatusBadRequest,
	apperror.KindConflict:   http.StatusBadRequest,
	apperror.KindNotFound:   http.StatusNotFound,
	apperror.KindAuth:       http.StatusUnauthorized,
	apperror.KindForbidden:  http.StatusForbidden,
	apperror.KindDataAccess: http.StatusInternalServerError,
}

// ToHTTPError maps an application error to an echo.HTTPError. The original error is
// kept as the internal error for logging; store details never reach the client.
func ToHTTPError(err error) *echo.HTTPError {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}

	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		return echo.NewHTTPError(http.StatusInternalServerError, ErrorResponse{Message: "Internal server error"}).SetInternal(err)
	}

	code, ok := statusByKind[appErr.Kind]
	if !ok {
		code = http.StatusInternalServerError
	}
	body := ErrorResponse{Message: appErr.Message, Field: appErr.Field}
	if code >= http.StatusInternalServerError {
		body = ErrorResponse{Message: "Internal server error"}
	}
	return echo.NewHTTPError(code, body).SetInternal(err)
}

// NewHTTPErrorHandler renders errors as JSON and logs every 5xx with its internal cause.
func NewHTTPErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		he := ToHTTPError(err)
		if he.Code >= http.StatusInternalServerError {
			cause := err
			if he.Internal != nil {
				cause = he.Internal
			}
			logger.Error("server error",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Int("status", he.Code),
				zap.Error(cause))
		}

		var body any = he.Message
		if msg, ok := he.Message.(string); ok {
			body = ErrorResponse{Message: msg}
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(he.Code)
		} else {
			err = c.JSON(he.Code, body)
		}
		if err != nil {
			logger.Error("failed to write error response", zap.Error(err))
		}
	}
}

func parseID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, ToHTTPError(apperror.Validation(name, "invalid "+name))
	}
	return uint(id), nil
}

// normalizer is implemented by requests that clean their fields before validation.
type normalizer interface {
	Normalize()
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, ErrorResponse{Message: "Invalid request payload"}).SetInternal(err)
	}
	if n, ok := req.(normalizer); ok {
		n.Normalize()
	}
	if err := c.Validate(req); err != nil {
		return ToHTTPError(err)
	}
	return nil
}
