package transport

import (
	"errors"
	"net/http"

	"product-catalog/internal/apperror"
	"product-catalog/internal/middleware"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// StatusFor maps an error kind to the HTTP status returned to the client
func StatusFor(kind apperror.Kind) int {
	switch kind {
	case apperror.KindInputValidation, apperror.KindInvalidInput, apperror.KindDomain:
		return http.StatusBadRequest
	case apperror.KindNotFound:
		return http.StatusNotFound
	case apperror.KindConflict:
		return http.StatusConflict
	case apperror.KindInfrastructure, apperror.KindUnknown:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// respondWithAppError writes err in the JSON error envelope. Client errors
// carry their message verbatim; server errors are logged and hidden.
func respondWithAppError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	kind := apperror.KindOf(err)
	status := StatusFor(kind)

	if status >= http.StatusInternalServerError {
		logger.Error("Request failed",
			zap.String("request_id", chimiddleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Stringer("kind", kind),
			zap.Error(err),
		)
		middleware.RespondWithError(w, status, middleware.InternalServerErrorMessage)
		return
	}

	logger.Debug("Request rejected",
		zap.String("request_id", chimiddleware.GetReqID(r.Context())),
		zap.Stringer("kind", kind),
		zap.Int("status", status),
		zap.Error(err),
	)

	var appErr *apperror.Error
	if errors.As(err, &appErr) && appErr.Field != "" {
		middleware.RespondWithValidationErrors(w, appErr.Message, []middleware.ValidationError{
			{Field: appErr.Field, Message: appErr.Message},
		})
		return
	}

	middleware.RespondWithError(w, status, apperror.MessageOf(err))
}
