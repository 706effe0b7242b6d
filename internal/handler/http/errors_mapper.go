package http

import (
	"errors"
	"net/http"

	"github.com/MikVR7/Homie-sub000/internal/adapter"
	"github.com/MikVR7/Homie-sub000/internal/service"
	"github.com/MikVR7/Homie-sub000/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:        http.StatusBadRequest,
	service.ErrTokenIsExpiredOrInvalid:    http.StatusUnauthorized,
	service.ErrValidationEmptyClientID:    http.StatusBadRequest,
	service.ErrValidationEmptyIdentifier:  http.StatusBadRequest,
	service.ErrValidationInvalidDriveType: http.StatusBadRequest,
	service.ErrValidationEmptyPath:        http.StatusBadRequest,
	service.ErrValidationPathNotAbsolute:  http.StatusBadRequest,
	service.ErrValidationInvalidColor:     http.StatusBadRequest,
	service.ErrValidationNoFilesProvided:  http.StatusBadRequest,
	service.ErrValidationNoPlansProvided:  http.StatusBadRequest,
	service.ErrValidationInvalidStep:      http.StatusBadRequest,
	service.ErrNoUserInContext:            http.StatusUnauthorized,

	adapter.ErrBadRequest:          http.StatusBadRequest,
	adapter.ErrUnauthorized:        http.StatusBadGateway,
	adapter.ErrUnavailable:         http.StatusBadGateway,
	adapter.ErrInternalServerError: http.StatusBadGateway,

	store.ErrDriveNotFound:       http.StatusNotFound,
	store.ErrDestinationNotFound: http.StatusNotFound,
	store.ErrDriveNotSaved:       http.StatusInternalServerError,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
