package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/psemenov/passvault/internal/common"
)

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps the domain error taxonomy onto HTTP statuses. Unknown
// errors become a generic 500 so infrastructure details never reach clients.
func (h *Handlers) writeError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrorVaultNotFound),
		errors.Is(err, common.ErrorUserNotFound),
		errors.Is(err, common.ErrorOwnerNotFound),
		errors.Is(err, common.ErrorTargetUserNotFound),
		errors.Is(err, common.ErrorActingUserNotFound),
		errors.Is(err, common.ErrorCategoryNotFound),
		errors.Is(err, common.ErrorNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})

	case errors.Is(err, common.ErrorInsufficientPermissions):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: err.Error()})

	case errors.Is(err, common.ErrorAlreadyShared),
		errors.Is(err, common.ErrorAlreadyExists):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})

	case errors.Is(err, common.ErrorCannotShareWithSelf),
		errors.Is(err, common.ErrorCannotShareWithOwner),
		errors.Is(err, common.ErrorInvalidPermissionLevel),
		errors.Is(err, common.ErrorNoCharactersSelected),
		errors.Is(err, common.ErrorInvalidPasswordLength):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})

	case errors.Is(err, common.ErrorUnauthorized):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})

	default:
		if h.Logger != nil {
			h.Logger.Error(ctx, "request failed", "error", err.Error())
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
