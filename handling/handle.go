package handling

import (
	"encoding/json"
	"net/http"

	"cblls_server/lib"

	"github.com/MonkyMars/gecho"
)

func HandleError(err error, msg string, logger *gecho.Logger, w http.ResponseWriter) error {
	logger.Error("An error occurred", gecho.Field("error", err), gecho.Field("msg", msg), gecho.WithCallerSkip(3))

	return gecho.InternalServerError(w).Send()
}

// RespondStoreError maps a store mutation error onto the HTTP surface.
// A full storage quota is the interesting case: it gets 507 and an
// actionable message so the admin panel can tell the operator what to
// remove.
func RespondStoreError(err error, logger *gecho.Logger, w http.ResponseWriter) error {
	switch {
	case lib.IsStorageFull(err):
		logger.Warn("Mutation rejected, storage quota reached", gecho.Field("error", err))
		return respondInsufficientStorage(w, lib.GetUserMessage(err))
	case lib.IsNotFound(err):
		return gecho.NotFound(w, gecho.WithMessage(lib.GetUserMessage(err))).Send()
	default:
		logger.Error("Store mutation failed", gecho.Field("error", err), gecho.WithCallerSkip(2))
		return gecho.InternalServerError(w, gecho.WithMessage(lib.GetUserMessage(err))).Send()
	}
}

// respondInsufficientStorage writes a 507 by hand; the response helpers
// only cover the common status codes.
func respondInsufficientStorage(w http.ResponseWriter, message string) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInsufficientStorage)
	return json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": message,
	})
}
