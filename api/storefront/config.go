package storefront

import (
	"encoding/json"
	"fmt"
	"net/http"

	"cblls_server/structs"

	"github.com/MonkyMars/gecho"
)

// FetchConfig handles GET /config. The result is always complete: empty
// sub-collections were already replaced by the defaults in the store.
func (srm *StorefrontRoutesManager) FetchConfig(w http.ResponseWriter, r *http.Request) {
	gecho.Success(w,
		gecho.WithData(map[string]any{
			"config": srm.store.Config(),
		}),
		gecho.Send(),
	)
}

// StreamConfig handles GET /events/config as a server-sent event stream
// of configuration snapshots.
func (srm *StorefrontRoutesManager) StreamConfig(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		gecho.InternalServerError(w,
			gecho.WithMessage("Streaming unsupported"),
			gecho.Send(),
		)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	updates := make(chan structs.AppConfig, 8)
	unsubscribe := srm.store.SubscribeToConfig(func(cfg structs.AppConfig) {
		select {
		case updates <- cfg:
		default:
		}
	})
	defer unsubscribe()

	for {
		select {
		case <-r.Context().Done():
			return
		case cfg := <-updates:
			data, err := json.Marshal(cfg)
			if err != nil {
				srm.logger.Error("Failed to encode config event", gecho.Field("error", err))
				return
			}
			fmt.Fprintf(w, "event: config\ndata: %s\n\n", data)
			flusher.Flush()
		}
	}
}
