package products

import (
	"encoding/json"
	"fmt"
	"net/http"

	"cblls_server/structs"

	"github.com/MonkyMars/gecho"
)

// StreamProducts handles GET /events/products as a server-sent event
// stream. The client receives the current catalog immediately and a new
// event after every successful mutation, mirroring an in-process
// subscription. One subscription per connection.
func (p *ProductRoutesManager) StreamProducts(w http.ResponseWriter, r *http.Request) {
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

	// notifications arrive synchronously from mutating goroutines, so
	// they are decoupled from the write loop through a buffered channel;
	// a slow client drops intermediate snapshots instead of blocking
	// the mutation
	updates := make(chan []structs.Product, 8)
	unsubscribe := p.store.SubscribeToProducts(func(products []structs.Product) {
		select {
		case updates <- products:
		default:
		}
	})
	defer unsubscribe()

	for {
		select {
		case <-r.Context().Done():
			return
		case products := <-updates:
			data, err := json.Marshal(products)
			if err != nil {
				p.logger.Error("Failed to encode product event", gecho.Field("error", err))
				return
			}
			fmt.Fprintf(w, "event: products\ndata: %s\n\n", data)
			flusher.Flush()
		}
	}
}
