package routes

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Chaukil/scanchi/jobs"
	"github.com/Chaukil/scanchi/logger"
)

// ScanSSE streams async scan results to the client as Server-Sent Events.
func ScanSSE(worker *jobs.ScanWorker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "SSE not supported", http.StatusInternalServerError)
			return
		}

		updateCh := make(chan jobs.ScanUpdate, 10)
		worker.Subscribe(updateCh)

		logger.Info("SSE client connected")

		fmt.Fprintf(w, "event: connected\ndata: {\"status\": \"connected\"}\n\n")
		flusher.Flush()

		ctx := r.Context()
		for {
			select {
			case <-ctx.Done():
				logger.Info("SSE client disconnected")
				worker.Unsubscribe(updateCh)
				return
			case update := <-updateCh:
				data, err := json.Marshal(update)
				if err != nil {
					logger.Error("failed to marshal scan update", "error", err)
					continue
				}
				fmt.Fprintf(w, "event: scan_update\ndata: %s\n\n", data)
				flusher.Flush()
			}
		}
	}
}
