package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/marketcore/marketplace-api/internal/api/metrics"
	"github.com/marketcore/marketplace-api/internal/core/ports"
)

// streamSSE pipes document snapshots to the client as server-sent events
// until the client disconnects or the upstream subscription closes. The
// subscription is always cancelled on the way out.
func streamSSE[T any](c echo.Context, resource string, ch <-chan *T, sub ports.Subscription) error {
	defer sub.Cancel()

	metrics.ActiveSubscriptions.WithLabelValues(resource).Inc()
	defer metrics.ActiveSubscriptions.WithLabelValues(resource).Dec()

	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set(echo.HeaderCacheControl, "no-cache")
	w.Header().Set(echo.HeaderConnection, "keep-alive")
	w.WriteHeader(http.StatusOK)
	w.Flush()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case snapshot, ok := <-ch:
			if !ok {
				return nil
			}
			data, err := json.Marshal(snapshot)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
				return nil
			}
			w.Flush()
		}
	}
}
