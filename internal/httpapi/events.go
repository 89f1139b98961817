package httpapi

import (
	"io"

	"github.com/gin-gonic/gin"
)

// events streams bus events to the client as server-sent events. The
// subscription covers every namespace; clients filter on the event name.
func (s *Server) events(c *gin.Context) {
	ch, cancel := s.bus.Subscribe("", 16)
	defer cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	c.Stream(func(io.Writer) bool {
		select {
		case evt, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent(evt.Kind, evt.Payload)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
