package mirror

import (
	"context"
	"fmt"
	"io"

	"github.com/gorilla/websocket"
)

// Cursor home plus erase display.
const clearScreen = "\x1b[H\x1b[2J"

// Watch prints every frame from the mirror at url to out until the mirror
// closes or ctx is done.
func Watch(ctx context.Context, url string, out io.Writer) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", url, err)
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
			_ = conn.Close()
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("failed to read frame: %w", err)
		}
		if _, err := io.WriteString(out, clearScreen+string(data)); err != nil {
			return err
		}
	}
}
