package main

// Manual smoke-test client: connects to a running observer, subscribes
// to the vessels and ports channels, and prints everything it receives.

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:8000", "observer host:port")
	duration := flag.Duration("duration", 30*time.Second, "how long to listen before exiting")
	flag.Parse()

	url := fmt.Sprintf("ws://%s/ws/live", *addr)
	fmt.Printf("Connecting to %s...\n", url)

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		fmt.Printf("Dial failed: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close()

	subscribe := map[string]interface{}{
		"action":   "subscribe",
		"channels": []string{"vessels", "ports"},
	}
	if err := conn.WriteJSON(subscribe); err != nil {
		fmt.Printf("Subscribe failed: %v\n", err)
		os.Exit(1)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, payload, err := conn.ReadMessage()
			if err != nil {
				fmt.Printf("Read error: %v\n", err)
				return
			}

			var pretty map[string]interface{}
			if err := json.Unmarshal(payload, &pretty); err != nil {
				fmt.Printf("<< %s\n", payload)
				continue
			}

			// Vessel snapshots are big; summarize them
			if pretty["type"] == "vessel_positions" {
				fmt.Printf("<< vessel_positions: count=%v mode=%v\n", pretty["count"], pretty["mode"])
				continue
			}
			fmt.Printf("<< %s\n", payload)
		}
	}()

	select {
	case <-quit:
	case <-done:
	case <-time.After(*duration):
	}

	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	fmt.Println("Done.")
}
