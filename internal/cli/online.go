package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

func newOnlineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "online",
		Short: "Online presence commands",
	}

	cmd.AddCommand(newOnlineListCmd())
	cmd.AddCommand(newOnlineWatchCmd())

	return cmd
}

func newOnlineListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List players currently online",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Session

			if err := client.Get("/api/v1/session/online", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newOnlineWatchCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stream presence events over SSE",
		Long: `Connect to the presence SSE endpoint and stream events in real-time.

Events include:
  - connected: Stream established
  - presence-update: A player logged in, logged out or moved rooms

Press Ctrl+C to disconnect.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return streamPresence(jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output events as JSON lines")

	return cmd
}

// SSEEvent represents a parsed SSE event
type SSEEvent struct {
	Time  time.Time `json:"time"`
	Event string    `json:"event"`
	Data  string    `json:"data"`
}

func streamPresence(jsonOutput bool) error {
	// Set up cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if !jsonOutput {
		fmt.Println("Watching presence")
	}

	// The server drops idle streams at its write deadline, so reconnect
	// whenever a stream ends cleanly, the way a browser EventSource does.
	for {
		err := streamOnce(ctx, jsonOutput)
		if ctx.Err() != nil {
			if !jsonOutput {
				fmt.Println("\nDisconnected")
			}
			return nil
		}
		if err != nil {
			return err
		}

		select {
		case <-time.After(2 * time.Second):
		case <-ctx.Done():
			if !jsonOutput {
				fmt.Println("\nDisconnected")
			}
			return nil
		}
	}
}

// streamOnce holds a single SSE connection open and prints events until
// the stream ends. A nil return means the server closed the stream.
func streamOnce(ctx context.Context, jsonOutput bool) error {
	// The SSE endpoint lives on the web router, not the API router
	url := strings.TrimSuffix(cfg.ServerURL, "/") + "/online/events"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	// Add session cookie for web auth
	if cfg.Token != "" {
		req.AddCookie(&http.Cookie{
			Name:  "session",
			Value: cfg.Token,
		})
	}

	httpClient := &http.Client{
		Timeout: 0, // No timeout for SSE
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		return fmt.Errorf("expected an event stream, got %q", ct)
	}

	// Parse SSE stream
	scanner := bufio.NewScanner(resp.Body)
	var currentEvent string
	var dataLines []string

	for scanner.Scan() {
		line := scanner.Text()

		if strings.HasPrefix(line, "event: ") {
			currentEvent = strings.TrimPrefix(line, "event: ")
		} else if strings.HasPrefix(line, "data: ") {
			dataLines = append(dataLines, strings.TrimPrefix(line, "data: "))
		} else if line == "" {
			// End of event
			if currentEvent != "" {
				data := strings.Join(dataLines, "\n")
				printEvent(currentEvent, data, jsonOutput)
			}
			currentEvent = ""
			dataLines = nil
		}
	}

	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("stream error: %w", err)
	}
	return nil
}

func printEvent(event, data string, jsonOutput bool) {
	now := time.Now()

	if jsonOutput {
		evt := SSEEvent{
			Time:  now,
			Event: event,
			Data:  data,
		}
		jsonData, _ := json.Marshal(evt)
		fmt.Println(string(jsonData))
	} else {
		timestamp := now.Format("2006-01-02 15:04:05")
		// Truncate data if it's too long for display
		displayData := data
		if len(displayData) > 100 {
			displayData = displayData[:100] + "..."
		}
		// Remove newlines for cleaner display
		displayData = strings.ReplaceAll(displayData, "\n", " ")
		fmt.Printf("[%s] %s: %s\n", timestamp, event, displayData)
	}
}
