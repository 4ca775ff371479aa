// Command oauth-init performs the one-time Google OAuth consent flow and
// prints the token JSON that GOOGLE_OAUTH_TOKEN_JSON expects. Run it
// locally with a browser available; the sheets export in the server
// reuses the refresh token from then on.
package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/sheets/v4"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	creds, err := clientCredentials()
	if err != nil {
		return err
	}
	cfg, err := google.ConfigFromJSON(creds, sheets.SpreadsheetsScope)
	if err != nil {
		return fmt.Errorf("oauth config: %w", err)
	}

	port := os.Getenv("OAUTH_REDIRECT_PORT")
	if port == "" {
		port = "8085"
	}
	cfg.RedirectURL = "http://localhost:" + port + "/callback"

	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Errorf("generate state: %w", err)
	}
	state := hex.EncodeToString(buf)

	codeCh := make(chan string, 1)
	mux := http.NewServeMux()
	srv := &http.Server{Addr: ":" + port, Handler: mux}
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		if errStr := r.URL.Query().Get("error"); errStr != "" {
			http.Error(w, "OAuth error: "+errStr, http.StatusBadRequest)
			return
		}
		if r.URL.Query().Get("state") != state {
			http.Error(w, "state mismatch", http.StatusBadRequest)
			return
		}
		fmt.Fprintln(w, "Authorized. You may close this window.")
		codeCh <- r.URL.Query().Get("code")
		go func() { time.Sleep(500 * time.Millisecond); _ = srv.Close() }()
	})
	go func() { _ = srv.ListenAndServe() }()

	fmt.Printf("Open this URL to authorize:\n%s\n", cfg.AuthCodeURL(state, oauth2.AccessTypeOffline))

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	select {
	case code := <-codeCh:
		tok, err := cfg.Exchange(context.Background(), code)
		if err != nil {
			return fmt.Errorf("token exchange: %w", err)
		}
		return writeToken(tok)
	case <-time.After(5 * time.Minute):
		return fmt.Errorf("authorization timed out")
	case <-interrupt:
		return fmt.Errorf("interrupted")
	}
}

func clientCredentials() ([]byte, error) {
	if v := os.Getenv("GOOGLE_OAUTH_CLIENT_JSON"); v != "" {
		return []byte(v), nil
	}
	if file := os.Getenv("GOOGLE_OAUTH_CLIENT_FILE"); file != "" {
		b, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read client file: %w", err)
		}
		return b, nil
	}
	return nil, fmt.Errorf("set GOOGLE_OAUTH_CLIENT_JSON or GOOGLE_OAUTH_CLIENT_FILE")
}

// writeToken saves the token to GOOGLE_OAUTH_TOKEN_FILE, or prints it
// on stdout so it can be pasted into GOOGLE_OAUTH_TOKEN_JSON.
func writeToken(tok *oauth2.Token) error {
	out, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("encode token: %w", err)
	}
	if file := os.Getenv("GOOGLE_OAUTH_TOKEN_FILE"); file != "" {
		if err := os.WriteFile(file, append(out, '\n'), 0600); err != nil {
			return fmt.Errorf("write token: %w", err)
		}
		fmt.Printf("Saved token to %s\n", file)
		return nil
	}
	fmt.Printf("Token JSON (set as GOOGLE_OAUTH_TOKEN_JSON):\n%s\n", out)
	return nil
}
