/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"

	"github.com/Seednode/cluebox/internal/session"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// feedManager fans session snapshots out to websocket subscribers, keyed by
// session id. Subscribers are passive: the feed carries state, never
// commands, so all mutations still flow through the API handlers.
type feedManager struct {
	mu   sync.Mutex
	subs map[string]map[*websocket.Conn]bool
}

func newFeedManager() *feedManager {
	return &feedManager{
		subs: make(map[string]map[*websocket.Conn]bool),
	}
}

func (fm *feedManager) subscribe(id string, conn *websocket.Conn) {
	fm.mu.Lock()
	defer fm.mu.Unlock()

	if fm.subs[id] == nil {
		fm.subs[id] = make(map[*websocket.Conn]bool)
	}
	fm.subs[id][conn] = true
}

func (fm *feedManager) unsubscribe(id string, conn *websocket.Conn) {
	fm.mu.Lock()
	defer fm.mu.Unlock()

	if conns, ok := fm.subs[id]; ok {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(fm.subs, id)
		}
	}
}

// broadcast sends the snapshot to every subscriber of the session. A
// subscriber whose write fails is dropped.
func (fm *feedManager) broadcast(id string, s session.Session) {
	fm.mu.Lock()
	defer fm.mu.Unlock()

	for conn := range fm.subs[id] {
		if err := conn.WriteJSON(s); err != nil {
			delete(fm.subs[id], conn)
			_ = conn.Close()
		}
	}
}

// serveFeed upgrades to a websocket and streams session snapshots: the
// current state immediately on connect, then one message per mutation.
func serveFeed(cfg *Config, api *apiServer) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		gameID := ps.ByName("gameid")
		if gameID == "" {
			http.Error(w, "missing game id", http.StatusBadRequest)
			return
		}

		sess, err := api.persist.Load(r.Context(), gameID)
		if err != nil {
			writeError(w, err)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logf(cfg, "ERROR: websocket upgrade: %v", err)
			return
		}

		if err := conn.WriteJSON(sess); err != nil {
			_ = conn.Close()
			return
		}

		api.feeds.subscribe(gameID, conn)
		logf(cfg, "GAMES: Feed subscriber joined %s from %s", gameID, realIP(r))

		// Reads are discarded; the loop exists to notice disconnects.
		go func() {
			defer func() {
				api.feeds.unsubscribe(gameID, conn)
				_ = conn.Close()
			}()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
	}
}

// qrHandler generates a PNG QR code for the current session URL.
func qrHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	gameID := ps.ByName("gameid")
	if gameID == "" {
		http.Error(w, "missing game id", http.StatusBadRequest)
		return
	}

	// Derive scheme (respecting TLS and X-Forwarded-Proto if present).
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	// We are at /play/:gameid/qr; strip trailing "/qr" to get the game URL.
	path := strings.TrimSuffix(r.URL.Path, "/qr")

	url := scheme + "://" + r.Host + path

	const qrSize = 320 // mobile-friendly size
	png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
	if err != nil {
		http.Error(w, "qr generation failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}
