// Gamenight session hub
//
// One evening-long session shared by everyone who opens the session
// link. A host switches between four mini-games (trivia question,
// memory match, bingo, logo quiz) while players join and leave at
// will; anyone reconnecting mid-round is resynchronized to the exact
// in-progress state.
//
// Features:
// - WebSockets per session ID: /path/:sessionid and /path/:sessionid/ws
// - Players identified by an ephemeral per-connection ID
// - Single run loop per session: events are applied one at a time
// - Private bingo boards pushed per connection, never broadcast
// - Mid-game reconnects resume with board and draw history intact
// - Sessions auto-reaped after configurable idle timeout
// - Random 8-char session IDs via crypto/rand, with collision check
// - In-browser QR button to share the current session, backed by go-qrcode

package main

import (
	"crypto/rand"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
)

type Client struct {
	conn   *websocket.Conn
	send   chan any
	connID string
}

type inboundEvent struct {
	client *Client
	env    inboundEnvelope
}

// Hub owns one session: its websocket clients and its Session state
// machine. All session mutation happens on the run loop, so inbound
// events are handled to completion one at a time.
type Hub struct {
	id      string
	clients map[*Client]bool
	session *Session

	register chan *Client
	unreg    chan *Client
	events   chan inboundEvent

	mu sync.RWMutex

	createdAt  time.Time
	lastActive time.Time
}

func newHub(cfg *Config, sessionID string) *Hub {
	now := time.Now()
	h := &Hub{
		id:         sessionID,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unreg:      make(chan *Client),
		events:     make(chan inboundEvent),
		createdAt:  now,
		lastActive: now,
	}
	h.session = newSession(cfg, sessionID, h)

	return h
}

func (h *Hub) run(cfg *Config) {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.lastActive = time.Now()
			h.clients[c] = true
			h.mu.Unlock()

		case c := <-h.unreg:
			h.mu.Lock()
			h.lastActive = time.Now()

			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			h.session.disconnect(c.connID)

			h.mu.Unlock()

		case ev := <-h.events:
			h.dispatch(cfg, ev)
		}
	}
}

// broadcast sends a message to every connected client. Assumes h.mu is
// already held; all callers run on the hub's own loop.
func (h *Hub) broadcast(msg any) {
	for client := range h.clients {
		select {
		case client.send <- msg:
		default:
			delete(h.clients, client)
			close(client.send)
		}
	}
}

// unicast sends a message to the one client with this connection ID.
// Assumes h.mu is already held.
func (h *Hub) unicast(connID string, msg any) {
	for client := range h.clients {
		if client.connID != connID {
			continue
		}
		select {
		case client.send <- msg:
		default:
			delete(h.clients, client)
			close(client.send)
		}
		return
	}
}

// dispatch decodes one inbound frame into its typed payload and hands
// it to the session. Frames with an unknown type or a payload that
// does not match their type are dropped at this boundary.
func (h *Hub) dispatch(cfg *Config, ev inboundEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.lastActive = time.Now()

	connID := ev.client.connID
	s := h.session

	var out outcome

	switch ev.env.Type {
	case eventLogin:
		var p LoginPayload
		if err := json.Unmarshal(ev.env.Data, &p); err != nil {
			out = ignore("malformed payload")
			break
		}
		out = s.login(connID, p.Username)

	case eventMessage:
		var p ChatPayload
		if err := json.Unmarshal(ev.env.Data, &p); err != nil {
			out = ignore("malformed payload")
			break
		}
		out = s.chat(connID, p.Text)

	case eventGameActive:
		var p GameActivePayload
		if err := json.Unmarshal(ev.env.Data, &p); err != nil {
			out = ignore("malformed payload")
			break
		}
		out = s.setActiveGame(Game(p.Game))

	case eventNewQuestion:
		var p QuestionPayload
		if err := json.Unmarshal(ev.env.Data, &p); err != nil {
			out = ignore("malformed payload")
			break
		}
		out = s.startQuestion(p.Question)

	case eventSubmitAnswer:
		var p AnswerPayload
		if err := json.Unmarshal(ev.env.Data, &p); err != nil {
			out = ignore("malformed payload")
			break
		}
		out = s.submitAnswer(p.Answer)

	case eventStartMemory:
		out = s.startMemory()

	case eventCompleteMemory:
		var p MemoryCompletePayload
		if err := json.Unmarshal(ev.env.Data, &p); err != nil {
			out = ignore("malformed payload")
			break
		}
		out = s.completeMemory(p.Winner)

	case eventStartBingo:
		out = s.startBingo()

	case eventSyncBingo:
		var p BingoPlayerPayload
		if err := json.Unmarshal(ev.env.Data, &p); err != nil {
			out = ignore("malformed payload")
			break
		}
		out = s.syncBingo(connID, p.Username)

	case eventNewBingoBoard:
		var p BingoPlayerPayload
		if err := json.Unmarshal(ev.env.Data, &p); err != nil {
			out = ignore("malformed payload")
			break
		}
		out = s.requestNewBoard(connID, p.Username)

	case eventDrawBingoNumber:
		out = s.drawBingoNumber()

	case eventBingoComplete:
		var p BingoCompletePayload
		if err := json.Unmarshal(ev.env.Data, &p); err != nil {
			out = ignore("malformed payload")
			break
		}
		out = s.completeBingo(p.Username)

	case eventStartLogoRound:
		var p LogoStartPayload
		if err := json.Unmarshal(ev.env.Data, &p); err != nil {
			out = ignore("malformed payload")
			break
		}
		out = s.startLogoRound(p.Brand, p.CorrectType)

	case eventAnswerLogo:
		var p LogoAnswerPayload
		if err := json.Unmarshal(ev.env.Data, &p); err != nil {
			out = ignore("malformed payload")
			break
		}
		out = s.answerLogo(p.Username, p.RoundID, p.Choice)

	case eventResetLogoGame:
		out = s.resetLogo()

	default:
		out = ignore("unknown event type")
	}

	if out.verdict != accepted {
		logf(cfg, "GAMES: %s %s in %s: %s", ev.env.Type, out.verdict, h.id, out.reason)
	}
}

// closeAll disconnects all clients of this hub (used by reaper).
func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		close(c.send)
		_ = c.conn.Close()
		delete(h.clients, c)
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// SessionManager holds a set of hubs keyed by session ID, so each
// $path/$sessionid is its own isolated session.
type SessionManager struct {
	mu          sync.Mutex
	hubs        map[string]*Hub
	idleTimeout time.Duration
}

func newSessionManager(idleTimeout time.Duration) *SessionManager {
	sm := &SessionManager{
		hubs:        make(map[string]*Hub),
		idleTimeout: idleTimeout,
	}
	if idleTimeout > 0 {
		go sm.reaperLoop()
	}
	return sm
}

func (sm *SessionManager) getHub(cfg *Config, sessionID string) *Hub {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if hub, ok := sm.hubs[sessionID]; ok {
		return hub
	}

	hub := newHub(cfg, sessionID)
	sm.hubs[sessionID] = hub
	go hub.run(cfg)
	return hub
}

// newSessionID generates a crypto-random session ID and ensures it
// doesn't collide with existing sessions.
func (sm *SessionManager) newSessionID() string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	for {
		buf := make([]byte, 8)
		if _, err := rand.Read(buf); err != nil {
			panic("crypto/rand failure: " + err.Error())
		}
		out := make([]byte, 8)
		for i := range out {
			out[i] = letters[int(buf[i])%len(letters)]
		}
		id := string(out)

		sm.mu.Lock()
		_, exists := sm.hubs[id]
		sm.mu.Unlock()

		if !exists {
			return id
		}
	}
}

// reaperLoop periodically removes hubs that have been idle longer than
// idleTimeout.
func (sm *SessionManager) reaperLoop() {
	ticker := time.NewTicker(sm.idleTimeout / 2)
	for range ticker.C {
		cutoff := time.Now().Add(-sm.idleTimeout)

		sm.mu.Lock()
		for id, hub := range sm.hubs {
			hub.mu.RLock()
			last := hub.lastActive
			hub.mu.RUnlock()

			if last.Before(cutoff) {
				delete(sm.hubs, id)
				go hub.closeAll()
			}
		}
		sm.mu.Unlock()
	}
}

// WebSocket handler that picks the hub based on :sessionid
func serveWSForManager(cfg *Config, sm *SessionManager) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		sessionID := ps.ByName("sessionid")
		if sessionID == "" {
			http.Error(w, "missing session id", http.StatusBadRequest)
			return
		}

		hub := sm.getHub(cfg, sessionID)

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade error:", err)
			return
		}

		client := &Client{
			conn:   conn,
			send:   make(chan any, 8),
			connID: uuid.NewString(),
		}

		hub.register <- client

		go client.writePump()
		client.readPump(hub)
	}
}

func (c *Client) readPump(h *Hub) {
	defer func() {
		h.unreg <- c
		_ = c.conn.Close()
	}()

	for {
		var env inboundEnvelope
		if err := c.conn.ReadJSON(&env); err != nil {
			return
		}

		h.events <- inboundEvent{
			client: c,
			env:    env,
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

// QR handler: generates a PNG QR code for the current session URL
// using go-qrcode.
func qrHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sessionID := ps.ByName("sessionid")
	if sessionID == "" {
		http.Error(w, "missing session id", http.StatusBadRequest)
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

	// We are at /.../:sessionid/qr; strip trailing "/qr" to get the
	// session URL.
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

// redirectNewSession handles GET /path by generating a new random
// session ID (with server-side collision detection) and redirecting to
// /path/:sessionid.
func redirectNewSession(cfg *Config, path string, sm *SessionManager) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		sessionID := sm.newSessionID()
		logf(cfg, "GAMES: Created session %s/%s", path, sessionID)
		http.Redirect(w, r, path+"/"+sessionID, http.StatusTemporaryRedirect)
	}
}

// registerGamenight sets up routes so that:
//   - $path                     → redirects to new random session (8-char ID)
//   - $path/:sessionid          → HTML client
//   - $path/:sessionid/ws       → WebSocket for that session
//   - $path/:sessionid/qr       → PNG QR code for that session URL
func registerGamenight(cfg *Config, path string, mux *httprouter.Router) {
	sm := newSessionManager(cfg.sessionTimeout)

	// Root path → redirect to new random session
	mux.GET(path, redirectNewSession(cfg, path, sm))

	// Per-session client view (HTML)
	mux.GET(cfg.prefix+path+"/:sessionid", serveSessionPage(cfg))

	// Per-session websocket
	mux.GET(cfg.prefix+path+"/:sessionid/ws", serveWSForManager(cfg, sm))

	// Per-session QR code
	mux.GET(cfg.prefix+path+"/:sessionid/qr", qrHandler)
}
