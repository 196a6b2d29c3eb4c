package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/matt-g-everett/layertx/layer"
	"github.com/matt-g-everett/layertx/script"
	"github.com/matt-g-everett/layertx/stream"
	"github.com/rs/zerolog/log"
)

const (
	maxBody      = 1 << 20
	writeTimeout = 200 * time.Millisecond
)

// Api serves the layer state over HTTP and websockets.
type Api struct {
	addr       string
	static     string
	controller *stream.Controller
	upgrader   websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

// NewApi creates an Api that pushes snapshots to websocket clients every
// frame.
func NewApi(addr string, static string, controller *stream.Controller) *Api {
	a := new(Api)
	a.addr = addr
	a.static = static
	a.controller = controller
	a.upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	a.clients = map[*websocket.Conn]bool{}
	controller.OnFrame(a.broadcast)
	return a
}

// Handler returns the routes.
func (a *Api) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /layers", a.handleLayers)
	mux.HandleFunc("GET /layers/{id}", a.handleLayer)
	mux.HandleFunc("POST /layers/{id}/commands", a.handleCommands)
	mux.HandleFunc("PUT /layers/{id}/overlay", a.handleOverlay)
	mux.HandleFunc("POST /finalize", a.handleFinalize)
	mux.HandleFunc("GET /ws", a.handleWS)
	mux.Handle("/", http.FileServer(http.Dir(a.static)))
	return mux
}

// Serve listens until ctx is done.
func (a *Api) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:         a.addr,
		Handler:      a.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdown)
		a.closeClients()
	}()

	log.Info().Str("addr", a.addr).Msg("listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *Api) handleLayers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.controller.Snapshots())
}

func (a *Api) handleLayer(w http.ResponseWriter, r *http.Request) {
	id, ok := layerID(w, r)
	if !ok {
		return
	}
	snap, ok := a.controller.Snapshot(id)
	if !ok {
		writeError(w, http.StatusNotFound, layer.ErrUnknownLayer)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (a *Api) handleCommands(w http.ResponseWriter, r *http.Request) {
	id, ok := layerID(w, r)
	if !ok {
		return
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	commands, err := script.DecodeCommands(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := a.controller.Send(id, commands...); err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]int{"queued": len(commands)})
}

type overlayRequest struct {
	Filename string  `json:"filename"`
	Entries  []int32 `json:"entries"`
	Rate     float64 `json:"rate"`
}

func (a *Api) handleOverlay(w http.ResponseWriter, r *http.Request) {
	id, ok := layerID(w, r)
	if !ok {
		return
	}
	var req overlayRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := a.controller.SetOverlay(id, req.Filename, req.Entries, req.Rate); err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *Api) handleFinalize(w http.ResponseWriter, r *http.Request) {
	a.controller.Finalize()
	w.WriteHeader(http.StatusNoContent)
}

func (a *Api) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := a.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Debug().Err(err).Msg("websocket upgrade")
		return
	}
	a.mu.Lock()
	a.clients[conn] = true
	a.mu.Unlock()

	go func() {
		defer a.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (a *Api) broadcast(_ *stream.Frame, snaps []layer.Snapshot) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.clients) == 0 {
		return
	}

	b, err := json.Marshal(snaps)
	if err != nil {
		log.Error().Err(err).Msg("marshal snapshots")
		return
	}
	for c := range a.clients {
		c.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.WriteMessage(websocket.TextMessage, b); err != nil {
			log.Debug().Err(err).Msg("dropping websocket client")
			delete(a.clients, c)
			c.Close()
		}
	}
}

func (a *Api) drop(conn *websocket.Conn) {
	a.mu.Lock()
	delete(a.clients, conn)
	a.mu.Unlock()
	conn.Close()
}

func (a *Api) closeClients() {
	a.mu.Lock()
	defer a.mu.Unlock()
	for c := range a.clients {
		c.Close()
	}
}

func layerID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Debug().Err(err).Msg("write response")
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
