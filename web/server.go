package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/neildavis/irblaster/irfile"
	"github.com/neildavis/irblaster/irremote"
	"github.com/neildavis/irblaster/irremote/irprotocol"
)

type Server struct {
	Config *Config
	Tx     *irremote.Transmitter
	Events *Hub

	mu      sync.RWMutex
	remotes []*irfile.Remote

	router     *mux.Router
	wsUpgrader *websocket.Upgrader
}

// NewServer returns a Server sending commands through tx. events may be
// nil when no frame events are published.
func NewServer(version string, tx *irremote.Transmitter, events *Hub, cfg *Config) *Server {
	if cfg == nil {
		c := DefaultConfig
		cfg = &c
	}
	if events == nil {
		events = NewHub()
	}
	cfg.Web.version = version
	srv := &Server{
		Config: cfg,
		Tx:     tx,
		Events: events,
	}
	srv.wsUpgrader = &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}

	verbose := cfg.Web.Verbose
	srv.router = mux.NewRouter()

	// shh
	srv.router.Handle("/favicon.ico", http.HandlerFunc(NilHandler))

	srv.router.Handle("/protocols",
		Logger(http.HandlerFunc(srv.Protocols), "protocols", verbose)).
		Methods("GET", "HEAD")
	srv.router.Handle("/status",
		Logger(http.HandlerFunc(srv.Status), "status", verbose)).
		Methods("GET", "HEAD")
	srv.router.Handle("/send",
		Logger(http.HandlerFunc(srv.Send), "send", verbose)).
		Methods("POST")
	srv.router.Handle("/stop",
		Logger(http.HandlerFunc(srv.Stop), "stop", verbose)).
		Methods("POST")
	srv.router.Handle("/remotes",
		Logger(http.HandlerFunc(srv.Remotes), "remotes", verbose)).
		Methods("GET", "HEAD")
	srv.router.Handle("/remotes/{remote}/{button}",
		Logger(http.HandlerFunc(srv.PressButton), "button", verbose)).
		Methods("POST")
	srv.router.Handle("/websocket",
		Logger(http.HandlerFunc(srv.Websocket), "ws-frames", verbose)).
		Methods("GET")
	return srv
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on Config.Web.ListenAddr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	httpServer := &http.Server{
		Handler:      s.router,
		Addr:         s.Config.Web.ListenAddr,
		WriteTimeout: 4 * time.Second,
		ReadTimeout:  4 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		errc <- httpServer.ListenAndServe()
	}()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdown)
}

// SetRemotes replaces the universal remotes served.
func (s *Server) SetRemotes(remotes []*irfile.Remote) {
	s.mu.Lock()
	s.remotes = remotes
	s.mu.Unlock()
}

// LoadRemotes reads the remote files of dir. A missing directory means no
// remotes.
func (s *Server) LoadRemotes(dir string) error {
	remotes, err := irfile.LoadDir(dir)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	s.SetRemotes(remotes)
	return nil
}

type protocolInfo struct {
	ID        uint8  `json:"id"`
	Name      string `json:"name"`
	Shape     string `json:"shape"`
	Frequency uint32 `json:"frequency"`
	Bits      int    `json:"bits"`
	Frames    int    `json:"frames"`
	MaxEdges  int    `json:"max_edges"`
}

// Protocols lists every protocol that can be sent.
func (s *Server) Protocols(w http.ResponseWriter, r *http.Request) {
	var list []protocolInfo
	for _, id := range irprotocol.IDs() {
		d, err := irprotocol.Lookup(id)
		if err != nil {
			continue
		}
		list = append(list, protocolInfo{
			ID:        uint8(id),
			Name:      id.String(),
			Shape:     d.Shape.String(),
			Frequency: d.Frequency,
			Bits:      d.Bits,
			Frames:    d.Frames,
			MaxEdges:  d.MaxEdges(),
		})
	}
	writeJSON(w, http.StatusOK, list)
}

type status struct {
	Busy     bool   `json:"busy"`
	State    string `json:"state"`
	Protocol string `json:"protocol"`
	Version  string `json:"version"`
}

// Status encodes the transmitter state.
func (s *Server) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, status{
		Busy:     s.Tx.IsBusy(),
		State:    s.Tx.State().String(),
		Protocol: s.Tx.Protocol().String(),
		Version:  s.Config.Web.version,
	})
}

// sendRequest is a command with an optional repeat count. Protocol is a
// name or a decimal id, repeat above irremote.MaxRepeats is endless.
type sendRequest struct {
	irremote.Command
	Repeat int `json:"repeat"`
}

// Send starts the json encoded command of the request body.
func (s *Server) Send(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		log.Println("error decoding json:", err)
		http.Error(w, "couldn't decode provided json", http.StatusBadRequest)
		return
	}
	cmd := req.Command
	if req.Repeat != 0 {
		cmd.Flags = cmd.Flags&^irremote.RepeatMask | irremote.Repeat(req.Repeat)
	}
	if err := cmd.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.start(w, cmd)
}

// PressButton starts the command of a universal remote button.
func (s *Server) PressButton(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	s.mu.RLock()
	remote, err := irfile.Find(s.remotes, vars["remote"])
	s.mu.RUnlock()
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	b, err := remote.Button(vars["button"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	s.start(w, b.Command)
}

func (s *Server) start(w http.ResponseWriter, cmd irremote.Command) {
	err := s.Tx.Start(cmd)
	switch {
	case err == nil:
		writeJSON(w, http.StatusAccepted, cmd)
	case errors.Is(err, irremote.ErrBusy):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, irremote.ErrUnsupportedProtocol), errors.Is(err, irremote.ErrTruncated),
		errors.Is(err, irremote.ErrInvalidCommand):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		log.Println("error starting command:", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Stop cancels pending repeat frames.
func (s *Server) Stop(w http.ResponseWriter, r *http.Request) {
	s.Tx.Stop()
	w.Write([]byte("stopped"))
}

// Remotes lists the universal remotes and their buttons.
func (s *Server) Remotes(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	remotes := s.remotes
	s.mu.RUnlock()
	if remotes == nil {
		remotes = []*irfile.Remote{}
	}
	writeJSON(w, http.StatusOK, remotes)
}

// Websocket pushes a FrameEvent for every frame sent.
func (s *Server) Websocket(w http.ResponseWriter, r *http.Request) {
	events, cancel := s.Events.Subscribe()
	conn, err := s.wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		cancel()
		log.Println("error subscribing to websocket:", err)
		return
	}
	if s.Config.Web.Verbose {
		log.Printf("websocket - subscription from %s", conn.RemoteAddr())
	}

	// the read loop notices the client going away
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	go func() {
		defer cancel()
		defer conn.Close()
		ping := time.NewTicker(time.Duration(s.Config.Web.WebsocketPing))
		defer ping.Stop()
		for {
			var err error
			select {
			case ev := <-events:
				err = conn.WriteJSON(ev)
			case <-ping.C:
				err = conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(time.Second))
			case <-closed:
				return
			}
			if err != nil {
				if s.Config.Web.Verbose {
					log.Printf("websocket - lost connection to %s", conn.RemoteAddr())
				}
				return
			}
		}
	}()
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println(fmt.Sprintf("error encoding %T:", v), err)
	}
}
