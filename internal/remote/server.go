// ABOUTME: Websocket control server
// ABOUTME: Accepts JSON commands, drives the player and broadcasts status
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/Resonate-Protocol/pcmstream/pkg/player"
)

const (
	writeDeadline = 10 * time.Second
	pingInterval  = 30 * time.Second
	sendBuffer    = 16
)

// Controller is the playback surface driven by remote commands
type Controller interface {
	Play() error
	Stop() error
	VolumeUp() int
	VolumeDown() int
	SetVolume(level int)
	Status() player.Status
}

// Config holds server configuration
type Config struct {
	Addr  string
	Path  string
	Name  string
	Debug bool
}

// Server serves the control websocket
type Server struct {
	config   Config
	ctrl     Controller
	upgrader websocket.Upgrader
	mux      *http.ServeMux

	httpServer *http.Server
	listener   net.Listener

	clients   map[string]*client
	clientsMu sync.RWMutex
	wg        sync.WaitGroup
}

type client struct {
	id       string
	conn     *websocket.Conn
	sendChan chan Message
	once     sync.Once
}

func (c *client) close() {
	c.once.Do(func() { close(c.sendChan) })
}

// NewServer creates a control server for ctrl
func NewServer(config Config, ctrl Controller) *Server {
	if config.Path == "" {
		config.Path = "/control"
	}

	s := &Server{
		config: config,
		ctrl:   ctrl,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Control clients are CLI tools on the local network
				return true
			},
		},
		mux:     http.NewServeMux(),
		clients: make(map[string]*client),
	}
	s.mux.HandleFunc(config.Path, s.handleWebSocket)
	return s
}

// Handler returns the HTTP handler serving the control path
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start listens on the configured address and serves in the background
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Addr, err)
	}
	s.listener = ln
	s.httpServer = &http.Server{Handler: s.mux}

	log.Printf("Control server listening on %s%s", ln.Addr(), s.config.Path)

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Control server error: %v", err)
		}
	}()
	return nil
}

// Addr returns the bound listener address
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Port returns the bound TCP port
func (s *Server) Port() int {
	if addr, ok := s.Addr().(*net.TCPAddr); ok {
		return addr.Port
	}
	return 0
}

// Stop shuts the server down and disconnects clients
func (s *Server) Stop() error {
	var err error
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err = s.httpServer.Shutdown(ctx)
	}

	s.clientsMu.Lock()
	for _, c := range s.clients {
		c.conn.Close()
	}
	s.clientsMu.Unlock()

	s.wg.Wait()
	return err
}

// Broadcast pushes a status update to every connected client
func (s *Server) Broadcast(st player.Status) {
	msg, err := NewMessage(TypeStatus, StatusFrom(s.config.Name, st))
	if err != nil {
		log.Printf("Error building status broadcast: %v", err)
		return
	}

	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	for _, c := range s.clients {
		s.enqueue(c, msg)
	}
}

// ClientCount returns the number of connected clients
func (s *Server) ClientCount() int {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	return len(s.clients)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	log.Printf("Control connection from %s", r.RemoteAddr)

	c := &client{
		id:       uuid.New().String(),
		conn:     conn,
		sendChan: make(chan Message, sendBuffer),
	}

	s.clientsMu.Lock()
	s.clients[c.id] = c
	s.clientsMu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.clientWriter(c)
	}()

	s.readLoop(c)

	s.clientsMu.Lock()
	delete(s.clients, c.id)
	c.close()
	s.clientsMu.Unlock()
	conn.Close()
}

func (s *Server) readLoop(c *client) {
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			s.replyError(c, "", fmt.Errorf("invalid message: %w", err))
			continue
		}

		if s.config.Debug {
			log.Printf("[DEBUG] Control command %q from %s", msg.Type, c.id[:8])
		}

		s.handleCommand(c, msg)
	}
}

// handleCommand runs one command and replies with the resulting status
func (s *Server) handleCommand(c *client, msg Message) {
	var err error

	switch msg.Type {
	case TypePlay:
		err = s.ctrl.Play()
	case TypeStop:
		err = s.ctrl.Stop()
	case TypeVolumeUp:
		s.ctrl.VolumeUp()
	case TypeVolumeDown:
		s.ctrl.VolumeDown()
	case TypeSetVolume:
		var sv SetVolume
		if err = msg.Decode(&sv); err == nil {
			s.ctrl.SetVolume(sv.Level)
		}
	case TypeStatus:
	default:
		err = fmt.Errorf("unknown command %q", msg.Type)
	}

	if err != nil {
		s.replyError(c, msg.Type, err)
		return
	}

	reply, mErr := NewMessage(TypeStatus, StatusFrom(s.config.Name, s.ctrl.Status()))
	if mErr != nil {
		log.Printf("Error building status reply: %v", mErr)
		return
	}
	s.enqueue(c, reply)
}

func (s *Server) replyError(c *client, command string, err error) {
	msg, mErr := NewMessage(TypeError, ErrorInfo{Command: command, Message: err.Error()})
	if mErr != nil {
		log.Printf("Error building error reply: %v", mErr)
		return
	}
	s.enqueue(c, msg)
}

// enqueue drops the message when the client is not keeping up. Callers
// either run on the client's read loop or hold clientsMu, so sendChan is
// still open.
func (s *Server) enqueue(c *client, msg Message) {
	select {
	case c.sendChan <- msg:
	default:
		log.Printf("Client %s send buffer full, dropping %s", c.id[:8], msg.Type)
	}
}

func (s *Server) clientWriter(c *client) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-c.sendChan:
			if !ok {
				return
			}
			data, err := json.Marshal(msg)
			if err != nil {
				log.Printf("Error marshaling message: %v", err)
				continue
			}
			c.conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Printf("Error writing message: %v", err)
				return
			}

		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(writeDeadline)); err != nil {
				return
			}
		}
	}
}
