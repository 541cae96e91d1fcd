package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"archcanvas/internal/canvas"
	"archcanvas/internal/session"
)

// Websocket message types
const (
	// Client -> Server messages. Anything else is parsed as input events.
	MsgTypePing = "ping"

	// Server -> Client messages
	MsgTypeConnected = "connected"
	MsgTypeFrame     = "frame"
	MsgTypeReset     = "reset"
	MsgTypeError     = "error"
	MsgTypePong      = "pong"
)

const (
	writeWait  = 10 * time.Second
	maxMessage = 64 * 1024

	// DefaultPongWait is how long a client may stay silent, pongs included
	DefaultPongWait = 60 * time.Second
)

// LiveMessage is one server -> client websocket message
type LiveMessage struct {
	Type      string        `json:"type"`
	Reason    string        `json:"reason,omitempty"`
	Frame     *canvas.Frame `json:"frame,omitempty"`
	Message   string        `json:"message,omitempty"`
	Timestamp int64         `json:"timestamp"`
}

// LiveHandler streams frames to websocket clients and accepts their input
type LiveHandler struct {
	sess       *session.Session
	upgrader   websocket.Upgrader
	bufferSize int
	pongWait   time.Duration
	pingPeriod time.Duration
}

// LiveOption configures a LiveHandler
type LiveOption func(*LiveHandler)

// WithPongWait sets the read deadline renewed by every pong. Pings go out
// at nine tenths of it.
func WithPongWait(d time.Duration) LiveOption {
	return func(h *LiveHandler) {
		if d > 0 {
			h.pongWait = d
		}
	}
}

// NewLiveHandler creates a websocket handler over a session
func NewLiveHandler(sess *session.Session, bufferSize int, opts ...LiveOption) *LiveHandler {
	if bufferSize < 1 {
		bufferSize = 64
	}
	h := &LiveHandler{
		sess: sess,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Renderers may be served from any origin
				return true
			},
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 16 * 1024,
		},
		bufferSize: bufferSize,
		pongWait:   DefaultPongWait,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.pingPeriod = h.pongWait * 9 / 10
	return h
}

// ServeHTTP upgrades the connection and runs the read loop until the
// client goes away
func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Websocket upgrade failed: %v", err)
		return
	}
	defer ws.Close()
	ws.SetReadLimit(maxMessage)

	// A peer that vanished without closing misses the pongs and fails
	// the next read
	ws.SetReadDeadline(time.Now().Add(h.pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(h.pongWait))
	})

	events := make(chan session.Event, h.bufferSize)
	bus := h.sess.Bus()
	bus.Subscribe(events)
	defer bus.Unsubscribe(events)

	out := make(chan LiveMessage, h.bufferSize)
	done := make(chan struct{})
	defer close(done)
	go h.writeLoop(ws, out, events, done)

	frame := h.sess.Frame()
	send(out, LiveMessage{Type: MsgTypeConnected, Frame: &frame})
	log.Printf("Websocket client connected: %s", r.RemoteAddr)

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("Websocket connection error: %v", err)
			}
			break
		}
		ws.SetReadDeadline(time.Now().Add(h.pongWait))
		h.handleMessage(out, data)
	}

	log.Printf("Websocket client disconnected: %s", r.RemoteAddr)
}

func (h *LiveHandler) handleMessage(out chan<- LiveMessage, data []byte) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err == nil && head.Type == MsgTypePing {
		send(out, LiveMessage{Type: MsgTypePong})
		return
	}

	inputs, err := decodeInputs(data)
	if err != nil {
		send(out, LiveMessage{Type: MsgTypeError, Message: "invalid message: " + err.Error()})
		return
	}
	if _, err := h.sess.Dispatch(inputs...); err != nil {
		send(out, LiveMessage{Type: MsgTypeError, Message: err.Error()})
	}
}

// writeLoop is the only goroutine that writes to ws
func (h *LiveHandler) writeLoop(ws *websocket.Conn, out <-chan LiveMessage, events <-chan session.Event, done <-chan struct{}) {
	ticker := time.NewTicker(h.pingPeriod)
	defer ticker.Stop()

	for {
		var msg LiveMessage
		select {
		case <-done:
			return
		case <-ticker.C:
			ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				ws.Close()
				return
			}
			continue
		case msg = <-out:
		case event := <-events:
			var ok bool
			if msg, ok = eventMessage(event); !ok {
				continue
			}
		}

		msg.Timestamp = time.Now().UnixMilli()
		ws.SetWriteDeadline(time.Now().Add(writeWait))
		if err := ws.WriteJSON(msg); err != nil {
			log.Printf("Websocket write failed: %v", err)
			ws.Close()
			return
		}
	}
}

func eventMessage(event session.Event) (LiveMessage, bool) {
	switch p := event.Payload.(type) {
	case canvas.Change:
		frame := p.Frame
		return LiveMessage{Type: MsgTypeFrame, Reason: string(p.Reason), Frame: &frame}, true
	case canvas.Frame:
		return LiveMessage{Type: MsgTypeReset, Frame: &p}, true
	default:
		return LiveMessage{}, false
	}
}

// send drops the message if the client is not keeping up
func send(out chan<- LiveMessage, msg LiveMessage) {
	select {
	case out <- msg:
	default:
		log.Printf("Websocket client is slow, dropping %s message", msg.Type)
	}
}
