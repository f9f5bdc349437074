package stream

import (
	"bytes"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const defaultClientBuffer = 16

// Hub fans typed events out to every connected client. Delivery is best
// effort: a send never blocks the caller and never fails the mutation that
// triggered it. A client that cannot keep up loses frames, not the
// connection.
type Hub struct {
	buffer int

	mu   sync.RWMutex
	subs map[string]chan []byte
}

// NewHub returns a Hub whose subscribers each get a frame buffer of the
// given size. buffer <= 0 falls back to the default.
func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = defaultClientBuffer
	}
	return &Hub{
		buffer: buffer,
		subs:   make(map[string]chan []byte),
	}
}

// Subscribe registers a new client connection and returns its connection id
// and the channel of encoded SSE frames to drain.
func (h *Hub) Subscribe() (string, <-chan []byte) {
	id := uuid.NewString()
	ch := make(chan []byte, h.buffer)
	h.mu.Lock()
	h.subs[id] = ch
	h.mu.Unlock()
	log.Infof("stream: client connected: %s", id)
	return id, ch
}

// Unsubscribe removes the connection and closes its frame channel.
// Safe to call more than once for the same id.
func (h *Hub) Unsubscribe(id string) {
	h.mu.Lock()
	ch, ok := h.subs[id]
	if ok {
		delete(h.subs, id)
		close(ch)
	}
	h.mu.Unlock()
	if ok {
		log.Infof("stream: client disconnected: %s", id)
	}
}

// ClientCount returns the number of currently connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

func (h *Hub) TaskCreated(msg TaskCreatedMessage) {
	h.broadcast(EventTaskCreated, msg)
}

func (h *Hub) TaskUpdated(msg TaskUpdatedMessage) {
	h.broadcast(EventTaskUpdated, msg)
}

func (h *Hub) TaskDeleted(msg TaskDeletedMessage) {
	h.broadcast(EventTaskDeleted, msg)
}

func (h *Hub) TaskCompletionChanged(msg TaskCompletionChangedMessage) {
	h.broadcast(EventTaskCompletionChanged, msg)
}

func (h *Hub) NoteAdded(msg NoteAddedMessage) {
	h.broadcast(EventNoteAdded, msg)
}

func (h *Hub) NoteUpdated(msg NoteUpdatedMessage) {
	h.broadcast(EventNoteUpdated, msg)
}

func (h *Hub) NoteDeleted(msg NoteDeletedMessage) {
	h.broadcast(EventNoteDeleted, msg)
}

func (h *Hub) ActivityUpdate(msg ActivityUpdateMessage) {
	h.broadcast(EventActivityUpdate, msg)
}

// broadcast encodes one frame and offers it to every subscriber. Channel
// close only happens under the write lock in Unsubscribe, so sending under
// the read lock cannot hit a closed channel.
func (h *Hub) broadcast(event string, payload any) {
	data, err := sonic.Marshal(payload)
	if err != nil {
		log.Errorf("stream: encode %s: %v", event, err)
		return
	}
	frame := formatFrame(event, data)

	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, ch := range h.subs {
		select {
		case ch <- frame:
		default:
			log.Warnf("stream: client %s not keeping up, dropped %s", id, event)
		}
	}
}

// formatFrame renders a named server-sent event.
func formatFrame(event string, data []byte) []byte {
	var b bytes.Buffer
	b.Grow(len(event) + len(data) + 16)
	b.WriteString("event: ")
	b.WriteString(event)
	b.WriteString("\ndata: ")
	b.Write(data)
	b.WriteString("\n\n")
	return b.Bytes()
}
