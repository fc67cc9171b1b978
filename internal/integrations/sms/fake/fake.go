package fake

import (
	"context"
	"fmt"
	"sync"

	"sahel-cargo/internal/integrations/sms"
)

// Sent records one delivered message for assertions.
type Sent struct {
	To   string
	Body string
}

// Gateway is an in-memory SMS gateway for tests. Numbers added with Fail
// return an error instead of being recorded.
type Gateway struct {
	mu      sync.Mutex
	sent    []Sent
	failing map[string]error
	seq     int
}

func New() *Gateway {
	return &Gateway{failing: make(map[string]error)}
}

// Fail makes every send to the given number return err.
func (g *Gateway) Fail(to string, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.failing[to] = err
}

func (g *Gateway) Send(ctx context.Context, to string, body string) (sms.SendResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err, ok := g.failing[to]; ok {
		return sms.SendResult{}, err
	}

	g.seq++
	g.sent = append(g.sent, Sent{To: to, Body: body})
	return sms.SendResult{MessageID: fmt.Sprintf("fake-%d", g.seq)}, nil
}

// Messages returns a copy of everything sent so far.
func (g *Gateway) Messages() []Sent {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]Sent, len(g.sent))
	copy(out, g.sent)
	return out
}
