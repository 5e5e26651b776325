package integration_tests

import (
	"context"
	"sync"

	"github.com/invoicehub/invoicehub.go/mail"
)

// mockMailer records every message instead of talking to an SMTP server.
// Set failWith to make all sends fail.
type mockMailer struct {
	mu       sync.Mutex
	sent     []mail.Message
	failWith error
}

func newMockMailer() *mockMailer {
	return &mockMailer{}
}

func (m *mockMailer) Send(ctx context.Context, msg mail.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *mockMailer) sentMessages() []mail.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]mail.Message, len(m.sent))
	copy(out, m.sent)
	return out
}

func (m *mockMailer) reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = nil
	m.failWith = nil
}
