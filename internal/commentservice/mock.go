package commentservice

import (
	"context"
	"sync"

	"github.com/sushihentaime/postly/internal/common"
)

// MockMessageProducer records published messages for assertions in tests.
type MockMessageProducer struct {
	mu        sync.Mutex
	Published [][]byte
	Err       error
}

func (m *MockMessageProducer) Publish(ctx context.Context, msg []byte, key common.BindingKey, exchange common.Exchange) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}

	m.Published = append(m.Published, msg)
	return nil
}
