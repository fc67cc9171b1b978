package ingestion

import (
	"context"
	"fmt"
	"sync"

	"sahel-cargo/internal/logger"
	usecaseContainer "sahel-cargo/internal/usecase/container"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ContainerService is the slice of the container use cases the position
// feed needs.
type ContainerService interface {
	GetByNumber(ctx context.Context, number string) (*usecaseContainer.ContainerResponse, error)
	AddTrackingUpdate(ctx context.Context, containerID, userID uuid.UUID, req *usecaseContainer.AddUpdateRequest) (*usecaseContainer.AddUpdateResponse, error)
}

// Processor turns GPS position messages into internal tracking updates.
// Internal updates never reach the public tracking page and never send SMS.
type Processor struct {
	containers ContainerService

	workerCount int
	positions   chan *PositionMessage

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	dropped int64
}

// NewProcessor creates a new position processor
func NewProcessor(containers ContainerService, workerCount, bufferSize int) *Processor {
	if workerCount <= 0 {
		workerCount = 2
	}
	if bufferSize <= 0 {
		bufferSize = 256
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Processor{
		containers:  containers,
		workerCount: workerCount,
		positions:   make(chan *PositionMessage, bufferSize),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Start starts the processor workers
func (p *Processor) Start() {
	for i := 0; i < p.workerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
	logger.Info("Position processor started", zap.Int("workers", p.workerCount))
}

// Stop drains the queue and stops the workers
func (p *Processor) Stop() {
	close(p.positions)
	p.wg.Wait()
	p.cancel()
	logger.Info("Position processor stopped", zap.Int64("dropped", p.droppedCount()))
}

// Enqueue hands a position to the workers. Messages are dropped when the
// buffer is full; the feed is best-effort telemetry, not an audit trail.
func (p *Processor) Enqueue(msg *PositionMessage) {
	select {
	case p.positions <- msg:
	default:
		p.mu.Lock()
		p.dropped++
		p.mu.Unlock()
		logger.Warn("Position buffer full, message dropped",
			zap.String("container_number", msg.ContainerNumber),
		)
	}
}

func (p *Processor) worker(id int) {
	defer p.wg.Done()

	for msg := range p.positions {
		if err := p.process(msg); err != nil {
			logger.Warn("Failed to process position",
				zap.Int("worker", id),
				zap.String("container_number", msg.ContainerNumber),
				zap.Error(err),
			)
		}
	}
}

func (p *Processor) process(msg *PositionMessage) error {
	cont, err := p.containers.GetByNumber(p.ctx, msg.ContainerNumber)
	if err != nil {
		return err
	}

	location := msg.Place
	if location == "" {
		location = fmt.Sprintf("%.4f,%.4f", msg.Latitude, msg.Longitude)
	}

	lat := msg.Latitude
	lng := msg.Longitude
	req := &usecaseContainer.AddUpdateRequest{
		Location:    location,
		Description: fmt.Sprintf("Position GPS reçue le %s", msg.Timestamp.Format("02/01/2006 15:04")),
		Latitude:    &lat,
		Longitude:   &lng,
		Internal:    true,
	}

	// uuid.Nil marks updates written by the feed rather than an operator.
	_, err = p.containers.AddTrackingUpdate(p.ctx, cont.ID, uuid.Nil, req)
	return err
}

func (p *Processor) droppedCount() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dropped
}
