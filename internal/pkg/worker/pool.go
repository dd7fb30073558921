// Package worker 提供请求外的后台任务执行器。
// 每个任务独立 context 与 trace_id，失败只记录日志，不回传、不重试。
package worker

import (
	"BridgeUS/internal/pkg/logger"
	"context"
	log "log/slog"
	"sync"

	"github.com/google/uuid"
)

type Task func(ctx context.Context)

type Pool struct {
	tasks chan Task
	wg    sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

func NewPool(queueSize, workers int) *Pool {
	if queueSize <= 0 {
		queueSize = 256
	}
	if workers <= 0 {
		workers = 1
	}

	p := &Pool{
		tasks: make(chan Task, queueSize),
	}

	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.run()
	}

	return p
}

// Submit 非阻塞投递任务；队列满或池已关闭时丢弃并返回 false，
// 提交方的内容停留在 pending，由人工或重新提交兜底
func (p *Pool) Submit(task Task) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return false
	}

	select {
	case p.tasks <- task:
		return true
	default:
		log.Warn("worker queue full, task dropped")
		return false
	}
}

// Stop 关闭队列并等待在途任务结束
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.tasks)
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *Pool) run() {
	defer p.wg.Done()
	for task := range p.tasks {
		p.execute(task)
	}
}

func (p *Pool) execute(task Task) {
	traceID := "worker-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	defer func() {
		if r := recover(); r != nil {
			log.ErrorContext(ctx, "worker task panic recovered", "panic", r)
		}
	}()

	task(ctx)
}
