package predict

import (
	"fmt"
)

// BatchFunc computes predictions for a batch of requests, returning
// one Response per Request in order. It is the boundary behind which
// the model lives; this package never inspects model internals.
type BatchFunc func(requests []Request) ([]Response, error)

// Router is the service-side half of the prediction protocol. It owns
// the request channel shared by every worker, drains it in batches,
// hands each batch to a BatchFunc, and delivers each Response to the
// private response channel of the worker that asked for it.
type Router struct {
	requests  chan Request
	routes    map[int]chan<- Response
	batchSize int
}

// NewRouter returns a Router whose shared request channel holds at
// most queueSize pending requests and which batches at most batchSize
// requests per BatchFunc call
func NewRouter(queueSize, batchSize int) (*Router, error) {
	if batchSize < 1 {
		return nil, fmt.Errorf("newRouter: batch size must be positive, "+
			"got %v", batchSize)
	}
	return &Router{
		requests:  make(chan Request, queueSize),
		routes:    make(map[int]chan<- Response),
		batchSize: batchSize,
	}, nil
}

// Requests returns the shared request channel for workers to send into
func (r *Router) Requests() chan Request { return r.requests }

// Register creates, registers, and returns a Client for the worker
// with the given id. Register must not be called concurrently with
// Serve.
func (r *Router) Register(id int) (*Client, error) {
	if _, ok := r.routes[id]; ok {
		return nil, fmt.Errorf("register: worker %v already registered", id)
	}
	client := NewClient(id, r.requests)
	r.routes[id] = client.Responses()
	return client, nil
}

// Serve drains the request channel until done is closed, batching
// pending requests and answering them with fn. A request from an
// unregistered worker or a BatchFunc failure stops the Router with an
// error, since silently dropping either would leave a worker blocked
// forever.
func (r *Router) Serve(fn BatchFunc, done <-chan struct{}) error {
	for {
		var batch []Request

		select {
		case <-done:
			return nil
		case req := <-r.requests:
			batch = append(batch, req)
		}

		// Opportunistically drain whatever else is already queued
	drain:
		for len(batch) < r.batchSize {
			select {
			case req := <-r.requests:
				batch = append(batch, req)
			default:
				break drain
			}
		}

		responses, err := fn(batch)
		if err != nil {
			return fmt.Errorf("serve: %v", err)
		}
		if len(responses) != len(batch) {
			return fmt.Errorf("serve: got %v responses for %v requests",
				len(responses), len(batch))
		}

		for i, req := range batch {
			route, ok := r.routes[req.WorkerID]
			if !ok {
				return fmt.Errorf("serve: request from unregistered "+
					"worker %v", req.WorkerID)
			}
			route <- responses[i]
		}
	}
}
