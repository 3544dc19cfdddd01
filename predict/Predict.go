// Package predict implements the request/response protocol that agent
// workers use to obtain action predictions from a shared prediction
// service without touching any model internals.
package predict

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// LayerState is the carried memory of one recurrent layer of the
// prediction model: a cell vector and a hidden vector of equal, fixed
// width.
type LayerState struct {
	Cell   []float64
	Hidden []float64
}

// RecurrentState is the stacked carried memory of every recurrent
// layer of the prediction model, indexed by layer.
//
// A nil RecurrentState is the explicit absence marker used when the
// model has no recurrent layers. It is distinct from an empty non-nil
// state, so the prediction service can tell "no recurrence" apart from
// "empty recurrence". NewRecurrentState maintains this invariant.
type RecurrentState []LayerState

// NewRecurrentState returns a zeroed RecurrentState for numLayers
// recurrent layers of width size, or nil if numLayers is 0
func NewRecurrentState(numLayers, size int) RecurrentState {
	if numLayers == 0 {
		return nil
	}

	state := make(RecurrentState, numLayers)
	for i := range state {
		state[i] = LayerState{
			Cell:   make([]float64, size),
			Hidden: make([]float64, size),
		}
	}
	return state
}

// Absent returns whether the state is the absence marker
func (r RecurrentState) Absent() bool { return r == nil }

// Request asks the prediction service for the action probabilities and
// value estimate of a single observation. The WorkerID tags the
// request so that the response can be routed back to the private
// response channel of the requesting worker.
type Request struct {
	WorkerID    int
	Observation mat.Vector
	Recurrent   RecurrentState
}

// Response carries the prediction for a single Request: a probability
// vector over the discrete action set, a value estimate of the
// observation, and the advanced recurrent state (absent whenever the
// request's recurrent state was absent).
type Response struct {
	Probabilities []float64
	Value         float64
	Recurrent     RecurrentState
}

// Client is one worker's endpoint of the prediction protocol. Requests
// are sent into a channel shared by every worker; responses arrive on
// a private channel with capacity for exactly one outstanding message.
//
// A Client is owned by a single worker and must not be used
// concurrently: at most one request may be in flight at a time.
type Client struct {
	id        int
	requests  chan<- Request
	responses chan Response
}

// NewClient returns a Client for the worker with the given id, sending
// its requests into the shared requests channel
func NewClient(id int, requests chan<- Request) *Client {
	return &Client{
		id:        id,
		requests:  requests,
		responses: make(chan Response, 1),
	}
}

// Responses returns the private channel on which the prediction
// service must deliver this client's responses
func (c *Client) Responses() chan<- Response { return c.responses }

// Predict submits a prediction request for observation under the given
// recurrent state and blocks until the matching response arrives.
//
// A response already waiting in the private channel before the request
// is sent means the service delivered two responses for one request;
// this breaks the exact pairing that training-data correctness depends
// on, so Predict reports it as an error rather than recovering.
func (c *Client) Predict(observation mat.Vector,
	recurrent RecurrentState) (Response, error) {

	select {
	case <-c.responses:
		return Response{}, fmt.Errorf("predict: worker %v: unpaired "+
			"response in channel", c.id)
	default:
	}

	c.requests <- Request{
		WorkerID:    c.id,
		Observation: observation,
		Recurrent:   recurrent,
	}

	return <-c.responses, nil
}
