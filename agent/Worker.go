// Package agent implements the worker that drives an environment
// against a shared prediction service, accumulating trajectory
// segments into discounted-return training batches and episode
// statistics for downstream consumers.
package agent

import (
	"fmt"
	"time"

	"golang.org/x/exp/rand"
	"sfneuman.com/ga3c/config"
	"sfneuman.com/ga3c/environment"
	"sfneuman.com/ga3c/experience"
	"sfneuman.com/ga3c/policy"
	"sfneuman.com/ga3c/predict"
	"sfneuman.com/ga3c/tracker"
)

// seedMix decorrelates per-worker random streams derived from a single
// run-level seed
const seedMix uint64 = 0x9E3779B97F4A7C15

// Worker repeatedly drives an environment through episodes, requesting
// an action prediction for every step, buffering the resulting
// experiences into bounded trajectory segments, and emitting each
// segment as a discounted-return training Batch together with episode
// statistics.
//
// A Worker exclusively owns its environment, experience buffer,
// recurrent state, and random source. The only state shared with other
// workers are the prediction request channel, the two output channels,
// and the stop Flag.
type Worker struct {
	id     int
	env    environment.Environment
	client *predict.Client

	cfg        config.Config
	buffer     *experience.Buffer
	selector   policy.Selector
	numActions int

	training chan<- *Batch
	episodes chan<- tracker.Record
	exit     *Flag

	rng        *rand.Rand
	totalSteps int
}

// NewWorker returns a Worker with the given id, driving env and
// requesting predictions through client. Batches are sent into
// training and episode statistics into episodes; both may be shared
// with other workers. The worker stops accepting new episodes once
// exit is set or cfg.MaxSteps environment steps have been taken.
//
// The worker's private random stream is derived deterministically from
// runSeed and id, so concurrent workers sample independently while
// runs remain reproducible.
func NewWorker(id int, env environment.Environment, cfg config.Config,
	client *predict.Client, training chan<- *Batch,
	episodes chan<- tracker.Record, exit *Flag,
	runSeed uint64) (*Worker, error) {

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("newWorker: %v", err)
	}

	buffer, err := experience.NewBuffer(cfg.TimeMax)
	if err != nil {
		return nil, fmt.Errorf("newWorker: %v", err)
	}

	seed := runSeed + uint64(id)*seedMix
	rng := rand.New(rand.NewSource(seed))

	return &Worker{
		id:         id,
		env:        env,
		client:     client,
		cfg:        cfg,
		buffer:     buffer,
		selector:   policy.New(cfg.PlayMode, rng.Uint64()),
		numActions: env.NumActions(),
		training:   training,
		episodes:   episodes,
		exit:       exit,
		rng:        rng,
	}, nil
}

// Run loops over episodes until the shared stop flag is set or the
// configured step limit is reached. The stop condition is only checked
// between episodes, so an in-progress episode always runs to
// completion before the worker returns.
//
// Run returns a non-nil error only for unrecoverable conditions: a
// broken environment contract or a prediction protocol violation.
func (w *Worker) Run() error {
	// A bounded random delay keeps a fleet of starting workers from
	// stampeding the prediction service all at once
	if w.cfg.StartupJitter > 0 {
		time.Sleep(time.Duration(w.rng.Int63n(int64(w.cfg.StartupJitter))))
	}

	for !w.done() {
		if err := w.runEpisode(); err != nil {
			return fmt.Errorf("run: worker %v: %v", w.id, err)
		}
	}
	return nil
}

// TotalSteps returns the cumulative number of environment steps taken
// across all of the worker's episodes
func (w *Worker) TotalSteps() int {
	return w.totalSteps
}

func (w *Worker) done() bool {
	if w.exit.IsSet() {
		return true
	}
	return w.cfg.MaxSteps > 0 && w.totalSteps >= w.cfg.MaxSteps
}

// runEpisode drives a single episode from reset to termination,
// emitting a training Batch at every segment boundary and one episode
// Record at the end.
func (w *Worker) runEpisode() error {
	w.env.Reset()
	w.buffer.Reset()

	// Prediction-time recurrent state advances on every prediction;
	// training-time recurrent state lags one segment behind, holding
	// the value current at the start of the segment being emitted.
	predState := predict.NewRecurrentState(w.cfg.NumLSTMs, w.cfg.LSTMSize)
	trainState := predict.NewRecurrentState(w.cfg.NumLSTMs, w.cfg.LSTMSize)

	running := true
	episodeReward := 0.0
	episodeLength := 0
	segmentSteps := 0

	for running {
		// The first observation of an episode only becomes available
		// after stepping; issue no-op steps until then
		if w.env.CurrentState() == nil {
			_, running = w.env.Step(environment.Noop)
			if !running {
				return fmt.Errorf("runEpisode: environment stopped " +
					"running immediately after reset and noop")
			}
			continue
		}

		response, err := w.client.Predict(w.env.CurrentState(), predState)
		if err != nil {
			return fmt.Errorf("runEpisode: %v", err)
		}
		if response.Recurrent.Absent() != predState.Absent() {
			return fmt.Errorf("runEpisode: prediction service changed " +
				"recurrent state presence")
		}
		predState = response.Recurrent

		action, err := w.selector.SelectAction(response.Probabilities)
		if err != nil {
			return fmt.Errorf("runEpisode: %v", err)
		}

		var reward float64
		reward, running = w.env.Step(action)
		episodeReward += reward

		err = w.buffer.Add(experience.Experience{
			State:      w.env.PreviousState(),
			Action:     action,
			Prediction: response.Probabilities,
			Reward:     reward,
		})
		if err != nil {
			return fmt.Errorf("runEpisode: %v", err)
		}
		segmentSteps++

		if running && !w.buffer.Full() {
			continue
		}

		// Segment boundary: rewrite rewards as discounted returns,
		// bootstrapping non-terminal cuts with the value estimate of
		// the last prediction, and hand the segment off for training
		emitted := experience.Accumulate(w.buffer.Experiences(),
			w.cfg.Discount, response.Value, !running, w.cfg.ClipBounds())

		if len(emitted) > 0 {
			batch, err := NewBatch(emitted, w.numActions, trainState)
			if err != nil {
				return fmt.Errorf("runEpisode: %v", err)
			}
			w.training <- batch
		}

		trainState = predState
		w.totalSteps += segmentSteps
		segmentSteps = 0

		// One frame of every non-terminal segment is dropped from the
		// emitted batch but still counts toward the episode length
		episodeLength += len(emitted) + 1

		if running {
			if err := w.buffer.ResetKeepLast(); err != nil {
				return fmt.Errorf("runEpisode: %v", err)
			}
		} else {
			w.buffer.Reset()
		}
	}

	w.episodes <- tracker.Record{
		Time:        time.Now(),
		TotalReward: episodeReward,
		TotalLength: episodeLength,
		TotalSteps:  w.totalSteps,
	}
	return nil
}
