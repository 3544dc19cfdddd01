package main

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/samuelfneumann/progressbar"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/spatial/r1"
	"sfneuman.com/ga3c/agent"
	"sfneuman.com/ga3c/config"
	"sfneuman.com/ga3c/environment"
	"sfneuman.com/ga3c/environment/classiccontrol/cartpole"
	"sfneuman.com/ga3c/predict"
	"sfneuman.com/ga3c/tracker"
)

// uniformService is a stand-in prediction service: a uniform policy
// with a zero value estimate. A real deployment answers requests from
// a model process instead.
func uniformService(numActions int, seed uint64) predict.BatchFunc {
	rng := rand.New(rand.NewSource(seed))

	return func(requests []predict.Request) ([]predict.Response, error) {
		responses := make([]predict.Response, len(requests))
		for i, req := range requests {
			probabilities := make([]float64, numActions)
			for j := range probabilities {
				probabilities[j] = 1.0 / float64(numActions)
			}
			responses[i] = predict.Response{
				Probabilities: probabilities,
				Value:         rng.Float64() * 0.01,
				Recurrent:     req.Recurrent,
			}
		}
		return responses, nil
	}
}

func main() {
	var seed uint64 = 192382
	numWorkers := 8

	cfg := config.Default()
	cfg.TimeMax = 5
	cfg.MaxSteps = 10_000
	cfg.StartupJitter = 100 * time.Millisecond

	router, err := predict.NewRouter(numWorkers, numWorkers)
	if err != nil {
		log.Fatal(err)
	}

	// Output channels and stop flag shared by all workers
	training := make(chan *agent.Batch, numWorkers)
	episodes := make(chan tracker.Record, numWorkers)
	exit := &agent.Flag{}

	// Every worker registers with the router before it starts serving
	workers := make([]*agent.Worker, numWorkers)
	for id := 0; id < numWorkers; id++ {
		bounds := r1.Interval{Min: -0.05, Max: 0.05}
		starter := environment.NewUniformStarter([]r1.Interval{bounds,
			bounds, bounds, bounds}, seed+uint64(id))
		env := cartpole.New(starter, 500)

		client, err := router.Register(id)
		if err != nil {
			log.Fatal(err)
		}

		workers[id], err = agent.NewWorker(id, env, cfg, client, training,
			episodes, exit, seed)
		if err != nil {
			log.Fatal(err)
		}
	}

	serviceDone := make(chan struct{})
	go func() {
		if err := router.Serve(uniformService(cartpole.NumActions, seed),
			serviceDone); err != nil {
			log.Fatal(err)
		}
	}()

	// Episode statistics
	returns := tracker.NewReturn("./returns.bin")
	lengths := tracker.NewEpisodeLength("./lengths.bin")
	var logWait sync.WaitGroup
	logWait.Add(1)
	go func() {
		defer logWait.Done()
		tracker.Log(episodes, returns, lengths)
	}()

	// Drain training batches; a real deployment feeds these to the
	// trainer process
	bar := progressbar.New(65, numWorkers*cfg.MaxSteps,
		time.Second, false)
	bar.Display()
	var drainWait sync.WaitGroup
	drainWait.Add(1)
	go func() {
		defer drainWait.Done()
		for batch := range training {
			for i := 0; i < batch.Size(); i++ {
				bar.Increment()
			}
		}
	}()

	var workerWait sync.WaitGroup
	for _, worker := range workers {
		workerWait.Add(1)
		go func(worker *agent.Worker) {
			defer workerWait.Done()
			if err := worker.Run(); err != nil {
				log.Fatal(err)
			}
		}(worker)
	}

	workerWait.Wait()
	exit.Set()

	close(training)
	drainWait.Wait()
	close(episodes)
	logWait.Wait()
	close(serviceDone)
	bar.Close()

	returns.Save()
	lengths.Save()

	data := tracker.LoadReturns("./returns.bin")
	n := len(data)
	if n > 10 {
		data = data[n-10:]
	}
	fmt.Printf("%v episodes, last returns: %v\n", n, data)
}
