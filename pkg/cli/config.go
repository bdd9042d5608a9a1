package cli

import (
	"context"
	"io"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/briandowns/spinner"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/twentyq/pkg/adapter"
	"github.com/m-mizutani/twentyq/pkg/dataset"
	"github.com/m-mizutani/twentyq/pkg/model"
	"github.com/m-mizutani/twentyq/pkg/tree"
	"github.com/m-mizutani/twentyq/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// config holds configuration values
type config struct {
	dataset  string
	seed     string
	logLevel string
	progress bool
}

// globalFlags returns common flags used across commands with destination config
func globalFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "dataset",
			Aliases:     []string{"d"},
			Usage:       "CSV dataset path or gs://bucket/object URL",
			Sources:     cli.EnvVars("TWENTYQ_DATASET"),
			Destination: &cfg.dataset,
			Required:    true,
		},
		&cli.StringFlag{
			Name:        "seed",
			Usage:       "Random seed for fallback guesses, 0 picks one from the clock",
			Value:       "0",
			Sources:     cli.EnvVars("TWENTYQ_SEED"),
			Destination: &cfg.seed,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Value:       "warn",
			Sources:     cli.EnvVars("TWENTYQ_LOG_LEVEL"),
			Destination: &cfg.logLevel,
		},
		&cli.BoolFlag{
			Name:        "progress",
			Usage:       "Show a spinner while loading the dataset and building the tree",
			Destination: &cfg.progress,
		},
	}
}

// setupLogger attaches a logger writing to w to ctx
func (cfg *config) setupLogger(ctx context.Context, w io.Writer) context.Context {
	return logging.With(ctx, logging.New(cfg.logLevel, w))
}

// newRand creates the seeded randomness source shared by tree building and play
func (cfg *config) newRand(ctx context.Context) (*rand.Rand, error) {
	seed, err := strconv.ParseUint(cfg.seed, 10, 64)
	if err != nil {
		return nil, goerr.Wrap(err, "seed must be an unsigned integer", goerr.V("seed", cfg.seed))
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	logging.From(ctx).Debug("random source ready", "seed", seed)
	return rand.New(rand.NewPCG(seed, seed)), nil
}

// newStorage creates a Storage adapter when the dataset lives in Cloud Storage
func (cfg *config) newStorage(ctx context.Context) (adapter.Storage, error) {
	if !dataset.IsRemote(cfg.dataset) {
		return nil, nil
	}

	storage, err := adapter.NewStorage(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage")
	}
	return storage, nil
}

// prepare loads the dataset and builds the decision tree
func (cfg *config) prepare(ctx context.Context, w io.Writer, rnd tree.Rand) (*model.Dataset, *tree.Node, error) {
	if cfg.progress {
		sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
		sp.Suffix = " preparing questions"
		sp.Start()
		defer sp.Stop()
	}

	storage, err := cfg.newStorage(ctx)
	if err != nil {
		return nil, nil, err
	}
	if storage != nil {
		defer storage.Close()
	}

	ds, err := dataset.Load(ctx, cfg.dataset, storage)
	if err != nil {
		return nil, nil, err
	}

	root := tree.Build(ds.Records, ds.Traits, rnd)
	stats := tree.Collect(root)
	logging.From(ctx).Debug("tree built",
		"nodes", stats.Nodes,
		"questions", stats.Questions,
		"leaves", stats.Leaves,
		"depth", stats.Depth,
	)

	return ds, root, nil
}
