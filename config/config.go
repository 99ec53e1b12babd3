package config

import "github.com/namsral/flag"

type Config struct {
	BoardSize    int
	SearchDepth  int
	LearningRate float64
	Epsilon      float64
	EpsilonMin   float64
	EpsilonDecay float64
	Episodes     int
	Window       int
	SaveEvery    int
	Threads      int
	ModelPath    string
	PatternsPath string
	Debug        bool
}

func (c *Config) Load(args []string) error {
	fs := flag.NewFlagSet("twenty48", flag.ContinueOnError)
	fs.IntVar(&c.BoardSize, "board-size", 4, "board dimension")
	fs.IntVar(&c.SearchDepth, "search-depth", 2, "expectimax search depth in plies")
	fs.Float64Var(&c.LearningRate, "learning-rate", 0.1, "TD learning rate (alpha)")
	fs.Float64Var(&c.Epsilon, "epsilon", 0.01, "exploration probability; 0 disables exploration")
	fs.Float64Var(&c.EpsilonMin, "epsilon-min", 0.005, "exploration probability floor")
	fs.Float64Var(&c.EpsilonDecay, "epsilon-decay", 0.99995, "per-episode exploration decay factor")
	fs.IntVar(&c.Episodes, "episodes", 10000, "number of training episodes for the train command")
	fs.IntVar(&c.Window, "window", 100, "episodes per statistics table row")
	fs.IntVar(&c.SaveEvery, "save-every", 1000, "save the model every n episodes; 0 disables periodic saves")
	fs.IntVar(&c.Threads, "threads", 1, "worker goroutines for evaluation runs")
	fs.StringVar(&c.ModelPath, "model-path", "./td_model.gob", "path for model save/load")
	fs.StringVar(&c.PatternsPath, "patterns-path", "", "optional YAML file of n-tuple patterns; empty uses the built-in set")
	fs.BoolVar(&c.Debug, "debug", false, "enable debug logging")
	err := fs.Parse(args)
	return err
}
