package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog/log"

	"github.com/cdbrowne/twenty48/automatic"
	"github.com/cdbrowne/twenty48/config"
	"github.com/cdbrowne/twenty48/expectimax"
	"github.com/cdbrowne/twenty48/game"
	"github.com/cdbrowne/twenty48/ntuple"
	"github.com/cdbrowne/twenty48/tdagent"
)

type shell struct {
	cfg *config.Config
	net *ntuple.Network
}

func newShell(cfg *config.Config) (*shell, error) {
	patterns := ntuple.DefaultPatterns()
	if cfg.PatternsPath != "" {
		var err error
		patterns, err = ntuple.LoadPatterns(cfg.PatternsPath, cfg.BoardSize)
		if err != nil {
			return nil, err
		}
	}
	return &shell{
		cfg: cfg,
		net: ntuple.NewNetwork(patterns, cfg.LearningRate),
	}, nil
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func (sh *shell) newAgent() *tdagent.Agent {
	var explorer tdagent.Explorer
	if sh.cfg.Epsilon > 0 {
		explorer = &tdagent.EpsilonGreedy{
			Epsilon: sh.cfg.Epsilon,
			Min:     sh.cfg.EpsilonMin,
			Decay:   sh.cfg.EpsilonDecay,
		}
	}
	return tdagent.NewAgent(sh.net, explorer, sh.cfg.BoardSize)
}

func (sh *shell) execute(l *readline.Instance, line string) error {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "train":
		return sh.train(args)
	case "auto":
		return sh.auto(l.Stderr(), args)
	case "play":
		return sh.interactive(l)
	case "watch":
		return sh.watch(l.Stderr(), args)
	case "show":
		return sh.show(l.Stderr())
	case "save":
		return sh.save(args)
	case "load":
		return sh.load(args)
	default:
		return fmt.Errorf("unknown command %q; try help", cmd)
	}
}

func (sh *shell) train(args []string) error {
	episodes := sh.cfg.Episodes
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("bad episode count %q", args[0])
		}
		episodes = n
	}

	// Ctrl-C stops training between episodes; the model still gets
	// saved on the way out.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	return automatic.Train(ctx, sh.newAgent(), automatic.TrainOptions{
		Episodes:  episodes,
		Window:    sh.cfg.Window,
		SaveEvery: sh.cfg.SaveEvery,
		ModelPath: sh.cfg.ModelPath,
	}, os.Stdout)
}

func (sh *shell) pickerFactory(kind string) (func() automatic.MovePicker, error) {
	switch kind {
	case "td":
		return func() automatic.MovePicker {
			return tdagent.NewAgent(sh.net, nil, sh.cfg.BoardSize)
		}, nil
	case "ex":
		return func() automatic.MovePicker {
			return expectimax.NewSolver(sh.cfg.SearchDepth)
		}, nil
	default:
		return nil, fmt.Errorf("unknown agent %q (want td or ex)", kind)
	}
}

func (sh *shell) auto(w io.Writer, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("auto needs an agent: td or ex")
	}
	factory, err := sh.pickerFactory(args[0])
	if err != nil {
		return err
	}
	games := 10
	if len(args) > 1 {
		games, err = strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("bad game count %q", args[1])
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	results, err := automatic.AutoPlay(ctx, automatic.AutoPlayOptions{
		Games:     games,
		Threads:   sh.cfg.Threads,
		BoardSize: sh.cfg.BoardSize,
		NewPicker: factory,
	})
	if err != nil {
		return err
	}
	var scores, tiles automatic.Result
	for _, r := range results {
		if r.Score > scores.Score {
			scores = r
		}
		if r.MaxTile > tiles.MaxTile {
			tiles = r
		}
	}
	showMessage(fmt.Sprintf("%d games; best score %d, best tile %d",
		len(results), scores.Score, tiles.MaxTile), w)
	return automatic.ScoreHistogram(w, results)
}

func (sh *shell) watch(w io.Writer, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("watch needs an agent: td or ex")
	}
	factory, err := sh.pickerFactory(args[0])
	if err != nil {
		return err
	}
	picker := factory()

	g := game.NewGame(sh.cfg.BoardSize)
	for !g.GameOver() {
		showMessage(g.ToDisplayText(), w)
		dir, err := picker.BestMove(g)
		if err != nil {
			return err
		}
		showMessage(fmt.Sprintf("agent move: %v", dir), w)
		if _, err := g.Move(dir); err != nil {
			return err
		}
		if err := g.SpawnTile(); err != nil {
			return err
		}
	}
	showMessage(g.ToDisplayText(), w)
	showMessage("game over", w)
	return nil
}

var keyToDirection = map[string]game.Direction{
	"w": game.Up,
	"a": game.Left,
	"s": game.Down,
	"d": game.Right,
}

func (sh *shell) interactive(l *readline.Instance) error {
	g := game.NewGame(sh.cfg.BoardSize)
	w := l.Stderr()

	defer l.SetPrompt("\033[31mtwenty48>\033[0m ")
	l.SetPrompt("move (w/a/s/d, q quits): ")

	for !g.GameOver() {
		showMessage(g.ToDisplayText(), w)
		line, err := l.Readline()
		if err == readline.ErrInterrupt || err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		key := strings.TrimSpace(line)
		if key == "q" {
			return nil
		}
		dir, ok := keyToDirection[key]
		if !ok {
			showMessage("w, a, s or d", w)
			continue
		}
		legal := false
		for _, d := range g.LegalMoves() {
			if d == dir {
				legal = true
				break
			}
		}
		if !legal {
			showMessage(fmt.Sprintf("%v is not legal here", dir), w)
			continue
		}
		if _, err := g.Move(dir); err != nil {
			return err
		}
		if err := g.SpawnTile(); err != nil {
			return err
		}
	}
	showMessage(g.ToDisplayText(), w)
	showMessage("game over!", w)
	return nil
}

func (sh *shell) show(w io.Writer) error {
	showMessage(fmt.Sprintf("model: %d patterns, %d weights, learning rate %g",
		sh.net.NumPatterns(), sh.net.NumWeights(), sh.net.LearningRate()), w)
	return nil
}

func (sh *shell) save(args []string) error {
	path := sh.cfg.ModelPath
	if len(args) > 0 {
		path = args[0]
	}
	return sh.net.SaveFile(path)
}

func (sh *shell) load(args []string) error {
	path := sh.cfg.ModelPath
	if len(args) > 0 {
		path = args[0]
	}
	net, err := ntuple.LoadFile(path)
	if err != nil {
		// Never replace a live model with a bad load.
		return err
	}
	sh.net = net
	log.Info().Str("path", path).Int("weights", net.NumWeights()).Msg("model loaded")
	return nil
}
