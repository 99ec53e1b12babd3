package main

import (
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/cdbrowne/twenty48/config"
)

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func usage(w io.Writer) {
	io.WriteString(w, "commands:\n")
	io.WriteString(w, "train [n] - run n self-play training episodes (default from -episodes)\n")
	io.WriteString(w, "auto td|ex [n] - play n evaluation games with the TD agent or expectimax\n")
	io.WriteString(w, "play - play an interactive game (w/a/s/d to move, q to quit)\n")
	io.WriteString(w, "watch td|ex - watch one agent game, board printed per move\n")
	io.WriteString(w, "show - show a summary of the current model\n")
	io.WriteString(w, "save [path] - save the model\n")
	io.WriteString(w, "load [path] - load a model\n")
	io.WriteString(w, "exit - quit\n")
}

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	sh, err := newShell(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("initializing")
	}

	l, err := readline.NewEx(&readline.Config{
		Prompt:      "\033[31mtwenty48>\033[0m ",
		HistoryFile: "/tmp/twenty48_readline.tmp",
		EOFPrompt:   "exit",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	defer l.Close()

	for {
		line, err := l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}
		line = strings.TrimSpace(line)
		switch {
		case line == "bye" || line == "exit":
			return
		case line == "help":
			usage(l.Stderr())
		case line == "":
		default:
			if err := sh.execute(l, line); err != nil {
				log.Error().Err(err).Msg("")
			}
		}
	}
}
