package ntuple

import (
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
)

// ErrBadModel is wrapped around any malformed or missing model data
// encountered on load. The caller decides whether to abort or start
// fresh; the network itself is never partially overwritten.
var ErrBadModel = errors.New("bad or missing model data")

// modelFile is the on-disk shape of a network. Pattern order is
// significant: features are keyed per pattern.
type modelFile struct {
	Alpha    float64
	Patterns []Pattern
	Tables   []map[uint64]float64
}

// Save writes the network (learning rate, pattern definitions, and all
// learned weights) as a gob stream.
func (n *Network) Save(w io.Writer) error {
	enc := gob.NewEncoder(w)
	return enc.Encode(modelFile{
		Alpha:    n.alpha,
		Patterns: n.patterns,
		Tables:   n.tables,
	})
}

// Load reads a network previously written by Save. The restored network
// is weight-for-weight identical to the one saved.
func Load(r io.Reader) (*Network, error) {
	var mf modelFile
	if err := gob.NewDecoder(r).Decode(&mf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadModel, err)
	}
	if len(mf.Patterns) == 0 || len(mf.Tables) != len(mf.Patterns) {
		return nil, fmt.Errorf("%w: %d patterns with %d tables",
			ErrBadModel, len(mf.Patterns), len(mf.Tables))
	}
	n := &Network{
		patterns: mf.Patterns,
		tables:   mf.Tables,
		alpha:    mf.Alpha,
	}
	for i := range n.tables {
		if n.tables[i] == nil {
			n.tables[i] = make(map[uint64]float64)
		}
	}
	return n, nil
}

// SaveFile saves the network to the given path.
func (n *Network) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := n.Save(f); err != nil {
		return err
	}
	log.Debug().Str("path", path).Int("weights", n.NumWeights()).Msg("saved model")
	return nil
}

// LoadFile loads a network from the given path.
func LoadFile(path string) (*Network, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadModel, err)
	}
	defer f.Close()
	n, err := Load(f)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("path", path).Int("weights", n.NumWeights()).Msg("loaded model")
	return n, nil
}
