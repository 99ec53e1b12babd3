package config

import (
	"testing"

	"github.com/matryer/is"
)

func TestLoadDefaults(t *testing.T) {
	is := is.New(t)
	c := &Config{}
	is.NoErr(c.Load(nil))
	is.Equal(c.BoardSize, 4)
	is.Equal(c.SearchDepth, 2)
	is.Equal(c.LearningRate, 0.1)
	is.Equal(c.Episodes, 10000)
	is.Equal(c.ModelPath, "./td_model.gob")
}

func TestLoadOverrides(t *testing.T) {
	is := is.New(t)
	c := &Config{}
	is.NoErr(c.Load([]string{
		"-board-size", "5",
		"-search-depth", "3",
		"-epsilon", "0",
		"-threads", "8",
		"-model-path", "/tmp/m.gob",
	}))
	is.Equal(c.BoardSize, 5)
	is.Equal(c.SearchDepth, 3)
	is.Equal(c.Epsilon, 0.0)
	is.Equal(c.Threads, 8)
	is.Equal(c.ModelPath, "/tmp/m.gob")
}
