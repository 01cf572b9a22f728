// Command shahmat plays the engine against itself, printing the board after
// every move. Without a weights file it runs on the dummy oracle, which makes
// it a search demo rather than a strong player.
//
// Configuration is read from SHAHMAT_* environment variables or an optional
// shahmat.{yaml,toml,json} in the working directory: iterations, moves, seed,
// fen, weights.
package main

import (
	"encoding/gob"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gorgonia/shahmat"
	dual "github.com/gorgonia/shahmat/dualnet"
	"github.com/gorgonia/shahmat/game"
	chessgame "github.com/gorgonia/shahmat/game/chess"
	"github.com/gorgonia/shahmat/mcts"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	viper.SetDefault("iterations", 400)
	viper.SetDefault("moves", 40)
	viper.SetDefault("seed", time.Now().UnixNano())
	viper.SetDefault("fen", "")
	viper.SetDefault("weights", "")

	viper.SetEnvPrefix("shahmat")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName("shahmat")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatal().Err(err).Msg("reading config file")
		}
	}

	var s game.State
	if fen := viper.GetString("fen"); fen != "" {
		var err error
		if s, err = chessgame.FromFEN(fen); err != nil {
			log.Fatal().Err(err).Str("fen", fen).Msg("setting up position")
		}
	} else {
		s = chessgame.New()
	}

	val, pol, cleanup, err := oracles(viper.GetString("weights"))
	if err != nil {
		log.Fatal().Err(err).Str("weights", viper.GetString("weights")).Msg("loading weights")
	}
	defer cleanup()

	conf := shahmat.DefaultConfig()
	conf.Iterations = viper.GetInt("iterations")
	conf.MCTS.Seed = viper.GetInt64("seed")
	log.Info().
		Int("iterations", conf.Iterations).
		Int64("seed", conf.MCTS.Seed).
		Bool("dummy", viper.GetString("weights") == "").
		Msg("starting")

	e := shahmat.New(s, conf, chessgame.Encode, val, pol)
	for i := 0; i < viper.GetInt("moves"); i++ {
		mv, err := e.Play()
		if err != nil {
			log.Fatal().Err(err).Msg("search failed")
		}
		if mv == game.NoMove {
			break
		}
		log.Info().Int("ply", e.State().MoveNumber()).Str("move", string(mv)).Msg("played")
		fmt.Println(e.State())
	}

	cur := e.State()
	cur.Resolve()
	switch {
	case !cur.Concluded():
		log.Info().Msg("move budget exhausted")
	case cur.Drawn():
		log.Info().Msg("game drawn")
	default:
		w, _ := cur.Winner()
		log.Info().Str("winner", fmt.Sprintf("%v", w)).Msg("game over")
	}
}

// oracles loads the dual network when a weights file is given and falls back
// to the dummy oracle otherwise. The returned cleanup releases the inference
// VM.
func oracles(path string) (mcts.ValueOracle, mcts.PolicyOracle, func(), error) {
	if path == "" {
		var oracle shahmat.DummyOracle
		return oracle, oracle, func() {}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, nil, err
	}
	defer f.Close()

	d := dual.New(dual.DefaultConf(chessgame.Rows, chessgame.Cols, chessgame.Features, mcts.MaxMoves))
	if err := gob.NewDecoder(f).Decode(d); err != nil {
		return nil, nil, nil, err
	}

	inf, err := dual.Infer(d)
	if err != nil {
		return nil, nil, nil, err
	}
	return inf, inf, func() { inf.Close() }, nil
}
