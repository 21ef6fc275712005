// Package strategy provides the built-in decision providers: random, hand
// strength heuristic, calling station, interactive console play, and language
// model backed players. All of them implement game.Strategy; the betting
// engine clamps whatever they propose, so none of them needs to be exact
// about legality.
package strategy

import "holdem-arena/internal/game"

func check() (game.ActionResponse, error) {
	return game.ActionResponse{Action: game.Check}, nil
}

func call(amount int) (game.ActionResponse, error) {
	return game.ActionResponse{Action: game.Call, Amount: amount}, nil
}

func fold() (game.ActionResponse, error) {
	return game.ActionResponse{Action: game.Fold}, nil
}

func raise(amount int) (game.ActionResponse, error) {
	return game.ActionResponse{Action: game.Raise, Amount: amount}, nil
}
