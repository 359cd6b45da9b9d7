package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"

	"cashflow/board"
	"cashflow/cards"
	"cashflow/config"
	"cashflow/server"
	"cashflow/store"
)

func main() {
	cfg, err := config.LoadServer()
	if err != nil {
		log.Fatal(err.Error())
	}

	// fail fast on bad files; each game reloads its own copies later
	if _, err := config.LoadCards(cfg.CardsFile); err != nil {
		log.Fatal(err.Error())
	}
	if _, err := config.LoadBoard(cfg.BoardFile); err != nil {
		log.Fatal(err.Error())
	}

	s := server.NewServer(server.Opts{
		Store: store.NewInMemoryGameStore(),
		NewBoard: func() *board.Board {
			b, err := config.LoadBoard(cfg.BoardFile)
			if err != nil {
				log.Println(err.Error())
				return board.New(board.Layout{})
			}
			return b
		},
		NewCatalog: func() *cards.Catalog {
			c, err := config.LoadCards(cfg.CardsFile)
			if err != nil {
				log.Println(err.Error())
				return cards.DefaultCatalog()
			}
			return c
		},
		DebugDice: cfg.DebugDice,
	})

	log.Printf("Listening on %s...", cfg.Addr)
	log.Fatal(http.ListenAndServe(cfg.Addr, handlers.LoggingHandler(os.Stdout, s)))
}
