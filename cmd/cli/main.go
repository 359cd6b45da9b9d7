package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"cashflow/board"
	"cashflow/game"
	"cashflow/ledger"
)

// A hot-seat game on one terminal. Players take turns at the same
// keyboard; the engine enforces whose turn it is.
func main() {
	in := bufio.NewScanner(os.Stdin)

	fmt.Println("Player names (comma separated, 2 to 6):")
	if !in.Scan() {
		return
	}

	var players []*ledger.Ledger
	for i, name := range strings.Split(in.Text(), ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		players = append(players, ledger.FromProfession(name, ledger.Professions[i%len(ledger.Professions)]))
	}

	eng, err := game.New(game.Opts{Players: players})
	if err != nil {
		log.Fatal(err.Error())
	}

	detail, err := eng.Start()
	if err != nil {
		log.Fatal(err.Error())
	}
	fmt.Println(detail)

	for eng.Phase() == game.Playing {
		playTurn(eng, in)
	}

	if winner := eng.Winner(); winner != nil {
		fmt.Printf("%s wins!\n", winner.Name)
	}
}

func playTurn(eng *game.Engine, in *bufio.Scanner) {
	p := eng.CurrentPlayer()
	fmt.Printf("\n%s | cash %.2f | passive %.2f/%.2f | %s ring position %d\n",
		p.Name, p.Cash, p.PassiveIncome, p.Expenses, p.Layer, p.Position)
	fmt.Println("press enter to roll")
	in.Scan()

	value, err := eng.RollDice()
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	fmt.Printf("rolled a %d\n", value)

	detail, err := eng.Move()
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	fmt.Println(detail)

	for eng.Phase() == game.Playing && eng.Turn() != game.PhaseRollDice {
		switch eng.Turn() {
		case game.PhaseCardDecision:
			handleCard(eng, in)
		case game.PhaseMarket:
			handleMarket(eng, in)
		case game.PhaseLayerTransition:
			handleTransition(eng, in)
		case game.PhaseEndTurn:
			detail, err := eng.EndTurn()
			if err != nil {
				fmt.Println(err.Error())
				return
			}
			fmt.Println(detail)
		}
	}
}

func handleCard(eng *game.Engine, in *bufio.Scanner) {
	card := eng.PendingCard()
	fmt.Printf("card: %s (%s)\n%s\n", card.Name(), card.Type(), card.Description())
	fmt.Println("buy or pass? (for shares: buy <count>)")
	if !in.Scan() {
		return
	}

	fields := strings.Fields(in.Text())
	decision := "pass"
	shares := 0
	if len(fields) > 0 {
		decision = strings.ToLower(fields[0])
	}
	if len(fields) > 1 {
		shares, _ = strconv.Atoi(fields[1])
	}

	detail, err := eng.HandleCardDecision(decision, shares)
	if err != nil {
		fmt.Println(err.Error())
		if detail == "" {
			return
		}
	}
	if detail != "" {
		fmt.Println(detail)
	}
}

func handleMarket(eng *game.Engine, in *bufio.Scanner) {
	p := eng.CurrentPlayer()
	fmt.Println("market is open, your assets:")
	for i, a := range p.Assets {
		fmt.Printf("  [%d] %s (cost %.2f, income %.2f)\n", i, a.Name, a.Cost, a.PassiveIncome)
	}
	fmt.Println("sellbank <asset> <price>, sellplayer <asset> <buyer> <price>, or exit")
	if !in.Scan() {
		return
	}

	fields := strings.Fields(in.Text())
	if len(fields) == 0 {
		return
	}

	var detail string
	var err error

	switch strings.ToLower(fields[0]) {
	case "sellbank":
		if len(fields) < 3 {
			fmt.Println("usage: sellbank <asset> <price>")
			return
		}
		asset, _ := strconv.Atoi(fields[1])
		price, _ := strconv.ParseFloat(fields[2], 64)
		detail, err = eng.SellToBank(asset, price)
	case "sellplayer":
		if len(fields) < 4 {
			fmt.Println("usage: sellplayer <asset> <buyer> <price>")
			return
		}
		asset, _ := strconv.Atoi(fields[1])
		buyer, _ := strconv.Atoi(fields[2])
		price, _ := strconv.ParseFloat(fields[3], 64)
		detail, err = eng.SellToPlayer(asset, buyer, price)
	default:
		detail, err = eng.ExitMarket()
	}

	if err != nil {
		fmt.Println(err.Error())
		return
	}
	fmt.Println(detail)
}

func handleTransition(eng *game.Engine, in *bufio.Scanner) {
	p := eng.CurrentPlayer()
	sq, _ := eng.Board().GetSquare(p.Position, p.Layer)

	target := sq.TargetLayer
	targetPosition := -1

	if sq.ChoosesTarget() {
		target = board.Middle
		fmt.Printf("choose a middle ring position (0-%d):\n", eng.Board().Size(board.Middle)-1)
		if in.Scan() {
			targetPosition, _ = strconv.Atoi(strings.TrimSpace(in.Text()))
		}
	} else {
		fmt.Printf("transition to the %s ring? (enter to accept, skip to stay)\n", target)
		if in.Scan() && strings.TrimSpace(in.Text()) == "skip" {
			detail, err := eng.EndTurn()
			if err != nil {
				fmt.Println(err.Error())
				return
			}
			fmt.Println(detail)
			return
		}
	}

	detail, err := eng.HandleLayerTransition(target, targetPosition)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	fmt.Println(detail)
}
