package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"hero-chess/internal/game"
)

// Hot-seat terminal match against the rules engine, useful for trying out
// setups without a running server.
func main() {
	g := game.NewGame()
	if err := g.Initialize(
		[]string{"P1", "P2", "H1", "H2", "P3"},
		[]string{"P1", "P2", "H1", "H2", "P3"},
	); err != nil {
		fmt.Fprintln(os.Stderr, "failed to set up game:", err)
		os.Exit(1)
	}

	reader := bufio.NewReader(os.Stdin)
	for g.Status() != game.StatusFinished {
		fmt.Printf("\nTurn: player %s\n", g.CurrentPlayer())
		printBoard(g)
		fmt.Println("Enter a move as name:direction (directions: L R F B FL FR BL BR)")

		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println("\nbye")
			return
		}

		move := strings.TrimSpace(line)
		if move == "" {
			continue
		}

		msg, err := game.ProcessMove(g, g.CurrentPlayer(), move)
		if err != nil {
			fmt.Println(err)
			continue
		}
		fmt.Println(msg)
	}
}

func printBoard(g *game.GameState) {
	for _, row := range g.BoardState() {
		for _, cell := range row {
			if cell == "" {
				cell = "."
			}
			fmt.Printf("%-6s", cell)
		}
		fmt.Println()
	}
}
