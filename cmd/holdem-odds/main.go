// Command holdem-odds computes exact or progressively-refined Texas
// Hold'em equity for a set of seat hands against an optional partial
// board.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/holdem-odds/internal/card"
	"github.com/lox/holdem-odds/internal/odds"
)

type CLI struct {
	Hands    []string `arg:"" help:"Seat hands, e.g. 'AcAd KcKd' (space separated, quoted)" required:"true"`
	Board    string   `short:"b" help:"Community board cards, e.g. 'Td7s8h'"`
	Division int      `short:"d" help:"Stratum count for the zero-board case (0 = auto: 32 with no board, 1 otherwise)"`
	Workers  int      `short:"w" help:"Worker goroutines (0 = max(1, CPUs-1))"`
	Quiet    bool     `short:"q" help:"Suppress progress output"`
	Config   string   `help:"Optional HCL config file for division/workers defaults"`
}

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	handStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	winStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	tieStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	percentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func main() {
	var cli CLI
	kctx := kong.Parse(&cli)

	logger := log.NewWithOptions(os.Stderr, log.Options{Level: log.WarnLevel})
	if !cli.Quiet {
		logger.SetLevel(log.InfoLevel)
	}

	seats, table, err := parseInputs(cli.Hands, cli.Board)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		kctx.Exit(2)
		return
	}

	opts := odds.Options{Division: cli.Division, WorkerCount: cli.Workers}
	if cli.Config != "" {
		fileCfg, err := loadFileConfig(cli.Config)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			kctx.Exit(2)
			return
		}
		if opts.Division == 0 {
			opts.Division = fileCfg.Odds.Division
		}
		if opts.WorkerCount == 0 {
			opts.WorkerCount = fileCfg.Odds.Workers
		}
	}

	if !cli.Quiet {
		opts.ProgressSink = func(fraction float64, status string) {
			logger.Infof("%s: %.1f%%", status, fraction*100)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	start := time.Now()
	result, err := odds.ComputeOdds(ctx, seats, table, opts)
	elapsed := time.Since(start)

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		kctx.Exit(2)
		return
	}

	if !result.Completed {
		fmt.Fprintln(os.Stderr, "Interrupted")
		displayResults(seats, table, result, elapsed)
		kctx.Exit(130)
		return
	}

	displayResults(seats, table, result, elapsed)
}

func parseInputs(handStrings []string, boardString string) ([][]card.Card, []card.Card, error) {
	seats := make([][]card.Card, 0, len(handStrings))
	for i, handStr := range handStrings {
		cards, err := card.ParseCards(strings.TrimSpace(handStr))
		if err != nil {
			return nil, nil, fmt.Errorf("hand %d: %w", i+1, err)
		}
		seats = append(seats, cards)
	}

	var table []card.Card
	if boardString != "" {
		var err error
		table, err = card.ParseCards(strings.TrimSpace(boardString))
		if err != nil {
			return nil, nil, fmt.Errorf("board: %w", err)
		}
	}

	return seats, table, nil
}

func displayResults(seats [][]card.Card, table []card.Card, result odds.Result, elapsed time.Duration) {
	if len(table) > 0 {
		fmt.Printf("%s\n", headerStyle.Render("board"))
		fmt.Printf("%s\n\n", formatCards(table))
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		headerStyle.Render("hand"),
		headerStyle.Render("win"),
		headerStyle.Render("tie"),
		headerStyle.Render("equity"))

	n := float64(len(seats))
	for i, seat := range seats {
		equity := result.WinPct[i] + result.TiePct[i]/n
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			handStyle.Render(formatCards(seat)),
			winStyle.Render(fmt.Sprintf("%.2f%%", result.WinPct[i])),
			tieStyle.Render(fmt.Sprintf("%.2f%%", result.TiePct[i])),
			percentStyle.Render(fmt.Sprintf("%.2f%%", equity)))
	}
	w.Flush()

	fmt.Printf("\n%d boards in %v\n", result.BoardsCounted, elapsed.Truncate(time.Millisecond))
}

func formatCards(cards []card.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
