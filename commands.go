package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"isolation/agent"
	"isolation/communication"
	"isolation/communication/client"
	"isolation/communication/server"
	"isolation/config"
	"isolation/engine"
	"isolation/experiments"
	"isolation/experiments/metrics"
	"isolation/game"
	"isolation/meta"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	logLevel  string
	logFormat string

	rootCmd = &cobra.Command{
		Use:   "isolation",
		Short: "Game-tree search agents for isolation",
		Long: `Plays isolation with minimax and iterative-deepening alpha-beta agents,
runs tournaments between them, and lets spectators follow the games.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(logLevel, logFormat)
		},
	}

	playFirst     string
	playSecond    string
	playSize      int
	playTimeLimit time.Duration
	playSeed      uint64
	playCmd       = &cobra.Command{
		Use:   "play",
		Short: "Plays a single game and prints every position",
		Long: `Plays a single game between two agents given as algorithm[:evaluator],
for example alphabeta:center or random.`,
		Args: cobra.NoArgs,
		RunE: runPlay,
	}

	configPath  string
	metricsAddr string
	tournament  = &cobra.Command{
		Use:   "tournament",
		Short: "Runs a tournament between the configured agents",
		Args:  cobra.NoArgs,
		RunE:  runTournament,
	}

	watchAddr string
	watchCmd  = &cobra.Command{
		Use:   "watch",
		Short: "Follows the games of a running tournament",
		Args:  cobra.NoArgs,
		RunE:  runWatch,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "trace, debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "console or json")

	playCmd.Flags().StringVar(&playFirst, "first", "alphabeta:improved", "agent moving first")
	playCmd.Flags().StringVar(&playSecond, "second", "minimax:open", "agent moving second")
	playCmd.Flags().IntVar(&playSize, "size", meta.BOARD_WIDTH, "board height and width")
	playCmd.Flags().DurationVar(&playTimeLimit, "time-limit", meta.TIME_LIMIT, "time per move")
	playCmd.Flags().Uint64Var(&playSeed, "seed", 1, "seed of the random agents")

	tournament.Flags().StringVar(&configPath, "config", "", "tournament YAML file, the defaults when empty")
	tournament.Flags().StringVar(&metricsAddr, "metrics-addr", "", "address serving /metrics and spectators, disabled when empty")

	watchCmd.Flags().StringVar(&watchAddr, "addr", "http://localhost:9090", "address of the tournament server")

	rootCmd.AddCommand(playCmd, tournament, watchCmd)
}

// parseAgent reads algorithm[:evaluator]
func parseAgent(name, value string) (config.Agent, error) {
	algorithm, evaluator, _ := strings.Cut(value, ":")
	a := config.Agent{Name: name, Algorithm: algorithm, Evaluator: evaluator}.WithDefaults()
	if err := a.Validate(playTimeLimit); err != nil {
		return config.Agent{}, err
	}
	return a, nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	if playSize < 3 {
		return fmt.Errorf("board size %d is smaller than 3x3", playSize)
	}
	first, err := parseAgent("player1", playFirst)
	if err != nil {
		return err
	}
	second, err := parseAgent("player2", playSecond)
	if err != nil {
		return err
	}
	agent1, err := agent.New(first, playSeed)
	if err != nil {
		return err
	}
	agent2, err := agent.New(second, playSeed+1)
	if err != nil {
		return err
	}

	board := game.NewBoard(first.Name, second.Name, playSize, playSize)
	out := cmd.OutOrStdout()
	e := engine.LocalEngine(board, [2]agent.Agent{agent1, agent2}, playTimeLimit, playSize*playSize).
		Observe(printer{out: out})

	winner, gameMetric, moveMetrics := e.Run()
	fmt.Fprintf(out, "winner: %s (%s) after %d moves in %v\n", winner, gameMetric.Reason, gameMetric.TotalMoves, gameMetric.Duration.Round(time.Millisecond))

	var depth, timeouts int
	for _, mm := range moveMetrics {
		if mm.Player == first.Name {
			depth += mm.Depth
			if mm.TimedOut {
				timeouts++
			}
		}
	}
	log.Debug().Msgf("%s searched %d plies in total with %d timeouts", first.Name, depth, timeouts)
	return nil
}

// printer prints the games of the play command
type printer struct {
	out io.Writer
}

func (p printer) OnMove(update engine.Update) {
	fmt.Fprintf(p.out, "move %d: %s to %v\n%s\n", update.Step, update.Player, update.Move, update.Board)
}

func (p printer) OnGameOver(metrics.GameMetric) {}

func runTournament(cmd *cobra.Command, args []string) error {
	c, err := config.Load(configPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	t := experiments.NewTournament(c)
	g, ctx := errgroup.WithContext(ctx)
	serveCtx, stopServing := context.WithCancel(ctx)

	if metricsAddr != "" {
		exporter := metrics.NewExporter()
		srv := server.New(exporter.Handler())
		t.WithExporter(exporter).WithObserver(srv)
		g.Go(func() error {
			return srv.ListenAndServe(serveCtx, metricsAddr)
		})
	}

	var result experiments.Result
	g.Go(func() error {
		defer stopServing()
		var err error
		result, err = t.Run(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	printStandings(cmd, result)
	return nil
}

func printStandings(cmd *cobra.Command, result experiments.Result) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "agent\twins\tlosses\tdraws\twin rate\n")
	for _, s := range result.Standings {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%.1f%%\n", s.Agent, s.Wins, s.Losses, s.Draws, 100*s.WinRate())
	}
	w.Flush()
	fmt.Fprintf(cmd.OutOrStdout(), "records of run %s written to %s\n", result.RunID, result.Dir)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	c := client.NewClient(watchAddr)
	if latest, ok, err := c.Latest(ctx); err != nil {
		return err
	} else if ok {
		fmt.Fprintf(out, "latest position:\n%s\n", latest.Board.Text)
	}

	err := c.Watch(ctx, func(msg communication.Message) error {
		return printMessage(out, msg)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func printMessage(out io.Writer, msg communication.Message) error {
	switch msg.Type {
	case communication.MoveMessage:
		var move communication.MovePayload
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return err
		}
		fmt.Fprintf(out, "move %d: %s to (%d, %d)\n%s\n", move.Step, move.Player, move.Row, move.Col, move.Board.Text)
	case communication.GameOverMessage:
		var over communication.GameOverPayload
		if err := json.Unmarshal(msg.Payload, &over); err != nil {
			return err
		}
		fmt.Fprintf(out, "%s vs %s: %s wins (%s) after %d moves\n", over.Players[0], over.Players[1], over.Winner, over.Reason, over.TotalMoves)
	default:
		log.Debug().Msgf("ignoring %s message", msg.Type)
	}
	return nil
}
