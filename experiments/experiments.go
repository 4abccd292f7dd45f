package experiments

import (
	"context"
	"fmt"
	"isolation/agent"
	"isolation/config"
	"isolation/engine"
	"isolation/experiments/metrics"
	"isolation/game"
	"sort"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

type Standing struct {
	Agent  string
	Wins   int
	Losses int
	Draws  int
}

func (s Standing) Games() int {
	return s.Wins + s.Losses + s.Draws
}

func (s Standing) WinRate() float64 {
	if s.Games() == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Games())
}

type Result struct {
	RunID     string
	Dir       string // Where the records were written
	Games     []metrics.GameRecord
	Moves     []metrics.MoveRecord
	Standings []Standing // Best win rate first
}

// Tournament plays every matchup of a configuration. Each matchup plays
// config.Games openings, and every opening is played from both seats.
type Tournament struct {
	config   config.Config
	exporter *metrics.Exporter
	observer engine.Observer
}

func NewTournament(c config.Config) *Tournament {
	return &Tournament{config: c}
}

func (t *Tournament) WithExporter(exporter *metrics.Exporter) *Tournament {
	t.exporter = exporter
	return t
}

// WithObserver follows every game. Games run concurrently, so the observer
// must be safe for concurrent use.
func (t *Tournament) WithObserver(observer engine.Observer) *Tournament {
	t.observer = observer
	return t
}

type job struct {
	id      int
	first   metrics.AgentConfig
	second  metrics.AgentConfig
	opening []game.Move
	seed    uint64
}

type played struct {
	game  metrics.GameMetric
	moves []metrics.MoveMetric
}

func (t *Tournament) Run(ctx context.Context) (Result, error) {
	if err := t.config.Validate(); err != nil {
		return Result{}, fmt.Errorf("invalid config: %w", err)
	}

	result := Result{RunID: uuid.New().String()}
	configs := t.agentConfigs()
	jobs, err := t.schedule(configs)
	if err != nil {
		return result, err
	}

	log.Info().Msgf("starting %s tournament %s: %d games between %d agents", t.config.Name, result.RunID, len(jobs), len(configs))

	outcomes := make([]played, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(t.config.Workers)
	for i, j := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			outcome, err := t.play(j)
			if err != nil {
				return fmt.Errorf("game %d: %w", j.id, err)
			}
			outcomes[i] = outcome
			log.Info().Msgf("completed game %d of %d: %s vs %s, winner %q (%s)",
				j.id, len(jobs), j.first.Name, j.second.Name, outcome.game.Winner, outcome.game.Reason)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return result, err
	}

	for i, j := range jobs {
		result.Games = append(result.Games, metrics.GameRecord{
			ID:         j.id,
			Agent1:     j.first.ID,
			Agent2:     j.second.ID,
			GameMetric: outcomes[i].game,
		})
		for _, mm := range outcomes[i].moves {
			result.Moves = append(result.Moves, metrics.MoveRecord{Game: j.id, MoveMetric: mm})
		}
	}
	result.Standings = standings(configs, result.Games)

	log.Info().Msgf("completed %s tournament %s", t.config.Name, result.RunID)

	result.Dir, err = t.store(configs, result)
	return result, err
}

func (t *Tournament) agentConfigs() []metrics.AgentConfig {
	configs := make([]metrics.AgentConfig, len(t.config.Agents))
	for i, a := range t.config.Agents {
		configs[i] = metrics.AgentConfig{ID: i + 1, Agent: a}
	}
	return configs
}

// schedule lays out the games. Both seat orders of a matchup share their
// random opening, so neither agent is favoured by the opening.
func (t *Tournament) schedule(configs []metrics.AgentConfig) ([]job, error) {
	byName := make(map[string]metrics.AgentConfig, len(configs))
	for _, c := range configs {
		byName[c.Name] = c
	}

	rng := rand.New(rand.NewSource(t.config.Seed))
	var jobs []job
	for _, pair := range t.config.Pairs() {
		a, ok := byName[pair[0]]
		if !ok {
			return nil, fmt.Errorf("unknown agent %q", pair[0])
		}
		b, ok := byName[pair[1]]
		if !ok {
			return nil, fmt.Errorf("unknown agent %q", pair[1])
		}

		for i := 0; i < t.config.Games; i++ {
			opening := t.opening(rng)
			for _, seats := range [][2]metrics.AgentConfig{{a, b}, {b, a}} {
				jobs = append(jobs, job{
					id:      len(jobs) + 1,
					first:   seats[0],
					second:  seats[1],
					opening: opening,
					seed:    rng.Uint64(),
				})
			}
		}
	}
	return jobs, nil
}

// opening picks the first random moves of a game
func (t *Tournament) opening(rng *rand.Rand) []game.Move {
	board := game.NewBoard("first", "second", t.config.Board.Height, t.config.Board.Width)
	moves := make([]game.Move, 0, t.config.RandomOpenings)
	for i := 0; i < t.config.RandomOpenings; i++ {
		legal := board.LegalMoves()
		move := legal[rng.Intn(len(legal))]
		board.Apply(move)
		moves = append(moves, move)
	}
	return moves
}

func (t *Tournament) play(j job) (played, error) {
	first, err := agent.New(j.first.Agent, j.seed)
	if err != nil {
		return played{}, err
	}
	second, err := agent.New(j.second.Agent, j.seed+1)
	if err != nil {
		return played{}, err
	}

	board := game.NewBoard(j.first.Name, j.second.Name, t.config.Board.Height, t.config.Board.Width)
	for _, move := range j.opening {
		board.Apply(move)
	}

	e := engine.LocalEngine(board, [2]agent.Agent{first, second}, t.config.TimeLimit, t.config.MaxMoves)
	if t.observer != nil {
		e.Observe(t.observer)
	}
	_, gameMetric, moveMetrics := e.Run()

	if t.exporter != nil {
		t.exporter.Observe(gameMetric, moveMetrics)
	}
	return played{game: gameMetric, moves: moveMetrics}, nil
}

func standings(configs []metrics.AgentConfig, games []metrics.GameRecord) []Standing {
	byAgent := make(map[string]*Standing, len(configs))
	for _, c := range configs {
		byAgent[c.Name] = &Standing{Agent: c.Name}
	}

	for _, g := range games {
		for _, player := range g.Players {
			s := byAgent[player]
			switch g.Winner {
			case "":
				s.Draws++
			case player:
				s.Wins++
			default:
				s.Losses++
			}
		}
	}

	var result []Standing
	for _, c := range configs {
		if s := byAgent[c.Name]; s.Games() > 0 {
			result = append(result, *s)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].WinRate() > result[j].WinRate()
	})
	return result
}

func (t *Tournament) store(configs []metrics.AgentConfig, result Result) (string, error) {
	writer, err := metrics.NewWriter(t.config.OutputDir, t.config.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteAgentConfigs(configs); err != nil {
		return writer.Dir(), fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(result.Games); err != nil {
		return writer.Dir(), fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(result.Moves); err != nil {
		return writer.Dir(), fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	return writer.Dir(), nil
}
