package cli

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/nrowgame/internal/api/response"
	"github.com/mcoot/nrowgame/internal/dependencies/random"
	"github.com/mcoot/nrowgame/internal/model"
	"github.com/mcoot/nrowgame/internal/services/bot"
)

type playOptions struct {
	width     int
	height    int
	winLength int
	players   []string
	bots      []string
	strategy  string
	maxSide   int
}

func newPlayCmd() *cobra.Command {
	var opts playOptions

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a local game in the terminal",
		Long: `Play a hot-seat game without a server. Each human turn reads a line of
the form "<row> <col>" from stdin. Players named with --bot are moved by the
bot. Enter "quit" to stop.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var strategy bot.Strategy
			switch opts.strategy {
			case model.BotStrategyGreedy:
				strategy = bot.NewGreedyStrategy(random.New())
			case model.BotStrategyRandom:
				strategy = bot.NewRandomStrategy(random.New())
			default:
				return fmt.Errorf("invalid strategy %q: must be one of %s",
					opts.strategy, strings.Join(model.ValidBotStrategies(), ", "))
			}
			return runPlay(cmd.InOrStdin(), cmd.OutOrStdout(), opts, strategy)
		},
	}

	cmd.Flags().IntVar(&opts.width, "width", 15, "Board width")
	cmd.Flags().IntVar(&opts.height, "height", 15, "Board height")
	cmd.Flags().IntVar(&opts.winLength, "win-length", 5, "Run length needed to win")
	cmd.Flags().StringSliceVar(&opts.players, "players", []string{"x", "o"}, "Player IDs in turn order")
	cmd.Flags().StringSliceVar(&opts.bots, "bot", nil, "Player IDs moved by the bot")
	cmd.Flags().StringVar(&opts.strategy, "strategy", model.BotStrategyGreedy, "Bot strategy: greedy, random")
	cmd.Flags().IntVar(&opts.maxSide, "max-side", cfg.MaxBoardSide, "Longest allowed board side (env: NROW_MAX_BOARD_SIDE)")

	return cmd
}

// runPlay drives one game until it ends, the player quits or input runs out
func runPlay(in io.Reader, out io.Writer, opts playOptions, strategy bot.Strategy) error {
	if err := model.CheckBoardSide(opts.width, opts.height, opts.maxSide); err != nil {
		return err
	}
	game, err := model.NewGame(opts.width, opts.height, opts.winLength, model.NewPlayers(opts.players...))
	if err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	render := func() {
		printBoard(out, response.BoardFromModel(game.Board), response.PositionsFromModel(game.WinningCells))
	}
	render()

	for !game.IsOver() {
		player := game.CurrentPlayer()

		var pos model.Position
		if slices.Contains(opts.bots, string(player.ID)) {
			var ok bool
			if pos, ok = strategy.ChoosePosition(game); !ok {
				return nil
			}
			fmt.Fprintf(out, "%s plays %s\n", player, pos)
		} else {
			fmt.Fprintf(out, "%s> ", player)
			if !scanner.Scan() {
				fmt.Fprintln(out)
				return scanner.Err()
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "quit" || line == "q" {
				return nil
			}
			fields := strings.Fields(line)
			if len(fields) != 2 {
				fmt.Fprintln(out, `Enter a move as "<row> <col>".`)
				continue
			}
			row, col, err := parseCoords(fields[0], fields[1])
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			pos = model.Position{Row: row, Col: col}
		}

		outcome := game.PlayTurn(pos)
		fmt.Fprintln(out, outcome)
		if outcome.Kind != model.OutcomeInvalid {
			render()
		}
	}
	return nil
}
