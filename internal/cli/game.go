package cli

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mcoot/nrowgame/internal/api/request"
	"github.com/mcoot/nrowgame/internal/api/response"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands against the server",
	}

	cmd.AddCommand(newGameCreateCmd())
	cmd.AddCommand(newGameListCmd())
	cmd.AddCommand(newGameGetCmd())
	cmd.AddCommand(newGameMoveCmd())
	cmd.AddCommand(newGameBotCmd())
	cmd.AddCommand(newGameSuggestCmd())
	cmd.AddCommand(newGameCellCmd())
	cmd.AddCommand(newGameRunCmd())
	cmd.AddCommand(newGameDeleteCmd())

	return cmd
}

func gamePath(id string, parts ...string) string {
	path := "/api/v1/games/" + url.PathEscape(id)
	for _, p := range parts {
		path += "/" + p
	}
	return path
}

// parseCoords parses "<row> <col>" arguments
func parseCoords(rowArg, colArg string) (int, int, error) {
	row, err := strconv.Atoi(rowArg)
	if err != nil {
		return 0, 0, fmt.Errorf("row must be a number: %q", rowArg)
	}
	col, err := strconv.Atoi(colArg)
	if err != nil {
		return 0, 0, fmt.Errorf("col must be a number: %q", colArg)
	}
	return row, col, nil
}

func newGameCreateCmd() *cobra.Command {
	var req request.CreateGameRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new game",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Game
			if err := client.Post(cmd.Context(), "/api/v1/games", req, &result); err != nil {
				return err
			}
			NewOutput(cmd.OutOrStdout(), cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&req.Width, "width", 15, "Board width")
	cmd.Flags().IntVar(&req.Height, "height", 15, "Board height")
	cmd.Flags().IntVar(&req.WinLength, "win-length", 5, "Run length needed to win")
	cmd.Flags().StringSliceVar(&req.Players, "players", []string{"black", "white"}, "Player IDs in turn order")

	return cmd
}

func newGameListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List games, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.GameList
			if err := client.Get(cmd.Context(), "/api/v1/games", &result); err != nil {
				return err
			}
			NewOutput(cmd.OutOrStdout(), cfg.Output).Print(result)
			return nil
		},
	}
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a game and its board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Game
			if err := client.Get(cmd.Context(), gamePath(args[0]), &result); err != nil {
				return err
			}
			NewOutput(cmd.OutOrStdout(), cfg.Output).Print(result)
			return nil
		},
	}
}

func newGameMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <id> <row> <col>",
		Short: "Play a turn for the current player",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			row, col, err := parseCoords(args[1], args[2])
			if err != nil {
				return err
			}

			var result response.TurnResponse
			body := request.PlayTurnRequest{Row: &row, Col: &col}
			if err := client.Post(cmd.Context(), gamePath(args[0], "turns"), body, &result); err != nil {
				return err
			}
			NewOutput(cmd.OutOrStdout(), cfg.Output).Print(result)
			return nil
		},
	}
}

func newGameBotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bot <id>",
		Short: "Let the server's bot play the current player's turn",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.TurnResponse
			if err := client.Post(cmd.Context(), gamePath(args[0], "bot-turn"), nil, &result); err != nil {
				return err
			}
			NewOutput(cmd.OutOrStdout(), cfg.Output).Print(result)
			return nil
		},
	}
}

func newGameSuggestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <id>",
		Short: "Ask the bot for a move without playing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Suggestion
			if err := client.Get(cmd.Context(), gamePath(args[0], "suggestion"), &result); err != nil {
				return err
			}
			NewOutput(cmd.OutOrStdout(), cfg.Output).Print(result)
			return nil
		},
	}
}

func newGameCellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cell <id> <row> <col>",
		Short: "Show who holds a square",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, _, err := parseCoords(args[1], args[2]); err != nil {
				return err
			}
			var result response.Cell
			if err := client.Get(cmd.Context(), gamePath(args[0], "cells", args[1], args[2]), &result); err != nil {
				return err
			}
			NewOutput(cmd.OutOrStdout(), cfg.Output).Print(result)
			return nil
		},
	}
}

func newGameRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <id> <row> <col>",
		Short: "Show the winning run through an occupied square",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, _, err := parseCoords(args[1], args[2]); err != nil {
				return err
			}
			var result response.Run
			if err := client.Get(cmd.Context(), gamePath(args[0], "cells", args[1], args[2], "run"), &result); err != nil {
				return err
			}
			NewOutput(cmd.OutOrStdout(), cfg.Output).Print(result)
			return nil
		},
	}
}

func newGameDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(cmd.Context(), gamePath(args[0])); err != nil {
				return err
			}
			NewOutput(cmd.OutOrStdout(), cfg.Output).PrintMessage("Deleted game " + args[0])
			return nil
		},
	}
}
