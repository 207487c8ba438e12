package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"strconv"
	"strings"

	"github.com/debater-coder/wumpus/game"
	"github.com/debater-coder/wumpus/models"
)

// console runs the line-oriented game loop
type console struct {
	caves  []models.Cave
	rng    *rand.Rand
	debug  bool
	logger *slog.Logger

	in  *bufio.Scanner
	out io.Writer
}

// run plays games until the player declines another or input runs out
func (c *console) run(in io.Reader, out io.Writer) error {
	c.in = bufio.NewScanner(in)
	c.out = out
	if c.logger == nil {
		c.logger = discard
	}

	player, err := c.newGame()
	if err != nil {
		return err
	}

	for {
		if c.debug {
			fmt.Fprintln(c.out, "Level:", player.Level())
		}

		win, err := c.play(player)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if win {
			wumpus, err := player.Level().WumpusLocation()
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "AHA! You got the Wumpus. He was in room %d\n", wumpus)
			fmt.Fprintln(c.out, "Wumpus will get you next time!")
		} else {
			fmt.Fprintln(c.out, "You lost!")
		}

		again, err := c.yesNo("Play again (Y-N)? ")
		if err != nil || !again {
			return ignoreEOF(err)
		}
		same, err := c.yesNo("Same setup (Y-N)? ")
		if err != nil {
			return ignoreEOF(err)
		}
		if same {
			err = player.Respawn()
		} else {
			player, err = c.newGame()
		}
		if err != nil {
			return err
		}
	}
}

func (c *console) newGame() (*game.PlayerController, error) {
	level, err := game.NewLevel(c.caves, game.WithRand(c.rng), game.WithLogger(c.logger))
	if err != nil {
		return nil, err
	}
	return game.NewPlayerController(level, game.WithMessageHook(func(text string) {
		fmt.Fprintln(c.out, text)
	}))
}

// play takes turns until the player dies or wins, and reports a win
func (c *console) play(player *game.PlayerController) (bool, error) {
	for player.Alive() && !player.Won() {
		if err := c.turn(player); err != nil {
			return false, err
		}
	}
	return player.Won(), nil
}

func (c *console) turn(player *game.PlayerController) error {
	for {
		cave := player.Cave()
		fmt.Fprintf(c.out, "You are in room %d.\n", cave.Location)
		nearby, err := player.NearbyMessages()
		if err != nil {
			return err
		}
		for _, msg := range nearby {
			fmt.Fprintf(c.out, "    %s\n", msg)
		}
		fmt.Fprintf(c.out, "Tunnels lead to %s.\n", joinInts(cave.Tunnels))

		action, err := c.prompt("Shoot or move (S-M)? ")
		if err != nil {
			return err
		}

		switch strings.ToLower(firstRune(action)) {
		case "s":
			rooms, err := c.prompt("No. of rooms? ")
			if err != nil {
				return err
			}
			n, convErr := strconv.Atoi(rooms)
			if convErr != nil {
				fmt.Fprintln(c.out, "Can't do that!")
				continue
			}
			if n < 1 || n > game.MaxArrowRooms {
				fmt.Fprintln(c.out, "Crooked arrows aren't that crooked!")
				continue
			}

			aimed := make([]int, 0, n)
			for i := 0; i < n; i++ {
				location, err := c.location(player.Level(), "Room #? ")
				if err != nil {
					return err
				}
				aimed = append(aimed, location)
			}
			path, err := game.CrookedPath(player.Level(), c.rng, aimed)
			if err != nil {
				return err
			}
			_, err = player.Shoot(path)
			return err

		case "m":
			location, err := c.location(player.Level(), "Move to? ")
			if err != nil {
				return err
			}
			return player.Move(location)

		default:
			fmt.Fprintln(c.out, "Can't do that!")
		}
	}
}

// location asks until it gets a cave that exists
func (c *console) location(level *game.Level, msg string) (int, error) {
	for {
		answer, err := c.prompt(msg)
		if err != nil {
			return 0, err
		}
		if location, convErr := strconv.Atoi(answer); convErr == nil {
			if _, err := level.Cave(location); err == nil {
				return location, nil
			}
		}
		fmt.Fprintln(c.out, "Can't go there!")
	}
}

func (c *console) yesNo(msg string) (bool, error) {
	answer, err := c.prompt(msg)
	if err != nil {
		return false, err
	}
	return strings.ToLower(firstRune(answer)) != "n", nil
}

func (c *console) prompt(msg string) (string, error) {
	fmt.Fprint(c.out, msg)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}

func firstRune(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}

func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
