package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/nhoffmann/rusty-minesweeper/internal/game"
)

// Maps known commands to number of arguments
var commandNargs = map[string]int{
	"g": 0, // get state
	"o": 2, // open x y
	"f": 2, // toggle flag x y
	"r": 0, // resign
}

func parseXY(twoStrings []string) (x int, y int, err error) {
	if x, err = strconv.Atoi(twoStrings[0]); err != nil {
		err = fmt.Errorf("first argument must be an int")
		return
	}
	if y, err = strconv.Atoi(twoStrings[1]); err != nil {
		err = fmt.Errorf("second argument must be an int")
		return
	}
	return
}

// ExecuteCommand applies one line of the text protocol to the game
// state. Shared by the websocket endpoint and the terminal client.
func ExecuteCommand(s *game.GameSession, c string) error {
	parts := strings.Split(c, " ")

	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return fmt.Errorf("unknown command")
	}
	if nargs != len(parts)-1 {
		return fmt.Errorf("invalid number of arguments")
	}

	switch parts[0] {
	case "g":
		return nil
	case "o":
		x, y, err := parseXY(parts[1:])
		if err != nil {
			return err
		}
		_, err = s.Open(x, y)
		return err
	case "f":
		x, y, err := parseXY(parts[1:])
		if err != nil {
			return err
		}
		_, err = s.ToggleFlag(x, y)
		return err
	case "r":
		s.Forfeit()
		return nil
	}
	return fmt.Errorf("invalid command")
}

// ConnectWS plays a session over a websocket. Each text message holds
// newline-separated commands; after every message the session is
// persisted and echoed back.
func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	session, state, ok := g.loadGame(w, r)
	if !ok {
		return
	}

	c, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Error("unable to upgrade", "error", err)
		return
	}
	defer c.Close()

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				g.logger.Warn("abnormal ws break", "error", err)
			}
			break
		}
		if mt != websocket.TextMessage {
			break
		}

		text := strings.TrimSpace(string(message))
		for _, line := range strings.Split(text, "\n") {
			if err := ExecuteCommand(state, line); err != nil {
				g.logger.Error("unable to process command", "error", err)
				return
			}
			if state.Over() {
				break
			}
		}

		session, err = g.repo.SaveGame(r.Context(), session, state)
		if err != nil {
			g.logger.Error("unable to update session in db", "error", err)
			return
		}

		if err := c.WriteJSON(NewGameSessionDTO(session, state)); err != nil {
			g.logger.Error("unable to write json", "error", err)
			break
		}
	}
}
