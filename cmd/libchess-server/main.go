// Command libchess-server exposes the position engine over HTTP: legal moves
// and FEN canonicalization as JSON endpoints, perft with a persistent cache,
// and interactive game play over a WebSocket session.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	chess "github.com/fumlig/libchess"
	"github.com/fumlig/libchess/internal/storage"
)

const defaultPort = 8080

// maxPerftDepth bounds the work a single request can ask for.
const maxPerftDepth = 6

type application struct {
	router   *mux.Router
	upgrader websocket.Upgrader
	store    *storage.Store
}

func newApplication(store *storage.Store) *application {
	app := &application{
		router: mux.NewRouter(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		store: store,
	}

	app.router.Use(func(next http.Handler) http.Handler {
		return handlers.LoggingHandler(os.Stdout, next)
	})

	app.router.HandleFunc("/moves", app.movesHandler).Methods(http.MethodGet)
	app.router.HandleFunc("/fen", app.fenHandler).Methods(http.MethodGet)
	app.router.HandleFunc("/perft", app.perftHandler).Methods(http.MethodGet)
	app.router.HandleFunc("/play", app.playHandler)

	return app
}

func (app *application) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	app.router.ServeHTTP(w, r)
}

// positionFromQuery parses the fen query parameter, defaulting to the
// starting position.
func positionFromQuery(r *http.Request) (*chess.Position, error) {
	fen := r.URL.Query().Get("fen")
	if fen == "" {
		fen = "startpos"
	}
	return chess.ParseFEN(fen)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

func (app *application) movesHandler(w http.ResponseWriter, r *http.Request) {
	pos, err := positionFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, struct {
		FEN   string   `json:"fen"`
		Moves []string `json:"moves"`
	}{
		FEN:   pos.FEN(),
		Moves: moveStrings(pos.Moves()),
	})
}

func (app *application) fenHandler(w http.ResponseWriter, r *http.Request) {
	pos, err := positionFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, struct {
		FEN string `json:"fen"`
	}{
		FEN: pos.FEN(),
	})
}

func (app *application) perftHandler(w http.ResponseWriter, r *http.Request) {
	pos, err := positionFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	depth, err := strconv.Atoi(r.URL.Query().Get("depth"))
	if err != nil || depth < 0 || depth > maxPerftDepth {
		http.Error(w, fmt.Sprintf("depth must be between 0 and %d", maxPerftDepth), http.StatusBadRequest)
		return
	}

	cached := false
	var nodes int64

	if app.store != nil {
		if n, found, err := app.store.GetPerft(pos.Hash(), depth); err == nil && found {
			nodes, cached = n, true
		}
	}

	if !cached {
		nodes = chess.Perft(pos, depth)
		if app.store != nil {
			if err := app.store.PutPerft(pos.Hash(), depth, nodes); err != nil {
				log.Printf("write perft store: %v", err)
			}
		}
	}

	writeJSON(w, struct {
		FEN    string `json:"fen"`
		Depth  int    `json:"depth"`
		Nodes  int64  `json:"nodes"`
		Cached bool   `json:"cached"`
	}{
		FEN:    pos.FEN(),
		Depth:  depth,
		Nodes:  nodes,
		Cached: cached,
	})
}

// playRequest is one client message in a play session: either a move in long
// algebraic notation or an operation ("undo").
type playRequest struct {
	Move string `json:"move,omitempty"`
	Op   string `json:"op,omitempty"`
}

// playState reports the game state after each request.
type playState struct {
	FEN      string   `json:"fen"`
	Moves    []string `json:"moves"`
	Check    bool     `json:"check"`
	Terminal bool     `json:"terminal"`
	Score    *float64 `json:"white_score,omitempty"`
	Error    string   `json:"error,omitempty"`
}

func (app *application) playHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := app.upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	defer conn.Close()

	log.Printf("new play session from %s", conn.RemoteAddr())

	pos := chess.NewPosition()
	if fen := r.URL.Query().Get("fen"); fen != "" {
		pos, err = chess.ParseFEN(fen)
		if err != nil {
			conn.WriteJSON(playState{Error: err.Error()})
			return
		}
	}
	game := chess.NewGameFromPosition(pos, nil)

	if err := conn.WriteJSON(gameState(game, "")); err != nil {
		return
	}

	for {
		var req playRequest
		if err := conn.ReadJSON(&req); err != nil {
			log.Printf("play session closed: %v", err)
			return
		}

		errMsg := ""
		switch {
		case req.Op == "undo":
			if game.Len() == 0 {
				errMsg = "no moves to undo"
			} else {
				game.Pop()
			}
		case req.Move != "":
			m, err := game.Position().ParseMove(req.Move)
			if err != nil {
				errMsg = err.Error()
			} else {
				game.Push(m)
			}
		default:
			errMsg = "expected a move or an op"
		}

		if err := conn.WriteJSON(gameState(game, errMsg)); err != nil {
			return
		}
	}
}

func gameState(g *chess.Game, errMsg string) playState {
	state := playState{
		FEN:      g.Position().FEN(),
		Moves:    moveStrings(g.Position().Moves()),
		Check:    g.IsCheck(),
		Terminal: g.IsTerminal(),
		Error:    errMsg,
	}

	if score, ok := g.Score(chess.White); ok {
		state.Score = &score
	}

	return state
}

func moveStrings(moves []chess.Move) []string {
	lans := make([]string, len(moves))
	for i, m := range moves {
		lans[i] = m.String()
	}
	return lans
}

func main() {
	var port uint
	var cacheDir string
	var noCache bool

	flag.UintVar(&port, "port", defaultPort, "port to listen on")
	flag.StringVar(&cacheDir, "cache-dir", "", "perft store directory (defaults to the user cache dir)")
	flag.BoolVar(&noCache, "no-cache", false, "serve perft requests without the persistent store")
	flag.Parse()

	if port == 0 || port > 65535 {
		log.Fatal("invalid port number")
	}

	var store *storage.Store
	if !noCache {
		dir := cacheDir
		if dir == "" {
			var err error
			dir, err = storage.DefaultDir()
			if err != nil {
				log.Fatalf("locate perft store: %v", err)
			}
		}

		var err error
		store, err = storage.Open(dir)
		if err != nil {
			log.Fatalf("open perft store: %v", err)
		}
		defer store.Close()
	}

	log.Printf("listening on :%d", port)
	if err := http.ListenAndServe(fmt.Sprintf(":%d", port), newApplication(store)); err != nil {
		log.Fatal(err)
	}
}
