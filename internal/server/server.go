package server

import (
	"database/sql"
	"log/slog"
	"math/rand"
	"net/http"
	"time"

	"github.com/hollyoak/starjar/internal/bonus"
	"github.com/hollyoak/starjar/internal/handler"
	"github.com/hollyoak/starjar/internal/logging"
	"github.com/hollyoak/starjar/internal/middleware"
	"github.com/hollyoak/starjar/internal/store"
	"github.com/hollyoak/starjar/internal/websocket"
)

// Server wires the stores, bonus engine, websocket hub, and HTTP handlers
// into one routable unit.
type Server struct {
	hub    *websocket.Hub
	logger *slog.Logger

	shop        *handler.ShopHandler
	completions *handler.CompletionHandler
	wallets     *handler.WalletHandler
}

func New(db *sql.DB, logger *slog.Logger) *Server {
	children := store.NewChildStore(db)
	catalog := store.NewCatalogStore(db)
	completions := store.NewCompletionStore(db)
	settings := store.NewSettingsStore(db)
	wallets := store.NewWalletStore(db)

	hub := websocket.NewHub(logging.Component(logger, "websocket"))

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	engine := bonus.NewEngine(settings, children, completions, wallets, rng, time.Now, logging.Component(logger, "bonus"))

	shopRng := rand.New(rand.NewSource(time.Now().UnixNano() + 1))

	return &Server{
		hub:         hub,
		logger:      logger,
		shop:        handler.NewShopHandler(children, catalog, settings, wallets, shopRng, time.Now, logging.Component(logger, "shop")),
		completions: handler.NewCompletionHandler(completions, engine, hub, logging.Component(logger, "completions")),
		wallets:     handler.NewWalletHandler(children, wallets, logging.Component(logger, "wallets")),
	}
}

// Router builds the HTTP routing table with request logging applied.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	mux.Handle("GET /ws", websocket.Handler(s.hub))

	mux.HandleFunc("GET /api/children/{id}/shop", s.shop.View)
	mux.HandleFunc("GET /api/children/{id}/wallet", s.wallets.Get)
	mux.HandleFunc("GET /api/leaderboard", s.wallets.Leaderboard)
	mux.HandleFunc("POST /api/completions", s.completions.Record)
	mux.HandleFunc("POST /api/completions/{id}/approve", s.completions.Approve)

	return middleware.RequestLogger(s.logger)(mux)
}
