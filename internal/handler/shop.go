package handler

import (
	"log/slog"
	"math/rand"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/hollyoak/starjar/internal/model"
	"github.com/hollyoak/starjar/internal/ranking"
	"github.com/hollyoak/starjar/internal/store"
)

const defaultExplorationPicks = 3

// ShopHandler serves the personalized reward shop: the catalog ranked for
// one child under the parent's constraints, plus a few exploration picks.
type ShopHandler struct {
	children *store.ChildStore
	catalog  *store.CatalogStore
	settings *store.SettingsStore
	wallets  *store.WalletStore
	now      func() time.Time
	logger   *slog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

func NewShopHandler(children *store.ChildStore, catalog *store.CatalogStore, settings *store.SettingsStore, wallets *store.WalletStore, rng *rand.Rand, now func() time.Time, logger *slog.Logger) *ShopHandler {
	if now == nil {
		now = time.Now
	}
	return &ShopHandler{
		children: children,
		catalog:  catalog,
		settings: settings,
		wallets:  wallets,
		now:      now,
		logger:   logger,
		rng:      rng,
	}
}

type shopResponse struct {
	Items       []model.RewardItem `json:"items"`
	Exploration []model.RewardItem `json:"exploration"`
}

// View handles GET /api/children/{id}/shop.
func (h *ShopHandler) View(w http.ResponseWriter, r *http.Request) {
	childID, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid child id"})
		return
	}

	child, err := h.children.GetByID(childID)
	if err != nil {
		h.logger.Error("get child", "child_id", childID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load child"})
		return
	}
	if child == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "child not found"})
		return
	}

	prefs, err := h.settings.Preferences()
	if err != nil {
		h.logger.Error("get preferences", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load preferences"})
		return
	}

	items, err := h.catalog.List()
	if err != nil {
		h.logger.Error("list catalog", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load catalog"})
		return
	}

	stars := 0
	if wallet, err := h.wallets.GetByChildID(childID); err == nil && wallet != nil {
		stars = wallet.BalanceStars
	}

	ctx := ranking.Context{
		Child:        *child,
		ChildStars:   stars,
		Prefs:        prefs,
		Weights:      model.DefaultWeights(),
		PencePerStar: prefs.PencePerStar,
		Now:          h.now(),
	}
	ranked := ranking.Rank(items, ctx)

	picks := defaultExplorationPicks
	if v := r.URL.Query().Get("explore"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			picks = n
		}
	}

	h.mu.Lock()
	exploration := ranking.Exploration(items, picks, h.rng)
	h.mu.Unlock()

	if ranked == nil {
		ranked = []model.RewardItem{}
	}
	if exploration == nil {
		exploration = []model.RewardItem{}
	}
	writeJSON(w, http.StatusOK, shopResponse{Items: ranked, Exploration: exploration})
}
