package handler

import (
	"log/slog"
	"net/http"

	"github.com/hollyoak/starjar/internal/model"
	"github.com/hollyoak/starjar/internal/store"
)

// WalletHandler exposes wallet balances, ledgers, and the family leaderboard.
type WalletHandler struct {
	children *store.ChildStore
	wallets  *store.WalletStore
	logger   *slog.Logger
}

func NewWalletHandler(children *store.ChildStore, wallets *store.WalletStore, logger *slog.Logger) *WalletHandler {
	return &WalletHandler{children: children, wallets: wallets, logger: logger}
}

type walletResponse struct {
	Wallet       *model.Wallet       `json:"wallet"`
	Transactions []model.Transaction `json:"transactions"`
}

// Get handles GET /api/children/{id}/wallet.
func (h *WalletHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	wallet, err := h.wallets.EnsureWallet(childID)
	if err != nil {
		h.logger.Error("ensure wallet", "child_id", childID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load wallet"})
		return
	}

	txns, err := h.wallets.ListTransactions(wallet.ID)
	if err != nil {
		h.logger.Error("list transactions", "wallet_id", wallet.ID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load transactions"})
		return
	}
	if txns == nil {
		txns = []model.Transaction{}
	}

	writeJSON(w, http.StatusOK, walletResponse{Wallet: wallet, Transactions: txns})
}

// Leaderboard handles GET /api/leaderboard.
func (h *WalletHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	balances, err := h.wallets.ListBalances()
	if err != nil {
		h.logger.Error("list balances", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load leaderboard"})
		return
	}
	if balances == nil {
		balances = []store.Balance{}
	}
	writeJSON(w, http.StatusOK, balances)
}
