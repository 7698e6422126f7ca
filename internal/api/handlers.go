package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/susu3304/stockbot/internal/stock"
)

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (a *API) handleAllStock(w http.ResponseWriter, r *http.Request) {
	out := make(map[stock.Category]json.RawMessage, len(stock.Categories()))
	for _, c := range stock.Categories() {
		ledger, err := a.store.Load(c)
		if err != nil {
			http.Error(w, "failed to load stock", http.StatusInternalServerError)
			return
		}
		raw, err := json.Marshal(ledger)
		if err != nil {
			http.Error(w, "failed to encode stock", http.StatusInternalServerError)
			return
		}
		out[c] = raw
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

func (a *API) handleCategoryStock(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	category, err := stock.ParseCategory(vars["category"])
	if err != nil {
		http.Error(w, "invalid category", http.StatusBadRequest)
		return
	}

	ledger, err := a.store.Load(category)
	if err != nil {
		http.Error(w, "failed to load stock", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ledger)
}
