package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/commonpot/commonpot-go-node/config"
	"github.com/commonpot/commonpot-go-node/core/ledger"
	"github.com/commonpot/commonpot-go-node/core/state"
)

var blockchain *ledger.Blockchain

// NewRouter builds the read-only JSON API over the given application.
func NewRouter(b *ledger.Blockchain) *mux.Router {
	blockchain = b

	router := mux.NewRouter().StrictSlash(true)

	router.HandleFunc("/status", Status).Methods("GET")
	router.HandleFunc("/balance/{address}", GetBalance).Methods("GET")
	router.HandleFunc("/pot/{address}", GetPot).Methods("GET")
	router.HandleFunc("/pot/{address}/contributor/{contributor}", GetContributor).Methods("GET")
	router.HandleFunc("/events/{height}", GetEvents).Methods("GET")

	return router
}

// RunAPI starts the API server, blocks until it fails.
func RunAPI(b *ledger.Blockchain, cfg *config.Config) error {
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET"},
		AllowCredentials: true,
	})

	return http.ListenAndServe(cfg.APIListenAddress, c.Handler(NewRouter(b)))
}

type Response struct {
	Code   uint32      `json:"code"`
	Result interface{} `json:"result,omitempty"`
	Log    string      `json:"log,omitempty"`
}

// GetStateForRequest resolves the state snapshot to answer from, honoring the
// optional ?height= query parameter.
func GetStateForRequest(r *http.Request) *state.CheckState {
	height, _ := strconv.Atoi(r.URL.Query().Get("height"))

	cState := blockchain.CurrentState()
	if height > 0 {
		if s, err := blockchain.GetStateForHeight(uint64(height)); err == nil {
			cState = s
		}
	}

	return cState
}
