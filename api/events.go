package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/commonpot/commonpot-go-node/core/events"
	"github.com/gorilla/mux"
)

type EventView struct {
	Type  string       `json:"type"`
	Value events.Event `json:"value"`
}

type EventsResponse struct {
	Events []EventView `json:"events"`
}

func GetEvents(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(http.StatusOK)

	height, err := strconv.ParseUint(vars["height"], 10, 32)
	if err != nil {
		json.NewEncoder(w).Encode(Response{
			Code: 400,
			Log:  "Invalid height",
		})
		return
	}

	loaded := blockchain.GetEventsDB().LoadEvents(uint32(height))

	result := EventsResponse{Events: make([]EventView, 0, len(loaded))}
	for _, event := range loaded {
		result.Events = append(result.Events, EventView{
			Type:  event.Type(),
			Value: event,
		})
	}

	json.NewEncoder(w).Encode(Response{
		Code:   0,
		Result: result,
	})
}
