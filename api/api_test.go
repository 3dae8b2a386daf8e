package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/commonpot/commonpot-go-node/cmd/utils"
	"github.com/commonpot/commonpot-go-node/config"
	"github.com/commonpot/commonpot-go-node/core/ledger"
	"github.com/commonpot/commonpot-go-node/core/types"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	abciTypes "github.com/tendermint/tendermint/abci/types"
	tmjson "github.com/tendermint/tendermint/libs/json"
)

var (
	testOwner       = types.Address{1}
	testContributor = types.Address{2}
	testPotAddress  = types.Address{3}
)

func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.DBBackend = "memdb"
	cfg.StateCacheSize = 1024
	cfg.KeepLastStates = 10

	app := ledger.NewBlockchain(utils.NewInMemoryStorage(), cfg, nil)
	t.Cleanup(func() { app.Close() })

	genesis := types.AppState{
		Accounts: []types.Account{
			{Address: testOwner, Balance: "1000", Nonce: 5},
		},
		Pots: []types.Pot{
			{
				Address:              testPotAddress,
				Owner:                testOwner,
				Name:                 "trip",
				Target:               "500",
				TotalContributed:     "150",
				UnlockTime:           100,
				RequiredApprovals:    2,
				ApprovedContributors: []types.Address{testOwner, testContributor},
				ReleaseApprovals:     []types.Address{testOwner},
			},
		},
		Contributions: []types.Contribution{
			{Pot: testPotAddress, Contributor: testContributor, Total: "150", Count: 2},
		},
	}

	genesisBytes, err := tmjson.Marshal(genesis)
	require.NoError(t, err)

	app.InitChain(abciTypes.RequestInitChain{
		InitialHeight: 1,
		AppStateBytes: genesisBytes,
	})

	return NewRouter(app)
}

func serve(t *testing.T, router *mux.Router, url string) Response {
	t.Helper()

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, url, nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	var response Response
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))

	return response
}

func resultAsMap(t *testing.T, response Response) map[string]interface{} {
	t.Helper()

	result, ok := response.Result.(map[string]interface{})
	require.True(t, ok, "result is not an object")

	return result
}

func TestStatusEndpoint(t *testing.T) {
	router := newTestRouter(t)

	response := serve(t, router, "/status")
	require.EqualValues(t, 0, response.Code)

	result := resultAsMap(t, response)
	require.NotEmpty(t, result["version"])
}

func TestBalanceEndpoint(t *testing.T) {
	router := newTestRouter(t)

	response := serve(t, router, "/balance/"+testOwner.String())
	require.EqualValues(t, 0, response.Code)

	result := resultAsMap(t, response)
	require.Equal(t, "1000", result["balance"])
	require.EqualValues(t, 5, result["transaction_count"])
}

func TestPotEndpoint(t *testing.T) {
	router := newTestRouter(t)

	response := serve(t, router, "/pot/"+testPotAddress.String())
	require.EqualValues(t, 0, response.Code)

	result := resultAsMap(t, response)
	require.Equal(t, "trip", result["name"])
	require.Equal(t, "500", result["target"])
	require.Equal(t, "150", result["total_contributed"])
	require.EqualValues(t, 100, result["unlock_time"])
	require.EqualValues(t, 2, result["required_approvals"])
	require.Equal(t, false, result["released"])
	require.Len(t, result["approved_contributors"], 2)
	require.Len(t, result["release_approvals"], 1)
}

func TestPotEndpointNotFound(t *testing.T) {
	router := newTestRouter(t)

	response := serve(t, router, "/pot/"+types.Address{7}.String())
	require.EqualValues(t, 404, response.Code)
	require.Equal(t, "Pot not found", response.Log)
}

func TestContributorEndpoint(t *testing.T) {
	router := newTestRouter(t)

	response := serve(t, router, "/pot/"+testPotAddress.String()+"/contributor/"+testContributor.String())
	require.EqualValues(t, 0, response.Code)

	result := resultAsMap(t, response)
	require.Equal(t, true, result["approved"])
	require.Equal(t, false, result["signed"])
	require.Equal(t, "150", result["total"])
	require.EqualValues(t, 2, result["count"])
}

func TestEventsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	response := serve(t, router, "/events/1")
	require.EqualValues(t, 0, response.Code)

	result := resultAsMap(t, response)
	require.Len(t, result["events"], 0)
}
