package rest_test

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-ledger-sync/internal/api/middleware"
	"github.com/feral-file/ff-ledger-sync/internal/api/rest"
	"github.com/feral-file/ff-ledger-sync/internal/api/shared/dto"
	"github.com/feral-file/ff-ledger-sync/internal/api/shared/executor"
	"github.com/feral-file/ff-ledger-sync/internal/mocks"
	"github.com/feral-file/ff-ledger-sync/internal/store"
)

const (
	testContract = "0x1234567890abcdef1234567890abcdef12345678"
	testAPIKey   = "secret-key"
)

type testRouter struct {
	router *gin.Engine
	exec   *mocks.MockAPIExecutor
}

func setupTestRouter(t *testing.T) *testRouter {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	exec := mocks.NewMockAPIExecutor(ctrl)

	router := gin.New()
	rest.SetupRoutes(router, rest.NewHandler(exec), middleware.AuthConfig{APIKeys: []string{testAPIKey}})

	return &testRouter{router: router, exec: exec}
}

func (tr *testRouter) do(method, path, body string, authorized bool) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authorized {
		req.Header.Set("Authorization", "ApiKey "+testAPIKey)
	}

	w := httptest.NewRecorder()
	tr.router.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	tr := setupTestRouter(t)

	w := tr.do(http.MethodGet, "/health", "", false)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","service":"ff-ledger-sync"}`, w.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	tr := setupTestRouter(t)

	w := tr.do(http.MethodGet, "/metrics", "", false)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestGetNFT(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		tr := setupTestRouter(t)
		tr.exec.EXPECT().
			GetNFT(gomock.Any(), testContract, "280").
			Return(&dto.NFTResponse{ContractAddress: testContract, TokenID: "280", Title: "Harbour"}, nil)

		w := tr.do(http.MethodGet, "/api/v1/nfts/"+testContract+"/280", "", false)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"title":"Harbour"`)
	})

	t.Run("not found", func(t *testing.T) {
		tr := setupTestRouter(t)
		tr.exec.EXPECT().GetNFT(gomock.Any(), testContract, "7").Return(nil, nil)

		w := tr.do(http.MethodGet, "/api/v1/nfts/"+testContract+"/7", "", false)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), `"code":"not_found"`)
	})

	t.Run("invalid contract", func(t *testing.T) {
		tr := setupTestRouter(t)

		w := tr.do(http.MethodGet, "/api/v1/nfts/not-an-address/7", "", false)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid token id", func(t *testing.T) {
		tr := setupTestRouter(t)

		w := tr.do(http.MethodGet, "/api/v1/nfts/"+testContract+"/0x1f", "", false)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("executor error", func(t *testing.T) {
		tr := setupTestRouter(t)
		tr.exec.EXPECT().GetNFT(gomock.Any(), testContract, "7").Return(nil, errors.New("db down"))

		w := tr.do(http.MethodGet, "/api/v1/nfts/"+testContract+"/7", "", false)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "db down")
	})
}

func TestListNFTs(t *testing.T) {
	t.Run("filters are normalized", func(t *testing.T) {
		tr := setupTestRouter(t)
		hasGeo := true
		tr.exec.EXPECT().
			ListNFTs(gomock.Any(), store.NFTFilter{
				ContractAddress: testContract,
				Category:        "landscape",
				HasGeo:          &hasGeo,
				Limit:           10,
				Offset:          20,
			}).
			Return(&dto.NFTListResponse{Items: []dto.NFTResponse{}, Total: 0, Limit: 10, Offset: 20}, nil)

		w := tr.do(http.MethodGet, "/api/v1/nfts?contract=0x1234567890ABCDEF1234567890abcdef12345678&category=landscape&has_geo=true&limit=10&offset=20", "", false)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("limit is capped", func(t *testing.T) {
		tr := setupTestRouter(t)
		tr.exec.EXPECT().
			ListNFTs(gomock.Any(), store.NFTFilter{Limit: store.MAX_LIST_LIMIT}).
			Return(&dto.NFTListResponse{Items: []dto.NFTResponse{}}, nil)

		w := tr.do(http.MethodGet, "/api/v1/nfts?limit=100000", "", false)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("invalid owner", func(t *testing.T) {
		tr := setupTestRouter(t)

		w := tr.do(http.MethodGet, "/api/v1/nfts?owner=alice", "", false)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "owner is not a valid address")
	})

	t.Run("negative offset", func(t *testing.T) {
		tr := setupTestRouter(t)

		w := tr.do(http.MethodGet, "/api/v1/nfts?offset=-1", "", false)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestAdminEndpointsRequireAPIKey(t *testing.T) {
	tr := setupTestRouter(t)

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/pending-mints"},
		{http.MethodGet, "/api/v1/sync-states"},
		{http.MethodPost, "/api/v1/sync-states/" + testContract + "/reset"},
		{http.MethodPost, "/api/v1/reconciliations"},
	} {
		w := tr.do(tc.method, tc.path, "", false)
		assert.Equal(t, http.StatusUnauthorized, w.Code, tc.path)
	}
}

func TestListPendingMints(t *testing.T) {
	tr := setupTestRouter(t)
	tr.exec.EXPECT().
		ListPendingMints(gomock.Any(), store.PendingMintFilter{MinRetryCount: 5, Limit: 50}).
		Return(&dto.PendingMintListResponse{
			Items: []dto.PendingMintResponse{{ID: 1, TokenID: "280", RetryCount: 7}},
			Total: 1,
			Limit: 50,
		}, nil)

	w := tr.do(http.MethodGet, "/api/v1/pending-mints?min_retry=5", "", true)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"retry_count":7`)
}

func TestListSyncStates(t *testing.T) {
	tr := setupTestRouter(t)
	tr.exec.EXPECT().
		ListSyncStates(gomock.Any()).
		Return(&dto.SyncStateListResponse{Items: []dto.SyncStateResponse{{ContractAddress: testContract, LastProcessedBlock: 42}}}, nil)

	w := tr.do(http.MethodGet, "/api/v1/sync-states", "", true)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"last_processed_block":42`)
}

func TestResetCheckpoint(t *testing.T) {
	t.Run("reset", func(t *testing.T) {
		tr := setupTestRouter(t)
		tr.exec.EXPECT().
			ResetCheckpoint(gomock.Any(), testContract, uint64(0)).
			Return(&dto.SyncStateResponse{ContractAddress: testContract}, nil)

		w := tr.do(http.MethodPost, "/api/v1/sync-states/"+testContract+"/reset", `{"block":0}`, true)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing block", func(t *testing.T) {
		tr := setupTestRouter(t)

		w := tr.do(http.MethodPost, "/api/v1/sync-states/"+testContract+"/reset", `{}`, true)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid contract", func(t *testing.T) {
		tr := setupTestRouter(t)

		w := tr.do(http.MethodPost, "/api/v1/sync-states/abc/reset", `{"block":1}`, true)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestStartReconciliation(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		tr := setupTestRouter(t)
		tr.exec.EXPECT().
			StartReconciliation(gomock.Any(), testContract, uint64(500)).
			Return(&dto.ReconciliationResponse{WorkflowID: "reconcile-" + testContract, RunID: "run-1"}, nil)

		w := tr.do(http.MethodPost, "/api/v1/reconciliations", `{"contract":"`+testContract+`","upper_bound":500}`, true)

		require.Equal(t, http.StatusAccepted, w.Code)
		assert.Contains(t, w.Body.String(), `"run_id":"run-1"`)
	})

	t.Run("unavailable", func(t *testing.T) {
		tr := setupTestRouter(t)
		tr.exec.EXPECT().
			StartReconciliation(gomock.Any(), testContract, uint64(0)).
			Return(nil, executor.ErrReconciliationUnavailable)

		w := tr.do(http.MethodPost, "/api/v1/reconciliations", `{"contract":"`+testContract+`"}`, true)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("invalid contract", func(t *testing.T) {
		tr := setupTestRouter(t)

		w := tr.do(http.MethodPost, "/api/v1/reconciliations", `{"contract":"nope"}`, true)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}
