package similarity_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/storefront/internal/adapter/similarity"
	"github.com/jcmexdev/storefront/internal/core/domain/vo"
	"github.com/jcmexdev/storefront/internal/core/ports"
)

func TestClient_Predict(t *testing.T) {
	productID := vo.NewID()
	other := vo.NewID()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/similarity/"+productID.String(), r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{"product_ids": []string{other.String()}})
	}))
	defer srv.Close()

	client := similarity.NewClient(srv.URL)
	ids, err := client.Predict(context.Background(), productID)
	require.NoError(t, err)
	assert.Equal(t, []vo.ID{other}, ids)
}

func TestClient_Predict_RetriesUntilSuccess(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"product_ids": []string{}})
	}))
	defer srv.Close()

	client := similarity.NewClient(srv.URL)
	ids, err := client.Predict(context.Background(), vo.NewID())
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_Predict_GivesUpAfterMaxAttempts(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "model offline", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := similarity.NewClient(srv.URL)
	_, err := client.Predict(context.Background(), vo.NewID())
	require.Error(t, err)
	assert.ErrorContains(t, err, "500")
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_Train(t *testing.T) {
	var got struct {
		Samples []ports.TrainingSample `json:"samples"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/similarity/train", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	client := similarity.NewClient(srv.URL)
	err := client.Train(context.Background(), []ports.TrainingSample{{
		SellID:    vo.NewID().String(),
		ProductID: vo.NewID().String(),
		Quantity:  2,
		UnitPrice: decimal.NewFromInt(100),
	}})
	require.NoError(t, err)
	require.Len(t, got.Samples, 1)
	assert.Equal(t, 2, got.Samples[0].Quantity)
}

// An empty batch is a no-op and must not hit the service.
func TestClient_Train_SkipsEmptyBatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	}))
	defer srv.Close()

	client := similarity.NewClient(srv.URL)
	require.NoError(t, client.Train(context.Background(), nil))
}

func TestClient_Train_ReportsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad batch", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	client := similarity.NewClient(srv.URL)
	err := client.Train(context.Background(), []ports.TrainingSample{{SellID: "s", ProductID: "p", Quantity: 1}})
	require.Error(t, err)
	assert.ErrorContains(t, err, "422")
}
