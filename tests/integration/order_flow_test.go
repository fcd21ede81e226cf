package integration

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// loginAs registers nothing; it seeds a user directly and logs in through the API
func loginAs(t *testing.T, suffix string) string {
	t.Helper()

	email, password := TestUser(suffix)
	_, err := SeedUser(context.Background(), testDB.Pool, email, password)
	require.NoError(t, err)

	resp, err := testSrv.Request(http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	token, err := ExtractAccessToken(resp)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	return token
}

func TestPlaceOrderDecrementsStock(t *testing.T) {
	resetState(t)

	token := loginAs(t, "order")
	product, err := SeedProduct(context.Background(), testDB.Pool, "widget", 10)
	require.NoError(t, err)

	resp, err := testSrv.RequestWithAuth(http.MethodPost, "/orders", token, map[string]int{
		"product_id": product.ID,
		"quantity":   3,
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var orderResp struct {
		OrderID        string `json:"order_id"`
		ProductID      int    `json:"product_id"`
		Quantity       int    `json:"quantity"`
		RemainingStock int    `json:"remaining_stock"`
	}
	require.NoError(t, ParseJSONResponse(resp, &orderResp))
	assert.NotEmpty(t, orderResp.OrderID)
	assert.Equal(t, product.ID, orderResp.ProductID)
	assert.Equal(t, 3, orderResp.Quantity)
	assert.Equal(t, 7, orderResp.RemainingStock)

	stock, err := GetProductStock(context.Background(), testDB.Pool, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, stock)
}

func TestPlaceOrderInsufficientStock(t *testing.T) {
	resetState(t)

	token := loginAs(t, "insufficient")
	product, err := SeedProduct(context.Background(), testDB.Pool, "widget", 4)
	require.NoError(t, err)

	resp, err := testSrv.RequestWithAuth(http.MethodPost, "/orders", token, map[string]int{
		"product_id": product.ID,
		"quantity":   5,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// Stock is untouched and no order row was written
	stock, err := GetProductStock(context.Background(), testDB.Pool, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, stock)

	count, err := CountOrders(context.Background(), testDB.Pool, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestPlaceOrderUnknownProduct(t *testing.T) {
	resetState(t)

	token := loginAs(t, "unknown")

	resp, err := testSrv.RequestWithAuth(http.MethodPost, "/orders", token, map[string]int{
		"product_id": 9998,
		"quantity":   1,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestPlaceOrderValidationBounds(t *testing.T) {
	resetState(t)

	token := loginAs(t, "bounds")
	product, err := SeedProduct(context.Background(), testDB.Pool, "widget", 100)
	require.NoError(t, err)

	cases := []struct {
		name      string
		productID int
		quantity  int
	}{
		{"quantity above range", product.ID, 10000},
		{"quantity zero", product.ID, 0},
		{"negative quantity", product.ID, -1},
		{"product id above range", 10000, 1},
		{"product id zero", 0, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := testSrv.RequestWithAuth(http.MethodPost, "/orders", token, map[string]int{
				"product_id": tc.productID,
				"quantity":   tc.quantity,
			})
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			resp.Body.Close()
		})
	}

	// Nothing leaked through to the stock
	stock, err := GetProductStock(context.Background(), testDB.Pool, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, stock)
}

func TestPlaceOrderRequiresAuthentication(t *testing.T) {
	resetState(t)

	resp, err := testSrv.Request(http.MethodPost, "/orders", map[string]int{
		"product_id": 1,
		"quantity":   1,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestConcurrentOrdersDoNotOversell(t *testing.T) {
	resetState(t)

	token := loginAs(t, "concurrent")
	product, err := SeedProduct(context.Background(), testDB.Pool, "limited-run", 5)
	require.NoError(t, err)

	const workers = 8

	var wg sync.WaitGroup
	statuses := make([]int, workers)

	// Every worker tries to buy the entire stock; only one can win
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := testSrv.RequestWithAuth(http.MethodPost, "/orders", token, map[string]int{
				"product_id": product.ID,
				"quantity":   5,
			})
			if err != nil {
				statuses[i] = -1
				return
			}
			statuses[i] = resp.StatusCode
			resp.Body.Close()
		}(i)
	}
	wg.Wait()

	created, conflicts := 0, 0
	for _, status := range statuses {
		switch status {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			conflicts++
		default:
			t.Errorf("unexpected status %d", status)
		}
	}

	assert.Equal(t, 1, created, "exactly one order should win the stock")
	assert.Equal(t, workers-1, conflicts)

	stock, err := GetProductStock(context.Background(), testDB.Pool, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stock, "stock must never go negative or be double-spent")

	count, err := CountOrders(context.Background(), testDB.Pool, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
