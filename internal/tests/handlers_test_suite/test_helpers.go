package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/minipos/minipos/internal/auth"
	api "github.com/minipos/minipos/internal/http"
	handler "github.com/minipos/minipos/internal/http/handlers"
	rl "github.com/minipos/minipos/internal/http/rate_limiter"
	"github.com/minipos/minipos/internal/models"
	"github.com/minipos/minipos/internal/pos"
	"github.com/minipos/minipos/internal/repo"
	"github.com/minipos/minipos/internal/store"
)

const (
	testEmail    = "ana@example.com"
	testPassword = "secret123"
)

var (
	token       string
	accountRepo *repo.InMemoryAccountRepository
	posStore    *store.MemoryStore
)

func init() {
	auth.SetSecret("test-secret")
	rl.Configure(1000, 1000)

	setupTestRepos(testPassword)
	r := api.NewRouter()

	var err error
	token, err = generateToken(r, testEmail, testPassword)
	if err != nil {
		panic(fmt.Sprintf("error generating token: %v", err))
	}
}

func setupTestRepos(password string) {
	accountRepo = repo.NewInMemoryAccountRepository()
	handler.SetAccountRepo(accountRepo)

	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	_, _ = accountRepo.Create(models.Account{
		Email:        testEmail,
		Name:         "Ana",
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	})

	posStore = store.NewMemoryStore()
	handler.SetSessionManager(pos.NewSessionManager(posStore))
}

// resetPOS discards every account's catalog, cart and ledger.
func resetPOS() {
	posStore.Clear()
	handler.SetSessionManager(pos.NewSessionManager(posStore))
}

func generateToken(r http.Handler, email, password string) (string, error) {
	payload := handler.CredentialsRequest{Email: email, Password: password}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp handler.LoginResult
	err := json.NewDecoder(w.Body).Decode(&resp)
	if err != nil {
		return "", fmt.Errorf("token decoding failed: %v", err)
	}
	return resp.Token, nil
}

func doJSON(r http.Handler, method, path string, payload any) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		_ = json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doUnauthenticated(r http.Handler, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createProduct(r http.Handler, p handler.ProductRequest) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodPost, "/products", p)
}

func addCartItem(r http.Handler, item handler.CartItemRequest) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodPost, "/cart/items", item)
}

func completeSale(r http.Handler, method string) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodPost, "/sales", handler.SaleRequest{PaymentMethod: method})
}

func adjustProduct(r http.Handler, productID string, adj handler.QuantityAdjustmentRequest) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodPost, fmt.Sprintf("/products/%s/adjust", productID), adj)
}

func multipartCSV(csvContent string, filename string) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, _ := writer.CreateFormFile("file", filename)
	part.Write([]byte(csvContent))

	writer.Close()
	return &buf, writer.FormDataContentType()
}
