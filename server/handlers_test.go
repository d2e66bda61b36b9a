package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrovision-ai/go-crops/auth"
	"github.com/agrovision-ai/go-crops/images"
	"github.com/agrovision-ai/go-crops/inference"
)

// mockPredictor is a test double for the Predictor interface.
type mockPredictor struct {
	PredictFunc func(src images.Source) (*inference.Result, error)
}

func (m *mockPredictor) Predict(src images.Source) (*inference.Result, error) {
	if m.PredictFunc != nil {
		return m.PredictFunc(src)
	}
	return &inference.Result{
		PredictedClass: "Blast",
		Confidence:     88.5,
		Probabilities:  map[string]float32{"Bacterialblight": 6.0, "Blast": 88.5, "Brownspot": 5.5},
	}, nil
}

func (m *mockPredictor) Backend() inference.Backend { return inference.BackendCPU }

func (m *mockPredictor) Metadata() *inference.Metadata {
	return &inference.Metadata{Epoch: 24, ValAccuracy: 0.937}
}

// mockAuth is a test double for the AuthService interface.
type mockAuth struct {
	SignupFunc func(username, email, password string) (*auth.User, error)
	LoginFunc  func(username, password string) (string, *auth.User, error)
}

func (m *mockAuth) Signup(username, email, password string) (*auth.User, error) {
	if m.SignupFunc != nil {
		return m.SignupFunc(username, email, password)
	}
	return &auth.User{ID: 1, Username: username, Email: email}, nil
}

func (m *mockAuth) Login(username, password string) (string, *auth.User, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(username, password)
	}
	return "", nil, auth.ErrInvalidCredentials
}

func newTestRouter(predictor Predictor, authSvc AuthService) (*gin.Engine, string) {
	gin.SetMode(gin.TestMode)
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	token, _ := issuer.Issue(1, "farmer")
	return NewRouter(NewHandlers(predictor, authSvc), issuer), token
}

func postJSON(router *gin.Engine, path, token string, body any) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func getPath(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func multipartUpload(t *testing.T, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, data := range files {
		part, err := mw.CreateFormFile("images", name)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestHealth(t *testing.T) {
	router, _ := newTestRouter(&mockPredictor{}, &mockAuth{})

	w := getPath(router, "/healthz", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.ModelLoaded)
	assert.Equal(t, "cpu", resp.Backend)
}

func TestHealthDegraded(t *testing.T) {
	router, _ := newTestRouter(nil, &mockAuth{})

	w := getPath(router, "/healthz", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.ModelLoaded)
}

func TestSignup(t *testing.T) {
	tests := []struct {
		name       string
		body       gin.H
		signupFunc func(username, email, password string) (*auth.User, error)
		wantStatus int
	}{
		{
			name:       "success",
			body:       gin.H{"username": "farmer", "email": "f@example.com", "password": "growmorerice"},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "invalid email",
			body:       gin.H{"username": "farmer", "email": "nope", "password": "growmorerice"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "short password",
			body:       gin.H{"username": "farmer", "email": "f@example.com", "password": "short"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "duplicate user",
			body: gin.H{"username": "farmer", "email": "f@example.com", "password": "growmorerice"},
			signupFunc: func(_, _, _ string) (*auth.User, error) {
				return nil, auth.ErrUserExists
			},
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newTestRouter(nil, &mockAuth{SignupFunc: tt.signupFunc})
			w := postJSON(router, "/v1/auth/signup", "", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestLogin(t *testing.T) {
	ok := func(username, password string) (string, *auth.User, error) {
		return "signed-token", &auth.User{ID: 1, Username: username}, nil
	}

	router, _ := newTestRouter(nil, &mockAuth{LoginFunc: ok})
	w := postJSON(router, "/v1/auth/login", "", gin.H{"username": "farmer", "password": "growmorerice"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "signed-token", resp.Token)

	router, _ = newTestRouter(nil, &mockAuth{})
	w = postJSON(router, "/v1/auth/login", "", gin.H{"username": "farmer", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPredictRequiresAuth(t *testing.T) {
	router, _ := newTestRouter(&mockPredictor{}, &mockAuth{})

	body, contentType := multipartUpload(t, map[string][]byte{"leaf.jpg": []byte("img")})
	req := httptest.NewRequest(http.MethodPost, "/v1/predict", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPredict(t *testing.T) {
	router, token := newTestRouter(&mockPredictor{}, &mockAuth{})

	body, contentType := multipartUpload(t, map[string][]byte{"leaf.jpg": []byte("img")})
	req := httptest.NewRequest(http.MethodPost, "/v1/predict", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp PredictBatchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "leaf.jpg", resp.Results[0].Filename)
	assert.Equal(t, "Blast", resp.Results[0].PredictedClass)
	assert.InDelta(t, 88.5, resp.Results[0].Confidence, 0.001)
	assert.Len(t, resp.Results[0].AllProbabilities, 3)
	assert.Contains(t, resp.Results[0].Disease.Description, "blast")
	assert.Empty(t, resp.Failures)
}

// One broken upload must not sink the rest of the batch.
func TestPredictSkipsUndecodableImages(t *testing.T) {
	predictor := &mockPredictor{
		PredictFunc: func(src images.Source) (*inference.Result, error) {
			if src.Name() == "broken.jpg" {
				return nil, &images.DecodeError{Name: "broken.jpg", Err: errors.New("unexpected EOF")}
			}
			return &inference.Result{
				PredictedClass: "Brownspot",
				Confidence:     70,
				Probabilities:  map[string]float32{"Bacterialblight": 10, "Blast": 20, "Brownspot": 70},
			}, nil
		},
	}
	router, token := newTestRouter(predictor, &mockAuth{})

	body, contentType := multipartUpload(t, map[string][]byte{
		"broken.jpg": []byte("not an image"),
		"good.jpg":   []byte("img"),
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/predict", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp PredictBatchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "good.jpg", resp.Results[0].Filename)
	require.Len(t, resp.Failures, 1)
	assert.Equal(t, "broken.jpg", resp.Failures[0].Filename)
	assert.Equal(t, "image could not be decoded", resp.Failures[0].Error)
}

func TestPredictDegraded(t *testing.T) {
	router, token := newTestRouter(nil, &mockAuth{})

	body, contentType := multipartUpload(t, map[string][]byte{"leaf.jpg": []byte("img")})
	req := httptest.NewRequest(http.MethodPost, "/v1/predict", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestPredictNoFiles(t *testing.T) {
	router, token := newTestRouter(&mockPredictor{}, &mockAuth{})

	body, contentType := multipartUpload(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/v1/predict", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDiseases(t *testing.T) {
	router, token := newTestRouter(nil, &mockAuth{})

	w := getPath(router, "/v1/diseases", token)
	require.Equal(t, http.StatusOK, w.Code)

	var list []DiseaseResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 3)
	assert.Equal(t, "Bacterialblight", list[0].Class)
	assert.NotNil(t, list[0].Remedy)

	w = getPath(router, "/v1/diseases/Blast", token)
	require.Equal(t, http.StatusOK, w.Code)

	w = getPath(router, "/v1/diseases/NotADisease", token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestChat(t *testing.T) {
	router, token := newTestRouter(nil, &mockAuth{})

	w := postJSON(router, "/v1/chat", token, gin.H{"message": "what is rice blast?"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp ChatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Reply, "Magnaporthe")

	w = postJSON(router, "/v1/chat", token, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReport(t *testing.T) {
	router, token := newTestRouter(nil, &mockAuth{})

	w := postJSON(router, "/v1/report", token, gin.H{
		"title": "Field Survey",
		"items": []gin.H{
			{"filename": "leaf.jpg", "class": "Blast", "confidence": 88.5},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))

	w = postJSON(router, "/v1/report", token, gin.H{"items": []gin.H{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
