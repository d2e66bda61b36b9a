package server

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/agrovision-ai/go-crops/auth"
	"github.com/agrovision-ai/go-crops/diseases"
	"github.com/agrovision-ai/go-crops/images"
	"github.com/agrovision-ai/go-crops/inference"
	"github.com/agrovision-ai/go-crops/report"
	"github.com/agrovision-ai/go-crops/supportbot"
)

// Predictor is the slice of the classifier the handlers need.
type Predictor interface {
	Predict(src images.Source) (*inference.Result, error)
	Backend() inference.Backend
	Metadata() *inference.Metadata
}

// AuthService is the slice of the auth layer the handlers need.
type AuthService interface {
	Signup(username, email, password string) (*auth.User, error)
	Login(username, password string) (string, *auth.User, error)
}

// Handlers holds the HTTP handlers and their dependencies. A nil predictor
// puts the prediction endpoint into degraded mode without taking down the
// rest of the API.
type Handlers struct {
	predictor Predictor
	auth      AuthService
}

func NewHandlers(predictor Predictor, authSvc AuthService) *Handlers {
	return &Handlers{predictor: predictor, auth: authSvc}
}

// Health reports liveness plus whether the model is serving.
func (h *Handlers) Health(c *gin.Context) {
	resp := HealthResponse{Status: "ok", ModelLoaded: h.predictor != nil}
	if h.predictor != nil {
		resp.Backend = string(h.predictor.Backend())
		if meta := h.predictor.Metadata(); meta != nil {
			resp.ValAccuracy = meta.ValAccuracy
		}
	}
	c.JSON(http.StatusOK, resp)
}

// Signup registers a new user account.
func (h *Handlers) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("signup validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request"})
		return
	}

	user, err := h.auth.Signup(req.Username, req.Email, req.Password)
	switch {
	case errors.Is(err, auth.ErrUserExists):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "username or email already registered"})
		return
	case errors.Is(err, auth.ErrWeakPassword), errors.Is(err, auth.ErrMissingFields):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	case err != nil:
		slog.Error("signup failed", "error", err, "username", req.Username)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "signup failed"})
		return
	}

	slog.Info("user signup successful", "username", user.Username, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, MessageResponse{Message: "ok"})
}

// Login authenticates and returns a JWT.
func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request"})
		return
	}

	token, user, err := h.auth.Login(req.Username, req.Password)
	if err != nil {
		// The response never says which of username or password was wrong.
		slog.Warn("login failed", "username", req.Username, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid username or password"})
		return
	}

	slog.Info("user login successful", "username", user.Username, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, TokenResponse{Token: token, Username: user.Username})
}

// Predict classifies every uploaded image. A file that fails to decode is
// reported in the failures list; the rest of the batch still completes.
//
// Endpoint: POST /v1/predict
// Content-Type: multipart/form-data, field "images" (repeatable)
func (h *Handlers) Predict(c *gin.Context) {
	if h.predictor == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "model unavailable"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "multipart form required"})
		return
	}
	files := form.File["images"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "at least one image is required"})
		return
	}

	resp := PredictBatchResponse{Results: make([]PredictionResponse, 0, len(files))}
	for _, file := range files {
		f, err := file.Open()
		if err != nil {
			resp.Failures = append(resp.Failures, PredictionFailure{Filename: file.Filename, Error: "could not open upload"})
			continue
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			resp.Failures = append(resp.Failures, PredictionFailure{Filename: file.Filename, Error: "could not read upload"})
			continue
		}

		result, err := h.predictor.Predict(images.BytesSource(file.Filename, data))
		if err != nil {
			var decodeErr *images.DecodeError
			msg := "prediction failed"
			if errors.As(err, &decodeErr) {
				msg = "image could not be decoded"
			} else {
				slog.Error("prediction failed", "error", err, "filename", file.Filename)
			}
			resp.Failures = append(resp.Failures, PredictionFailure{Filename: file.Filename, Error: msg})
			continue
		}

		resp.Results = append(resp.Results, PredictionResponse{
			Filename:         file.Filename,
			PredictedClass:   result.PredictedClass,
			Confidence:       result.Confidence,
			AllProbabilities: result.Probabilities,
			Disease:          diseases.InfoFor(result.PredictedClass),
		})
	}

	slog.Info("prediction batch served",
		"total", len(files), "ok", len(resp.Results), "failed", len(resp.Failures))
	c.JSON(http.StatusOK, resp)
}

// ListDiseases returns every disease with a cure guide.
func (h *Handlers) ListDiseases(c *gin.Context) {
	catalogue := diseases.Catalogue()
	out := make([]DiseaseResponse, 0, len(catalogue))
	for _, class := range catalogue {
		remedy, _ := diseases.RemedyFor(class)
		out = append(out, DiseaseResponse{Class: class, Info: diseases.InfoFor(class), Remedy: remedy})
	}
	c.JSON(http.StatusOK, out)
}

// GetDisease returns one disease by class label.
func (h *Handlers) GetDisease(c *gin.Context) {
	class := c.Param("name")
	remedy, ok := diseases.RemedyFor(class)
	if !ok && !diseases.Known(class) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "unknown disease"})
		return
	}
	c.JSON(http.StatusOK, DiseaseResponse{Class: class, Info: diseases.InfoFor(class), Remedy: remedy})
}

// Chat answers a support question from the built-in knowledge base.
func (h *Handlers) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "message is required"})
		return
	}
	c.JSON(http.StatusOK, ChatResponse{Reply: supportbot.Reply(req.Message)})
}

// Report renders earlier predictions into a PDF and streams it back.
func (h *Handlers) Report(c *gin.Context) {
	var req ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "at least one report item is required"})
		return
	}

	items := make([]report.Item, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, report.Item{
			Filename:   item.Filename,
			Class:      item.Class,
			Confidence: item.Confidence,
		})
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `attachment; filename="crop-disease-report.pdf"`)
	c.Status(http.StatusOK)

	err := report.Generate(c.Writer, items, report.Options{
		Title:       req.Title,
		GeneratedBy: c.GetString(auth.ContextUsername),
		GeneratedAt: time.Now(),
	})
	if err != nil {
		slog.Error("report generation failed", "error", err)
	}
}
