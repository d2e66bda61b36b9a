// Package server - HTTP API: authentication, prediction, disease lookup,
// support chat, and PDF reports.
package server

import "github.com/agrovision-ai/go-crops/diseases"

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is a plain acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse carries a signed JWT after login.
type TokenResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// SignupRequest is the registration payload.
type SignupRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// PredictionResponse is the outcome for one successfully classified image.
type PredictionResponse struct {
	Filename         string             `json:"filename"`
	PredictedClass   string             `json:"predicted_class"`
	Confidence       float32            `json:"confidence"`
	AllProbabilities map[string]float32 `json:"all_probabilities"`
	Disease          diseases.Info      `json:"disease"`
}

// PredictionFailure reports one image that could not be classified. The
// remaining images in the same request are still processed.
type PredictionFailure struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
}

// PredictBatchResponse is the full reply to a multi-image upload.
type PredictBatchResponse struct {
	Results  []PredictionResponse `json:"results"`
	Failures []PredictionFailure  `json:"failures,omitempty"`
}

// DiseaseResponse pairs the short summary with the full cure guide.
type DiseaseResponse struct {
	Class  string           `json:"class"`
	Info   diseases.Info    `json:"info"`
	Remedy *diseases.Remedy `json:"remedy,omitempty"`
}

// ChatRequest is a support chat message.
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// ChatResponse is the assistant's reply.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// ReportItem is one classified image to include in a PDF report.
type ReportItem struct {
	Filename   string  `json:"filename" binding:"required"`
	Class      string  `json:"class" binding:"required"`
	Confidence float32 `json:"confidence"`
}

// ReportRequest asks for a PDF summarizing earlier predictions.
type ReportRequest struct {
	Title string       `json:"title"`
	Items []ReportItem `json:"items" binding:"required,min=1"`
}

// HealthResponse reports service and model status.
type HealthResponse struct {
	Status      string  `json:"status"`
	ModelLoaded bool    `json:"model_loaded"`
	Backend     string  `json:"backend,omitempty"`
	ValAccuracy float64 `json:"val_accuracy,omitempty"`
}
