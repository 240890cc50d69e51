package main

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	qrcode "github.com/skip2/go-qrcode"

	"snakeos/portfolio"
)

// QR image bounds in px.
const (
	qrDefaultSize = 256
	qrMaxSize     = 1024
)

// HireResponse acknowledges a submitted form.
type HireResponse struct {
	Status string `json:"status"`
	Name   string `json:"name"`
}

// jsonError sends a consistent JSON error response
func jsonError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":  message,
		"status": status,
	})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("json encode: %v", err)
	}
}

// handleSections serves the popup content in reveal order.
func handleSections(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, portfolio.Sections)
}

// handleHire accepts the hire form. Delivery is simulated: the reply is held for delay,
// or abandoned if the client goes away first.
func handleHire(delay time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req portfolio.HireRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonError(w, "Invalid JSON body", http.StatusBadRequest)
			return
		}
		if err := req.Validate(); err != nil {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}

		t := time.NewTimer(delay)
		defer t.Stop()
		select {
		case <-r.Context().Done():
			log.Printf("hire form from %q abandoned", req.Name)
			return
		case <-t.C:
		}

		log.Printf("hire form received from %q <%s>", req.Name, req.Email)
		writeJSON(w, HireResponse{Status: portfolio.HireSent, Name: req.Name})
	}
}

// handleContactQR renders the contact link as a PNG QR code. ?size= picks the edge length.
func handleContactQR(w http.ResponseWriter, r *http.Request) {
	size := qrDefaultSize
	if v := r.URL.Query().Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > qrMaxSize {
			jsonError(w, "size must be between 1 and 1024", http.StatusBadRequest)
			return
		}
		size = n
	}

	png, err := qrcode.Encode(portfolio.ContactURL, qrcode.Medium, size)
	if err != nil {
		log.Printf("qr encode: %v", err)
		jsonError(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Write(png)
}
