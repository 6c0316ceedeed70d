package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/footycentral/predict-api/internal/models"
	"github.com/footycentral/predict-api/internal/store"
)

// Config
const (
	API_URL = "http://localhost:5000/api/patterns/upload"
)

func main() {
	upload := models.PatternUpload{
		Patterns:  store.SeedPatterns(),
		Version:   store.SeedVersion,
		Timestamp: time.Now().Format("2006-01-02T15:04:05"),
	}

	payload, err := json.Marshal(upload)
	if err != nil {
		log.Fatalf("Failed to marshal JSON: %v", err)
	}

	req, err := http.NewRequest("POST", API_URL, bytes.NewBuffer(payload))
	if err != nil {
		log.Fatalf("Failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		log.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	fmt.Printf("Status: %s\n", resp.Status)
	fmt.Printf("Body:   %s\n", string(body))

	if resp.StatusCode != http.StatusOK {
		log.Fatalf("Seeding failed with status %d", resp.StatusCode)
	}
	log.Printf("Seeded %d patterns (version %s)", len(upload.Patterns), upload.Version)
}
