package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// ApiClient handles API requests to the BrewJá daemon
type ApiClient struct {
	httpClient *http.Client
	BaseURL    string
	UseMock    bool
}

// NewApiClient creates a new API client
func NewApiClient() *ApiClient {
	baseURL := os.Getenv("BREWJA_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	client := &ApiClient{
		httpClient: &http.Client{
			Timeout: time.Second * 10,
		},
		BaseURL: baseURL,
		UseMock: false, // Default to trying the real server first
	}

	// Verify connectivity - if the daemon is not available, use mock data
	if !client.ping() {
		fmt.Printf("Warning: API server at %s is not available. Using mock data.\n", baseURL)
		client.UseMock = true
	}

	return client
}

// ping checks if the API server is available
func (c *ApiClient) ping() bool {
	resp, err := c.httpClient.Get(c.BaseURL + "/health")
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// Tank represents a fermenter and its active batch
type Tank struct {
	ID             string  `json:"id"`
	TankID         string  `json:"tankId"`
	Capacity       float64 `json:"capacity"`
	Status         string  `json:"status"`
	RecipeName     string  `json:"recipeName"`
	Volume         float64 `json:"volume"`
	BrewDate       string  `json:"brewDate"`
	CurrentGravity float64 `json:"currentGravity"`
	Temperature    float64 `json:"temperature"`
}

// Keg represents one keg of the fleet
type Keg struct {
	ID           string  `json:"id"`
	Capacity     float64 `json:"capacity"`
	RecipeName   string  `json:"recipeName"`
	FillDate     string  `json:"fillDate"`
	Volume       float64 `json:"volume"`
	Status       string  `json:"status"`
	Customer     string  `json:"customer,omitempty"`
	DispatchDate string  `json:"dispatchDate,omitempty"`
}

// RawMaterial represents a stockroom lot
type RawMaterial struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// BottleLot represents bottled finished stock
type BottleLot struct {
	RecipeName      string  `json:"recipeName"`
	LabelName       string  `json:"labelName"`
	VolumePerBottle float64 `json:"volumePerBottle"`
	Count           int     `json:"count"`
}

// HistoryEntry represents one production log line
type HistoryEntry struct {
	ID            string  `json:"id"`
	Date          string  `json:"date"`
	ActionType    string  `json:"actionType"`
	TankID        string  `json:"tankId"`
	RecipeName    string  `json:"recipeName"`
	VolumeChanged float64 `json:"volumeChanged"`
	Details       string  `json:"details"`
}

// getJSON fetches path and decodes the response into out
func (c *ApiClient) getJSON(path string, out any) error {
	resp, err := c.httpClient.Get(c.BaseURL + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// postJSON sends body to path and ignores the response payload
func (c *ApiClient) postJSON(path string, body any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(http.MethodPost, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return apiError(resp)
	}
	return nil
}

// apiError extracts the daemon's error message from a failed response
func apiError(resp *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	body, _ := io.ReadAll(resp.Body)
	if json.Unmarshal(body, &payload) == nil && payload.Error != "" {
		return fmt.Errorf("%s", payload.Error)
	}
	return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
}

// GetTanks retrieves the tank floor
func (c *ApiClient) GetTanks() ([]Tank, error) {
	if c.UseMock {
		return c.getMockTanks(), nil
	}
	var tanks []Tank
	err := c.getJSON("/api/v1/tanks", &tanks)
	return tanks, err
}

// GetKegs retrieves the keg fleet
func (c *ApiClient) GetKegs() ([]Keg, error) {
	if c.UseMock {
		return c.getMockKegs(), nil
	}
	var kegs []Keg
	err := c.getJSON("/api/v1/kegs", &kegs)
	return kegs, err
}

// GetMaterials retrieves the stockroom
func (c *ApiClient) GetMaterials() ([]RawMaterial, error) {
	if c.UseMock {
		return c.getMockMaterials(), nil
	}
	var materials []RawMaterial
	err := c.getJSON("/api/v1/materials", &materials)
	return materials, err
}

// GetBottles retrieves the bottled stock
func (c *ApiClient) GetBottles() ([]BottleLot, error) {
	if c.UseMock {
		return nil, nil
	}
	var lots []BottleLot
	err := c.getJSON("/api/v1/bottles", &lots)
	return lots, err
}

// GetHistory retrieves the production log, newest first
func (c *ApiClient) GetHistory() ([]HistoryEntry, error) {
	if c.UseMock {
		return nil, nil
	}
	var history []HistoryEntry
	err := c.getJSON("/api/v1/history", &history)
	return history, err
}

// StartBatch begins a brew in the given tank
func (c *ApiClient) StartBatch(tankID, recipeName string, volume float64) error {
	if c.UseMock {
		return nil
	}
	return c.postJSON("/api/v1/tanks/"+tankID+"/batch", map[string]any{
		"recipeName": recipeName,
		"volume":     volume,
	})
}

// DispatchKeg moves a keg to a new holder
func (c *ApiClient) DispatchKeg(kegID, location string) error {
	if c.UseMock {
		return nil
	}
	return c.postJSON("/api/v1/kegs/"+kegID+"/dispatch", map[string]any{
		"location": location,
	})
}

// ReturnKeg brings a keg back to the factory. Zero remaining means empty.
func (c *ApiClient) ReturnKeg(kegID string, remainingVolume float64) error {
	if c.UseMock {
		return nil
	}
	return c.postJSON("/api/v1/kegs/"+kegID+"/return", map[string]any{
		"remainingVolume": remainingVolume,
	})
}

// SellBottles records a bottle sale
func (c *ApiClient) SellBottles(recipeName, labelName string, count int) error {
	if c.UseMock {
		return nil
	}
	return c.postJSON("/api/v1/bottles/sell", map[string]any{
		"recipeName": recipeName,
		"labelName":  labelName,
		"count":      count,
	})
}

// Mock data generators

// getMockTanks generates mock tank data
func (c *ApiClient) getMockTanks() []Tank {
	return []Tank{
		{ID: "BATCH-1", TankID: "FV-01", Capacity: 1000, Status: "Fermenting", RecipeName: "IPA", Volume: 800, CurrentGravity: 1.024, Temperature: 18.5},
		{ID: "BATCH-2", TankID: "FV-02", Capacity: 500, Status: "Conditioning", RecipeName: "Pilsen", Volume: 450, CurrentGravity: 1.010, Temperature: 2.0},
		{ID: "t3", TankID: "FV-03", Capacity: 1000, Status: "Empty", Volume: 0, CurrentGravity: 1.000, Temperature: 20.0},
	}
}

// getMockKegs generates mock keg data
func (c *ApiClient) getMockKegs() []Keg {
	return []Keg{
		{ID: "K-001", Capacity: 50, RecipeName: "IPA", Volume: 50, Status: "Retail", Customer: "Bar do Zé", DispatchDate: "2026-08-20"},
		{ID: "K-002", Capacity: 50, RecipeName: "IPA", Volume: 50, Status: "In-House", Customer: "Fábrica (Estoque)"},
		{ID: "K-003", Capacity: 30, Status: "Empty"},
	}
}

// getMockMaterials generates mock stockroom data
func (c *ApiClient) getMockMaterials() []RawMaterial {
	return []RawMaterial{
		{ID: "m1", Name: "Malte Pilsen", Type: "MALT", Quantity: 250, Unit: "kg"},
		{ID: "m2", Name: "Lúpulo Citra", Type: "HOPS", Quantity: 4.5, Unit: "kg"},
		{ID: "m3", Name: "Levedura US-05", Type: "YEAST", Quantity: 12, Unit: "pct"},
	}
}
