// Package mock provides an obd.Provider with simulated values, for demo runs
// and wiring tests without a vehicle.
package mock

import (
	"math/rand"
	"sync"

	"gobd2/internal/models"
	"gobd2/internal/obd"
)

// Mock random-walks its readings on every call so repeated queries look like
// a live engine at idle.
type Mock struct {
	mu      sync.Mutex
	rpm     float64
	coolant float64
	speed   int
	load    float64
}

var _ obd.Provider = (*Mock)(nil)

func New() *Mock {
	return &Mock{
		rpm:     800,
		coolant: 75,
		speed:   0,
		load:    20,
	}
}

func (m *Mock) GetVIN() (string, error) {
	return "1G1JC5A41R7252367", nil
}

func (m *Mock) GetRPM() (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rpm = clamp(m.rpm+float64(rand.Intn(201)-100), 600, 4000)
	return m.rpm, nil
}

func (m *Mock) GetCoolantTemp() (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.coolant = clamp(m.coolant+float64(rand.Intn(21)-10)*0.1, 60, 110)
	return m.coolant, nil
}

func (m *Mock) GetSpeed() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.speed = int(clamp(float64(m.speed+rand.Intn(7)-3), 0, 130))
	return m.speed, nil
}

func (m *Mock) GetEngineLoad() (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.load = clamp(m.load+float64(rand.Intn(11)-5), 5, 95)
	return m.load, nil
}

func (m *Mock) GetFuelPressure() (float64, error) {
	return 350, nil
}

func (m *Mock) GetManifoldPressure() (float64, error) {
	return 30, nil
}

func (m *Mock) GetDTCs() ([]models.DTCEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rand.Float32() < 0.2 {
		return []models.DTCEntry{
			{Code: "P0300", Description: models.Describe("P0300")},
		}, nil
	}
	return nil, nil
}

func (m *Mock) Close() error {
	return nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
