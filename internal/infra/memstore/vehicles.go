package memstore

import (
	"context"
	"fmt"
	"os"
	"sync"

	"testdrive-hub/internal/domain/testdrive"
	"testdrive-hub/internal/infra"

	"gopkg.in/yaml.v3"
)

type vehicleSeed struct {
	Vehicles []testdrive.VehicleData `yaml:"vehicles"`
}

// VehicleDirectory serves listing data from memory, optionally seeded from a YAML file.
type VehicleDirectory struct {
	mu       sync.RWMutex
	vehicles map[string]testdrive.VehicleData
}

func NewVehicleDirectory(vehicles ...testdrive.VehicleData) *VehicleDirectory {
	d := &VehicleDirectory{vehicles: make(map[string]testdrive.VehicleData, len(vehicles))}
	for _, v := range vehicles {
		d.vehicles[v.ID] = v
	}
	return d
}

// LoadVehicleSeed reads a file of the form:
//
//	vehicles:
//	  - id: veh-001
//	    title: 2019 Toyota Prius S
//	    price_cents: 198000000
//	    seller_email: seller@example.com
//	    seller_name: Taro Yamada
func LoadVehicleSeed(path string) ([]testdrive.VehicleData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vehicle seed: %w", err)
	}
	return ParseVehicleSeed(data)
}

func ParseVehicleSeed(data []byte) ([]testdrive.VehicleData, error) {
	var seed vehicleSeed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse vehicle seed: %w", err)
	}
	for i, v := range seed.Vehicles {
		if v.ID == "" || v.SellerEmail == "" {
			return nil, fmt.Errorf("vehicle seed entry %d needs id and seller_email", i)
		}
	}
	return seed.Vehicles, nil
}

func (d *VehicleDirectory) FindByID(_ context.Context, id string) (testdrive.VehicleData, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	v, ok := d.vehicles[id]
	if !ok {
		return testdrive.VehicleData{}, infra.WrapRepoErr("vehicle not found", nil, infra.KindNotFound)
	}
	return v, nil
}

func (d *VehicleDirectory) Upsert(_ context.Context, v testdrive.VehicleData) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.vehicles[v.ID] = v
	return nil
}
