package services

import (
	"fmt"
	"sync"

	"github.com/shubhshah23/emesa-digital/models"
)

// MockMachineRegistry is an in-memory MachineRegistry for testing
type MockMachineRegistry struct {
	machines map[uint]models.Machine
	mu       sync.RWMutex
}

// NewMockMachineRegistry creates a new mock registry
func NewMockMachineRegistry() *MockMachineRegistry {
	return &MockMachineRegistry{
		machines: make(map[uint]models.Machine),
	}
}

// SetAsMockForTesting sets this mock as the global registry instance for testing
func (m *MockMachineRegistry) SetAsMockForTesting() {
	SetMachineRegistry(m)
}

// AddMachine registers a machine in the mock
func (m *MockMachineRegistry) AddMachine(machine models.Machine) {
	m.mu.Lock()
	m.machines[machine.ID] = machine
	m.mu.Unlock()
}

// MachineExists reports whether the machine id is registered in the mock
func (m *MockMachineRegistry) MachineExists(machineID uint) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.machines[machineID]
	return exists, nil
}

// MachineSupplier returns the supplier of the given mock machine
func (m *MockMachineRegistry) MachineSupplier(machineID uint) (*models.Supplier, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	machine, exists := m.machines[machineID]
	if !exists {
		return nil, fmt.Errorf("%w: machine %d", ErrUnknownMachine, machineID)
	}
	supplier := machine.Supplier
	return &supplier, nil
}

// ListMachines returns all machines registered in the mock
func (m *MockMachineRegistry) ListMachines() ([]models.Machine, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	machines := make([]models.Machine, 0, len(m.machines))
	for _, machine := range m.machines {
		machines = append(machines, machine)
	}
	return machines, nil
}
