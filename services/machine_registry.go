package services

import (
	"errors"
	"fmt"

	"github.com/shubhshah23/emesa-digital/models"
	"gorm.io/gorm"
)

// MachineRegistry is the boundary to the machine/supplier inventory
// collaborator. The engine only asks whether a machine exists and who
// supplies it; availability and compatibility stay with the registry.
type MachineRegistry interface {
	// MachineExists reports whether the machine id resolves in the registry.
	MachineExists(machineID uint) (bool, error)

	// MachineSupplier returns the supplier of the given machine.
	MachineSupplier(machineID uint) (*models.Supplier, error)

	// ListMachines returns all registered machines with their suppliers,
	// for dashboard assignment pickers.
	ListMachines() ([]models.Machine, error)
}

// DBMachineRegistry implements MachineRegistry against the machines table.
type DBMachineRegistry struct {
	db *gorm.DB
}

var machineRegistryInstance MachineRegistry

// InitMachineRegistry initializes the registry backed by the given database
func InitMachineRegistry(db *gorm.DB) MachineRegistry {
	machineRegistryInstance = &DBMachineRegistry{db: db}
	return machineRegistryInstance
}

// GetMachineRegistry returns the initialized registry instance
func GetMachineRegistry() MachineRegistry {
	return machineRegistryInstance
}

// SetMachineRegistry sets the registry instance (primarily for testing)
func SetMachineRegistry(registry MachineRegistry) {
	machineRegistryInstance = registry
}

// MachineExists reports whether the machine id resolves in the registry
func (r *DBMachineRegistry) MachineExists(machineID uint) (bool, error) {
	var machine models.Machine
	err := r.db.Select("id").First(&machine, machineID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up machine %d: %w", machineID, err)
	}
	return true, nil
}

// MachineSupplier returns the supplier of the given machine
func (r *DBMachineRegistry) MachineSupplier(machineID uint) (*models.Supplier, error) {
	var machine models.Machine
	err := r.db.Preload("Supplier").First(&machine, machineID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: machine %d", ErrUnknownMachine, machineID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up machine %d: %w", machineID, err)
	}
	return &machine.Supplier, nil
}

// ListMachines returns all registered machines with their suppliers
func (r *DBMachineRegistry) ListMachines() ([]models.Machine, error) {
	var machines []models.Machine
	if err := r.db.Preload("Supplier").Order("id ASC").Find(&machines).Error; err != nil {
		return nil, fmt.Errorf("failed to list machines: %w", err)
	}
	return machines, nil
}
