package synth

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter is returned when a parameter is zero, negative or
	// otherwise outside of its domain. Invalid values are never clamped.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrEncodingOverflow is returned when a sample doesn't fit the target
	// integer range and saturation is disabled.
	ErrEncodingOverflow = errors.New("encoding overflow")
	// ErrDevice is matched by every DeviceError.
	ErrDevice = errors.New("device error")
	// ErrContainer is matched by every ContainerError.
	ErrContainer = errors.New("container error")
)

// InvalidParameter returns an error which matches ErrInvalidParameter.
func InvalidParameter(name string, value interface{}) error {
	return fmt.Errorf("%w: %s=%v", ErrInvalidParameter, name, value)
}

// DeviceError is returned when audio device open, write or close fails.
// Code holds the native error code of the backend, if it has one.
type DeviceError struct {
	Op   string
	Code int
	Err  error
}

func (e *DeviceError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("device %s failed with code %d: %v", e.Op, e.Code, e.Err)
	}
	return fmt.Sprintf("device %s failed: %v", e.Op, e.Err)
}

// Unwrap returns underlying error.
func (e *DeviceError) Unwrap() error {
	return e.Err
}

// Is checks if the target is ErrDevice.
func (e *DeviceError) Is(err error) bool {
	return err == ErrDevice
}

// ContainerError is returned when container create, write or close fails,
// or when declared frame count doesn't match written frames.
type ContainerError struct {
	Op   string
	Path string
	Err  error
}

func (e *ContainerError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("container %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("container %s %s failed: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns underlying error.
func (e *ContainerError) Unwrap() error {
	return e.Err
}

// Is checks if the target is ErrContainer.
func (e *ContainerError) Is(err error) bool {
	return err == ErrContainer
}

// DeviceErr wraps err into DeviceError for provided operation. Errors that
// are already DeviceError are returned unchanged.
func DeviceErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var de *DeviceError
	if errors.As(err, &de) {
		return err
	}
	return &DeviceError{Op: op, Err: err}
}

// ContainerErr wraps err into ContainerError for provided operation. Errors
// that are already ContainerError are returned unchanged.
func ContainerErr(op, path string, err error) error {
	if err == nil {
		return nil
	}
	var ce *ContainerError
	if errors.As(err, &ce) {
		return err
	}
	return &ContainerError{Op: op, Path: path, Err: err}
}
