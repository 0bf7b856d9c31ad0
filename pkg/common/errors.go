package common

import "fmt"

type DecodeError struct {
	Name    string
	Message string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("Decode Error: %s: %s", e.Name, e.Message)
}

type EncodeError struct {
	Name    string
	Message string
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("Encode Error: %s: %s", e.Name, e.Message)
}

type ArchiveError struct {
	Message string
}

func (e *ArchiveError) Error() string {
	return fmt.Sprintf("Archive Error: %s", e.Message)
}

type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("Configuration Error: %s", e.Message)
}

func NewDecodeError(name, message string) error {
	return &DecodeError{Name: name, Message: message}
}

func NewEncodeError(name, message string) error {
	return &EncodeError{Name: name, Message: message}
}

func NewArchiveError(message string) error {
	return &ArchiveError{Message: message}
}

func NewConfigError(message string) error {
	return &ConfigError{Message: message}
}
