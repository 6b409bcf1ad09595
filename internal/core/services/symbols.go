package services

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/EvaisaDev/UnityNetcodeWeaver/internal/core/domain"
)

// SymbolCheck verifies that an assembly ships its debug-symbol companion
type SymbolCheck struct {
	logger *slog.Logger
}

// NewSymbolCheck creates a symbol check
func NewSymbolCheck(logger *slog.Logger) *SymbolCheck {
	if logger == nil {
		logger = slog.Default()
	}
	return &SymbolCheck{logger: logger}
}

// Check reports whether the symbols for loc exist.
// A missing file is logged at error level; it is a skip, not a failure.
func (c *SymbolCheck) Check(loc domain.AssemblyLocation) bool {
	symbols := loc.SymbolsPath()
	symbolsName := fileName(symbols)

	if !fileExists(symbols) {
		c.logger.Error(
			fmt.Sprintf("Couldn't find debug information (%s) for (%s), forced to skip", symbolsName, loc.FileName()),
			"symbols", symbols,
		)
		return false
	}

	c.logger.Info(fmt.Sprintf("Found debug info (%s)", symbolsName), "symbols", symbols)
	return true
}

// fileExists checks if a file exists and is a regular file
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
