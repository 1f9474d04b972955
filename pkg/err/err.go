package errprocess

import (
	"errors"

	"github.com/assafmilner/The-Stand-sub001/pkg/logger"
)

// Set set err info
func Set(errMsg string) error {
	logger.Log.Error(errMsg)
	return errors.New(errMsg)
}
