package services

import (
	"fmt"

	"github.com/lurchmath/lurchmath-sub002/internal/data/embedded"
)

// GetGlobalHelpLoaderService returns the help loader service from the
// global registry.
func GetGlobalHelpLoaderService() (*embedded.HelpLoaderService, error) {
	service, err := GetGlobalRegistry().GetService("help-loader")
	if err != nil {
		return nil, err
	}

	helpService, ok := service.(*embedded.HelpLoaderService)
	if !ok {
		return nil, fmt.Errorf("service 'help-loader' is not a HelpLoaderService")
	}

	return helpService, nil
}
