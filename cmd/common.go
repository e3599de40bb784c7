/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/valpere/contran/internal/backend"
)

// buildCompleter constructs the OpenRouter client from the flag value,
// falling back to config/env.
func buildCompleter(flagKey string, logger *zap.Logger) (backend.Completer, error) {
	apiKey := flagKey
	if apiKey == "" {
		apiKey = viper.GetString("openrouter.api_key")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("OpenRouter API key required (--openrouter-key, CONTRAN_OPENROUTER_API_KEY, or config)")
	}
	return backend.NewOpenRouterClient(apiKey, "", logger), nil
}

// buildDedicated constructs the dedicated translation client, or nil when
// the deployment has not enabled one.
func buildDedicated(enabled bool, provider, deeplKey string, deeplFree bool, googleCredentials string) (backend.DedicatedTranslator, error) {
	if !enabled {
		return nil, nil
	}
	switch provider {
	case "deepl":
		key := deeplKey
		if key == "" {
			key = viper.GetString("deepl.api_key")
		}
		if key == "" {
			return nil, fmt.Errorf("DeepL API key required when the dedicated service is enabled")
		}
		return backend.NewDeepLClient(key, deeplFree), nil
	case "google":
		creds := googleCredentials
		if creds == "" {
			creds = viper.GetString("google.credentials")
		}
		return backend.NewGoogleTranslator(creds), nil
	default:
		return nil, fmt.Errorf("unknown dedicated provider: %s", provider)
	}
}

// formatCost renders thousandths of a cent as dollars for display.
func formatCost(thousandthsCent uint64) string {
	return fmt.Sprintf("$%.5f", float64(thousandthsCent)/100_000)
}
