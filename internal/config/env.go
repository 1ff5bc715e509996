package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	domainErrors "github.com/thomas-vilte/remove-from-project/internal/errors"
)

const DefaultEnvFile = ".env"

// LoadEnvFile exports the variables of a dotenv file, e.g. INPUT_TOKEN, for
// local runs. Variables that are already set win. A missing file is ignored.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return domainErrors.ErrConfigFile.WithError(err).WithContext("path", path)
	}
	return nil
}
