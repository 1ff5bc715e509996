package config

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/BurntSushi/toml"
	domainErrors "github.com/thomas-vilte/remove-from-project/internal/errors"
)

// FileConfig is the optional TOML file with default inputs. The token is
// never read from it.
type FileConfig struct {
	ProjectOwner    string `toml:"project-owner"`
	ProjectNumber   int    `toml:"project-number"`
	IssueOwner      string `toml:"issue-owner"`
	IssueRepository string `toml:"issue-repository"`
	FailIfNotFound  *bool  `toml:"fail-if-not-found"`
	APIURL          string `toml:"api-url"`
	GraphQLURL      string `toml:"graphql-url"`
	Language        string `toml:"language"`
	Timeout         string `toml:"timeout"`
}

// LoadFile reads a defaults file. Unknown keys are rejected.
func LoadFile(path string) (*FileConfig, error) {
	var fc FileConfig
	meta, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return nil, domainErrors.ErrConfigFile.WithError(err).WithContext("path", path)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, domainErrors.ErrConfigFile.
			WithError(fmt.Errorf("unknown key %q", undecoded[0].String())).
			WithContext("path", path)
	}

	if err := validateFile(&fc); err != nil {
		return nil, domainErrors.ErrConfigFile.WithError(err).WithContext("path", path)
	}

	return &fc, nil
}

func validateFile(fc *FileConfig) error {
	if fc.ProjectNumber < 0 {
		return errors.New("project-number must be greater than 0")
	}
	if fc.Language != "" && fc.Language != LangEN && fc.Language != LangES {
		return fmt.Errorf("language not supported: %s", fc.Language)
	}
	return nil
}

// ApplyTo fills the inputs left empty with the file values.
func (fc *FileConfig) ApplyTo(in *Inputs) {
	if fc == nil {
		return
	}
	setDefault(&in.ProjectOwner, fc.ProjectOwner)
	if fc.ProjectNumber > 0 {
		setDefault(&in.ProjectNumber, strconv.Itoa(fc.ProjectNumber))
	}
	setDefault(&in.IssueOwner, fc.IssueOwner)
	setDefault(&in.IssueRepository, fc.IssueRepository)
	if fc.FailIfNotFound != nil {
		setDefault(&in.FailIfNotFound, strconv.FormatBool(*fc.FailIfNotFound))
	}
	setDefault(&in.APIURL, fc.APIURL)
	setDefault(&in.GraphQLURL, fc.GraphQLURL)
	setDefault(&in.Language, fc.Language)
	setDefault(&in.Timeout, fc.Timeout)
}

func setDefault(field *string, value string) {
	if *field == "" && value != "" {
		*field = value
	}
}
