package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/toyz/bunner/internal/errors"
	"github.com/toyz/bunner/internal/utils"
	"github.com/toyz/bunner/internal/utils/fileops"
)

// EnvFileName is the optional dotenv file read from the project root
const EnvFileName = ".env"

// rawConfig keeps pointers so that missing sections can be told apart from empty ones
type rawConfig struct {
	Module    *ModuleConfig `json:"module"`
	SourceDir *string       `json:"sourceDir"`
	Entry     *string       `json:"entry"`
	OutDir    string        `json:"outDir"`
}

var (
	fileNameValidator = utils.NewValidatorChain(
		utils.NotEmpty("module.fileName"),
		utils.NotContainsAny("module.fileName", `/\`),
	)
	sourceDirValidator = utils.NewValidatorChain(utils.NotEmpty("sourceDir"))
	entryValidator     = utils.NewValidatorChain(utils.NotEmpty("entry"))
)

// Load finds, parses and validates the config in projectRoot
func Load(projectRoot string) (*LoadResult, error) {
	root, err := filepath.Abs(projectRoot)
	if err != nil {
		return nil, errors.NewConfigLoadError(fmt.Sprintf("invalid project root %q", projectRoot), "")
	}

	source, err := findSource(root)
	if err != nil {
		return nil, err
	}

	content, err := fileops.NewFileOps().ReadFile(source.Path)
	if err != nil {
		return nil, loadError("failed to read config", source.Path, err)
	}

	if source.Format == FormatJSONC {
		content, err = StripJSONC(source.Path, content)
		if err != nil {
			return nil, loadError("failed to parse config", source.Path, err)
		}
	}

	var raw rawConfig
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, loadError("failed to parse config", source.Path, err)
	}

	cfg, err := validate(root, raw)
	if err != nil {
		return nil, loadError("invalid config", source.Path, err)
	}

	outDir, err := outDirOverride(root)
	if err != nil {
		return nil, loadError("failed to read "+EnvFileName, filepath.Join(root, EnvFileName), err)
	}
	if outDir != "" {
		cfg.OutDir = outDir
	}

	return &LoadResult{Config: cfg, Source: source, Root: root}, nil
}

func findSource(root string) (Source, error) {
	fo := fileops.NewFileOps()
	jsonPath := filepath.Join(root, JSONFileName)
	jsoncPath := filepath.Join(root, JSONCFileName)

	hasJSON, hasJSONC := fo.Exists(jsonPath), fo.Exists(jsoncPath)
	switch {
	case hasJSON && hasJSONC:
		err := errors.NewConfigLoadError(
			fmt.Sprintf("both %s and %s exist in %s", JSONFileName, JSONCFileName, root), jsonPath)
		err.WithSuggestion("Keep exactly one config file")
		return Source{}, err
	case hasJSON:
		return Source{Path: jsonPath, Format: FormatJSON}, nil
	case hasJSONC:
		return Source{Path: jsoncPath, Format: FormatJSONC}, nil
	}

	err := errors.NewConfigLoadError(
		fmt.Sprintf("no %s or %s found in %s", JSONFileName, JSONCFileName, root), "")
	err.WithSuggestion("Create " + JSONFileName + " with module.fileName, sourceDir and entry")
	return Source{}, err
}

func validate(root string, raw rawConfig) (Config, error) {
	if raw.Module == nil {
		return Config{}, utils.ValidationError{Field: "module", Message: "is required"}
	}
	if raw.SourceDir == nil {
		return Config{}, utils.ValidationError{Field: "sourceDir", Message: "is required"}
	}
	if raw.Entry == nil {
		return Config{}, utils.ValidationError{Field: "entry", Message: "is required"}
	}

	cfg := Config{
		Module:    *raw.Module,
		SourceDir: *raw.SourceDir,
		Entry:     *raw.Entry,
		OutDir:    raw.OutDir,
	}

	if err := fileNameValidator.Validate(cfg.Module.FileName); err != nil {
		return Config{}, err
	}
	if err := sourceDirValidator.Validate(cfg.SourceDir); err != nil {
		return Config{}, err
	}
	if err := entryValidator.Validate(cfg.Entry); err != nil {
		return Config{}, err
	}

	if !utils.IsWithin(filepath.Join(root, cfg.SourceDir), filepath.Join(root, cfg.Entry)) {
		return Config{}, utils.ValidationError{
			Field:   "entry",
			Value:   cfg.Entry,
			Message: fmt.Sprintf("must be inside sourceDir %q", cfg.SourceDir),
		}
	}

	if cfg.OutDir == "" {
		cfg.OutDir = DefaultOutDir
	}
	return cfg, nil
}

// outDirOverride reads BUNNER_OUT_DIR. The process environment wins over .env.
func outDirOverride(root string) (string, error) {
	if v := os.Getenv(OutDirEnv); v != "" {
		return v, nil
	}

	env, err := godotenv.Read(filepath.Join(root, EnvFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return env[OutDirEnv], nil
}

func loadError(message, path string, cause error) *errors.ConfigLoadError {
	err := errors.NewConfigLoadError(message, path)
	err.WithCause(cause)
	return err
}
