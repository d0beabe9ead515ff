package config

import (
	"fmt"
	"path/filepath"

	"github.com/Veraticus/appraise/internal/common"
	"github.com/Veraticus/appraise/internal/model"
	"github.com/Veraticus/appraise/internal/pattern"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// LoadSchema resolves the export schema. It follows this precedence:
// 1. A custom schema under the "schema" key (from config file)
// 2. The preset named by "schema.preset" (flag, APPRAISE_SCHEMA_PRESET, or file)
// 3. The css preset
func LoadSchema(v *viper.Viper) (model.Schema, error) {
	if v.IsSet("schema.topic") || v.IsSet("schema.text") || v.IsSet("schema.document_name") {
		var schema model.Schema
		if err := v.UnmarshalKey("schema", &schema); err != nil {
			return model.Schema{}, fmt.Errorf("%w: schema: %w", common.ErrInvalidConfig, err)
		}
		if schema.Name == "" {
			schema.Name = "custom"
		}
		if err := schema.Validate(); err != nil {
			return model.Schema{}, fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
		}
		return schema, nil
	}

	name := v.GetString("schema.preset")
	if name == "" {
		name = "css"
	}
	schema, err := model.SchemaByName(name)
	if err != nil {
		return model.Schema{}, fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}
	return schema, nil
}

// LoadCategoryRules returns the category vocabulary from the "categories" key,
// or the built-in vocabulary when none is configured.
func LoadCategoryRules(v *viper.Viper) ([]pattern.CategoryRules, error) {
	if !v.IsSet("categories") {
		return pattern.DefaultRules(), nil
	}

	var defs []pattern.CategoryRules
	if err := v.UnmarshalKey("categories", &defs); err != nil {
		return nil, fmt.Errorf("%w: categories: %w", common.ErrInvalidConfig, err)
	}
	if len(defs) == 0 {
		return nil, fmt.Errorf("%w: categories is empty", common.ErrInvalidConfig)
	}
	return defs, nil
}

// ValidateExportRoot expands root and checks that it names an existing
// directory. The expanded, absolute path is returned.
func ValidateExportRoot(fs afero.Fs, root string) (string, error) {
	if root == "" {
		return "", fmt.Errorf("%w: export root is required", common.ErrInvalidExportRoot)
	}

	expanded := ExpandPath(root)
	if abs, err := filepath.Abs(expanded); err == nil {
		expanded = abs
	}

	info, err := fs.Stat(expanded)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrInvalidExportRoot, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", common.ErrInvalidExportRoot, expanded)
	}
	return expanded, nil
}
