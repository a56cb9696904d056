package seeder

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed sample_catalog.yaml
var sampleCatalog []byte

// Record is one catalog row as written in the dataset, keyed by wire field name.
type Record map[string]any

// Dataset is a sample catalog grouped by collection.
type Dataset struct {
	Parameters   []Record `yaml:"parametros"`
	Steps        []Record `yaml:"etapas"`
	Routes       []Record `yaml:"rotas"`
	Operations   []Record `yaml:"operacoes"`
	Coefficients []Record `yaml:"coeficientes"`
	Rules        []Record `yaml:"regras"`
	Projects     []Record `yaml:"projetos"`
}

// LoadDataset parses the YAML catalog at path, or the embedded sample when
// path is empty.
func LoadDataset(path string) (Dataset, error) {
	data := sampleCatalog
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Dataset{}, fmt.Errorf("read dataset: %w", err)
		}
		data = b
	}
	return ParseDataset(data)
}

// ParseDataset decodes a YAML catalog.
func ParseDataset(data []byte) (Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return Dataset{}, fmt.Errorf("parse dataset: %w", err)
	}
	return ds, nil
}

// decodeRecord maps a dataset record onto a create input through its JSON
// field names, the same names the REST API accepts.
func decodeRecord[C any](r Record) (C, error) {
	var in C
	b, err := json.Marshal(r)
	if err != nil {
		return in, fmt.Errorf("encode record: %w", err)
	}
	if err := json.Unmarshal(b, &in); err != nil {
		return in, fmt.Errorf("decode record: %w", err)
	}
	return in, nil
}
