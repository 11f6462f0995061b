package repository

import (
	"context"
	"os"

	"github.com/govpulse/govpulse/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"
)

// yamlCatalog is the layout of a YAML workflow file:
//
//	workflows:
//	  - service_name: Income Certificate
//	    department: Revenue
//	    sla_days: 30
//	    steps: [DA, VRO, RI, Tahsildar, RDO]
type yamlCatalog struct {
	Workflows []*model.ServiceRecord `yaml:"workflows"`
}

func loadYAMLFile(ctx context.Context, path string) ([]*model.ServiceRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read YAML file", goerr.V("path", path))
	}

	var catalog yamlCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, goerr.Wrap(err, "failed to parse YAML catalog", goerr.V("path", path))
	}

	return catalog.Workflows, nil
}
