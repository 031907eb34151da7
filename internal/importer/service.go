package importer

import (
	"fmt"
	"io"

	"github.com/mvisser/banknote/internal/importer/ing"
	"github.com/mvisser/banknote/internal/record"
)

type Service struct {
	ingImporter Importer
}

func NewService() *Service {
	return &Service{
		ingImporter: ing.NewParser(),
	}
}

func (s *Service) Import(bank Bank, r io.Reader) ([]record.Record, error) {
	var imp Importer

	switch bank {
	case BankING:
		imp = s.ingImporter
	default:
		return nil, fmt.Errorf("unknown bank: %s", bank)
	}

	return imp.Parse(r)
}
