package importer

import (
	"fmt"
	"io"

	"github.com/kittipatv/shopdesk/internal/importer/kbiz"
	"github.com/kittipatv/shopdesk/internal/ledger"
)

type Service struct {
	kbizImporter Importer
}

func NewService() *Service {
	return &Service{
		kbizImporter: kbiz.New(),
	}
}

func (s *Service) Import(bank Bank, r io.Reader) ([]ledger.Transaction, error) {
	var importer Importer

	switch bank {
	case BankKBiz:
		importer = s.kbizImporter
	default:
		return nil, fmt.Errorf("unknown bank: %s", bank)
	}

	return importer.Parse(r)
}
