package importer

import (
	"io"

	"github.com/kittipatv/shopdesk/internal/ledger"
)

type Bank string

const (
	BankKBiz Bank = "kbiz"
)

// Importer parses one bank's statement export into ledger entries.
// Entries come back without ids; the state store assigns those when the
// user confirms the import.
type Importer interface {
	Parse(r io.Reader) ([]ledger.Transaction, error)
}
