package importer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittipatv/shopdesk/internal/importer"
)

func TestService_Import(t *testing.T) {
	svc := importer.NewService()

	t.Run("dispatches kbiz", func(t *testing.T) {
		csv := `Transaction Date,Description,Withdrawal,Deposit
05/08/2026,Service fee,,250.00
`

		txs, err := svc.Import(importer.BankKBiz, strings.NewReader(csv))
		require.NoError(t, err)
		require.Len(t, txs, 1)
		assert.Equal(t, 250.0, txs[0].Amount)
	})

	t.Run("unknown bank", func(t *testing.T) {
		_, err := svc.Import(importer.Bank("SCB"), strings.NewReader(""))
		assert.Error(t, err)
	})
}
