package services

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/sbilibin2017/gw-bank-client/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var viewNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

func decodeRecords(t *testing.T, raw string) []models.TransactionRecord {
	t.Helper()
	var records []models.TransactionRecord
	require.NoError(t, json.Unmarshal([]byte(raw), &records))
	return records
}

var viewAccount = models.Account{ID: 7, AccountNumber: "100000000007", AccountType: models.AccountTypeSavings}

const viewRecords = `[
	{"id": 1, "account": 7, "transaction_type": "DEPOSIT", "amount": "100.00", "created_at": "2024-03-09T10:00:00Z"},
	{"id": 2, "account": 7, "transaction_type": "WITHDRAWAL", "amount": "25.50", "created_at": "2024-03-01T10:00:00Z"},
	{"id": 3, "account": 7, "transaction_type": "TRANSFER", "amount": "40", "recipient_account": {"id": 9, "account_number": "100000000009"}, "created_at": "2024-03-08T10:00:00Z"},
	{"id": 4, "account": 9, "transaction_type": "TRANSFER", "amount": "15", "recipient_account": {"id": 7, "account_number": "100000000007"}, "created_at": "2024-02-01T10:00:00Z"},
	{"id": 5, "account": 7, "transaction_type": "REFUND", "amount": "3", "created_at": "2024-03-10T09:00:00Z"},
	{"id": 6, "account": 7, "transaction_type": "DEPOSIT", "amount": "1", "created_at": ""}
]`

func newLoadedStore(t *testing.T) *ViewStateStore {
	t.Helper()
	s := NewViewStateStore(models.DefaultRecencyDays, fixedClock(viewNow))
	s.ReplaceSnapshot(viewAccount, decodeRecords(t, viewRecords))
	return s
}

func viewIDs(view []models.TransactionView) []int64 {
	ids := make([]int64, len(view))
	for i, v := range view {
		ids[i] = v.ID
	}
	return ids
}

func TestViewStateStore_Defaults(t *testing.T) {
	s := NewViewStateStore(models.DefaultRecencyDays, nil)

	assert.Equal(t, models.DefaultFilters(), s.Filters())
	_, ok := s.Account()
	assert.False(t, ok)
	assert.Empty(t, s.Snapshot())

	view := s.FilteredView()
	assert.NotNil(t, view)
	assert.Empty(t, view)
}

func TestViewStateStore_FilteredView(t *testing.T) {
	tests := []struct {
		name    string
		days    int
		txType  models.TransactionType
		wantIDs []int64
	}{
		{
			name:    "default week keeps recent and undated records",
			days:    7,
			wantIDs: []int64{1, 3, 5, 6},
		},
		{
			name:    "zero window shows all history",
			days:    0,
			wantIDs: []int64{1, 2, 3, 4, 5, 6},
		},
		{
			name:    "transfers only",
			days:    0,
			txType:  models.TransactionTypeTransfer,
			wantIDs: []int64{3, 4},
		},
		{
			name:    "recent transfers",
			days:    7,
			txType:  models.TransactionTypeTransfer,
			wantIDs: []int64{3},
		},
		{
			name:    "withdrawals in the last day",
			days:    1,
			txType:  models.TransactionTypeWithdraw,
			wantIDs: []int64{},
		},
		{
			name:    "deposits keep undated ones",
			days:    2,
			txType:  models.TransactionTypeDeposit,
			wantIDs: []int64{1, 6},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newLoadedStore(t)
			require.NoError(t, s.SetRecencyFilter(tt.days))
			require.NoError(t, s.SetTypeFilter(tt.txType))

			assert.Equal(t, tt.wantIDs, viewIDs(s.FilteredView()))
		})
	}
}

func TestViewStateStore_Signs(t *testing.T) {
	s := newLoadedStore(t)
	require.NoError(t, s.SetRecencyFilter(0))

	got := map[int64]string{}
	for _, v := range s.FilteredView() {
		got[v.ID] = v.DisplayAmount
	}

	assert.Equal(t, map[int64]string{
		1: "+100.00",
		2: "-25.50",
		3: "-40.00",
		4: "+15.00",
		5: "-3.00",
		6: "+1.00",
	}, got)
}

func TestViewStateStore_UnknownTypeDisplaysRawValue(t *testing.T) {
	s := newLoadedStore(t)

	for _, v := range s.FilteredView() {
		if v.ID == 5 {
			assert.Equal(t, models.TransactionTypeOther, v.Type)
			assert.Equal(t, "REFUND", v.DisplayType)
			assert.Equal(t, models.SignDebit, v.Sign)
			return
		}
	}
	t.Fatal("unknown type record missing from unfiltered view")
}

func TestViewStateStore_RecipientVariants(t *testing.T) {
	records := decodeRecords(t, `[
		{"id": 1, "transaction_type": "TRANSFER", "amount": "1", "recipient_account": {"account_number": "100000000007"}},
		{"id": 2, "transaction_type": "TRANSFER", "amount": "1", "recipient_account": "100000000007"},
		{"id": 3, "transaction_type": "TRANSFER", "amount": "1", "recipient_account": 7},
		{"id": 4, "transaction_type": "TRANSFER", "amount": "1", "recipient_account_number": "100000000007"},
		{"id": 5, "transaction_type": "TRANSFER", "amount": "1", "recipient_account": null},
		{"id": 6, "transaction_type": "TRANSFER", "amount": "1"},
		{"id": 7, "transaction_type": "TRANSFER", "amount": "1", "recipient_account": 8},
		{"id": 8, "transaction_type": "transfer", "amount": "1", "recipient_account": {"id": 7, "account_number": 100000000007}}
	]`)

	s := NewViewStateStore(0, fixedClock(viewNow))
	s.ReplaceSnapshot(viewAccount, records)

	signs := map[int64]models.Sign{}
	for _, v := range s.FilteredView() {
		signs[v.ID] = v.Sign
	}
	assert.Equal(t, map[int64]models.Sign{
		1: models.SignCredit,
		2: models.SignCredit,
		3: models.SignCredit,
		4: models.SignCredit,
		5: models.SignDebit,
		6: models.SignDebit,
		7: models.SignDebit,
		8: models.SignCredit,
	}, signs)

	snapshot := s.Snapshot()
	assert.Equal(t, "100000000007", snapshot[0].RecipientAccountNumber)
	assert.Equal(t, "100000000007", snapshot[1].RecipientAccountNumber)
	assert.Equal(t, int64(7), snapshot[2].RecipientAccountID)
	assert.Empty(t, snapshot[2].RecipientAccountNumber)
	assert.Empty(t, snapshot[4].RecipientAccountNumber)
}

func TestViewStateStore_CutoffIsInclusive(t *testing.T) {
	records := []models.TransactionRecord{
		{ID: 1, TransactionType: "DEPOSIT", Amount: decimal.NewFromInt(1), CreatedAt: "2024-03-03T12:00:00Z"},
		{ID: 2, TransactionType: "DEPOSIT", Amount: decimal.NewFromInt(1), CreatedAt: "2024-03-03T11:59:59Z"},
	}
	s := NewViewStateStore(7, fixedClock(viewNow))
	s.ReplaceSnapshot(viewAccount, records)

	assert.Equal(t, []int64{1}, viewIDs(s.FilteredView()))
}

func TestViewStateStore_CutoffFollowsClock(t *testing.T) {
	now := viewNow
	s := NewViewStateStore(7, func() time.Time { return now })
	s.ReplaceSnapshot(viewAccount, decodeRecords(t, viewRecords))

	before := viewIDs(s.FilteredView())
	now = now.AddDate(0, 0, 5)
	after := viewIDs(s.FilteredView())

	assert.Equal(t, []int64{1, 3, 5, 6}, before)
	assert.Equal(t, []int64{1, 5, 6}, after)
}

func TestViewStateStore_NegativeWindowRejected(t *testing.T) {
	s := newLoadedStore(t)
	require.NoError(t, s.SetRecencyFilter(30))

	err := s.SetRecencyFilter(-1)

	assert.ErrorIs(t, err, ErrInvalidRecencyWindow)
	assert.Equal(t, 30, s.Filters().RecencyDays)
}

func TestViewStateStore_InvalidTypeFilterRejected(t *testing.T) {
	s := newLoadedStore(t)
	require.NoError(t, s.SetTypeFilter(models.TransactionTypeDeposit))

	err := s.SetTypeFilter(models.TransactionTypeOther)

	assert.ErrorIs(t, err, ErrInvalidTypeFilter)
	assert.Equal(t, models.TransactionTypeDeposit, s.Filters().Type)
}

func TestViewStateStore_ViewDoesNotMutateSnapshot(t *testing.T) {
	s := newLoadedStore(t)
	before := s.Snapshot()

	require.NoError(t, s.SetTypeFilter(models.TransactionTypeWithdraw))
	first := s.FilteredView()
	second := s.FilteredView()
	require.NoError(t, s.SetTypeFilter(models.TypeFilterNone))
	require.NoError(t, s.SetRecencyFilter(0))

	assert.Equal(t, first, second)
	assert.Equal(t, before, s.Snapshot())
	assert.Len(t, s.FilteredView(), len(before))
}

func TestViewStateStore_FilterOrderCommutes(t *testing.T) {
	a := newLoadedStore(t)
	require.NoError(t, a.SetRecencyFilter(30))
	require.NoError(t, a.SetTypeFilter(models.TransactionTypeTransfer))

	b := newLoadedStore(t)
	require.NoError(t, b.SetTypeFilter(models.TransactionTypeTransfer))
	require.NoError(t, b.SetRecencyFilter(30))

	assert.Equal(t, a.FilteredView(), b.FilteredView())
}

func TestViewStateStore_ReplaceSnapshotIsWholesale(t *testing.T) {
	s := newLoadedStore(t)
	other := models.Account{ID: 9, AccountNumber: "100000000009"}

	s.ReplaceSnapshot(other, decodeRecords(t, `[{"id": 42, "transaction_type": "DEPOSIT", "amount": "5", "created_at": "2024-03-10T00:00:00Z"}]`))

	account, ok := s.Account()
	require.True(t, ok)
	assert.Equal(t, other, account)
	assert.Equal(t, []int64{42}, viewIDs(s.FilteredView()))
}

func TestViewStateStore_ClearAccountKeepsFilters(t *testing.T) {
	s := newLoadedStore(t)
	require.NoError(t, s.SetRecencyFilter(30))

	s.ClearAccount()

	_, ok := s.Account()
	assert.False(t, ok)
	assert.Empty(t, s.FilteredView())
	assert.Equal(t, 30, s.Filters().RecencyDays)
}

func TestViewStateStore_Reset(t *testing.T) {
	s := newLoadedStore(t)
	require.NoError(t, s.SetRecencyFilter(0))
	require.NoError(t, s.SetTypeFilter(models.TransactionTypeDeposit))
	s.ReplaceLoans([]models.Loan{{LoanID: 1}})

	s.Reset()

	assert.Equal(t, models.DefaultFilters(), s.Filters())
	assert.Empty(t, s.Snapshot())
	assert.Empty(t, s.LoanView(models.LoanStatusAny))
	_, ok := s.Account()
	assert.False(t, ok)
}

func TestViewStateStore_LoanView(t *testing.T) {
	var loans []models.Loan
	require.NoError(t, json.Unmarshal([]byte(`[
		{"loan_id": 1, "status": "PENDING", "loan_amount": "10000"},
		{"loan_id": 2, "status": "ACCEPTED", "loan_amount": "20000"},
		{"loan_id": 3, "status": "DEFAULTED", "loan_amount": "30000"},
		{"loan_id": 4, "status": "pending", "loan_amount": "40000"}
	]`), &loans))

	s := NewViewStateStore(7, nil)
	s.ReplaceLoans(loans)

	pending := s.LoanView(models.LoanStatusPending)
	require.Len(t, pending, 2)
	assert.Equal(t, int64(1), pending[0].LoanID)
	assert.Equal(t, int64(4), pending[1].LoanID)

	other := s.LoanView(models.LoanStatusOther)
	require.Len(t, other, 1)
	assert.Equal(t, int64(3), other[0].LoanID)

	assert.Len(t, s.LoanView(models.LoanStatusAny), 4)
}

func TestViewStateStore_ConcurrentAccess(t *testing.T) {
	s := newLoadedStore(t)
	records := decodeRecords(t, viewRecords)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(3)
		go func(days int) {
			defer wg.Done()
			_ = s.SetRecencyFilter(days)
		}(i)
		go func() {
			defer wg.Done()
			s.ReplaceSnapshot(viewAccount, records)
		}()
		go func() {
			defer wg.Done()
			_ = s.FilteredView()
		}()
	}
	wg.Wait()

	assert.Len(t, s.Snapshot(), len(records))
}

func TestViewStateStore_ReplaceSnapshotIsIdempotent(t *testing.T) {
	records := decodeRecords(t, viewRecords)

	once := NewViewStateStore(models.DefaultRecencyDays, fixedClock(viewNow))
	once.ReplaceSnapshot(viewAccount, records)

	twice := NewViewStateStore(models.DefaultRecencyDays, fixedClock(viewNow))
	twice.ReplaceSnapshot(viewAccount, records)
	first := twice.FilteredView()
	twice.ReplaceSnapshot(viewAccount, records)

	assert.Equal(t, first, twice.FilteredView())
	assert.Equal(t, once.FilteredView(), twice.FilteredView())
	assert.Equal(t, once.Snapshot(), twice.Snapshot())
}

func TestViewStateStore_SetFilters(t *testing.T) {
	t.Run("applies both", func(t *testing.T) {
		s := newLoadedStore(t)
		days := 30
		transfer := models.TransactionTypeTransfer

		require.NoError(t, s.SetFilters(&days, &transfer))
		assert.Equal(t, models.Filters{RecencyDays: 30, Type: transfer}, s.Filters())
	})

	t.Run("nil leaves a filter alone", func(t *testing.T) {
		s := newLoadedStore(t)
		deposit := models.TransactionTypeDeposit

		require.NoError(t, s.SetFilters(nil, &deposit))
		assert.Equal(t, models.Filters{RecencyDays: models.DefaultRecencyDays, Type: deposit}, s.Filters())
	})

	t.Run("invalid type keeps the window", func(t *testing.T) {
		s := newLoadedStore(t)
		before := s.Filters()
		days := 0
		other := models.TransactionTypeOther

		assert.ErrorIs(t, s.SetFilters(&days, &other), ErrInvalidTypeFilter)
		assert.Equal(t, before, s.Filters())
	})

	t.Run("negative window keeps the type", func(t *testing.T) {
		s := newLoadedStore(t)
		before := s.Filters()
		days := -1
		deposit := models.TransactionTypeDeposit

		assert.ErrorIs(t, s.SetFilters(&days, &deposit), ErrInvalidRecencyWindow)
		assert.Equal(t, before, s.Filters())
	})
}

func TestViewStateStore_CurrentIsConsistent(t *testing.T) {
	s := NewViewStateStore(0, fixedClock(viewNow))
	recordsA := decodeRecords(t, viewRecords)
	accountB := models.Account{ID: 9, AccountNumber: "100000000009"}
	recordsB := decodeRecords(t, `[{"id": 42, "account": 9, "transaction_type": "DEPOSIT", "amount": "5", "created_at": "2024-03-10T00:00:00Z"}]`)
	s.ReplaceSnapshot(viewAccount, recordsA)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				s.ReplaceSnapshot(accountB, recordsB)
			} else {
				s.ReplaceSnapshot(viewAccount, recordsA)
			}
		}(i)
		go func() {
			defer wg.Done()
			current := s.Current()
			if !assert.NotNil(t, current.Account) {
				return
			}
			if current.Account.ID == accountB.ID {
				assert.Equal(t, []int64{42}, viewIDs(current.Transactions))
			} else {
				assert.Len(t, current.Transactions, len(recordsA))
			}
		}()
	}
	wg.Wait()
}
