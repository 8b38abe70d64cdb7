package loan

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func assertMoney(t *testing.T, want int64, got decimal.Decimal) {
	t.Helper()
	assert.True(t, d(want).Equal(got), "want %d, got %s", want, got)
}

func newDefault(t *testing.T) *Loan {
	t.Helper()
	l, err := New(DefaultTerms())
	require.NoError(t, err)
	return l
}

func TestNewDefaults(t *testing.T) {
	l := newDefault(t)

	assertMoney(t, 286000, l.Balance())
	assertMoney(t, 1700, l.MonthlyPayment())
	assert.False(t, l.IsForeclosed())
	assert.Equal(t, 0, l.MissedPayments())
	assert.Equal(t, Cumulative, l.Policy())
}

func TestNewZeroForecloseAfterUsesDefault(t *testing.T) {
	terms := DefaultTerms()
	terms.ForecloseAfter = 0
	l, err := New(terms)
	require.NoError(t, err)

	for i := 0; i < DefaultForecloseAfter-1; i++ {
		require.NoError(t, l.ReceivePayment(decimal.Zero))
	}
	assert.False(t, l.IsForeclosed())
	require.NoError(t, l.ReceivePayment(decimal.Zero))
	assert.True(t, l.IsForeclosed())
}

func TestNewInvalidTerms(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Terms)
	}{
		{"negative balance", func(t *Terms) { t.Balance = d(-1) }},
		{"zero payment", func(t *Terms) { t.MonthlyPayment = decimal.Zero }},
		{"negative payment", func(t *Terms) { t.MonthlyPayment = d(-100) }},
		{"negative foreclose after", func(t *Terms) { t.ForecloseAfter = -2 }},
		{"unknown policy", func(t *Terms) { t.Policy = MissPolicy(9) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			terms := DefaultTerms()
			tt.mutate(&terms)
			_, err := New(terms)
			assert.ErrorIs(t, err, ErrInvalidTerms)
		})
	}
}

func TestReceivePaymentDecrementsBalance(t *testing.T) {
	l := newDefault(t)

	require.NoError(t, l.ReceivePayment(d(2000)))
	assertMoney(t, 284000, l.Balance())

	require.NoError(t, l.ReceivePayment(d(20000)))
	assertMoney(t, 264000, l.Balance())
	assert.Equal(t, 0, l.MissedPayments())
}

func TestReceivePaymentPartialIsMissButApplied(t *testing.T) {
	l := newDefault(t)

	require.NoError(t, l.ReceivePayment(d(1350)))
	assertMoney(t, 284650, l.Balance())
	assert.Equal(t, 1, l.MissedPayments())
}

func TestReceivePaymentExactAmountIsNotMiss(t *testing.T) {
	l := newDefault(t)

	require.NoError(t, l.ReceivePayment(d(1700)))
	assert.Equal(t, 0, l.MissedPayments())
}

func TestReceivePaymentNegative(t *testing.T) {
	l := newDefault(t)

	err := l.ReceivePayment(d(-5))
	assert.ErrorIs(t, err, ErrNegativeAmount)
	assertMoney(t, 286000, l.Balance())
	assert.Equal(t, 0, l.MissedPayments())
}

func TestForeclosedAfterFiveMisses(t *testing.T) {
	l := newDefault(t)

	for i := 0; i < 4; i++ {
		assert.False(t, l.IsForeclosed())
		require.NoError(t, l.ReceivePayment(decimal.Zero))
	}
	assert.False(t, l.IsForeclosed())

	require.NoError(t, l.ReceivePayment(decimal.Zero))
	assert.True(t, l.IsForeclosed())
	assert.Equal(t, 5, l.MissedPayments())
}

func TestForeclosedIsTerminal(t *testing.T) {
	l := newDefault(t)
	for i := 0; i < 5; i++ {
		require.NoError(t, l.ReceivePayment(decimal.Zero))
	}
	require.True(t, l.IsForeclosed())
	before := l.Balance()

	err := l.ReceivePayment(d(50000))
	assert.ErrorIs(t, err, ErrForeclosed)
	assert.True(t, l.IsForeclosed())
	assert.True(t, before.Equal(l.Balance()))
	assert.Equal(t, 5, l.MissedPayments())
}

func TestMissPolicies(t *testing.T) {
	// miss, miss, pay, miss x3, pay, miss x2
	payments := []int64{0, 0, 1700, 0, 0, 0, 1700, 0, 0}

	tests := []struct {
		policy         MissPolicy
		wantForeclosed bool
		wantMissed     int
		wantAt         int // index of the payment that forecloses, -1 if none
	}{
		{Cumulative, true, 5, 5},
		{Consecutive, false, 2, -1},
	}

	for _, tt := range tests {
		t.Run(tt.policy.String(), func(t *testing.T) {
			terms := DefaultTerms()
			terms.Policy = tt.policy
			l, err := New(terms)
			require.NoError(t, err)

			at := -1
			for i, p := range payments {
				err := l.ReceivePayment(d(p))
				if l.IsForeclosed() && at == -1 {
					require.NoError(t, err)
					at = i
					continue
				}
				if at >= 0 {
					assert.ErrorIs(t, err, ErrForeclosed)
				} else {
					require.NoError(t, err)
				}
			}

			assert.Equal(t, tt.wantForeclosed, l.IsForeclosed())
			assert.Equal(t, tt.wantMissed, l.MissedPayments())
			assert.Equal(t, tt.wantAt, at)
		})
	}
}

func TestConsecutiveForeclosesOnFiveInARow(t *testing.T) {
	terms := DefaultTerms()
	terms.Policy = Consecutive
	l, err := New(terms)
	require.NoError(t, err)

	require.NoError(t, l.ReceivePayment(decimal.Zero))
	require.NoError(t, l.ReceivePayment(d(1700)))
	for i := 0; i < 4; i++ {
		require.NoError(t, l.ReceivePayment(decimal.Zero))
		assert.False(t, l.IsForeclosed())
	}
	require.NoError(t, l.ReceivePayment(decimal.Zero))
	assert.True(t, l.IsForeclosed())
}

func TestGettersAreIdempotent(t *testing.T) {
	l := newDefault(t)
	require.NoError(t, l.ReceivePayment(d(300)))

	for i := 0; i < 3; i++ {
		assertMoney(t, 285700, l.Balance())
		assertMoney(t, 1700, l.MonthlyPayment())
		assert.False(t, l.IsForeclosed())
		assert.Equal(t, 1, l.MissedPayments())
	}
}

func TestParseMissPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    MissPolicy
		wantErr bool
	}{
		{"", Cumulative, false},
		{"cumulative", Cumulative, false},
		{"Consecutive", Consecutive, false},
		{" consecutive ", Consecutive, false},
		{"weekly", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMissPolicy(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMissPolicyString(t *testing.T) {
	assert.Equal(t, "cumulative", Cumulative.String())
	assert.Equal(t, "consecutive", Consecutive.String())
	assert.Equal(t, "MissPolicy(7)", MissPolicy(7).String())
}
