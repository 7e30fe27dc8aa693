package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfoukoue/etude_compta_app/internal/core/domain"
)

func TestParseDate(t *testing.T) {
	d, err := domain.ParseDate("2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, domain.Date("2024-03-15"), d)

	_, err = domain.ParseDate("15/03/2024")
	assert.Error(t, err)

	_, err = domain.ParseDate("2024-02-30")
	assert.Error(t, err)

	_, err = domain.ParseDate("")
	assert.Error(t, err)
}

func TestDateOrdering(t *testing.T) {
	a := domain.Date("2024-03-15")
	b := domain.Date("2024-03-16")
	c := domain.Date("2024-12-01")

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.False(t, a.Before(a))
	// Lexicographic comparison is numerically correct for fixed-width ISO dates.
	assert.True(t, b.Before(c))
}

func TestDateDaysBetween(t *testing.T) {
	a := domain.Date("2024-03-15")
	b := domain.Date("2024-03-18")

	assert.Equal(t, 3, a.DaysBetween(b))
	assert.Equal(t, 3, b.DaysBetween(a))
	assert.Equal(t, 0, a.DaysBetween(a))
	// Across a month boundary.
	assert.Equal(t, 1, domain.Date("2024-02-29").DaysBetween("2024-03-01"))
}

func TestNewDate(t *testing.T) {
	assert.Equal(t, domain.Date("2024-01-05"), domain.NewDate(2024, time.January, 5))
}

func TestAccountClassHelpers(t *testing.T) {
	assert.Equal(t, "4", domain.ClassOf("411000"))
	assert.Equal(t, "", domain.ClassOf(""))

	assert.Equal(t, domain.NatureCredit, domain.NatureForClass("1"))
	assert.Equal(t, domain.NatureCredit, domain.NatureForClass("7"))
	assert.Equal(t, domain.NatureDebit, domain.NatureForClass("5"))

	assert.Equal(t, domain.Equity, domain.TypeForCode("101000"))
	assert.Equal(t, domain.Asset, domain.TypeForCode("512000"))
	assert.Equal(t, domain.Expense, domain.TypeForCode("601000"))
	assert.Equal(t, domain.Revenue, domain.TypeForCode("701000"))
	// Class 8: odd second digit is a charge, even a product.
	assert.Equal(t, domain.Expense, domain.TypeForCode("810000"))
	assert.Equal(t, domain.Revenue, domain.TypeForCode("820000"))
}
