package validate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khayaprop/khaya/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIDNumber(t *testing.T) {
	cases := []struct {
		id    string
		valid bool
	}{
		{"9001015000085", true},
		{"8502154700089", true},
		{"9207305800080", true},
		{"9001015000086", false}, // bad check digit
		{"900101500008", false},  // 12 digits
		{"90010150000850", false},
		{"900101500008a", false},
		{"", false},
	}
	for _, c := range cases {
		assert.Equal(t, c.valid, IDNumber(c.id), "id %q", c.id)
	}
}

func TestPhone(t *testing.T) {
	assert.True(t, Phone("0821234567"))
	assert.True(t, Phone("+27821234567"))
	assert.False(t, Phone("0021234567"))
	assert.False(t, Phone("082123456"))
	assert.False(t, Phone("08212345678"))
	assert.False(t, Phone("27821234567"))
}

func TestPostalCode(t *testing.T) {
	assert.True(t, PostalCode("0001"))
	assert.True(t, PostalCode("7700"))
	assert.False(t, PostalCode("123"))
	assert.False(t, PostalCode("12345"))
	assert.False(t, PostalCode("12a4"))
}

func TestProvinceCodes(t *testing.T) {
	require.Len(t, ProvinceCodes, 9)
	assert.Equal(t, "GP", ProvinceCodes["Gauteng"])
	assert.Equal(t, "KZN", ProvinceCodes["KwaZulu-Natal"])
	assert.Equal(t, "WC", ProvinceCodes["Western Cape"])
	assert.False(t, Province("Transvaal"))
}

func TestBranchCode(t *testing.T) {
	assert.True(t, BranchCode("632005"))
	assert.False(t, BranchCode("63200"))
	assert.False(t, BranchCode("6320055"))
}

func TestLandlordValidation(t *testing.T) {
	l := &models.Landlord{
		FirstName: "Thabo",
		LastName:  "Nkosi",
		Email:     "thabo@example.co.za",
		Phone:     "0821234567",
		IDNumber:  "9001015000085",
	}
	assert.True(t, Landlord(l).OK())

	l.Email = "not-an-email"
	e := Landlord(l)
	require.False(t, e.OK())
	assert.Contains(t, e, "email")

	e = Landlord(&models.Landlord{})
	assert.Contains(t, e, "first_name")
	assert.Contains(t, e, "last_name")
	assert.Contains(t, e, "email")
}

func TestPropertyValidation(t *testing.T) {
	p := &models.Property{
		LandlordID: 1,
		Name:       "Protea House",
		Type:       models.PropertyTypeHouse,
		Status:     models.PropertyStatusVacant,
		Province:   "Gauteng",
		PostalCode: "2196",
	}
	assert.True(t, Property(p).OK())

	p.Province = "Atlantis"
	e := Property(p)
	require.False(t, e.OK())
	assert.Contains(t, e, "province")

	p.Province = "Gauteng"
	p.MonthlyRent = -100
	e = Property(p)
	assert.Contains(t, e, "monthly_rent")

	e = Property(&models.Property{Name: "x", Type: "castle", Status: models.PropertyStatusVacant})
	assert.Contains(t, e, "landlord_id")
	assert.Contains(t, e, "type")
}

func TestLeaseValidation(t *testing.T) {
	l := &models.Lease{
		PropertyID:        1,
		TenantID:          1,
		StartDate:         date(2026, 1, 1),
		EndDate:           date(2026, 12, 31),
		MonthlyRent:       8500,
		PaymentDayOfMonth: 1,
		Status:            models.LeaseStatusActive,
	}
	assert.True(t, Lease(l).OK())

	l.EndDate = date(2025, 12, 31)
	e := Lease(l)
	require.False(t, e.OK())
	assert.Contains(t, e, "end_date")

	l.EndDate = date(2026, 12, 31)
	l.PaymentDayOfMonth = 31
	e = Lease(l)
	assert.Contains(t, e, "payment_day_of_month")
}

func TestBankAccountValidation(t *testing.T) {
	b := &models.BankAccount{
		LandlordID:    1,
		BankName:      "FNB",
		AccountNumber: "62001234567",
		BranchCode:    "250655",
		AccountType:   models.AccountTypeCheque,
	}
	assert.True(t, BankAccount(b).OK())

	b.AccountType = "offshore"
	e := BankAccount(b)
	assert.Contains(t, e, "account_type")
}

func TestPaymentValidation(t *testing.T) {
	e := Payment(&models.Payment{LeaseID: 1, Reference: "PAY-1", Method: models.PaymentMethodEFT})
	assert.Contains(t, e, "amount")
	assert.Contains(t, e, "paid_at")
}
