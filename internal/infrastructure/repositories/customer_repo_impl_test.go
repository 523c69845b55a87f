package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"tujenge.backend/internal/domain/entities"
	domainerrors "tujenge.backend/internal/domain/errors"
)

func seedCustomer(n int) *entities.Customer {
	return &entities.Customer{
		ID:                uuid.New(),
		CustomerNumber:    fmt.Sprintf("CUS-2026-%06d", n),
		CustomerType:      entities.CustomerTypeIndividual,
		FirstName:         "Fatma",
		LastName:          "Juma",
		PhoneNumber:       fmt.Sprintf("+25571400%04d", n),
		NIDANumber:        null.StringFrom(fmt.Sprintf("1985071512345678%04d", n)[:20]),
		DateOfBirth:       time.Date(1985, 7, 15, 0, 0, 0, 0, time.UTC),
		Gender:            entities.GenderFemale,
		Region:            "Dar es Salaam",
		District:          "Ilala",
		MonthlyIncome:     null.Float64From(850000),
		CreditScore:       500,
		PreferredLanguage: entities.LanguageSwahili,
		SMSNotifications:  true,
		KYCStatus:         entities.KYCStatusPending,
		Status:            entities.CustomerStatusActive,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}
}

func TestCustomerRepository_CreateAndLookups(t *testing.T) {
	db := newTestDB(t)
	createCustomerTable(t, db)
	repo := NewCustomerRepository(db)
	ctx := context.Background()

	c := seedCustomer(1)
	c.MiddleName = null.StringFrom("Binti")
	require.NoError(t, repo.Create(ctx, c))

	byID, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, c.CustomerNumber, byID.CustomerNumber)
	require.Equal(t, "Fatma Binti Juma", byID.FullName())
	require.True(t, byID.MonthlyIncome.Valid)

	byNumber, err := repo.GetByCustomerNumber(ctx, c.CustomerNumber)
	require.NoError(t, err)
	require.Equal(t, c.ID, byNumber.ID)

	byPhone, err := repo.GetByPhoneNumber(ctx, c.PhoneNumber)
	require.NoError(t, err)
	require.Equal(t, c.ID, byPhone.ID)

	byNIDA, err := repo.GetByNIDANumber(ctx, c.NIDANumber.String)
	require.NoError(t, err)
	require.Equal(t, c.ID, byNIDA.ID)

	// the NIDA value must land in the nida_number column the raw
	// lookups query, not a mis-derived one
	var stored string
	require.NoError(t, db.Raw("SELECT nida_number FROM customers WHERE id = ?", c.ID).Scan(&stored).Error)
	require.Equal(t, c.NIDANumber.String, stored)
}

func TestCustomerRepository_OptionalNIDAAndUniqueEmail(t *testing.T) {
	db := newTestDB(t)
	createCustomerTable(t, db)
	repo := NewCustomerRepository(db)
	ctx := context.Background()

	a := seedCustomer(8)
	a.NIDANumber = null.String{}
	a.Email = null.StringFrom("fatma@example.co.tz")
	require.NoError(t, repo.Create(ctx, a))

	// a second customer without a NIDA number must not trip the
	// unique index
	b := seedCustomer(9)
	b.NIDANumber = null.String{}
	require.NoError(t, repo.Create(ctx, b))

	byEmail, err := repo.GetByEmail(ctx, "fatma@example.co.tz")
	require.NoError(t, err)
	require.Equal(t, a.ID, byEmail.ID)

	dup := seedCustomer(10)
	dup.Email = null.StringFrom("fatma@example.co.tz")
	require.Error(t, repo.Create(ctx, dup))
}

func TestCustomerRepository_UpdateAndVerify(t *testing.T) {
	db := newTestDB(t)
	createCustomerTable(t, db)
	repo := NewCustomerRepository(db)
	ctx := context.Background()

	c := seedCustomer(2)
	require.NoError(t, repo.Create(ctx, c))

	now := time.Now()
	c.KYCStatus = entities.KYCStatusVerified
	c.NIDAVerified = true
	c.NIDAVerifiedAt = &now
	c.Occupation = null.StringFrom("Mama Lishe")
	c.MpesaNumber = null.StringFrom("+255714000002")
	c.CreditScore = 640
	c.EmergencyContactName = null.StringFrom("Juma Hassan")
	c.EmergencyContactPhone = null.StringFrom("+255714000099")
	c.EmergencyContactRelationship = null.StringFrom("brother")
	require.NoError(t, repo.Update(ctx, c))

	updated, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, entities.KYCStatusVerified, updated.KYCStatus)
	require.True(t, updated.NIDAVerified)
	require.NotNil(t, updated.NIDAVerifiedAt)
	require.Equal(t, "Mama Lishe", updated.Occupation.String)
	require.Equal(t, "+255714000002", updated.MpesaNumber.String)
	require.Equal(t, 640, updated.CreditScore)
	require.Equal(t, "Juma Hassan", updated.EmergencyContactName.String)
	require.True(t, updated.CanApplyLoan())
}

func TestCustomerRepository_ListFilters(t *testing.T) {
	db := newTestDB(t)
	createCustomerTable(t, db)
	repo := NewCustomerRepository(db)
	ctx := context.Background()

	a := seedCustomer(3)
	b := seedCustomer(4)
	b.FirstName = "Baraka"
	b.Region = "Mwanza"
	b.KYCStatus = entities.KYCStatusVerified
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	byRegion, total, err := repo.List(ctx, entities.CustomerFilter{Region: "Mwanza"}, 10, 0)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Equal(t, "Baraka", byRegion[0].FirstName)

	byKYC, total, err := repo.List(ctx, entities.CustomerFilter{KYCStatus: entities.KYCStatusPending}, 10, 0)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Equal(t, a.ID, byKYC[0].ID)

	bySearch, total, err := repo.List(ctx, entities.CustomerFilter{Search: "baraka"}, 10, 0)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Equal(t, b.ID, bySearch[0].ID)

	count, err := repo.CountCreatedInYear(ctx, time.Now().Year())
	require.NoError(t, err)
	require.EqualValues(t, 2, count)
}

func TestCustomerRepository_Analytics(t *testing.T) {
	db := newTestDB(t)
	createCustomerTable(t, db)
	repo := NewCustomerRepository(db)
	ctx := context.Background()

	a := seedCustomer(5)
	b := seedCustomer(6)
	b.Gender = entities.GenderMale
	b.Region = "Arusha"
	b.KYCStatus = entities.KYCStatusVerified
	b.Status = entities.CustomerStatusSuspended
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	stats, err := repo.Analytics(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, stats.TotalCustomers)
	require.EqualValues(t, 1, stats.ActiveCustomers)
	require.EqualValues(t, 1, stats.VerifiedCustomers)
	require.EqualValues(t, 1, stats.PendingKYC)
	require.EqualValues(t, 1, stats.ByRegion["Arusha"])
	require.EqualValues(t, 1, stats.ByGender["male"])
}

func TestCustomerRepository_NotFoundBranches(t *testing.T) {
	db := newTestDB(t)
	createCustomerTable(t, db)
	repo := NewCustomerRepository(db)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = repo.GetByPhoneNumber(ctx, "+255799999999")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = repo.GetByNIDANumber(ctx, "19850715123456780000")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	err = repo.Update(ctx, seedCustomer(7))
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	err = repo.SoftDelete(ctx, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}
