package usecases

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"tujenge.backend/internal/domain/entities"
	domainerrors "tujenge.backend/internal/domain/errors"
	"tujenge.backend/internal/domain/repositories"
	"tujenge.backend/pkg/logger"
	"tujenge.backend/pkg/redis"
	"tujenge.backend/pkg/tanzania"
	"tujenge.backend/pkg/utils"
)

const (
	minCustomerAge = 18
	maxCustomerAge = 100

	initialCreditScore = 500

	nidaCachePrefix = "nida:verify:"
)

// CustomerUsecase handles customer registration and KYC business logic
type CustomerUsecase struct {
	customerRepo repositories.CustomerRepository
	documentRepo repositories.DocumentRepository
	loanRepo     repositories.LoanRepository
	auditUC      *AuditUsecase
	uow          repositories.UnitOfWork

	maxActiveLoans int
	maxLoanAmount  decimal.Decimal
	nidaCacheTTL   time.Duration
}

// NewCustomerUsecase creates a new customer usecase
func NewCustomerUsecase(
	customerRepo repositories.CustomerRepository,
	documentRepo repositories.DocumentRepository,
	loanRepo repositories.LoanRepository,
	auditUC *AuditUsecase,
	uow repositories.UnitOfWork,
	maxActiveLoans int,
	maxLoanAmount decimal.Decimal,
	nidaCacheTTL time.Duration,
) *CustomerUsecase {
	return &CustomerUsecase{
		customerRepo:   customerRepo,
		documentRepo:   documentRepo,
		loanRepo:       loanRepo,
		auditUC:        auditUC,
		uow:            uow,
		maxActiveLoans: maxActiveLoans,
		maxLoanAmount:  maxLoanAmount,
		nidaCacheTTL:   nidaCacheTTL,
	}
}

// Register validates and creates a new customer with a sequential
// customer number
func (u *CustomerUsecase) Register(ctx context.Context, actor Actor, input *entities.CreateCustomerInput) (*entities.Customer, error) {
	if !tanzania.ValidPhoneNumber(input.PhoneNumber) {
		return nil, domainerrors.ErrInvalidPhoneNumber
	}
	phone := tanzania.NormalizePhoneNumber(input.PhoneNumber)

	// NIDA may be supplied later; when present it must be valid
	var nida string
	if input.NIDANumber != "" {
		if !tanzania.ValidNIDANumber(input.NIDANumber) {
			return nil, domainerrors.ErrInvalidNIDANumber
		}
		nida = tanzania.NormalizeNIDANumber(input.NIDANumber)
	}

	if input.TINNumber != "" && !tanzania.ValidTINNumber(input.TINNumber) {
		return nil, domainerrors.BadRequest("INVALID_TIN", "TIN number must be 9 digits")
	}
	if !tanzania.ValidRegion(input.Region) {
		return nil, domainerrors.BadRequest("INVALID_REGION", "unknown Tanzania region")
	}
	if input.Gender != entities.GenderMale && input.Gender != entities.GenderFemale {
		return nil, domainerrors.BadRequest("INVALID_GENDER", "gender must be male or female")
	}

	dob, err := time.Parse("2006-01-02", input.DateOfBirth)
	if err != nil {
		return nil, domainerrors.BadRequest("INVALID_DATE_OF_BIRTH", "date of birth must be YYYY-MM-DD")
	}

	customerType := input.CustomerType
	if customerType == "" {
		customerType = entities.CustomerTypeIndividual
	}
	language := input.PreferredLanguage
	if language == "" {
		language = entities.LanguageSwahili
	}

	customer := &entities.Customer{
		ID:                 utils.GenerateUUIDv7(),
		CustomerType:       customerType,
		FirstName:          input.FirstName,
		LastName:           input.LastName,
		PhoneNumber:        phone,
		DateOfBirth:        dob,
		Gender:             input.Gender,
		Region:             input.Region,
		District:           input.District,
		CreditScore:        initialCreditScore,
		PreferredLanguage:  language,
		SMSNotifications:   true,
		EmailNotifications: true,
		KYCStatus:          entities.KYCStatusPending,
		Status:             entities.CustomerStatusActive,
	}
	if nida != "" {
		customer.NIDANumber = null.StringFrom(nida)
	}
	if input.SMSNotifications != nil {
		customer.SMSNotifications = *input.SMSNotifications
	}
	if input.EmailNotifications != nil {
		customer.EmailNotifications = *input.EmailNotifications
	}
	if age := customer.Age(); age < minCustomerAge || age > maxCustomerAge {
		return nil, domainerrors.BadRequest("INVALID_AGE", fmt.Sprintf("customer must be between %d and %d years old", minCustomerAge, maxCustomerAge))
	}

	if _, err := u.customerRepo.GetByPhoneNumber(ctx, phone); err == nil {
		return nil, domainerrors.ErrPhoneNumberTaken
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}
	if nida != "" {
		if _, err := u.customerRepo.GetByNIDANumber(ctx, nida); err == nil {
			return nil, domainerrors.ErrNIDANumberTaken
		} else if !errors.Is(err, domainerrors.ErrNotFound) {
			return nil, err
		}
	}
	if input.Email != "" {
		if _, err := u.customerRepo.GetByEmail(ctx, input.Email); err == nil {
			return nil, domainerrors.ErrEmailTaken
		} else if !errors.Is(err, domainerrors.ErrNotFound) {
			return nil, err
		}
	}

	if input.MiddleName != "" {
		customer.MiddleName = null.StringFrom(input.MiddleName)
	}
	if input.Email != "" {
		customer.Email = null.StringFrom(input.Email)
	}
	if input.TINNumber != "" {
		customer.TINNumber = null.StringFrom(input.TINNumber)
	}
	if input.Ward != "" {
		customer.Ward = null.StringFrom(input.Ward)
	}
	if input.Street != "" {
		customer.Street = null.StringFrom(input.Street)
	}
	if input.Occupation != "" {
		customer.Occupation = null.StringFrom(input.Occupation)
	}
	if input.MonthlyIncome != nil {
		customer.MonthlyIncome = null.Float64From(*input.MonthlyIncome)
	}
	if input.VoterID != "" {
		customer.VoterID = null.StringFrom(input.VoterID)
	}
	if input.MpesaNumber != "" {
		if !tanzania.ValidPhoneNumber(input.MpesaNumber) {
			return nil, domainerrors.BadRequest("INVALID_MPESA_NUMBER", "M-Pesa number must be a valid Tanzania phone number")
		}
		customer.MpesaNumber = null.StringFrom(tanzania.NormalizePhoneNumber(input.MpesaNumber))
	}
	if input.AirtelMoneyNumber != "" {
		if !tanzania.ValidPhoneNumber(input.AirtelMoneyNumber) {
			return nil, domainerrors.BadRequest("INVALID_AIRTEL_NUMBER", "Airtel Money number must be a valid Tanzania phone number")
		}
		customer.AirtelMoneyNumber = null.StringFrom(tanzania.NormalizePhoneNumber(input.AirtelMoneyNumber))
	}
	if input.EmergencyContactName != "" {
		customer.EmergencyContactName = null.StringFrom(input.EmergencyContactName)
	}
	if input.EmergencyContactPhone != "" {
		customer.EmergencyContactPhone = null.StringFrom(input.EmergencyContactPhone)
	}
	if input.EmergencyContactRelationship != "" {
		customer.EmergencyContactRelationship = null.StringFrom(input.EmergencyContactRelationship)
	}

	now := time.Now()
	customer.CreatedAt = now
	customer.UpdatedAt = now

	// Number generation and insert share a transaction so concurrent
	// registrations cannot claim the same sequence slot.
	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		seq, err := u.customerRepo.CountCreatedInYear(txCtx, now.Year())
		if err != nil {
			return err
		}
		customer.CustomerNumber = fmt.Sprintf("CUS-%d-%06d", now.Year(), seq+1)
		return u.customerRepo.Create(txCtx, customer)
	})
	if err != nil {
		return nil, err
	}

	u.auditUC.Record(ctx, actor, entities.AuditActionCreate, "customer", customer.ID.String(), map[string]string{
		"customerNumber": customer.CustomerNumber,
		"region":         customer.Region,
	})
	return customer, nil
}

// GetByID gets a customer by ID
func (u *CustomerUsecase) GetByID(ctx context.Context, id uuid.UUID) (*entities.Customer, error) {
	return u.customerRepo.GetByID(ctx, id)
}

// GetByCustomerNumber gets a customer by customer number
func (u *CustomerUsecase) GetByCustomerNumber(ctx context.Context, number string) (*entities.Customer, error) {
	return u.customerRepo.GetByCustomerNumber(ctx, number)
}

// List lists customers matching the filter
func (u *CustomerUsecase) List(ctx context.Context, filter entities.CustomerFilter, limit, offset int) ([]*entities.Customer, int, error) {
	return u.customerRepo.List(ctx, filter, limit, offset)
}

// Update applies partial profile updates. Identity fields stay fixed.
func (u *CustomerUsecase) Update(ctx context.Context, actor Actor, id uuid.UUID, input *entities.UpdateCustomerInput) (*entities.Customer, error) {
	customer, err := u.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	changed := map[string]string{}

	if input.PhoneNumber != nil {
		if !tanzania.ValidPhoneNumber(*input.PhoneNumber) {
			return nil, domainerrors.ErrInvalidPhoneNumber
		}
		phone := tanzania.NormalizePhoneNumber(*input.PhoneNumber)
		if phone != customer.PhoneNumber {
			if _, err := u.customerRepo.GetByPhoneNumber(ctx, phone); err == nil {
				return nil, domainerrors.ErrPhoneNumberTaken
			} else if !errors.Is(err, domainerrors.ErrNotFound) {
				return nil, err
			}
			customer.PhoneNumber = phone
			changed["phoneNumber"] = phone
		}
	}
	if input.Email != nil && *input.Email != customer.Email.String {
		if _, err := u.customerRepo.GetByEmail(ctx, *input.Email); err == nil {
			return nil, domainerrors.ErrEmailTaken
		} else if !errors.Is(err, domainerrors.ErrNotFound) {
			return nil, err
		}
		customer.Email = null.StringFrom(*input.Email)
		changed["email"] = *input.Email
	}
	if input.NIDANumber != nil {
		if !tanzania.ValidNIDANumber(*input.NIDANumber) {
			return nil, domainerrors.ErrInvalidNIDANumber
		}
		nida := tanzania.NormalizeNIDANumber(*input.NIDANumber)
		if customer.NIDANumber.Valid && customer.NIDANumber.String != nida {
			return nil, domainerrors.BadRequest("NIDA_IMMUTABLE", "NIDA number cannot be changed once recorded")
		}
		if !customer.NIDANumber.Valid {
			if _, err := u.customerRepo.GetByNIDANumber(ctx, nida); err == nil {
				return nil, domainerrors.ErrNIDANumberTaken
			} else if !errors.Is(err, domainerrors.ErrNotFound) {
				return nil, err
			}
			customer.NIDANumber = null.StringFrom(nida)
			changed["nidaNumber"] = nida
		}
	}
	if input.VoterID != nil {
		customer.VoterID = null.StringFrom(*input.VoterID)
	}
	if input.TINNumber != nil {
		if !tanzania.ValidTINNumber(*input.TINNumber) {
			return nil, domainerrors.BadRequest("INVALID_TIN", "TIN number must be 9 digits")
		}
		customer.TINNumber = null.StringFrom(*input.TINNumber)
		changed["tinNumber"] = *input.TINNumber
	}
	if input.Region != nil {
		if !tanzania.ValidRegion(*input.Region) {
			return nil, domainerrors.BadRequest("INVALID_REGION", "unknown Tanzania region")
		}
		customer.Region = *input.Region
		changed["region"] = *input.Region
	}
	if input.District != nil {
		customer.District = *input.District
	}
	if input.Ward != nil {
		customer.Ward = null.StringFrom(*input.Ward)
	}
	if input.Street != nil {
		customer.Street = null.StringFrom(*input.Street)
	}
	if input.Occupation != nil {
		customer.Occupation = null.StringFrom(*input.Occupation)
	}
	if input.MonthlyIncome != nil {
		customer.MonthlyIncome = null.Float64From(*input.MonthlyIncome)
	}
	if input.MpesaNumber != nil {
		if !tanzania.ValidPhoneNumber(*input.MpesaNumber) {
			return nil, domainerrors.BadRequest("INVALID_MPESA_NUMBER", "M-Pesa number must be a valid Tanzania phone number")
		}
		customer.MpesaNumber = null.StringFrom(tanzania.NormalizePhoneNumber(*input.MpesaNumber))
	}
	if input.AirtelMoneyNumber != nil {
		if !tanzania.ValidPhoneNumber(*input.AirtelMoneyNumber) {
			return nil, domainerrors.BadRequest("INVALID_AIRTEL_NUMBER", "Airtel Money number must be a valid Tanzania phone number")
		}
		customer.AirtelMoneyNumber = null.StringFrom(tanzania.NormalizePhoneNumber(*input.AirtelMoneyNumber))
	}
	if input.PreferredLanguage != nil {
		customer.PreferredLanguage = *input.PreferredLanguage
	}
	if input.SMSNotifications != nil {
		customer.SMSNotifications = *input.SMSNotifications
	}
	if input.EmailNotifications != nil {
		customer.EmailNotifications = *input.EmailNotifications
	}
	if input.EmergencyContactName != nil {
		customer.EmergencyContactName = null.StringFrom(*input.EmergencyContactName)
	}
	if input.EmergencyContactPhone != nil {
		customer.EmergencyContactPhone = null.StringFrom(*input.EmergencyContactPhone)
	}
	if input.EmergencyContactRelationship != nil {
		customer.EmergencyContactRelationship = null.StringFrom(*input.EmergencyContactRelationship)
	}
	if input.Status != nil {
		switch *input.Status {
		case entities.CustomerStatusActive, entities.CustomerStatusSuspended,
			entities.CustomerStatusBlacklisted, entities.CustomerStatusClosed:
			customer.Status = *input.Status
			changed["status"] = string(*input.Status)
		default:
			return nil, domainerrors.BadRequest("INVALID_STATUS", "unknown customer status")
		}
	}

	if err := u.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}

	u.auditUC.Record(ctx, actor, entities.AuditActionUpdate, "customer", customer.ID.String(), changed)
	return customer, nil
}

// Delete soft deletes a customer. Customers with open loans cannot be
// removed.
func (u *CustomerUsecase) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	open, err := u.loanRepo.CountOpenByCustomer(ctx, id)
	if err != nil {
		return err
	}
	if open > 0 {
		return domainerrors.Conflict("CUSTOMER_HAS_OPEN_LOANS", "customer has loans that still carry exposure")
	}

	if err := u.customerRepo.SoftDelete(ctx, id); err != nil {
		return err
	}
	u.auditUC.Record(ctx, actor, entities.AuditActionDelete, "customer", id.String(), nil)
	return nil
}

// VerifyNIDA runs the national-ID check for a customer. Results are
// cached in Redis so repeat checks within the TTL do not rerun the
// verification. A successful check that finds approved KYC documents
// also completes the customer's KYC.
func (u *CustomerUsecase) VerifyNIDA(ctx context.Context, actor Actor, customerID uuid.UUID) (*entities.NIDAVerification, error) {
	customer, err := u.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if !customer.NIDANumber.Valid || customer.NIDANumber.String == "" {
		return nil, domainerrors.BadRequest("NIDA_NOT_PROVIDED", "customer has no NIDA number on record")
	}
	nida := customer.NIDANumber.String

	cacheKey := nidaCachePrefix + nida
	if cached, err := redis.Get(ctx, cacheKey); err == nil {
		var result entities.NIDAVerification
		if err := json.Unmarshal([]byte(cached), &result); err == nil {
			result.Source = "cache"
			return &result, nil
		}
	} else if !redis.IsNil(err) {
		logger.Warn(ctx, "nida cache read failed", zap.Error(err))
	}

	result := &entities.NIDAVerification{
		NIDANumber: nida,
		Verified:   tanzania.ValidNIDANumber(nida),
		CheckedAt:  time.Now(),
		Source:     "registry",
	}

	if raw, err := json.Marshal(result); err == nil {
		if err := redis.Set(ctx, cacheKey, string(raw), u.nidaCacheTTL); err != nil {
			logger.Warn(ctx, "nida cache write failed", zap.Error(err))
		}
	}

	if result.Verified && !customer.NIDAVerified {
		now := time.Now()
		customer.NIDAVerified = true
		customer.NIDAVerifiedAt = &now

		approvedDocs, err := u.documentRepo.CountApprovedByCustomer(ctx, customerID)
		if err != nil {
			return nil, err
		}
		if approvedDocs > 0 && customer.KYCStatus == entities.KYCStatusPending {
			customer.KYCStatus = entities.KYCStatusVerified
		}

		if err := u.customerRepo.Update(ctx, customer); err != nil {
			return nil, err
		}

		u.auditUC.Record(ctx, actor, entities.AuditActionVerify, "customer", customer.ID.String(), map[string]interface{}{
			"nidaVerified": true,
			"kycStatus":    customer.KYCStatus,
		})
	}

	return result, nil
}

// CheckLoanEligibility evaluates whether a customer may take a new loan
func (u *CustomerUsecase) CheckLoanEligibility(ctx context.Context, customerID uuid.UUID) (*entities.LoanEligibility, error) {
	customer, err := u.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	activeLoans, err := u.loanRepo.CountOpenByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	out := &entities.LoanEligibility{
		CustomerID:  customerID,
		ActiveLoans: activeLoans,
	}

	if customer.Status != entities.CustomerStatusActive {
		out.Reasons = append(out.Reasons, "customer account is not active")
	}
	if customer.KYCStatus != entities.KYCStatusVerified {
		out.Reasons = append(out.Reasons, "KYC is not verified")
	}
	if !customer.NIDANumber.Valid {
		out.Reasons = append(out.Reasons, "NIDA number is not on record")
	} else if !customer.NIDAVerified {
		out.Reasons = append(out.Reasons, "NIDA number is not verified")
	}
	if activeLoans >= int64(u.maxActiveLoans) {
		out.Reasons = append(out.Reasons, fmt.Sprintf("customer already has %d open loans", activeLoans))
	}
	if !customer.MonthlyIncome.Valid || customer.MonthlyIncome.Float64 <= 0 {
		out.Reasons = append(out.Reasons, "monthly income is not recorded")
	} else {
		out.MonthlyIncome = customer.MonthlyIncome.Float64
	}

	out.Eligible = len(out.Reasons) == 0
	if out.Eligible {
		// income-based ceiling: 40% of income over the longest tenure,
		// capped by the platform limit
		incomeCap := decimal.NewFromFloat(out.MonthlyIncome).
			Mul(decimal.NewFromFloat(0.4)).
			Mul(decimal.NewFromInt(60))
		ceiling := u.maxLoanAmount
		if incomeCap.LessThan(ceiling) {
			ceiling = incomeCap
		}
		out.MaxLoanAmount = ceiling.Round(2).String()
	} else {
		out.MaxLoanAmount = "0"
	}

	return out, nil
}

// Analytics aggregates customer portfolio statistics
func (u *CustomerUsecase) Analytics(ctx context.Context) (*entities.CustomerAnalytics, error) {
	return u.customerRepo.Analytics(ctx)
}
