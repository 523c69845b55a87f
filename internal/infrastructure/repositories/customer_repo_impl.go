package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"tujenge.backend/internal/domain/entities"
	domainerrors "tujenge.backend/internal/domain/errors"
	"tujenge.backend/internal/infrastructure/models"
)

// CustomerRepository implements customer data operations
type CustomerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// Create creates a new customer
func (r *CustomerRepository) Create(ctx context.Context, customer *entities.Customer) error {
	m := customerToModel(customer)
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	customer.ID = m.ID
	return nil
}

// GetByID gets a customer by ID
func (r *CustomerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Customer, error) {
	return r.getOne(ctx, "id = ?", id)
}

// GetByCustomerNumber gets a customer by customer number
func (r *CustomerRepository) GetByCustomerNumber(ctx context.Context, number string) (*entities.Customer, error) {
	return r.getOne(ctx, "customer_number = ?", number)
}

// GetByPhoneNumber gets a customer by phone number
func (r *CustomerRepository) GetByPhoneNumber(ctx context.Context, phone string) (*entities.Customer, error) {
	return r.getOne(ctx, "phone_number = ?", phone)
}

// GetByNIDANumber gets a customer by national ID number
func (r *CustomerRepository) GetByNIDANumber(ctx context.Context, nida string) (*entities.Customer, error) {
	return r.getOne(ctx, "nida_number = ?", nida)
}

// GetByEmail gets a customer by email
func (r *CustomerRepository) GetByEmail(ctx context.Context, email string) (*entities.Customer, error) {
	return r.getOne(ctx, "email = ?", email)
}

func (r *CustomerRepository) getOne(ctx context.Context, query string, arg interface{}) (*entities.Customer, error) {
	var m models.Customer
	if err := GetDB(ctx, r.db).WithContext(ctx).Where(query, arg).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return customerToEntity(&m), nil
}

// Update persists all mutable customer fields
func (r *CustomerRepository) Update(ctx context.Context, customer *entities.Customer) error {
	updates := map[string]interface{}{
		"phone_number":                   customer.PhoneNumber,
		"email":                          customer.Email.Ptr(),
		"nida_number":                    customer.NIDANumber.Ptr(),
		"voter_id":                       customer.VoterID.Ptr(),
		"tin_number":                     customer.TINNumber.Ptr(),
		"region":                         customer.Region,
		"district":                       customer.District,
		"ward":                           customer.Ward.Ptr(),
		"street":                         customer.Street.Ptr(),
		"occupation":                     customer.Occupation.Ptr(),
		"monthly_income":                 customer.MonthlyIncome.Ptr(),
		"mpesa_number":                   customer.MpesaNumber.Ptr(),
		"airtel_money_number":            customer.AirtelMoneyNumber.Ptr(),
		"credit_score":                   customer.CreditScore,
		"preferred_language":             customer.PreferredLanguage,
		"sms_notifications":              customer.SMSNotifications,
		"email_notifications":            customer.EmailNotifications,
		"emergency_contact_name":         customer.EmergencyContactName.Ptr(),
		"emergency_contact_phone":        customer.EmergencyContactPhone.Ptr(),
		"emergency_contact_relationship": customer.EmergencyContactRelationship.Ptr(),
		"kyc_status":                     string(customer.KYCStatus),
		"nida_verified":                  customer.NIDAVerified,
		"nida_verified_at":               customer.NIDAVerifiedAt,
		"status":                         string(customer.Status),
		"updated_at":                     time.Now(),
	}

	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Customer{}).Where("id = ?", customer.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SoftDelete soft deletes a customer
func (r *CustomerRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Delete(&models.Customer{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List lists customers matching the filter with pagination
func (r *CustomerRepository) List(ctx context.Context, filter entities.CustomerFilter, limit, offset int) ([]*entities.Customer, int, error) {
	query := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Customer{})

	if filter.Region != "" {
		query = query.Where("region = ?", filter.Region)
	}
	if filter.KYCStatus != "" {
		query = query.Where("kyc_status = ?", string(filter.KYCStatus))
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.Search != "" {
		searchTerm := "%" + filter.Search + "%"
		query = query.Where(
			"LOWER(first_name) LIKE LOWER(?) OR LOWER(last_name) LIKE LOWER(?) OR phone_number LIKE ? OR customer_number LIKE ?",
			searchTerm, searchTerm, searchTerm, searchTerm,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var customerModels []models.Customer
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&customerModels).Error; err != nil {
		return nil, 0, err
	}

	customers := make([]*entities.Customer, 0, len(customerModels))
	for i := range customerModels {
		customers = append(customers, customerToEntity(&customerModels[i]))
	}
	return customers, int(total), nil
}

// CountCreatedInYear counts customers registered in the given year,
// used for sequential customer number generation
func (r *CustomerRepository) CountCreatedInYear(ctx context.Context, year int) (int64, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	var count int64
	err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Customer{}).
		Unscoped().
		Where("created_at >= ? AND created_at < ?", start, end).
		Count(&count).Error
	return count, err
}

// Analytics aggregates customer counts across the portfolio
func (r *CustomerRepository) Analytics(ctx context.Context) (*entities.CustomerAnalytics, error) {
	out := &entities.CustomerAnalytics{
		ByRegion: make(map[string]int64),
		ByGender: make(map[string]int64),
	}

	db := GetDB(ctx, r.db).WithContext(ctx)
	base := db.Model(&models.Customer{})

	if err := base.Session(&gorm.Session{}).Count(&out.TotalCustomers).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).Where("status = ?", string(entities.CustomerStatusActive)).Count(&out.ActiveCustomers).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).Where("kyc_status = ?", string(entities.KYCStatusVerified)).Count(&out.VerifiedCustomers).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).Where("kyc_status = ?", string(entities.KYCStatusPending)).Count(&out.PendingKYC).Error; err != nil {
		return nil, err
	}

	type bucket struct {
		Key   string
		Count int64
	}

	var byRegion []bucket
	if err := db.Model(&models.Customer{}).
		Select("region AS key, COUNT(*) AS count").
		Group("region").
		Scan(&byRegion).Error; err != nil {
		return nil, err
	}
	for _, b := range byRegion {
		out.ByRegion[b.Key] = b.Count
	}

	var byGender []bucket
	if err := db.Model(&models.Customer{}).
		Select("gender AS key, COUNT(*) AS count").
		Group("gender").
		Scan(&byGender).Error; err != nil {
		return nil, err
	}
	for _, b := range byGender {
		out.ByGender[b.Key] = b.Count
	}

	return out, nil
}

func customerToModel(c *entities.Customer) *models.Customer {
	return &models.Customer{
		ID:                           c.ID,
		CustomerNumber:               c.CustomerNumber,
		CustomerType:                 string(c.CustomerType),
		FirstName:                    c.FirstName,
		MiddleName:                   c.MiddleName.Ptr(),
		LastName:                     c.LastName,
		PhoneNumber:                  c.PhoneNumber,
		Email:                        c.Email.Ptr(),
		NIDANumber:                   c.NIDANumber.Ptr(),
		VoterID:                      c.VoterID.Ptr(),
		TINNumber:                    c.TINNumber.Ptr(),
		DateOfBirth:                  c.DateOfBirth,
		Gender:                       string(c.Gender),
		Region:                       c.Region,
		District:                     c.District,
		Ward:                         c.Ward.Ptr(),
		Street:                       c.Street.Ptr(),
		Occupation:                   c.Occupation.Ptr(),
		MonthlyIncome:                c.MonthlyIncome.Ptr(),
		MpesaNumber:                  c.MpesaNumber.Ptr(),
		AirtelMoneyNumber:            c.AirtelMoneyNumber.Ptr(),
		CreditScore:                  c.CreditScore,
		PreferredLanguage:            c.PreferredLanguage,
		SMSNotifications:             c.SMSNotifications,
		EmailNotifications:           c.EmailNotifications,
		EmergencyContactName:         c.EmergencyContactName.Ptr(),
		EmergencyContactPhone:        c.EmergencyContactPhone.Ptr(),
		EmergencyContactRelationship: c.EmergencyContactRelationship.Ptr(),
		KYCStatus:                    string(c.KYCStatus),
		NIDAVerified:                 c.NIDAVerified,
		NIDAVerifiedAt:               c.NIDAVerifiedAt,
		Status:                       string(c.Status),
		CreatedAt:                    c.CreatedAt,
		UpdatedAt:                    c.UpdatedAt,
	}
}

func customerToEntity(m *models.Customer) *entities.Customer {
	return &entities.Customer{
		ID:                           m.ID,
		CustomerNumber:               m.CustomerNumber,
		CustomerType:                 entities.CustomerType(m.CustomerType),
		FirstName:                    m.FirstName,
		MiddleName:                   null.StringFromPtr(m.MiddleName),
		LastName:                     m.LastName,
		PhoneNumber:                  m.PhoneNumber,
		Email:                        null.StringFromPtr(m.Email),
		NIDANumber:                   null.StringFromPtr(m.NIDANumber),
		VoterID:                      null.StringFromPtr(m.VoterID),
		TINNumber:                    null.StringFromPtr(m.TINNumber),
		DateOfBirth:                  m.DateOfBirth,
		Gender:                       entities.Gender(m.Gender),
		Region:                       m.Region,
		District:                     m.District,
		Ward:                         null.StringFromPtr(m.Ward),
		Street:                       null.StringFromPtr(m.Street),
		Occupation:                   null.StringFromPtr(m.Occupation),
		MonthlyIncome:                null.Float64FromPtr(m.MonthlyIncome),
		MpesaNumber:                  null.StringFromPtr(m.MpesaNumber),
		AirtelMoneyNumber:            null.StringFromPtr(m.AirtelMoneyNumber),
		CreditScore:                  m.CreditScore,
		PreferredLanguage:            m.PreferredLanguage,
		SMSNotifications:             m.SMSNotifications,
		EmailNotifications:           m.EmailNotifications,
		EmergencyContactName:         null.StringFromPtr(m.EmergencyContactName),
		EmergencyContactPhone:        null.StringFromPtr(m.EmergencyContactPhone),
		EmergencyContactRelationship: null.StringFromPtr(m.EmergencyContactRelationship),
		KYCStatus:                    entities.KYCStatus(m.KYCStatus),
		NIDAVerified:                 m.NIDAVerified,
		NIDAVerifiedAt:               m.NIDAVerifiedAt,
		Status:                       entities.CustomerStatus(m.Status),
		CreatedAt:                    m.CreatedAt,
		UpdatedAt:                    m.UpdatedAt,
	}
}
