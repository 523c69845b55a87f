package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Gender of a customer
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// CustomerType distinguishes individual borrowers from registered
// businesses and savings groups
type CustomerType string

const (
	CustomerTypeIndividual CustomerType = "individual"
	CustomerTypeBusiness   CustomerType = "business"
	CustomerTypeGroup      CustomerType = "group"
)

// KYCStatus tracks the identity-verification state of a customer
type KYCStatus string

const (
	KYCStatusPending  KYCStatus = "pending"
	KYCStatusVerified KYCStatus = "verified"
	KYCStatusRejected KYCStatus = "rejected"
)

// CustomerStatus is the account state of a customer
type CustomerStatus string

const (
	CustomerStatusActive      CustomerStatus = "active"
	CustomerStatusSuspended   CustomerStatus = "suspended"
	CustomerStatusBlacklisted CustomerStatus = "blacklisted"
	CustomerStatusClosed      CustomerStatus = "closed"
)

// Supported notification languages
const (
	LanguageSwahili = "sw"
	LanguageEnglish = "en"
)

// Customer represents a microfinance customer entity
type Customer struct {
	ID                           uuid.UUID      `json:"id"`
	CustomerNumber               string         `json:"customerNumber"`
	CustomerType                 CustomerType   `json:"customerType"`
	FirstName                    string         `json:"firstName"`
	MiddleName                   null.String    `json:"middleName,omitempty"`
	LastName                     string         `json:"lastName"`
	PhoneNumber                  string         `json:"phoneNumber"`
	Email                        null.String    `json:"email,omitempty"`
	NIDANumber                   null.String    `json:"nidaNumber,omitempty"`
	VoterID                      null.String    `json:"voterId,omitempty"`
	TINNumber                    null.String    `json:"tinNumber,omitempty"`
	DateOfBirth                  time.Time      `json:"dateOfBirth"`
	Gender                       Gender         `json:"gender"`
	Region                       string         `json:"region"`
	District                     string         `json:"district"`
	Ward                         null.String    `json:"ward,omitempty"`
	Street                       null.String    `json:"street,omitempty"`
	Occupation                   null.String    `json:"occupation,omitempty"`
	MonthlyIncome                null.Float64   `json:"monthlyIncome,omitempty"`
	MpesaNumber                  null.String    `json:"mpesaNumber,omitempty"`
	AirtelMoneyNumber            null.String    `json:"airtelMoneyNumber,omitempty"`
	CreditScore                  int            `json:"creditScore"`
	PreferredLanguage            string         `json:"preferredLanguage"`
	SMSNotifications             bool           `json:"smsNotifications"`
	EmailNotifications           bool           `json:"emailNotifications"`
	EmergencyContactName         null.String    `json:"emergencyContactName,omitempty"`
	EmergencyContactPhone        null.String    `json:"emergencyContactPhone,omitempty"`
	EmergencyContactRelationship null.String    `json:"emergencyContactRelationship,omitempty"`
	KYCStatus                    KYCStatus      `json:"kycStatus"`
	NIDAVerified                 bool           `json:"nidaVerified"`
	NIDAVerifiedAt               *time.Time     `json:"nidaVerifiedAt,omitempty"`
	Status                       CustomerStatus `json:"status"`
	CreatedAt                    time.Time      `json:"createdAt"`
	UpdatedAt                    time.Time      `json:"updatedAt"`
	DeletedAt                    *time.Time     `json:"-"`
}

// FullName joins the customer's name parts
func (c *Customer) FullName() string {
	if c.MiddleName.Valid && c.MiddleName.String != "" {
		return c.FirstName + " " + c.MiddleName.String + " " + c.LastName
	}
	return c.FirstName + " " + c.LastName
}

// Age returns the customer's age in whole years as of now
func (c *Customer) Age() int {
	now := time.Now()
	age := now.Year() - c.DateOfBirth.Year()
	if now.YearDay() < c.DateOfBirth.YearDay() {
		age--
	}
	return age
}

// CanApplyLoan reports whether the customer passes the baseline gate
/// for loan applications: active account and verified KYC
func (c *Customer) CanApplyLoan() bool {
	return c.Status == CustomerStatusActive && c.KYCStatus == KYCStatusVerified
}

// CustomerProfile decorates a customer with derived read-only fields
// for detail responses
type CustomerProfile struct {
	*Customer
	FullName     string `json:"fullName"`
	Age          int    `json:"age"`
	CanApplyLoan bool   `json:"canApplyLoan"`
}

// Profile builds the detail view of the customer
func (c *Customer) Profile() *CustomerProfile {
	return &CustomerProfile{
		Customer:     c,
		FullName:     c.FullName(),
		Age:          c.Age(),
		CanApplyLoan: c.CanApplyLoan(),
	}
}

// CreateCustomerInput represents input for registering a customer.
// NIDA is optional at registration; KYC cannot complete without it.
type CreateCustomerInput struct {
	CustomerType                 CustomerType `json:"customerType,omitempty" binding:"omitempty,oneof=individual business group"`
	FirstName                    string       `json:"firstName" binding:"required,min=2,max=100"`
	MiddleName                   string       `json:"middleName,omitempty" binding:"omitempty,max=100"`
	LastName                     string       `json:"lastName" binding:"required,min=2,max=100"`
	PhoneNumber                  string       `json:"phoneNumber" binding:"required"`
	Email                        string       `json:"email,omitempty" binding:"omitempty,email"`
	NIDANumber                   string       `json:"nidaNumber,omitempty"`
	VoterID                      string       `json:"voterId,omitempty" binding:"omitempty,max=30"`
	TINNumber                    string       `json:"tinNumber,omitempty"`
	DateOfBirth                  string       `json:"dateOfBirth" binding:"required"`
	Gender                       Gender       `json:"gender" binding:"required"`
	Region                       string       `json:"region" binding:"required"`
	District                     string       `json:"district" binding:"required"`
	Ward                         string       `json:"ward,omitempty"`
	Street                       string       `json:"street,omitempty"`
	Occupation                   string       `json:"occupation,omitempty"`
	MonthlyIncome                *float64     `json:"monthlyIncome,omitempty" binding:"omitempty,gte=0"`
	MpesaNumber                  string       `json:"mpesaNumber,omitempty"`
	AirtelMoneyNumber            string       `json:"airtelMoneyNumber,omitempty"`
	PreferredLanguage            string       `json:"preferredLanguage,omitempty" binding:"omitempty,oneof=sw en"`
	SMSNotifications             *bool        `json:"smsNotifications,omitempty"`
	EmailNotifications           *bool        `json:"emailNotifications,omitempty"`
	EmergencyContactName         string       `json:"emergencyContactName,omitempty" binding:"omitempty,max=200"`
	EmergencyContactPhone        string       `json:"emergencyContactPhone,omitempty"`
	EmergencyContactRelationship string       `json:"emergencyContactRelationship,omitempty" binding:"omitempty,max=50"`
}

// UpdateCustomerInput represents partial updates to a customer profile.
// Date of birth is immutable; a NIDA number may be supplied once if the
// customer registered without one.
type UpdateCustomerInput struct {
	PhoneNumber                  *string         `json:"phoneNumber,omitempty"`
	Email                        *string         `json:"email,omitempty" binding:"omitempty,email"`
	NIDANumber                   *string         `json:"nidaNumber,omitempty"`
	VoterID                      *string         `json:"voterId,omitempty" binding:"omitempty,max=30"`
	TINNumber                    *string         `json:"tinNumber,omitempty"`
	Region                       *string         `json:"region,omitempty"`
	District                     *string         `json:"district,omitempty"`
	Ward                         *string         `json:"ward,omitempty"`
	Street                       *string         `json:"street,omitempty"`
	Occupation                   *string         `json:"occupation,omitempty"`
	MonthlyIncome                *float64        `json:"monthlyIncome,omitempty" binding:"omitempty,gte=0"`
	MpesaNumber                  *string         `json:"mpesaNumber,omitempty"`
	AirtelMoneyNumber            *string         `json:"airtelMoneyNumber,omitempty"`
	PreferredLanguage            *string         `json:"preferredLanguage,omitempty" binding:"omitempty,oneof=sw en"`
	SMSNotifications             *bool           `json:"smsNotifications,omitempty"`
	EmailNotifications           *bool           `json:"emailNotifications,omitempty"`
	EmergencyContactName         *string         `json:"emergencyContactName,omitempty" binding:"omitempty,max=200"`
	EmergencyContactPhone        *string         `json:"emergencyContactPhone,omitempty"`
	EmergencyContactRelationship *string         `json:"emergencyContactRelationship,omitempty" binding:"omitempty,max=50"`
	Status                       *CustomerStatus `json:"status,omitempty"`
}

// CustomerFilter narrows customer listings
type CustomerFilter struct {
	Region    string
	KYCStatus KYCStatus
	Status    CustomerStatus
	Search    string
}

// NIDAVerification is the result of a national-ID check
type NIDAVerification struct {
	NIDANumber string    `json:"nidaNumber"`
	Verified   bool      `json:"verified"`
	CheckedAt  time.Time `json:"checkedAt"`
	Source     string    `json:"source"`
}

// CustomerAnalytics aggregates portfolio-wide customer statistics
type CustomerAnalytics struct {
	TotalCustomers    int64            `json:"totalCustomers"`
	ActiveCustomers   int64            `json:"activeCustomers"`
	VerifiedCustomers int64            `json:"verifiedCustomers"`
	PendingKYC        int64            `json:"pendingKyc"`
	ByRegion          map[string]int64 `json:"byRegion"`
	ByGender          map[string]int64 `json:"byGender"`
}

// LoanEligibility summarizes whether and how much a customer may borrow
type LoanEligibility struct {
	CustomerID    uuid.UUID `json:"customerId"`
	Eligible      bool      `json:"eligible"`
	Reasons       []string  `json:"reasons,omitempty"`
	ActiveLoans   int64     `json:"activeLoans"`
	MaxLoanAmount string    `json:"maxLoanAmount"`
	MonthlyIncome float64   `json:"monthlyIncome"`
}
