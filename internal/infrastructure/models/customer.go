package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Customer struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	CustomerNumber string    `gorm:"type:varchar(20);uniqueIndex;not null"`
	CustomerType   string    `gorm:"type:varchar(20);not null;default:'individual';index"`
	FirstName      string    `gorm:"type:varchar(100);not null"`
	MiddleName     *string   `gorm:"type:varchar(100)"`
	LastName       string    `gorm:"type:varchar(100);not null"`
	PhoneNumber    string    `gorm:"type:varchar(20);uniqueIndex;not null"`
	Email          *string   `gorm:"type:varchar(255);uniqueIndex"`
	// The naming strategy expands the ID initialism inside NIDA, so the
	// nida_* columns carry explicit names to line up with the raw queries.
	NIDANumber        *string   `gorm:"column:nida_number;type:varchar(20);uniqueIndex"`
	VoterID           *string   `gorm:"type:varchar(30)"`
	TINNumber         *string   `gorm:"type:varchar(9)"`
	DateOfBirth       time.Time `gorm:"type:date;not null"`
	Gender            string    `gorm:"type:varchar(10);not null"`
	Region            string    `gorm:"type:varchar(50);not null;index"`
	District          string    `gorm:"type:varchar(100);not null"`
	Ward              *string   `gorm:"type:varchar(100)"`
	Street            *string   `gorm:"type:varchar(200)"`
	Occupation        *string   `gorm:"type:varchar(100)"`
	MonthlyIncome     *float64  `gorm:"type:numeric(18,2)"`
	MpesaNumber       *string   `gorm:"type:varchar(20)"`
	AirtelMoneyNumber *string   `gorm:"type:varchar(20)"`
	CreditScore       int       `gorm:"not null"`
	PreferredLanguage string    `gorm:"type:varchar(5);not null"`
	// No default tags on the notification flags: a false value would be
	// dropped from the insert and replaced by the column default.
	SMSNotifications             bool    `gorm:"column:sms_notifications;not null"`
	EmailNotifications           bool    `gorm:"not null"`
	EmergencyContactName         *string `gorm:"type:varchar(200)"`
	EmergencyContactPhone        *string `gorm:"type:varchar(20)"`
	EmergencyContactRelationship *string `gorm:"type:varchar(50)"`
	KYCStatus                    string  `gorm:"type:varchar(20);not null;default:'pending';index"`
	NIDAVerified                 bool    `gorm:"column:nida_verified;not null"`
	NIDAVerifiedAt               *time.Time `gorm:"column:nida_verified_at"`
	Status                       string     `gorm:"type:varchar(20);not null;default:'active';index"`
	CreatedAt                    time.Time
	UpdatedAt                    time.Time
	DeletedAt                    gorm.DeletedAt `gorm:"index"`
}
