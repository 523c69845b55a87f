package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		full_name TEXT NOT NULL,
		phone_number TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL,
		branch TEXT,
		last_login_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createCustomerTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE customers (
		id TEXT PRIMARY KEY,
		customer_number TEXT UNIQUE NOT NULL,
		customer_type TEXT NOT NULL DEFAULT 'individual',
		first_name TEXT NOT NULL,
		middle_name TEXT,
		last_name TEXT NOT NULL,
		phone_number TEXT UNIQUE NOT NULL,
		email TEXT UNIQUE,
		nida_number TEXT UNIQUE,
		voter_id TEXT,
		tin_number TEXT,
		date_of_birth DATETIME NOT NULL,
		gender TEXT NOT NULL,
		region TEXT NOT NULL,
		district TEXT NOT NULL,
		ward TEXT,
		street TEXT,
		occupation TEXT,
		monthly_income NUMERIC,
		mpesa_number TEXT,
		airtel_money_number TEXT,
		credit_score INTEGER NOT NULL DEFAULT 500,
		preferred_language TEXT NOT NULL DEFAULT 'sw',
		sms_notifications BOOLEAN NOT NULL DEFAULT 1,
		email_notifications BOOLEAN NOT NULL DEFAULT 1,
		emergency_contact_name TEXT,
		emergency_contact_phone TEXT,
		emergency_contact_relationship TEXT,
		kyc_status TEXT NOT NULL,
		nida_verified BOOLEAN NOT NULL DEFAULT 0,
		nida_verified_at DATETIME,
		status TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createDocumentTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE documents (
		id TEXT PRIMARY KEY,
		customer_id TEXT NOT NULL,
		document_type TEXT NOT NULL,
		file_name TEXT NOT NULL,
		file_path TEXT NOT NULL,
		file_size INTEGER NOT NULL,
		content_type TEXT NOT NULL,
		status TEXT NOT NULL,
		rejection_reason TEXT,
		reviewed_by TEXT,
		reviewed_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createLoanProductTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE loan_products (
		id TEXT PRIMARY KEY,
		code TEXT UNIQUE NOT NULL,
		name TEXT UNIQUE NOT NULL,
		description TEXT,
		loan_type TEXT NOT NULL,
		min_amount NUMERIC NOT NULL,
		max_amount NUMERIC NOT NULL,
		interest_rate NUMERIC NOT NULL,
		penalty_rate NUMERIC NOT NULL DEFAULT 0,
		min_tenure_months INTEGER NOT NULL,
		max_tenure_months INTEGER NOT NULL,
		repayment_frequency TEXT NOT NULL,
		processing_fee_rate NUMERIC NOT NULL DEFAULT 0,
		insurance_fee_rate NUMERIC NOT NULL DEFAULT 0,
		requires_collateral BOOLEAN NOT NULL DEFAULT 0,
		active BOOLEAN NOT NULL DEFAULT 1,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createLoanTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE loans (
		id TEXT PRIMARY KEY,
		loan_number TEXT UNIQUE NOT NULL,
		customer_id TEXT NOT NULL,
		product_id TEXT NOT NULL,
		amount NUMERIC NOT NULL,
		interest_rate NUMERIC NOT NULL,
		tenure_months INTEGER NOT NULL,
		repayment_frequency TEXT NOT NULL,
		purpose TEXT NOT NULL,
		collateral_type TEXT,
		collateral_value NUMERIC,
		status TEXT NOT NULL,
		rejection_reason TEXT,
		installment_amount NUMERIC NOT NULL DEFAULT 0,
		total_repayment NUMERIC NOT NULL DEFAULT 0,
		processing_fee NUMERIC NOT NULL DEFAULT 0,
		insurance_fee NUMERIC NOT NULL DEFAULT 0,
		outstanding_principal NUMERIC NOT NULL DEFAULT 0,
		accrued_interest NUMERIC NOT NULL DEFAULT 0,
		penalty_balance NUMERIC NOT NULL DEFAULT 0,
		total_paid NUMERIC NOT NULL DEFAULT 0,
		days_overdue INTEGER NOT NULL DEFAULT 0,
		next_due_date DATETIME,
		applied_at DATETIME NOT NULL,
		reviewed_by TEXT,
		approved_at DATETIME,
		disbursed_at DATETIME,
		closed_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE loan_schedule_entries (
		id TEXT PRIMARY KEY,
		loan_id TEXT NOT NULL,
		number INTEGER NOT NULL,
		due_date DATETIME NOT NULL,
		amount NUMERIC NOT NULL,
		principal_portion NUMERIC NOT NULL,
		interest_portion NUMERIC NOT NULL,
		remaining_balance NUMERIC NOT NULL,
		paid BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createTransactionTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE transactions (
		id TEXT PRIMARY KEY,
		reference TEXT UNIQUE NOT NULL,
		loan_id TEXT NOT NULL,
		customer_id TEXT NOT NULL,
		type TEXT NOT NULL,
		amount NUMERIC NOT NULL,
		currency TEXT NOT NULL,
		channel TEXT NOT NULL,
		channel_ref TEXT,
		status TEXT NOT NULL,
		narration TEXT,
		principal_paid NUMERIC NOT NULL DEFAULT 0,
		interest_paid NUMERIC NOT NULL DEFAULT 0,
		penalty_paid NUMERIC NOT NULL DEFAULT 0,
		fees_paid NUMERIC NOT NULL DEFAULT 0,
		recorded_by TEXT,
		reversed_by TEXT,
		reversal_of TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createAuditLogTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE audit_logs (
		id TEXT PRIMARY KEY,
		actor_id TEXT,
		actor_email TEXT,
		action TEXT NOT NULL,
		resource_type TEXT NOT NULL,
		resource_id TEXT,
		details TEXT,
		ip_address TEXT,
		request_id TEXT,
		created_at DATETIME
	);`)
}
