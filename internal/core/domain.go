package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	AccountChecking   AccountType = "checking"
	AccountSavings    AccountType = "savings"
	AccountInvestment AccountType = "investment"
)

const (
	TransactionIncome   TransactionType = "income"
	TransactionExpense  TransactionType = "expense"
	TransactionTransfer TransactionType = "transfer"
)

const (
	TransactionPending   TransactionStatus = "pending"
	TransactionCompleted TransactionStatus = "completed"
	TransactionCancelled TransactionStatus = "cancelled"
)

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPartial   PaymentStatus = "partial"
	PaymentCompleted PaymentStatus = "completed"
	PaymentOverdue   PaymentStatus = "overdue"
	PaymentCancelled PaymentStatus = "cancelled"
)

const (
	PaymentFull          PaymentType = "full"
	PaymentInstallment   PaymentType = "installment"
	PaymentAdvance       PaymentType = "advance"
	PaymentBalanceSettle PaymentType = "balance_payment"
	PaymentAdvanceLeft   PaymentType = "advance_payment"
)

const (
	ExpensePending    ExpenseStatus = "pending"
	ExpenseApproved   ExpenseStatus = "approved"
	ExpenseReimbursed ExpenseStatus = "reimbursed"
)

const (
	MissionPlanning   MissionStatus = "planning"
	MissionInProgress MissionStatus = "in-progress"
	MissionCompleted  MissionStatus = "completed"
	MissionCancelled  MissionStatus = "cancelled"
)

const (
	FundingBankAccount FundingAccountType = "bank_account"
	FundingCreditCard  FundingAccountType = "credit_card"
)

type (
	AccountType        string
	TransactionType    string
	TransactionStatus  string
	PaymentStatus      string
	PaymentType        string
	ExpenseStatus      string
	MissionStatus      string
	FundingAccountType string

	// Company is the tenant boundary. Every other entity belongs to
	// exactly one company via TenantID.
	Company struct {
		ID        string
		Name      string
		CreatedAt time.Time
	}

	// Profile links an authenticated user to a company.
	Profile struct {
		ID          string
		TenantID    string
		Name        string
		Email       string
		AccessLevel AccessLevel
	}

	BankAccount struct {
		ID          string
		TenantID    string
		Name        string
		Bank        string
		AccountType AccountType
		Balance     decimal.Decimal // signed; overdrafts are negative
		IsActive    bool
	}

	CreditCard struct {
		ID             string
		TenantID       string
		Name           string
		Brand          string
		Limit          decimal.Decimal
		UsedLimit      decimal.Decimal
		AvailableLimit decimal.Decimal // always Limit - UsedLimit, recomputed on write
	}

	Transaction struct {
		ID          string
		TenantID    string
		Type        TransactionType
		Category    string
		Amount      decimal.Decimal // unsigned; sign comes from Type
		Date        time.Time
		Status      TransactionStatus
		AccountID   string // optional funding/receiving account
		AccountType FundingAccountType
		Description string
	}

	Payment struct {
		ID                 string
		TenantID           string
		ProviderID         string
		Amount             decimal.Decimal
		DueDate            time.Time
		PaymentDate        *time.Time
		Status             PaymentStatus
		Type               PaymentType
		Installments       int
		CurrentInstallment int
		AccountID          string // funding account; required once completed
		AccountType        FundingAccountType
	}

	// AccommodationDetails and TravelDetails are the two optional
	// expense sub-records; at most one is set per expense.
	AccommodationDetails struct {
		ActualCost    decimal.Decimal
		InvoiceAmount decimal.Decimal
		NetAmount     decimal.Decimal
	}

	TravelDetails struct {
		Kilometers   decimal.Decimal
		RatePerKm    decimal.Decimal
		TotalRevenue decimal.Decimal
	}

	Expense struct {
		ID            string
		TenantID      string
		MissionID     string
		EmployeeID    string
		Category      string
		Amount        decimal.Decimal
		IsAdvanced    bool
		Status        ExpenseStatus
		Accommodation *AccommodationDetails
		Travel        *TravelDetails
	}

	Mission struct {
		ID                 string
		TenantID           string
		Title              string
		ClientName         string
		Status             MissionStatus
		ServiceValue       decimal.Decimal
		CompanyPercentage  decimal.Decimal
		ProviderPercentage decimal.Decimal // CompanyPercentage + ProviderPercentage == 100
		IsApproved         bool
		ProviderIDs        []string // assigned providers; earnings split evenly
	}

	ServiceProvider struct {
		ID             string
		TenantID       string
		Name           string
		CurrentBalance decimal.Decimal // derived: approved earnings - completed payments
	}

	ConfirmedRevenue struct {
		ID          string
		TenantID    string
		MissionID   string
		Amount      decimal.Decimal
		ConfirmedAt time.Time
	}
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrEmptyName       = errors.New("empty name")
	ErrEmptyTenant     = errors.New("empty tenant id")
	ErrInvalidType     = errors.New("invalid type")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrInvalidSplit    = errors.New("company and provider percentages must sum to 100")
	ErrNegativeLimit   = errors.New("credit limit cannot be negative")
	ErrLimitExceeded   = errors.New("used limit exceeds credit limit")
	ErrMissingProvider = errors.New("missing provider id")
	ErrZeroDate        = errors.New("date cannot be zero")
)

var hundred = decimal.NewFromInt(100)

func (t AccountType) IsValid() bool {
	switch t {
	case AccountChecking, AccountSavings, AccountInvestment:
		return true
	}
	return false
}

func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionIncome, TransactionExpense, TransactionTransfer:
		return true
	}
	return false
}

func (s TransactionStatus) IsValid() bool {
	switch s {
	case TransactionPending, TransactionCompleted, TransactionCancelled:
		return true
	}
	return false
}

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentPending, PaymentPartial, PaymentCompleted, PaymentOverdue, PaymentCancelled:
		return true
	}
	return false
}

func (t PaymentType) IsValid() bool {
	switch t {
	case PaymentFull, PaymentInstallment, PaymentAdvance, PaymentBalanceSettle, PaymentAdvanceLeft:
		return true
	}
	return false
}

func (s ExpenseStatus) IsValid() bool {
	switch s {
	case ExpensePending, ExpenseApproved, ExpenseReimbursed:
		return true
	}
	return false
}

func (s MissionStatus) IsValid() bool {
	switch s {
	case MissionPlanning, MissionInProgress, MissionCompleted, MissionCancelled:
		return true
	}
	return false
}

func (t FundingAccountType) IsValid() bool {
	switch t {
	case FundingBankAccount, FundingCreditCard:
		return true
	}
	return false
}

func (a BankAccount) Validate() error {
	if strings.TrimSpace(a.TenantID) == "" {
		return ErrEmptyTenant
	}
	if strings.TrimSpace(a.Name) == "" {
		return ErrEmptyName
	}
	if !a.AccountType.IsValid() {
		return ErrInvalidType
	}
	return nil
}

// Validate checks the stored fields; the AvailableLimit invariant is
// recomputed (not merely checked) by Normalize before every write.
func (c CreditCard) Validate() error {
	if strings.TrimSpace(c.TenantID) == "" {
		return ErrEmptyTenant
	}
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if c.Limit.IsNegative() {
		return ErrNegativeLimit
	}
	if c.UsedLimit.IsNegative() || c.UsedLimit.GreaterThan(c.Limit) {
		return ErrLimitExceeded
	}
	return nil
}

// Normalize recomputes AvailableLimit from Limit and UsedLimit. The
// source system stored all three independently, which let them drift;
// the derived field is never trusted from input.
func (c *CreditCard) Normalize() {
	c.AvailableLimit = c.Limit.Sub(c.UsedLimit)
}

func (t Transaction) Validate() error {
	if strings.TrimSpace(t.TenantID) == "" {
		return ErrEmptyTenant
	}
	if !t.Type.IsValid() {
		return ErrInvalidType
	}
	if !t.Status.IsValid() {
		return ErrInvalidStatus
	}
	if !t.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if t.Date.IsZero() {
		return ErrZeroDate
	}
	if t.AccountID != "" && !t.AccountType.IsValid() {
		return ErrInvalidType
	}
	return nil
}

func (p Payment) Validate() error {
	if strings.TrimSpace(p.TenantID) == "" {
		return ErrEmptyTenant
	}
	if strings.TrimSpace(p.ProviderID) == "" {
		return ErrMissingProvider
	}
	if !p.Status.IsValid() {
		return ErrInvalidStatus
	}
	if !p.Type.IsValid() {
		return ErrInvalidType
	}
	if !p.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if p.DueDate.IsZero() {
		return ErrZeroDate
	}
	if p.Type == PaymentInstallment && (p.Installments < 1 || p.CurrentInstallment < 1 || p.CurrentInstallment > p.Installments) {
		return errors.New("invalid installment numbering")
	}
	return nil
}

func (e Expense) Validate() error {
	if strings.TrimSpace(e.TenantID) == "" {
		return ErrEmptyTenant
	}
	if strings.TrimSpace(e.Category) == "" {
		return errors.New("empty category")
	}
	if !e.Status.IsValid() {
		return ErrInvalidStatus
	}
	if !e.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if e.Accommodation != nil && e.Travel != nil {
		return errors.New("expense cannot carry both accommodation and travel details")
	}
	return nil
}

func (m Mission) Validate() error {
	if strings.TrimSpace(m.TenantID) == "" {
		return ErrEmptyTenant
	}
	if strings.TrimSpace(m.Title) == "" {
		return errors.New("empty title")
	}
	if !m.Status.IsValid() {
		return ErrInvalidStatus
	}
	if m.ServiceValue.IsNegative() {
		return ErrInvalidAmount
	}
	if !m.CompanyPercentage.Add(m.ProviderPercentage).Equal(hundred) {
		return ErrInvalidSplit
	}
	return nil
}

// ProviderValue is the share of the service value owed to providers as
// a whole: ServiceValue * ProviderPercentage / 100.
func (m Mission) ProviderValue() decimal.Decimal {
	return m.ServiceValue.Mul(m.ProviderPercentage).Div(hundred)
}

func (p ServiceProvider) Validate() error {
	if strings.TrimSpace(p.TenantID) == "" {
		return ErrEmptyTenant
	}
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	return nil
}
