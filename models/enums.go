package models

import (
	"errors"
	"strings"
)

type SubjectType string

const (
	SubjectTypeCustomer SubjectType = "Customer"
	SubjectTypeSupplier SubjectType = "Supplier"
	SubjectTypePartner  SubjectType = "Partner"
)

var ErrInvalidSubjectType = errors.New("invalid subject type")

var AllSubjectTypes = []SubjectType{SubjectTypeCustomer, SubjectTypeSupplier, SubjectTypePartner}

func (t SubjectType) IsValid() bool {
	switch t {
	case SubjectTypeCustomer, SubjectTypeSupplier, SubjectTypePartner:
		return true
	}
	return false
}

// ParseSubjectType accepts the canonical name in any case, or the table name.
func ParseSubjectType(s string) (SubjectType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "customer", "customers":
		return SubjectTypeCustomer, nil
	case "supplier", "suppliers":
		return SubjectTypeSupplier, nil
	case "partner", "partners":
		return SubjectTypePartner, nil
	}
	return "", ErrInvalidSubjectType
}

// ForeignKey is the column transaction tables use to point at this kind of subject.
func (t SubjectType) ForeignKey() string {
	switch t {
	case SubjectTypeSupplier:
		return "supplier_id"
	case SubjectTypePartner:
		return "partner_id"
	default:
		return "customer_id"
	}
}

func (t SubjectType) TableName() string {
	switch t {
	case SubjectTypeSupplier:
		return "suppliers"
	case SubjectTypePartner:
		return "partners"
	default:
		return "customers"
	}
}

type SaleStatus string

const (
	SaleStatusDraft     SaleStatus = "DRAFT"
	SaleStatusConfirmed SaleStatus = "CONFIRMED"
	SaleStatusCancelled SaleStatus = "CANCELLED"
)

type SaleReturnStatus string

const (
	SaleReturnStatusDraft     SaleReturnStatus = "DRAFT"
	SaleReturnStatusConfirmed SaleReturnStatus = "CONFIRMED"
	SaleReturnStatusCancelled SaleReturnStatus = "CANCELLED"
)

type InvoiceStatus string

const (
	InvoiceStatusUnpaid    InvoiceStatus = "UNPAID"
	InvoiceStatusPartial   InvoiceStatus = "PARTIAL"
	InvoiceStatusPaid      InvoiceStatus = "PAID"
	InvoiceStatusCancelled InvoiceStatus = "CANCELLED"
	InvoiceStatusRefunded  InvoiceStatus = "REFUNDED"
)

type ServiceStatus string

const (
	ServiceStatusPending    ServiceStatus = "PENDING"
	ServiceStatusDiagnosis  ServiceStatus = "DIAGNOSIS"
	ServiceStatusInProgress ServiceStatus = "IN_PROGRESS"
	ServiceStatusOnHold     ServiceStatus = "ON_HOLD"
	ServiceStatusCompleted  ServiceStatus = "COMPLETED"
	ServiceStatusCancelled  ServiceStatus = "CANCELLED"
)

type PreOrderStatus string

const (
	PreOrderStatusPending   PreOrderStatus = "PENDING"
	PreOrderStatusConfirmed PreOrderStatus = "CONFIRMED"
	PreOrderStatusFulfilled PreOrderStatus = "FULFILLED"
	PreOrderStatusCancelled PreOrderStatus = "CANCELLED"
)

type PaymentDirection string

const (
	PaymentDirectionIn  PaymentDirection = "IN"
	PaymentDirectionOut PaymentDirection = "OUT"
)

// IsOut compares case-insensitively; anything that is not OUT is treated as incoming.
func (d PaymentDirection) IsOut() bool {
	return strings.EqualFold(strings.TrimSpace(string(d)), string(PaymentDirectionOut))
}

func (d PaymentDirection) IsIn() bool {
	return strings.EqualFold(strings.TrimSpace(string(d)), string(PaymentDirectionIn))
}

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
	PaymentStatusRefunded  PaymentStatus = "REFUNDED"
	PaymentStatusCancelled PaymentStatus = "CANCELLED"
)

// Normalized upper-cases the stored status.
func (s PaymentStatus) Normalized() PaymentStatus {
	return PaymentStatus(strings.ToUpper(strings.TrimSpace(string(s))))
}

type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "CASH"
	PaymentMethodBank   PaymentMethod = "BANK"
	PaymentMethodCard   PaymentMethod = "CARD"
	PaymentMethodCheque PaymentMethod = "CHEQUE"
	PaymentMethodOnline PaymentMethod = "ONLINE"
)

// IsCheque also accepts the legacy spellings found in older split metadata.
func (m PaymentMethod) IsCheque() bool {
	switch strings.ToUpper(string(m)) {
	case "CHEQUE", "CHECK", "CHECKS", "CHEQUES":
		return true
	}
	return false
}

type CheckStatus string

const (
	CheckStatusPending     CheckStatus = "PENDING"
	CheckStatusCashed      CheckStatus = "CASHED"
	CheckStatusReturned    CheckStatus = "RETURNED"
	CheckStatusBounced     CheckStatus = "BOUNCED"
	CheckStatusResubmitted CheckStatus = "RESUBMITTED"
	CheckStatusCancelled   CheckStatus = "CANCELLED"
	CheckStatusArchived    CheckStatus = "ARCHIVED"
)

// IsReturned is true for checks that failed to clear.
func (s CheckStatus) IsReturned() bool {
	switch CheckStatus(strings.ToUpper(string(s))) {
	case CheckStatusReturned, CheckStatusBounced:
		return true
	}
	return false
}

// ReturnedCheckStatuses failed to clear; their amounts feed the returned-check buckets.
var ReturnedCheckStatuses = []CheckStatus{CheckStatusReturned, CheckStatusBounced}

// InactiveCheckStatuses never count as an outstanding check.
var InactiveCheckStatuses = []CheckStatus{CheckStatusReturned, CheckStatusBounced, CheckStatusCancelled, CheckStatusArchived}
