package domain

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const (
	FieldCustomerID = "customerId"
	FieldAmount     = "amount"
	FieldStatus     = "status"
)

const (
	MsgSelectCustomer = "Please select a customer."
	MsgAmountPositive = "Please enter an amount greater than $0."
	MsgAmountPrecise  = "Amount cannot have more than 2 decimal places."
	MsgAmountTooLarge = "Amount is too large."
	MsgSelectStatus   = "Please select an invoice status."

	MsgCreateFailed = "Missing Fields. Failed to Create Invoice."
	MsgUpdateFailed = "Missing Fields. Failed to Update Invoice."
)

var centsPerDollar = decimal.NewFromInt(100)

// maxAmount caps one invoice at ten billion dollars so dashboard SUMs stay
// well inside int64 cents.
var maxAmount = decimal.New(1, 10)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// InvoiceFormInput is the raw create/update form as submitted.
type InvoiceFormInput struct {
	CustomerID string `form:"customerId" json:"customerId" validate:"required"`
	Amount     string `form:"amount" json:"amount" validate:"required"`
	Status     string `form:"status" json:"status" validate:"required,oneof=pending paid"`
}

// InvoiceInput is a validated form. Values are only built by ParseInvoiceInput.
type InvoiceInput struct {
	customerID string
	amount     decimal.Decimal
	status     Status
}

func (in InvoiceInput) CustomerID() string { return in.customerID }

func (in InvoiceInput) Amount() decimal.Decimal { return in.amount }

func (in InvoiceInput) Status() Status { return in.status }

// Cents returns the amount in the stored unit.
func (in InvoiceInput) Cents() int64 {
	return ToCents(in.amount)
}

// ValidationErrors carries per-field messages and a summary message.
type ValidationErrors struct {
	Errors  map[string][]string `json:"errors"`
	Message string              `json:"message"`
}

func (e *ValidationErrors) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for field := range e.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fmt.Sprintf("%s (%s)", e.Message, strings.Join(fields, ", "))
}

func (e *ValidationErrors) add(field, msg string) {
	if e.Errors == nil {
		e.Errors = map[string][]string{}
	}
	e.Errors[field] = append(e.Errors[field], msg)
}

// ParseInvoiceInput trims and validates raw. On failure the returned error is
// a *ValidationErrors whose Message is failureMessage.
func ParseInvoiceInput(raw InvoiceFormInput, failureMessage string) (InvoiceInput, error) {
	raw = InvoiceFormInput{
		CustomerID: strings.TrimSpace(raw.CustomerID),
		Amount:     strings.TrimSpace(raw.Amount),
		Status:     strings.TrimSpace(raw.Status),
	}

	verr := &ValidationErrors{Message: failureMessage}
	if err := validate.Struct(raw); err != nil {
		fieldErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return InvoiceInput{}, err
		}
		for _, fe := range fieldErrs {
			verr.add(fe.Field(), messageFor(fe.Field()))
		}
	}

	var amount decimal.Decimal
	if _, failed := verr.Errors[FieldAmount]; !failed {
		parsed, err := decimal.NewFromString(raw.Amount)
		switch {
		case err != nil || !parsed.IsPositive():
			verr.add(FieldAmount, MsgAmountPositive)
		case !parsed.Equal(parsed.Truncate(2)):
			verr.add(FieldAmount, MsgAmountPrecise)
		case parsed.GreaterThan(maxAmount):
			verr.add(FieldAmount, MsgAmountTooLarge)
		default:
			amount = parsed
		}
	}

	if len(verr.Errors) > 0 {
		return InvoiceInput{}, verr
	}
	return InvoiceInput{
		customerID: raw.CustomerID,
		amount:     amount,
		status:     Status(raw.Status),
	}, nil
}

func messageFor(field string) string {
	switch field {
	case FieldCustomerID:
		return MsgSelectCustomer
	case FieldAmount:
		return MsgAmountPositive
	default:
		return MsgSelectStatus
	}
}

// ToCents converts dollars to cents exactly. Callers pass at most 2 decimals.
func ToCents(dollars decimal.Decimal) int64 {
	return dollars.Mul(centsPerDollar).IntPart()
}

// FromCents converts a stored amount back to dollars.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}
