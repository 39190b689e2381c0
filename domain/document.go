package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
)

type DocumentState string

const (
	DocumentStateDraft         DocumentState = "draft"
	DocumentStateUnderApproval DocumentState = "under_approval"
	DocumentStateApproved      DocumentState = "approved"
	DocumentStateRejected      DocumentState = "rejected"
)

// DocumentRef identifies a document across models
type DocumentRef struct {
	Model string `json:"model" yaml:"model" validate:"required"`
	ID    string `json:"id" yaml:"id" validate:"required"`
}

func (r DocumentRef) Validate() error {
	if strings.TrimSpace(r.Model) == "" || strings.TrimSpace(r.ID) == "" {
		return ErrDocumentRefInvalid
	}
	return nil
}

func (r DocumentRef) String() string {
	return fmt.Sprintf("%s/%s", r.Model, r.ID)
}

// Document is the contract a host business record fulfils to take part in approvals
type Document interface {
	Ref() DocumentRef
	GetState() DocumentState
	SetState(DocumentState)

	// FinalState is the state entered once approval completes, empty to stay at approved
	FinalState() DocumentState

	GetCreatedBy() string
	GetRequestedBy() string
	SetRequestedBy(string)

	// ToMap exposes the document to level expressions and thresholds
	ToMap() (map[string]interface{}, error)

	// ApprovalAmount returns the document total converted to currency at the given date.
	// An empty currency means no conversion.
	ApprovalAmount(ctx context.Context, currency string, at time.Time) (float64, error)

	// ValidateApprovalRequest runs the document specific checks before requesting approval
	ValidateApprovalRequest(ctx context.Context) error

	// ApprovalAllowed returns true when actor holds a privilege that skips approval for this document
	ApprovalAllowed(ctx context.Context, actor string) (bool, error)
}

// UnitScopedDocument is implemented by documents belonging to an organisational unit with its own approver table
type UnitScopedDocument interface {
	ApprovalUnit() string
	AppliesUnitRoles() bool
}

// DocumentStore loads and persists documents of the models it is registered for
type DocumentStore interface {
	GetDocument(ctx context.Context, ref DocumentRef) (Document, error)
	SaveDocument(ctx context.Context, d Document) error
}

type CurrencyConverter interface {
	Convert(ctx context.Context, amount float64, from, to string, at time.Time) (float64, error)
}

// Record is the generic Document implementation stored in the documents table
type Record struct {
	Model string        `json:"model" yaml:"model" validate:"required"`
	ID    string        `json:"id" yaml:"id" validate:"required"`
	Name  string        `json:"name" yaml:"name"`
	State DocumentState `json:"state" yaml:"state"`

	Amount    float64 `json:"amount" yaml:"amount"`
	Currency  string  `json:"currency" yaml:"currency"`
	LineCount int     `json:"line_count" yaml:"line_count"`

	// Unit and ApplyUnitRoles route role levels to the unit approver table
	Unit           string `json:"unit,omitempty" yaml:"unit,omitempty"`
	ApplyUnitRoles bool   `json:"apply_unit_roles,omitempty" yaml:"apply_unit_roles,omitempty"`

	FinalizedState DocumentState `json:"finalized_state,omitempty" yaml:"finalized_state,omitempty"`

	// RequireLines and RequireAmount toggle the request time validations
	RequireLines  bool `json:"require_lines,omitempty" yaml:"require_lines,omitempty"`
	RequireAmount bool `json:"require_amount,omitempty" yaml:"require_amount,omitempty"`

	// Exempt lists users allowed to confirm the document without approval
	Exempt []string `json:"exempt,omitempty" yaml:"exempt,omitempty"`

	Fields map[string]interface{} `json:"fields,omitempty" yaml:"fields,omitempty"`

	CreatedBy   string    `json:"created_by" yaml:"created_by"`
	RequestedBy string    `json:"requested_by,omitempty" yaml:"requested_by,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`

	Converter CurrencyConverter `json:"-" yaml:"-"`
}

func (r *Record) Ref() DocumentRef            { return DocumentRef{Model: r.Model, ID: r.ID} }
func (r *Record) GetState() DocumentState     { return r.State }
func (r *Record) SetState(s DocumentState)    { r.State = s }
func (r *Record) FinalState() DocumentState   { return r.FinalizedState }
func (r *Record) GetCreatedBy() string        { return r.CreatedBy }
func (r *Record) GetRequestedBy() string      { return r.RequestedBy }
func (r *Record) SetRequestedBy(actor string) { r.RequestedBy = actor }
func (r *Record) ApprovalUnit() string        { return r.Unit }
func (r *Record) AppliesUnitRoles() bool      { return r.ApplyUnitRoles && r.Unit != "" }

func (r *Record) ToMap() (map[string]interface{}, error) {
	m := make(map[string]interface{}, len(r.Fields)+10)
	for k, v := range r.Fields {
		m[k] = v
	}
	m["model"] = r.Model
	m["id"] = r.ID
	m["name"] = r.Name
	m["state"] = string(r.State)
	m["amount"] = r.Amount
	m["currency"] = r.Currency
	m["line_count"] = r.LineCount
	m["unit"] = r.Unit
	m["created_by"] = r.CreatedBy
	m["requested_by"] = r.RequestedBy
	m["fields"] = r.Fields
	return m, nil
}

func (r *Record) ApprovalAmount(ctx context.Context, currency string, at time.Time) (float64, error) {
	if currency == "" || strings.EqualFold(currency, r.Currency) {
		return r.Amount, nil
	}
	if r.Converter == nil {
		return 0, ErrCurrencyConverterMissing
	}
	return r.Converter.Convert(ctx, r.Amount, r.Currency, currency, at)
}

func (r *Record) ValidateApprovalRequest(context.Context) error {
	if r.RequireLines && r.LineCount == 0 {
		return ErrDocumentHasNoLines
	}
	if r.RequireAmount && r.Amount <= 0 {
		return ErrDocumentZeroAmount
	}
	return nil
}

func (r *Record) ApprovalAllowed(_ context.Context, actor string) (bool, error) {
	for _, u := range r.Exempt {
		if strings.EqualFold(u, actor) {
			return true, nil
		}
	}
	return false, nil
}

type ListDocumentsFilter struct {
	Model   string   `mapstructure:"model" validate:"omitempty"`
	States  []string `mapstructure:"states" validate:"omitempty,min=1"`
	OrderBy []string `mapstructure:"order_by" validate:"omitempty,min=1"`
	Size    int      `mapstructure:"size" validate:"omitempty"`
	Offset  int      `mapstructure:"offset" validate:"omitempty"`
}
