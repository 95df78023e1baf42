package leasing

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// BillingSnapshot is the billing metadata captured once at lease creation
// and stored under the "billing" key of the terms bag. It is a snapshot for
// downstream consumers, not a live view: mutating the lease does not
// re-derive it.
type BillingSnapshot struct {
	NextDueDate      *time.Time `json:"next_due_date,omitempty"`
	BillingCycleDay  int        `json:"billing_cycle_day"`
	EstimatedPeriods int        `json:"estimated_periods"`
}

// TerminationRecord captures early-termination metadata under the
// "termination" key of the terms bag.
type TerminationRecord struct {
	TerminatedOn time.Time `json:"terminated_on"`
	Reason       string    `json:"reason,omitempty"`
}

// Terms is the open attribute bag on a lease. Well-known sub-schemas
// (billing, termination) get typed accessors; everything else is free-form
// string-keyed JSON for the surrounding CRUD layer.
type Terms struct {
	Billing     *BillingSnapshot   `json:"billing,omitempty"`
	Termination *TerminationRecord `json:"termination,omitempty"`
	Extra       map[string]any     `json:"extra,omitempty"`
}

// NewTerms creates an empty terms bag
func NewTerms() Terms {
	return Terms{}
}

// SetBillingSnapshot stores the billing metadata snapshot
func (t *Terms) SetBillingSnapshot(snapshot BillingSnapshot) {
	t.Billing = &snapshot
}

// BillingSnapshotOrZero returns the billing snapshot, or a zero value when absent
func (t *Terms) BillingSnapshotOrZero() BillingSnapshot {
	if t.Billing == nil {
		return BillingSnapshot{}
	}
	return *t.Billing
}

// SetTermination stores early-termination metadata
func (t *Terms) SetTermination(record TerminationRecord) {
	t.Termination = &record
}

// SetExtra stores a free-form attribute
func (t *Terms) SetExtra(key string, value any) {
	if t.Extra == nil {
		t.Extra = make(map[string]any)
	}
	t.Extra[key] = value
}

// GetExtra reads a free-form attribute
func (t *Terms) GetExtra(key string) (any, bool) {
	v, ok := t.Extra[key]
	return v, ok
}

// Value implements driver.Valuer for JSONB storage
func (t Terms) Value() (driver.Value, error) {
	return json.Marshal(t)
}

// Scan implements sql.Scanner for JSONB retrieval
func (t *Terms) Scan(value interface{}) error {
	if value == nil {
		*t = Terms{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan Terms: unsupported type")
	}

	if len(bytes) == 0 {
		*t = Terms{}
		return nil
	}

	return json.Unmarshal(bytes, t)
}
