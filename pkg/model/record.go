// pkg/model/record.go
package model

// Sentinel values substituted for missing or redacted data.
const (
	Unknown       = "[UNKNOWN]"
	MaskedAddress = "[MASKED ADDRESS]"
	StatusUnknown = "unknown"
)

// Column names of the fixed customer schema, in order.
const (
	ColCustomerID    = "customer_id"
	ColFirstName     = "first_name"
	ColLastName      = "last_name"
	ColEmail         = "email"
	ColPhone         = "phone"
	ColDateOfBirth   = "date_of_birth"
	ColAddress       = "address"
	ColIncome        = "income"
	ColAccountStatus = "account_status"
	ColCreatedDate   = "created_date"
)

// Columns returns the expected column set, in order. A dataset is well-formed
// only if its header matches this exactly.
func Columns() []string {
	return []string{
		ColCustomerID,
		ColFirstName,
		ColLastName,
		ColEmail,
		ColPhone,
		ColDateOfBirth,
		ColAddress,
		ColIncome,
		ColAccountStatus,
		ColCreatedDate,
	}
}

// Record is a single customer row. Every field is held as raw text until the
// cleaner normalizes it.
type Record struct {
	CustomerID    string
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	DateOfBirth   string
	Address       string
	Income        string
	AccountStatus string
	CreatedDate   string
}

// RecordFromValues builds a Record from a CSV row in schema column order.
func RecordFromValues(values []string) Record {
	var r Record
	for i, v := range values {
		if i >= len(fieldOrder) {
			break
		}
		r.Set(fieldOrder[i], v)
	}
	return r
}

var fieldOrder = Columns()

// Values returns the record's fields as a CSV row in schema column order.
func (r Record) Values() []string {
	values := make([]string, 0, len(fieldOrder))
	for _, col := range fieldOrder {
		values = append(values, r.Get(col))
	}
	return values
}

// Get returns the value of the named column. Unknown names return "".
func (r Record) Get(column string) string {
	switch column {
	case ColCustomerID:
		return r.CustomerID
	case ColFirstName:
		return r.FirstName
	case ColLastName:
		return r.LastName
	case ColEmail:
		return r.Email
	case ColPhone:
		return r.Phone
	case ColDateOfBirth:
		return r.DateOfBirth
	case ColAddress:
		return r.Address
	case ColIncome:
		return r.Income
	case ColAccountStatus:
		return r.AccountStatus
	case ColCreatedDate:
		return r.CreatedDate
	default:
		return ""
	}
}

// Set assigns the value of the named column. Unknown names are ignored.
func (r *Record) Set(column, value string) {
	switch column {
	case ColCustomerID:
		r.CustomerID = value
	case ColFirstName:
		r.FirstName = value
	case ColLastName:
		r.LastName = value
	case ColEmail:
		r.Email = value
	case ColPhone:
		r.Phone = value
	case ColDateOfBirth:
		r.DateOfBirth = value
	case ColAddress:
		r.Address = value
	case ColIncome:
		r.Income = value
	case ColAccountStatus:
		r.AccountStatus = value
	case ColCreatedDate:
		r.CreatedDate = value
	}
}
