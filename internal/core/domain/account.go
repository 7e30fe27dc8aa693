package domain

// AccountNature is the normal balance side of an account.
type AccountNature string

const (
	NatureDebit  AccountNature = "DEBIT"
	NatureCredit AccountNature = "CREDIT"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account represents one node of the OHADA chart of accounts.
// The code is hierarchical: its leading digit is the OHADA class (1=equity,
// 2=fixed assets, 3=inventory, 4=third parties, 5=treasury, 6=expenses,
// 7=revenue, 8=extraordinary, 9=analytic). Codes are unique and immutable
// once entries reference them.
type Account struct {
	Code       string        `json:"code"`
	Label      string        `json:"label"`
	ClassCode  string        `json:"classCode"`  // Leading digit of Code
	Type       AccountType   `json:"type"`       // ASSET, LIABILITY, etc.
	ParentCode string        `json:"parentCode"` // Weak reference, no ownership
	Nature     AccountNature `json:"nature"`     // Normal balance side
	IsSummary  bool          `json:"isSummary"`  // Aggregation-only, not postable
	IsActive   bool          `json:"isActive"`
	AuditFields
}

// ClassOf returns the OHADA class of an account code (its leading digit).
func ClassOf(code string) string {
	if code == "" {
		return ""
	}
	return code[:1]
}

// NatureForClass returns the normal balance side for an OHADA class.
// Classes 1 and 7 are credit-natured; 8 holds both HAO charges and products
// and defaults to credit like revenue.
func NatureForClass(class string) AccountNature {
	switch class {
	case "1", "7", "8":
		return NatureCredit
	default:
		return NatureDebit
	}
}

// TypeForCode derives a default AccountType from an OHADA account code.
// Within class 8, odd second digits are HAO charges and even ones HAO
// products, per the OHADA numbering.
func TypeForCode(code string) AccountType {
	switch ClassOf(code) {
	case "1":
		return Equity
	case "2", "3", "4", "5":
		return Asset
	case "6":
		return Expense
	case "7":
		return Revenue
	case "8":
		if len(code) >= 2 && (code[1]-'0')%2 == 1 {
			return Expense
		}
		return Revenue
	default:
		return Expense
	}
}
