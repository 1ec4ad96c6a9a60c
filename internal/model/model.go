package model

import "time"

// Transaction types as the ledger API spells them.
const (
	TypeIncome  = "INCOME"
	TypeExpense = "EXPENSE"
)

// Roles the hosting environment can hand us.
const (
	RoleAdmin   = "Admin"
	RoleManager = "Manager"
	RoleUser    = "User"
)

// Transaction is one ledger row as the API serializes it. Amount arrives as a
// decimal string; keep it raw and let consumers parse it tolerantly.
type Transaction struct {
	ID                  int64     `json:"id"`
	Amount              string    `json:"amount"`
	Type                string    `json:"type"`
	PaymentMethod       int64     `json:"payment_method"`
	PaymentMethodName   string    `json:"payment_method_name"`
	Subcategory         *int64    `json:"subcategory"`
	SubcategoryLabel    string    `json:"subcategory_label"`
	TransactionDate     time.Time `json:"transaction_date"`
	Description         string    `json:"description"`
	IsActive            bool      `json:"is_active"`
	ReceiptDownloadURL  string    `json:"receipt_download_url,omitempty"`
	ReceiptThumbnailURL string    `json:"receipt_thumbnail_url,omitempty"`
}

// Reference is a payment method or subcategory option.
type Reference struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Capabilities are the permission flags the session was initialized with.
// The client respects them; it never computes them.
type Capabilities struct {
	Role       string
	CanExport  bool
	CanRestore bool
}

func (c Capabilities) IsAdmin() bool   { return c.Role == RoleAdmin }
func (c Capabilities) IsManager() bool { return c.Role == RoleManager }
