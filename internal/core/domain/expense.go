package domain

import (
	"time"
	"unicode/utf8"
)

// Currency is an ISO 4217 code accepted for expenses.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyJPY Currency = "JPY"
	CurrencyINR Currency = "INR"
	CurrencyAUD Currency = "AUD"
	CurrencyCAD Currency = "CAD"
	CurrencyCHF Currency = "CHF"
	CurrencyCNY Currency = "CNY"
	CurrencySEK Currency = "SEK"
	CurrencyNZD Currency = "NZD"
	CurrencyNGN Currency = "NGN"

	DefaultCurrency = CurrencyNGN
)

var currencies = map[Currency]struct{}{
	CurrencyUSD: {}, CurrencyEUR: {}, CurrencyGBP: {}, CurrencyJPY: {},
	CurrencyINR: {}, CurrencyAUD: {}, CurrencyCAD: {}, CurrencyCHF: {},
	CurrencyCNY: {}, CurrencySEK: {}, CurrencyNZD: {}, CurrencyNGN: {},
}

// Valid reports whether c is one of the supported currencies.
func (c Currency) Valid() bool {
	_, ok := currencies[c]
	return ok
}

// Category classifies an expense.
type Category string

const (
	CategoryGroceries   Category = "Groceries"
	CategoryLeisure     Category = "Leisure"
	CategoryElectronics Category = "Electronics"
	CategoryUtilities   Category = "Utilities"
	CategoryClothing    Category = "Clothing"
	CategoryHealth      Category = "Health"
	CategoryOthers      Category = "Others"
)

var categories = map[Category]struct{}{
	CategoryGroceries: {}, CategoryLeisure: {}, CategoryElectronics: {},
	CategoryUtilities: {}, CategoryClothing: {}, CategoryHealth: {},
	CategoryOthers: {},
}

// Valid reports whether c is one of the supported categories.
func (c Category) Valid() bool {
	_, ok := categories[c]
	return ok
}

// MaxNoteLength is the longest note, in characters, an expense may carry.
const MaxNoteLength = 100

// Expense is a single spending record owned by exactly one user.
type Expense struct {
	ID        string    `json:"id"`
	Amount    float64   `json:"amount"`
	Currency  Currency  `json:"currency"`
	Category  Category  `json:"category"`
	Date      time.Time `json:"date"`
	Note      string    `json:"note,omitempty"`
	UserID    string    `json:"user"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate checks the schema rules shared by create and update.
func (e *Expense) Validate() error {
	if e.UserID == "" {
		return Validationf("Expense must belong to a user")
	}
	if e.Amount < 0 {
		return Validationf("Amount must be a positive number")
	}
	if !e.Currency.Valid() {
		return Validationf("%q is not a supported currency", e.Currency)
	}
	if !e.Category.Valid() {
		return Validationf("%q is not a supported category", e.Category)
	}
	if utf8.RuneCountInString(e.Note) > MaxNoteLength {
		return Validationf("Note can't be more than %d characters long", MaxNoteLength)
	}
	return nil
}

// ExpensePatch is a partial update. The owner is deliberately absent.
type ExpensePatch struct {
	Amount   *float64
	Currency *Currency
	Category *Category
	Note     *string
	Date     *time.Time
}

// Empty reports whether the patch changes nothing.
func (p ExpensePatch) Empty() bool {
	return p.Amount == nil && p.Currency == nil && p.Category == nil && p.Note == nil && p.Date == nil
}

// Apply returns a copy of e with the patch applied.
func (p ExpensePatch) Apply(e Expense) Expense {
	if p.Amount != nil {
		e.Amount = *p.Amount
	}
	if p.Currency != nil {
		e.Currency = *p.Currency
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.Note != nil {
		e.Note = *p.Note
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	return e
}

// ExpenseFilter is a storage-independent predicate over a user's expenses.
// OwnerID is always set; every other field is optional and bounds are inclusive.
type ExpenseFilter struct {
	OwnerID   string
	From      *time.Time
	To        *time.Time
	Category  Category
	Currency  Currency
	MinAmount *float64
	MaxAmount *float64
}

// Matches evaluates the filter in memory.
func (f ExpenseFilter) Matches(e *Expense) bool {
	if e.UserID != f.OwnerID {
		return false
	}
	if f.From != nil && e.Date.Before(*f.From) {
		return false
	}
	if f.To != nil && e.Date.After(*f.To) {
		return false
	}
	if f.Category != "" && e.Category != f.Category {
		return false
	}
	if f.Currency != "" && e.Currency != f.Currency {
		return false
	}
	if f.MinAmount != nil && e.Amount < *f.MinAmount {
		return false
	}
	if f.MaxAmount != nil && e.Amount > *f.MaxAmount {
		return false
	}
	return true
}
