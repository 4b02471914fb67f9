package handler

import "github.com/expenser/expense-api/internal/core/domain"

// successResponse is the envelope of every successful JSON response.
type successResponse struct {
	Status  string `json:"status"`
	Results *int   `json:"results,omitempty"`
	Data    any    `json:"data"`
}

// errorResponse documents the error envelope rendered by the central handler.
type errorResponse struct {
	Status  string `json:"status" example:"fail"`
	Message string `json:"message"`
}

func success(data any) successResponse {
	return successResponse{Status: "success", Data: data}
}

func successList(n int, data any) successResponse {
	return successResponse{Status: "success", Results: &n, Data: data}
}

// --- Auth ---

type signupRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type loginResponse struct {
	Status  string    `json:"status"`
	Message string    `json:"message"`
	Token   string    `json:"token"`
	User    loginUser `json:"user"`
}

type userData struct {
	User *domain.User `json:"user"`
}

type usersData struct {
	Users []*domain.User `json:"users"`
}

// --- Users ---

type updateUserRequest struct {
	Name            *string `json:"name"            validate:"omitempty,min=1"`
	Email           *string `json:"email"           validate:"omitempty,email"`
	Password        *string `json:"password"`
	PasswordConfirm *string `json:"passwordConfirm"`
}

type deactivateRequest struct {
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

// --- Expenses ---

type createExpenseRequest struct {
	Amount   *float64 `json:"amount"   validate:"required,gte=0"`
	Currency string   `json:"currency" validate:"omitempty,currency"`
	Category string   `json:"category" validate:"required,category"`
	Date     string   `json:"date"`
	Note     string   `json:"note"     validate:"max=100"`
}

type updateExpenseRequest struct {
	Amount   *float64 `json:"amount"   validate:"omitempty,gte=0"`
	Currency *string  `json:"currency" validate:"omitempty,currency"`
	Category *string  `json:"category" validate:"omitempty,category"`
	Date     *string  `json:"date"`
	Note     *string  `json:"note"     validate:"omitempty,max=100"`
}

type expenseData struct {
	Expense *domain.Expense `json:"expense"`
}

type expensesData struct {
	Expenses []*domain.Expense `json:"expenses"`
}
