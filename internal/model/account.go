package model

// AccountValidation contains the result of credential validation.
type AccountValidation struct {
	UserID    string
	Email     string
	Name      string
	KeyStatus string
}
