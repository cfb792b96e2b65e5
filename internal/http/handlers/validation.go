package handlers

import (
	"regexp"
	"strings"
)

type ValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

func validateProduct(p ProductRequest) []ValidationError {
	errs := []ValidationError{}
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, ValidationError{Field: "Name", Description: "Name is required"})
	}
	if strings.TrimSpace(p.SKU) == "" {
		errs = append(errs, ValidationError{Field: "SKU", Description: "SKU is required"})
	}
	if strings.TrimSpace(p.Location) == "" {
		errs = append(errs, ValidationError{Field: "Location", Description: "Location is required"})
	}
	if p.Price <= 0 {
		errs = append(errs, ValidationError{Field: "Price", Description: "Price must be greater than zero"})
	}
	if p.Quantity < 0 {
		errs = append(errs, ValidationError{Field: "Quantity", Description: "Quantity cannot be negative"})
	}
	return errs
}

func validateRegistration(r RegisterRequest) []ValidationError {
	errs := []ValidationError{}
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, ValidationError{Field: "Name", Description: "Name is required"})
	}
	if strings.TrimSpace(r.Email) == "" {
		errs = append(errs, ValidationError{Field: "Email", Description: "Email is required"})
	} else if !emailPattern.MatchString(r.Email) {
		errs = append(errs, ValidationError{Field: "Email", Description: "Email is invalid"})
	}
	if len(r.Password) < 6 {
		errs = append(errs, ValidationError{Field: "Password", Description: "Password must have at least 6 characters"})
	}
	return errs
}
