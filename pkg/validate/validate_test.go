package validate_test

import (
	"testing"

	"github.com/shashiranjanraj/bistro/pkg/validate"
)

type registerInput struct {
	Name  string `json:"name"  validate:"required,min=2,max=80"`
	Email string `json:"email" validate:"required,email"`
	Photo string `json:"photo" validate:"nullable,url"`
}

type menuInput struct {
	Name     string  `json:"name"     validate:"required"`
	Category string  `json:"category" validate:"required,in=salad,pizza,soup,dessert,drinks"`
	Price    float64 `json:"price"    validate:"required,gt=0"`
}

type reviewInput struct {
	Rating float64 `json:"rating" validate:"required,between=1,5"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(registerInput{
		Name:  "John Doe",
		Email: "john@example.com",
		Photo: "https://cdn.example.com/p.png",
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(registerInput{})
	if !validate.HasErrors(errs) {
		t.Fatal("expected required errors")
	}
	if _, ok := errs["name"]; !ok {
		t.Error("expected name to be required")
	}
	if _, ok := errs["email"]; !ok {
		t.Error("expected email to be required")
	}
}

func TestEmailRule(t *testing.T) {
	errs := validate.Struct(registerInput{Name: "Jo", Email: "not-an-email"})
	if _, ok := errs["email"]; !ok {
		t.Error("expected email validation error")
	}
}

func TestNullableSkipsRemainingRules(t *testing.T) {
	errs := validate.Struct(registerInput{Name: "Jo", Email: "jo@example.com", Photo: ""})
	if validate.HasErrors(errs) {
		t.Errorf("expected empty nullable field to pass, got: %v", errs)
	}

	errs = validate.Struct(registerInput{Name: "Jo", Email: "jo@example.com", Photo: "not a url"})
	if _, ok := errs["photo"]; !ok {
		t.Error("expected non-empty invalid url to fail")
	}
}

func TestInRule(t *testing.T) {
	errs := validate.Struct(menuInput{Name: "Caesar", Category: "sushi", Price: 9.5})
	if _, ok := errs["category"]; !ok {
		t.Error("expected invalid category to fail")
	}

	errs = validate.Struct(menuInput{Name: "Caesar", Category: "salad", Price: 9.5})
	if validate.HasErrors(errs) {
		t.Errorf("expected valid category to pass, got: %v", errs)
	}
}

func TestGtRule(t *testing.T) {
	errs := validate.Struct(menuInput{Name: "Caesar", Category: "salad", Price: -1})
	if _, ok := errs["price"]; !ok {
		t.Error("expected non-positive price to fail")
	}
}

func TestBetweenRule(t *testing.T) {
	if errs := validate.Struct(reviewInput{Rating: 6}); !validate.HasErrors(errs) {
		t.Error("expected rating 6 to fail")
	}
	if errs := validate.Struct(reviewInput{Rating: 0.5}); !validate.HasErrors(errs) {
		t.Error("expected rating 0.5 to fail")
	}
	if errs := validate.Struct(reviewInput{Rating: 4}); validate.HasErrors(errs) {
		t.Errorf("expected rating 4 to pass, got: %v", errs)
	}
}

func TestMinMaxOnStrings(t *testing.T) {
	errs := validate.Struct(registerInput{Name: "J", Email: "j@example.com"})
	if _, ok := errs["name"]; !ok {
		t.Error("expected one-char name to fail min=2")
	}
}
