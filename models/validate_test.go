package models

import (
	"strings"
	"testing"
)

func TestSendMessageRequestValidate(t *testing.T) {
	cases := []struct {
		name    string
		text    string
		wantErr bool
		want    string
	}{
		{"plain text", "hello", false, "hello"},
		{"trims whitespace", "  hello world  ", false, "hello world"},
		{"empty", "", true, ""},
		{"whitespace only", "   \t\n", true, ""},
		{"at limit", strings.Repeat("a", 2000), false, strings.Repeat("a", 2000)},
		{"over limit", strings.Repeat("a", 2001), true, ""},
		{"unicode counted by runes", strings.Repeat("ş", 2000), false, strings.Repeat("ş", 2000)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := &SendMessageRequest{Text: tc.text}
			err := req.Validate()
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.text)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if req.Text != tc.want {
				t.Errorf("Text = %q, want %q", req.Text, tc.want)
			}
		})
	}
}

func TestRegisterRequestValidate(t *testing.T) {
	valid := func() *RegisterRequest {
		return &RegisterRequest{
			Email:    "user@example.com",
			Password: "password123",
			Kind:     ProfileKindIndividual,
			Name:     "Jane Doe",
			Location: "Oslo",
		}
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*RegisterRequest)
	}{
		{"bad email", func(r *RegisterRequest) { r.Email = "not-an-email" }},
		{"email with spaces", func(r *RegisterRequest) { r.Email = "a b@example.com" }},
		{"short password", func(r *RegisterRequest) { r.Password = "1234567" }},
		{"unknown kind", func(r *RegisterRequest) { r.Kind = "robot" }},
		{"empty name", func(r *RegisterRequest) { r.Name = "   " }},
		{"name too long", func(r *RegisterRequest) { r.Name = strings.Repeat("n", 101) }},
		{"location too long", func(r *RegisterRequest) { r.Location = strings.Repeat("l", 101) }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := valid()
			tc.mutate(req)
			if err := req.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestRegisterRequestValidateNormalizes(t *testing.T) {
	req := &RegisterRequest{
		Email:    "  user@example.com  ",
		Password: "password123",
		Kind:     ProfileKindBusiness,
		Name:     "  Acme Corp  ",
		Location: "  Berlin  ",
	}
	if err := req.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if req.Email != "user@example.com" {
		t.Errorf("Email = %q, want trimmed", req.Email)
	}
	if req.Name != "Acme Corp" || req.Location != "Berlin" {
		t.Errorf("Name/Location not trimmed: %q / %q", req.Name, req.Location)
	}
}
