package validation

import "testing"

func TestStrongPassword(t *testing.T) {
	cases := []struct {
		name     string
		password string
		want     bool
	}{
		{"valid", "Correct1Horse", true},
		{"minimum length", "Abcdef12", true},
		{"too short", "Abc1def", false},
		{"no uppercase", "abcdefg1", false},
		{"no lowercase", "ABCDEFG1", false},
		{"no digit", "Abcdefgh", false},
		{"empty", "", false},
		{"symbols allowed", "Abcdef1!", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StrongPassword(tc.password); got != tc.want {
				t.Errorf("StrongPassword(%q) = %v, want %v", tc.password, got, tc.want)
			}
		})
	}
}

func TestDefaultMessage(t *testing.T) {
	if msg := DefaultMessage("Email", "email"); msg != "email must be a valid email address" {
		t.Errorf("unexpected message: %q", msg)
	}
	if msg := DefaultMessage("Phone", "bogus"); msg != "phone is invalid" {
		t.Errorf("unexpected fallback message: %q", msg)
	}
}

func TestCustomMessageOverridesDefault(t *testing.T) {
	custom := CustomMessage("Password")
	if custom == nil {
		t.Fatal("expected custom messages for Password")
	}
	if _, ok := custom["strongpassword"]; !ok {
		t.Error("expected strongpassword message for Password")
	}
}
