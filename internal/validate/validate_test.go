package validate

import "testing"

func TestEmail(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"priya@example.com", true},
		{"  priya@example.com  ", true},
		{"priya@example", false},
		{"@example.com", false},
		{"", false},
		{"averyveryverylongaddressthatjustkeepsgoingandgoing@example.com", false},
	}
	for _, tc := range cases {
		if _, ok := Email(tc.in); ok != tc.ok {
			t.Errorf("Email(%q) = %v, want %v", tc.in, ok, tc.ok)
		}
	}
}

func TestPhone(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"+91 98765 43210", true},
		{"9876543210", true},
		{"98-7654-3210", true},
		{"12345", false},
		{"not a phone", false},
		{"", false},
	}
	for _, tc := range cases {
		if _, ok := Phone(tc.in); ok != tc.ok {
			t.Errorf("Phone(%q) = %v, want %v", tc.in, ok, tc.ok)
		}
	}
}

func TestQ(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"monstera", true},
		{"  low light  ", true},
		{"bird's paradise", true},
		{"", false},
		{"<script>alert(1)</script>", false},
	}
	for _, tc := range cases {
		if _, ok := Q(tc.in); ok != tc.ok {
			t.Errorf("Q(%q) = %v, want %v", tc.in, ok, tc.ok)
		}
	}
}

func TestSortDefaultsToName(t *testing.T) {
	s, ok := Sort("")
	if !ok || s != "name" {
		t.Fatalf("Sort(\"\") = %q, %v", s, ok)
	}
	if _, ok := Sort("price-low"); !ok {
		t.Fatal("price-low should be valid")
	}
	if _, ok := Sort("cheapest"); ok {
		t.Fatal("unknown key should be rejected")
	}
}

func TestID(t *testing.T) {
	if _, ok := ID("ORD-1A2B3C4D5E6F"); !ok {
		t.Fatal("order id should pass")
	}
	if _, ok := ID("has space"); ok {
		t.Fatal("space should fail")
	}
	if _, ok := ID(""); ok {
		t.Fatal("empty should fail")
	}
}

func TestPassword(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"Passw0rd!", true},
		{"short1!", false},
		{"alllowercase1!", false},
		{"NoDigits!!", false},
		{"NoSymbol11", false},
	}
	for _, tc := range cases {
		if Password(tc.in) != tc.ok {
			t.Errorf("Password(%q) = %v, want %v", tc.in, !tc.ok, tc.ok)
		}
	}
}
