package ticket

import "testing"

func TestPrincipalString(t *testing.T) {
	p := NewPrincipal("alice", "EXAMPLE.COM")

	if got := p.String(); got != "alice@EXAMPLE.COM" {
		t.Errorf("String() = %q, want alice@EXAMPLE.COM", got)
	}
	if p.Username() != "alice" || p.Realm() != "EXAMPLE.COM" {
		t.Errorf("unexpected parts: %q %q", p.Username(), p.Realm())
	}
}

func TestForwardabilityFlag(t *testing.T) {
	tests := []struct {
		pref Forwardability
		want string
	}{
		{ForwardDefault, ""},
		{Forwardable, "-f"},
		{NonForwardable, "-F"},
	}

	for _, tt := range tests {
		if got := tt.pref.Flag(); got != tt.want {
			t.Errorf("Flag(%d) = %q, want %q", tt.pref, got, tt.want)
		}
	}
}

func TestCacheStateContains(t *testing.T) {
	listing := `Principal name                 Cache name
--------------                 ----------
alice@EXAMPLE.COM              FILE:/tmp/krb5cc_1000
bob@EXAMPLE.COM                FILE:/tmp/krb5cc_1001
`

	tests := []struct {
		name      string
		principal Principal
		want      bool
	}{
		{"present", NewPrincipal("alice", "EXAMPLE.COM"), true},
		{"absent", NewPrincipal("carol", "EXAMPLE.COM"), false},
		{"wrong realm", NewPrincipal("alice", "OTHER.ORG"), false},
		// Substring matching is deliberately crude: "al" is a prefix of
		// "alice", so "al@..." does not match, but a principal that is a
		// textual substring of another entry does.
		{"substring of another entry", NewPrincipal("lice", "EXAMPLE.COM"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := CacheState{HasValidTicket: true, Listing: listing}
			if got := s.Contains(tt.principal); got != tt.want {
				t.Errorf("Contains(%s) = %v, want %v", tt.principal, got, tt.want)
			}
		})
	}
}
