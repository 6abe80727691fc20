package role_test

import (
	"testing"

	"github.com/zephyrtronium/thelist/role"
)

func TestAdd(t *testing.T) {
	cases := []struct {
		name string
		have role.Role
		add  role.Role
		ok   bool
		want role.Role
	}{
		{"fresh-user", role.None, role.User, true, role.User},
		{"fresh-admin", role.None, role.Admin, true, role.Admin},
		{"fresh-superadmin", role.None, role.SuperAdmin, true, role.SuperAdmin},
		{"promote-user", role.User, role.Admin, true, role.Admin},
		{"promote-admin", role.Admin, role.SuperAdmin, true, role.SuperAdmin},
		{"promote-skip", role.User, role.SuperAdmin, true, role.SuperAdmin},
		{"same-user", role.User, role.User, false, role.User},
		{"same-admin", role.Admin, role.Admin, false, role.Admin},
		{"same-superadmin", role.SuperAdmin, role.SuperAdmin, false, role.SuperAdmin},
		{"demote-admin", role.SuperAdmin, role.Admin, false, role.SuperAdmin},
		{"demote-user", role.Admin, role.User, false, role.Admin},
		{"add-none", role.User, role.None, false, role.User},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g := role.New()
			if c.have != role.None {
				g.Add("bocchi", c.have)
			}
			if ok := g.Add("bocchi", c.add); ok != c.ok {
				t.Errorf("wrong result adding %v over %v: want %t, got %t", c.add, c.have, c.ok, ok)
			}
			if got := g.Of("bocchi"); got != c.want {
				t.Errorf("wrong role after add: want %v, got %v", c.want, got)
			}
		})
	}
}

func TestRemove(t *testing.T) {
	cases := []struct {
		name string
		have role.Role
		del  role.Role
		ok   bool
		want role.Role
	}{
		{"exact-user", role.User, role.User, true, role.None},
		{"exact-admin", role.Admin, role.Admin, true, role.None},
		{"exact-superadmin", role.SuperAdmin, role.SuperAdmin, true, role.None},
		{"below", role.SuperAdmin, role.Admin, false, role.SuperAdmin},
		{"above", role.User, role.Admin, false, role.User},
		{"absent", role.None, role.User, false, role.None},
		{"none", role.User, role.None, false, role.User},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g := role.New()
			if c.have != role.None {
				g.Add("bocchi", c.have)
			}
			if ok := g.Remove("bocchi", c.del); ok != c.ok {
				t.Errorf("wrong result removing %v from %v: want %t, got %t", c.del, c.have, c.ok, ok)
			}
			if got := g.Of("bocchi"); got != c.want {
				t.Errorf("wrong role after remove: want %v, got %v", c.want, got)
			}
		})
	}
}

func TestOfNormalizes(t *testing.T) {
	g := role.New()
	if !g.Add("Bocchi", role.Admin) {
		t.Fatal("couldn't add role")
	}
	for _, name := range []string{"bocchi", "BOCCHI", "Bocchi"} {
		if got := g.Of(name); got != role.Admin {
			t.Errorf("wrong role for %q: want %v, got %v", name, role.Admin, got)
		}
	}
	if got := g.Of("ryou"); got != role.None {
		t.Errorf("unknown name has role %v", got)
	}
}

func TestAllowed(t *testing.T) {
	g := role.New()
	g.Add("bocchi", role.SuperAdmin)
	g.Add("ryou", role.Admin)
	g.Add("nijika", role.User)
	cases := []struct {
		name string
		min  role.Role
		ok   bool
	}{
		{"bocchi", role.SuperAdmin, true},
		{"ryou", role.SuperAdmin, false},
		{"ryou", role.Admin, true},
		{"nijika", role.Admin, false},
		{"nijika", role.User, true},
		{"kita", role.User, false},
		{"kita", role.None, true},
	}
	for _, c := range cases {
		if got := g.Allowed(c.name, c.min); got != c.ok {
			t.Errorf("wrong answer for %s at %v: want %t, got %t", c.name, c.min, c.ok, got)
		}
	}
}

func TestRoundTripText(t *testing.T) {
	for _, r := range []role.Role{role.User, role.Admin, role.SuperAdmin} {
		text, err := r.MarshalText()
		if err != nil {
			t.Fatalf("couldn't marshal %v: %v", r, err)
		}
		var got role.Role
		if err := got.UnmarshalText(text); err != nil {
			t.Fatalf("couldn't unmarshal %q: %v", text, err)
		}
		if got != r {
			t.Errorf("round trip changed role: want %v, got %v", r, got)
		}
	}
	if _, err := role.None.MarshalText(); err == nil {
		t.Error("marshaling None should fail")
	}
	var r role.Role
	if err := r.UnmarshalText([]byte("overlord")); err == nil {
		t.Error("unmarshaling unknown role should fail")
	}
}

func TestReplace(t *testing.T) {
	g := role.New()
	g.Add("seika", role.User)
	g.Replace(map[string]role.Role{"Bocchi": role.SuperAdmin, "ryou": role.Admin, "kita": role.None})
	if got := g.Of("seika"); got != role.None {
		t.Errorf("replace kept old entry with role %v", got)
	}
	if got := g.Of("bocchi"); got != role.SuperAdmin {
		t.Errorf("replace didn't normalize key: bocchi has %v", got)
	}
	if got := g.Len(); got != 2 {
		t.Errorf("wrong size after replace: want 2, got %d", got)
	}
}
