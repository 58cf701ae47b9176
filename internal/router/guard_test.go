package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name          string
		path          string
		authenticated bool
		wantRedirect  string
	}{
		{name: "admin posts anonymous", path: "/admin/posts", wantRedirect: "/login"},
		{name: "admin root anonymous", path: "/admin", wantRedirect: "/login"},
		{name: "admin api anonymous", path: "/admin/api/ai/status", wantRedirect: "/login"},
		{name: "admin posts signed in", path: "/admin/posts", authenticated: true},
		{name: "login signed in", path: "/login", authenticated: true, wantRedirect: "/admin"},
		{name: "login anonymous", path: "/login"},
		{name: "home", path: "/"},
		{name: "blog list", path: "/blog"},
		{name: "blog post", path: "/blog/nosy-be-guide"},
		{name: "blog nested", path: "/blog/a/b", wantRedirect: "/"},
		{name: "destinations", path: "/destinations", authenticated: true},
		{name: "unknown", path: "/nowhere", wantRedirect: "/"},
		{name: "admin lookalike", path: "/administrator", wantRedirect: "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.path, tt.authenticated)
			assert.Equal(t, tt.wantRedirect, got.Redirect)
			assert.Equal(t, tt.wantRedirect == "", got.Allowed())
		})
	}
}
