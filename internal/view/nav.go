package view

// NavLink is one entry of a navigation bar.
type NavLink struct {
	Name string
	Path string
	Icon string
}

// PublicNav lists the links of the public navbar.
func PublicNav() []NavLink {
	return []NavLink{
		{Name: "Home", Path: "/"},
		{Name: "Destinations", Path: "/destinations"},
		{Name: "Blog", Path: "/blog"},
		{Name: "About", Path: "/about"},
		{Name: "Contact", Path: "/contact"},
		{Name: "Admin", Path: "/admin"},
	}
}

// AdminNav lists the links of the admin sidebar.
func AdminNav() []NavLink {
	return []NavLink{
		{Name: "Dashboard", Path: "/admin", Icon: "dashboard"},
		{Name: "All Posts", Path: "/admin/posts", Icon: "posts"},
		{Name: "Settings", Path: "/admin/settings", Icon: "settings"},
	}
}
