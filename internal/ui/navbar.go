package ui

// navLink is one entry of the navigation bar. The active link picks the
// view rendered below the header.
type navLink int

const (
	linkSearch navLink = iota
	linkDiagnostics
	linkHelp
	linkAbout
)

var navLinks = []navLink{linkSearch, linkDiagnostics, linkHelp, linkAbout}

func (l navLink) String() string {
	switch l {
	case linkDiagnostics:
		return "Diagnostics"
	case linkHelp:
		return "Help"
	case linkAbout:
		return "About"
	default:
		return "Search"
	}
}

// navBar holds the menu toggle. It has no data dependencies.
type navBar struct {
	open   bool
	active navLink
}

func (n *navBar) toggle() {
	n.open = !n.open
}

// activate selects a link and closes the menu.
func (n *navBar) activate(l navLink) {
	if l < linkSearch || l > linkAbout {
		return
	}
	n.active = l
	n.open = false
}

// visibleLinks returns the links to draw at the given terminal width. Wide
// terminals always show them; compact ones only while the menu is open.
func (n navBar) visibleLinks(width int) []navLink {
	if width >= LayoutCompactWidth || n.open {
		return navLinks
	}
	return nil
}
